package admin

// StatusUpdateDTO carries the requested registration status for a user.
type StatusUpdateDTO struct {
	Status int64 `json:"status"`
}

// UpdateUserDTO carries the optional profile fields an admin may change.
// Nil pointers mean "leave unchanged".
type UpdateUserDTO struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// SetActiveDTO carries the requested active flag.
type SetActiveDTO struct {
	IsActive *bool `json:"isActive"`
}
