package user

import "time"

// Profile is the read-only projection of a user joined with the department
// and subscription-type reference tables.
type Profile struct {
	UserID               int64     `json:"userId"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	Email                string    `json:"email"`
	PhoneNumber          string    `json:"phoneNumber"`
	RoleID               int64     `json:"roleId"`
	RegistrationStatusID int64     `json:"registrationStatus"`
	IsActive             bool      `json:"isActive"`
	CreatedAt            time.Time `json:"createdAt"`
	DepartmentName       string    `json:"departmentName"`
	SubscriptionTypeName string    `json:"subscriptionTypeName"`
}
