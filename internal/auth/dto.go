package auth

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse mirrors the login payload of the public API: a flat object
// carrying the status alongside the identity fields and token.
type LoginResponse struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	UserID     int64  `json:"userId,omitempty"`
	Token      string `json:"token,omitempty"`
	RoleID     int64  `json:"roleId,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	Email      string `json:"email,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}
