package registration

import "strings"

// RegisterDTO is the multipart form body of the registration endpoint.
// The evidence file travels separately as an EvidenceUpload.
type RegisterDTO struct {
	FirstName          string
	LastName           string
	Email              string
	Password           string
	PhoneNumber        string
	DepartmentID       int64
	SubscriptionTypeID int64
	TransactionID      *string
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

const minPasswordLength = 8

// Validate checks required fields and returns a ValidationError on failure.
func (d RegisterDTO) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" {
		return ValidationError{Msg: "firstName is required"}
	}
	if strings.TrimSpace(d.LastName) == "" {
		return ValidationError{Msg: "lastName is required"}
	}
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is invalid"}
	}
	if len(d.Password) < minPasswordLength {
		return ValidationError{Msg: "password must be at least 8 characters"}
	}
	if strings.TrimSpace(d.PhoneNumber) == "" {
		return ValidationError{Msg: "phoneNumber is required"}
	}
	if d.DepartmentID <= 0 {
		return ValidationError{Msg: "departmentId is required"}
	}
	if d.SubscriptionTypeID <= 0 {
		return ValidationError{Msg: "subscriptionTypeId is required"}
	}
	return nil
}
