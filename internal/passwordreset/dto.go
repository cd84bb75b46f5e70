package passwordreset

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

const minPasswordLength = 8

// ForgotPasswordDTO starts the OTP flow.
type ForgotPasswordDTO struct {
	Email string `json:"email"`
}

func (d ForgotPasswordDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	return nil
}

// VerifyOTPDTO carries the code back for verification.
type VerifyOTPDTO struct {
	UserID int64  `json:"userId"`
	OTP    string `json:"otp"`
}

func (d VerifyOTPDTO) Validate() error {
	if d.UserID <= 0 {
		return ValidationError{Msg: "userId is required"}
	}
	if d.OTP == "" {
		return ValidationError{Msg: "otp is required"}
	}
	return nil
}

// ResetPasswordDTO sets a fresh password after OTP verification.
type ResetPasswordDTO struct {
	UserID      int64  `json:"userId"`
	NewPassword string `json:"newPassword"`
}

func (d ResetPasswordDTO) Validate() error {
	if d.UserID <= 0 {
		return ValidationError{Msg: "userId is required"}
	}
	if len(d.NewPassword) < minPasswordLength {
		return ValidationError{Msg: "newPassword must be at least 8 characters"}
	}
	return nil
}

// ChangePasswordDTO is the authenticated change flow: the caller proves the
// current password before picking a new one.
type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (d ChangePasswordDTO) Validate() error {
	if d.CurrentPassword == "" {
		return ValidationError{Msg: "currentPassword is required"}
	}
	if len(d.NewPassword) < minPasswordLength {
		return ValidationError{Msg: "newPassword must be at least 8 characters"}
	}
	return nil
}
