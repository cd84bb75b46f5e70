package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed        ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidStatus           ErrorCode = "INVALID_REGISTRATION_STATUS"
	ErrCodeInvalidSubscriptionType ErrorCode = "INVALID_SUBSCRIPTION_TYPE"
	ErrCodeEmptyUpdate             ErrorCode = "EMPTY_UPDATE"

	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodePaymentNotFound ErrorCode = "PAYMENT_NOT_FOUND"
	ErrCodeUserInactive    ErrorCode = "USER_INACTIVE"
	ErrCodeAlreadyApproved ErrorCode = "ALREADY_APPROVED"
	ErrCodeStatusUnchanged ErrorCode = "STATUS_UNCHANGED"
	ErrCodeEmailTaken      ErrorCode = "EMAIL_TAKEN"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeAdminRequired      ErrorCode = "ADMIN_REQUIRED"

	ErrCodeInvalidOTP      ErrorCode = "INVALID_OTP"
	ErrCodeOTPExpired      ErrorCode = "OTP_EXPIRED"
	ErrCodeWrongPassword   ErrorCode = "WRONG_PASSWORD"
	ErrCodeSamePassword    ErrorCode = "SAME_PASSWORD"
	ErrCodeEmailSendFailed ErrorCode = "EMAIL_SEND_FAILED"
)

// AppError is the single error shape returned by every service operation.
// The boundary layer maps StatusCode to the transport; Cause is never
// serialized so internal details stay out of responses.
type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrUserNotFound    = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrPaymentNotFound = NewNotFoundError("No payment record found for user", ErrCodePaymentNotFound)
	ErrUserInactive    = NewForbiddenError("User account is inactive", ErrCodeUserInactive)
	ErrAlreadyApproved = NewConflictError("User is already approved", ErrCodeAlreadyApproved)
	ErrStatusUnchanged = NewConflictError("User already has the requested active state", ErrCodeStatusUnchanged)
	ErrEmailTaken      = NewConflictError("User already exists with this email", ErrCodeEmailTaken)

	ErrInvalidStatus           = NewValidationError("Invalid registration status", ErrCodeInvalidStatus)
	ErrInvalidSubscriptionType = NewValidationError("Invalid subscription type", ErrCodeInvalidSubscriptionType)
	ErrEmptyUpdate             = NewValidationError("No fields to update", ErrCodeEmptyUpdate)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid credentials", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("Could not validate credentials", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
	ErrAdminRequired      = NewForbiddenError("Admin privileges required", ErrCodeAdminRequired)

	ErrInvalidOTP    = NewValidationError("Invalid OTP", ErrCodeInvalidOTP)
	ErrOTPExpired    = NewValidationError("OTP expired", ErrCodeOTPExpired)
	ErrWrongPassword = NewUnauthorizedError("Current password is incorrect", ErrCodeWrongPassword)
	ErrSamePassword  = NewValidationError("New password must be different from the current password", ErrCodeSamePassword)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
