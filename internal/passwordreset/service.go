package passwordreset

import (
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/frahmantamala/membership-management/internal"
	"github.com/frahmantamala/membership-management/internal/auth"
	otpDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/otp"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
	"github.com/frahmantamala/membership-management/internal/email"
)

// Repository is the storage view of the OTP and password flows. ConsumeOTP
// must be an atomic conditional update guarded on is_used=false; it reports
// zero rows when another request already burned the code.
type Repository interface {
	GetUserByEmail(email string) (*userDatamodel.User, error)
	GetUserByID(userID int64) (*userDatamodel.User, error)
	CreateOTP(record *otpDatamodel.PasswordResetOTP) error
	GetUnusedOTP(userID int64, code string) (*otpDatamodel.PasswordResetOTP, error)
	ConsumeOTP(otpID int64) (int64, error)
	UpdatePassword(userID int64, passwordHash string) error
}

type ServiceAPI interface {
	RequestOTP(dto ForgotPasswordDTO) (*OTPRequestResult, error)
	VerifyOTP(dto VerifyOTPDTO) error
	ResetPassword(dto ResetPasswordDTO) error
	ChangePassword(userID int64, dto ChangePasswordDTO) error
}

type Service struct {
	repo      Repository
	hasher    *auth.PasswordHasher
	sender    email.Sender
	otpExpiry time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, hasher *auth.PasswordHasher, sender email.Sender, otpExpiry time.Duration, logger *slog.Logger) *Service {
	if otpExpiry <= 0 {
		otpExpiry = 10 * time.Minute
	}
	return &Service{
		repo:      repo,
		hasher:    hasher,
		sender:    sender,
		otpExpiry: otpExpiry,
		logger:    logger,
		now:       time.Now,
	}
}

// RequestOTP generates a fresh code for the account behind the email and
// mails it. Unknown addresses report NotFound; deactivated accounts are
// refused outright.
func (s *Service) RequestOTP(dto ForgotPasswordDTO) (*OTPRequestResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	user, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		s.logger.Error("user lookup failed for otp request", "email", dto.Email, "error", err)
		return nil, apperrors.NewInternalError("OTP request failed", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	code, err := GenerateOTPCode()
	if err != nil {
		s.logger.Error("otp generation failed", "user_id", user.ID, "error", err)
		return nil, apperrors.NewInternalError("OTP request failed", err)
	}

	record := &otpDatamodel.PasswordResetOTP{
		UserID:     user.ID,
		OTPCode:    code,
		ExpiryTime: s.now().Add(s.otpExpiry),
		IsUsed:     false,
		CreatedAt:  s.now(),
	}
	if err := s.repo.CreateOTP(record); err != nil {
		s.logger.Error("otp insert failed", "user_id", user.ID, "error", err)
		return nil, apperrors.NewInternalError("OTP request failed", err)
	}

	minutes := int(s.otpExpiry.Minutes())
	bodyText := fmt.Sprintf("Hello %s,\nYour OTP is: %s\nIt will expire in %d minutes.", user.FirstName, code, minutes)
	bodyHTML := fmt.Sprintf("<p>Hello %s,</p><p>Your OTP is:</p><h2>%s</h2><p>It will expire in %d minutes.</p>", user.FirstName, code, minutes)

	if err := s.sender.Send(user.Email, user.FirstName, "Password Reset OTP", bodyText, bodyHTML); err != nil {
		s.logger.Error("otp email failed", "user_id", user.ID, "error", err)
		return nil, apperrors.NewInternalError("Failed to send OTP email", err)
	}

	s.logger.Info("otp sent", "user_id", user.ID)
	return &OTPRequestResult{UserID: user.ID}, nil
}

// VerifyOTP checks and burns a code. A code that was never issued, belongs
// to another user or was already used reads as invalid; expiry is reported
// separately and leaves the code unconsumed. The final conditional update
// closes the check-then-mark race: if another request consumed the code in
// between, zero rows come back and this call also reads as invalid.
func (s *Service) VerifyOTP(dto VerifyOTPDTO) error {
	if err := dto.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	record, err := s.repo.GetUnusedOTP(dto.UserID, dto.OTP)
	if err != nil {
		s.logger.Error("otp lookup failed", "user_id", dto.UserID, "error", err)
		return apperrors.NewInternalError("OTP verification failed", err)
	}
	if record == nil {
		return apperrors.ErrInvalidOTP
	}
	if s.now().After(record.ExpiryTime) {
		return apperrors.ErrOTPExpired
	}

	rows, err := s.repo.ConsumeOTP(record.ID)
	if err != nil {
		s.logger.Error("otp consume failed", "user_id", dto.UserID, "error", err)
		return apperrors.NewInternalError("OTP verification failed", err)
	}
	if rows == 0 {
		return apperrors.ErrInvalidOTP
	}

	s.logger.Info("otp verified", "user_id", dto.UserID)
	return nil
}

// ResetPassword replaces the password after a verified OTP round.
func (s *Service) ResetPassword(dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	user, err := s.repo.GetUserByID(dto.UserID)
	if err != nil {
		s.logger.Error("user lookup failed for password reset", "user_id", dto.UserID, "error", err)
		return apperrors.NewInternalError("Password reset failed", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	hash, err := s.hasher.Hash(dto.NewPassword)
	if err != nil {
		s.logger.Error("password hashing failed", "user_id", dto.UserID, "error", err)
		return apperrors.NewInternalError("Password reset failed", err)
	}

	if err := s.repo.UpdatePassword(dto.UserID, hash); err != nil {
		s.logger.Error("password update failed", "user_id", dto.UserID, "error", err)
		return apperrors.NewInternalError("Password reset failed", err)
	}

	s.logger.Info("password reset", "user_id", dto.UserID)
	return nil
}

// ChangePassword is the authenticated flow: the current password must
// verify, and the new one must actually differ.
func (s *Service) ChangePassword(userID int64, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		s.logger.Error("user lookup failed for password change", "user_id", userID, "error", err)
		return apperrors.NewInternalError("Password change failed", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	ok, err := s.hasher.Verify(dto.CurrentPassword, user.PasswordHash)
	if err != nil {
		return apperrors.NewInternalError("Password change failed", err)
	}
	if !ok {
		return apperrors.ErrWrongPassword
	}

	same, err := s.hasher.Verify(dto.NewPassword, user.PasswordHash)
	if err != nil {
		return apperrors.NewInternalError("Password change failed", err)
	}
	if same {
		return apperrors.ErrSamePassword
	}

	hash, err := s.hasher.Hash(dto.NewPassword)
	if err != nil {
		return apperrors.NewInternalError("Password change failed", err)
	}

	if err := s.repo.UpdatePassword(userID, hash); err != nil {
		s.logger.Error("password update failed", "user_id", userID, "error", err)
		return apperrors.NewInternalError("Password change failed", err)
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}
