package admin

import (
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/frahmantamala/membership-management/internal"
	paymentDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/payment"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
)

// Repository is the storage view of the admin workflows. WithinTransaction
// runs fn against a transactional copy of the repository; the *ForUpdate
// reads take row locks inside that transaction so concurrent transitions on
// the same user serialize.
type Repository interface {
	WithinTransaction(fn func(tx Repository) error) error

	GetUserForUpdate(userID int64) (*userDatamodel.User, error)
	GetLatestPaymentForUpdate(userID int64) (*paymentDatamodel.Payment, error)
	UpdateRegistrationStatus(userID int64, statusID int64) error
	SetSubscriptionWindow(paymentID int64, start, end *time.Time) error

	GetUser(userID int64) (*userDatamodel.User, error)
	UpdateUserFields(userID int64, fields map[string]interface{}) (int64, error)
	SetActive(userID int64, active bool) error
	ListUsers() ([]UserListItem, error)
}

type ServiceAPI interface {
	Transition(userID int64, requestedStatus int64) (*TransitionResult, error)
	UpdateUser(userID int64, dto UpdateUserDTO) error
	SetActive(userID int64, active bool) error
	ListUsers() ([]UserListItem, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Transition moves a user's registration status and maintains the
// subscription window on the latest payment row. The whole decision runs in
// one transaction so a rejected branch leaves no partial update behind.
//
// Branches:
//   - Pending -> Approved: requires a payment row; stamps the subscription
//     start at now and the end at start+365d for yearly, or leaves the end
//     empty for lifetime. Any other subscription type aborts the transaction.
//   - Approved -> Pending: clears both subscription dates.
//   - Approved -> Approved: conflict, nothing written.
//   - everything else: status column only.
func (s *Service) Transition(userID int64, requestedStatus int64) (*TransitionResult, error) {
	if !IsValidStatus(requestedStatus) {
		return nil, apperrors.ErrInvalidStatus
	}

	var result *TransitionResult
	err := s.repo.WithinTransaction(func(tx Repository) error {
		user, err := tx.GetUserForUpdate(userID)
		if err != nil {
			return apperrors.NewInternalError("User lookup failed", err)
		}
		if user == nil {
			return apperrors.ErrUserNotFound
		}
		if !user.IsActive {
			return apperrors.ErrUserInactive
		}

		current := user.RegistrationStatusID

		switch {
		case current == StatusApproved && requestedStatus == StatusApproved:
			return apperrors.ErrAlreadyApproved

		case current == StatusPending && requestedStatus == StatusApproved:
			payment, err := tx.GetLatestPaymentForUpdate(userID)
			if err != nil {
				return apperrors.NewInternalError("Payment lookup failed", err)
			}
			if payment == nil {
				return apperrors.ErrPaymentNotFound
			}

			start := s.now()
			var end *time.Time
			switch payment.SubscriptionTypeID {
			case SubscriptionLifetime:
				// lifetime: open-ended window
			case SubscriptionYearly:
				e := start.AddDate(0, 0, yearlySubscriptionDays)
				end = &e
			default:
				return apperrors.ErrInvalidSubscriptionType
			}

			if err := tx.UpdateRegistrationStatus(userID, StatusApproved); err != nil {
				return apperrors.NewInternalError("Status update failed", err)
			}
			if err := tx.SetSubscriptionWindow(payment.ID, &start, end); err != nil {
				return apperrors.NewInternalError("Subscription update failed", err)
			}

			result = &TransitionResult{
				Message:               "User approved successfully",
				SubscriptionStartDate: &start,
				SubscriptionEndDate:   end,
			}
			return nil

		case current == StatusApproved && requestedStatus == StatusPending:
			payment, err := tx.GetLatestPaymentForUpdate(userID)
			if err != nil {
				return apperrors.NewInternalError("Payment lookup failed", err)
			}

			if err := tx.UpdateRegistrationStatus(userID, StatusPending); err != nil {
				return apperrors.NewInternalError("Status update failed", err)
			}
			if payment != nil {
				if err := tx.SetSubscriptionWindow(payment.ID, nil, nil); err != nil {
					return apperrors.NewInternalError("Subscription update failed", err)
				}
			}

			result = &TransitionResult{Message: "User moved back to pending"}
			return nil

		default:
			if err := tx.UpdateRegistrationStatus(userID, requestedStatus); err != nil {
				return apperrors.NewInternalError("Status update failed", err)
			}
			result = &TransitionResult{
				Message: fmt.Sprintf("User status updated to %s", StatusName(requestedStatus)),
			}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("registration status transition",
		"user_id", userID,
		"requested_status", requestedStatus,
	)
	return result, nil
}

// UpdateUser applies a partial profile update. A request that names no
// fields is rejected before hitting storage; zero affected rows means the
// user does not exist.
func (s *Service) UpdateUser(userID int64, dto UpdateUserDTO) error {
	fields := map[string]interface{}{}
	if dto.FirstName != nil {
		fields["first_name"] = *dto.FirstName
	}
	if dto.LastName != nil {
		fields["last_name"] = *dto.LastName
	}
	if dto.PhoneNumber != nil {
		fields["phone_number"] = *dto.PhoneNumber
	}
	if len(fields) == 0 {
		return apperrors.ErrEmptyUpdate
	}

	rows, err := s.repo.UpdateUserFields(userID, fields)
	if err != nil {
		s.logger.Error("user update failed", "user_id", userID, "error", err)
		return apperrors.NewInternalError("User update failed", err)
	}
	if rows == 0 {
		return apperrors.ErrUserNotFound
	}

	s.logger.Info("user updated", "user_id", userID, "fields", len(fields))
	return nil
}

// SetActive flips a user's active flag. Requesting the state the user is
// already in is a conflict rather than a silent no-op.
func (s *Service) SetActive(userID int64, active bool) error {
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return apperrors.NewInternalError("User lookup failed", err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if user.IsActive == active {
		return apperrors.ErrStatusUnchanged
	}

	if err := s.repo.SetActive(userID, active); err != nil {
		s.logger.Error("active flag update failed", "user_id", userID, "error", err)
		return apperrors.NewInternalError("User update failed", err)
	}

	s.logger.Info("user active flag changed", "user_id", userID, "active", active)
	return nil
}

func (s *Service) ListUsers() ([]UserListItem, error) {
	users, err := s.repo.ListUsers()
	if err != nil {
		s.logger.Error("user listing failed", "error", err)
		return nil, apperrors.NewInternalError("User listing failed", err)
	}
	return users, nil
}
