package registration

import (
	"log/slog"
	"time"

	apperrors "github.com/frahmantamala/membership-management/internal"
	"github.com/frahmantamala/membership-management/internal/admin"
	"github.com/frahmantamala/membership-management/internal/auth"
	paymentDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/payment"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
)

// Repository persists a registration. CreateUserWithPayment writes the user
// and the initial payment row in one transaction so a half-registered
// account can never exist.
type Repository interface {
	GetUserByEmail(email string) (*userDatamodel.User, error)
	CreateUserWithPayment(user *userDatamodel.User, payment *paymentDatamodel.Payment) error
}

type ServiceAPI interface {
	Register(dto RegisterDTO, evidence *EvidenceUpload) (*RegisterResult, error)
}

type Service struct {
	repo          Repository
	hasher        *auth.PasswordHasher
	evidenceStore EvidenceStore
	logger        *slog.Logger
}

func NewService(repo Repository, hasher *auth.PasswordHasher, store EvidenceStore, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		hasher:        hasher,
		evidenceStore: store,
		logger:        logger,
	}
}

// Register creates a Pending regular user together with its first payment
// row. The payment row is written even when no evidence file was uploaded;
// the role is always regular regardless of what the form claims.
func (s *Service) Register(dto RegisterDTO, evidence *EvidenceUpload) (*RegisterResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		s.logger.Error("email lookup failed during registration", "email", dto.Email, "error", err)
		return nil, apperrors.NewInternalError("Registration failed", err)
	}
	if existing != nil {
		s.logger.Warn("registration rejected, email taken", "email", dto.Email)
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		s.logger.Error("password hashing failed", "email", dto.Email, "error", err)
		return nil, apperrors.NewInternalError("Registration failed", err)
	}

	var evidenceName *string
	if evidence != nil {
		stored, err := s.evidenceStore.Save(evidence.Filename, evidence.Content)
		if err != nil {
			s.logger.Error("evidence upload failed", "email", dto.Email, "error", err)
			return nil, apperrors.NewInternalError("Payment evidence upload failed", err)
		}
		evidenceName = &stored
	}

	now := time.Now()
	user := &userDatamodel.User{
		FirstName:            dto.FirstName,
		LastName:             dto.LastName,
		Email:                dto.Email,
		PasswordHash:         hash,
		PhoneNumber:          dto.PhoneNumber,
		DepartmentID:         dto.DepartmentID,
		RoleID:               auth.RoleRegular,
		SubscriptionTypeID:   dto.SubscriptionTypeID,
		RegistrationStatusID: admin.StatusPending,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	payment := &paymentDatamodel.Payment{
		SubscriptionTypeID: dto.SubscriptionTypeID,
		TransactionID:      dto.TransactionID,
		PaymentEvidence:    evidenceName,
		IsActive:           true,
		CreatedAt:          now,
	}

	if err := s.repo.CreateUserWithPayment(user, payment); err != nil {
		s.logger.Error("registration insert failed", "email", dto.Email, "error", err)
		return nil, apperrors.NewInternalError("Registration failed", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return &RegisterResult{UserID: user.ID}, nil
}
