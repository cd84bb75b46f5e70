package user

import (
	"log/slog"

	apperrors "github.com/frahmantamala/membership-management/internal"
)

type Repository interface {
	GetProfileByID(userID int64) (*Profile, error)
	GetProfileByEmail(email string) (*Profile, error)
}

type ServiceAPI interface {
	GetProfile(userID int64) (*Profile, error)
	GetProfileByEmail(email string) (*Profile, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetProfile(userID int64) (*Profile, error) {
	profile, err := s.repo.GetProfileByID(userID)
	if err != nil {
		s.logger.Error("profile lookup failed", "user_id", userID, "error", err)
		return nil, apperrors.NewInternalError("Profile lookup failed", err)
	}
	if profile == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return profile, nil
}

func (s *Service) GetProfileByEmail(email string) (*Profile, error) {
	profile, err := s.repo.GetProfileByEmail(email)
	if err != nil {
		s.logger.Error("profile lookup failed", "email", email, "error", err)
		return nil, apperrors.NewInternalError("Profile lookup failed", err)
	}
	if profile == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return profile, nil
}
