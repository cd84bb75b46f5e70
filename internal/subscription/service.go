package subscription

import (
	"log/slog"

	subscriptionDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/subscription"
)

type RepositoryAPI interface {
	GetAll() ([]*subscriptionDatamodel.SubscriptionType, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAllSubscriptionTypes() ([]SubscriptionTypeResponse, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get subscription types from repository", "error", err)
		return nil, err
	}

	var responses []SubscriptionTypeResponse
	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		responses = append(responses, SubscriptionTypeResponse{
			ID:    row.ID,
			Name:  row.Name,
			Price: row.Price,
		})
	}

	return responses, nil
}
