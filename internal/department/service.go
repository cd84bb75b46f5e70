package department

import (
	"log/slog"

	departmentDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll() ([]*departmentDatamodel.Department, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetAllDepartments lists the active departments registrants may pick from.
func (s *Service) GetAllDepartments() ([]DepartmentResponse, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments from repository", "error", err)
		return nil, err
	}

	var responses []DepartmentResponse
	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		responses = append(responses, DepartmentResponse{ID: row.ID, Name: row.Name})
	}

	return responses, nil
}
