package usecase

import (
	"context"
	"fmt"
	"strings"

	"secops/internal/domain"
)

type ProjectService struct {
	repo ProjectRepository
}

func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) Create(ctx context.Context, p domain.Principal, name, description string) (domain.Project, error) {
	if !isAdmin(p) {
		return domain.Project{}, domain.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Project{}, fmt.Errorf("%w: name is required", domain.ErrInvalidArgument)
	}
	return s.repo.Create(ctx, domain.Project{Name: name, Description: description})
}

func (s *ProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, f domain.ProjectFilter, limit, offset int) ([]domain.Project, int64, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// Update applies only the fields whose pointers are non-nil.
func (s *ProjectService) Update(ctx context.Context, p domain.Principal, id string, name, description *string) (domain.Project, error) {
	if !isAdmin(p) {
		return domain.Project{}, domain.ErrForbidden
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return domain.Project{}, fmt.Errorf("%w: name cannot be blank", domain.ErrInvalidArgument)
		}
		current.Name = trimmed
	}
	if description != nil {
		current.Description = *description
	}
	return s.repo.Update(ctx, current)
}

func (s *ProjectService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !isAdmin(p) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
