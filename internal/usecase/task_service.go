package usecase

import (
	"context"
	"fmt"
	"strings"

	"secops/internal/domain"
)

var taskStatuses = map[string]bool{
	"open":        true,
	"in_progress": true,
	"done":        true,
}

type TaskService struct {
	repo     TaskRepository
	projects ProjectRepository
}

func NewTaskService(repo TaskRepository, projects ProjectRepository) *TaskService {
	return &TaskService{repo: repo, projects: projects}
}

func (s *TaskService) Create(ctx context.Context, projectID, title, description, status string) (domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Task{}, fmt.Errorf("%w: title is required", domain.ErrInvalidArgument)
	}
	if status == "" {
		status = domain.DefaultTaskStatus
	}
	if !taskStatuses[status] {
		return domain.Task{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidArgument, status)
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return domain.Task{}, err
	}
	return s.repo.Create(ctx, domain.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      status,
	})
}

func (s *TaskService) Get(ctx context.Context, id string) (domain.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *TaskService) List(ctx context.Context, f domain.TaskFilter, limit, offset int) ([]domain.Task, int64, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *TaskService) Update(ctx context.Context, id string, title, description, status *string) (domain.Task, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return domain.Task{}, fmt.Errorf("%w: title cannot be blank", domain.ErrInvalidArgument)
		}
		current.Title = trimmed
	}
	if description != nil {
		current.Description = *description
	}
	if status != nil {
		if !taskStatuses[*status] {
			return domain.Task{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidArgument, *status)
		}
		current.Status = *status
	}
	return s.repo.Update(ctx, current)
}

func (s *TaskService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !isAdmin(p) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
