package usecase

import (
	"context"
	"fmt"
	"strings"

	"secops/internal/domain"
)

var (
	severities = map[string]bool{
		"low":      true,
		"medium":   true,
		"high":     true,
		"critical": true,
	}
	vulnerabilityStatuses = map[string]bool{
		"open":     true,
		"triaged":  true,
		"resolved": true,
	}
)

type VulnerabilityService struct {
	repo     VulnerabilityRepository
	projects ProjectRepository
}

func NewVulnerabilityService(repo VulnerabilityRepository, projects ProjectRepository) *VulnerabilityService {
	return &VulnerabilityService{repo: repo, projects: projects}
}

func (s *VulnerabilityService) Create(ctx context.Context, projectID, title, description, severity, status string) (domain.Vulnerability, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Vulnerability{}, fmt.Errorf("%w: title is required", domain.ErrInvalidArgument)
	}
	if severity == "" {
		severity = domain.DefaultSeverity
	}
	if !severities[severity] {
		return domain.Vulnerability{}, fmt.Errorf("%w: unknown severity %q", domain.ErrInvalidArgument, severity)
	}
	if status == "" {
		status = domain.DefaultVulnerabilityStatus
	}
	if !vulnerabilityStatuses[status] {
		return domain.Vulnerability{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidArgument, status)
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return domain.Vulnerability{}, err
	}
	return s.repo.Create(ctx, domain.Vulnerability{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Severity:    severity,
		Status:      status,
	})
}

func (s *VulnerabilityService) Get(ctx context.Context, id string) (domain.Vulnerability, error) {
	return s.repo.Get(ctx, id)
}

func (s *VulnerabilityService) List(ctx context.Context, f domain.VulnerabilityFilter, limit, offset int) ([]domain.Vulnerability, int64, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *VulnerabilityService) Update(ctx context.Context, id string, title, description, severity, status *string) (domain.Vulnerability, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Vulnerability{}, err
	}
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return domain.Vulnerability{}, fmt.Errorf("%w: title cannot be blank", domain.ErrInvalidArgument)
		}
		current.Title = trimmed
	}
	if description != nil {
		current.Description = *description
	}
	if severity != nil {
		if !severities[*severity] {
			return domain.Vulnerability{}, fmt.Errorf("%w: unknown severity %q", domain.ErrInvalidArgument, *severity)
		}
		current.Severity = *severity
	}
	if status != nil {
		if !vulnerabilityStatuses[*status] {
			return domain.Vulnerability{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidArgument, *status)
		}
		current.Status = *status
	}
	return s.repo.Update(ctx, current)
}

func (s *VulnerabilityService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !isAdmin(p) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
