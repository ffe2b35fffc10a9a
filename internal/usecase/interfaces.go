package usecase

import (
	"context"

	"secops/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
	Get(ctx context.Context, id string) (domain.Project, error)
	List(ctx context.Context, f domain.ProjectFilter, limit, offset int) ([]domain.Project, int64, error)
	Update(ctx context.Context, p domain.Project) (domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type TaskRepository interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	List(ctx context.Context, f domain.TaskFilter, limit, offset int) ([]domain.Task, int64, error)
	Update(ctx context.Context, t domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type VulnerabilityRepository interface {
	Create(ctx context.Context, v domain.Vulnerability) (domain.Vulnerability, error)
	Get(ctx context.Context, id string) (domain.Vulnerability, error)
	List(ctx context.Context, f domain.VulnerabilityFilter, limit, offset int) ([]domain.Vulnerability, int64, error)
	Update(ctx context.Context, v domain.Vulnerability) (domain.Vulnerability, error)
	Delete(ctx context.Context, id string) error
}

// adminRoles may perform mutations restricted to administrators. Route guards
// enforce this at the HTTP layer; services check again so no alternate caller
// can bypass it.
var adminRoles = []string{"admin", "realm-admin"}

func isAdmin(p domain.Principal) bool {
	for _, r := range adminRoles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}
