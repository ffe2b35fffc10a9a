package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"secops/internal/domain"
)

type fakeProjectRepo struct {
	projects map[string]domain.Project
	nextID   int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]domain.Project)}
}

func (r *fakeProjectRepo) Create(_ context.Context, p domain.Project) (domain.Project, error) {
	for _, existing := range r.projects {
		if existing.Name == p.Name {
			return domain.Project{}, domain.ErrConflict
		}
	}
	r.nextID++
	p.ID = "p-" + strconv.Itoa(r.nextID)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.projects[p.ID] = p
	return p, nil
}

func (r *fakeProjectRepo) Get(_ context.Context, id string) (domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return domain.Project{}, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) List(_ context.Context, f domain.ProjectFilter, limit, offset int) ([]domain.Project, int64, error) {
	var out []domain.Project
	for _, p := range r.projects {
		if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p domain.Project) (domain.Project, error) {
	if _, ok := r.projects[p.ID]; !ok {
		return domain.Project{}, domain.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.projects[p.ID] = p
	return p, nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

type fakeTaskRepo struct {
	tasks  map[string]domain.Task
	nextID int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, t domain.Task) (domain.Task, error) {
	r.nextID++
	t.ID = "t-" + strconv.Itoa(r.nextID)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeTaskRepo) Get(_ context.Context, id string) (domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrNotFound
	}
	return t, nil
}

func (r *fakeTaskRepo) List(_ context.Context, f domain.TaskFilter, limit, offset int) ([]domain.Task, int64, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t domain.Task) (domain.Task, error) {
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.Task{}, domain.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

type fakeVulnRepo struct {
	vulns  map[string]domain.Vulnerability
	nextID int
}

func newFakeVulnRepo() *fakeVulnRepo {
	return &fakeVulnRepo{vulns: make(map[string]domain.Vulnerability)}
}

func (r *fakeVulnRepo) Create(_ context.Context, v domain.Vulnerability) (domain.Vulnerability, error) {
	r.nextID++
	v.ID = "v-" + strconv.Itoa(r.nextID)
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	r.vulns[v.ID] = v
	return v, nil
}

func (r *fakeVulnRepo) Get(_ context.Context, id string) (domain.Vulnerability, error) {
	v, ok := r.vulns[id]
	if !ok {
		return domain.Vulnerability{}, domain.ErrNotFound
	}
	return v, nil
}

func (r *fakeVulnRepo) List(_ context.Context, f domain.VulnerabilityFilter, limit, offset int) ([]domain.Vulnerability, int64, error) {
	var out []domain.Vulnerability
	for _, v := range r.vulns {
		if f.ProjectID != "" && v.ProjectID != f.ProjectID {
			continue
		}
		if f.Severity != "" && v.Severity != f.Severity {
			continue
		}
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		out = append(out, v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVulnRepo) Update(_ context.Context, v domain.Vulnerability) (domain.Vulnerability, error) {
	if _, ok := r.vulns[v.ID]; !ok {
		return domain.Vulnerability{}, domain.ErrNotFound
	}
	v.UpdatedAt = time.Now()
	r.vulns[v.ID] = v
	return v, nil
}

func (r *fakeVulnRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.vulns[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.vulns, id)
	return nil
}

var (
	adminPrincipal  = domain.Principal{Subject: "admin-1", Roles: []string{"admin"}}
	viewerPrincipal = domain.Principal{Subject: "viewer-1", Roles: []string{"viewer"}}
)
