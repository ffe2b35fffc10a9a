package usecase

import (
	"context"
	"errors"
	"testing"

	"secops/internal/domain"
)

func vulnFixture(t *testing.T) (*VulnerabilityService, domain.Project) {
	t.Helper()
	projects := newFakeProjectRepo()
	p, err := projects.Create(context.Background(), domain.Project{Name: "acme"})
	if err != nil {
		t.Fatalf("fixture project: %v", err)
	}
	return NewVulnerabilityService(newFakeVulnRepo(), projects), p
}

func TestVulnerabilityCreateDefaults(t *testing.T) {
	svc, p := vulnFixture(t)
	v, err := svc.Create(context.Background(), p.ID, "open bucket", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Severity != domain.DefaultSeverity || v.Status != domain.DefaultVulnerabilityStatus {
		t.Fatalf("unexpected defaults %+v", v)
	}
}

func TestVulnerabilityCreateRejectsBadSeverity(t *testing.T) {
	svc, p := vulnFixture(t)
	_, err := svc.Create(context.Background(), p.ID, "open bucket", "", "catastrophic", "")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestVulnerabilityUpdateSeverityAndStatus(t *testing.T) {
	svc, p := vulnFixture(t)
	v, _ := svc.Create(context.Background(), p.ID, "open bucket", "", "high", "open")

	sev, status := "critical", "triaged"
	updated, err := svc.Update(context.Background(), v.ID, nil, nil, &sev, &status)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Severity != "critical" || updated.Status != "triaged" {
		t.Fatalf("unexpected vulnerability %+v", updated)
	}
}

func TestVulnerabilityDeleteRequiresAdmin(t *testing.T) {
	svc, p := vulnFixture(t)
	v, _ := svc.Create(context.Background(), p.ID, "open bucket", "", "", "")

	if err := svc.Delete(context.Background(), viewerPrincipal, v.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminPrincipal, v.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
