package db

import (
	"context"
	"fmt"

	"secops/internal/domain"
)

// Seed loads a small demo dataset. When keep is false any existing rows are
// wiped first; with keep set the seed is skipped if projects already exist.
func Seed(ctx context.Context, store *Store, keep bool) error {
	if !store.Available() {
		return errNoDB
	}

	if keep {
		var count int64
		if err := store.DB.WithContext(ctx).Model(&ProjectModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
	} else {
		for _, model := range []any{&VulnerabilityModel{}, &TaskModel{}, &ProjectModel{}} {
			if err := store.DB.WithContext(ctx).Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
	}

	projects := NewProjectRepo(store)
	tasks := NewTaskRepo(store)
	vulns := NewVulnerabilityRepo(store)

	type seedProject struct {
		name, desc string
		tasks      []domain.Task
		vulns      []domain.Vulnerability
	}

	data := []seedProject{
		{
			name: "acme-cloud",
			desc: "Cloud platform hardening engagement for Acme Corp",
			tasks: []domain.Task{
				{Title: "Review IAM policies", Description: "Audit service account scopes and role bindings", Status: "open"},
				{Title: "Rotate leaked API keys", Description: "Keys found in public gist, rotate and audit usage", Status: "in_progress"},
				{Title: "Enable VPC flow logs", Description: "Turn on flow logs for all production subnets", Status: "open"},
				{Title: "Close storage bucket exposure", Description: "Two buckets are publicly listable", Status: "done"},
			},
			vulns: []domain.Vulnerability{
				{Title: "Public S3 bucket with customer exports", Description: "Bucket acme-exports allows anonymous list and get", Severity: "critical", Status: "open"},
				{Title: "Over-privileged CI service account", Description: "CI runner holds project owner role", Severity: "high", Status: "open"},
				{Title: "Unencrypted database snapshots", Description: "Nightly snapshots stored without encryption at rest", Severity: "medium", Status: "triaged"},
			},
		},
		{
			name: "globex-web",
			desc: "External web application assessment for Globex",
			tasks: []domain.Task{
				{Title: "Crawl and map attack surface", Description: "Enumerate endpoints behind the marketing site", Status: "done"},
				{Title: "Test auth flows", Description: "Password reset and session fixation checks", Status: "in_progress"},
				{Title: "Write findings report", Description: "Draft executive summary and remediation plan", Status: "open"},
			},
			vulns: []domain.Vulnerability{
				{Title: "Reflected XSS in search parameter", Description: "q parameter echoed unescaped on /search", Severity: "high", Status: "open"},
				{Title: "Verbose error pages leak stack traces", Description: "500 responses include framework stack traces", Severity: "low", Status: "open"},
				{Title: "Session cookie missing Secure flag", Description: "Cookie sent over plain HTTP on redirect", Severity: "medium", Status: "resolved"},
			},
		},
		{
			name: "initech-internal",
			desc: "Internal network review for Initech",
			tasks: []domain.Task{
				{Title: "Scan internal ranges", Description: "Full TCP scan of 10.20.0.0/16", Status: "done"},
				{Title: "Review legacy file shares", Description: "SMB shares with Everyone read access", Status: "in_progress"},
				{Title: "Validate patch baseline", Description: "Compare workstation fleet against current baseline", Status: "open"},
			},
			vulns: []domain.Vulnerability{
				{Title: "Domain controller missing critical patches", Description: "DC02 is three cumulative updates behind", Severity: "critical", Status: "open"},
				{Title: "Cleartext credentials on file share", Description: "ops share contains passwords.xlsx", Severity: "high", Status: "triaged"},
			},
		},
	}

	for _, sp := range data {
		p, err := projects.Create(ctx, domain.Project{Name: sp.name, Description: sp.desc})
		if err != nil {
			return fmt.Errorf("seed project %s: %w", sp.name, err)
		}
		for _, t := range sp.tasks {
			t.ProjectID = p.ID
			if _, err := tasks.Create(ctx, t); err != nil {
				return fmt.Errorf("seed task %q: %w", t.Title, err)
			}
		}
		for _, v := range sp.vulns {
			v.ProjectID = p.ID
			if _, err := vulns.Create(ctx, v); err != nil {
				return fmt.Errorf("seed vulnerability %q: %w", v.Title, err)
			}
		}
	}
	return nil
}
