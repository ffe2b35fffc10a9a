package domain

import "time"

// Project is a security engagement that owns tasks and vulnerabilities.
type Project struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Task is a work item within a project.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Vulnerability is a finding within a project.
type Vulnerability struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Severity    string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	DefaultTaskStatus          = "open"
	DefaultVulnerabilityStatus = "open"
	DefaultSeverity            = "medium"
)

// ProjectFilter narrows project listings. Zero values mean "no filter".
type ProjectFilter struct {
	Query string
}

// TaskFilter narrows task listings. Zero values mean "no filter".
type TaskFilter struct {
	ProjectID string
	Status    string
	Query     string
}

// VulnerabilityFilter narrows vulnerability listings.
type VulnerabilityFilter struct {
	ProjectID string
	Severity  string
	Status    string
	Query     string
}
