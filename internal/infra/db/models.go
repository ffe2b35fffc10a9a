package db

import (
	"time"

	"secops/internal/domain"
)

type ProjectModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:255;not null;uniqueIndex"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProjectModel) TableName() string { return "projects" }

type TaskModel struct {
	ID          string       `gorm:"primaryKey;size:36"`
	ProjectID   string       `gorm:"size:36;not null;index"`
	Project     ProjectModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Title       string       `gorm:"size:255;not null"`
	Description string
	Status      string `gorm:"size:32;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TaskModel) TableName() string { return "tasks" }

type VulnerabilityModel struct {
	ID          string       `gorm:"primaryKey;size:36"`
	ProjectID   string       `gorm:"size:36;not null;index"`
	Project     ProjectModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Title       string       `gorm:"size:255;not null"`
	Description string
	Severity    string `gorm:"size:32;not null;index"`
	Status      string `gorm:"size:32;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (VulnerabilityModel) TableName() string { return "vulnerabilities" }

func (m ProjectModel) toDomain() domain.Project {
	return domain.Project{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func projectModel(p domain.Project) ProjectModel {
	return ProjectModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m TaskModel) toDomain() domain.Task {
	return domain.Task{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func taskModel(t domain.Task) TaskModel {
	return TaskModel{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m VulnerabilityModel) toDomain() domain.Vulnerability {
	return domain.Vulnerability{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Severity:    m.Severity,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func vulnerabilityModel(v domain.Vulnerability) VulnerabilityModel {
	return VulnerabilityModel{
		ID:          v.ID,
		ProjectID:   v.ProjectID,
		Title:       v.Title,
		Description: v.Description,
		Severity:    v.Severity,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
