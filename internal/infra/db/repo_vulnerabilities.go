package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secops/internal/domain"
)

type VulnerabilityRepo struct {
	store *Store
}

func NewVulnerabilityRepo(store *Store) *VulnerabilityRepo {
	return &VulnerabilityRepo{store: store}
}

func (r *VulnerabilityRepo) Create(ctx context.Context, v domain.Vulnerability) (domain.Vulnerability, error) {
	if !r.store.Available() {
		return domain.Vulnerability{}, errNoDB
	}
	now := time.Now().UTC()
	v.ID = uuid.NewString()
	v.CreatedAt = now
	v.UpdatedAt = now

	m := vulnerabilityModel(v)
	if err := r.store.DB.WithContext(ctx).Omit("Project").Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.Vulnerability{}, domain.ErrNotFound
		}
		return domain.Vulnerability{}, err
	}
	return m.toDomain(), nil
}

func (r *VulnerabilityRepo) Get(ctx context.Context, id string) (domain.Vulnerability, error) {
	if !r.store.Available() {
		return domain.Vulnerability{}, errNoDB
	}
	var m VulnerabilityModel
	err := r.store.DB.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Vulnerability{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Vulnerability{}, err
	}
	return m.toDomain(), nil
}

func (r *VulnerabilityRepo) List(ctx context.Context, f domain.VulnerabilityFilter, limit, offset int) ([]domain.Vulnerability, int64, error) {
	if !r.store.Available() {
		return nil, 0, errNoDB
	}
	q := r.store.DB.WithContext(ctx).Model(&VulnerabilityModel{})
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []VulnerabilityModel
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.Vulnerability, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, total, nil
}

func (r *VulnerabilityRepo) Update(ctx context.Context, v domain.Vulnerability) (domain.Vulnerability, error) {
	if !r.store.Available() {
		return domain.Vulnerability{}, errNoDB
	}
	v.UpdatedAt = time.Now().UTC()
	res := r.store.DB.WithContext(ctx).Model(&VulnerabilityModel{}).
		Where("id = ?", v.ID).
		Updates(map[string]any{
			"title":       v.Title,
			"description": v.Description,
			"severity":    v.Severity,
			"status":      v.Status,
			"updated_at":  v.UpdatedAt,
		})
	if res.Error != nil {
		return domain.Vulnerability{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Vulnerability{}, domain.ErrNotFound
	}
	return r.Get(ctx, v.ID)
}

func (r *VulnerabilityRepo) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return errNoDB
	}
	res := r.store.DB.WithContext(ctx).Delete(&VulnerabilityModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
