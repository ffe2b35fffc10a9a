package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secops/internal/domain"
)

type ProjectRepo struct {
	store *Store
}

func NewProjectRepo(store *Store) *ProjectRepo {
	return &ProjectRepo{store: store}
}

func (r *ProjectRepo) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	if !r.store.Available() {
		return domain.Project{}, errNoDB
	}
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	m := projectModel(p)
	if err := r.store.DB.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Project{}, domain.ErrConflict
		}
		return domain.Project{}, err
	}
	return m.toDomain(), nil
}

func (r *ProjectRepo) Get(ctx context.Context, id string) (domain.Project, error) {
	if !r.store.Available() {
		return domain.Project{}, errNoDB
	}
	var m ProjectModel
	err := r.store.DB.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Project{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Project{}, err
	}
	return m.toDomain(), nil
}

func (r *ProjectRepo) List(ctx context.Context, f domain.ProjectFilter, limit, offset int) ([]domain.Project, int64, error) {
	if !r.store.Available() {
		return nil, 0, errNoDB
	}
	q := r.store.DB.WithContext(ctx).Model(&ProjectModel{})
	if f.Query != "" {
		q = q.Where("name ILIKE ?", "%"+f.Query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []ProjectModel
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.Project, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, total, nil
}

func (r *ProjectRepo) Update(ctx context.Context, p domain.Project) (domain.Project, error) {
	if !r.store.Available() {
		return domain.Project{}, errNoDB
	}
	p.UpdatedAt = time.Now().UTC()
	res := r.store.DB.WithContext(ctx).Model(&ProjectModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"updated_at":  p.UpdatedAt,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.Project{}, domain.ErrConflict
		}
		return domain.Project{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Project{}, domain.ErrNotFound
	}
	return r.Get(ctx, p.ID)
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return errNoDB
	}
	res := r.store.DB.WithContext(ctx).Delete(&ProjectModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
