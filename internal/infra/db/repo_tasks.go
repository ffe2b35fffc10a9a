package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"secops/internal/domain"
)

type TaskRepo struct {
	store *Store
}

func NewTaskRepo(store *Store) *TaskRepo {
	return &TaskRepo{store: store}
}

func (r *TaskRepo) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	if !r.store.Available() {
		return domain.Task{}, errNoDB
	}
	now := time.Now().UTC()
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now

	m := taskModel(t)
	if err := r.store.DB.WithContext(ctx).Omit("Project").Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.Task{}, domain.ErrNotFound
		}
		return domain.Task{}, err
	}
	return m.toDomain(), nil
}

func (r *TaskRepo) Get(ctx context.Context, id string) (domain.Task, error) {
	if !r.store.Available() {
		return domain.Task{}, errNoDB
	}
	var m TaskModel
	err := r.store.DB.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Task{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return m.toDomain(), nil
}

func (r *TaskRepo) List(ctx context.Context, f domain.TaskFilter, limit, offset int) ([]domain.Task, int64, error) {
	if !r.store.Available() {
		return nil, 0, errNoDB
	}
	q := r.store.DB.WithContext(ctx).Model(&TaskModel{})
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
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

	var models []TaskModel
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.Task, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, total, nil
}

func (r *TaskRepo) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	if !r.store.Available() {
		return domain.Task{}, errNoDB
	}
	t.UpdatedAt = time.Now().UTC()
	res := r.store.DB.WithContext(ctx).Model(&TaskModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"status":      t.Status,
			"updated_at":  t.UpdatedAt,
		})
	if res.Error != nil {
		return domain.Task{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Task{}, domain.ErrNotFound
	}
	return r.Get(ctx, t.ID)
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	if !r.store.Available() {
		return errNoDB
	}
	res := r.store.DB.WithContext(ctx).Delete(&TaskModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
