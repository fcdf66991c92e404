package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/repo"
	"github.com/weddingelite/backend/pkg/db/models"
	"github.com/weddingelite/backend/pkg/enums"
)

// Repository exposes persistence helpers for checklist tasks.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, task *models.Task) error
	CreateBatch(ctx context.Context, tasks []models.Task) error
	GetByID(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error)
	ListByWedding(ctx context.Context, weddingID uuid.UUID, period *enums.TimelinePeriod) ([]models.Task, error)
	Update(ctx context.Context, weddingID, taskID uuid.UUID, updates map[string]any) (int64, error)
	SetCompletion(ctx context.Context, weddingID, taskID uuid.UUID, completed bool, now time.Time) (int64, error)
	ToggleCompletion(ctx context.Context, weddingID, taskID uuid.UUID, now time.Time) (int64, error)
	Delete(ctx context.Context, weddingID, taskID uuid.UUID) (int64, error)
	WeddingExists(ctx context.Context, weddingID uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a task repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{Base: repo.NewBase(tx)}
}

func (r *repositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.DB(ctx).Create(task).Error
}

func (r *repositoryImpl) CreateBatch(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&tasks).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.DB(ctx).
		Where("id = ? AND wedding_id = ?", taskID, weddingID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *repositoryImpl) ListByWedding(ctx context.Context, weddingID uuid.UUID, period *enums.TimelinePeriod) ([]models.Task, error) {
	query := r.DB(ctx).Where("wedding_id = ?", weddingID)
	if period != nil {
		query = query.Where("timeline_period = ?", *period)
	}

	var tasks []models.Task
	err := query.Order("created_at ASC, id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *repositoryImpl) Update(ctx context.Context, weddingID, taskID uuid.UUID, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	result := r.DB(ctx).
		Model(&models.Task{}).
		Where("id = ? AND wedding_id = ?", taskID, weddingID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) SetCompletion(ctx context.Context, weddingID, taskID uuid.UUID, completed bool, now time.Time) (int64, error) {
	updates := map[string]any{
		"is_completed": completed,
		"completed_at": nil,
	}
	if completed {
		updates["completed_at"] = now
	}
	result := r.DB(ctx).
		Model(&models.Task{}).
		Where("id = ? AND wedding_id = ?", taskID, weddingID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// ToggleCompletion flips is_completed in a single statement; both SET
// expressions see the pre-update row, so two concurrent toggles serialize
// instead of both writing the state they read.
func (r *repositoryImpl) ToggleCompletion(ctx context.Context, weddingID, taskID uuid.UUID, now time.Time) (int64, error) {
	result := r.DB(ctx).
		Model(&models.Task{}).
		Where("id = ? AND wedding_id = ?", taskID, weddingID).
		Updates(map[string]any{
			"is_completed": gorm.Expr("NOT is_completed"),
			"completed_at": gorm.Expr("CASE WHEN is_completed THEN NULL ELSE ? END", now),
		})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, weddingID, taskID uuid.UUID) (int64, error) {
	result := r.DB(ctx).
		Where("id = ? AND wedding_id = ?", taskID, weddingID).
		Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
