package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/relay"
	"github.com/weddingelite/backend/pkg/db/models"
	"github.com/weddingelite/backend/pkg/enums"
	pkgerrors "github.com/weddingelite/backend/pkg/errors"
)

// Service defines checklist task operations. Completion is exposed both as
// an explicit set-state pair and as a toggle; all three fail with NotFound
// for an unknown task id.
type Service interface {
	Create(ctx context.Context, weddingID uuid.UUID, params CreateParams) (*models.Task, error)
	Get(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error)
	List(ctx context.Context, weddingID uuid.UUID, period *enums.TimelinePeriod) ([]models.Task, error)
	Update(ctx context.Context, weddingID, taskID uuid.UUID, params UpdateParams) (*models.Task, error)
	Complete(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error)
	Uncomplete(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error)
	Toggle(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error)
	Delete(ctx context.Context, weddingID, taskID uuid.UUID) error
}

// Notifier records a human-readable notification for a wedding.
type Notifier interface {
	Notify(ctx context.Context, weddingID uuid.UUID, title, message, kind string) error
}

type service struct {
	repo      Repository
	notifier  Notifier
	publisher relay.Publisher
	now       func() time.Time
}

// NewService wires task dependencies. notifier may be nil, in which case
// urgent completions do not produce notification rows.
func NewService(repo Repository, notifier Notifier, publisher relay.Publisher) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "tasks repository required")
	}
	if publisher == nil {
		publisher = relay.Nop{}
	}
	return &service{repo: repo, notifier: notifier, publisher: publisher, now: func() time.Time { return time.Now().UTC() }}, nil
}

// CreateParams carries the client-settable task fields.
type CreateParams struct {
	Title          string
	Description    string
	TimelinePeriod enums.TimelinePeriod
	DueDate        *time.Time
	IsUrgent       bool
}

// UpdateParams is an explicit partial update: nil means leave unchanged.
// Completion state moves through Complete/Uncomplete/Toggle, not here.
type UpdateParams struct {
	Title          *string
	Description    *string
	TimelinePeriod *enums.TimelinePeriod
	DueDate        *time.Time
	IsUrgent       *bool
}

func (p UpdateParams) toUpdates() map[string]any {
	updates := map[string]any{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.TimelinePeriod != nil {
		updates["timeline_period"] = *p.TimelinePeriod
	}
	if p.DueDate != nil {
		updates["due_date"] = *p.DueDate
	}
	if p.IsUrgent != nil {
		updates["is_urgent"] = *p.IsUrgent
	}
	return updates
}

func (s *service) Create(ctx context.Context, weddingID uuid.UUID, params CreateParams) (*models.Task, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	if params.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task title required")
	}
	if _, err := enums.ParseTimelinePeriod(string(params.TimelinePeriod)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid timeline period")
	}

	exists, err := s.repo.WeddingExists(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wedding")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}

	task := models.Task{
		WeddingID:      weddingID,
		Title:          params.Title,
		Description:    params.Description,
		TimelinePeriod: params.TimelinePeriod,
		DueDate:        params.DueDate,
		IsUrgent:       params.IsUrgent,
	}
	if err := s.repo.Create(ctx, &task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create task")
	}

	s.publish(ctx, weddingID, task.ID, relay.ActionCreated)
	return &task, nil
}

func (s *service) Get(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.repo.GetByID(ctx, weddingID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get task")
	}
	return task, nil
}

func (s *service) List(ctx context.Context, weddingID uuid.UUID, period *enums.TimelinePeriod) ([]models.Task, error) {
	exists, err := s.repo.WeddingExists(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wedding")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}
	if period != nil {
		if _, err := enums.ParseTimelinePeriod(string(*period)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid timeline period")
		}
	}

	tasks, err := s.repo.ListByWedding(ctx, weddingID, period)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}
	return tasks, nil
}

func (s *service) Update(ctx context.Context, weddingID, taskID uuid.UUID, params UpdateParams) (*models.Task, error) {
	updates := params.toUpdates()
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if params.Title != nil && *params.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task title required")
	}
	if params.TimelinePeriod != nil {
		if _, err := enums.ParseTimelinePeriod(string(*params.TimelinePeriod)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid timeline period")
		}
	}

	affected, err := s.repo.Update(ctx, weddingID, taskID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update task")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
	}

	s.publish(ctx, weddingID, taskID, relay.ActionUpdated)
	return s.Get(ctx, weddingID, taskID)
}

func (s *service) Complete(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error) {
	return s.setCompletion(ctx, weddingID, taskID, true)
}

func (s *service) Uncomplete(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error) {
	return s.setCompletion(ctx, weddingID, taskID, false)
}

func (s *service) Toggle(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error) {
	affected, err := s.repo.ToggleCompletion(ctx, weddingID, taskID, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle task completion")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
	}
	return s.finishCompletion(ctx, weddingID, taskID)
}

func (s *service) setCompletion(ctx context.Context, weddingID, taskID uuid.UUID, completed bool) (*models.Task, error) {
	affected, err := s.repo.SetCompletion(ctx, weddingID, taskID, completed, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set task completion")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
	}
	return s.finishCompletion(ctx, weddingID, taskID)
}

// finishCompletion reloads the task, then broadcasts. The relay event only
// fires once the caller is guaranteed to see the same committed state.
func (s *service) finishCompletion(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.Get(ctx, weddingID, taskID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, weddingID, taskID, relay.ActionUpdated)
	if task.IsCompleted && task.IsUrgent && s.notifier != nil {
		// Advisory; a failed notification must not undo the completion.
		_ = s.notifier.Notify(ctx, weddingID, "Urgent task done", task.Title, "success")
	}
	return task, nil
}

func (s *service) Delete(ctx context.Context, weddingID, taskID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, weddingID, taskID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete task")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
	}

	s.publish(ctx, weddingID, taskID, relay.ActionDeleted)
	return nil
}

func (s *service) publish(ctx context.Context, weddingID, taskID uuid.UUID, action string) {
	s.publisher.Publish(ctx, relay.Event{
		WeddingID: weddingID,
		Entity:    relay.EntityTask,
		Action:    action,
		EntityID:  taskID,
	})
}
