package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/weddingelite/backend/api/responses"
	"github.com/weddingelite/backend/api/validators"
	"github.com/weddingelite/backend/internal/tasks"
	"github.com/weddingelite/backend/pkg/db/models"
	"github.com/weddingelite/backend/pkg/enums"
	pkgerrors "github.com/weddingelite/backend/pkg/errors"
	"github.com/weddingelite/backend/pkg/logger"
)

type createTaskRequest struct {
	Title          string  `json:"title" validate:"required,max=200"`
	Description    string  `json:"description"`
	TimelinePeriod string  `json:"timeline_period" validate:"required,oneof=9-12 6-9 3-6 1-3"`
	DueDate        *string `json:"due_date"`
	IsUrgent       bool    `json:"is_urgent"`
}

type updateTaskRequest struct {
	Title          *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string `json:"description"`
	TimelinePeriod *string `json:"timeline_period" validate:"omitempty,oneof=9-12 6-9 3-6 1-3"`
	DueDate        *string `json:"due_date"`
	IsUrgent       *bool   `json:"is_urgent"`
}

// CreateTask adds a planning task to a wedding.
func CreateTask(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createTaskRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		period, err := enums.ParseTimelinePeriod(body.TimelinePeriod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid timeline_period"))
			return
		}
		dueDate, err := parseOptionalDate(body.DueDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.Create(r.Context(), weddingID, tasks.CreateParams{
			Title:          body.Title,
			Description:    body.Description,
			TimelinePeriod: period,
			DueDate:        dueDate,
			IsUrgent:       body.IsUrgent,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, task)
	}
}

// GetTask returns one task.
func GetTask(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		taskID, err := parseUUIDParam(r, "taskID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := svc.Get(r.Context(), weddingID, taskID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, task)
	}
}

// ListTasks returns the wedding's tasks, optionally scoped to one
// timeline period via ?period=.
func ListTasks(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var period *enums.TimelinePeriod
		if raw := r.URL.Query().Get("period"); raw != "" {
			parsed, err := enums.ParseTimelinePeriod(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period"))
				return
			}
			period = &parsed
		}

		items, err := svc.List(r.Context(), weddingID, period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// UpdateTask applies a partial update to a task's descriptive fields.
func UpdateTask(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		taskID, err := parseUUIDParam(r, "taskID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateTaskRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := tasks.UpdateParams{
			Title:       body.Title,
			Description: body.Description,
			IsUrgent:    body.IsUrgent,
		}
		if body.TimelinePeriod != nil {
			period, err := enums.ParseTimelinePeriod(*body.TimelinePeriod)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid timeline_period"))
				return
			}
			params.TimelinePeriod = &period
		}
		dueDate, err := parseOptionalDate(body.DueDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.DueDate = dueDate

		task, err := svc.Update(r.Context(), weddingID, taskID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, task)
	}
}

// CompleteTask marks a task done. Completing a finished task is a no-op.
func CompleteTask(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return taskCompletionHandler(logg, svc.Complete)
}

// UncompleteTask reopens a finished task.
func UncompleteTask(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return taskCompletionHandler(logg, svc.Uncomplete)
}

// ToggleTask flips a task's completion state.
func ToggleTask(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return taskCompletionHandler(logg, svc.Toggle)
}

// DeleteTask removes a task.
func DeleteTask(svc tasks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		taskID, err := parseUUIDParam(r, "taskID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), weddingID, taskID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func taskCompletionHandler(logg *logger.Logger, op func(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		taskID, err := parseUUIDParam(r, "taskID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task, err := op(r.Context(), weddingID, taskID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, task)
	}
}
