package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/weddingelite/backend/internal/tasks"
	"github.com/weddingelite/backend/pkg/db/models"
	"github.com/weddingelite/backend/pkg/enums"
)

type testTasksService struct {
	createFn func(ctx context.Context, weddingID uuid.UUID, params tasks.CreateParams) (*models.Task, error)
	toggleFn func(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error)
}

func (s *testTasksService) Create(ctx context.Context, weddingID uuid.UUID, params tasks.CreateParams) (*models.Task, error) {
	if s.createFn != nil {
		return s.createFn(ctx, weddingID, params)
	}
	return nil, nil
}

func (s *testTasksService) Get(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error) {
	return nil, nil
}

func (s *testTasksService) List(ctx context.Context, weddingID uuid.UUID, period *enums.TimelinePeriod) ([]models.Task, error) {
	return nil, nil
}

func (s *testTasksService) Update(ctx context.Context, weddingID, taskID uuid.UUID, params tasks.UpdateParams) (*models.Task, error) {
	return nil, nil
}

func (s *testTasksService) Complete(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error) {
	return &models.Task{ID: taskID, IsCompleted: true}, nil
}

func (s *testTasksService) Uncomplete(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error) {
	return &models.Task{ID: taskID}, nil
}

func (s *testTasksService) Toggle(ctx context.Context, weddingID, taskID uuid.UUID) (*models.Task, error) {
	if s.toggleFn != nil {
		return s.toggleFn(ctx, weddingID, taskID)
	}
	return nil, nil
}

func (s *testTasksService) Delete(ctx context.Context, weddingID, taskID uuid.UUID) error {
	return nil
}

func TestCreateTaskRejectsUnknownPeriod(t *testing.T) {
	weddingID := uuid.New()
	body := `{"title":"Book the band","timeline_period":"12-18"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/weddings/"+weddingID.String()+"/tasks", strings.NewReader(body))
	req = addRouteParam(req, "weddingID", weddingID.String())
	resp := httptest.NewRecorder()
	CreateTask(&testTasksService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateTaskPassesParsedPeriod(t *testing.T) {
	weddingID := uuid.New()
	var captured tasks.CreateParams
	svc := &testTasksService{
		createFn: func(ctx context.Context, id uuid.UUID, params tasks.CreateParams) (*models.Task, error) {
			captured = params
			return &models.Task{ID: uuid.New(), WeddingID: id}, nil
		},
	}

	body := `{"title":"Order invitations","timeline_period":"6-9","is_urgent":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/weddings/"+weddingID.String()+"/tasks", strings.NewReader(body))
	req = addRouteParam(req, "weddingID", weddingID.String())
	resp := httptest.NewRecorder()
	CreateTask(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.TimelinePeriod != enums.TimelinePeriod6To9 {
		t.Fatalf("unexpected period %s", captured.TimelinePeriod)
	}
	if !captured.IsUrgent {
		t.Fatal("expected urgent flag carried through")
	}
}

func TestToggleTaskRoutesParams(t *testing.T) {
	weddingID := uuid.New()
	taskID := uuid.New()
	svc := &testTasksService{
		toggleFn: func(ctx context.Context, wid, tid uuid.UUID) (*models.Task, error) {
			if wid != weddingID || tid != taskID {
				t.Fatalf("unexpected ids %s %s", wid, tid)
			}
			return &models.Task{ID: tid, IsCompleted: true}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/weddings/"+weddingID.String()+"/tasks/"+taskID.String()+"/toggle", nil)
	req = addRouteParam(req, "weddingID", weddingID.String())
	req = addRouteParam(req, "taskID", taskID.String())
	resp := httptest.NewRecorder()
	ToggleTask(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
