package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/weddingelite/backend/internal/budget"
	"github.com/weddingelite/backend/internal/dashboard"
	"github.com/weddingelite/backend/internal/guests"
	"github.com/weddingelite/backend/internal/notifications"
	"github.com/weddingelite/backend/internal/tasks"
	"github.com/weddingelite/backend/internal/vendors"
	"github.com/weddingelite/backend/internal/weddings"
	"github.com/weddingelite/backend/pkg/config"
	"github.com/weddingelite/backend/pkg/db/models"
	"github.com/weddingelite/backend/pkg/enums"
	"github.com/weddingelite/backend/pkg/logger"
	"github.com/weddingelite/backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubWeddingsService struct{}

func (stubWeddingsService) Create(context.Context, weddings.CreateParams) (*weddings.WeddingView, error) {
	return &weddings.WeddingView{}, nil
}

func (stubWeddingsService) Get(context.Context, uuid.UUID) (*weddings.WeddingView, error) {
	return &weddings.WeddingView{}, nil
}

func (stubWeddingsService) List(context.Context) ([]weddings.WeddingView, error) {
	return nil, nil
}

func (stubWeddingsService) Update(context.Context, uuid.UUID, weddings.UpdateParams) (*weddings.WeddingView, error) {
	return &weddings.WeddingView{}, nil
}

func (stubWeddingsService) Delete(context.Context, uuid.UUID) error {
	return nil
}

func (stubWeddingsService) Dashboard(context.Context, uuid.UUID) (*dashboard.Snapshot, error) {
	return &dashboard.Snapshot{}, nil
}

type stubBudgetService struct{}

func (stubBudgetService) Create(context.Context, uuid.UUID, budget.CreateParams) (*budget.CategoryView, error) {
	return &budget.CategoryView{}, nil
}

func (stubBudgetService) Get(context.Context, uuid.UUID, uuid.UUID) (*budget.CategoryView, error) {
	return &budget.CategoryView{}, nil
}

func (stubBudgetService) List(context.Context, uuid.UUID) ([]budget.CategoryView, error) {
	return nil, nil
}

func (stubBudgetService) Update(context.Context, uuid.UUID, uuid.UUID, budget.UpdateParams) (*budget.CategoryView, error) {
	return &budget.CategoryView{}, nil
}

func (stubBudgetService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubVendorsService struct{}

func (stubVendorsService) Create(context.Context, uuid.UUID, vendors.CreateParams) (*models.VendorBooking, error) {
	return &models.VendorBooking{}, nil
}

func (stubVendorsService) Get(context.Context, uuid.UUID, uuid.UUID) (*models.VendorBooking, error) {
	return &models.VendorBooking{}, nil
}

func (stubVendorsService) List(context.Context, uuid.UUID, *uuid.UUID) ([]models.VendorBooking, error) {
	return nil, nil
}

func (stubVendorsService) Update(context.Context, uuid.UUID, uuid.UUID, vendors.UpdateParams) (*models.VendorBooking, error) {
	return &models.VendorBooking{}, nil
}

func (stubVendorsService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubTasksService struct{}

func (stubTasksService) Create(context.Context, uuid.UUID, tasks.CreateParams) (*models.Task, error) {
	return &models.Task{}, nil
}

func (stubTasksService) Get(context.Context, uuid.UUID, uuid.UUID) (*models.Task, error) {
	return &models.Task{}, nil
}

func (stubTasksService) List(context.Context, uuid.UUID, *enums.TimelinePeriod) ([]models.Task, error) {
	return nil, nil
}

func (stubTasksService) Update(context.Context, uuid.UUID, uuid.UUID, tasks.UpdateParams) (*models.Task, error) {
	return &models.Task{}, nil
}

func (stubTasksService) Complete(context.Context, uuid.UUID, uuid.UUID) (*models.Task, error) {
	return &models.Task{IsCompleted: true}, nil
}

func (stubTasksService) Uncomplete(context.Context, uuid.UUID, uuid.UUID) (*models.Task, error) {
	return &models.Task{}, nil
}

func (stubTasksService) Toggle(context.Context, uuid.UUID, uuid.UUID) (*models.Task, error) {
	return &models.Task{}, nil
}

func (stubTasksService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubGuestsService struct{}

func (stubGuestsService) Create(context.Context, uuid.UUID, guests.CreateParams) (*models.Guest, error) {
	return &models.Guest{}, nil
}

func (stubGuestsService) Get(context.Context, uuid.UUID, uuid.UUID) (*models.Guest, error) {
	return &models.Guest{}, nil
}

func (stubGuestsService) List(context.Context, uuid.UUID) (*guests.ListResult, error) {
	return &guests.ListResult{}, nil
}

func (stubGuestsService) Update(context.Context, uuid.UUID, uuid.UUID, guests.UpdateParams) (*models.Guest, error) {
	return &models.Guest{}, nil
}

func (stubGuestsService) SetRSVP(context.Context, uuid.UUID, uuid.UUID, enums.RSVPStatus) (*models.Guest, error) {
	return &models.Guest{}, nil
}

func (stubGuestsService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) Notify(context.Context, uuid.UUID, string, string, string) error {
	return nil
}

func (stubNotificationsService) List(context.Context, notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) MarkRead(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:        &config.Config{App: config.AppConfig{Env: "test", Port: "0"}},
		Logger:        logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Metrics:       metrics.NewHTTPMetrics(),
		DB:            stubPinger{},
		Redis:         stubPinger{},
		Weddings:      stubWeddingsService{},
		Budget:        stubBudgetService{},
		Vendors:       stubVendorsService{},
		Tasks:         stubTasksService{},
		Guests:        stubGuestsService{},
		Notifications: stubNotificationsService{},
	})
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, resp.Code)
		}
		if got := resp.Header().Get("X-WedElite-Env"); got != "test" {
			t.Fatalf("%s missing env header, got %q", path, got)
		}
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("/metrics returned %d", resp.Code)
	}
}

func TestRouterWeddingSubtree(t *testing.T) {
	router := newTestRouter(t)
	weddingID := uuid.NewString()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/weddings"},
		{http.MethodGet, "/api/v1/weddings/" + weddingID},
		{http.MethodGet, "/api/v1/weddings/" + weddingID + "/dashboard"},
		{http.MethodGet, "/api/v1/weddings/" + weddingID + "/budget"},
		{http.MethodGet, "/api/v1/weddings/" + weddingID + "/vendors"},
		{http.MethodGet, "/api/v1/weddings/" + weddingID + "/tasks"},
		{http.MethodGet, "/api/v1/weddings/" + weddingID + "/guests"},
		{http.MethodGet, "/api/v1/weddings/" + weddingID + "/notifications"},
		{http.MethodPost, "/api/v1/weddings/" + weddingID + "/tasks/" + uuid.NewString() + "/toggle"},
		{http.MethodPost, "/api/v1/weddings/" + weddingID + "/notifications/read-all"},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s %s returned %d: %s", tc.method, tc.path, resp.Code, resp.Body.String())
		}
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
