package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/weddingelite/backend/internal/dashboard"
	"github.com/weddingelite/backend/internal/weddings"
	"github.com/weddingelite/backend/pkg/db/models"
	"github.com/weddingelite/backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx, ok := req.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		routeCtx = chi.NewRouteContext()
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	}
	routeCtx.URLParams.Add(key, value)
	return req
}

type testWeddingsService struct {
	createFn    func(ctx context.Context, params weddings.CreateParams) (*weddings.WeddingView, error)
	getFn       func(ctx context.Context, weddingID uuid.UUID) (*weddings.WeddingView, error)
	listFn      func(ctx context.Context) ([]weddings.WeddingView, error)
	updateFn    func(ctx context.Context, weddingID uuid.UUID, params weddings.UpdateParams) (*weddings.WeddingView, error)
	deleteFn    func(ctx context.Context, weddingID uuid.UUID) error
	dashboardFn func(ctx context.Context, weddingID uuid.UUID) (*dashboard.Snapshot, error)
}

func (s *testWeddingsService) Create(ctx context.Context, params weddings.CreateParams) (*weddings.WeddingView, error) {
	if s.createFn != nil {
		return s.createFn(ctx, params)
	}
	return nil, nil
}

func (s *testWeddingsService) Get(ctx context.Context, weddingID uuid.UUID) (*weddings.WeddingView, error) {
	if s.getFn != nil {
		return s.getFn(ctx, weddingID)
	}
	return nil, nil
}

func (s *testWeddingsService) List(ctx context.Context) ([]weddings.WeddingView, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *testWeddingsService) Update(ctx context.Context, weddingID uuid.UUID, params weddings.UpdateParams) (*weddings.WeddingView, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, weddingID, params)
	}
	return nil, nil
}

func (s *testWeddingsService) Delete(ctx context.Context, weddingID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, weddingID)
	}
	return nil
}

func (s *testWeddingsService) Dashboard(ctx context.Context, weddingID uuid.UUID) (*dashboard.Snapshot, error) {
	if s.dashboardFn != nil {
		return s.dashboardFn(ctx, weddingID)
	}
	return nil, nil
}

func TestCreateWeddingSuccess(t *testing.T) {
	var captured weddings.CreateParams
	svc := &testWeddingsService{
		createFn: func(ctx context.Context, params weddings.CreateParams) (*weddings.WeddingView, error) {
			captured = params
			view := weddings.WeddingView{Wedding: models.Wedding{ID: uuid.New()}, DaysRemaining: 200}
			return &view, nil
		},
	}

	body := `{"partner1_name":"Dana","partner2_name":"Alex","wedding_date":"2027-06-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/weddings", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CreateWedding(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.Partner1Name != "Dana" || captured.Partner2Name != "Alex" {
		t.Fatalf("unexpected params %+v", captured)
	}
	if captured.WeddingDate.Format("2006-01-02") != "2027-06-15" {
		t.Fatalf("unexpected date %s", captured.WeddingDate)
	}
	if captured.TotalBudget != nil || captured.GuestCount != nil {
		t.Fatal("expected budget and guest count left to defaults")
	}

	var envelope struct {
		Data weddings.WeddingView `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.DaysRemaining != 200 {
		t.Fatalf("expected days_remaining in payload, got %d", envelope.Data.DaysRemaining)
	}
}

func TestCreateWeddingBadDate(t *testing.T) {
	body := `{"partner1_name":"Dana","partner2_name":"Alex","wedding_date":"15/06/2027"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/weddings", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CreateWedding(&testWeddingsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateWeddingMissingPartner(t *testing.T) {
	body := `{"partner2_name":"Alex","wedding_date":"2027-06-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/weddings", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CreateWedding(&testWeddingsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetWeddingInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weddings/not-a-uuid", nil)
	req = addRouteParam(req, "weddingID", "not-a-uuid")
	resp := httptest.NewRecorder()
	GetWedding(&testWeddingsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetDashboardSuccess(t *testing.T) {
	weddingID := uuid.New()
	svc := &testWeddingsService{
		dashboardFn: func(ctx context.Context, id uuid.UUID) (*dashboard.Snapshot, error) {
			if id != weddingID {
				t.Fatalf("unexpected wedding %s", id)
			}
			return &dashboard.Snapshot{DaysRemaining: 42, BudgetPercentage: 40}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weddings/"+weddingID.String()+"/dashboard", nil)
	req = addRouteParam(req, "weddingID", weddingID.String())
	resp := httptest.NewRecorder()
	GetDashboard(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data dashboard.Snapshot `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.DaysRemaining != 42 || envelope.Data.BudgetPercentage != 40 {
		t.Fatalf("unexpected snapshot %+v", envelope.Data)
	}
}

func TestDeleteWeddingSuccess(t *testing.T) {
	weddingID := uuid.New()
	called := false
	svc := &testWeddingsService{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			called = true
			if id != weddingID {
				t.Fatalf("unexpected wedding %s", id)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/weddings/"+weddingID.String(), nil)
	req = addRouteParam(req, "weddingID", weddingID.String())
	resp := httptest.NewRecorder()
	DeleteWedding(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}
