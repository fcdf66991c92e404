package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/relay"
	"github.com/weddingelite/backend/pkg/db/models"
	pkgerrors "github.com/weddingelite/backend/pkg/errors"
)

type fakeRepository struct {
	createFn         func(ctx context.Context, category *models.BudgetCategory) error
	getFn            func(ctx context.Context, weddingID, categoryID uuid.UUID) (*models.BudgetCategory, error)
	listFn           func(ctx context.Context, weddingID uuid.UUID) ([]models.BudgetCategory, error)
	updateFn         func(ctx context.Context, weddingID, categoryID uuid.UUID, updates map[string]any) (int64, error)
	deleteFn         func(ctx context.Context, weddingID, categoryID uuid.UUID) (int64, error)
	deleteIfUnusedFn func(ctx context.Context, weddingID, categoryID uuid.UUID) (int64, int64, error)
	weddingExists    bool
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, category *models.BudgetCategory) error {
	if f.createFn != nil {
		return f.createFn(ctx, category)
	}
	category.ID = uuid.New()
	return nil
}

func (f *fakeRepository) CreateBatch(ctx context.Context, categories []models.BudgetCategory) error {
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, weddingID, categoryID uuid.UUID) (*models.BudgetCategory, error) {
	if f.getFn != nil {
		return f.getFn(ctx, weddingID, categoryID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.BudgetCategory, error) {
	if f.listFn != nil {
		return f.listFn(ctx, weddingID)
	}
	return nil, nil
}

func (f *fakeRepository) Update(ctx context.Context, weddingID, categoryID uuid.UUID, updates map[string]any) (int64, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, weddingID, categoryID, updates)
	}
	return 0, nil
}

func (f *fakeRepository) Delete(ctx context.Context, weddingID, categoryID uuid.UUID) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, weddingID, categoryID)
	}
	return 0, nil
}

func (f *fakeRepository) ApplyDelta(ctx context.Context, weddingID, categoryID uuid.UUID, delta decimal.Decimal) (int64, error) {
	return 1, nil
}

func (f *fakeRepository) DeleteIfUnused(ctx context.Context, weddingID, categoryID uuid.UUID) (int64, int64, error) {
	if f.deleteIfUnusedFn != nil {
		return f.deleteIfUnusedFn(ctx, weddingID, categoryID)
	}
	return 0, 0, nil
}

func (f *fakeRepository) WeddingExists(ctx context.Context, weddingID uuid.UUID) (bool, error) {
	return f.weddingExists, nil
}

type recordingPublisher struct {
	events []relay.Event
}

func (r *recordingPublisher) Publish(_ context.Context, event relay.Event) {
	r.events = append(r.events, event)
}

func newServiceWithRepo(t *testing.T, repo Repository, publisher relay.Publisher) Service {
	t.Helper()
	svc, err := NewService(repo, publisher)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestService_CreateValidates(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{weddingExists: true}, nil)

	_, err := svc.Create(context.Background(), uuid.New(), CreateParams{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.New(), CreateParams{Name: "Venue", PlannedAmount: decimal.NewFromInt(-1)})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}
}

func TestService_CreateUnknownWedding(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{weddingExists: false}, nil)

	_, err := svc.Create(context.Background(), uuid.New(), CreateParams{Name: "Venue"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_CreatePublishesEvent(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := newServiceWithRepo(t, &fakeRepository{weddingExists: true}, publisher)
	weddingID := uuid.New()

	view, err := svc.Create(context.Background(), weddingID, CreateParams{Name: "Venue", PlannedAmount: decimal.NewFromInt(90000)})
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if view.PercentageSpent != 0 {
		t.Fatalf("new category should start at 0%%, got %d", view.PercentageSpent)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 relay event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.WeddingID != weddingID || event.Entity != relay.EntityCategory || event.Action != relay.ActionCreated {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestService_GetComputesPercentage(t *testing.T) {
	repo := &fakeRepository{
		getFn: func(ctx context.Context, weddingID, categoryID uuid.UUID) (*models.BudgetCategory, error) {
			return &models.BudgetCategory{
				PlannedAmount: decimal.NewFromInt(50000),
				ActualAmount:  decimal.NewFromInt(20000),
			}, nil
		},
	}
	svc := newServiceWithRepo(t, repo, nil)

	view, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if view.PercentageSpent != 40 {
		t.Fatalf("expected 40%%, got %d", view.PercentageSpent)
	}
}

func TestService_UpdateNotFound(t *testing.T) {
	repo := &fakeRepository{
		updateFn: func(ctx context.Context, weddingID, categoryID uuid.UUID, updates map[string]any) (int64, error) {
			return 0, nil
		},
	}
	svc := newServiceWithRepo(t, repo, nil)

	name := "Venue"
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateParams{Name: &name})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_UpdateRequiresFields(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{}, nil)

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateParams{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_DeleteRefusedWhenBookingsExist(t *testing.T) {
	publisher := &recordingPublisher{}
	repo := &fakeRepository{
		deleteIfUnusedFn: func(ctx context.Context, weddingID, categoryID uuid.UUID) (int64, int64, error) {
			return 2, 0, nil
		},
	}
	svc := newServiceWithRepo(t, repo, publisher)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("no relay event should fire for a refused delete")
	}
}

func TestService_DeleteMapsForeignKeyRefusal(t *testing.T) {
	publisher := &recordingPublisher{}
	repo := &fakeRepository{
		deleteIfUnusedFn: func(ctx context.Context, weddingID, categoryID uuid.UUID) (int64, int64, error) {
			return 0, 0, errors.New(`delete on table "budget_categories" violates foreign key constraint`)
		},
	}
	svc := newServiceWithRepo(t, repo, publisher)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("no relay event should fire for a refused delete")
	}
}

func TestService_DeletePublishesEvent(t *testing.T) {
	publisher := &recordingPublisher{}
	repo := &fakeRepository{
		deleteIfUnusedFn: func(ctx context.Context, weddingID, categoryID uuid.UUID) (int64, int64, error) {
			return 0, 1, nil
		},
	}
	svc := newServiceWithRepo(t, repo, publisher)

	if err := svc.Delete(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if len(publisher.events) != 1 || publisher.events[0].Action != relay.ActionDeleted {
		t.Fatalf("expected delete event, got %+v", publisher.events)
	}
}
