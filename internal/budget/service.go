package budget

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/relay"
	"github.com/weddingelite/backend/pkg/db"
	"github.com/weddingelite/backend/pkg/db/models"
	pkgerrors "github.com/weddingelite/backend/pkg/errors"
)

// Service defines budget category operations scoped to one wedding.
type Service interface {
	Create(ctx context.Context, weddingID uuid.UUID, params CreateParams) (*CategoryView, error)
	Get(ctx context.Context, weddingID, categoryID uuid.UUID) (*CategoryView, error)
	List(ctx context.Context, weddingID uuid.UUID) ([]CategoryView, error)
	Update(ctx context.Context, weddingID, categoryID uuid.UUID, params UpdateParams) (*CategoryView, error)
	Delete(ctx context.Context, weddingID, categoryID uuid.UUID) error
}

type service struct {
	repo      Repository
	publisher relay.Publisher
}

// NewService wires budget category dependencies.
func NewService(repo Repository, publisher relay.Publisher) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "budget repository required")
	}
	if publisher == nil {
		publisher = relay.Nop{}
	}
	return &service{repo: repo, publisher: publisher}, nil
}

// CreateParams carries the client-settable category fields.
type CreateParams struct {
	Name          string
	Icon          string
	PlannedAmount decimal.Decimal
	Notes         string
}

// UpdateParams is an explicit partial update: nil means leave unchanged.
// actual_amount is deliberately absent; it only moves via booking deltas.
type UpdateParams struct {
	Name          *string
	Icon          *string
	PlannedAmount *decimal.Decimal
	Notes         *string
}

func (p UpdateParams) toUpdates() map[string]any {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Icon != nil {
		updates["icon"] = *p.Icon
	}
	if p.PlannedAmount != nil {
		updates["planned_amount"] = *p.PlannedAmount
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	return updates
}

// CategoryView is the category row plus its derived spend percentage.
type CategoryView struct {
	models.BudgetCategory
	PercentageSpent int `json:"percentage_spent"`
}

var oneHundred = decimal.NewFromInt(100)

func newCategoryView(category models.BudgetCategory) CategoryView {
	view := CategoryView{BudgetCategory: category}
	if category.PlannedAmount.IsPositive() {
		view.PercentageSpent = int(category.ActualAmount.Div(category.PlannedAmount).Mul(oneHundred).IntPart())
	}
	return view
}

func (s *service) Create(ctx context.Context, weddingID uuid.UUID, params CreateParams) (*CategoryView, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	if params.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	if params.PlannedAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "planned amount cannot be negative")
	}

	exists, err := s.repo.WeddingExists(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wedding")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}

	category := models.BudgetCategory{
		WeddingID:     weddingID,
		Name:          params.Name,
		Icon:          params.Icon,
		PlannedAmount: params.PlannedAmount,
		Notes:         params.Notes,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}

	s.publisher.Publish(ctx, relay.Event{
		WeddingID: weddingID,
		Entity:    relay.EntityCategory,
		Action:    relay.ActionCreated,
		EntityID:  category.ID,
	})

	view := newCategoryView(category)
	return &view, nil
}

func (s *service) Get(ctx context.Context, weddingID, categoryID uuid.UUID) (*CategoryView, error) {
	category, err := s.repo.GetByID(ctx, weddingID, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get category")
	}
	view := newCategoryView(*category)
	return &view, nil
}

func (s *service) List(ctx context.Context, weddingID uuid.UUID) ([]CategoryView, error) {
	exists, err := s.repo.WeddingExists(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wedding")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}

	categories, err := s.repo.ListByWedding(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}

	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, newCategoryView(category))
	}
	return views, nil
}

func (s *service) Update(ctx context.Context, weddingID, categoryID uuid.UUID, params UpdateParams) (*CategoryView, error) {
	updates := params.toUpdates()
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if params.PlannedAmount != nil && params.PlannedAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "planned amount cannot be negative")
	}
	if params.Name != nil && *params.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	affected, err := s.repo.Update(ctx, weddingID, categoryID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	s.publisher.Publish(ctx, relay.Event{
		WeddingID: weddingID,
		Entity:    relay.EntityCategory,
		Action:    relay.ActionUpdated,
		EntityID:  categoryID,
	})

	return s.Get(ctx, weddingID, categoryID)
}

func (s *service) Delete(ctx context.Context, weddingID, categoryID uuid.UUID) error {
	bookings, affected, err := s.repo.DeleteIfUnused(ctx, weddingID, categoryID)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			// A booking committed while the delete ran; same refusal as the
			// count-based guard.
			return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "category has vendor bookings")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	if bookings > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "category has vendor bookings").
			WithDetails(map[string]any{"bookings": bookings})
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	s.publisher.Publish(ctx, relay.Event{
		WeddingID: weddingID,
		Entity:    relay.EntityCategory,
		Action:    relay.ActionDeleted,
		EntityID:  categoryID,
	})
	return nil
}
