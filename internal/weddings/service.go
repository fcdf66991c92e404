package weddings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/budget"
	"github.com/weddingelite/backend/internal/dashboard"
	"github.com/weddingelite/backend/internal/notifications"
	"github.com/weddingelite/backend/internal/planner"
	"github.com/weddingelite/backend/internal/relay"
	"github.com/weddingelite/backend/internal/tasks"
	"github.com/weddingelite/backend/pkg/config"
	"github.com/weddingelite/backend/pkg/db"
	"github.com/weddingelite/backend/pkg/db/models"
	pkgerrors "github.com/weddingelite/backend/pkg/errors"
)

// Service defines wedding lifecycle operations. Creation seeds the default
// budget categories and checklist in the same transaction as the wedding
// row; deletion cascades to every dependent row atomically.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*WeddingView, error)
	Get(ctx context.Context, weddingID uuid.UUID) (*WeddingView, error)
	List(ctx context.Context) ([]WeddingView, error)
	Update(ctx context.Context, weddingID uuid.UUID, params UpdateParams) (*WeddingView, error)
	Delete(ctx context.Context, weddingID uuid.UUID) error
	Dashboard(ctx context.Context, weddingID uuid.UUID) (*dashboard.Snapshot, error)
}

type service struct {
	client     *db.Client
	repo       Repository
	budgetRepo budget.Repository
	tasksRepo  tasks.Repository
	notifRepo  notifications.Repository
	seeds      planner.Config
	defaults   config.PlannerConfig
	publisher  relay.Publisher
	now        func() time.Time
}

// Deps collects the wedding service dependencies.
type Deps struct {
	Client     *db.Client
	Repo       Repository
	BudgetRepo budget.Repository
	TasksRepo  tasks.Repository
	NotifRepo  notifications.Repository
	Seeds      planner.Config
	Defaults   config.PlannerConfig
	Publisher  relay.Publisher
}

// NewService wires wedding dependencies.
func NewService(deps Deps) (Service, error) {
	if deps.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client required")
	}
	if deps.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "weddings repository required")
	}
	if deps.BudgetRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "budget repository required")
	}
	if deps.TasksRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "tasks repository required")
	}
	if deps.NotifRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if len(deps.Seeds.Categories) == 0 {
		deps.Seeds = planner.Default()
	}
	if deps.Defaults.MinLeadDays > 0 {
		deps.Seeds.MinLeadDays = deps.Defaults.MinLeadDays
	}
	if deps.Publisher == nil {
		deps.Publisher = relay.Nop{}
	}
	return &service{
		client:     deps.Client,
		repo:       deps.Repo,
		budgetRepo: deps.BudgetRepo,
		tasksRepo:  deps.TasksRepo,
		notifRepo:  deps.NotifRepo,
		seeds:      deps.Seeds,
		defaults:   deps.Defaults,
		publisher:  deps.Publisher,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// CreateParams carries the client-settable wedding fields. TotalBudget and
// GuestCount fall back to the configured product defaults when omitted.
type CreateParams struct {
	Partner1Name string
	Partner2Name string
	WeddingDate  time.Time
	TotalBudget  *decimal.Decimal
	GuestCount   *int
}

// UpdateParams is an explicit partial update: nil means leave unchanged.
type UpdateParams struct {
	Partner1Name *string
	Partner2Name *string
	WeddingDate  *time.Time
	TotalBudget  *decimal.Decimal
	GuestCount   *int
}

func (p UpdateParams) toUpdates() map[string]any {
	updates := map[string]any{}
	if p.Partner1Name != nil {
		updates["partner1_name"] = *p.Partner1Name
	}
	if p.Partner2Name != nil {
		updates["partner2_name"] = *p.Partner2Name
	}
	if p.WeddingDate != nil {
		updates["wedding_date"] = *p.WeddingDate
	}
	if p.TotalBudget != nil {
		updates["total_budget"] = *p.TotalBudget
	}
	if p.GuestCount != nil {
		updates["guest_count"] = *p.GuestCount
	}
	return updates
}

// WeddingView is the wedding row plus its read-time countdown.
type WeddingView struct {
	models.Wedding
	DaysRemaining int `json:"days_remaining"`
}

func (s *service) view(wedding models.Wedding) WeddingView {
	return WeddingView{
		Wedding:       wedding,
		DaysRemaining: planner.DaysRemaining(wedding.WeddingDate, s.now()),
	}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*WeddingView, error) {
	if params.Partner1Name == "" || params.Partner2Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "both partner names required")
	}
	if params.WeddingDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding date required")
	}

	totalBudget := s.defaults.DefaultTotalBudget
	if params.TotalBudget != nil {
		if params.TotalBudget.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total budget cannot be negative")
		}
		totalBudget = *params.TotalBudget
	}
	guestCount := s.defaults.DefaultGuestCount
	if params.GuestCount != nil {
		if *params.GuestCount < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest count cannot be negative")
		}
		guestCount = *params.GuestCount
	}

	wedding := models.Wedding{
		Partner1Name: params.Partner1Name,
		Partner2Name: params.Partner2Name,
		WeddingDate:  params.WeddingDate,
		TotalBudget:  totalBudget,
		GuestCount:   guestCount,
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, &wedding); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wedding")
		}

		categories := s.seeds.DefaultCategories(wedding.ID)
		if err := s.budgetRepo.WithTx(tx).CreateBatch(ctx, categories); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed categories")
		}

		daysRemaining := planner.DaysRemaining(wedding.WeddingDate, s.now())
		seedTasks := s.seeds.DefaultTasks(wedding.ID, daysRemaining)
		if err := s.tasksRepo.WithTx(tx).CreateBatch(ctx, seedTasks); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed tasks")
		}

		welcome := models.Notification{
			WeddingID: wedding.ID,
			Title:     "Welcome to your planner",
			Message:   "Default budget categories and a timeline checklist were created for you.",
			Kind:      "info",
		}
		if err := s.notifRepo.WithTx(tx).Create(ctx, &welcome); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create welcome notification")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, wedding.ID, relay.ActionCreated)
	view := s.view(wedding)
	return &view, nil
}

func (s *service) Get(ctx context.Context, weddingID uuid.UUID) (*WeddingView, error) {
	wedding, err := s.repo.GetByID(ctx, weddingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get wedding")
	}
	view := s.view(*wedding)
	return &view, nil
}

func (s *service) List(ctx context.Context) ([]WeddingView, error) {
	weddings, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list weddings")
	}
	views := make([]WeddingView, 0, len(weddings))
	for _, wedding := range weddings {
		views = append(views, s.view(wedding))
	}
	return views, nil
}

func (s *service) Update(ctx context.Context, weddingID uuid.UUID, params UpdateParams) (*WeddingView, error) {
	updates := params.toUpdates()
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if params.Partner1Name != nil && *params.Partner1Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner name required")
	}
	if params.Partner2Name != nil && *params.Partner2Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner name required")
	}
	if params.WeddingDate != nil && params.WeddingDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding date required")
	}
	if params.TotalBudget != nil && params.TotalBudget.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total budget cannot be negative")
	}
	if params.GuestCount != nil && *params.GuestCount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest count cannot be negative")
	}

	affected, err := s.repo.Update(ctx, weddingID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wedding")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}

	s.publish(ctx, weddingID, relay.ActionUpdated)
	return s.Get(ctx, weddingID)
}

func (s *service) Delete(ctx context.Context, weddingID uuid.UUID) error {
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.repo.WithTx(tx).DeleteCascade(ctx, weddingID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wedding")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, weddingID, relay.ActionDeleted)
	return nil
}

// Dashboard re-reads current stored state and computes the summary
// projection. It holds no cache, so it is read-your-writes consistent
// within a request.
func (s *service) Dashboard(ctx context.Context, weddingID uuid.UUID) (*dashboard.Snapshot, error) {
	wedding, err := s.repo.GetByID(ctx, weddingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get wedding")
	}

	categories, err := s.budgetRepo.ListByWedding(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	taskRows, err := s.tasksRepo.ListByWedding(ctx, weddingID, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}

	snapshot := dashboard.Compute(*wedding, categories, taskRows, s.now())
	return &snapshot, nil
}

func (s *service) publish(ctx context.Context, weddingID uuid.UUID, action string) {
	s.publisher.Publish(ctx, relay.Event{
		WeddingID: weddingID,
		Entity:    relay.EntityWedding,
		Action:    action,
		EntityID:  weddingID,
	})
}
