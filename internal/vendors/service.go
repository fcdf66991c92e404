package vendors

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/budget"
	"github.com/weddingelite/backend/internal/notifications"
	"github.com/weddingelite/backend/internal/relay"
	"github.com/weddingelite/backend/pkg/db"
	"github.com/weddingelite/backend/pkg/db/models"
	"github.com/weddingelite/backend/pkg/enums"
	pkgerrors "github.com/weddingelite/backend/pkg/errors"
)

// Service defines vendor booking operations. Every mutation that changes a
// booking amount moves the owning category's actual_amount in the same
// transaction, so the aggregate can never drift from the booking rows.
type Service interface {
	Create(ctx context.Context, weddingID uuid.UUID, params CreateParams) (*models.VendorBooking, error)
	Get(ctx context.Context, weddingID, bookingID uuid.UUID) (*models.VendorBooking, error)
	List(ctx context.Context, weddingID uuid.UUID, categoryID *uuid.UUID) ([]models.VendorBooking, error)
	Update(ctx context.Context, weddingID, bookingID uuid.UUID, params UpdateParams) (*models.VendorBooking, error)
	Delete(ctx context.Context, weddingID, bookingID uuid.UUID) error
}

type service struct {
	client     *db.Client
	repo       Repository
	budgetRepo budget.Repository
	notifRepo  notifications.Repository
	publisher  relay.Publisher
}

// NewService wires vendor booking dependencies. notifRepo may be nil, in
// which case bookings do not produce notification rows.
func NewService(client *db.Client, repo Repository, budgetRepo budget.Repository, notifRepo notifications.Repository, publisher relay.Publisher) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "vendors repository required")
	}
	if budgetRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "budget repository required")
	}
	if publisher == nil {
		publisher = relay.Nop{}
	}
	return &service{client: client, repo: repo, budgetRepo: budgetRepo, notifRepo: notifRepo, publisher: publisher}, nil
}

// CreateParams carries the client-settable booking fields.
type CreateParams struct {
	CategoryID  uuid.UUID
	Name        string
	Amount      decimal.Decimal
	DepositPaid decimal.Decimal
	DueDate     *time.Time
	Status      enums.BookingStatus
	Notes       string
}

// UpdateParams is an explicit partial update: nil means leave unchanged.
type UpdateParams struct {
	CategoryID  *uuid.UUID
	Name        *string
	Amount      *decimal.Decimal
	DepositPaid *decimal.Decimal
	DueDate     *time.Time
	Status      *enums.BookingStatus
	Notes       *string
}

func (p UpdateParams) toUpdates() map[string]any {
	updates := map[string]any{}
	if p.CategoryID != nil {
		updates["category_id"] = *p.CategoryID
	}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Amount != nil {
		updates["amount"] = *p.Amount
	}
	if p.DepositPaid != nil {
		updates["deposit_paid"] = *p.DepositPaid
	}
	if p.DueDate != nil {
		updates["due_date"] = *p.DueDate
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	return updates
}

func (s *service) Create(ctx context.Context, weddingID uuid.UUID, params CreateParams) (*models.VendorBooking, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	if params.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if params.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name required")
	}
	if params.Amount.IsNegative() || params.DepositPaid.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amounts cannot be negative")
	}
	status := params.Status
	if status == "" {
		status = enums.BookingStatusPending
	}
	if _, err := enums.ParseBookingStatus(string(status)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid booking status")
	}

	booking := models.VendorBooking{
		WeddingID:   weddingID,
		CategoryID:  params.CategoryID,
		Name:        params.Name,
		Amount:      params.Amount,
		DepositPaid: params.DepositPaid,
		DueDate:     params.DueDate,
		Status:      status,
		Notes:       params.Notes,
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.budgetRepo.WithTx(tx).ApplyDelta(ctx, weddingID, params.CategoryID, params.Amount)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply category delta")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		if err := s.repo.WithTx(tx).Create(ctx, &booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
		}
		if s.notifRepo != nil {
			notification := models.Notification{
				WeddingID: weddingID,
				Title:     "Vendor booked",
				Message:   params.Name + " was added to your budget",
				Kind:      "info",
			}
			if err := s.notifRepo.WithTx(tx).Create(ctx, &notification); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, relay.Event{
		WeddingID: weddingID,
		Entity:    relay.EntityBooking,
		Action:    relay.ActionCreated,
		EntityID:  booking.ID,
	})
	return &booking, nil
}

func (s *service) Get(ctx context.Context, weddingID, bookingID uuid.UUID) (*models.VendorBooking, error) {
	booking, err := s.repo.GetByID(ctx, weddingID, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get booking")
	}
	return booking, nil
}

func (s *service) List(ctx context.Context, weddingID uuid.UUID, categoryID *uuid.UUID) ([]models.VendorBooking, error) {
	exists, err := s.repo.WeddingExists(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wedding")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}

	var bookings []models.VendorBooking
	if categoryID != nil {
		bookings, err = s.repo.ListByCategory(ctx, weddingID, *categoryID)
	} else {
		bookings, err = s.repo.ListByWedding(ctx, weddingID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return bookings, nil
}

func (s *service) Update(ctx context.Context, weddingID, bookingID uuid.UUID, params UpdateParams) (*models.VendorBooking, error) {
	updates := params.toUpdates()
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if params.Name != nil && *params.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name required")
	}
	if params.Amount != nil && params.Amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount cannot be negative")
	}
	if params.DepositPaid != nil && params.DepositPaid.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "deposit cannot be negative")
	}
	if params.Status != nil {
		if _, err := enums.ParseBookingStatus(string(*params.Status)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid booking status")
		}
	}
	if params.CategoryID != nil && *params.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}

	var updated *models.VendorBooking
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		bookingRepo := s.repo.WithTx(tx)
		budgetRepo := s.budgetRepo.WithTx(tx)

		current, err := bookingRepo.GetByID(ctx, weddingID, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get booking")
		}

		if params.Status != nil && *params.Status != current.Status {
			if !current.Status.CanTransitionTo(*params.Status) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "booking status cannot move backwards").
					WithDetails(map[string]any{"from": current.Status, "to": *params.Status})
			}
		}

		newAmount := current.Amount
		if params.Amount != nil {
			newAmount = *params.Amount
		}
		newCategoryID := current.CategoryID
		if params.CategoryID != nil {
			newCategoryID = *params.CategoryID
		}

		if newCategoryID != current.CategoryID {
			// The booking moves categories: back its amount out of the old
			// bucket and charge the new one.
			affected, err := budgetRepo.ApplyDelta(ctx, weddingID, current.CategoryID, current.Amount.Neg())
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reverse old category delta")
			}
			if affected == 0 {
				return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			affected, err = budgetRepo.ApplyDelta(ctx, weddingID, newCategoryID, newAmount)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply new category delta")
			}
			if affected == 0 {
				return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
		} else if !newAmount.Equal(current.Amount) {
			affected, err := budgetRepo.ApplyDelta(ctx, weddingID, current.CategoryID, newAmount.Sub(current.Amount))
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply category delta")
			}
			if affected == 0 {
				return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
		}

		affected, err := bookingRepo.Update(ctx, weddingID, bookingID, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}

		updated, err = bookingRepo.GetByID(ctx, weddingID, bookingID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload booking")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, relay.Event{
		WeddingID: weddingID,
		Entity:    relay.EntityBooking,
		Action:    relay.ActionUpdated,
		EntityID:  bookingID,
	})
	return updated, nil
}

func (s *service) Delete(ctx context.Context, weddingID, bookingID uuid.UUID) error {
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		bookingRepo := s.repo.WithTx(tx)
		budgetRepo := s.budgetRepo.WithTx(tx)

		current, err := bookingRepo.GetByID(ctx, weddingID, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get booking")
		}

		affected, err := budgetRepo.ApplyDelta(ctx, weddingID, current.CategoryID, current.Amount.Neg())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reverse category delta")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}

		affected, err = bookingRepo.Delete(ctx, weddingID, bookingID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete booking")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, relay.Event{
		WeddingID: weddingID,
		Entity:    relay.EntityBooking,
		Action:    relay.ActionDeleted,
		EntityID:  bookingID,
	})
	return nil
}
