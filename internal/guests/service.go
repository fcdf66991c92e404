package guests

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/relay"
	"github.com/weddingelite/backend/pkg/db/models"
	"github.com/weddingelite/backend/pkg/enums"
	pkgerrors "github.com/weddingelite/backend/pkg/errors"
)

// Service defines guest list operations scoped to one wedding.
type Service interface {
	Create(ctx context.Context, weddingID uuid.UUID, params CreateParams) (*models.Guest, error)
	Get(ctx context.Context, weddingID, guestID uuid.UUID) (*models.Guest, error)
	List(ctx context.Context, weddingID uuid.UUID) (*ListResult, error)
	Update(ctx context.Context, weddingID, guestID uuid.UUID, params UpdateParams) (*models.Guest, error)
	SetRSVP(ctx context.Context, weddingID, guestID uuid.UUID, status enums.RSVPStatus) (*models.Guest, error)
	Delete(ctx context.Context, weddingID, guestID uuid.UUID) error
}

type service struct {
	repo      Repository
	publisher relay.Publisher
}

// NewService wires guest list dependencies.
func NewService(repo Repository, publisher relay.Publisher) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "guests repository required")
	}
	if publisher == nil {
		publisher = relay.Nop{}
	}
	return &service{repo: repo, publisher: publisher}, nil
}

// CreateParams carries the client-settable guest fields.
type CreateParams struct {
	Name        string
	Phone       string
	Side        enums.GuestSide
	PartySize   int
	TableNumber *int
}

// UpdateParams is an explicit partial update: nil means leave unchanged.
type UpdateParams struct {
	Name        *string
	Phone       *string
	Side        *enums.GuestSide
	PartySize   *int
	RSVPStatus  *enums.RSVPStatus
	TableNumber *int
}

func (p UpdateParams) toUpdates() map[string]any {
	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.Side != nil {
		updates["side"] = *p.Side
	}
	if p.PartySize != nil {
		updates["party_size"] = *p.PartySize
	}
	if p.RSVPStatus != nil {
		updates["rsvp_status"] = *p.RSVPStatus
	}
	if p.TableNumber != nil {
		updates["table_number"] = *p.TableNumber
	}
	return updates
}

// ListResult wraps the guest rows with headcount summaries.
type ListResult struct {
	Items          []models.Guest `json:"items"`
	TotalParties   int            `json:"total_parties"`
	ConfirmedSeats int64          `json:"confirmed_seats"`
}

func (s *service) Create(ctx context.Context, weddingID uuid.UUID, params CreateParams) (*models.Guest, error) {
	if weddingID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wedding id required")
	}
	if params.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest name required")
	}
	side := params.Side
	if side == "" {
		side = enums.GuestSideShared
	}
	if _, err := enums.ParseGuestSide(string(side)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid guest side")
	}
	partySize := params.PartySize
	if partySize == 0 {
		partySize = 1
	}
	if partySize < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "party size must be at least 1")
	}

	exists, err := s.repo.WeddingExists(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wedding")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}

	guest := models.Guest{
		WeddingID:   weddingID,
		Name:        params.Name,
		Phone:       params.Phone,
		Side:        side,
		PartySize:   partySize,
		RSVPStatus:  enums.RSVPStatusPending,
		TableNumber: params.TableNumber,
	}
	if err := s.repo.Create(ctx, &guest); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create guest")
	}

	s.publish(ctx, weddingID, guest.ID, relay.ActionCreated)
	return &guest, nil
}

func (s *service) Get(ctx context.Context, weddingID, guestID uuid.UUID) (*models.Guest, error) {
	guest, err := s.repo.GetByID(ctx, weddingID, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get guest")
	}
	return guest, nil
}

func (s *service) List(ctx context.Context, weddingID uuid.UUID) (*ListResult, error) {
	exists, err := s.repo.WeddingExists(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wedding")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wedding not found")
	}

	guests, err := s.repo.ListByWedding(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list guests")
	}
	seats, err := s.repo.ConfirmedSeats(ctx, weddingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum confirmed seats")
	}

	return &ListResult{
		Items:          guests,
		TotalParties:   len(guests),
		ConfirmedSeats: seats,
	}, nil
}

func (s *service) Update(ctx context.Context, weddingID, guestID uuid.UUID, params UpdateParams) (*models.Guest, error) {
	updates := params.toUpdates()
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if params.Name != nil && *params.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest name required")
	}
	if params.Side != nil {
		if _, err := enums.ParseGuestSide(string(*params.Side)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid guest side")
		}
	}
	if params.RSVPStatus != nil {
		if _, err := enums.ParseRSVPStatus(string(*params.RSVPStatus)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rsvp status")
		}
	}
	if params.PartySize != nil && *params.PartySize < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "party size must be at least 1")
	}

	affected, err := s.repo.Update(ctx, weddingID, guestID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update guest")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
	}

	s.publish(ctx, weddingID, guestID, relay.ActionUpdated)
	return s.Get(ctx, weddingID, guestID)
}

func (s *service) SetRSVP(ctx context.Context, weddingID, guestID uuid.UUID, status enums.RSVPStatus) (*models.Guest, error) {
	if _, err := enums.ParseRSVPStatus(string(status)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rsvp status")
	}
	return s.Update(ctx, weddingID, guestID, UpdateParams{RSVPStatus: &status})
}

func (s *service) Delete(ctx context.Context, weddingID, guestID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, weddingID, guestID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete guest")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "guest not found")
	}

	s.publish(ctx, weddingID, guestID, relay.ActionDeleted)
	return nil
}

func (s *service) publish(ctx context.Context, weddingID, guestID uuid.UUID, action string) {
	s.publisher.Publish(ctx, relay.Event{
		WeddingID: weddingID,
		Entity:    relay.EntityGuest,
		Action:    action,
		EntityID:  guestID,
	})
}
