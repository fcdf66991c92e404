package controllers

import (
	"net/http"

	"github.com/weddingelite/backend/api/responses"
	"github.com/weddingelite/backend/api/validators"
	"github.com/weddingelite/backend/internal/guests"
	"github.com/weddingelite/backend/pkg/enums"
	pkgerrors "github.com/weddingelite/backend/pkg/errors"
	"github.com/weddingelite/backend/pkg/logger"
)

type createGuestRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Phone       string `json:"phone" validate:"max=32"`
	Side        string `json:"side" validate:"omitempty,oneof=partner1 partner2 shared"`
	PartySize   int    `json:"party_size" validate:"omitempty,gte=1"`
	TableNumber *int   `json:"table_number" validate:"omitempty,gte=1"`
}

type updateGuestRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	Side        *string `json:"side" validate:"omitempty,oneof=partner1 partner2 shared"`
	PartySize   *int    `json:"party_size" validate:"omitempty,gte=1"`
	RSVPStatus  *string `json:"rsvp_status" validate:"omitempty,oneof=pending confirmed declined"`
	TableNumber *int    `json:"table_number" validate:"omitempty,gte=1"`
}

type rsvpRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed declined"`
}

// CreateGuest adds a guest party to a wedding.
func CreateGuest(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createGuestRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := guests.CreateParams{
			Name:        body.Name,
			Phone:       body.Phone,
			PartySize:   body.PartySize,
			TableNumber: body.TableNumber,
		}
		if body.Side != "" {
			side, err := enums.ParseGuestSide(body.Side)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid side"))
				return
			}
			params.Side = side
		}

		guest, err := svc.Create(r.Context(), weddingID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, guest)
	}
}

// GetGuest returns one guest party.
func GetGuest(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		guestID, err := parseUUIDParam(r, "guestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		guest, err := svc.Get(r.Context(), weddingID, guestID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, guest)
	}
}

// ListGuests returns the guest list with party and confirmed seat totals.
func ListGuests(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), weddingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateGuest applies a partial update to a guest party.
func UpdateGuest(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		guestID, err := parseUUIDParam(r, "guestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateGuestRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := guests.UpdateParams{
			Name:        body.Name,
			Phone:       body.Phone,
			PartySize:   body.PartySize,
			TableNumber: body.TableNumber,
		}
		if body.Side != nil {
			side, err := enums.ParseGuestSide(*body.Side)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid side"))
				return
			}
			params.Side = &side
		}
		if body.RSVPStatus != nil {
			status, err := enums.ParseRSVPStatus(*body.RSVPStatus)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rsvp_status"))
				return
			}
			params.RSVPStatus = &status
		}

		guest, err := svc.Update(r.Context(), weddingID, guestID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, guest)
	}
}

// SetGuestRSVP records an RSVP answer for a guest party.
func SetGuestRSVP(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		guestID, err := parseUUIDParam(r, "guestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rsvpRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseRSVPStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		guest, err := svc.SetRSVP(r.Context(), weddingID, guestID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, guest)
	}
}

// DeleteGuest removes a guest party.
func DeleteGuest(svc guests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		guestID, err := parseUUIDParam(r, "guestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), weddingID, guestID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
