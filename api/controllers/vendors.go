package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weddingelite/backend/api/responses"
	"github.com/weddingelite/backend/api/validators"
	"github.com/weddingelite/backend/internal/vendors"
	"github.com/weddingelite/backend/pkg/enums"
	pkgerrors "github.com/weddingelite/backend/pkg/errors"
	"github.com/weddingelite/backend/pkg/logger"
)

type createBookingRequest struct {
	CategoryID  string  `json:"category_id" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required,max=200"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	DepositPaid float64 `json:"deposit_paid" validate:"gte=0"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status" validate:"omitempty,oneof=pending confirmed paid"`
	Notes       string  `json:"notes"`
}

type updateBookingRequest struct {
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Amount      *float64 `json:"amount" validate:"omitempty,gte=0"`
	DepositPaid *float64 `json:"deposit_paid" validate:"omitempty,gte=0"`
	DueDate     *string  `json:"due_date"`
	Status      *string  `json:"status" validate:"omitempty,oneof=pending confirmed paid"`
	Notes       *string  `json:"notes"`
}

// CreateBooking records a vendor booking and charges its category.
func CreateBooking(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createBookingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categoryID, err := uuid.Parse(body.CategoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id"))
			return
		}
		dueDate, err := parseOptionalDate(body.DueDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := vendors.CreateParams{
			CategoryID:  categoryID,
			Name:        body.Name,
			Amount:      decimal.NewFromFloat(body.Amount),
			DepositPaid: decimal.NewFromFloat(body.DepositPaid),
			DueDate:     dueDate,
			Notes:       body.Notes,
		}
		if body.Status != "" {
			status, err := enums.ParseBookingStatus(body.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			params.Status = status
		}

		booking, err := svc.Create(r.Context(), weddingID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, booking)
	}
}

// GetBooking returns one vendor booking.
func GetBooking(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bookingID, err := parseUUIDParam(r, "bookingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.Get(r.Context(), weddingID, bookingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}

// ListBookings returns the wedding's bookings, optionally scoped to one
// category via ?category_id=.
func ListBookings(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var categoryID *uuid.UUID
		if raw := r.URL.Query().Get("category_id"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id"))
				return
			}
			categoryID = &parsed
		}

		bookings, err := svc.List(r.Context(), weddingID, categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bookings)
	}
}

// UpdateBooking applies a partial update, rebalancing category actuals
// when the amount or category changes.
func UpdateBooking(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bookingID, err := parseUUIDParam(r, "bookingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateBookingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := vendors.UpdateParams{
			Name:  body.Name,
			Notes: body.Notes,
		}
		if body.CategoryID != nil {
			parsed, err := uuid.Parse(*body.CategoryID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id"))
				return
			}
			params.CategoryID = &parsed
		}
		if body.Amount != nil {
			amount := decimal.NewFromFloat(*body.Amount)
			params.Amount = &amount
		}
		if body.DepositPaid != nil {
			deposit := decimal.NewFromFloat(*body.DepositPaid)
			params.DepositPaid = &deposit
		}
		dueDate, err := parseOptionalDate(body.DueDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.DueDate = dueDate
		if body.Status != nil {
			status, err := enums.ParseBookingStatus(*body.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			params.Status = &status
		}

		booking, err := svc.Update(r.Context(), weddingID, bookingID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}

// DeleteBooking removes a booking and refunds its category.
func DeleteBooking(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bookingID, err := parseUUIDParam(r, "bookingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), weddingID, bookingID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
