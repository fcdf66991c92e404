package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/weddingelite/backend/api/responses"
	"github.com/weddingelite/backend/api/validators"
	"github.com/weddingelite/backend/internal/weddings"
	"github.com/weddingelite/backend/pkg/logger"
)

type createWeddingRequest struct {
	Partner1Name string   `json:"partner1_name" validate:"required,max=120"`
	Partner2Name string   `json:"partner2_name" validate:"required,max=120"`
	WeddingDate  string   `json:"wedding_date" validate:"required"`
	TotalBudget  *float64 `json:"total_budget" validate:"omitempty,gte=0"`
	GuestCount   *int     `json:"guest_count" validate:"omitempty,gte=0"`
}

type updateWeddingRequest struct {
	Partner1Name *string  `json:"partner1_name" validate:"omitempty,min=1,max=120"`
	Partner2Name *string  `json:"partner2_name" validate:"omitempty,min=1,max=120"`
	WeddingDate  *string  `json:"wedding_date"`
	TotalBudget  *float64 `json:"total_budget" validate:"omitempty,gte=0"`
	GuestCount   *int     `json:"guest_count" validate:"omitempty,gte=0"`
}

// CreateWedding registers a new wedding and seeds its defaults.
func CreateWedding(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createWeddingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := parseDate(body.WeddingDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := weddings.CreateParams{
			Partner1Name: body.Partner1Name,
			Partner2Name: body.Partner2Name,
			WeddingDate:  date,
		}
		if body.TotalBudget != nil {
			budget := decimal.NewFromFloat(*body.TotalBudget)
			params.TotalBudget = &budget
		}
		params.GuestCount = body.GuestCount

		view, err := svc.Create(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// GetWedding returns one wedding with its countdown.
func GetWedding(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), weddingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ListWeddings returns every wedding record.
func ListWeddings(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// UpdateWedding applies a partial update to the wedding record.
func UpdateWedding(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateWeddingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := weddings.UpdateParams{
			Partner1Name: body.Partner1Name,
			Partner2Name: body.Partner2Name,
			GuestCount:   body.GuestCount,
		}
		date, err := parseOptionalDate(body.WeddingDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.WeddingDate = date
		if body.TotalBudget != nil {
			budget := decimal.NewFromFloat(*body.TotalBudget)
			params.TotalBudget = &budget
		}

		view, err := svc.Update(r.Context(), weddingID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// DeleteWedding removes the wedding and everything it owns.
func DeleteWedding(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), weddingID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetDashboard returns the derived summary projection for a wedding.
func GetDashboard(svc weddings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Dashboard(r.Context(), weddingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
