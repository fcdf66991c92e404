package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/weddingelite/backend/api/responses"
	"github.com/weddingelite/backend/api/validators"
	"github.com/weddingelite/backend/internal/budget"
	"github.com/weddingelite/backend/pkg/logger"
)

type createCategoryRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	Icon          string  `json:"icon" validate:"max=16"`
	PlannedAmount float64 `json:"planned_amount" validate:"gte=0"`
	Notes         string  `json:"notes"`
}

type updateCategoryRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Icon          *string  `json:"icon" validate:"omitempty,max=16"`
	PlannedAmount *float64 `json:"planned_amount" validate:"omitempty,gte=0"`
	Notes         *string  `json:"notes"`
}

// CreateCategory adds a budget category to a wedding.
func CreateCategory(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Create(r.Context(), weddingID, budget.CreateParams{
			Name:          body.Name,
			Icon:          body.Icon,
			PlannedAmount: decimal.NewFromFloat(body.PlannedAmount),
			Notes:         body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// GetCategory returns one category with its spend percentage.
func GetCategory(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := parseUUIDParam(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), weddingID, categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ListCategories returns every category of a wedding.
func ListCategories(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.List(r.Context(), weddingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, views)
	}
}

// UpdateCategory applies a partial update to a category.
func UpdateCategory(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := parseUUIDParam(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := budget.UpdateParams{
			Name:  body.Name,
			Icon:  body.Icon,
			Notes: body.Notes,
		}
		if body.PlannedAmount != nil {
			planned := decimal.NewFromFloat(*body.PlannedAmount)
			params.PlannedAmount = &planned
		}

		view, err := svc.Update(r.Context(), weddingID, categoryID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// DeleteCategory removes a category that has no bookings.
func DeleteCategory(svc budget.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weddingID, err := parseUUIDParam(r, "weddingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := parseUUIDParam(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), weddingID, categoryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
