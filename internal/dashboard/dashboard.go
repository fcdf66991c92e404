// Package dashboard computes the read-only summary projection for a wedding.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/weddingelite/backend/internal/planner"
	"github.com/weddingelite/backend/pkg/db/models"
)

// Snapshot is a pure projection of stored state. Computing it twice with no
// intervening mutation yields identical results.
type Snapshot struct {
	DaysRemaining     int             `json:"days_remaining"`
	ControlPercentage int             `json:"control_percentage"`
	TasksCompleted    int             `json:"tasks_completed"`
	TasksUrgent       int             `json:"tasks_urgent"`
	TasksTotal        int             `json:"tasks_total"`
	BudgetPlanned     decimal.Decimal `json:"budget_planned"`
	BudgetActual      decimal.Decimal `json:"budget_actual"`
	BudgetRemaining   decimal.Decimal `json:"budget_remaining"`
	BudgetPercentage  int             `json:"budget_percentage"`
}

var oneHundred = decimal.NewFromInt(100)

// Compute derives the dashboard figures from the wedding's current rows.
func Compute(wedding models.Wedding, categories []models.BudgetCategory, tasks []models.Task, now time.Time) Snapshot {
	planned := decimal.Zero
	actual := decimal.Zero
	for _, category := range categories {
		planned = planned.Add(category.PlannedAmount)
		actual = actual.Add(category.ActualAmount)
	}
	// A brand-new wedding with no categories falls back to its stored
	// budget target so the dashboard does not report a meaningless zero.
	if len(categories) == 0 {
		planned = wedding.TotalBudget
	}

	budgetPercentage := 0
	if planned.IsPositive() {
		budgetPercentage = int(actual.Div(planned).Mul(oneHundred).IntPart())
	}

	completed := 0
	urgent := 0
	for _, task := range tasks {
		if task.IsCompleted {
			completed++
		}
		if task.IsUrgent && !task.IsCompleted {
			urgent++
		}
	}

	// Divisor falls back to 1 so an empty checklist reports 0% control
	// instead of dividing by zero.
	divisor := len(tasks)
	if divisor == 0 {
		divisor = 1
	}
	controlPercentage := completed * 100 / divisor

	return Snapshot{
		DaysRemaining:     planner.DaysRemaining(wedding.WeddingDate, now),
		ControlPercentage: controlPercentage,
		TasksCompleted:    completed,
		TasksUrgent:       urgent,
		TasksTotal:        len(tasks),
		BudgetPlanned:     planned,
		BudgetActual:      actual,
		BudgetRemaining:   planned.Sub(actual),
		BudgetPercentage:  budgetPercentage,
	}
}
