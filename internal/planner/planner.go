// Package planner holds the product defaults seeded into a wedding at
// creation time: the category weight table and the timeline task templates.
package planner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weddingelite/backend/pkg/db/models"
	"github.com/weddingelite/backend/pkg/enums"
)

// CategoryTemplate is one row of the default budget weight table.
type CategoryTemplate struct {
	Name   string
	Icon   string
	Weight decimal.Decimal
}

// TaskTemplate is one default checklist entry for a timeline bucket.
type TaskTemplate struct {
	Title  string
	Period enums.TimelinePeriod
	Urgent bool
}

// Config carries the seeding tables. The zero value is not usable; start
// from Default() and override what product config changes.
type Config struct {
	Categories []CategoryTemplate
	Tasks      []TaskTemplate

	// MinLeadDays is the shortest lead time that still receives default
	// tasks. Weddings closer than this get an empty checklist.
	MinLeadDays int
}

// Default returns the standard weight table and checklist.
func Default() Config {
	return Config{
		MinLeadDays: 30,
		Categories: []CategoryTemplate{
			{Name: "Venue & Reception", Icon: "🏛️", Weight: decimal.NewFromInt(90000)},
			{Name: "Photography & Video", Icon: "📸", Weight: decimal.NewFromInt(15000)},
			{Name: "Music & Entertainment", Icon: "🎵", Weight: decimal.NewFromInt(12000)},
			{Name: "Flowers & Decor", Icon: "💐", Weight: decimal.NewFromInt(10500)},
			{Name: "Attire & Beauty", Icon: "🤵", Weight: decimal.NewFromInt(9000)},
			{Name: "Invitations & Gifts", Icon: "🎁", Weight: decimal.NewFromInt(7500)},
			{Name: "Other", Icon: "✨", Weight: decimal.NewFromInt(6000)},
		},
		Tasks: []TaskTemplate{
			{Title: "Choose a date and venue", Period: enums.TimelinePeriod9To12},
			{Title: "Book a photographer and videographer", Period: enums.TimelinePeriod9To12},
			{Title: "Initial menu tasting with the caterer", Period: enums.TimelinePeriod9To12},

			{Title: "Choose a DJ or band", Period: enums.TimelinePeriod6To9},
			{Title: "Start dress shopping", Period: enums.TimelinePeriod6To9},
			{Title: "Design the invitations", Period: enums.TimelinePeriod6To9},

			{Title: "Print the invitations", Period: enums.TimelinePeriod3To6, Urgent: true},
			{Title: "Book hair and makeup artists", Period: enums.TimelinePeriod3To6, Urgent: true},
			{Title: "Plan the floral design", Period: enums.TimelinePeriod3To6, Urgent: true},

			{Title: "Confirm the final guest count", Period: enums.TimelinePeriod1To3},
			{Title: "Hold final vendor meetings", Period: enums.TimelinePeriod1To3},
			{Title: "Plan the wedding day schedule", Period: enums.TimelinePeriod1To3},
		},
	}
}

// DaysRemaining counts whole days from today until the wedding, floored at zero.
func DaysRemaining(weddingDate, now time.Time) int {
	wd := time.Date(weddingDate.Year(), weddingDate.Month(), weddingDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(wd.Sub(today).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// BucketFor maps a lead time in days to the single timeline bucket default
// tasks are generated into. ok is false when the wedding is too close for
// any default checklist.
func BucketFor(daysRemaining, minLeadDays int) (enums.TimelinePeriod, bool) {
	switch {
	case daysRemaining >= 270:
		return enums.TimelinePeriod9To12, true
	case daysRemaining >= 180:
		return enums.TimelinePeriod6To9, true
	case daysRemaining >= 90:
		return enums.TimelinePeriod3To6, true
	case daysRemaining >= minLeadDays:
		return enums.TimelinePeriod1To3, true
	default:
		return "", false
	}
}

// DefaultCategories builds the seed category rows for a new wedding.
func (c Config) DefaultCategories(weddingID uuid.UUID) []models.BudgetCategory {
	categories := make([]models.BudgetCategory, 0, len(c.Categories))
	for _, tpl := range c.Categories {
		categories = append(categories, models.BudgetCategory{
			WeddingID:     weddingID,
			Name:          tpl.Name,
			Icon:          tpl.Icon,
			PlannedAmount: tpl.Weight,
		})
	}
	return categories
}

// DefaultTasks builds the seed checklist for a new wedding. Only the bucket
// matching the wedding's current lead time is generated; tasks are never
// rebucketed after creation.
func (c Config) DefaultTasks(weddingID uuid.UUID, daysRemaining int) []models.Task {
	bucket, ok := BucketFor(daysRemaining, c.MinLeadDays)
	if !ok {
		return nil
	}

	tasks := []models.Task{}
	for _, tpl := range c.Tasks {
		if tpl.Period != bucket {
			continue
		}
		tasks = append(tasks, models.Task{
			WeddingID:      weddingID,
			Title:          tpl.Title,
			TimelinePeriod: tpl.Period,
			IsUrgent:       tpl.Urgent,
		})
	}
	return tasks
}

// PlannedTotal sums the weight table.
func (c Config) PlannedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, tpl := range c.Categories {
		total = total.Add(tpl.Weight)
	}
	return total
}
