package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/weddingelite/backend/api/controllers"
	"github.com/weddingelite/backend/api/middleware"
	"github.com/weddingelite/backend/internal/budget"
	"github.com/weddingelite/backend/internal/guests"
	"github.com/weddingelite/backend/internal/notifications"
	"github.com/weddingelite/backend/internal/tasks"
	"github.com/weddingelite/backend/internal/vendors"
	"github.com/weddingelite/backend/internal/weddings"
	"github.com/weddingelite/backend/pkg/config"
	"github.com/weddingelite/backend/pkg/logger"
	"github.com/weddingelite/backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.HTTPMetrics

	DB    controllers.Pinger
	Redis controllers.Pinger

	Weddings      weddings.Service
	Budget        budget.Service
	Vendors       vendors.Service
	Tasks         tasks.Service
	Guests        guests.Service
	Notifications notifications.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
		middleware.Metrics(deps.Metrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1/weddings", func(r chi.Router) {
		r.Post("/", controllers.CreateWedding(deps.Weddings, logg))
		r.Get("/", controllers.ListWeddings(deps.Weddings, logg))

		r.Route("/{weddingID}", func(r chi.Router) {
			r.Get("/", controllers.GetWedding(deps.Weddings, logg))
			r.Patch("/", controllers.UpdateWedding(deps.Weddings, logg))
			r.Delete("/", controllers.DeleteWedding(deps.Weddings, logg))
			r.Get("/dashboard", controllers.GetDashboard(deps.Weddings, logg))

			r.Route("/budget", func(r chi.Router) {
				r.Post("/", controllers.CreateCategory(deps.Budget, logg))
				r.Get("/", controllers.ListCategories(deps.Budget, logg))
				r.Get("/{categoryID}", controllers.GetCategory(deps.Budget, logg))
				r.Patch("/{categoryID}", controllers.UpdateCategory(deps.Budget, logg))
				r.Delete("/{categoryID}", controllers.DeleteCategory(deps.Budget, logg))
			})

			r.Route("/vendors", func(r chi.Router) {
				r.Post("/", controllers.CreateBooking(deps.Vendors, logg))
				r.Get("/", controllers.ListBookings(deps.Vendors, logg))
				r.Get("/{bookingID}", controllers.GetBooking(deps.Vendors, logg))
				r.Patch("/{bookingID}", controllers.UpdateBooking(deps.Vendors, logg))
				r.Delete("/{bookingID}", controllers.DeleteBooking(deps.Vendors, logg))
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", controllers.CreateTask(deps.Tasks, logg))
				r.Get("/", controllers.ListTasks(deps.Tasks, logg))
				r.Get("/{taskID}", controllers.GetTask(deps.Tasks, logg))
				r.Patch("/{taskID}", controllers.UpdateTask(deps.Tasks, logg))
				r.Delete("/{taskID}", controllers.DeleteTask(deps.Tasks, logg))
				r.Post("/{taskID}/complete", controllers.CompleteTask(deps.Tasks, logg))
				r.Post("/{taskID}/uncomplete", controllers.UncompleteTask(deps.Tasks, logg))
				r.Post("/{taskID}/toggle", controllers.ToggleTask(deps.Tasks, logg))
			})

			r.Route("/guests", func(r chi.Router) {
				r.Post("/", controllers.CreateGuest(deps.Guests, logg))
				r.Get("/", controllers.ListGuests(deps.Guests, logg))
				r.Get("/{guestID}", controllers.GetGuest(deps.Guests, logg))
				r.Patch("/{guestID}", controllers.UpdateGuest(deps.Guests, logg))
				r.Delete("/{guestID}", controllers.DeleteGuest(deps.Guests, logg))
				r.Post("/{guestID}/rsvp", controllers.SetGuestRSVP(deps.Guests, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
				r.Post("/{notificationID}/read", controllers.MarkNotificationRead(deps.Notifications, logg))
				r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.Notifications, logg))
			})
		})
	})

	return r
}
