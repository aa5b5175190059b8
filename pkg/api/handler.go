// Package api exposes the workflow engine over a small JSON HTTP surface.
// Handlers decode, validate and delegate; all business rules live in the
// core services.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/db"
)

type Handler struct {
	database     db.Conn
	logger       *zap.Logger
	validate     *validator.Validate
	upcomingDays int
}

func NewHandler(database db.Conn, logger *zap.Logger, upcomingDays int) *Handler {
	return &Handler{
		database:     database,
		logger:       logger,
		validate:     validator.New(),
		upcomingDays: upcomingDays,
	}
}

// Router builds the route table
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/shifts", h.listShiftsForDate)
		r.Get("/shifts/upcoming", h.listUpcomingShifts)
		r.Post("/shifts/{shiftID}/attendance", h.applyAttendanceAction)
		r.Post("/shifts/{shiftID}/response", h.respondToShift)
		r.Get("/shifts/{shiftID}/replacements", h.findReplacements)

		r.Get("/change-requests", h.listChangeRequests)
		r.Get("/change-requests/statistics", h.requestStatistics)
		r.Post("/change-requests/{requestID}/resolution", h.resolveChangeRequest)

		r.Get("/duty-assignments", h.listDutyAssignments)
	})

	return r
}
