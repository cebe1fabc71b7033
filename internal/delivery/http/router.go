package http

import (
	"context"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"volunteerhub/internal/delivery/http/controllers"
	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps holds everything the router needs.
type RouterDeps struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	AllowedOrigins []string
	DB             Pinger
	Events         *controllers.EventController
	Positions      *controllers.PositionController
	Slots          *controllers.SlotController
	CheckIn        *controllers.CheckInController
}

// NewRouter initializes the HTTP router with all application routes, wrapped in
// CORS and request logging.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(d.Verifier, d.Logger)

	// Events
	mux.HandleFunc("GET /events", auth(d.Events.ListEvents))
	mux.HandleFunc("POST /events", auth(d.Events.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", auth(d.Events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(d.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(d.Events.DeleteEvent))

	// Positions
	mux.HandleFunc("GET /events/{eventID}/positions", auth(d.Positions.ListPositions))
	mux.HandleFunc("POST /events/{eventID}/positions", auth(d.Positions.CreatePosition))
	mux.HandleFunc("PATCH /positions/{positionID}", auth(d.Positions.UpdatePosition))
	mux.HandleFunc("DELETE /positions/{positionID}", auth(d.Positions.DeletePosition))
	mux.HandleFunc("GET /positions/{positionID}/qrcode", auth(d.CheckIn.CheckInQRCode))

	// Slots
	mux.HandleFunc("GET /positions/{positionID}/slots", auth(d.Slots.ListSlots))
	mux.HandleFunc("POST /positions/{positionID}/slots", auth(d.Slots.CreateSlot))
	mux.HandleFunc("PATCH /slots/{slotID}", auth(d.Slots.UpdateSlot))
	mux.HandleFunc("DELETE /slots/{slotID}", auth(d.Slots.DeleteSlot))
	mux.HandleFunc("POST /slots/{slotID}/signup", auth(d.CheckIn.SignUp))
	mux.HandleFunc("POST /slots/{slotID}/checkin", auth(d.CheckIn.CheckIn))

	// Public check-in link
	mux.HandleFunc("GET /checkin/{positionID}", d.CheckIn.GetCheckInPage)
	mux.HandleFunc("POST /checkin/{positionID}", d.CheckIn.CheckInByEmail)

	mux.HandleFunc("GET /healthz", healthz(d.DB, d.Logger))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(d.Logger, middleware.CORS(d.AllowedOrigins, mux))
}

func healthz(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				logger.ErrorContext(r.Context(), "health check failed", "err", err)
				helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStoreError, "database unavailable")
				return
			}
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
