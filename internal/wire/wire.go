// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/notify"
	"hotel-booking/internal/storage"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Deps are the long-lived infrastructure pieces built in main.
type Deps struct {
	DB     database.PgxIface
	Repo   *repository.Repository
	Infra  usecase.Infra
	Hub    *notify.Hub
	Config *utils.Config
	Logger *zap.Logger
}

// App holds everything the server and the job scheduler need
type App struct {
	Router  *chi.Mux
	Handler http.Handler
	Service *usecase.Service
	Limiter *middleware.IPRateLimiter
}

// Wiring builds services, handlers and the router
func Wiring(deps Deps) *App {
	if deps.Infra.Metrics == nil {
		deps.Infra.Metrics = metrics.New()
	}

	service := usecase.NewService(deps.Repo, deps.Infra, deps.Config, deps.Logger)
	handler := adaptor.NewHandler(service, deps.Hub, deps.Config, deps.Logger)
	limiter := middleware.NewIPRateLimiter(deps.Config.RateLimit)

	router := setupRouter(handler, service, limiter, deps)

	return &App{
		Router:  router,
		Handler: otelhttp.NewHandler(router, deps.Config.Telemetry.ServiceName),
		Service: service,
		Limiter: limiter,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	limiter *middleware.IPRateLimiter,
	deps Deps,
) *chi.Mux {
	r := chi.NewRouter()
	log := deps.Logger

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(deps.Config.App.CORSOrigins))
	r.Use(middleware.Metrics(deps.Infra.Metrics))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		utils.ResponseMethodNotAllowed(w, "Method not allowed")
	})

	auth := routeAuth{
		required: middleware.AuthSession(service.Auth, log),
		optional: middleware.OptionalAuth(service.Auth, log),
		admin:    middleware.Admin(log),
		limit:    middleware.RateLimit(limiter, log),
	}

	// Apply routes
	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, handler.Auth, auth)
	wireRoom(r, handler.Room, handler.Review)
	wireBooking(r, handler.Booking, auth)
	wirePayment(r, handler.Payment, auth)
	wireNotification(r, handler.Notification, auth)
	wireReview(r, handler.Review, auth)
	wireAdmin(r, handler, auth)

	r.Get("/health", healthHandler(deps.DB, log))
	r.Handle("/metrics", deps.Infra.Metrics.Handler())

	if local, ok := deps.Infra.Store.(*storage.LocalStore); ok {
		r.Handle("/storage/*", http.StripPrefix("/storage/", http.FileServer(http.Dir(local.Root()))))
	}

	return r
}

// routeAuth bundles the auth middleware so feature wiring stays declarative.
type routeAuth struct {
	required func(http.Handler) http.Handler
	optional func(http.Handler) http.Handler
	admin    func(http.Handler) http.Handler
	limit    func(http.Handler) http.Handler
}

func healthHandler(db database.PgxIface, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
