package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gymAPI/internal/auth"
	"gymAPI/internal/types/account"
	"gymAPI/middleware"
	"gymAPI/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the domain services the API exposes.
type Services struct {
	Accounts       *services.AccountService
	Gyms           *services.GymService
	Exercises      *services.ExerciseService
	Challenges     *services.ChallengeService
	Participations *services.ParticipationService
	Badges         *services.BadgeService
	Stats          *services.StatsService
}

// RouterConfig carries the infrastructure the router needs besides the
// services. A nil RateLimiter disables rate limiting and a zero
// RequestTimeout leaves API requests without a deadline.
type RouterConfig struct {
	Store          Pinger
	Tokens         *auth.TokenIssuer
	RateLimiter    *middleware.RateLimiter
	RequestTimeout time.Duration
	MetricsUser    string
	MetricsPass    string
	PprofSecret    string
	Logger         *zap.Logger
}

func NewRouter(svc Services, cfg RouterConfig) *mux.Router {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	authHandler := NewAuthHandler(svc.Accounts, logger)
	gymHandler := NewGymHandler(svc.Gyms, logger)
	exerciseHandler := NewExerciseHandler(svc.Exercises, logger)
	challengeHandler := NewChallengeHandler(svc.Challenges, logger)
	participationHandler := NewParticipationHandler(svc.Participations, logger)
	badgeHandler := NewBadgeHandler(svc.Badges, logger)
	adminHandler := NewAdminHandler(svc.Accounts, svc.Gyms, svc.Stats, logger)
	dashboardHandler := NewDashboardHandler(svc.Stats, logger)

	authenticator := middleware.NewAuthenticator(cfg.Tokens, svc.Accounts, logger)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	standardRouter := r.PathPrefix("/").Subrouter()
	standardRouter.Use(middleware.RequestLogger(logger))
	if cfg.RateLimiter != nil {
		standardRouter.Use(cfg.RateLimiter.Middleware)
	}
	standardRouter.Use(middleware.MonitorMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(cfg.MetricsUser, cfg.MetricsPass)(promhttp.Handler()))
	standardRouter.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(cfg.PprofSecret)(http.DefaultServeMux))

	standardRouter.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respondWithDataMessage(w, http.StatusOK, map[string]string{"service": "gym-api"}, "Gym API is running")
	}).Methods("GET")

	standardRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if cfg.Store != nil {
			if err := cfg.Store.Ping(ctx); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  "database connection failed",
				})
				return
			}
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "gym-api"})
	}).Methods("GET")

	api := standardRouter.PathPrefix("/api").Subrouter()
	if cfg.RequestTimeout > 0 {
		api.Use(deadline(cfg.RequestTimeout))
	}

	// -------------------------------------------------------------------------
	// PUBLIC ROUTES
	// -------------------------------------------------------------------------
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	api.HandleFunc("/challenges", challengeHandler.List).Methods("GET")
	api.HandleFunc("/challenges/{id}", challengeHandler.Get).Methods("GET")

	api.HandleFunc("/badges", badgeHandler.ListActive).Methods("GET")
	api.HandleFunc("/badges/{id}", badgeHandler.Get).Methods("GET")

	api.HandleFunc("/exercise-types", exerciseHandler.List).Methods("GET")
	api.HandleFunc("/exercise-types/{id}", exerciseHandler.Get).Methods("GET")

	optional := api.PathPrefix("").Subrouter()
	optional.Use(authenticator.OptionalAuth)

	optional.HandleFunc("/gyms", gymHandler.List).Methods("GET")
	optional.HandleFunc("/gyms/{id}", gymHandler.Get).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authenticator.RequireAuth)

	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	protected.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	protected.Handle("/gyms", onlyRoles(gymHandler.Create, account.RoleGymOwner)).Methods("POST")
	protected.HandleFunc("/gyms/{id}", gymHandler.Update).Methods("PUT")

	protected.HandleFunc("/challenges", challengeHandler.Create).Methods("POST")
	protected.HandleFunc("/challenges/{id}", challengeHandler.Update).Methods("PUT")
	protected.HandleFunc("/challenges/{id}", challengeHandler.Delete).Methods("DELETE")
	protected.Handle("/challenges/{id}/join", onlyRoles(challengeHandler.Join, account.RoleClient)).Methods("POST")
	protected.HandleFunc("/challenges/{id}/leave", challengeHandler.Leave).Methods("DELETE")
	protected.HandleFunc("/challenges/{id}/invite", challengeHandler.Invite).Methods("POST")
	protected.HandleFunc("/challenges/{id}/participants", challengeHandler.Participants).Methods("GET")

	protected.HandleFunc("/participations", participationHandler.List).Methods("GET")
	protected.HandleFunc("/participations/{id}", participationHandler.Get).Methods("GET")
	protected.HandleFunc("/participations/{id}/workout-sessions", participationHandler.ListSessions).Methods("GET")
	protected.HandleFunc("/participations/{id}/workout-sessions", participationHandler.AddSession).Methods("POST")
	protected.HandleFunc("/participations/{id}/workout-sessions/{sessionId}", participationHandler.UpdateSession).Methods("PUT")
	protected.HandleFunc("/participations/{id}/workout-sessions/{sessionId}", participationHandler.DeleteSession).Methods("DELETE")

	protected.HandleFunc("/my-badges", badgeHandler.Mine).Methods("GET")

	// -------------------------------------------------------------------------
	// ADMIN ROUTES
	// -------------------------------------------------------------------------
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(account.RoleSuperAdmin))

	admin.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", adminHandler.GetUser).Methods("GET")
	admin.HandleFunc("/users/{id}", adminHandler.DeactivateUser).Methods("DELETE")
	admin.HandleFunc("/users/{id}/activate", adminHandler.ActivateUser).Methods("PATCH")

	admin.HandleFunc("/gyms/pending", adminHandler.PendingGyms).Methods("GET")
	admin.HandleFunc("/gyms/{id}/approve", adminHandler.ReviewGym).Methods("PATCH")

	admin.HandleFunc("/badges", badgeHandler.ListAll).Methods("GET")
	admin.HandleFunc("/badges", badgeHandler.Create).Methods("POST")
	admin.HandleFunc("/badges/{id}", badgeHandler.Get).Methods("GET")
	admin.HandleFunc("/badges/{id}", badgeHandler.Update).Methods("PUT")
	admin.HandleFunc("/badges/{id}", badgeHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/exercise-types", exerciseHandler.List).Methods("GET")
	admin.HandleFunc("/exercise-types", exerciseHandler.Create).Methods("POST")
	admin.HandleFunc("/exercise-types/{id}", exerciseHandler.Get).Methods("GET")
	admin.HandleFunc("/exercise-types/{id}", exerciseHandler.Update).Methods("PUT")
	admin.HandleFunc("/exercise-types/{id}", exerciseHandler.Delete).Methods("DELETE")

	admin.HandleFunc("/stats", adminHandler.Stats).Methods("GET")

	// -------------------------------------------------------------------------
	// GYM OWNER ROUTES
	// -------------------------------------------------------------------------
	owner := protected.PathPrefix("/owner").Subrouter()
	owner.Use(middleware.RequireRole(account.RoleGymOwner))

	owner.HandleFunc("/gym", gymHandler.GetOwn).Methods("GET")
	owner.HandleFunc("/gym", gymHandler.UpdateOwn).Methods("PUT")
	owner.HandleFunc("/challenges", dashboardHandler.OwnerChallenges).Methods("GET")
	owner.HandleFunc("/stats", dashboardHandler.OwnerStats).Methods("GET")

	// -------------------------------------------------------------------------
	// CLIENT ROUTES
	// -------------------------------------------------------------------------
	client := protected.PathPrefix("/client").Subrouter()
	client.Use(middleware.RequireRole(account.RoleClient))

	client.HandleFunc("/dashboard", dashboardHandler.ClientDashboard).Methods("GET")
	client.HandleFunc("/challenges", participationHandler.List).Methods("GET")
	client.HandleFunc("/badges", badgeHandler.Mine).Methods("GET")
	client.HandleFunc("/stats", dashboardHandler.ClientStats).Methods("GET")
	client.HandleFunc("/workout-history", dashboardHandler.WorkoutHistory).Methods("GET")

	return r
}

func deadline(d time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func onlyRoles(h http.HandlerFunc, roles ...account.Role) http.Handler {
	return middleware.RequireRole(roles...)(h)
}
