package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-calc-api/internal/config"
	"go-calc-api/internal/handler"
	"go-calc-api/internal/middleware"
	"go-calc-api/internal/model"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

func New(
	cfg *config.Config,
	db HealthChecker,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	calculationHandler *handler.CalculationHandler,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		status := model.HealthResponse{Status: "ok"}
		if err := db.Health(req.Context()); err != nil {
			status.Status = "degraded"
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(status)
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", authHandler.Register)
			auth.Post("/login", authHandler.Login)
			auth.Post("/token", authHandler.Token)
			auth.Post("/refresh", authHandler.Refresh)
			auth.With(authMiddleware.RequireAuth).Post("/logout", authHandler.Logout)
			auth.With(authMiddleware.RequireAuth, authMiddleware.RequireActive).Get("/me", authHandler.Me)
		})

		api.Route("/calculations", func(calc chi.Router) {
			calc.Use(authMiddleware.RequireAuth, authMiddleware.RequireActive)

			calc.Post("/", calculationHandler.Create)
			calc.Get("/", calculationHandler.List)
			calc.Get("/{id}", calculationHandler.Get)
			calc.Put("/{id}", calculationHandler.Update)
			calc.Delete("/{id}", calculationHandler.Delete)
		})
	})

	return r
}
