package api

import (
	"net/http"

	"github.com/dom/ascension-codex/internal/api/handlers"
	"github.com/dom/ascension-codex/internal/api/middleware"
	"github.com/dom/ascension-codex/internal/config"
	"github.com/dom/ascension-codex/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, cfg *config.Config, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, log)
	effectHandler := handlers.NewEffectHandler(services.Effect, log)
	resonanceHandler := handlers.NewResonanceHandler(services.Resonance, log)
	wonderHandler := handlers.NewWonderHandler(services.Wonder, log)
	requireAuth := middleware.Auth(services.Auth, log)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Catalog reads are public, writes need a user
		r.Route("/effects", func(r chi.Router) {
			r.Get("/", effectHandler.List)
			r.Get("/{id}", effectHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", effectHandler.Create)
				r.Put("/{id}", effectHandler.Update)
				r.Delete("/{id}", effectHandler.Delete)
			})
		})

		r.Route("/resonances", func(r chi.Router) {
			r.Get("/", resonanceHandler.List)
			r.With(requireAuth).Post("/", resonanceHandler.Create)
		})

		r.Route("/wonders", func(r chi.Router) {
			r.Get("/", wonderHandler.List)
			r.Get("/{id}", wonderHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", wonderHandler.Create)
				r.Put("/{id}", wonderHandler.Update)
				r.Delete("/{id}", wonderHandler.Delete)
			})
		})
	})

	return r
}
