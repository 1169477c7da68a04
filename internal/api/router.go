package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mgavilanes/campline-be/internal/api/handlers"
	"github.com/mgavilanes/campline-be/internal/auth"
	"github.com/mgavilanes/campline-be/internal/avatar"
	"github.com/mgavilanes/campline-be/internal/monitoring"
	"github.com/mgavilanes/campline-be/internal/services"
	"github.com/mgavilanes/campline-be/internal/session"
	ws "github.com/mgavilanes/campline-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *ws.Hub,
	sessions *session.Store,
	avatars *avatar.Store,
	stats *monitoring.StatsUpdater,
	userService services.UserServiceProvider,
	eventService services.EventServiceProvider,
	departmentService services.DepartmentServiceProvider,
	announcementService services.AnnouncementServiceProvider,
	accessService services.AccessServiceProvider,
	interchangeService services.InterchangeServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, sessions, avatars)
	eventHandler := handlers.NewEventHandler(eventService, interchangeService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	accessHandler := handlers.NewAccessHandler(accessService)
	systemHandler := handlers.NewSystemHandler(stats)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Uploaded avatar images
	r.Handle(avatar.URLPrefix+"*", http.StripPrefix(avatar.URLPrefix, http.FileServer(http.Dir(avatars.Dir()))))

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints
		r.Post("/auth/register", userHandler.Register)
		r.Post("/auth/login", userHandler.Login)
		r.Post("/auth/refresh", userHandler.Refresh)
		r.Post("/auth/logout", userHandler.Logout)

		// Live feeds
		r.Get("/ws", wsHandler.Serve)
		r.Get("/ws/departments/{id}", wsHandler.Serve)

		// Everything below requires a signed-in user; the caller's
		// address is classified on every request.
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())
			r.Use(auth.TierMiddleware(accessService))

			r.Get("/auth/me", userHandler.GetMe)

			r.Route("/events", func(r chi.Router) {
				r.Get("/", eventHandler.GetAll)
				r.Post("/", eventHandler.Create)
				r.With(auth.RequireAdmin).Delete("/", eventHandler.DeleteAll)
				r.With(auth.RequireAdmin).Get("/export", eventHandler.Export)
				r.With(auth.RequireAdmin).Post("/import", eventHandler.Import)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", eventHandler.Get)
					r.Put("/", eventHandler.Update)
					r.Delete("/", eventHandler.Delete)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", departmentHandler.GetAll)
				r.With(auth.RequireAdmin).Post("/", departmentHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", departmentHandler.Get)
					r.With(auth.RequireAdmin).Delete("/", departmentHandler.Delete)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.With(auth.RequireAdmin).Get("/", userHandler.GetAll)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", userHandler.Get)
					r.Put("/", userHandler.Update)
					r.With(auth.RequireAdmin).Delete("/", userHandler.Delete)
					r.Post("/password", userHandler.ChangePassword)
					r.Post("/avatar", userHandler.UploadAvatar)
				})
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", announcementHandler.GetAll)
				r.With(auth.RequireAdmin).Post("/", announcementHandler.Create)
				r.Post("/{id}/read", announcementHandler.MarkRead)
			})

			r.Route("/access", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Get("/", accessHandler.Get)
				r.Get("/classify", accessHandler.Classify)
				r.Post("/admins", accessHandler.AddAdmin)
				r.Delete("/admins/{address}", accessHandler.RemoveAdmin)
				r.Post("/scopes", accessHandler.AddScopes)
				r.Delete("/scopes/{address}", accessHandler.RemoveScope)
			})

			r.With(auth.RequireAdmin).Get("/system/stats", systemHandler.GetStats)
		})
	})

	return r
}
