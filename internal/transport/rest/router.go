package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/membership-management/internal/admin"
	"github.com/frahmantamala/membership-management/internal/auth"
	"github.com/frahmantamala/membership-management/internal/department"
	"github.com/frahmantamala/membership-management/internal/passwordreset"
	"github.com/frahmantamala/membership-management/internal/registration"
	"github.com/frahmantamala/membership-management/internal/subscription"
	"github.com/frahmantamala/membership-management/internal/transport/middleware"
	"github.com/frahmantamala/membership-management/internal/transport/swagger"
	"github.com/frahmantamala/membership-management/internal/user"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth          *auth.Handler
	Registration  *registration.Handler
	User          *user.Handler
	Admin         *admin.Handler
	PasswordReset *passwordreset.Handler
	Department    *department.Handler
	Subscription  *subscription.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Post("/auth/login", h.Auth.Login)
		r.Post("/register", h.Registration.Register)

		// Public reference data for the registration form
		r.Get("/departments", h.Department.GetDepartments)
		r.Get("/subscription-types", h.Subscription.GetSubscriptionTypes)

		// OTP password recovery is reachable without a token
		r.Route("/users/forgot-password", func(fr chi.Router) {
			fr.Post("/send-otp", h.PasswordReset.SendOTP)
			fr.Post("/verify-otp", h.PasswordReset.VerifyOTP)
			fr.Post("/reset-password", h.PasswordReset.ResetPassword)
		})

		// Authenticated routes
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.Me)
			pr.Put("/users/me/password", h.PasswordReset.ChangePassword)
			pr.Get("/users/{id}", h.User.GetByID)

			// Admin routes
			pr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.RequireAdmin)

				ar.Get("/admin/users", h.Admin.ListUsers)
				ar.Patch("/admin/users/{id}", h.Admin.UpdateUser)
				ar.Patch("/admin/users/{id}/status", h.Admin.UpdateStatus)
				ar.Patch("/admin/users/{id}/active", h.Admin.SetActive)
			})
		})
	})
}
