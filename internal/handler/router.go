/*
Package handler provides the HTTP handlers and routing setup for the account service.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to the account handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"accountd/internal/pkg/limiter"
	"accountd/internal/pkg/logx"
	"accountd/internal/pkg/resp"
)

// Rate limits for the unauthenticated, brute-forceable routes.
const (
	SignupRate  = 0.5
	SignupBurst = 10
	LoginRate   = 1.0
	LoginBurst  = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global
// and per-route middleware. Bearer-protected routes sit behind the token
// service's authentication middleware.
func Router(deps *AppDeps) http.Handler {
	signupLimiter := limiter.NewIPRateLimiter(rate.Limit(SignupRate), SignupBurst)
	loginLimiter := limiter.NewIPRateLimiter(rate.Limit(LoginRate), LoginBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "accountd",
		}
		resp.RespondJSON(w, r, http.StatusOK, data)
	})

	r.Route("/users", func(users chi.Router) {
		users.Post("/", signupLimiter.Middleware(HandleSignup(deps)).ServeHTTP)
		users.Post("/login", loginLimiter.Middleware(HandleLogin(deps)).ServeHTTP)

		// Public avatar fetch; "me" routes below take precedence over {id}.
		users.Get("/{id}/avatar", HandleGetAvatar(deps))

		users.Group(func(protected chi.Router) {
			protected.Use(deps.Tokens.Middleware())

			protected.Post("/logout", HandleLogout(deps))
			protected.Post("/logoutAll", HandleLogoutAll(deps))

			protected.Get("/me", HandleGetProfile(deps))
			protected.Patch("/me", HandleUpdateProfile(deps))
			protected.Delete("/me", HandleDeleteAccount(deps))

			protected.Post("/me/avatar", HandleUploadAvatar(deps))
			protected.Delete("/me/avatar", HandleDeleteAvatar(deps))
		})
	})

	return r
}
