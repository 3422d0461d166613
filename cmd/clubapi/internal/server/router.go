// Package server exposes the club API over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	clubmiddleware "github.com/Revanth2074/Aprameya/cmd/clubapi/internal/middleware"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/access"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/dashboard"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/session"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/services/validation"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/telemetry"
)

// RouterOptions controls the construction of the club HTTP router.
// Gateway, Sessions, Dashboard and Validator are required.
type RouterOptions struct {
	Gateway   *access.Gateway
	Sessions  *session.Manager
	Dashboard *dashboard.Resolver
	Validator validation.Validator
	Metrics   *telemetry.Metrics
	Logger    logrus.FieldLogger

	// CookieSecure marks the session cookie Secure even on plain HTTP
	// (TLS terminated by a proxy).
	CookieSecure  bool
	CORSOptions   *cors.Options
	Middleware    []func(http.Handler) http.Handler
	HealthHandler http.HandlerFunc
}

// DefaultCORSOptions returns the shared development CORS policy.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

// CORSOptionsFor returns the default policy restricted to origins, or the
// default policy unchanged when origins is empty.
func CORSOptionsFor(origins []string) cors.Options {
	opts := DefaultCORSOptions()
	if len(origins) > 0 {
		opts.AllowedOrigins = origins
	}
	return opts
}

func defaultHealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// NewRouter assembles a chi.Router with shared middleware, CORS policy, and
// the club handlers mounted.
func NewRouter(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = telemetry.NewNopLogger()
	}

	r := chi.NewRouter()

	// Baseline middleware shared across entrypoints.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log, NoColor: true}))
	r.Use(middleware.Recoverer)

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	if opts.Metrics != nil {
		r.Use(clubmiddleware.NewMetricsMiddleware(opts.Metrics))
	}
	r.Use(clubmiddleware.NewSessionMiddleware(opts.Gateway, log))

	for _, mw := range opts.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	h := &handlers{
		gw:           opts.Gateway,
		sessions:     opts.Sessions,
		dashboard:    opts.Dashboard,
		validator:    opts.Validator,
		log:          log,
		cookieSecure: opts.CookieSecure,
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
		r.Get("/me", h.me)
		r.Get("/dashboard", h.resolveDashboard)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.listUsers)
			r.Get("/me", h.me)
			r.With(h.requireSession).Patch("/me", h.updateMe)
			r.Get("/me/comments", h.myComments)
			r.Get("/me/event-registrations", h.myRegistrations)
			r.With(h.requireSession).Get("/{id}", h.getUser)
			r.With(h.requireSession).Patch("/{id}/role", h.setUserRole)
		})

		mountContent(r, "/projects", h, opts.Gateway.Projects, true)
		mountContent(r, "/blogs", h, opts.Gateway.Blogs, true)
		mountContent(r, "/research", h, opts.Gateway.Research, true)
		mountContent(r, "/events", h, opts.Gateway.Events, false)
		r.Get("/messages", h.listMessages)

		// Routes that parse ids or bodies resolve the session first, so
		// anonymous callers get 401 whatever they send.
		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			r.Get("/events/{id}/registrations", h.eventRegistrations)

			r.Post("/comments", h.createComment)
			r.Patch("/comments/{id}", h.updateComment)
			r.Delete("/comments/{id}", h.deleteComment)

			r.Post("/event-registrations", h.registerForEvent)
			r.Delete("/event-registrations/{id}", h.cancelRegistration)

			r.Post("/messages", h.createMessage)
			r.Delete("/messages/{id}", h.deleteMessage)
		})
	})

	healthHandler := opts.HealthHandler
	if healthHandler == nil {
		healthHandler = defaultHealthHandler
	}
	r.Get("/health", healthHandler)

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	return r
}

// handlers carries what every HTTP handler needs.
type handlers struct {
	gw           *access.Gateway
	sessions     *session.Manager
	dashboard    *dashboard.Resolver
	validator    validation.Validator
	log          logrus.FieldLogger
	cookieSecure bool
}
