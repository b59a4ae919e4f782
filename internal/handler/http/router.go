package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/handler/http/middleware"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env         string
	Version     string
	FrontendURL string
	LogLevel    slog.Level
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, dashboardHandler DashboardHandler, exportHandler ExportHandler, companyHandler CompanyHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fichajes-dashboard"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/healthz"
		},
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		// Authenticated by the short-lived stream token in the query
		r.Get("/dashboard/stream", dashboardHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", dashboardHandler.GetDashboard)
				r.Post("/refresh", dashboardHandler.Refresh)
				r.Get("/map", dashboardHandler.GetMap)
				r.Get("/chart", dashboardHandler.GetChart)
				r.Post("/stream/token", dashboardHandler.GetStreamToken)
			})

			r.Get("/exports/{format}", exportHandler.Download)

			r.Route("/companies/my", func(r chi.Router) {
				r.Get("/scope", companyHandler.GetScope)
			})
		})
	})
	return r
}
