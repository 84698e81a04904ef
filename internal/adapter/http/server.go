package adapthttp

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"

	"logyourbody/internal/app"
	"logyourbody/internal/telemetry"
)

// Services are the application services the API exposes.
type Services struct {
	Auth     *app.AuthService
	Metrics  *app.MetricService
	Photos   *app.PhotoService
	Profiles *app.ProfileService
	Timeline *app.TimelineService
	Export   *app.ExportService
}

// OIDCConfig enables single sign-on through an OpenID Connect provider.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	authSvc    *app.AuthService
	metrics    *app.MetricService
	photos     *app.PhotoService
	profiles   *app.ProfileService
	timeline   *app.TimelineService
	exports    *app.ExportService
	oidcConfig OIDCConfig

	telemetry   *telemetry.Manager
	gatherer    prometheus.Gatherer
	disableAuth bool
	trustProxy  bool
}

// New creates a Server wired to the given application services. A nil
// gatherer disables the /metrics endpoint.
func New(svc Services, oidcConfig OIDCConfig, tm *telemetry.Manager, gatherer prometheus.Gatherer) *Server {
	return &Server{
		authSvc:    svc.Auth,
		metrics:    svc.Metrics,
		photos:     svc.Photos,
		profiles:   svc.Profiles,
		timeline:   svc.Timeline,
		exports:    svc.Export,
		oidcConfig: oidcConfig,
		telemetry:  tm,
		gatherer:   gatherer,
	}
}

// WithoutAuth disables authentication; every request acts as user 1.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// WithForwardAuth trusts the Remote-User and X-Forwarded-For headers set by
// a reverse proxy in front of the server.
func (s *Server) WithForwardAuth() *Server {
	s.trustProxy = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.panicRecovery, s.loggingMiddleware)
	if s.telemetry != nil {
		r.Use(s.requestMetrics)
	}

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(withNoCache)

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	auth.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	auth.HandleFunc("/setup", s.handleSetupUser).Methods(http.MethodPost)
	auth.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)
	auth.HandleFunc("/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
	auth.HandleFunc("/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)

	calc := api.PathPrefix("/calculate").Subrouter()
	calc.HandleFunc("/navy", s.handleCalculateNavy).Methods(http.MethodPost)
	calc.HandleFunc("/three-site", s.handleCalculateThreeSite).Methods(http.MethodPost)
	calc.HandleFunc("/seven-site", s.handleCalculateSevenSite).Methods(http.MethodPost)
	calc.HandleFunc("/ffmi", s.handleCalculateFFMI).Methods(http.MethodPost)

	user := api.NewRoute().Subrouter()
	user.Use(s.authMiddleware)
	user.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	user.HandleFunc("/profile", s.handlePutProfile).Methods(http.MethodPut)
	user.HandleFunc("/metrics", s.handleListMetrics).Methods(http.MethodGet)
	user.HandleFunc("/metrics", s.handleLogMetric).Methods(http.MethodPost)
	user.HandleFunc("/metrics/{id:[0-9]+}", s.handleUpdateMetric).Methods(http.MethodPut)
	user.HandleFunc("/metrics/{id:[0-9]+}", s.handleDeleteMetric).Methods(http.MethodDelete)
	user.HandleFunc("/photos", s.handleListPhotos).Methods(http.MethodGet)
	user.HandleFunc("/photos", s.handleAddPhoto).Methods(http.MethodPost)
	user.HandleFunc("/photos/{id:[0-9]+}", s.handleDeletePhoto).Methods(http.MethodDelete)
	user.HandleFunc("/timeline", s.handleTimeline).Methods(http.MethodGet)
	user.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)

	return r
}
