package adapthttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"

	"travelpack/internal/app"
)

// OIDCConfig holds the single sign-on provider. SSO routes answer 404 while
// Enabled is false.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Options configures a Server.
type Options struct {
	// WebDir, when set, serves a single-page app for every non-API path.
	WebDir string
	// FrontendURL is the only origin allowed by CORS.
	FrontendURL string
	// Environment is reported by the health endpoint.
	Environment string
	// TrustForwardAuth honours the Remote-User header of an auth proxy.
	TrustForwardAuth bool
	OIDC             OIDCConfig
	Logger           *slog.Logger
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth    *app.AuthService
	dests   *app.DestinationService
	packing *app.PackingService
	opts    Options
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, dests *app.DestinationService, packing *app.PackingService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Environment == "" {
		opts.Environment = "development"
	}
	return &Server{
		auth:    auth,
		dests:   dests,
		packing: packing,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", s.handleHealth)

	api.HandleFunc("POST /auth/register", s.handleRegister)
	api.HandleFunc("POST /auth/login", s.handleLogin)
	api.Handle("GET /auth/me", s.requireAuth(s.handleMe))
	api.HandleFunc("GET /auth/config", s.handleConfig)
	api.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)

	api.Handle("POST /destinations", s.requireAuth(s.handleCreateDestination))
	api.Handle("GET /destinations", s.requireAuth(s.handleListDestinations))
	api.Handle("GET /destinations/{id}", s.requireAuth(s.handleGetDestination))
	api.Handle("PUT /destinations/{id}", s.requireAuth(s.handleUpdateDestination))
	api.Handle("DELETE /destinations/{id}", s.requireAuth(s.handleDeleteDestination))

	api.Handle("POST /packing/{destinationId}/items", s.requireAuth(s.handleAddItem))
	api.Handle("DELETE /packing/{destinationId}/items", s.requireAuth(s.handleClearItems))
	api.Handle("PUT /packing/{destinationId}/items/{itemId}", s.requireAuth(s.handleUpdateItem))
	api.Handle("DELETE /packing/{destinationId}/items/{itemId}", s.requireAuth(s.handleDeleteItem))

	api.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errRouteNotFound)
	})

	root := http.NewServeMux()
	root.Handle("/api/", withNoCache(http.StripPrefix("/api", api)))
	root.Handle("GET /metrics", promhttp.Handler())
	if s.opts.WebDir != "" {
		root.Handle("/", spaFromDisk(s.opts.WebDir))
	}

	return s.loggingMiddleware(s.corsMiddleware(root))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "OK",
		"timestamp":   s.now().UTC().Format(time.RFC3339),
		"environment": s.opts.Environment,
	})
}
