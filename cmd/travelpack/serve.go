package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	adapthttp "travelpack/internal/adapter/http"
	"travelpack/internal/adapter/memory"
	"travelpack/internal/adapter/postgres"
	"travelpack/internal/adapter/sqlite"
	"travelpack/internal/app"
	"travelpack/internal/domain"
	"travelpack/internal/weather"
)

type serveCmd struct {
	Addr             string `env:"ADDR" default:":5000" help:"Listen address."`
	DatabaseURL      string `env:"DATABASE_URL" help:"postgres://... for PostgreSQL, sqlite:<path> or <path>.db for SQLite, empty for in-memory."`
	JWTSecret        string `name:"jwt-secret" env:"JWT_SECRET" help:"Token signing secret. Random per process when unset."`
	FrontendURL      string `env:"FRONTEND_URL" default:"http://localhost:3000" help:"Origin allowed by CORS."`
	WebDir           string `env:"WEB_DIR" help:"Directory with a built single-page app to serve."`
	Environment      string `env:"NODE_ENV,APP_ENV" default:"development" help:"Environment name reported by /api/health."`
	TrustForwardAuth bool   `env:"TRUST_FORWARD_AUTH" help:"Trust the Remote-User header set by an auth proxy."`

	OIDCIssuer       string `name:"oidc-issuer" env:"OIDC_ISSUER" help:"OIDC issuer URL. Enables SSO together with the client id."`
	OIDCClientID     string `name:"oidc-client-id" env:"OIDC_CLIENT_ID" help:"OIDC client id."`
	OIDCClientSecret string `name:"oidc-client-secret" env:"OIDC_CLIENT_SECRET" help:"OIDC client secret."`
	OIDCRedirectURL  string `name:"oidc-redirect-url" env:"OIDC_REDIRECT_URL" help:"OIDC redirect URL, ending in /api/auth/sso/callback."`
}

// store is what the application services need from persistence.
type store interface {
	domain.UserRepository
	domain.DestinationRepository
}

// openStore picks the adapter from the shape of the database URL.
func openStore(databaseURL string) (store, string, func() error, error) {
	noop := func() error { return nil }
	switch {
	case databaseURL == "":
		return memory.New(), "memory", noop, nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		db, err := postgres.Open(databaseURL)
		if err != nil {
			return nil, "", nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, "postgres", db.Close, nil
	case strings.HasPrefix(databaseURL, "sqlite:"), strings.HasSuffix(databaseURL, ".db"):
		db, err := sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite:"))
		if err != nil {
			return nil, "", nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, "sqlite", db.Close, nil
	default:
		return nil, "", nil, fmt.Errorf("unsupported DATABASE_URL %q", databaseURL)
	}
}

func (c *serveCmd) oidcConfig(ctx context.Context) (adapthttp.OIDCConfig, error) {
	if c.OIDCIssuer == "" || c.OIDCClientID == "" {
		return adapthttp.OIDCConfig{}, nil
	}
	provider, err := oidc.NewProvider(ctx, c.OIDCIssuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, fmt.Errorf("oidc discovery: %w", err)
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     c.OIDCClientID,
			ClientSecret: c.OIDCClientSecret,
			RedirectURL:  c.OIDCRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Run serves the API until SIGINT or SIGTERM.
func (c *serveCmd) Run(root *cli, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, kind, closeDB, err := openStore(c.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	secret := c.JWTSecret
	if secret == "" {
		if secret, err = randomSecret(); err != nil {
			return err
		}
		logger.Warn("JWT_SECRET not set; using a random secret, tokens will not survive a restart")
	}

	oidcCfg, err := c.oidcConfig(ctx)
	if err != nil {
		return err
	}

	resolver := weather.NewResolver(root.Weather.config(), logger)
	authSvc := app.NewAuthService(db, app.NewTokens(secret, app.TokenTTL))
	destSvc := app.NewDestinationService(db, resolver, logger)
	packSvc := app.NewPackingService(db)

	h := adapthttp.New(authSvc, destSvc, packSvc, adapthttp.Options{
		WebDir:           c.WebDir,
		FrontendURL:      c.FrontendURL,
		Environment:      c.Environment,
		TrustForwardAuth: c.TrustForwardAuth,
		OIDC:             oidcCfg,
		Logger:           logger,
	}).Handler()

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			"addr", c.Addr,
			"store", kind,
			"weather_live", resolver.Live(),
			"sso", oidcCfg.Enabled,
			"environment", c.Environment,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
