package weather

import (
	"context"
	"errors"
	"log/slog"

	"travelpack/internal/domain"
	"travelpack/internal/metrics"
)

// PlaceholderAPIKey is the sample key shipped in example env files. It is
// treated as no key at all.
const PlaceholderAPIKey = "your-openweather-api-key"

// Config selects and configures the live provider.
type Config struct {
	APIKey  string
	BaseURL string
	// RPS caps outbound lookups per second; 0 disables the cap.
	RPS float64
}

// Live reports whether cfg carries a usable API key.
func (c Config) Live() bool {
	return c.APIKey != "" && c.APIKey != PlaceholderAPIKey
}

// Fetcher is a live weather source.
type Fetcher interface {
	Fetch(ctx context.Context, city, country string) (domain.WeatherRecord, error)
}

// Resolver returns live weather when it can and mock weather otherwise.
type Resolver struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewResolver builds a Resolver from cfg. Without a usable key it only ever
// produces mock data.
func NewResolver(cfg Config, logger *slog.Logger) *Resolver {
	var f Fetcher
	if cfg.Live() {
		f = NewOpenWeatherMap(cfg.APIKey, WithBaseURL(cfg.BaseURL), WithRateLimit(cfg.RPS, 5))
	}
	return NewResolverWithFetcher(f, logger)
}

// NewResolverWithFetcher builds a Resolver around f. A nil f means mock only.
func NewResolverWithFetcher(f Fetcher, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{fetcher: f, logger: logger}
}

// Live reports whether the resolver will attempt the live provider.
func (r *Resolver) Live() bool { return r.fetcher != nil }

// Resolve never fails: any provider problem yields GenerateMock output for
// the same location, with no provider data mixed in.
func (r *Resolver) Resolve(ctx context.Context, city, country string) domain.WeatherRecord {
	if r.fetcher == nil {
		metrics.WeatherResolutions.WithLabelValues("mock", "unconfigured").Inc()
		r.logger.Debug("no weather api key, using mock data", "city", city, "country", country)
		return GenerateMock(city, country)
	}

	rec, err := r.fetcher.Fetch(ctx, city, country)
	if err != nil {
		var pe *ProviderError
		op := "unknown"
		if errors.As(err, &pe) {
			op = pe.Op
		}
		metrics.WeatherResolutions.WithLabelValues("mock", "provider_error").Inc()
		r.logger.Warn("weather provider failed, using mock data",
			"city", city, "country", country, "op", op, "err", err)
		return GenerateMock(city, country)
	}

	metrics.WeatherResolutions.WithLabelValues("live", "ok").Inc()
	r.logger.Debug("fetched live weather", "city", city, "country", country, "temperature", rec.Temperature, "condition", rec.Condition)
	return rec
}
