package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"travelpack/internal/domain"
	"travelpack/internal/weather"
)

type weatherFlags struct {
	APIKey  string  `name:"api-key" env:"WEATHER_API_KEY" help:"OpenWeatherMap API key. Empty or the placeholder uses mock weather."`
	BaseURL string  `name:"base-url" env:"WEATHER_BASE_URL" default:"${weather_base_url}" help:"Weather provider base URL."`
	RPS     float64 `name:"rps" env:"WEATHER_RPS" default:"1" help:"Outbound provider requests per second, 0 for unlimited."`
}

func (f weatherFlags) config() weather.Config {
	return weather.Config{APIKey: f.APIKey, BaseURL: f.BaseURL, RPS: f.RPS}
}

type cli struct {
	LogLevel  string       `env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	LogFormat string       `env:"LOG_FORMAT" default:"text" enum:"text,json" help:"Log format."`
	Weather   weatherFlags `embed:"" prefix:"weather-"`

	Serve   serveCmd   `cmd:"" default:"withargs" help:"Run the HTTP API server."`
	Resolve resolveCmd `cmd:"" name:"weather" help:"Resolve weather for a location and print it with packing suggestions."`
}

type resolveCmd struct {
	City    string `required:"" help:"City name."`
	Country string `required:"" help:"Country name or code."`
}

// Run prints the resolved record and the suggestions it yields as JSON.
func (c *resolveCmd) Run(root *cli, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resolver := weather.NewResolver(root.Weather.config(), logger)
	w := resolver.Resolve(ctx, c.City, c.Country)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Live        bool                       `json:"live"`
		Weather     domain.WeatherRecord       `json:"weather"`
		Suggestions []domain.PackingSuggestion `json:"suggestions"`
	}{resolver.Live(), w, domain.SuggestPackingItems(w)})
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var root cli
	ctx := kong.Parse(&root,
		kong.Name("travelpack"),
		kong.Description("Weather-aware travel packing planner."),
		kong.UsageOnError(),
		kong.Vars{"weather_base_url": weather.DefaultBaseURL},
	)

	logger := newLogger(root.LogLevel, root.LogFormat)
	slog.SetDefault(logger)

	if err := ctx.Run(&root, logger); err != nil {
		logger.Error("command failed", "cmd", ctx.Command(), "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
