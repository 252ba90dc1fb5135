// Package weather resolves destination weather from OpenWeatherMap, falling
// back to deterministic mock data.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"travelpack/internal/domain"
	"travelpack/internal/metrics"
)

const (
	// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	// DefaultTimeout bounds each provider call.
	DefaultTimeout = 5 * time.Second

	forecastDays      = 5
	slotsPerDay       = 8 // the forecast feed is in 3-hour slices
	metersPerSecToKmh = 3.6
	maxBodyBytes      = 1 << 20
)

var errQuotaExhausted = errors.New("outbound quota exhausted")

// OpenWeatherMap fetches current conditions and a daily forecast.
type OpenWeatherMap struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customises an OpenWeatherMap client.
type Option func(*OpenWeatherMap)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(o *OpenWeatherMap) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// WithHTTPClient replaces the default 5s-timeout HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *OpenWeatherMap) { o.httpClient = c }
}

// WithRateLimit caps lookups at rps per second. A lookup that finds the
// bucket empty fails immediately instead of waiting. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *OpenWeatherMap) {
		if rps <= 0 {
			o.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewOpenWeatherMap creates a client for the given API key.
func NewOpenWeatherMap(apiKey string, opts ...Option) *OpenWeatherMap {
	o := &OpenWeatherMap{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type currentResponse struct {
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike float64  `json:"feels_like"`
		Humidity  int      `json:"humidity"`
	} `json:"main"`
	Weather []weatherEntry `json:"weather"`
	Wind    *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	City struct {
		Timezone int `json:"timezone"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main *struct {
			Temp    *float64 `json:"temp"`
			TempMin float64  `json:"temp_min"`
			TempMax float64  `json:"temp_max"`
		} `json:"main"`
		Weather []weatherEntry `json:"weather"`
	} `json:"list"`
}

type weatherEntry struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Fetch returns live weather for city, country. Every failure is a
// *ProviderError, including payloads missing main.temp, weather[], wind.speed
// or the forecast list. Forecast weekdays are labelled in the destination's
// local time, using the offset the forecast feed reports for the city.
func (o *OpenWeatherMap) Fetch(ctx context.Context, city, country string) (domain.WeatherRecord, error) {
	if o.limiter != nil && !o.limiter.Allow() {
		return domain.WeatherRecord{}, &ProviderError{Op: "ratelimit", Err: errQuotaExhausted}
	}

	var cur currentResponse
	if err := o.get(ctx, "weather", city, country, &cur); err != nil {
		return domain.WeatherRecord{}, err
	}
	var fc forecastResponse
	if err := o.get(ctx, "forecast", city, country, &fc); err != nil {
		return domain.WeatherRecord{}, err
	}

	if cur.Main.Temp == nil || len(cur.Weather) == 0 {
		return domain.WeatherRecord{}, &ProviderError{Op: "weather", Err: errors.New("malformed payload: missing main.temp or weather[]")}
	}
	if cur.Wind == nil || cur.Wind.Speed == nil {
		return domain.WeatherRecord{}, &ProviderError{Op: "weather", Err: errors.New("malformed payload: missing wind.speed")}
	}
	// An empty list is a short forecast; an absent one is garbage.
	if fc.List == nil {
		return domain.WeatherRecord{}, &ProviderError{Op: "forecast", Err: errors.New("malformed payload: missing list")}
	}

	rec := domain.WeatherRecord{
		Temperature: roundHalfUp(*cur.Main.Temp),
		FeelsLike:   roundHalfUp(cur.Main.FeelsLike),
		Condition:   cur.Weather[0].Main,
		Description: cur.Weather[0].Description,
		Humidity:    cur.Main.Humidity,
		WindSpeed:   roundHalfUp(*cur.Wind.Speed * metersPerSecToKmh),
		Forecast:    make([]domain.ForecastDay, 0, forecastDays),
	}

	zone := time.FixedZone("city", fc.City.Timezone)
	for i := 0; i < forecastDays; i++ {
		idx := i * slotsPerDay
		if idx >= len(fc.List) {
			break
		}
		slot := fc.List[idx]
		if len(slot.Weather) == 0 {
			return domain.WeatherRecord{}, &ProviderError{Op: "forecast", Err: fmt.Errorf("malformed payload: list[%d] has no weather entry", idx)}
		}
		if slot.Main == nil || slot.Main.Temp == nil {
			return domain.WeatherRecord{}, &ProviderError{Op: "forecast", Err: fmt.Errorf("malformed payload: list[%d] has no main.temp", idx)}
		}
		rec.Forecast = append(rec.Forecast, domain.ForecastDay{
			Day:       time.Unix(slot.Dt, 0).In(zone).Format("Mon"),
			Temp:      roundHalfUp(*slot.Main.Temp),
			TempMin:   roundHalfUp(slot.Main.TempMin),
			TempMax:   roundHalfUp(slot.Main.TempMax),
			Condition: slot.Weather[0].Main,
			Icon:      slot.Weather[0].Icon,
		})
	}
	return rec, nil
}

func (o *OpenWeatherMap) get(ctx context.Context, endpoint, city, country string, dst any) error {
	params := url.Values{}
	params.Set("q", city+","+country)
	params.Set("appid", o.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return &ProviderError{Op: endpoint, Err: fmt.Errorf("create request: %w", err)}
	}

	start := time.Now()
	resp, err := o.httpClient.Do(req)
	metrics.WeatherAPILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.WeatherAPICalls.WithLabelValues(endpoint, "error").Inc()
		return &ProviderError{Op: endpoint, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close() //nolint:errcheck
	metrics.WeatherAPICalls.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ProviderError{Op: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{Op: endpoint, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ProviderError{Op: endpoint, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
