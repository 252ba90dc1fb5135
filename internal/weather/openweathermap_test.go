package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const baseDt = 1700000000 // Tue 2023-11-14 22:13:20 UTC

func forecastPayload(slots, timezone int) map[string]any {
	list := make([]map[string]any, slots)
	for i := range list {
		list[i] = map[string]any{
			"dt": baseDt + i*3*3600,
			"main": map[string]any{
				"temp":     10.4 + float64(i),
				"temp_min": 8.5 + float64(i),
				"temp_max": 12.49 + float64(i),
			},
			"weather": []map[string]any{{"main": "Clouds", "description": "overcast", "icon": "04d"}},
		}
	}
	return map[string]any{"city": map[string]any{"timezone": timezone}, "list": list}
}

func currentPayload() map[string]any {
	return map[string]any{
		"main":    map[string]any{"temp": 21.5, "feels_like": -2.5, "humidity": 81},
		"weather": []map[string]any{{"main": "Rain", "description": "moderate rain", "icon": "10d"}},
		"wind":    map[string]any{"speed": 4.17},
	}
}

func newProvider(t *testing.T, current, forecast any, status int) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			return
		}
		switch r.URL.Path {
		case "/weather":
			_ = json.NewEncoder(w).Encode(current)
		case "/forecast":
			_ = json.NewEncoder(w).Encode(forecast)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)
	return ts, &paths
}

func TestOpenWeatherMapFetch(t *testing.T) {
	ts, paths := newProvider(t, currentPayload(), forecastPayload(40, 0), http.StatusOK)
	owm := NewOpenWeatherMap("k3y", WithBaseURL(ts.URL))

	w, err := owm.Fetch(context.Background(), "Paris", "FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Temperature != 22 || w.FeelsLike != -2 || w.Humidity != 81 || w.WindSpeed != 15 {
		t.Errorf("unexpected normalisation: %+v", w)
	}
	if w.Condition != "Rain" || w.Description != "moderate rain" {
		t.Errorf("unexpected condition: %q %q", w.Condition, w.Description)
	}

	wantDays := []string{"Tue", "Wed", "Thu", "Fri", "Sat"}
	if len(w.Forecast) != 5 {
		t.Fatalf("expected 5 forecast days, got %d", len(w.Forecast))
	}
	for i, f := range w.Forecast {
		if f.Day != wantDays[i] {
			t.Errorf("day %d = %q; want %q", i, f.Day, wantDays[i])
		}
		slot := float64(i * 8)
		if f.Temp != roundHalfUp(10.4+slot) || f.TempMin != roundHalfUp(8.5+slot) || f.TempMax != roundHalfUp(12.49+slot) {
			t.Errorf("day %d temps = %+v", i, f)
		}
		if f.Icon != "04d" || f.Condition != "Clouds" {
			t.Errorf("day %d icon/condition = %q/%q", i, f.Icon, f.Condition)
		}
	}

	if len(*paths) != 2 {
		t.Fatalf("expected 2 provider calls, got %d", len(*paths))
	}
	if (*paths)[0] != "/weather?appid=k3y&q=Paris%2CFR&units=metric" {
		t.Errorf("unexpected current request: %s", (*paths)[0])
	}
}

func TestOpenWeatherMapFetch_ShortForecast(t *testing.T) {
	ts, _ := newProvider(t, currentPayload(), forecastPayload(10, 0), http.StatusOK)
	w, err := NewOpenWeatherMap("k", WithBaseURL(ts.URL)).Fetch(context.Background(), "Paris", "FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Forecast) != 2 {
		t.Fatalf("expected 2 forecast days, got %d", len(w.Forecast))
	}
}

func TestOpenWeatherMapFetch_EmptyForecastList(t *testing.T) {
	ts, _ := newProvider(t, currentPayload(), forecastPayload(0, 0), http.StatusOK)
	w, err := NewOpenWeatherMap("k", WithBaseURL(ts.URL)).Fetch(context.Background(), "Paris", "FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Forecast == nil || len(w.Forecast) != 0 {
		t.Fatalf("expected an empty forecast, got %#v", w.Forecast)
	}
}

func TestOpenWeatherMapFetch_TimezoneShiftsWeekday(t *testing.T) {
	ts, _ := newProvider(t, currentPayload(), forecastPayload(1, 7200), http.StatusOK)
	w, err := NewOpenWeatherMap("k", WithBaseURL(ts.URL)).Fetch(context.Background(), "Athens", "GR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Forecast[0].Day != "Wed" {
		t.Fatalf("expected Wed in UTC+2, got %q", w.Forecast[0].Day)
	}
}

func TestOpenWeatherMapFetch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		current  any
		forecast any
		status   int
	}{
		{"unauthorised", currentPayload(), forecastPayload(40, 0), http.StatusUnauthorized},
		{"server error", currentPayload(), forecastPayload(40, 0), http.StatusInternalServerError},
		{"no weather entries", map[string]any{"main": map[string]any{"temp": 3}}, forecastPayload(40, 0), http.StatusOK},
		{"missing temp", map[string]any{"weather": []map[string]any{{"main": "Clear"}}}, forecastPayload(40, 0), http.StatusOK},
		{"bad forecast shape", currentPayload(), map[string]any{"list": "nope"}, http.StatusOK},
		{"forecast slot without weather", currentPayload(), map[string]any{"list": []map[string]any{{"dt": baseDt}}}, http.StatusOK},
		{"forecast without list", currentPayload(), map[string]any{"city": map[string]any{"timezone": 0}}, http.StatusOK},
		{"current without wind", map[string]any{
			"main":    map[string]any{"temp": 21.5, "feels_like": 20, "humidity": 60},
			"weather": []map[string]any{{"main": "Clear", "description": "clear sky", "icon": "01d"}},
		}, forecastPayload(40, 0), http.StatusOK},
		{"forecast slot without main", currentPayload(), map[string]any{"list": []map[string]any{
			{"dt": baseDt, "weather": []map[string]any{{"main": "Clear", "icon": "01d"}}},
		}}, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts, _ := newProvider(t, tc.current, tc.forecast, tc.status)
			_, err := NewOpenWeatherMap("k", WithBaseURL(ts.URL)).Fetch(context.Background(), "Paris", "FR")
			var pe *ProviderError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ProviderError, got %v", err)
			}
		})
	}
}

func TestOpenWeatherMapFetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	owm := NewOpenWeatherMap("k", WithBaseURL(ts.URL), WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	_, err := owm.Fetch(context.Background(), "Paris", "FR")
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Op != "weather" {
		t.Fatalf("expected weather ProviderError, got %v", err)
	}
}

func TestOpenWeatherMapFetch_RateLimited(t *testing.T) {
	ts, paths := newProvider(t, currentPayload(), forecastPayload(40, 0), http.StatusOK)
	owm := NewOpenWeatherMap("k", WithBaseURL(ts.URL), WithRateLimit(0.001, 1))

	if _, err := owm.Fetch(context.Background(), "Paris", "FR"); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}
	_, err := owm.Fetch(context.Background(), "Paris", "FR")
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Op != "ratelimit" {
		t.Fatalf("expected ratelimit ProviderError, got %v", err)
	}
	if len(*paths) != 2 {
		t.Fatalf("rate limited call must not reach the provider; got %d calls", len(*paths))
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.5, 1}, {1.49, 1}, {-0.5, 0}, {-2.5, -2}, {-2.51, -3}, {15.012, 15},
	}
	for _, tc := range tests {
		if got := roundHalfUp(tc.in); got != tc.want {
			t.Errorf("roundHalfUp(%v) = %d; want %d", tc.in, got, tc.want)
		}
	}
}
