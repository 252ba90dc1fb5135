package weather

import (
	"reflect"
	"testing"
)

func TestCityHash(t *testing.T) {
	tests := []struct {
		city string
		want int32
	}{
		{"", 0},
		{"Paris", 106437003},
		{"paris", 106437003},
		{"Bangkok", -337162673},
		{"München", 977871981},
		{"🌴 Beach", -550254149},
	}
	for _, tc := range tests {
		if got := cityHash(tc.city); got != tc.want {
			t.Errorf("cityHash(%q) = %d; want %d", tc.city, got, tc.want)
		}
	}
}

func TestGenerateMock_KnownCities(t *testing.T) {
	tests := []struct {
		city        string
		temp        int
		condition   string
		description string
		humidity    int
		wind        int
		feelsLike   int
	}{
		{"Paris", 8, "Clear", "sunny", 53, 13, 9},
		{"Bangkok", 8, "Clear", "sunny", 73, 23, 9},
		{"London", 12, "Clouds", "few clouds", 76, 26, 11},
		{"Dubai", 30, "Rain", "light rain", 57, 27, 30},
		{"Prague", 28, "Rain", "light rain", 52, 22, 28},
		{"Lisbon", 14, "Clouds", "partly cloudy", 79, 19, 16},
		{"Oslo", 25, "Clear", "clear sky", 75, 25, 23},
		{"", 15, "Clear", "clear sky", 50, 10, 13},
	}
	for _, tc := range tests {
		t.Run(tc.city, func(t *testing.T) {
			w := GenerateMock(tc.city, "XX")
			if w.Temperature != tc.temp || w.Condition != tc.condition || w.Description != tc.description {
				t.Errorf("got %d %q %q; want %d %q %q", w.Temperature, w.Condition, w.Description, tc.temp, tc.condition, tc.description)
			}
			if w.Humidity != tc.humidity || w.WindSpeed != tc.wind || w.FeelsLike != tc.feelsLike {
				t.Errorf("got humidity=%d wind=%d feels=%d; want %d %d %d", w.Humidity, w.WindSpeed, w.FeelsLike, tc.humidity, tc.wind, tc.feelsLike)
			}
		})
	}
}

func TestGenerateMock_Forecast(t *testing.T) {
	w := GenerateMock("Dubai", "AE")
	b := w.Temperature
	want := []struct {
		day             string
		temp, lo, hi    int
		condition, icon string
	}{
		{"Sat", b, b - 5, b + 5, "Rain", "01d"},
		{"Sun", b + 2, b - 3, b + 7, "Clouds", "02d"},
		{"Mon", b - 1, b - 6, b + 4, "Rain", "01d"},
		{"Tue", b + 3, b - 2, b + 8, "Rain", "10d"},
		{"Wed", b + 1, b - 4, b + 6, "Clouds", "03d"},
	}
	if len(w.Forecast) != len(want) {
		t.Fatalf("expected %d forecast days, got %d", len(want), len(w.Forecast))
	}
	for i, f := range w.Forecast {
		x := want[i]
		if f.Day != x.day || f.Temp != x.temp || f.TempMin != x.lo || f.TempMax != x.hi || f.Condition != x.condition || f.Icon != x.icon {
			t.Errorf("day %d = %+v; want %+v", i, f, x)
		}
	}
}

func TestGenerateMock_Deterministic(t *testing.T) {
	for _, city := range []string{"Paris", "Bangkok", "Reykjavik", "São Paulo", "a very long city name indeed, much longer than usual"} {
		a := GenerateMock(city, "A")
		b := GenerateMock(city, "B")
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%q: mock weather differs between calls", city)
		}
	}
}
