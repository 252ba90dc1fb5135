package weather

import (
	"strings"
	"unicode/utf16"

	"travelpack/internal/domain"
)

var (
	mockTemperatures = [...]int{15, 22, 28, 8, 18, 25, 12, 30, 20, 14}
	mockConditions   = [...]string{"Clear", "Clouds", "Rain", "Clear", "Clouds"}
	mockDescriptions = [...]string{"clear sky", "few clouds", "light rain", "sunny", "partly cloudy"}
)

// cityHash is a 32-bit rolling hash (h*31 + unit) over the UTF-16 code
// units of the lower-cased city. int32 overflow wraps, which is the point.
func cityHash(city string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(strings.ToLower(city))) {
		h = (h << 5) - h + int32(u)
	}
	return h
}

// GenerateMock returns synthetic weather derived only from the city name.
// The same city always produces the same record; country is ignored.
func GenerateMock(city, _ string) domain.WeatherRecord {
	n := int64(cityHash(city))
	if n < 0 {
		n = -n
	}

	base := mockTemperatures[n%int64(len(mockTemperatures))]
	ci := n % int64(len(mockConditions))
	condition := mockConditions[ci]

	return domain.WeatherRecord{
		Temperature: base,
		FeelsLike:   base + int(n%5) - 2,
		Condition:   condition,
		Description: mockDescriptions[ci],
		Humidity:    50 + int(n%30),
		WindSpeed:   10 + int(n%20),
		Forecast: []domain.ForecastDay{
			{Day: "Sat", Temp: base, TempMin: base - 5, TempMax: base + 5, Condition: condition, Icon: "01d"},
			{Day: "Sun", Temp: base + 2, TempMin: base - 3, TempMax: base + 7, Condition: "Clouds", Icon: "02d"},
			{Day: "Mon", Temp: base - 1, TempMin: base - 6, TempMax: base + 4, Condition: condition, Icon: "01d"},
			{Day: "Tue", Temp: base + 3, TempMin: base - 2, TempMax: base + 8, Condition: "Rain", Icon: "10d"},
			{Day: "Wed", Temp: base + 1, TempMin: base - 4, TempMax: base + 6, Condition: "Clouds", Icon: "03d"},
		},
	}
}
