package domain

// WeatherRecord is a normalized snapshot of current conditions plus a short
// daily forecast. Temperatures are °C and wind speed is km/h.
type WeatherRecord struct {
	Temperature int           `json:"temperature"`
	FeelsLike   int           `json:"feelsLike"`
	Condition   string        `json:"condition"`
	Description string        `json:"description"`
	Humidity    int           `json:"humidity"`
	WindSpeed   int           `json:"windSpeed"`
	Forecast    []ForecastDay `json:"forecast"`
}

// ForecastDay is one day of the forecast.
type ForecastDay struct {
	Day       string `json:"day"`
	Temp      int    `json:"temp"`
	TempMin   int    `json:"tempMin"`
	TempMax   int    `json:"tempMax"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}

// Clone returns a deep copy of w.
func (w *WeatherRecord) Clone() *WeatherRecord {
	if w == nil {
		return nil
	}
	c := *w
	if w.Forecast != nil {
		c.Forecast = append([]ForecastDay(nil), w.Forecast...)
	}
	return &c
}
