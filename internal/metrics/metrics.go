// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WeatherResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelpack_weather_resolutions_total",
			Help: "Weather resolutions by source (live, mock) and reason",
		},
		[]string{"source", "reason"},
	)

	WeatherAPICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelpack_weather_api_calls_total",
			Help: "Total weather provider API calls",
		},
		[]string{"endpoint", "status"},
	)

	WeatherAPILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travelpack_weather_api_latency_seconds",
			Help:    "Weather provider API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelpack_http_requests_total",
			Help: "HTTP requests served, by method and status code",
		},
		[]string{"method", "status"},
	)

	DestinationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "travelpack_destinations_created_total",
			Help: "Destinations created",
		},
	)
)
