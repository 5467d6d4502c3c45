package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-weather-agent/internal/weather"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	forecastDays   = 7
	dailyVariables = "temperature_2m_max,temperature_2m_min,precipitation_sum"
)

// OpenMeteoGeocoder implements weather.Geocoder on top of the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	name     string
	baseURL  string
	language string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocoder(client *http.Client, baseURL, language string) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{
		name:     "geocoding",
		baseURL:  baseURL,
		language: language,
		client:   client,
		circuit:  newBreaker("openmeteo-geocoding"),
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

// Geocode returns the first match for name, or nil when the provider has no results.
func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, name string) (*weather.Place, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "1")
	if g.language != "" {
		values.Set("language", g.language)
	}

	body, err := getBody(ctx, g.client, g.circuit, g.name, g.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", name, err)
	}

	var payload struct {
		Results []weather.Place `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("geocode %q: decode: %w", name, err)
	}

	if len(payload.Results) == 0 {
		return nil, nil
	}
	place := payload.Results[0]
	return &place, nil
}

// OpenMeteoForecaster implements weather.Forecaster on top of the Open-Meteo forecast API.
type OpenMeteoForecaster struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoForecaster(client *http.Client, baseURL string) *OpenMeteoForecaster {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoForecaster{
		name:    "forecast",
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openmeteo-forecast"),
	}
}

func (p *OpenMeteoForecaster) Name() string {
	return p.name
}

// Forecast fetches the 7-day daily forecast. The daily arrays are returned as received.
func (p *OpenMeteoForecaster) Forecast(ctx context.Context, lat, lon float64) (*weather.ForecastResponse, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("daily", dailyVariables)
	values.Set("forecast_days", strconv.Itoa(forecastDays))
	values.Set("timezone", "auto")

	body, err := getBody(ctx, p.client, p.circuit, p.name, p.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("forecast (%f, %f): %w", lat, lon, err)
	}

	var payload weather.ForecastResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("forecast (%f, %f): decode: %w", lat, lon, err)
	}
	return &payload, nil
}
