package weather

import (
	"context"
)

// Geocoder resolves a free-text place name to coordinates.
// A nil Place with a nil error means the provider found nothing.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (*Place, error)
}

// Forecaster fetches the daily forecast for a coordinate pair.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lon float64) (*ForecastResponse, error)
}
