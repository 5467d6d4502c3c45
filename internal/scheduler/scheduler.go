package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/travel-weather-agent/internal/logger"
	"github.com/i474232898/travel-weather-agent/internal/metrics"
	"github.com/i474232898/travel-weather-agent/internal/weather"
)

const (
	upstreamGeocoding = "geocoding"
	upstreamForecast  = "forecast"
	probeTimeout      = 30 * time.Second
)

// Scheduler periodically probes the weather upstreams with a known destination and
// publishes the result on the travelagent_upstream_up gauge. It never feeds chat
// responses.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	geocoder    weather.Geocoder
	forecaster  weather.Forecaster
	destination string
	interval    time.Duration
	log         logger.Logger
}

// New creates a new Scheduler. A non-positive interval disables it.
func New(geocoder weather.Geocoder, forecaster weather.Forecaster, destination string, interval time.Duration, log logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		geocoder:    geocoder,
		forecaster:  forecaster,
		destination: destination,
		interval:    interval,
		log:         log.With(map[string]interface{}{"component": "probe"}),
	}
}

// Start schedules the probe job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("probe disabled", nil)
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		s.Probe(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.log.Info("probe started", map[string]interface{}{
		"interval":    s.interval.String(),
		"destination": s.destination,
	})
	return nil
}

// Probe runs one geocode and forecast round trip. The forecast gauge is left untouched
// when geocoding fails or finds nothing, since there are no coordinates to query.
func (s *Scheduler) Probe(ctx context.Context) {
	place, err := s.geocoder.Geocode(ctx, s.destination)
	if err != nil {
		s.log.WithError(err).Warn("geocoding probe failed", nil)
		setUp(upstreamGeocoding, false)
		return
	}
	setUp(upstreamGeocoding, true)
	if place == nil {
		s.log.Warn("probe destination not found", map[string]interface{}{"destination": s.destination})
		return
	}

	f, err := s.forecaster.Forecast(ctx, place.Latitude, place.Longitude)
	if err != nil {
		s.log.WithError(err).Warn("forecast probe failed", nil)
		setUp(upstreamForecast, false)
		return
	}
	setUp(upstreamForecast, f != nil && f.Daily != nil)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func setUp(upstream string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	metrics.UpstreamUp.WithLabelValues(upstream).Set(v)
}
