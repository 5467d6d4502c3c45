package agent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/i474232898/travel-weather-agent/internal/logger"
	"github.com/i474232898/travel-weather-agent/internal/metrics"
	"github.com/i474232898/travel-weather-agent/internal/weather"
)

// Service runs one chat request through destination resolution, geocoding, forecast
// and formatting.
type Service struct {
	resolver   Resolver
	geocoder   weather.Geocoder
	forecaster weather.Forecaster
	logger     logger.Logger
	newID      func() string
}

// NewService creates a Service. The explicit destination field always takes priority
// over the extractor.
func NewService(extractor *Extractor, geocoder weather.Geocoder, forecaster weather.Forecaster, log logger.Logger) *Service {
	return &Service{
		resolver:   Chain{ExplicitField{}, extractor},
		geocoder:   geocoder,
		forecaster: forecaster,
		logger:     log.With(map[string]interface{}{"component": "service"}),
		newID:      uuid.NewString,
	}
}

// Handle returns a response for every terminal state of the pipeline. A non-nil error
// means geocoding or forecast retrieval failed and no response should be sent.
func (s *Service) Handle(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.newID()
	}
	log := s.logger.With(map[string]interface{}{"sessionId": sessionID})

	verdict := s.resolver.Resolve(ctx, req)
	metrics.DestinationResolutions.WithLabelValues(strategyLabel(verdict)).Inc()

	if verdict.Decision != Resolved || verdict.Destination == "" {
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeAskDestination).Inc()
		log.Info("no destination resolved", nil)
		return &ChatResponse{
			SessionID:        sessionID,
			NeedsDestination: true,
			Reply:            ReplyAskForDestination,
		}, nil
	}

	log.Debug("destination resolved", map[string]interface{}{
		"destination": verdict.Destination,
		"strategy":    verdict.Strategy,
	})

	place, err := s.geocoder.Geocode(ctx, verdict.Destination)
	if err != nil {
		return nil, s.fail(log, err)
	}
	if place == nil {
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeNotFound).Inc()
		log.Info("destination not found", map[string]interface{}{"destination": verdict.Destination})
		return &ChatResponse{
			SessionID:        sessionID,
			NeedsDestination: true,
			Reply:            ReplyDestinationNotFound,
		}, nil
	}

	forecast, err := s.forecaster.Forecast(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return nil, s.fail(log, err)
	}

	resolvedName := place.DisplayName()
	metrics.ChatRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info("forecast delivered", map[string]interface{}{"destination": resolvedName})

	return &ChatResponse{
		SessionID:           sessionID,
		NeedsDestination:    false,
		DestinationResolved: &resolvedName,
		Reply:               weather.FormatSummary(*place, forecast),
		Weather:             forecast,
	}, nil
}

func (s *Service) fail(log logger.Logger, err error) error {
	metrics.ChatRequests.WithLabelValues(metrics.OutcomeError).Inc()
	log.WithError(err).Error("chat request failed", nil)
	return fmt.Errorf("handle chat: %w", err)
}

func strategyLabel(v Verdict) string {
	if v.Decision != Resolved {
		return StrategyNone
	}
	return v.Strategy
}
