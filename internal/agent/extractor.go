package agent

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/i474232898/travel-weather-agent/internal/common"
	"github.com/i474232898/travel-weather-agent/internal/llm"
	"github.com/i474232898/travel-weather-agent/internal/logger"
	"github.com/i474232898/travel-weather-agent/internal/metrics"
)

const extractionInstruction = "You extract exactly ONE travel destination (city or place name) from the user's message. " +
	"Return only the destination name (no extra words, no quotes). If no destination is present, return NONE. " +
	"Accept Czech language too."

const (
	extractionMaxTokens = 128
	noneToken           = "NONE"
	quoteChars          = "\"'“”„"
)

// Extractor finds a destination in a free-text message. It asks the language model when
// one is configured and falls back to Heuristic when the model is absent or fails.
type Extractor struct {
	chain   Chain
	model   llm.Model
	timeout time.Duration
	logger  logger.Logger
}

// NewExtractor builds an extractor. A nil model means heuristic-only extraction.
func NewExtractor(model llm.Model, timeout time.Duration, log logger.Logger) *Extractor {
	e := &Extractor{
		model:   model,
		timeout: timeout,
		logger:  log.With(map[string]interface{}{"component": "extractor"}),
	}
	if model != nil {
		e.chain = append(e.chain, modelResolver{e})
	}
	e.chain = append(e.chain, HeuristicResolver{})
	return e
}

// Extract returns the destination found in message, or "" when there is none.
func (e *Extractor) Extract(ctx context.Context, message string) string {
	return e.Resolve(ctx, ChatRequest{Message: message}).Destination
}

// Resolve implements Resolver. A blank message is decided without any external call.
func (e *Extractor) Resolve(ctx context.Context, req ChatRequest) Verdict {
	if common.IsBlank(req.Message) {
		return noDestination(StrategyNone)
	}
	return e.chain.Resolve(ctx, req)
}

type modelResolver struct {
	e *Extractor
}

func (m modelResolver) Resolve(ctx context.Context, req ChatRequest) Verdict {
	if m.e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.e.timeout)
		defer cancel()
	}

	text, err := m.e.model.Complete(ctx, llm.Prompt{
		System:      extractionInstruction,
		User:        req.Message,
		MaxTokens:   extractionMaxTokens,
		Temperature: 0,
	})
	if err != nil {
		metrics.ModelFallbacks.Inc()
		m.e.logger.WithError(err).Warn("model extraction failed, using heuristic", map[string]interface{}{
			"strategy": StrategyModel,
		})
		return abstain()
	}

	dest := cleanModelOutput(text)
	if dest == "" || strings.EqualFold(dest, noneToken) {
		return noDestination(StrategyModel)
	}
	return resolved(StrategyModel, dest)
}

// cleanModelOutput trims whitespace and surrounding straight, curly and low-9 quotes.
func cleanModelOutput(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(quoteChars, r)
	})
}
