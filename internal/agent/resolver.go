package agent

import (
	"context"
	"strings"
)

// Decision is the outcome of a single resolution strategy.
type Decision int

const (
	// Abstain passes the request to the next strategy.
	Abstain Decision = iota
	// Resolved stops the chain with a destination.
	Resolved
	// NoDestination stops the chain without a destination.
	NoDestination
)

// Strategy names, also used as metric labels.
const (
	StrategyExplicit  = "explicit"
	StrategyModel     = "model"
	StrategyHeuristic = "heuristic"
	StrategyNone      = "none"
)

type Verdict struct {
	Decision    Decision
	Destination string
	Strategy    string
}

func (v Verdict) decided() bool {
	return v.Decision != Abstain
}

func abstain() Verdict {
	return Verdict{Decision: Abstain}
}

func resolved(strategy, destination string) Verdict {
	return Verdict{Decision: Resolved, Destination: destination, Strategy: strategy}
}

func noDestination(strategy string) Verdict {
	return Verdict{Decision: NoDestination, Strategy: strategy}
}

// Resolver is one step of destination resolution.
type Resolver interface {
	Resolve(ctx context.Context, req ChatRequest) Verdict
}

// Chain tries resolvers in order and stops at the first decided verdict.
// If every resolver abstains the result is NoDestination.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context, req ChatRequest) Verdict {
	for _, r := range c {
		if v := r.Resolve(ctx, req); v.decided() {
			return v
		}
	}
	return noDestination(StrategyNone)
}

// ExplicitField resolves to the trimmed destination field when it is not blank.
type ExplicitField struct{}

func (ExplicitField) Resolve(_ context.Context, req ChatRequest) Verdict {
	if d := strings.TrimSpace(req.Destination); d != "" {
		return resolved(StrategyExplicit, d)
	}
	return abstain()
}

// HeuristicResolver applies Heuristic to the message. It always decides.
type HeuristicResolver struct{}

func (HeuristicResolver) Resolve(_ context.Context, req ChatRequest) Verdict {
	if d := Heuristic(req.Message); d != "" {
		return resolved(StrategyHeuristic, d)
	}
	return noDestination(StrategyHeuristic)
}
