// SPDX-License-Identifier: MIT

package assort

import (
	"log/slog"

	"github.com/katalvlaran/epiroute/population"
	"github.com/katalvlaran/epiroute/rng"
)

// DefaultPoolCapacity is the candidate capacity of an engine-owned
// ScoreBuffer when WithPoolCapacity is not given.
const DefaultPoolCapacity = 50000

// Partner is what the engine needs from an individual. *population.Individual
// implements it.
type Partner interface {
	ID() uint64
	IsInfected() bool
	HasCoInfection() bool
	PropertyValue(key string) (string, bool)
	AssortivityIndex(rel population.RelationshipType) int
	SetAssortivityIndex(rel population.RelationshipType, index int)
}

// PropertyRegistry resolves a property's legal value set.
// *population.Registry implements it.
type PropertyRegistry interface {
	Values(key string) ([]string, error)
}

// IndexFunc maps a partner to an axis index for an extended group.
// The returned index must lie in [0, len(axes)).
type IndexFunc func(p Partner) (int, error)

// Observer receives selection outcomes. stats.Recorder implements it.
type Observer interface {
	ObserveSelection(rel population.RelationshipType, group Group, found bool)
	ObservePoolOverflow(rel population.RelationshipType, dropped int)
}

type options struct {
	rnd        rng.Source
	props      PropertyRegistry
	simType    string
	poolCap    int
	extensions map[Group]IndexFunc
	logger     *slog.Logger
	observer   Observer
}

func defaultOptions() options {
	return options{
		poolCap:    DefaultPoolCapacity,
		extensions: make(map[Group]IndexFunc),
		logger:     slog.Default(),
	}
}

// Option customizes an Assortivity at construction.
// Option constructors panic on nonsensical arguments (programmer error).
type Option func(*options)

// WithRandom sets the random source used by matrix-driven selection.
func WithRandom(src rng.Source) Option {
	if src == nil {
		panic("assort: WithRandom(nil)")
	}
	return func(o *options) { o.rnd = src }
}

// WithProperties sets the registry used to validate INDIVIDUAL_PROPERTY axes.
func WithProperties(reg PropertyRegistry) Option {
	if reg == nil {
		panic("assort: WithProperties(nil)")
	}
	return func(o *options) { o.props = reg }
}

// WithSimulationType enables the simulation-type coherence checks
// (STI_INFECTION_STATUS needs STI_SIM, co-infection and HIV groups need
// HIV_SIM). Without it those checks are skipped.
func WithSimulationType(simType string) Option {
	return func(o *options) { o.simType = simType }
}

// WithPoolCapacity sizes the engine-owned ScoreBuffer.
func WithPoolCapacity(n int) Option {
	if n <= 0 {
		panic("assort: WithPoolCapacity: capacity must be > 0")
	}
	return func(o *options) { o.poolCap = n }
}

// WithExtension registers the resolver of an extended group.
func WithExtension(g Group, fn IndexFunc) Option {
	if !g.Extended() {
		panic("assort: WithExtension: " + g.String() + " is not an extended group")
	}
	if fn == nil {
		panic("assort: WithExtension(nil)")
	}
	return func(o *options) { o.extensions[g] = fn }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("assort: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}

// WithObserver attaches an outcome observer.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic("assort: WithObserver(nil)")
	}
	return func(o *options) { o.observer = obs }
}
