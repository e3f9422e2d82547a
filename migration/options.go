// SPDX-License-Identifier: MIT

package migration

import "log/slog"

// Observer receives every decision that moves a traveler.
// stats.Recorder implements it.
type Observer interface {
	ObserveMigration(step Step)
}

type options struct {
	logger      *slog.Logger
	searchPaths []string
	observer    Observer
	cdfCache    int
}

func defaultOptions() options {
	return options{
		logger:      slog.Default(),
		searchPaths: []string{"."},
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option customizes files, factories and strategies.
// Option constructors panic on nonsensical arguments.
type Option func(*options)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("migration: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}

// WithSearchPaths sets the directories searched, in order, for relative
// file names. The default is the working directory.
func WithSearchPaths(dirs ...string) Option {
	if len(dirs) == 0 {
		panic("migration: WithSearchPaths: no directories")
	}
	return func(o *options) { o.searchPaths = append([]string(nil), dirs...) }
}

// WithObserver attaches a decision observer to every strategy built.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic("migration: WithObserver(nil)")
	}
	return func(o *options) { o.observer = obs }
}

// WithCDFCache lets AgeAndGender strategies memoize up to size CDFs keyed
// by (gender, age). Size 0 disables the cache.
func WithCDFCache(size int) Option {
	if size < 0 {
		panic("migration: WithCDFCache: size must be >= 0")
	}
	return func(o *options) { o.cdfCache = size }
}
