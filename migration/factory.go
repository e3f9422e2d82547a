// SPDX-License-Identifier: MIT

package migration

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/epiroute/lattice"
	"github.com/katalvlaran/epiroute/nodes"
	"github.com/katalvlaran/epiroute/rates"
)

// Factory builds one Info per node.
type Factory interface {
	// Initialize loads whatever the factory reads (files), once.
	Initialize(idReference string) error

	// CreateInfo builds the strategy of node.
	CreateInfo(node nodes.Node) (Info, error)

	// IsEnabled reports whether rates of type t can be produced.
	IsEnabled(t Type) bool

	// IsAtLeastOneTypeConfiguredForIndividuals reports whether any
	// file-backed type is enabled and names a file.
	IsAtLeastOneTypeConfiguredForIndividuals() bool

	// Close releases open files.
	Close() error
}

// NewFactory picks the factory for p: NO_MIGRATION yields a NullFactory,
// otherwise p.Source selects a FileFactory or a DefaultFactory.
func NewFactory(p Params, resolve Resolver, opts ...Option) (Factory, error) {
	switch p.Model {
	case ModelNone:
		return NullFactory{}, nil
	case ModelFixedRate:
	default:
		return nil, fmt.Errorf("migration: NewFactory: %q: %w", p.Model, ErrUnknownModel)
	}

	switch p.Source {
	case SourceFile:
		return NewFileFactory(p, resolve, opts...), nil
	case SourceTorus:
		return NewDefaultFactory(p.TorusSize, p.Local, resolve, opts...)
	}
	return nil, fmt.Errorf("migration: NewFactory: %q: %w", p.Source, ErrUnknownSource)
}

// ---------------------------------------------------------------------------

// NullFactory gives every node the Null strategy.
type NullFactory struct{}

func (NullFactory) Initialize(string) error                        { return nil }
func (NullFactory) CreateInfo(nodes.Node) (Info, error)            { return &Null{}, nil }
func (NullFactory) IsEnabled(Type) bool                            { return false }
func (NullFactory) IsAtLeastOneTypeConfiguredForIndividuals() bool { return false }
func (NullFactory) Close() error                                   { return nil }

// ---------------------------------------------------------------------------

// FileFactory merges the rates of up to five migration files.
type FileFactory struct {
	files   []*File
	resolve Resolver
	opts    []Option
	logger  *slog.Logger
}

// NewFileFactory prepares one File per migration type from p. Nothing is
// read until Initialize.
func NewFileFactory(p Params, resolve Resolver, opts ...Option) *FileFactory {
	o := buildOptions(opts)
	ff := &FileFactory{resolve: resolve, opts: opts, logger: o.logger}
	for _, t := range Types() {
		ff.files = append(ff.files, NewFile(p.Spec(t), opts...))
	}
	return ff
}

// Files returns the file slots in Types() order.
func (ff *FileFactory) Files() []*File { return ff.files }

// Initialize opens every enabled file. On failure the files opened so far
// are closed.
func (ff *FileFactory) Initialize(idReference string) error {
	for _, f := range ff.files {
		if err := f.Initialize(idReference); err != nil {
			_ = ff.Close()
			return err
		}
	}
	ff.logger.Info("migration files initialized",
		slog.String("id_reference", idReference),
		slog.Bool("configured", ff.IsAtLeastOneTypeConfiguredForIndividuals()))
	return nil
}

// CreateInfo reads node's rates from every file. A node without any
// destination is a fortress and gets Null; one gender chunk with the single
// MaxHumanAge bucket in every file gives FixedRate, anything else
// AgeAndGender.
func (ff *FileFactory) CreateInfo(node nodes.Node) (Info, error) {
	var data [2][]RateData
	fixed := true
	for _, f := range ff.files {
		fx, err := f.ReadData(node.ExternalID, ff.resolve, &data)
		if err != nil {
			return nil, err
		}
		fixed = fixed && fx
	}

	if len(data[0])+len(data[1]) == 0 {
		ff.logger.Debug("fortress node", slog.Uint64("node", uint64(node.ExternalID)))
		return &Null{}, nil
	}
	if fixed {
		ff.logger.Debug("fixed-rate node", slog.Uint64("node", uint64(node.ExternalID)), slog.Int("destinations", len(data[0])))
		return NewFixedRate(data[:], ff.opts...)
	}
	ff.logger.Debug("age-and-gender node", slog.Uint64("node", uint64(node.ExternalID)),
		slog.Int("male_destinations", len(data[0])), slog.Int("female_destinations", len(data[1])))
	return NewAgeAndGender(data[:], ff.opts...)
}

// IsEnabled reports whether the file of type t is switched on.
func (ff *FileFactory) IsEnabled(t Type) bool {
	for _, f := range ff.files {
		if f.Type() == t && f.Enabled() {
			return true
		}
	}
	return false
}

// IsAtLeastOneTypeConfiguredForIndividuals reports whether any file is on
// and names a file.
func (ff *FileFactory) IsAtLeastOneTypeConfiguredForIndividuals() bool {
	for _, f := range ff.files {
		if f.Configured() {
			return true
		}
	}
	return false
}

// Close closes every file and joins the errors.
func (ff *FileFactory) Close() error {
	var errs []error
	for _, f := range ff.files {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}

// ---------------------------------------------------------------------------

// DefaultFactory produces local migration on a torus: each node sends
// travelers to its eight neighbors, on average one trip every ten days.
type DefaultFactory struct {
	torus   *lattice.Torus
	local   FileParams
	resolve Resolver
	opts    []Option
	logger  *slog.Logger
}

// NewDefaultFactory returns a torus factory of side size.
func NewDefaultFactory(size int, local FileParams, resolve Resolver, opts ...Option) (*DefaultFactory, error) {
	t, err := lattice.NewTorus(size)
	if err != nil {
		return nil, fmt.Errorf("migration: NewDefaultFactory: %w", err)
	}
	o := buildOptions(opts)
	return &DefaultFactory{torus: t, local: local, resolve: resolve, opts: opts, logger: o.logger}, nil
}

// Torus returns the underlying grid.
func (df *DefaultFactory) Torus() *lattice.Torus { return df.torus }

// BaseRate is the per-neighbor rate: 1/8/10 scaled by the local multiplier.
func (df *DefaultFactory) BaseRate() float64 {
	return 1.0 / float64(Local.DefaultDestinations()) / 10 * df.local.Multiplier
}

func (df *DefaultFactory) Initialize(idReference string) error {
	df.logger.Info("torus migration initialized",
		slog.Int("size", df.torus.Size()),
		slog.Bool("local_enabled", df.local.Enabled),
		slog.Float64("base_rate", df.BaseRate()))
	return nil
}

// CreateInfo returns FixedRate over the eight neighbors, or Null when
// local migration is off.
func (df *DefaultFactory) CreateInfo(node nodes.Node) (Info, error) {
	if !df.local.Enabled {
		return &Null{}, nil
	}
	nb, err := df.torus.Neighbors(node.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("migration: torus node %d: %w", node.ExternalID, err)
	}
	rate := df.BaseRate()
	data := make([]RateData, 0, len(nb))
	for _, id := range nb {
		to, ok := df.resolve(id)
		if !ok {
			return nil, fmt.Errorf("migration: torus node %d neighbor %d: %w", node.ExternalID, id, ErrUnknownNode)
		}
		d := NewRateData(to, Local, rates.Linear)
		if err = d.AddRate(MaxHumanAge, rate); err != nil {
			return nil, err
		}
		data = append(data, d)
	}
	return NewFixedRate([][]RateData{data}, df.opts...)
}

// IsEnabled is true for Local only.
func (df *DefaultFactory) IsEnabled(t Type) bool { return t == Local }

// IsAtLeastOneTypeConfiguredForIndividuals is always false: the torus has
// no files.
func (df *DefaultFactory) IsAtLeastOneTypeConfiguredForIndividuals() bool { return false }

func (df *DefaultFactory) Close() error { return nil }
