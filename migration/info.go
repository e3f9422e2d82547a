// SPDX-License-Identifier: MIT

package migration

import (
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/epiroute/nodes"
	"github.com/katalvlaran/epiroute/population"
	"github.com/katalvlaran/epiroute/rates"
	"github.com/katalvlaran/epiroute/rng"
)

// Traveler is what a strategy needs from an individual.
// *population.Individual implements it.
type Traveler interface {
	AgeDays() float64
	Gender() population.Gender
}

// Step is one migration decision.
type Step struct {
	// Destination is NilSUID when Type is NoMigration.
	Destination nodes.SUID
	Type        Type
	// Time is the waiting time in days: -1 from Null, 0 when nothing is
	// reachable, otherwise an exponential draw.
	Time float64
}

// Migrates reports whether the step moves the traveler.
func (s Step) Migrates() bool { return s.Type != NoMigration }

// Info is a node's migration strategy. The set of implementations is
// closed: *Null, *FixedRate and *AgeAndGender.
type Info interface {
	// PickMigrationStep decides the next step for traveler. A nil traveler
	// is treated as a male of age 0.
	PickMigrationStep(src rng.Source, traveler Traveler) (Step, error)

	// TotalRate is the total rate of the last computed CDF.
	TotalRate() float64

	// CDF returns the last computed cumulative distribution. Read only.
	CDF() []float64

	// ReachableNodes lists destinations for g, aligned with MigrationTypes.
	ReachableNodes(g population.Gender) []nodes.SUID

	// MigrationTypes lists the type of each destination for g.
	MigrationTypes(g population.Gender) []Type

	info()
}

// profile maps a traveler to (age in years, gender).
func profile(t Traveler) (float64, population.Gender) {
	if t == nil {
		return 0, population.Male
	}
	return t.AgeDays() / population.DaysPerYear, t.Gender()
}

// pick inverts the CDF. Nothing is drawn when total is 0.
func pick(src rng.Source, total float64, cdf []float64, dests []nodes.SUID, types []Type) (Step, error) {
	if len(cdf) == 0 || total == 0 {
		return Step{Destination: nodes.NilSUID, Type: NoMigration, Time: 0}, nil
	}
	if src == nil {
		return Step{}, ErrNilRandom
	}
	t := src.Exponential(total)
	i := rates.Pick(cdf, src.Uniform())

	return Step{Destination: dests[i], Type: types[i], Time: t}, nil
}

// ---------------------------------------------------------------------------

// Null never migrates.
type Null struct{}

// PickMigrationStep returns {NilSUID, NoMigration, -1}.
func (*Null) PickMigrationStep(rng.Source, Traveler) (Step, error) {
	return Step{Destination: nodes.NilSUID, Type: NoMigration, Time: -1}, nil
}

func (*Null) TotalRate() float64                            { return 0 }
func (*Null) CDF() []float64                                { return nil }
func (*Null) ReachableNodes(population.Gender) []nodes.SUID { return nil }
func (*Null) MigrationTypes(population.Gender) []Type       { return nil }
func (*Null) info()                                         {}

// ---------------------------------------------------------------------------

// FixedRate holds one traveler-independent CDF.
type FixedRate struct {
	reachable []nodes.SUID
	types     []Type
	cdf       []float64
	total     float64
	observer  Observer
}

// NewFixedRate builds the CDF from data[0]; every entry must hold exactly
// one rate sample. Empty data yields a strategy that never migrates.
func NewFixedRate(data [][]RateData, opts ...Option) (*FixedRate, error) {
	o := buildOptions(opts)
	f := &FixedRate{observer: o.observer}
	if len(data) == 0 {
		return f, nil
	}
	for i := range data[0] {
		d := &data[0][i]
		if d.NumRates() != 1 {
			return nil, fmt.Errorf("migration: NewFixedRate: destination %s has %d rates: %w",
				d.Destination(), d.NumRates(), ErrFixedRateTable)
		}
		f.reachable = append(f.reachable, d.Destination())
		f.types = append(f.types, d.Type())
		f.cdf = append(f.cdf, d.Rate(0))
	}
	f.total = rates.Normalize(f.cdf)

	return f, nil
}

// PickMigrationStep ignores the traveler.
func (f *FixedRate) PickMigrationStep(src rng.Source, _ Traveler) (Step, error) {
	s, err := pick(src, f.total, f.cdf, f.reachable, f.types)
	if err == nil && s.Migrates() && f.observer != nil {
		f.observer.ObserveMigration(s)
	}
	return s, err
}

func (f *FixedRate) TotalRate() float64 { return f.total }
func (f *FixedRate) CDF() []float64     { return f.cdf }
func (f *FixedRate) info()              {}

// ReachableNodes ignores the gender.
func (f *FixedRate) ReachableNodes(population.Gender) []nodes.SUID { return f.reachable }

// MigrationTypes ignores the gender.
func (f *FixedRate) MigrationTypes(population.Gender) []Type { return f.types }

// ---------------------------------------------------------------------------

type cdfKey struct {
	gender   population.Gender
	ageYears float64
}

type cdfEntry struct {
	cdf   []float64
	total float64
}

// AgeAndGender recomputes the CDF for each traveler.
type AgeAndGender struct {
	data      [population.GenderCount][]RateData
	reachable [population.GenderCount][]nodes.SUID
	types     [population.GenderCount][]Type

	scratch  []float64
	cdf      []float64
	total    float64
	cache    *lru.Cache[cdfKey, cdfEntry]
	observer Observer
}

// NewAgeAndGender keeps data, which must hold exactly one table per gender
// (male first).
func NewAgeAndGender(data [][]RateData, opts ...Option) (*AgeAndGender, error) {
	if len(data) != population.GenderCount {
		return nil, fmt.Errorf("migration: NewAgeAndGender: %d tables: %w", len(data), ErrGenderTables)
	}
	o := buildOptions(opts)
	a := &AgeAndGender{observer: o.observer}
	for g := range population.GenderCount {
		a.data[g] = slices.Clone(data[g])
		for i := range a.data[g] {
			a.reachable[g] = append(a.reachable[g], a.data[g][i].Destination())
			a.types[g] = append(a.types[g], a.data[g][i].Type())
		}
	}
	if o.cdfCache > 0 {
		c, err := lru.New[cdfKey, cdfEntry](o.cdfCache)
		if err != nil {
			return nil, fmt.Errorf("migration: NewAgeAndGender: %w", err)
		}
		a.cache = c
	}
	return a, nil
}

// PickMigrationStep recomputes the CDF for the traveler's age and gender,
// then draws.
func (a *AgeAndGender) PickMigrationStep(src rng.Source, traveler Traveler) (Step, error) {
	age, g := profile(traveler)
	if g != population.Female {
		g = population.Male
	}
	a.calculate(g, age)

	s, err := pick(src, a.total, a.cdf, a.reachable[g], a.types[g])
	if err == nil && s.Migrates() && a.observer != nil {
		a.observer.ObserveMigration(s)
	}
	return s, err
}

// calculate fills cdf and total for (g, ageYears).
func (a *AgeAndGender) calculate(g population.Gender, ageYears float64) {
	key := cdfKey{gender: g, ageYears: ageYears}
	if a.cache != nil {
		if e, ok := a.cache.Get(key); ok {
			a.cdf, a.total = e.cdf, e.total
			return
		}
	}

	a.scratch = a.scratch[:0]
	for i := range a.data[g] {
		a.scratch = append(a.scratch, a.data[g][i].Rate(ageYears))
	}
	a.total = rates.Normalize(a.scratch)
	a.cdf = a.scratch

	if a.cache != nil {
		a.cache.Add(key, cdfEntry{cdf: slices.Clone(a.scratch), total: a.total})
	}
}

func (a *AgeAndGender) TotalRate() float64 { return a.total }
func (a *AgeAndGender) CDF() []float64     { return a.cdf }
func (a *AgeAndGender) info()              {}

func (a *AgeAndGender) ReachableNodes(g population.Gender) []nodes.SUID {
	if g == population.Female {
		return a.reachable[population.Female]
	}
	return a.reachable[population.Male]
}

func (a *AgeAndGender) MigrationTypes(g population.Gender) []Type {
	if g == population.Female {
		return a.types[population.Female]
	}
	return a.types[population.Male]
}
