// SPDX-License-Identifier: MIT

package assort

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/epiroute/population"
	"github.com/katalvlaran/epiroute/rng"
)

// Assortivity selects partners for one relationship type.
type Assortivity struct {
	rel         population.RelationshipType
	group       Group
	propertyKey string
	axes        []string
	axisIndex   map[string]int
	weights     *mat.Dense // nil for NO_GROUP
	startYear   float64
	started     bool

	rnd        rng.Source
	extensions map[Group]IndexFunc
	poolCap    int
	buf        *ScoreBuffer // engine-owned, allocated on first use
	logger     *slog.Logger
	observer   Observer
}

// New validates cfg for relationship type rel and returns a ready engine.
//
// Validation order: start year → simulation type → axes (TRUE/FALSE
// canonicalization or property value set) → matrix shape, range, and
// zero rows/columns. Nothing is returned on failure.
//
// The engine starts inactive: until Update is called with a year later
// than the start year, SelectPartner behaves as NO_GROUP.
func New(rel population.RelationshipType, cfg Config, opts ...Option) (*Assortivity, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	startYear, err := checkStartYear(rel, cfg.StartYear)
	if err != nil {
		return nil, err
	}
	if err = checkSimulationType(rel, cfg.Group, o.simType); err != nil {
		return nil, err
	}

	axes, matrix := cfg.Axes, cfg.WeightingMatrix
	switch {
	case cfg.Group == NoGroup:
		axes, matrix = nil, nil
	case cfg.Group.boolean():
		if axes, matrix, err = canonicalTrueFalse(rel, cfg.Group, axes, matrix); err != nil {
			return nil, err
		}
	case cfg.Group == IndividualProperty:
		if err = checkAxesForProperty(rel, cfg.Group, cfg.PropertyName, axes, o.props); err != nil {
			return nil, err
		}
	default:
		return nil, configErrorf(rel, paramGroup, ErrUnknownGroup, "%s", cfg.Group)
	}

	e := newEngine(rel, cfg.Group, cfg.PropertyName, axes, startYear, o)
	if cfg.Group != NoGroup {
		if err = checkMatrix(rel, len(axes), matrix); err != nil {
			return nil, err
		}
		e.weights = denseFrom(matrix)
	}

	e.logger.Debug("assortivity configured",
		slog.String("relationship", rel.String()),
		slog.String("group", cfg.Group.String()),
		slog.Int("axes", len(axes)),
		slog.Float64("start_year", startYear))

	return e, nil
}

// newEngine assembles an engine from already-validated parts.
func newEngine(rel population.RelationshipType, g Group, key string, axes []string, startYear float64, o options) *Assortivity {
	e := &Assortivity{
		rel:         rel,
		group:       g,
		propertyKey: key,
		startYear:   startYear,
		rnd:         o.rnd,
		extensions:  o.extensions,
		poolCap:     o.poolCap,
		logger:      o.logger,
		observer:    o.observer,
	}
	if g != NoGroup {
		e.axes = append([]string(nil), axes...)
		e.axisIndex = make(map[string]int, len(axes))
		for i, a := range e.axes {
			e.axisIndex[a] = i
		}
	}
	return e
}

// denseFrom copies a validated square [][]float64 into a gonum Dense.
func denseFrom(w [][]float64) *mat.Dense {
	n := len(w)
	data := make([]float64, 0, n*n)
	for _, row := range w {
		data = append(data, row...)
	}
	return mat.NewDense(n, n, data)
}

// Relationship returns the relationship type this engine serves.
func (e *Assortivity) Relationship() population.RelationshipType { return e.rel }

// Group returns the configured group.
func (e *Assortivity) Group() Group { return e.group }

// PropertyName returns the property key used by INDIVIDUAL_PROPERTY.
func (e *Assortivity) PropertyName() string { return e.propertyKey }

// StartYear returns the effective start year.
func (e *Assortivity) StartYear() float64 { return e.startYear }

// Started reports whether the configured group is in effect.
func (e *Assortivity) Started() bool { return e.started }

// Axes returns a copy of the (canonically ordered) axes.
func (e *Assortivity) Axes() []string { return append([]string(nil), e.axes...) }

// Weight returns W[row][col], or 0 when there is no matrix or the index
// is out of range.
func (e *Assortivity) Weight(row, col int) float64 {
	if e.weights == nil {
		return 0
	}
	n, _ := e.weights.Dims()
	if row < 0 || col < 0 || row >= n || col >= n {
		return 0
	}
	return e.weights.At(row, col)
}

// SetRandom replaces the random source (e.g. after Restore).
func (e *Assortivity) SetRandom(src rng.Source) {
	if src == nil {
		panic("assort: SetRandom(nil)")
	}
	e.rnd = src
}

// Update switches the configured group on once year passes the start year.
func (e *Assortivity) Update(year float64) {
	e.started = e.startYear < year
}

// EffectiveGroup is the group SelectPartner uses right now.
func (e *Assortivity) EffectiveGroup() Group {
	if !e.started {
		return NoGroup
	}
	return e.group
}

// SelectPartner picks one of candidates for anchor.
//
// Returns (nil, nil) when candidates is empty or when no candidate has a
// positive weight for the anchor's row. With NO_GROUP in effect the first
// candidate is returned, so callers may pre-sort for a tie-break policy.
// buf may be nil, in which case an engine-owned buffer is used.
//
// Errors: ErrNilAnchor, ErrNilRandom, ErrUnhandledGroup, ErrValueNotInAxes,
// ErrIndexOutOfRange.
// Complexity: O(len(candidates)).
func (e *Assortivity) SelectPartner(anchor Partner, candidates []Partner, buf *ScoreBuffer) (Partner, error) {
	if anchor == nil {
		return nil, fmt.Errorf("%s: SelectPartner: %w", e.rel, ErrNilAnchor)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	group := e.EffectiveGroup()
	switch group {
	case NoGroup:
		e.observe(group, true)
		return candidates[0], nil

	case STIInfectionStatus, STICoInfectionStatus, IndividualProperty:
		// resolved by the engine itself

	case HIVInfectionStatus, HIVTestedPositiveStatus, HIVReceivedResultsStatus:
		if e.extensions[group] == nil {
			return nil, fmt.Errorf("%s: SelectPartner: group=%s has no registered resolver: %w", e.rel, group, ErrUnhandledGroup)
		}

	default:
		return nil, fmt.Errorf("%s: SelectPartner: group=%s: %w", e.rel, group, ErrUnhandledGroup)
	}

	if buf == nil {
		if e.buf == nil {
			e.buf = NewScoreBuffer(e.poolCap)
		}
		buf = e.buf
	}
	p, err := e.findPartner(group, anchor, candidates, buf)
	if err != nil {
		return nil, err
	}
	e.observe(group, p != nil)

	return p, nil
}

// findPartner is the weighted draw over the anchor's matrix row.
func (e *Assortivity) findPartner(g Group, anchor Partner, candidates []Partner, buf *ScoreBuffer) (Partner, error) {
	if e.rnd == nil {
		return nil, fmt.Errorf("%s: SelectPartner: %w", e.rel, ErrNilRandom)
	}
	a, err := e.index(g, anchor)
	if err != nil {
		return nil, err
	}

	buf.reset()
	var total float64
	for _, c := range candidates {
		b, err := e.index(g, c)
		if err != nil {
			return nil, err
		}
		w := e.weights.At(a, b)
		if w <= 0 {
			continue
		}
		if buf.push(c, w) {
			total += w
		}
	}
	if buf.dropped > 0 && e.observer != nil {
		e.observer.ObservePoolOverflow(e.rel, buf.dropped)
	}
	if total <= 0 {
		return nil, nil
	}

	draw := e.rnd.Uniform() * total
	var cum float64
	for _, s := range buf.entries {
		cum += s.weight
		if cum > draw {
			return s.partner, nil
		}
	}
	return nil, nil
}

// index resolves p's axis index under group g.
func (e *Assortivity) index(g Group, p Partner) (int, error) {
	switch g {
	case STIInfectionStatus:
		return boolIndex(p.IsInfected()), nil

	case STICoInfectionStatus:
		return boolIndex(p.HasCoInfection()), nil

	case IndividualProperty:
		if idx := p.AssortivityIndex(e.rel); idx >= 0 && idx < len(e.axes) {
			return idx, nil
		}
		v, _ := p.PropertyValue(e.propertyKey)
		idx, ok := e.axisIndex[v]
		if !ok {
			return 0, fmt.Errorf("%s: the value (%s) of property %s for individual %d was not one of the axes (%s): %w",
				e.rel, v, e.propertyKey, p.ID(), quoteAll(e.axes), ErrValueNotInAxes)
		}
		p.SetAssortivityIndex(e.rel, idx)
		return idx, nil

	case HIVInfectionStatus, HIVTestedPositiveStatus, HIVReceivedResultsStatus:
		idx, err := e.extensions[g](p)
		if err != nil {
			return 0, fmt.Errorf("%s: %s resolver: %w", e.rel, g, err)
		}
		if idx < 0 || idx >= len(e.axes) {
			return 0, fmt.Errorf("%s: %s resolver returned %d for %d axes: %w", e.rel, g, idx, len(e.axes), ErrIndexOutOfRange)
		}
		return idx, nil
	}
	return 0, fmt.Errorf("%s: index: group=%s: %w", e.rel, g, ErrUnhandledGroup)
}

func (e *Assortivity) observe(g Group, found bool) {
	if e.observer != nil {
		e.observer.ObserveSelection(e.rel, g, found)
	}
}

// boolIndex maps FALSE→0 and TRUE→1, the canonical axis order.
func boolIndex(v bool) int {
	if v {
		return 1
	}
	return 0
}
