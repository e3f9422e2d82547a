// SPDX-License-Identifier: MIT

package assort

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/epiroute/population"
)

// State is the serializable form of an Assortivity. Axes and Weights are
// stored in canonical order, so a restored engine selects exactly like the
// one it was taken from given the same random draws.
type State struct {
	Relationship string      `yaml:"relationship"`
	Group        Group       `yaml:"group"`
	PropertyName string      `yaml:"property_name,omitempty"`
	Axes         []string    `yaml:"axes,omitempty"`
	Weights      [][]float64 `yaml:"weights,omitempty"`
	StartYear    float64     `yaml:"start_year"`
	Started      bool        `yaml:"started"`
}

// State captures the engine's configuration and activation flag.
func (e *Assortivity) State() State {
	st := State{
		Relationship: e.rel.String(),
		Group:        e.group,
		PropertyName: e.propertyKey,
		Axes:         e.Axes(),
		StartYear:    e.startYear,
		Started:      e.started,
	}
	if e.weights != nil {
		n, _ := e.weights.Dims()
		st.Weights = make([][]float64, n)
		for i := range n {
			st.Weights[i] = mat.Row(nil, i, e.weights)
		}
	}
	return st
}

// MarshalState encodes State() as YAML.
func (e *Assortivity) MarshalState() ([]byte, error) {
	out, err := yaml.Marshal(e.State())
	if err != nil {
		return nil, fmt.Errorf("%s: MarshalState: %w", e.rel, err)
	}
	return out, nil
}

// Restore rebuilds an engine from MarshalState output. The matrix and the
// start year are validated again; the property value set is not, since
// the registry may not be available where the state is loaded. The random
// source, extensions, logger and observer come from opts.
func Restore(data []byte, opts ...Option) (*Assortivity, error) {
	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("assort: Restore: %w", err)
	}
	rel, err := population.ParseRelationshipType(st.Relationship)
	if err != nil {
		return nil, fmt.Errorf("assort: Restore: %w", err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	startYear, err := checkStartYear(rel, st.StartYear)
	if err != nil {
		return nil, err
	}

	axes := st.Axes
	switch {
	case st.Group == NoGroup:
		axes = nil
	case st.Group.boolean():
		if len(axes) != 2 || axes[0] != axisFalse || axes[1] != axisTrue {
			return nil, configErrorf(rel, paramAxes, ErrAxesTrueFalse,
				"restored axes (=%s) are not in canonical order", quoteAll(axes))
		}
	case st.Group == IndividualProperty:
		if st.PropertyName == "" {
			return nil, configErrorf(rel, paramPropertyName, ErrPropertyName, "")
		}
		if !uniqueAxes(axes) {
			return nil, configErrorf(rel, paramAxes, ErrAxesMismatch,
				"restored axes (=%s) must be unique", quoteAll(axes))
		}
	default:
		return nil, configErrorf(rel, paramGroup, ErrUnknownGroup, "%s", st.Group)
	}

	e := newEngine(rel, st.Group, st.PropertyName, axes, startYear, o)
	if st.Group != NoGroup {
		if err = checkMatrix(rel, len(axes), st.Weights); err != nil {
			return nil, err
		}
		e.weights = denseFrom(st.Weights)
	}
	e.started = st.Started

	return e, nil
}
