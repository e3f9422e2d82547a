// SPDX-License-Identifier: MIT

package migration

import (
	"github.com/katalvlaran/epiroute/nodes"
	"github.com/katalvlaran/epiroute/rates"
)

// RateData is the age-dependent rate from one node to one destination by
// one migration type.
type RateData struct {
	dest  nodes.SUID
	typ   Type
	table rates.Table
}

// NewRateData returns an empty rate table for (dest, typ).
func NewRateData(dest nodes.SUID, typ Type, interp rates.InterpolationType) RateData {
	return RateData{dest: dest, typ: typ, table: rates.NewTable(interp)}
}

// Destination returns the destination node.
func (d *RateData) Destination() nodes.SUID { return d.dest }

// Type returns the migration type.
func (d *RateData) Type() Type { return d.typ }

// Interpolation returns the table's interpolation type.
func (d *RateData) Interpolation() rates.InterpolationType { return d.table.Interpolation() }

// NumRates returns the number of age samples.
func (d *RateData) NumRates() int { return d.table.Len() }

// AddRate records the rate at ageYears, replacing an existing sample.
func (d *RateData) AddRate(ageYears, rate float64) error {
	return d.table.Add(ageYears, rate)
}

// Rate returns the interpolated rate at ageYears.
func (d *RateData) Rate(ageYears float64) float64 { return d.table.Rate(ageYears) }
