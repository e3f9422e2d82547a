// SPDX-License-Identifier: MIT

package assort

// Year bounds for StartYear.
const (
	MinYear = 1900.0
	MaxYear = 2200.0
)

// Simulation types that gate the boolean-trait groups.
const (
	SimulationGeneric = "GENERIC_SIM"
	SimulationSTI     = "STI_SIM"
	SimulationHIV     = "HIV_SIM"
)

// Config is the user-facing configuration of one relationship type's
// assortivity. Axes, WeightingMatrix and PropertyName are ignored for
// NO_GROUP. A zero StartYear means MinYear.
type Config struct {
	Group           Group       `yaml:"group" json:"Group"`
	Axes            []string    `yaml:"axes,omitempty" json:"Axes,omitempty"`
	WeightingMatrix [][]float64 `yaml:"weighting_matrix_rowmale_columnfemale,omitempty" json:"Weighting_Matrix_RowMale_ColumnFemale,omitempty"`
	PropertyName    string      `yaml:"property_name,omitempty" json:"Property_Name,omitempty"`
	StartYear       float64     `yaml:"start_year,omitempty" json:"Start_Year,omitempty"`
}
