// SPDX-License-Identifier: MIT

package assort

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/epiroute/population"
)

// Parameter names used to label configuration errors.
const (
	paramGroup        = "Group"
	paramAxes         = "Axes"
	paramMatrix       = "Weighting_Matrix_RowMale_ColumnFemale"
	paramPropertyName = "Property_Name"
	paramStartYear    = "Start_Year"
)

const (
	axisTrue  = "TRUE"
	axisFalse = "FALSE"
)

// configErrorf labels err with the relationship type and parameter name.
func configErrorf(rel population.RelationshipType, param string, err error, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	if detail == "" {
		return fmt.Errorf("%s:%s: %w", rel, param, err)
	}
	return fmt.Errorf("%s:%s: %s: %w", rel, param, detail, err)
}

// quoteAll renders values as 'a' 'b' 'c' for error messages.
func quoteAll(values []string) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("'" + v + "'")
	}
	return sb.String()
}

// checkSimulationType enforces which groups each simulation type supports.
// An empty simType disables the check.
func checkSimulationType(rel population.RelationshipType, g Group, simType string) error {
	if simType == "" {
		return nil
	}
	switch {
	case g == STIInfectionStatus && simType != SimulationSTI:
		return configErrorf(rel, paramGroup, ErrSimulationType,
			"%s is only valid with %s (Simulation_Type=%s)", g, SimulationSTI, simType)
	case (g == STICoInfectionStatus || g.Extended()) && simType != SimulationHIV:
		return configErrorf(rel, paramGroup, ErrSimulationType,
			"%s is only valid with %s (Simulation_Type=%s)", g, SimulationHIV, simType)
	}
	return nil
}

// checkStartYear maps 0 to MinYear and bounds the rest.
func checkStartYear(rel population.RelationshipType, year float64) (float64, error) {
	if year == 0 {
		return MinYear, nil
	}
	if math.IsNaN(year) || year < MinYear || year > MaxYear {
		return 0, configErrorf(rel, paramStartYear, ErrStartYear,
			"%g not in [%g, %g]", year, MinYear, MaxYear)
	}
	return year, nil
}

// canonicalTrueFalse upper-cases the axes, requires exactly {TRUE, FALSE},
// and returns them as [FALSE, TRUE] with the matrix transposed to match
// when the input order was [TRUE, FALSE]. Inputs are not modified.
func canonicalTrueFalse(rel population.RelationshipType, g Group, axes []string, w [][]float64) ([]string, [][]float64, error) {
	up := make([]string, len(axes))
	for i, a := range axes {
		up[i] = strings.ToUpper(a)
	}
	if len(up) != 2 ||
		(up[0] != axisTrue && up[1] != axisTrue) ||
		(up[0] != axisFalse && up[1] != axisFalse) {
		return nil, nil, configErrorf(rel, paramAxes, ErrAxesTrueFalse,
			"group %s requires axes (=%s) to be 'TRUE' and 'FALSE', order is up to the user", g, quoteAll(axes))
	}
	if err := checkMatrixShape(rel, 2, w); err != nil {
		return nil, nil, err
	}

	out := [][]float64{{w[0][0], w[0][1]}, {w[1][0], w[1][1]}}
	if up[0] == axisTrue {
		// Reorder to FALSE, TRUE: swap both the rows and the columns.
		out[0][0], out[1][1] = out[1][1], out[0][0]
		out[0][1], out[1][0] = out[1][0], out[0][1]
	}
	return []string{axisFalse, axisTrue}, out, nil
}

// checkAxesForProperty requires axes to equal the property's value set.
func checkAxesForProperty(rel population.RelationshipType, g Group, key string, axes []string, props PropertyRegistry) error {
	if key == "" {
		return configErrorf(rel, paramPropertyName, ErrPropertyName, "")
	}
	if props == nil {
		return configErrorf(rel, paramPropertyName, ErrUnknownProperty,
			"%q cannot be resolved without a property registry", key)
	}
	values, err := props.Values(key)
	if err != nil {
		return configErrorf(rel, paramPropertyName, ErrUnknownProperty,
			"%q is not defined in the demographics (%v)", key, err)
	}

	legal := make(map[string]struct{}, len(values))
	for _, v := range values {
		legal[v] = struct{}{}
	}
	invalid := len(values) != len(axes) || !uniqueAxes(axes)
	for i := 0; !invalid && i < len(axes); i++ {
		_, ok := legal[axes[i]]
		invalid = !ok
	}
	if invalid {
		return configErrorf(rel, paramAxes, ErrAxesMismatch,
			"group %s requires the axes (=%s) to match the property values (=%s) defined for property %s",
			g, quoteAll(axes), quoteAll(values), key)
	}
	return nil
}

// uniqueAxes reports whether no axis name repeats.
func uniqueAxes(axes []string) bool {
	seen := make(map[string]struct{}, len(axes))
	for _, a := range axes {
		if _, dup := seen[a]; dup {
			return false
		}
		seen[a] = struct{}{}
	}
	return true
}

// checkMatrixShape requires an n×n matrix.
func checkMatrixShape(rel population.RelationshipType, n int, w [][]float64) error {
	invalid := n == 0 || len(w) != n
	for i := 0; !invalid && i < len(w); i++ {
		invalid = len(w[i]) != n
	}
	if invalid {
		return configErrorf(rel, paramMatrix, ErrMatrixShape, "axes=%d rows=%d", n, len(w))
	}
	return nil
}

// checkMatrix validates shape, entry range, and that no row or column is
// all zeros. Row/column numbers in messages are 1-based.
func checkMatrix(rel population.RelationshipType, n int, w [][]float64) error {
	if err := checkMatrixShape(rel, n, w); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := w[i][j]
			if math.IsNaN(v) || v < 0 || v > 1 {
				return configErrorf(rel, paramMatrix, ErrWeightRange, "[%d][%d]=%g", i, j, v)
			}
		}
	}
	for i := 0; i < n; i++ {
		rowOK, colOK := false, false
		for j := 0; j < n; j++ {
			rowOK = rowOK || w[i][j] > 0
			colOK = colOK || w[j][i] > 0
		}
		if !rowOK {
			return configErrorf(rel, paramMatrix, ErrZeroRow, "row %d is all zeros", i+1)
		}
		if !colOK {
			return configErrorf(rel, paramMatrix, ErrZeroColumn, "column %d is all zeros", i+1)
		}
	}
	return nil
}
