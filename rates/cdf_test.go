package rates_test

import (
	"testing"

	"github.com/katalvlaran/epiroute/rates"
	"github.com/stretchr/testify/require"
)

// TestNormalize_Exact checks the canonical [1,1,2] case.
func TestNormalize_Exact(t *testing.T) {
	v := []float64{1, 1, 2}
	total := rates.Normalize(v)
	require.Equal(t, 4.0, total)
	require.Equal(t, []float64{0.25, 0.5, 1.0}, v)
}

// TestNormalize_LastIsOne forces the final entry to 1.0 under drift.
func TestNormalize_LastIsOne(t *testing.T) {
	v := make([]float64, 10)
	for i := range v {
		v[i] = 0.1
	}
	rates.Normalize(v)
	require.Equal(t, 1.0, v[len(v)-1])
	for i := 1; i < len(v); i++ {
		require.GreaterOrEqual(t, v[i], v[i-1])
	}
}

// TestNormalize_Degenerate leaves empty and all-zero input untouched.
func TestNormalize_Degenerate(t *testing.T) {
	require.Equal(t, 0.0, rates.Normalize(nil))

	v := []float64{0, 0, 0}
	require.Equal(t, 0.0, rates.Normalize(v))
	require.Equal(t, []float64{0, 0, 0}, v)
}

// TestPick covers interior draws, boundary ties, and the last bucket.
func TestPick(t *testing.T) {
	cdf := []float64{0.25, 0.5, 1.0}
	cases := []struct {
		name string
		draw float64
		want int
	}{
		{"Zero", 0, 0},
		{"Inside first", 0.1, 0},
		{"Tie goes to next", 0.25, 1},
		{"Inside second", 0.3, 1},
		{"Second tie", 0.5, 2},
		{"Near one", 0.999999, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, rates.Pick(cdf, tc.draw))
		})
	}

	require.Equal(t, -1, rates.Pick(nil, 0.5))
	// a zero-rate leading bucket is skipped even by a zero draw
	require.Equal(t, 1, rates.Pick([]float64{0, 1}, 0))
}

func BenchmarkPick(b *testing.B) {
	raw := make([]float64, 60)
	for i := range raw {
		raw[i] = float64(i%7 + 1)
	}
	rates.Normalize(raw)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rates.Pick(raw, float64(i%1000)/1000)
	}
}
