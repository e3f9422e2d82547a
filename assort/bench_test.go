package assort_test

import (
	"testing"

	"github.com/katalvlaran/epiroute/assort"
	"github.com/katalvlaran/epiroute/population"
	"github.com/katalvlaran/epiroute/rng"
)

// BenchmarkSelectPartner measures one weighted draw over 1000 candidates.
func BenchmarkSelectPartner(b *testing.B) {
	e, err := assort.New(population.Informal, assort.Config{
		Group:           assort.STIInfectionStatus,
		Axes:            []string{"FALSE", "TRUE"},
		WeightingMatrix: [][]float64{{0.7, 0.3}, {0.4, 0.6}},
	}, assort.WithRandom(rng.New(1)))
	if err != nil {
		b.Fatal(err)
	}
	e.Update(2000)

	pool := make([]assort.Partner, 1000)
	for i := range pool {
		p := population.NewIndividual(uint64(i+2), 9000, population.Female)
		p.SetInfected(i%4 == 0)
		pool[i] = p
	}
	anchor := population.NewIndividual(1, 9000, population.Male)
	buf := assort.NewScoreBuffer(len(pool))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.SelectPartner(anchor, pool, buf); err != nil {
			b.Fatal(err)
		}
	}
}
