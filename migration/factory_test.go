// SPDX-License-Identifier: MIT

package migration_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epiroute/lattice"
	"github.com/katalvlaran/epiroute/migration"
	"github.com/katalvlaran/epiroute/nodes"
	"github.com/katalvlaran/epiroute/population"
	"github.com/katalvlaran/epiroute/rates"
)

// TestDefaultFactory_Torus4 keeps every destination inside the 4×4 grid.
func TestDefaultFactory_Torus4(t *testing.T) {
	reg := registry(t, 16)
	df, err := migration.NewDefaultFactory(4, migration.FileParams{Enabled: true, Multiplier: 2}, reg.SUIDOf)
	require.NoError(t, err)
	require.NoError(t, df.Initialize(idRef))
	require.InDelta(t, 0.025, df.BaseRate(), 1e-12)
	require.True(t, df.IsEnabled(migration.Local))
	require.False(t, df.IsEnabled(migration.Air))
	require.False(t, df.IsAtLeastOneTypeConfiguredForIndividuals())

	for _, n := range reg.Nodes() {
		info, err := df.CreateInfo(n)
		require.NoError(t, err)
		require.IsType(t, &migration.FixedRate{}, info)
		dests := info.ReachableNodes(population.Male)
		require.Len(t, dests, lattice.NeighborCount)
		for _, d := range dests {
			ext, err := reg.ExternalOf(d)
			require.NoError(t, err)
			require.True(t, ext >= 1 && ext <= 16, "node %d → %d", n.ExternalID, ext)
		}
		require.InDelta(t, 0.2, info.TotalRate(), 1e-12)
		require.Equal(t, migration.Local, info.MigrationTypes(population.Female)[0])
	}
	require.NoError(t, df.Close())

	off, err := migration.NewDefaultFactory(4, migration.FileParams{Multiplier: 1}, reg.SUIDOf)
	require.NoError(t, err)
	info, err := off.CreateInfo(nodes.Node{ExternalID: 1, SUID: 1})
	require.NoError(t, err)
	require.IsType(t, &migration.Null{}, info)

	small := registry(t, 4)
	df, err = migration.NewDefaultFactory(4, migration.FileParams{Enabled: true, Multiplier: 1}, small.SUIDOf)
	require.NoError(t, err)
	_, err = df.CreateInfo(nodes.Node{ExternalID: 1, SUID: 1})
	require.ErrorIs(t, err, migration.ErrUnknownNode)
}

// TestNewFactory_Selection picks the factory from Params.
func TestNewFactory_Selection(t *testing.T) {
	reg := registry(t, 9)

	p := migration.DefaultParams()
	f, err := migration.NewFactory(p, reg.SUIDOf)
	require.NoError(t, err)
	require.IsType(t, migration.NullFactory{}, f)
	info, err := f.CreateInfo(nodes.Node{ExternalID: 1, SUID: 1})
	require.NoError(t, err)
	require.IsType(t, &migration.Null{}, info)

	p.Model = migration.ModelFixedRate
	p.Source = migration.SourceTorus
	p.TorusSize = 3
	f, err = migration.NewFactory(p, reg.SUIDOf)
	require.NoError(t, err)
	require.IsType(t, &migration.DefaultFactory{}, f)

	p.TorusSize = 1
	_, err = migration.NewFactory(p, reg.SUIDOf)
	require.ErrorIs(t, err, lattice.ErrSize)

	p.Source = "CLOUD"
	_, err = migration.NewFactory(p, reg.SUIDOf)
	require.ErrorIs(t, err, migration.ErrUnknownSource)

	p.Model = "TELEPORT"
	_, err = migration.NewFactory(p, reg.SUIDOf)
	require.ErrorIs(t, err, migration.ErrUnknownModel)

	p = migration.DefaultParams()
	p.Model = migration.ModelFixedRate
	f, err = migration.NewFactory(p, reg.SUIDOf)
	require.NoError(t, err)
	require.IsType(t, &migration.FileFactory{}, f)
}

// TestFileFactory_Merge combines a fixed local file with an age-dependent
// air file and detects fortress nodes.
func TestFileFactory_Merge(t *testing.T) {
	dir := t.TempDir()
	writeLocal(t, dir)
	require.NoError(t, migration.WriteFile(filepath.Join(dir, "air.bin"), migration.Layout{
		IDReference:         idRef,
		Type:                migration.Air,
		AgesYears:           []float64{0, 40},
		DestinationsPerNode: 2,
		Interpolation:       rates.Linear,
	}, []migration.NodeRates{{
		From:   2,
		Blocks: [][][]migration.Destination{{{{To: 3, Rate: 0.1}}, {{To: 3, Rate: 0.5}}}},
	}}))

	reg := registry(t, 4)
	p := migration.DefaultParams()
	p.Model = migration.ModelFixedRate
	p.Local = migration.FileParams{Enabled: true, Filename: "local.bin", Multiplier: 1}
	p.Air = migration.FileParams{Enabled: true, Filename: "air.bin", Multiplier: 1}
	p.Sea = migration.FileParams{Enabled: false, Filename: "sea.bin", Multiplier: 1}

	ff := migration.NewFileFactory(p, reg.SUIDOf, migration.WithSearchPaths(dir))
	require.NoError(t, ff.Initialize(idRef))
	defer func() { require.NoError(t, ff.Close()) }()

	require.True(t, ff.IsEnabled(migration.Local))
	require.True(t, ff.IsEnabled(migration.Air))
	require.False(t, ff.IsEnabled(migration.Sea))
	require.True(t, ff.IsAtLeastOneTypeConfiguredForIndividuals())
	require.Len(t, ff.Files(), 5)

	// node 1: local only, fixed
	info, err := ff.CreateInfo(nodes.Node{ExternalID: 1, SUID: 1})
	require.NoError(t, err)
	require.IsType(t, &migration.FixedRate{}, info)
	require.Equal(t, []nodes.SUID{2, 3}, info.ReachableNodes(population.Male))

	// node 2: local + air, the air ages make it age-dependent
	info, err = ff.CreateInfo(nodes.Node{ExternalID: 2, SUID: 2})
	require.NoError(t, err)
	require.IsType(t, &migration.AgeAndGender{}, info)
	require.Equal(t, []nodes.SUID{1, 3}, info.ReachableNodes(population.Female))
	require.Equal(t, []migration.Type{migration.Local, migration.Air}, info.MigrationTypes(population.Male))

	// node 4: nothing anywhere
	info, err = ff.CreateInfo(nodes.Node{ExternalID: 4, SUID: 4})
	require.NoError(t, err)
	require.IsType(t, &migration.Null{}, info)

	// BuildAll records links and fortresses
	infos, err := migration.BuildAll(context.Background(), ff, reg, 2)
	require.NoError(t, err)
	require.Len(t, infos, 4)
	require.Equal(t, []nodes.SUID{3, 4}, reg.Fortresses())
	walk, err := reg.Walk(1)
	require.NoError(t, err)
	require.Equal(t, []nodes.SUID{1, 2, 3}, walk.Order)
}

// TestFileFactory_InitializeFails surfaces the first file error.
func TestFileFactory_InitializeFails(t *testing.T) {
	dir := t.TempDir()
	writeLocal(t, dir)

	p := migration.DefaultParams()
	p.Local = migration.FileParams{Enabled: true, Filename: "local.bin", Multiplier: 1}
	p.Family = migration.FileParams{Enabled: true, Multiplier: 1}
	ff := migration.NewFileFactory(p, registry(t, 3).SUIDOf, migration.WithSearchPaths(dir))
	require.ErrorIs(t, ff.Initialize(idRef), migration.ErrEmptyFilename)
}

// TestBuildAll_Torus builds a fully connected torus.
func TestBuildAll_Torus(t *testing.T) {
	reg := registry(t, 9)
	df, err := migration.NewDefaultFactory(3, migration.FileParams{Enabled: true, Multiplier: 1}, reg.SUIDOf)
	require.NoError(t, err)

	infos, err := migration.BuildAll(context.Background(), df, reg, 0)
	require.NoError(t, err)
	require.Len(t, infos, 9)
	require.Empty(t, reg.Fortresses())

	walk, err := reg.Walk(5)
	require.NoError(t, err)
	require.Len(t, walk.Order, 9)
	require.Equal(t, 1, walk.Depth[1])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = migration.BuildAll(ctx, df, reg, 1)
	require.ErrorIs(t, err, context.Canceled)
}
