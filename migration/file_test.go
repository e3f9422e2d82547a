// SPDX-License-Identifier: MIT

package migration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epiroute/migration"
	"github.com/katalvlaran/epiroute/nodes"
	"github.com/katalvlaran/epiroute/rates"
)

const idRef = "Gridded World"

// registry registers external ids 1..n, so SUID == external id.
func registry(t *testing.T, n uint32) *nodes.Registry {
	t.Helper()
	reg := nodes.NewRegistry()
	require.NoError(t, reg.AddRange(1, n))
	return reg
}

// writeLocal writes a fixed local file with 1→{2,3} and 2→{1}.
func writeLocal(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "local.bin")
	require.NoError(t, migration.WriteFile(path, migration.Layout{IDReference: idRef, Type: migration.Local}, []migration.NodeRates{
		migration.FixedNodeRates(1, migration.Destination{To: 2, Rate: 0.5}, migration.Destination{To: 3, Rate: 0.25}),
		migration.FixedNodeRates(2, migration.Destination{To: 1, Rate: 1}),
	}))
	return path
}

// TestFile_RoundTrip reads back what WriteFile wrote.
func TestFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeLocal(t, dir)
	reg := registry(t, 3)

	f := migration.NewFile(migration.FileSpec{Type: migration.Local, Enabled: true, Filename: "local.bin", Multiplier: 2},
		migration.WithSearchPaths(t.TempDir(), dir))
	require.NoError(t, f.Initialize("gridded WORLD"))
	defer func() { require.NoError(t, f.Close()) }()

	require.Equal(t, filepath.Join(dir, "local.bin"), f.Path())
	require.Equal(t, 8, f.DestinationsPerNode())
	require.Equal(t, 2, f.NodeCount())
	require.Equal(t, []uint32{1, 2}, f.NodeIDs())
	require.Equal(t, []float64{migration.MaxHumanAge}, f.AgesYears())
	require.Equal(t, migration.SameForBothGenders, f.GenderDataType())

	var data [2][]migration.RateData
	fixed, err := f.ReadData(1, reg.SUIDOf, &data)
	require.NoError(t, err)
	require.True(t, fixed)
	for g := range data {
		require.Len(t, data[g], 2)
		require.Equal(t, nodes.SUID(2), data[g][0].Destination())
		require.Equal(t, 1.0, data[g][0].Rate(0))
		require.Equal(t, 0.5, data[g][1].Rate(70))
		require.Equal(t, migration.Local, data[g][1].Type())
	}

	// a node without data contributes nothing
	var none [2][]migration.RateData
	fixed, err = f.ReadData(3, reg.SUIDOf, &none)
	require.NoError(t, err)
	require.True(t, fixed)
	require.Empty(t, none[0])

	// unknown destination
	small := registry(t, 2)
	_, err = f.ReadData(1, small.SUIDOf, &none)
	require.ErrorIs(t, err, migration.ErrUnknownNode)
}

// TestFile_AgeAndGender reads a two-chunk, two-age file.
func TestFile_AgeAndGender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regional.bin")
	layout := migration.Layout{
		IDReference:         idRef,
		Type:                migration.Regional,
		GenderDataType:      migration.OneForEachGender,
		AgesYears:           []float64{0, 50},
		Interpolation:       rates.PiecewiseConstant,
		DestinationsPerNode: 3,
	}
	require.NoError(t, migration.WriteFile(path, layout, []migration.NodeRates{{
		From: 1,
		Blocks: [][][]migration.Destination{
			// male
			{{{To: 2, Rate: 0.1}}, {{To: 2, Rate: 0.3}}},
			// female
			{{{To: 2, Rate: 0.2}, {To: 3, Rate: 1}}, {{To: 2, Rate: 0.4}, {To: 3, Rate: 2}}},
		},
	}}))

	f := migration.NewFile(migration.FileSpec{Type: migration.Regional, Enabled: true, Filename: path, Multiplier: 1})
	require.NoError(t, f.Initialize(idRef))
	defer f.Close()
	require.Equal(t, rates.PiecewiseConstant, f.Interpolation())

	var data [2][]migration.RateData
	fixed, err := f.ReadData(1, registry(t, 3).SUIDOf, &data)
	require.NoError(t, err)
	require.False(t, fixed)
	require.Len(t, data[0], 1)
	require.Len(t, data[1], 2)
	require.Equal(t, 0.1, data[0][0].Rate(49))
	require.Equal(t, 0.3, data[0][0].Rate(50))
	require.Equal(t, 2.0, data[1][1].Rate(80))
}

// TestFile_Reinitialize reopens the binary without leaking the first one.
func TestFile_Reinitialize(t *testing.T) {
	path := writeLocal(t, t.TempDir())
	f := migration.NewFile(migration.FileSpec{Type: migration.Local, Enabled: true, Filename: path, Multiplier: 1})
	require.NoError(t, f.Initialize(idRef))
	require.NoError(t, f.Initialize(idRef))

	var data [2][]migration.RateData
	_, err := f.ReadData(1, registry(t, 3).SUIDOf, &data)
	require.NoError(t, err)
	require.Len(t, data[0], 2)
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
}

// TestFile_InconsistentDestinations rejects reordered age blocks.
func TestFile_InconsistentDestinations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sea.bin")
	require.NoError(t, migration.WriteFile(path, migration.Layout{
		IDReference: idRef,
		Type:        migration.Sea,
		AgesYears:   []float64{10, 20},
	}, []migration.NodeRates{{
		From:   1,
		Blocks: [][][]migration.Destination{{{{To: 2, Rate: 1}, {To: 3, Rate: 1}}, {{To: 3, Rate: 1}, {To: 2, Rate: 1}}}},
	}}))

	f := migration.NewFile(migration.FileSpec{Type: migration.Sea, Enabled: true, Filename: path, Multiplier: 1})
	require.NoError(t, f.Initialize(idRef))
	defer f.Close()

	var data [2][]migration.RateData
	_, err := f.ReadData(1, registry(t, 3).SUIDOf, &data)
	require.ErrorIs(t, err, migration.ErrInconsistentDestinations)
}

// TestFile_InitializeErrors covers the file-level failures.
func TestFile_InitializeErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeLocal(t, dir)
	spec := migration.FileSpec{Type: migration.Local, Enabled: true, Filename: path, Multiplier: 1}

	t.Run("disabled is a no-op", func(t *testing.T) {
		f := migration.NewFile(migration.FileSpec{Type: migration.Local})
		require.NoError(t, f.Initialize("anything"))
		var data [2][]migration.RateData
		fixed, err := f.ReadData(1, registry(t, 3).SUIDOf, &data)
		require.NoError(t, err)
		require.True(t, fixed)
		require.Empty(t, data[0])
	})
	t.Run("empty filename", func(t *testing.T) {
		f := migration.NewFile(migration.FileSpec{Type: migration.Air, Enabled: true})
		require.ErrorIs(t, f.Initialize(idRef), migration.ErrEmptyFilename)
	})
	t.Run("missing file", func(t *testing.T) {
		f := migration.NewFile(migration.FileSpec{Type: migration.Air, Enabled: true, Filename: "nope.bin"}, migration.WithSearchPaths(dir))
		require.ErrorIs(t, f.Initialize(idRef), migration.ErrFileNotFound)
	})
	t.Run("id reference mismatch", func(t *testing.T) {
		f := migration.NewFile(spec)
		require.ErrorIs(t, f.Initialize("Other World"), migration.ErrIDReference)
	})
	t.Run("wrong binary size", func(t *testing.T) {
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, append(raw, 0), 0o644))
		t.Cleanup(func() { require.NoError(t, os.WriteFile(path, raw, 0o644)) })

		f := migration.NewFile(spec)
		require.ErrorIs(t, f.Initialize(idRef), migration.ErrFileSize)
	})
}

// TestFile_MetadataErrors feeds hand-written sidecars to the parser.
func TestFile_MetadataErrors(t *testing.T) {
	// one node, 1 destination: 12-byte binary
	const okOffsets = `"NodeOffsets": "0000000100000000"`
	tests := []struct {
		name    string
		meta    string
		wantErr error
	}{
		{"not json", `{"Metadata": `, migration.ErrMetadata},
		{"no metadata", `{` + okOffsets + `}`, migration.ErrMetadata},
		{"no id reference", `{"Metadata": {"NodeCount": 1, "DatavalueCount": 1}, ` + okOffsets + `}`, migration.ErrMetadata},
		{"id reference key is case-sensitive", `{"Metadata": {"idreference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1}, ` + okOffsets + `}`, migration.ErrMetadata},
		{"datavalue zero", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 0}, ` + okOffsets + `}`, migration.ErrDatavalueCount},
		{"datavalue too large", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 101}, ` + okOffsets + `}`, migration.ErrDatavalueCount},
		{"unknown migration type", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1, "MigrationType": "BUS_MIGRATION"}, ` + okOffsets + `}`, migration.ErrUnknownEnum},
		{"migration type mismatch", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1, "MigrationType": "AIR_MIGRATION"}, ` + okOffsets + `}`, migration.ErrMigrationTypeMismatch},
		{"unknown gender data", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1, "GenderDataType": "BOTH"}, ` + okOffsets + `}`, migration.ErrUnknownEnum},
		{"unknown interpolation", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1, "InterpolationType": "CUBIC"}, ` + okOffsets + `}`, migration.ErrUnknownEnum},
		{"ages not an array", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1, "AgesYears": 5}, ` + okOffsets + `}`, migration.ErrAgesYears},
		{"ages decreasing", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1, "AgesYears": [10, 5]}, ` + okOffsets + `}`, migration.ErrAgesYears},
		{"ages repeated", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1, "AgesYears": [10, 10]}, ` + okOffsets + `}`, migration.ErrAgesYears},
		{"age too old", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1, "AgesYears": [130]}, ` + okOffsets + `}`, migration.ErrAgesYears},
		{"no node count", `{"Metadata": {"IdReference": "Gridded World", "DatavalueCount": 1}, ` + okOffsets + `}`, migration.ErrMetadata},
		{"no node offsets", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1}}`, migration.ErrMetadata},
		{"node count mismatch", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 2, "DatavalueCount": 1}, ` + okOffsets + `}`, migration.ErrNodeOffsets},
		{"offsets not hex", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1}, "NodeOffsets": "000000010000000G"}`, migration.ErrNodeOffsets},
		{"offset beyond size", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1}, "NodeOffsets": "000000010000000C"}`, migration.ErrOffsetRange},
		{"valid", `{"Metadata": {"IdReference": "Gridded World", "NodeCount": 1, "DatavalueCount": 1, "MigrationType": "LOCAL_MIGRATION", "AgesYears": [0, 125]}, "NodeOffsets": "0000000100000000"}`, migration.ErrFileSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "m.bin")
			require.NoError(t, os.WriteFile(path, make([]byte, 12), 0o644))
			require.NoError(t, os.WriteFile(path+".json", []byte(tc.meta), 0o644))

			f := migration.NewFile(migration.FileSpec{Type: migration.Local, Enabled: true, Filename: path, Multiplier: 1})
			err := f.Initialize(idRef)
			require.ErrorIs(t, err, tc.wantErr)
			require.NoError(t, f.Close())
		})
	}
}
