// SPDX-License-Identifier: MIT

package migration_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epiroute/migration"
)

// TestNodeOffset rejects offsets that do not fit the eight hex digits of
// NodeOffsets instead of wrapping them.
func TestNodeOffset(t *testing.T) {
	off, err := migration.NodeOffset(3, 96)
	require.NoError(t, err)
	require.Equal(t, uint32(288), off)

	off, err = migration.NodeOffset(1, math.MaxUint32)
	require.NoError(t, err)
	require.Equal(t, uint32(math.MaxUint32), off)

	// 4 GiB lands on 0 when truncated
	_, err = migration.NodeOffset(1<<20, 1<<12)
	require.ErrorIs(t, err, migration.ErrOffsetRange)
	_, err = migration.NodeOffset(2, math.MaxUint32)
	require.ErrorIs(t, err, migration.ErrOffsetRange)
}
