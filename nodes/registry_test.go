// SPDX-License-Identifier: MIT

package nodes_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epiroute/nodes"
)

// TestRegistry_Add covers id assignment and lookup in both directions.
func TestRegistry_Add(t *testing.T) {
	r := nodes.NewRegistry()

	_, err := r.Add(0)
	require.ErrorIs(t, err, nodes.ErrZeroExternalID)

	a, err := r.Add(1001)
	require.NoError(t, err)
	b, err := r.Add(7)
	require.NoError(t, err)
	require.Equal(t, nodes.SUID(1), a)
	require.Equal(t, nodes.SUID(2), b)

	_, err = r.Add(7)
	require.ErrorIs(t, err, nodes.ErrDuplicateNode)

	got, ok := r.SUIDOf(7)
	require.True(t, ok)
	require.Equal(t, b, got)
	_, ok = r.SUIDOf(8)
	require.False(t, ok)

	ext, err := r.ExternalOf(a)
	require.NoError(t, err)
	require.Equal(t, uint32(1001), ext)

	_, err = r.ExternalOf(nodes.NilSUID)
	require.ErrorIs(t, err, nodes.ErrNilSUID)
	_, err = r.ExternalOf(99)
	require.ErrorIs(t, err, nodes.ErrNodeNotFound)

	require.Equal(t, []nodes.Node{{ExternalID: 1001, SUID: 1}, {ExternalID: 7, SUID: 2}}, r.Nodes())
	assert.Equal(t, "nil", nodes.NilSUID.String())
	assert.Equal(t, "2", b.String())
}

// TestRegistry_LinksAndFortresses checks link normalization.
func TestRegistry_LinksAndFortresses(t *testing.T) {
	r := nodes.NewRegistry()
	require.NoError(t, r.AddRange(1, 4))

	require.NoError(t, r.SetLinks(1, []nodes.SUID{3, 2, 3, 1, nodes.NilSUID}))
	require.Equal(t, []nodes.SUID{2, 3}, r.Links(1))
	require.NoError(t, r.SetLinks(2, nil))
	require.ErrorIs(t, r.SetLinks(9, nil), nodes.ErrNodeNotFound)
	require.ErrorIs(t, r.SetLinks(1, []nodes.SUID{9}), nodes.ErrNodeNotFound)

	// node 3 and 4 were never linked, so only 2 is a fortress
	require.Equal(t, []nodes.SUID{2}, r.Fortresses())
}

// TestRegistry_Walk checks order, depth, parents and options.
func TestRegistry_Walk(t *testing.T) {
	r := nodes.NewRegistry()
	require.NoError(t, r.AddRange(1, 5))
	require.NoError(t, r.SetLinks(1, []nodes.SUID{3, 2}))
	require.NoError(t, r.SetLinks(2, []nodes.SUID{4}))
	require.NoError(t, r.SetLinks(3, []nodes.SUID{4, 1}))

	res, err := r.Walk(1)
	require.NoError(t, err)
	require.Equal(t, []nodes.SUID{1, 2, 3, 4}, res.Order)
	require.Equal(t, 2, res.Depth[4])
	require.Equal(t, nodes.SUID(2), res.Parent[4])
	require.False(t, res.Reachable(5))

	res, err = r.Walk(1, nodes.WithMaxDepth(1))
	require.NoError(t, err)
	require.Equal(t, []nodes.SUID{1, 2, 3}, res.Order)

	stop := errors.New("stop")
	_, err = r.Walk(1, nodes.WithOnVisit(func(id nodes.SUID, _ int) error {
		if id == 3 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Walk(1, nodes.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)

	_, err = r.Walk(nodes.NilSUID)
	require.ErrorIs(t, err, nodes.ErrNilSUID)
}

// TestRegistry_Concurrent exercises shared locking under -race.
func TestRegistry_Concurrent(t *testing.T) {
	r := nodes.NewRegistry()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(base uint32) {
			defer wg.Done()
			for i := uint32(1); i <= 50; i++ {
				_, _ = r.Add(base*100 + i)
				_, _ = r.SUIDOf(base*100 + i)
			}
		}(uint32(g + 1))
	}
	wg.Wait()
	require.Equal(t, 400, r.Len())
}
