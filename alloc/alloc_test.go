// Copyright (C) 2025 Daniel Stokic. All Rights Reserved.

package alloc_test

import (
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/stretchr/testify/require"

	"github.com/stokic/jval/alloc"
)

func TestHeap(t *testing.T) {
	res := alloc.Heap()
	buf, err := res.Alloc(8)
	require.NoError(t, err)
	require.Len(t, buf, 8)
	res.Free(buf)

	empty, err := res.Alloc(0)
	require.NoError(t, err)
	require.Empty(t, empty)
	res.Free(empty)
}

func TestTracking(t *testing.T) {
	res := alloc.NewTracking(0)
	require.Equal(t, 0, res.Live())

	a, err := res.Alloc(4)
	require.NoError(t, err)
	b, err := res.Alloc(6)
	require.NoError(t, err)
	require.Equal(t, 2, res.Live())
	require.Equal(t, 10, res.Bytes())

	res.Free(a)
	require.Equal(t, 1, res.Live())
	require.Equal(t, 6, res.Bytes())

	res.Free(b)
	require.Equal(t, 0, res.Live())
	require.Equal(t, 0, res.Bytes())
}

func TestTracking_limit(t *testing.T) {
	res := alloc.NewTracking(4)

	_, err := res.Alloc(5)
	require.ErrorIs(t, err, alloc.ErrExhausted)
	require.Equal(t, 0, res.Live())

	buf, err := res.Alloc(3)
	require.NoError(t, err)

	_, err = res.Alloc(2)
	require.ErrorIs(t, err, alloc.ErrExhausted)

	res.Free(buf)
	buf, err = res.Alloc(4)
	require.NoError(t, err)
	res.Free(buf)
}

func TestTracking_badFree(t *testing.T) {
	t.Run("NoOutstanding", func(t *testing.T) {
		res := alloc.NewTracking(0)
		mtest.MustPanic(t, func() { res.Free(nil) })
	})
	t.Run("WrongSize", func(t *testing.T) {
		res := alloc.NewTracking(0)
		if _, err := res.Alloc(1); err != nil {
			t.Fatalf("Alloc failed: %v", err)
		}
		mtest.MustPanic(t, func() { res.Free(make([]byte, 5)) })
	})
}
