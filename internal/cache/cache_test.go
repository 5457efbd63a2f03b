package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/whilesynth/internal/driver"
)

func TestKeyDigestIsStableAcrossMapIterationOrder(t *testing.T) {
	inputs := map[string]int{"a": 1, "b": 2, "c": 3}
	outputs := map[string]int{"x": 9}

	d1, err := NewKey("prog", inputs, outputs, true).Digest()
	require.NoError(t, err)
	d2, err := NewKey("prog", inputs, outputs, true).Digest()
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestKeyDigestDiffersOnWithExprs(t *testing.T) {
	d1, err := NewKey("prog", nil, nil, true).Digest()
	require.NoError(t, err)
	d2, err := NewKey("prog", nil, nil, false).Digest()
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)
}

func TestStorePutThenGetRoundTrips(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	key := NewKey("a := ??", nil, map[string]int{"a": 6}, false)
	res := driver.Result{Outcome: driver.Solved, Source: "a := 6"}
	require.NoError(t, store.Put(key, res))

	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, res, got)
}

func TestStoreGetMissReportsErrMiss(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(NewKey("nope", nil, nil, false))
	assert.ErrorIs(t, err, ErrMiss)
}

func TestStorePutOverwritesPriorEntry(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	key := NewKey("a := ??", nil, map[string]int{"a": 6}, false)
	require.NoError(t, store.Put(key, driver.Result{Outcome: driver.NoSolution}))
	require.NoError(t, store.Put(key, driver.Result{Outcome: driver.Solved, Source: "a := 6"}))

	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, driver.Solved, got.Outcome)
	assert.Equal(t, "a := 6", got.Source)
}
