package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryFetcher_AppliesLatest(t *testing.T) {
	f := &InventoryFetcher{}

	seq := f.Begin()
	applied := f.Complete(seq, []VehicleRow{{"make": "Toyota"}}, nil)

	assert.True(t, applied)
	require.Len(t, f.Rows(), 1)
	assert.Equal(t, "Toyota", f.Rows()[0].String("make"))
}

func TestInventoryFetcher_DiscardsStaleCompletion(t *testing.T) {
	f := &InventoryFetcher{}

	slow := f.Begin()
	fast := f.Begin()

	require.True(t, f.Complete(fast, []VehicleRow{{"make": "Honda"}}, nil))

	// The slow response arrives after a newer fetch already completed and
	// must never overwrite it.
	assert.False(t, f.Complete(slow, []VehicleRow{{"make": "Toyota"}}, nil))
	require.Len(t, f.Rows(), 1)
	assert.Equal(t, "Honda", f.Rows()[0].String("make"))
}

func TestInventoryFetcher_SupersededBeforeCompletion(t *testing.T) {
	f := &InventoryFetcher{}

	old := f.Begin()
	f.Begin()

	// Even with the newer fetch still outstanding, the old completion is
	// already stale.
	assert.False(t, f.Complete(old, []VehicleRow{{"make": "Toyota"}}, nil))
	assert.Empty(t, f.Rows())
}

func TestInventoryFetcher_FailurePreservesState(t *testing.T) {
	f := &InventoryFetcher{}

	require.True(t, f.Complete(f.Begin(), []VehicleRow{{"make": "Toyota"}}, nil))

	assert.False(t, f.Complete(f.Begin(), nil, errors.New("connection refused")))
	require.Len(t, f.Rows(), 1)
	assert.Equal(t, "Toyota", f.Rows()[0].String("make"))
}

func TestInventoryFetcher_DetectsProfileOnce(t *testing.T) {
	f := &InventoryFetcher{}

	assert.True(t, f.Profile().Unknown())

	require.True(t, f.Complete(f.Begin(), []VehicleRow{{"exterior_color": "red"}}, nil))
	assert.Equal(t, CasingSnake, f.Profile().Casing)

	// Later fetches never re-detect, even if the rows look different.
	require.True(t, f.Complete(f.Begin(), []VehicleRow{{"exteriorColor": "blue"}}, nil))
	assert.Equal(t, CasingSnake, f.Profile().Casing)
}

func TestInventoryFetcher_EmptyFetchKeepsProfileUnset(t *testing.T) {
	f := &InventoryFetcher{}

	require.True(t, f.Complete(f.Begin(), nil, nil))
	assert.True(t, f.Profile().Unknown())

	require.True(t, f.Complete(f.Begin(), []VehicleRow{{"exteriorColor": "red"}}, nil))
	assert.Equal(t, CasingCamel, f.Profile().Casing)
}

func TestInventoryFetcher_RowsReturnsCopy(t *testing.T) {
	f := &InventoryFetcher{}
	require.True(t, f.Complete(f.Begin(), []VehicleRow{{"make": "Toyota"}}, nil))

	rows := f.Rows()
	rows[0] = VehicleRow{"make": "mutated"}

	assert.Equal(t, "Toyota", f.Rows()[0].String("make"))
}
