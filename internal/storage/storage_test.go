package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	type record struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	var got []record
	found, err := m.Get(ctx, "records", &got)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, m.Set(ctx, "records", []record{{ID: "a", Name: "Alpha"}}))

	found, err = m.Get(ctx, "records", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []record{{ID: "a", Name: "Alpha"}}, got)
}

func TestMemoryStoresCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	value := map[string]int{"x": 1}
	require.NoError(t, m.Set(ctx, "k", value))

	// Mutating the original after Set must not leak into storage.
	value["x"] = 99

	var got map[string]int
	found, err := m.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1, got["x"])
}
