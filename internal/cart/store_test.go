package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/storefront/internal/cache"
)

func newTestStore(t *testing.T) (*Store, cache.Client) {
	t.Helper()
	c := cache.NewMemory("test:", time.Minute)
	return NewStore(c, time.Hour), c
}

func TestStore_SesionDesconocidaEsCarritoVacio(t *testing.T) {
	s, _ := newTestStore(t)
	c, err := s.Get(context.Background(), "nadie")
	require.NoError(t, err)
	require.True(t, c.IsEmpty())
}

func TestStore_SaveYGet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	sid := NewSessionID()

	c := New()
	c.AddItem(Product{ID: 1, Title: "p", Price: 10}, 2)
	require.NoError(t, s.Save(ctx, sid, c))

	got, err := s.Get(ctx, sid)
	require.NoError(t, err)
	require.Equal(t, 2, got.TotalItems())
	require.Equal(t, 1, got.Items[0].ID)
}

func TestStore_Drop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	sid := NewSessionID()

	c := New()
	c.AddItem(Product{ID: 1, Title: "p", Price: 10}, 1)
	require.NoError(t, s.Save(ctx, sid, c))
	require.NoError(t, s.Drop(ctx, sid))

	got, err := s.Get(ctx, sid)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestStore_JSONCorruptoSeDescarta(t *testing.T) {
	s, c := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "cart:rota", "{no json", time.Minute))

	got, err := s.Get(ctx, "rota")
	require.NoError(t, err)
	require.True(t, got.IsEmpty())

	// La entrada corrupta se eliminó del backend.
	_, err = c.Get(ctx, "cart:rota")
	require.True(t, cache.IsNotFound(err))
}
