package store

import (
	"context"
	"testing"
	"time"

	"pos-admin-gateway/internal/domains/cart/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	cart := model.NewCart()
	require.NoError(t, cart.AddItem(model.ProductSnapshot{
		ID: 1, Name: "Teh Manis", Price: decimal.NewFromInt(5000), Stock: 10,
	}, 2))
	require.NoError(t, s.Save(ctx, "sess-1", cart))

	loaded, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, 2, loaded.Lines[0].Quantity)
}

func TestMemoryStoreUnknownSessionReturnsEmptyCart(t *testing.T) {
	s := NewMemoryStore(time.Minute)

	cart, err := s.Get(context.Background(), "nobody")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, model.PaymentCash, cart.PaymentMethod)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Millisecond)

	cart := model.NewCart()
	require.NoError(t, cart.AddItem(model.ProductSnapshot{
		ID: 1, Name: "Teh Manis", Price: decimal.NewFromInt(5000), Stock: 10,
	}, 1))
	require.NoError(t, s.Save(ctx, "sess-1", cart))

	time.Sleep(5 * time.Millisecond)

	loaded, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	cart := model.NewCart()
	require.NoError(t, cart.AddItem(model.ProductSnapshot{
		ID: 1, Name: "Teh Manis", Price: decimal.NewFromInt(5000), Stock: 10,
	}, 1))
	require.NoError(t, s.Save(ctx, "sess-1", cart))

	first, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	first.Lines[0].Quantity = 99

	second, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Lines[0].Quantity)
}

func TestMemoryStoreEvictsExpiredEntryOnGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Millisecond)

	cart := model.NewCart()
	require.NoError(t, cart.AddItem(model.ProductSnapshot{
		ID: 1, Name: "Teh Manis", Price: decimal.NewFromInt(5000), Stock: 10,
	}, 1))
	require.NoError(t, s.Save(ctx, "sess-1", cart))

	time.Sleep(5 * time.Millisecond)

	_, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.entries, "expired entry should have been evicted")
}

func TestMemoryStoreSweepsExpiredEntriesOnSave(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Millisecond)

	require.NoError(t, s.Save(ctx, "old-1", model.NewCart()))
	require.NoError(t, s.Save(ctx, "old-2", model.NewCart()))

	time.Sleep(5 * time.Millisecond)

	// Saving a new session sweeps the stale ones without any Get.
	require.NoError(t, s.Save(ctx, "fresh", model.NewCart()))

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Len(t, s.entries, 1)
	_, ok := s.entries["fresh"]
	assert.True(t, ok)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	cart := model.NewCart()
	require.NoError(t, cart.AddItem(model.ProductSnapshot{
		ID: 1, Name: "Teh Manis", Price: decimal.NewFromInt(5000), Stock: 10,
	}, 1))
	require.NoError(t, s.Save(ctx, "sess-1", cart))
	require.NoError(t, s.Delete(ctx, "sess-1"))

	loaded, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}
