package memory

import (
	"context"
	"testing"

	"github.com/oaktree-io/storefront/internal/domain/customer"
	"github.com/oaktree-io/storefront/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_InsertAndGet(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	ord := order.New("ord1", "cust1")
	ord.AddItem(order.Item{ProductID: "p1", SKU: "SKU-1", Name: "Widget", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")})
	require.NoError(t, repo.Insert(ctx, ord))

	got, err := repo.Get(ctx, "ord1")
	require.NoError(t, err)
	assert.Equal(t, "ord1", got.ID)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("20.00")))
}

func TestOrderRepository_InsertConflict(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, order.New("ord1", "cust1")))
	assert.ErrorIs(t, repo.Insert(ctx, order.New("ord1", "cust2")), order.ErrConflict)
}

func TestOrderRepository_GetNotFound(t *testing.T) {
	repo := NewOrderRepository()

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrderRepository_UpdateNotFound(t *testing.T) {
	repo := NewOrderRepository()

	err := repo.Update(context.Background(), order.New("ord1", "cust1"))
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrderRepository_CloneIsolation(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	ord := order.New("ord1", "cust1")
	require.NoError(t, repo.Insert(ctx, ord))

	// mutating the caller's copy must not leak into the stored record
	require.NoError(t, ord.Place())

	got, err := repo.Get(ctx, "ord1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusNew, got.Status)

	// mutating a read snapshot must not leak either
	require.NoError(t, got.Place())
	again, err := repo.Get(ctx, "ord1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusNew, again.Status)
}

func TestCustomerRepository_SaveGetUpdate(t *testing.T) {
	repo := NewCustomerRepository()
	ctx := context.Background()

	alice := customer.New("cust1", "Alice", "alice@example.com", "Almaty, 123", "+7701")
	require.NoError(t, repo.Save(ctx, alice))

	got, err := repo.Get(ctx, "cust1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	// stored record is isolated from the returned clone
	got.Loyalty.AddPoints(50)
	fresh, err := repo.Get(ctx, "cust1")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Loyalty.Points())

	got.Loyalty.AddPoints(50) // 100 on the clone now
	require.NoError(t, repo.Update(ctx, got))
	fresh, err = repo.Get(ctx, "cust1")
	require.NoError(t, err)
	assert.Equal(t, 100, fresh.Loyalty.Points())
}

func TestCustomerRepository_GetNotFound(t *testing.T) {
	repo := NewCustomerRepository()

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, customer.ErrNotFound)
}
