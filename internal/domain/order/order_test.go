package order

import (
	"testing"
	"time"

	"github.com/oaktree-io/storefront/internal/domain/payment"
	"github.com/oaktree-io/storefront/internal/domain/shipment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placedOrder(t *testing.T) *Order {
	t.Helper()
	o := New("o1", "c1")
	o.AddItem(Item{ProductID: "p1", SKU: "SMX-001", Name: "Smartphone X", Quantity: 2, UnitPrice: decimal.RequireFromString("450.00")})
	require.NoError(t, o.Place())
	return o
}

func successfulPayment(t *testing.T, amount decimal.Decimal) *payment.Payment {
	t.Helper()
	p, err := payment.New("pay1", payment.TypeCard, amount)
	require.NoError(t, err)
	p.MarkSucceeded("TX-1234", time.Now().UTC())
	return p
}

func TestAddItem_TotalIsSumOfSubtotals(t *testing.T) {
	o := New("o1", "c1")
	o.AddItem(Item{SKU: "A", Quantity: 2, UnitPrice: decimal.RequireFromString("450.00")})
	o.AddItem(Item{SKU: "B", Quantity: 1, UnitPrice: decimal.RequireFromString("19.99")})

	assert.True(t, o.Total.Equal(decimal.RequireFromString("919.99")), "total = %s", o.Total)
}

func TestLifecycle_HappyPath(t *testing.T) {
	o := placedOrder(t)
	assert.Equal(t, StatusPlaced, o.Status)

	require.NoError(t, o.MarkPaid(successfulPayment(t, o.Total)))
	assert.Equal(t, StatusPaid, o.Status)

	sh, err := shipment.New("s1", "Almaty, 123")
	require.NoError(t, err)
	require.NoError(t, o.BeginDelivery(sh))
	assert.Equal(t, StatusInDelivery, o.Status)

	require.NoError(t, o.Complete())
	assert.Equal(t, StatusCompleted, o.Status)
}

func TestMarkPaid_RequiresPlaced(t *testing.T) {
	o := New("o1", "c1")
	err := o.MarkPaid(successfulPayment(t, decimal.Zero))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusNew, o.Status)
}

func TestComplete_RequiresInDelivery(t *testing.T) {
	o := placedOrder(t)
	assert.ErrorIs(t, o.Complete(), ErrInvalidTransition)
	assert.Equal(t, StatusPlaced, o.Status)
}

func TestCancel_OnlyBeforePayment(t *testing.T) {
	o := New("o1", "c1")
	assert.True(t, o.CanCancel())
	require.NoError(t, o.Place())
	assert.True(t, o.CanCancel())

	require.NoError(t, o.MarkPaid(successfulPayment(t, o.Total)))
	assert.False(t, o.CanCancel())
	assert.ErrorIs(t, o.Cancel(), ErrInvalidTransition)
	assert.Equal(t, StatusPaid, o.Status)
}

func TestCancel_FromPlaced(t *testing.T) {
	o := placedOrder(t)
	require.NoError(t, o.Cancel())
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestClone_IsIndependent(t *testing.T) {
	o := placedOrder(t)
	clone := o.Clone()

	clone.Items[0].Quantity = 99
	require.NoError(t, clone.MarkPaid(successfulPayment(t, clone.Total)))

	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, StatusPlaced, o.Status)
	assert.Nil(t, o.Payment)
}
