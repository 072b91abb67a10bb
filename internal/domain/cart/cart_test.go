package cart

import (
	"testing"
	"time"

	"github.com/oaktree-io/storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(sku, name, price string) *catalog.Product {
	return &catalog.Product{
		ID:    "id-" + sku,
		Name:  name,
		Price: decimal.RequireFromString(price),
		SKU:   sku,
	}
}

func TestAddItem_AccumulatesQuantity(t *testing.T) {
	c := New("cart1", "cust1")
	phone := product("SMX-001", "Smartphone X", "450.00")

	require.NoError(t, c.AddItem(phone, 1))
	require.NoError(t, c.AddItem(phone, 2))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItem_Validation(t *testing.T) {
	c := New("cart1", "cust1")
	assert.ErrorIs(t, c.AddItem(nil, 1), ErrNilProduct)
	assert.ErrorIs(t, c.AddItem(product("A", "a", "1"), 0), ErrInvalidQuantity)
}

func TestItems_SortedBySKU(t *testing.T) {
	c := New("cart1", "cust1")
	require.NoError(t, c.AddItem(product("ZZZ", "z", "1.00"), 1))
	require.NoError(t, c.AddItem(product("AAA", "a", "1.00"), 1))
	require.NoError(t, c.AddItem(product("MMM", "m", "1.00"), 1))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "AAA", items[0].Product.SKU)
	assert.Equal(t, "MMM", items[1].Product.SKU)
	assert.Equal(t, "ZZZ", items[2].Product.SKU)
}

func TestSubtotal(t *testing.T) {
	c := New("cart1", "cust1")
	require.NoError(t, c.AddItem(product("SMX-001", "Smartphone X", "450.00"), 1))
	require.NoError(t, c.AddItem(product("EB-001", "Ebook", "19.99"), 2))

	assert.True(t, c.Subtotal().Equal(decimal.RequireFromString("489.98")), "subtotal = %s", c.Subtotal())
}

func TestTotal_WithPromo(t *testing.T) {
	c := New("cart1", "cust1")
	require.NoError(t, c.AddItem(product("SMX-001", "Smartphone X", "100.00"), 1))

	promo := NewPromoCode("WELCOME10", decimal.NewFromInt(10), time.Now().Add(24*time.Hour), 5)
	require.NoError(t, c.ApplyPromo(promo))

	assert.True(t, c.Total().Equal(decimal.RequireFromString("90.00")), "total = %s", c.Total())
	// computing the total does not consume usage
	assert.Equal(t, 5, promo.UsageLeft)
}

func TestApplyPromo_ExpiredRejected(t *testing.T) {
	c := New("cart1", "cust1")
	expired := NewPromoCode("OLD", decimal.NewFromInt(10), time.Now().Add(-time.Hour), 5)
	assert.ErrorIs(t, c.ApplyPromo(expired), ErrPromoInvalid)

	usedUp := NewPromoCode("USED", decimal.NewFromInt(10), time.Now().Add(time.Hour), 0)
	assert.ErrorIs(t, c.ApplyPromo(usedUp), ErrPromoInvalid)
}

func TestPromoConsume(t *testing.T) {
	promo := NewPromoCode("WELCOME10", decimal.NewFromInt(10), time.Now().Add(time.Hour), 1)
	assert.True(t, promo.Consume())
	assert.Equal(t, 0, promo.UsageLeft)
	assert.False(t, promo.Consume())
}

func TestClear(t *testing.T) {
	c := New("cart1", "cust1")
	require.NoError(t, c.AddItem(product("SMX-001", "Smartphone X", "450.00"), 1))
	require.NoError(t, c.ApplyPromo(NewPromoCode("P", decimal.NewFromInt(5), time.Now().Add(time.Hour), 1)))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.Promo())
	assert.True(t, c.Total().Equal(decimal.Zero))
}

func TestRemoveItem(t *testing.T) {
	c := New("cart1", "cust1")
	require.NoError(t, c.AddItem(product("SMX-001", "Smartphone X", "450.00"), 1))
	c.RemoveItem("SMX-001")
	assert.True(t, c.IsEmpty())
}
