package cart

import (
	"errors"
	"sort"

	"github.com/oaktree-io/storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

var (
	ErrNilProduct      = errors.New("cart: product is required")
	ErrInvalidQuantity = errors.New("cart: quantity must be greater than zero")
	ErrPromoInvalid    = errors.New("cart: promo code is expired or used up")
)

type Item struct {
	Product  *catalog.Product
	Quantity int
}

func (it Item) Subtotal() decimal.Decimal {
	return it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Cart holds the items a customer intends to order, keyed by SKU. Placing an
// order copies the cart contents; the cart itself is only mutated by its
// owner's add/remove/clear calls.
type Cart struct {
	ID         string
	CustomerID string
	items      map[string]*Item
	promo      *PromoCode
}

func New(id, customerID string) *Cart {
	return &Cart{
		ID:         id,
		CustomerID: customerID,
		items:      make(map[string]*Item),
	}
}

// AddItem accumulates quantity when the SKU is already present.
func (c *Cart) AddItem(p *catalog.Product, qty int) error {
	if p == nil {
		return ErrNilProduct
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if existing, ok := c.items[p.SKU]; ok {
		existing.Quantity += qty
		return nil
	}
	c.items[p.SKU] = &Item{Product: p, Quantity: qty}
	return nil
}

func (c *Cart) RemoveItem(sku string) {
	delete(c.items, sku)
}

// Items returns a snapshot in SKU order so iteration is deterministic.
func (c *Cart) Items() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.SKU < out[j].Product.SKU })
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Total applies the promo discount when one is attached and still valid.
// Promo discounts are a cart-level concern; order totals are computed from
// line subtotals alone.
func (c *Cart) Total() decimal.Decimal {
	total := c.Subtotal()
	if c.promo != nil && c.promo.Valid() {
		total = total.Sub(c.promo.Discount(total))
	}
	return total
}

func (c *Cart) ApplyPromo(p *PromoCode) error {
	if p == nil || !p.Valid() {
		return ErrPromoInvalid
	}
	c.promo = p
	return nil
}

func (c *Cart) Promo() *PromoCode { return c.promo }

func (c *Cart) Clear() {
	c.items = make(map[string]*Item)
	c.promo = nil
}
