package catalog

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("catalog: product not found")
	ErrMissingSKU   = errors.New("catalog: sku is required")
	ErrMissingName  = errors.New("catalog: name is required")
	ErrInvalidPrice = errors.New("catalog: price must be zero or greater")
	ErrDuplicateSKU = errors.New("catalog: sku already registered")
)

type Category struct {
	ID   string
	Name string
}

func NewCategory(id, name string) Category {
	return Category{ID: id, Name: name}
}

// Product is immutable after construction; orders snapshot its price at
// placement time rather than referencing it.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	SKU         string
	Category    Category
	Digital     bool
}

// Catalog indexes products by SKU and enforces SKU uniqueness.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]*Product
}

func NewCatalog() *Catalog {
	return &Catalog{products: make(map[string]*Product)}
}

func (c *Catalog) Add(p *Product) error {
	if p == nil || p.SKU == "" {
		return ErrMissingSKU
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.products[p.SKU]; exists {
		return ErrDuplicateSKU
	}
	c.products[p.SKU] = p
	return nil
}

func (c *Catalog) BySKU(sku string) (*Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[sku]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}
