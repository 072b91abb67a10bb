package warehouse

import (
	"errors"
	"sync"
)

var (
	ErrInvalidQuantity   = errors.New("warehouse: quantity must be greater than zero")
	ErrNegativeQuantity  = errors.New("warehouse: stock level must be zero or greater")
	ErrInsufficientStock = errors.New("warehouse: insufficient stock")
)

// Warehouse is a per-site stock ledger mapping SKU to available quantity.
// Each warehouse is its own mutual-exclusion domain: reserve's check-then-
// decrement is atomic under the warehouse mutex, and independent warehouses
// never contend with each other.
type Warehouse struct {
	ID       string
	Name     string
	Location string

	mu    sync.Mutex
	stock map[string]int
}

func New(id, name, location string) *Warehouse {
	return &Warehouse{
		ID:       id,
		Name:     name,
		Location: location,
		stock:    make(map[string]int),
	}
}

// SetStock sets the absolute quantity for a SKU regardless of its prior value.
func (w *Warehouse) SetStock(sku string, qty int) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stock[sku] = qty
	return nil
}

// Stock returns the available quantity, zero for unknown SKUs.
func (w *Warehouse) Stock(sku string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stock[sku]
}

// Reserve decrements stock when the full quantity is available, otherwise
// leaves the ledger untouched and reports ErrInsufficientStock.
func (w *Warehouse) Reserve(sku string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	available := w.stock[sku]
	if available < qty {
		return ErrInsufficientStock
	}
	w.stock[sku] = available - qty
	return nil
}

// Release returns quantity to the ledger. There is deliberately no upper
// bound: compensation after a downstream failure must always succeed.
func (w *Warehouse) Release(sku string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stock[sku] += qty
	return nil
}
