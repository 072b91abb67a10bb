package inventory

import (
	"context"
	"errors"
	"sync"

	"github.com/oaktree-io/storefront/internal/domain/warehouse"
	"github.com/oaktree-io/storefront/internal/observability"
	"github.com/oaktree-io/storefront/internal/observability/logctx"
)

var ErrNoWarehouse = errors.New("inventory: no warehouse can satisfy the reservation")

const componentInventory = "inventory_service"

// Service coordinates stock reservations across a fixed, ordered set of
// warehouses. A reservation is satisfied by a single warehouse in full; there
// is no splitting of one line across sites.
type Service struct {
	mu         sync.RWMutex
	warehouses []*warehouse.Warehouse
	log        observability.Logger
}

func NewService(logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		log: logger.With(observability.F("component", componentInventory)),
	}
}

// AddWarehouse appends to the iteration order. Registration order decides
// which warehouse is probed first on reserve and which one receives releases.
func (s *Service) AddWarehouse(w *warehouse.Warehouse) {
	if w == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses = append(s.warehouses, w)
}

// Reserve walks the warehouses in registration order and debits the first one
// holding the full quantity. When none can, it returns ErrNoWarehouse without
// having debited anything.
func (s *Service) Reserve(ctx context.Context, sku string, qty int) error {
	if qty <= 0 {
		return warehouse.ErrInvalidQuantity
	}

	logger := logctx.FromOr(ctx, s.log)

	s.mu.RLock()
	warehouses := append([]*warehouse.Warehouse(nil), s.warehouses...)
	s.mu.RUnlock()

	for _, w := range warehouses {
		err := w.Reserve(sku, qty)
		if err == nil {
			logger.Info("stock_reserved",
				observability.F("sku", sku),
				observability.F("qty", qty),
				observability.F("warehouse", w.Name),
			)
			return nil
		}
		if !errors.Is(err, warehouse.ErrInsufficientStock) {
			return err
		}
	}

	logger.Warn("stock_reservation_failed",
		observability.F("sku", sku),
		observability.F("qty", qty),
	)
	return ErrNoWarehouse
}

// Release returns quantity to the first warehouse in registration order,
// regardless of which warehouse the stock was reserved from. Total stock
// across warehouses is what reservation consults, so the ledger balances.
func (s *Service) Release(ctx context.Context, sku string, qty int) error {
	if qty <= 0 {
		return warehouse.ErrInvalidQuantity
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.warehouses) == 0 {
		return ErrNoWarehouse
	}

	w := s.warehouses[0]
	if err := w.Release(sku, qty); err != nil {
		return err
	}

	logctx.FromOr(ctx, s.log).Info("stock_released",
		observability.F("sku", sku),
		observability.F("qty", qty),
		observability.F("warehouse", w.Name),
	)
	return nil
}

// TotalStock sums the available quantity for a SKU across all warehouses.
func (s *Service) TotalStock(sku string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := 0
	for _, w := range s.warehouses {
		sum += w.Stock(sku)
	}
	return sum
}
