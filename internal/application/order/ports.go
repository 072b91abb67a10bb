package order

import (
	"context"

	"github.com/oaktree-io/storefront/internal/domain/customer"
	dompay "github.com/oaktree-io/storefront/internal/domain/payment"
	domship "github.com/oaktree-io/storefront/internal/domain/shipment"
)

type IDGenerator interface {
	NewID() string
}

// Inventory is the coordinator port: full-quantity single-warehouse
// reservation and unconditional release.
type Inventory interface {
	Reserve(ctx context.Context, sku string, qty int) error
	Release(ctx context.Context, sku string, qty int) error
}

// Payments drives a charge attempt and mutates the payment entity's state.
type Payments interface {
	Charge(ctx context.Context, p *dompay.Payment, details map[string]string) (dompay.ChargeResult, error)
}

// Shipments dispatches a shipment through the courier integration.
type Shipments interface {
	Dispatch(ctx context.Context, s *domship.Shipment) error
}

// CustomerDirectory resolves customers for loyalty credit and shipping
// addresses.
type CustomerDirectory interface {
	Get(ctx context.Context, id string) (*customer.Customer, error)
	Update(ctx context.Context, c *customer.Customer) error
}
