package order

import (
	"errors"
	"time"

	"github.com/oaktree-io/storefront/internal/domain/payment"
	"github.com/oaktree-io/storefront/internal/domain/shipment"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("order: not found")
	ErrConflict          = errors.New("order: already exists")
	ErrInvalidTransition = errors.New("order: invalid status transition")
)

type Status string

const (
	StatusNew        Status = "new"
	StatusPlaced     Status = "placed"
	StatusPaid       Status = "paid"
	StatusInDelivery Status = "in_delivery"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Item is a line of an order with the unit price snapshotted at placement
// time; later catalog price changes do not affect it.
type Item struct {
	ProductID string
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (it Item) Subtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Order owns its line items and at most one payment and one shipment, each
// attached once and never replaced. Customer and items are fixed after
// placement; only status, payment, and shipment mutate afterwards.
type Order struct {
	ID         string
	CustomerID string
	Items      []Item
	Total      decimal.Decimal
	Status     Status
	Payment    *payment.Payment
	Shipment   *shipment.Shipment
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func New(id, customerID string) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Total:      decimal.Zero,
		Status:     StatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (o *Order) AddItem(it Item) {
	o.Items = append(o.Items, it)
	o.Total = o.Total.Add(it.Subtotal())
}

func (o *Order) Place() error {
	if o.Status != StatusNew {
		return ErrInvalidTransition
	}
	o.Status = StatusPlaced
	o.touch()
	return nil
}

// MarkPaid attaches the successful payment and moves the order to paid.
func (o *Order) MarkPaid(p *payment.Payment) error {
	if o.Status != StatusPlaced {
		return ErrInvalidTransition
	}
	o.Payment = p
	o.Status = StatusPaid
	o.touch()
	return nil
}

// BeginDelivery attaches the dispatched shipment and moves the order into
// delivery.
func (o *Order) BeginDelivery(s *shipment.Shipment) error {
	if o.Status != StatusPaid {
		return ErrInvalidTransition
	}
	o.Shipment = s
	o.Status = StatusInDelivery
	o.touch()
	return nil
}

func (o *Order) Complete() error {
	if o.Status != StatusInDelivery {
		return ErrInvalidTransition
	}
	o.Status = StatusCompleted
	o.touch()
	return nil
}

// CanCancel reports whether cancellation is permitted; once paid, the order
// can no longer be cancelled.
func (o *Order) CanCancel() bool {
	return o.Status == StatusNew || o.Status == StatusPlaced
}

func (o *Order) Cancel() error {
	if !o.CanCancel() {
		return ErrInvalidTransition
	}
	o.Status = StatusCancelled
	o.touch()
	return nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = make([]Item, len(o.Items))
	copy(clone.Items, o.Items)
	clone.Payment = o.Payment.Clone()
	clone.Shipment = o.Shipment.Clone()
	return &clone
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}
