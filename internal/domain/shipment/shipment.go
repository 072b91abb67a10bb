package shipment

import (
	"context"
	"errors"
	"time"
)

var ErrMissingAddress = errors.New("shipment: shipping address is required")

type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusReturned  Status = "returned"
)

type Shipment struct {
	ID                string
	Address           string
	Status            Status
	CourierName       string
	TrackingNumber    string
	EstimatedDelivery time.Time
}

func New(id, address string) (*Shipment, error) {
	if address == "" {
		return nil, ErrMissingAddress
	}
	return &Shipment{
		ID:      id,
		Address: address,
		Status:  StatusPending,
	}, nil
}

func (s *Shipment) Dispatched(trackingNumber string, eta time.Time) {
	s.TrackingNumber = trackingNumber
	s.Status = StatusInTransit
	s.EstimatedDelivery = eta
}

func (s *Shipment) Clone() *Shipment {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

// Courier is the outbound port to the carrier integration.
type Courier interface {
	CreateShipment(ctx context.Context, s *Shipment) (trackingNumber string, err error)
	Status(ctx context.Context, trackingNumber string) (Status, error)
}
