package courier

import (
	"context"

	"github.com/google/uuid"
	domship "github.com/oaktree-io/storefront/internal/domain/shipment"
	"github.com/oaktree-io/storefront/internal/observability"
)

const componentCourier = "mock_courier"

// MockCourier hands out tracking numbers and reports every shipment as in
// transit.
type MockCourier struct {
	name string
	log  observability.Logger
}

func NewMockCourier(name string, logger observability.Logger) *MockCourier {
	if name == "" {
		name = "mock-courier"
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &MockCourier{
		name: name,
		log:  logger.With(observability.F("component", componentCourier)),
	}
}

func (c *MockCourier) CreateShipment(ctx context.Context, s *domship.Shipment) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	s.CourierName = c.name
	tn := "TRK-" + uuid.NewString()[:8]
	c.log.Info("shipment_created",
		observability.F("shipment_id", s.ID),
		observability.F("tracking_number", tn),
	)
	return tn, nil
}

func (c *MockCourier) Status(ctx context.Context, trackingNumber string) (domship.Status, error) {
	_ = trackingNumber

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	return domship.StatusInTransit, nil
}
