package shipment

import (
	"context"
	"time"

	domship "github.com/oaktree-io/storefront/internal/domain/shipment"
	"github.com/oaktree-io/storefront/internal/observability"
	"github.com/oaktree-io/storefront/internal/observability/logctx"
)

const (
	componentShipment = "shipment_service"
	courierPeer       = "courier"

	// DefaultDeliveryETA is the fixed business-rule offset between dispatch
	// and estimated delivery.
	DefaultDeliveryETA = 3 * 24 * time.Hour
)

// Service drives shipment creation through the courier integration.
type Service struct {
	courier domship.Courier
	eta     time.Duration
	log     observability.Logger

	extCounter   observability.Counter
	extHistogram observability.Histogram
}

func NewService(courier domship.Courier, eta time.Duration, tel observability.Observability) *Service {
	if eta <= 0 {
		eta = DefaultDeliveryETA
	}
	baseLog := observability.NopLogger()
	metrics := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger()
		metrics = tel.Metrics()
	}
	return &Service{
		courier:      courier,
		eta:          eta,
		log:          baseLog.With(observability.F("component", componentShipment)),
		extCounter:   metrics.Counter(observability.MExternalRequests),
		extHistogram: metrics.Histogram(observability.MExternalRequestDuration),
	}
}

// Dispatch requests a tracking number from the courier and moves the shipment
// into transit with an estimated delivery timestamp.
func (s *Service) Dispatch(ctx context.Context, sh *domship.Shipment) error {
	start := time.Now()
	trackingNumber, err := s.courier.CreateShipment(ctx, sh)
	s.observeCourier("create_shipment", start, err == nil)
	if err != nil {
		return err
	}

	sh.Dispatched(trackingNumber, time.Now().UTC().Add(s.eta))

	logctx.FromOr(ctx, s.log).Info("shipment_dispatched",
		observability.F("shipment_id", sh.ID),
		observability.F("tracking_number", sh.TrackingNumber),
		observability.F("estimated_delivery", sh.EstimatedDelivery),
	)
	return nil
}

// Track passes through to the courier's status lookup.
func (s *Service) Track(ctx context.Context, trackingNumber string) (domship.Status, error) {
	start := time.Now()
	status, err := s.courier.Status(ctx, trackingNumber)
	s.observeCourier("status", start, err == nil)
	return status, err
}

func (s *Service) observeCourier(endpoint string, start time.Time, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	if s.extCounter != nil {
		s.extCounter.Add(1,
			observability.L("peer", courierPeer),
			observability.L("endpoint", endpoint),
			observability.L("outcome", outcome),
		)
	}
	if s.extHistogram != nil {
		s.extHistogram.Observe(time.Since(start).Seconds(),
			observability.L("peer", courierPeer),
			observability.L("endpoint", endpoint),
		)
	}
}
