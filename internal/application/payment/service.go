package payment

import (
	"context"
	"time"

	dompay "github.com/oaktree-io/storefront/internal/domain/payment"
	"github.com/oaktree-io/storefront/internal/observability"
	"github.com/oaktree-io/storefront/internal/observability/logctx"
)

const (
	componentPayment = "payment_service"
	gatewayPeer      = "payment_gateway"
)

// Service drives charge and refund attempts through the payment gateway and
// keeps the payment entity's state in line with the gateway outcome.
type Service struct {
	gateway dompay.Gateway
	log     observability.Logger

	extCounter   observability.Counter   // external_requests_total{peer,endpoint,outcome}
	extHistogram observability.Histogram // external_request_duration_seconds{peer,endpoint}
}

func NewService(gateway dompay.Gateway, tel observability.Observability) *Service {
	baseLog := observability.NopLogger()
	metrics := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger()
		metrics = tel.Metrics()
	}

	return &Service{
		gateway:      gateway,
		log:          baseLog.With(observability.F("component", componentPayment)),
		extCounter:   metrics.Counter(observability.MExternalRequests),
		extHistogram: metrics.Histogram(observability.MExternalRequestDuration),
	}
}

// Charge delegates to the gateway and records the outcome on the payment.
// The gateway result is returned unchanged so the caller can branch on it.
func (s *Service) Charge(ctx context.Context, p *dompay.Payment, details map[string]string) (dompay.ChargeResult, error) {
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("payment_id", p.ID),
		observability.F("amount", p.Amount.String()),
	)

	start := time.Now()
	res, err := s.gateway.Charge(ctx, p, details)
	s.observeGateway("charge", start, err == nil && res.Success)

	if err != nil {
		p.MarkFailed()
		logger.Error("gateway_charge_error", observability.F("error", err.Error()))
		return res, err
	}

	if res.Success {
		p.MarkSucceeded(res.TransactionID, time.Now().UTC())
		logger.Info("payment_charged",
			observability.F("transaction_id", res.TransactionID),
		)
	} else {
		p.MarkFailed()
		logger.Warn("payment_declined",
			observability.F("message", res.Message),
		)
	}
	return res, nil
}

// Refund fails with ErrNoTransaction when the payment was never successfully
// charged; otherwise it marks the payment refunded and delegates to the
// gateway.
func (s *Service) Refund(ctx context.Context, p *dompay.Payment) (dompay.RefundResult, error) {
	if err := p.MarkRefunded(); err != nil {
		return dompay.RefundResult{}, err
	}

	start := time.Now()
	res, err := s.gateway.Refund(ctx, p.TransactionID, p.Amount)
	s.observeGateway("refund", start, err == nil && res.Success)
	if err != nil {
		return res, err
	}

	logctx.FromOr(ctx, s.log).Info("payment_refunded",
		observability.F("payment_id", p.ID),
		observability.F("transaction_id", p.TransactionID),
	)
	return res, nil
}

func (s *Service) observeGateway(endpoint string, start time.Time, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	if s.extCounter != nil {
		s.extCounter.Add(1,
			observability.L("peer", gatewayPeer),
			observability.L("endpoint", endpoint),
			observability.L("outcome", outcome),
		)
	}
	if s.extHistogram != nil {
		s.extHistogram.Observe(time.Since(start).Seconds(),
			observability.L("peer", gatewayPeer),
			observability.L("endpoint", endpoint),
		)
	}
}
