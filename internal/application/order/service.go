package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oaktree-io/storefront/internal/domain/cart"
	domain "github.com/oaktree-io/storefront/internal/domain/order"
	dompay "github.com/oaktree-io/storefront/internal/domain/payment"
	domship "github.com/oaktree-io/storefront/internal/domain/shipment"
	"github.com/oaktree-io/storefront/internal/observability"
	"github.com/oaktree-io/storefront/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyCart         = errors.New("order: cart has no items")
	ErrInsufficientStock = errors.New("order: insufficient stock")
	ErrPaymentDeclined   = errors.New("order: payment declined")
	ErrNotPaid           = errors.New("order: order is not paid")
	ErrCancelNotAllowed  = errors.New("order: cancellation not permitted in current status")
)

const (
	orderService  = "order-service"
	spanPrefix    = "UC."
	useCaseCreate = "order.create_from_cart"
	useCasePay    = "order.pay"
	useCaseShip   = "order.ship"
	useCaseCancel = "order.cancel"
)

// Service orchestrates the order lifecycle: all-or-nothing stock reservation,
// payment with stock compensation on decline, shipment dispatch, completion,
// and cancellation.
type Service struct {
	repo      domain.Repository
	customers CustomerDirectory
	inventory Inventory
	payments  Payments
	shipments Shipments
	ids       IDGenerator
	tel       observability.Observability

	log          observability.Logger
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

func NewService(
	repo domain.Repository,
	customers CustomerDirectory,
	inventory Inventory,
	payments Payments,
	shipments Shipments,
	ids IDGenerator,
	tel observability.Observability,
) *Service {
	baseLog := observability.NopLogger()
	metrics := observability.NopMetrics()
	if tel != nil {
		baseLog = tel.Logger()
		metrics = tel.Metrics()
	}
	baseLog = baseLog.With(observability.F("service", orderService))

	return &Service{
		repo:         repo,
		customers:    customers,
		inventory:    inventory,
		payments:     payments,
		shipments:    shipments,
		ids:          ids,
		tel:          tel,
		log:          baseLog,
		reqCounter:   metrics.Counter(observability.MUsecaseRequests),
		durHistogram: metrics.Histogram(observability.MUsecaseDuration),
	}
}

func (s *Service) tracer() observability.Tracer {
	if s.tel != nil {
		return s.tel.Tracer()
	}
	return observability.NopTracer()
}

// CreateOrderFromCart reserves stock for every cart line and places the
// order. Reservation is all-or-nothing: the first line that cannot be
// reserved releases every line reserved so far and aborts. The cart is not
// mutated; clearing it is the caller's responsibility.
func (s *Service) CreateOrderFromCart(ctx context.Context, crt *cart.Cart) (_ *domain.Order, err error) {
	logger := logctx.FromOr(ctx, s.log).With(observability.F("use_case", useCaseCreate))

	ctx, span := s.tracer().Start(ctx, spanPrefix+"CreateOrderFromCart",
		attribute.String("use_case", useCaseCreate),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"
	var orderID string

	defer func() {
		lat := time.Since(start).Seconds()
		s.observe(useCaseCreate, outcome, lat)

		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if orderID != "" {
			fields = append(fields, observability.F("order_id", orderID))
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	if crt == nil || crt.IsEmpty() {
		outcome, statusText = "error", "CART_EMPTY"
		return nil, ErrEmptyCart
	}

	ord := domain.New(s.ids.NewID(), crt.CustomerID)
	orderID = ord.ID
	span.SetAttributes(
		attribute.String("order.id", ord.ID),
		attribute.String("order.customer_id", crt.CustomerID),
	)

	for _, ci := range crt.Items() {
		if rerr := s.inventory.Reserve(ctx, ci.Product.SKU, ci.Quantity); rerr != nil {
			s.releaseLines(ctx, ord)
			outcome, statusText = "error", "INSUFFICIENT_STOCK"
			return nil, fmt.Errorf("%w: sku %s qty %d", ErrInsufficientStock, ci.Product.SKU, ci.Quantity)
		}
		ord.AddItem(domain.Item{
			ProductID: ci.Product.ID,
			SKU:       ci.Product.SKU,
			Name:      ci.Product.Name,
			Quantity:  ci.Quantity,
			UnitPrice: ci.Product.Price,
		})
	}

	if err = ord.Place(); err != nil {
		s.releaseLines(ctx, ord)
		outcome, statusText = "error", "STATE_TRANSITION_FAILED"
		return nil, err
	}

	if err = s.repo.Insert(ctx, ord); err != nil {
		s.releaseLines(ctx, ord)
		outcome, statusText = "error", "REPO_INSERT_FAILED"
		return nil, fmt.Errorf("order: insert: %w", err)
	}

	span.SetAttributes(attribute.String("order.total", ord.Total.String()))
	return ord, nil
}

// PayOrder runs a single charge attempt for the order's total. On success the
// payment is attached, the order moves to paid, and the customer's loyalty
// account is credited with one point per whole currency unit. On decline all
// reserved stock is released and the order stays placed, so the call is
// retryable.
func (s *Service) PayOrder(ctx context.Context, orderID string, ptype dompay.Type, details map[string]string) (_ *domain.Order, err error) {
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("use_case", useCasePay),
		observability.F("order_id", orderID),
	)

	ctx, span := s.tracer().Start(ctx, spanPrefix+"PayOrder",
		attribute.String("use_case", useCasePay),
		attribute.String("order.id", orderID),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	defer func() {
		lat := time.Since(start).Seconds()
		s.observe(useCasePay, outcome, lat)

		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	ord, err := s.repo.Get(ctx, orderID)
	if err != nil {
		outcome, statusText = "error", "ORDER_LOOKUP_FAILED"
		return nil, err
	}
	if ord.Status != domain.StatusPlaced {
		outcome, statusText = "error", "ORDER_NOT_PLACED"
		return nil, domain.ErrInvalidTransition
	}

	pay, err := dompay.New(s.ids.NewID(), ptype, ord.Total)
	if err != nil {
		outcome, statusText = "error", "PAYMENT_CONSTRUCTION_FAILED"
		return nil, err
	}

	res, chargeErr := s.payments.Charge(ctx, pay, details)
	if chargeErr != nil || !res.Success {
		// Compensate the reservation made at placement; the order stays
		// placed and a later PayOrder may retry.
		s.releaseLines(ctx, ord)
		outcome, statusText = "error", "PAYMENT_DECLINED"
		if chargeErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrPaymentDeclined, chargeErr)
		}
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, res.Message)
	}

	if err = ord.MarkPaid(pay); err != nil {
		outcome, statusText = "error", "STATE_TRANSITION_FAILED"
		return nil, err
	}

	s.creditLoyalty(ctx, ord, logger)

	if err = s.repo.Update(ctx, ord); err != nil {
		outcome, statusText = "error", "ORDER_UPDATE_FAILED"
		return nil, fmt.Errorf("order: update: %w", err)
	}

	span.SetAttributes(attribute.String("payment.transaction_id", pay.TransactionID))
	return ord, nil
}

// ShipOrder dispatches a shipment to the customer's address. Only paid orders
// ship.
func (s *Service) ShipOrder(ctx context.Context, orderID string) (_ *domain.Order, err error) {
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("use_case", useCaseShip),
		observability.F("order_id", orderID),
	)

	ctx, span := s.tracer().Start(ctx, spanPrefix+"ShipOrder",
		attribute.String("use_case", useCaseShip),
		attribute.String("order.id", orderID),
	)
	start := time.Now()
	outcome := "success"

	defer func() {
		s.observe(useCaseShip, outcome, time.Since(start).Seconds())
		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "OK")
			}
			span.End()
		}
	}()

	ord, err := s.repo.Get(ctx, orderID)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	if ord.Status != domain.StatusPaid {
		outcome = "error"
		return nil, ErrNotPaid
	}

	cust, err := s.customers.Get(ctx, ord.CustomerID)
	if err != nil {
		outcome = "error"
		return nil, fmt.Errorf("order: customer lookup: %w", err)
	}

	sh, err := domship.New(s.ids.NewID(), cust.Address)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	if err = s.shipments.Dispatch(ctx, sh); err != nil {
		outcome = "error"
		return nil, fmt.Errorf("order: dispatch: %w", err)
	}

	if err = ord.BeginDelivery(sh); err != nil {
		outcome = "error"
		return nil, err
	}
	if err = s.repo.Update(ctx, ord); err != nil {
		outcome = "error"
		return nil, fmt.Errorf("order: update: %w", err)
	}

	logger.Info("order_shipped",
		observability.F("tracking_number", sh.TrackingNumber),
	)
	return ord, nil
}

// CompleteOrder moves an in-delivery order to completed. Any other status is
// silently left unchanged.
func (s *Service) CompleteOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	ord, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if cerr := ord.Complete(); cerr != nil {
		return ord, nil
	}

	if err := s.repo.Update(ctx, ord); err != nil {
		return nil, fmt.Errorf("order: update: %w", err)
	}

	logctx.FromOr(ctx, s.log).Info("order_completed",
		observability.F("order_id", ord.ID),
	)
	return ord, nil
}

// CancelOrder releases all reserved stock and cancels the order. Permitted
// only before payment.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (_ *domain.Order, err error) {
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("use_case", useCaseCancel),
		observability.F("order_id", orderID),
	)
	start := time.Now()
	outcome := "success"
	defer func() { s.observe(useCaseCancel, outcome, time.Since(start).Seconds()) }()

	ord, err := s.repo.Get(ctx, orderID)
	if err != nil {
		outcome = "error"
		return nil, err
	}
	if !ord.CanCancel() {
		outcome = "error"
		return nil, fmt.Errorf("%w: status %s", ErrCancelNotAllowed, ord.Status)
	}

	s.releaseLines(ctx, ord)
	if err = ord.Cancel(); err != nil {
		outcome = "error"
		return nil, err
	}
	if err = s.repo.Update(ctx, ord); err != nil {
		outcome = "error"
		return nil, fmt.Errorf("order: update: %w", err)
	}

	logger.Info("order_cancelled")
	return ord, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// releaseLines compensates the reservation for every line of the order.
// Release cannot fail in this design; errors are logged and not retried.
func (s *Service) releaseLines(ctx context.Context, ord *domain.Order) {
	for _, it := range ord.Items {
		if err := s.inventory.Release(ctx, it.SKU, it.Quantity); err != nil {
			logctx.FromOr(ctx, s.log).Warn("stock_release_failed",
				observability.F("order_id", ord.ID),
				observability.F("sku", it.SKU),
				observability.F("error", err.Error()),
			)
		}
	}
}

// creditLoyalty grants one point per whole currency unit of the total.
// Best-effort: a missing customer record does not undo a successful charge.
func (s *Service) creditLoyalty(ctx context.Context, ord *domain.Order, logger observability.Logger) {
	cust, err := s.customers.Get(ctx, ord.CustomerID)
	if err != nil {
		logger.Warn("loyalty_credit_skipped",
			observability.F("customer_id", ord.CustomerID),
			observability.F("error", err.Error()),
		)
		return
	}
	if cust.Loyalty == nil {
		return
	}

	points := int(ord.Total.IntPart())
	cust.Loyalty.AddPoints(points)
	if err := s.customers.Update(ctx, cust); err != nil {
		logger.Warn("loyalty_credit_failed",
			observability.F("customer_id", cust.ID),
			observability.F("error", err.Error()),
		)
		return
	}
	logger.Info("loyalty_credited",
		observability.F("customer_id", cust.ID),
		observability.F("points", points),
	)
}

func (s *Service) observe(useCase, outcome string, latencySeconds float64) {
	if s.reqCounter != nil {
		s.reqCounter.Add(1,
			observability.L("use_case", useCase),
			observability.L("outcome", outcome),
		)
	}
	if s.durHistogram != nil {
		s.durHistogram.Observe(latencySeconds,
			observability.L("use_case", useCase),
		)
	}
}
