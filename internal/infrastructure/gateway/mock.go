package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"
	dompay "github.com/oaktree-io/storefront/internal/domain/payment"
	"github.com/oaktree-io/storefront/internal/observability"
	"github.com/shopspring/decimal"
)

const componentGateway = "mock_payment_gateway"

// MockGateway approves every charge and refund. Declines can be forced for
// tests and demos via DeclineAll.
type MockGateway struct {
	mu         sync.Mutex
	declineAll bool
	log        observability.Logger
}

func NewMockGateway(logger observability.Logger) *MockGateway {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &MockGateway{
		log: logger.With(observability.F("component", componentGateway)),
	}
}

// DeclineAll toggles forced declines for subsequent charges.
func (g *MockGateway) DeclineAll(v bool) {
	g.mu.Lock()
	g.declineAll = v
	g.mu.Unlock()
}

func (g *MockGateway) Charge(ctx context.Context, p *dompay.Payment, details map[string]string) (dompay.ChargeResult, error) {
	_ = details

	select {
	case <-ctx.Done():
		return dompay.ChargeResult{}, ctx.Err()
	default:
	}

	g.mu.Lock()
	decline := g.declineAll
	g.mu.Unlock()

	if decline {
		return dompay.ChargeResult{Success: false, Message: "card declined"}, nil
	}

	tx := "TX-" + uuid.NewString()[:8]
	g.log.Info("charge_approved",
		observability.F("payment_id", p.ID),
		observability.F("amount", p.Amount.String()),
		observability.F("transaction_id", tx),
	)
	return dompay.ChargeResult{Success: true, TransactionID: tx, Message: "OK"}, nil
}

func (g *MockGateway) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (dompay.RefundResult, error) {
	select {
	case <-ctx.Done():
		return dompay.RefundResult{}, ctx.Err()
	default:
	}

	g.log.Info("refund_approved",
		observability.F("transaction_id", transactionID),
		observability.F("amount", amount.String()),
	)
	return dompay.RefundResult{Success: true, Message: "refunded"}, nil
}
