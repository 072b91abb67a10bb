package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

type ChargeResult struct {
	Success       bool
	TransactionID string
	Message       string
}

type RefundResult struct {
	Success bool
	Message string
}

// Gateway is the outbound port to the payment provider. Implementations must
// be substitutable (mock vs. real) behind this contract.
type Gateway interface {
	Charge(ctx context.Context, p *Payment, details map[string]string) (ChargeResult, error)
	Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (RefundResult, error)
}
