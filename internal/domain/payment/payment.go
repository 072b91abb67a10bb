package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("payment: amount must be zero or greater")
	ErrNoTransaction = errors.New("payment: no transaction to refund")
)

type Type string

const (
	TypeCard    Type = "card"
	TypeEWallet Type = "e_wallet"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

// Payment represents a single charge attempt for an order's total.
type Payment struct {
	ID            string
	Type          Type
	Amount        decimal.Decimal
	Status        Status
	TransactionID string
	PaidAt        time.Time
}

func New(id string, t Type, amount decimal.Decimal) (*Payment, error) {
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	return &Payment{
		ID:     id,
		Type:   t,
		Amount: amount,
		Status: StatusPending,
	}, nil
}

func (p *Payment) MarkSucceeded(transactionID string, at time.Time) {
	p.Status = StatusSuccess
	p.TransactionID = transactionID
	p.PaidAt = at
}

func (p *Payment) MarkFailed() {
	p.Status = StatusFailed
}

// MarkRefunded fails when the payment never produced a transaction.
func (p *Payment) MarkRefunded() error {
	if p.TransactionID == "" {
		return ErrNoTransaction
	}
	p.Status = StatusRefunded
	return nil
}

func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
