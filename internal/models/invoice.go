package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentLine is one payment row on a POS invoice.
type PaymentLine struct {
	ID            int             `json:"id,omitempty" db:"id"`
	Invoice       string          `json:"invoice" db:"invoice"`
	ModeOfPayment string          `json:"mode_of_payment" db:"mode_of_payment"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Account       string          `json:"account" db:"account"`
	Type          string          `json:"type" db:"type"`
	ReferenceNo   string          `json:"reference_no" db:"reference_no"`
}

// Invoice is a POS invoice with its ordered payment lines. Payment lines
// appended in memory are persisted only on Save; Save also recomputes the
// paid and outstanding amounts from the line set.
type Invoice struct {
	Name              string          `json:"name" db:"name"`
	Company           string          `json:"company" db:"company"`
	Customer          string          `json:"customer" db:"customer"`
	Currency          string          `json:"currency" db:"currency"`
	GrandTotal        decimal.Decimal `json:"grand_total" db:"grand_total"`
	PaidAmount        decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount" db:"outstanding_amount"`
	DocStatus         DocStatus       `json:"docstatus" db:"docstatus"`
	Payments          []PaymentLine   `json:"payments"`
	CreatedAt         time.Time       `json:"creation" db:"created_at"`
	UpdatedAt         time.Time       `json:"modified" db:"updated_at"`
}

// AppendPayment adds a payment line to the in-memory document.
func (inv *Invoice) AppendPayment(line PaymentLine) {
	line.Invoice = inv.Name
	inv.Payments = append(inv.Payments, line)
}

// IsCancelled reports whether the invoice can no longer take payments.
func (inv *Invoice) IsCancelled() bool {
	return inv.DocStatus == DocStatusCancelled
}
