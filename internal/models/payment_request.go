package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest is a disposable inward payment ask pointing at a gateway
// account. Created once, submitted immediately, never mutated again.
type PaymentRequest struct {
	Name                  string          `json:"name" db:"name"`
	RequestType           string          `json:"payment_request_type" db:"request_type"`
	TransactionDate       time.Time       `json:"transaction_date" db:"transaction_date"`
	PhoneNumber           string          `json:"phone_number" db:"phone_number"`
	Company               string          `json:"company" db:"company"`
	PartyType             string          `json:"party_type" db:"party_type"`
	Party                 string          `json:"party" db:"party"`
	ReferenceDocType      string          `json:"reference_doctype" db:"reference_doctype"`
	ReferenceName         string          `json:"reference_name" db:"reference_name"`
	GrandTotal            decimal.Decimal `json:"grand_total" db:"grand_total"`
	OutstandingAmount     decimal.Decimal `json:"outstanding_amount" db:"outstanding_amount"`
	Currency              string          `json:"currency" db:"currency"`
	PaymentGatewayAccount string          `json:"payment_gateway_account" db:"gateway_account"`
	PaymentGateway        string          `json:"payment_gateway" db:"payment_gateway"`
	PaymentAccount        string          `json:"payment_account" db:"payment_account"`
	PaymentChannel        string          `json:"payment_channel" db:"payment_channel"`
	ModeOfPayment         string          `json:"mode_of_payment" db:"mode_of_payment"`
	Subject               string          `json:"subject" db:"subject"`
	Message               string          `json:"message" db:"message"`
	MuteEmail             bool            `json:"mute_email" db:"mute_email"`
	MakeSalesInvoice      bool            `json:"make_sales_invoice" db:"make_sales_invoice"`
	DocStatus             DocStatus       `json:"docstatus" db:"docstatus"`
}
