package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocStatus tracks the lifecycle of a document.
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

// Receipt is an inbound M-Pesa C2B transaction awaiting reconciliation
// against a POS invoice. Created by the C2B callback listener; this service
// only mutates it while in draft state. Once submitted the record is
// immutable except for the POSInvoice link, which is set with a field-level
// update so lifecycle hooks do not re-fire.
type Receipt struct {
	Name              string          `json:"name" db:"name"`
	FullName          string          `json:"full_name" db:"full_name"`
	TransAmount       decimal.Decimal `json:"transamount" db:"transamount"`
	TransID           string          `json:"transid" db:"transid"`
	MSISDN            string          `json:"msisdn" db:"msisdn"`
	PostingDate       time.Time       `json:"posting_date" db:"posting_date"`
	BillRefNumber     string          `json:"billrefnumber" db:"billrefnumber"`
	BusinessShortcode string          `json:"businessshortcode" db:"businessshortcode"`
	DocStatus         DocStatus       `json:"docstatus" db:"docstatus"`
	Customer          string          `json:"customer,omitempty" db:"customer"`
	ModeOfPayment     string          `json:"mode_of_payment,omitempty" db:"mode_of_payment"`
	POSInvoice        string          `json:"pos_invoice,omitempty" db:"pos_invoice"`
	CreatedAt         time.Time       `json:"creation" db:"created_at"`
}

// IsDraft reports whether the receipt can still be reconciled.
func (r *Receipt) IsDraft() bool {
	return r.DocStatus == DocStatusDraft
}
