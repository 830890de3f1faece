package store

import (
	"context"
	"errors"

	"github.com/dukapos/backend/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrStaleDocument is returned when a guarded state transition finds the
// document no longer in the expected state (e.g. a concurrent submit won).
var ErrStaleDocument = errors.New("document not in expected state")

// ChannelStore reads payment channels and their per-company account
// mappings. Channels are returned in creation order; resolution takes the
// first match.
type ChannelStore interface {
	ListEnabledPhoneChannels(ctx context.Context) ([]models.PaymentChannel, error)
	// GetDefaultAccount returns the ledger account mapped for the channel
	// and company, or ErrNotFound when no mapping row exists.
	GetDefaultAccount(ctx context.Context, channel, company string) (string, error)
	ListChannelAccounts(ctx context.Context, channel string) ([]models.ChannelAccount, error)
}

// ProviderStore reads per-company M-Pesa provider configs.
type ProviderStore interface {
	// GetConfigForCompany returns the company's provider config, ordered by
	// name so resolution is deterministic when several exist. ErrNotFound
	// when the company has none.
	GetConfigForCompany(ctx context.Context, company string) (*models.ProviderConfig, error)
	ListConfigs(ctx context.Context) ([]models.ProviderConfig, error)
}

// GatewayStore reads payment gateway accounts.
type GatewayStore interface {
	// GetByGateway returns the account for an exact gateway name.
	GetByGateway(ctx context.Context, gateway string) (*models.GatewayAccount, error)
	// FindByGatewayPattern returns the first account whose gateway name
	// contains the given brand, case-insensitively.
	FindByGatewayPattern(ctx context.Context, brand string) (*models.GatewayAccount, error)
	ListByGatewayPattern(ctx context.Context, brand string) ([]models.GatewayAccount, error)
}

// ReceiptStore reads and mutates M-Pesa C2B receipts. Submit is a guarded
// draft-to-submitted transition; LinkInvoice is a field-level update that
// bypasses the lifecycle entirely.
type ReceiptStore interface {
	GetReceipt(ctx context.Context, name string) (*models.Receipt, error)
	CountDraftByShortcode(ctx context.Context, shortcode string) (int, error)
	ListDraftByShortcode(ctx context.Context, shortcode string, limit int) ([]models.Receipt, error)
	// AssignParty persists the customer and mode of payment onto a draft
	// receipt without creating any derived payment entry.
	AssignParty(ctx context.Context, name, customer, modeOfPayment string) error
	// SubmitReceipt transitions the receipt from draft to submitted. Returns
	// ErrStaleDocument when the receipt is no longer draft.
	SubmitReceipt(ctx context.Context, name string) error
	LinkInvoice(ctx context.Context, name, invoice string) error
}

// InvoiceStore reads and mutates POS invoices.
type InvoiceStore interface {
	GetInvoice(ctx context.Context, name string) (*models.Invoice, error)
	// SaveInvoice persists payment lines appended since the last load and
	// recomputes the paid and outstanding amounts. The refreshed totals are
	// written back onto the passed document.
	SaveInvoice(ctx context.Context, inv *models.Invoice) error
	// SubmitInvoice transitions a draft invoice to submitted. The
	// outstanding amount must be non-negative.
	SubmitInvoice(ctx context.Context, inv *models.Invoice) error
}

// CustomerStore resolves customer contact details.
type CustomerStore interface {
	// GetCustomerPhone walks contact mobile, contact phone, then the
	// customer's own mobile field. Empty string when nothing is found.
	GetCustomerPhone(ctx context.Context, customer string) (string, error)
}

// PaymentRequestStore persists payment requests.
type PaymentRequestStore interface {
	// CreatePaymentRequest inserts the request already in submitted state.
	CreatePaymentRequest(ctx context.Context, pr *models.PaymentRequest) error
	GetPaymentRequest(ctx context.Context, name string) (*models.PaymentRequest, error)
}
