package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dukapos/backend/internal/models"
	"github.com/dukapos/backend/internal/store"
	"github.com/shopspring/decimal"
)

// Rejection reasons for receipts dropped during reconciliation.
const (
	RejectNotFound          = "receipt not found"
	RejectNotDraft          = "receipt is not in draft state"
	RejectShortcodeMismatch = "business shortcode does not match company settings"
	RejectNonPositiveAmount = "amount is not positive"
)

var (
	ErrNoPaymentsSelected = errors.New("no mpesa payments selected")
	ErrInvoiceCancelled   = errors.New("cannot add payments to a cancelled invoice")
	ErrNoValidPayments    = errors.New("no valid mpesa payments processed")
)

// ChannelNotConfiguredError indicates the invoice's company has no usable
// Phone-type payment channel.
type ChannelNotConfiguredError struct{ Company string }

func (e *ChannelNotConfiguredError) Error() string {
	return fmt.Sprintf("no Phone type payment channel configured for %s", e.Company)
}

// ProviderNotConfiguredError indicates the invoice's company has no M-Pesa
// provider config.
type ProviderNotConfiguredError struct{ Company string }

func (e *ProviderNotConfiguredError) Error() string {
	return fmt.Sprintf("no mpesa settings found for %s", e.Company)
}

// ReconcileRequest selects receipts to book against one invoice.
type ReconcileRequest struct {
	MpesaPayments string `validate:"required"` // comma-separated receipt names
	Customer      string
	POSInvoice    string `validate:"required"`
	AutoSave      bool
	AutoSubmit    bool
}

// PaymentAdded is one payment line appended to the invoice.
type PaymentAdded struct {
	ModeOfPayment string          `json:"mode_of_payment"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference"`
}

// ReceiptResult summarizes one accepted receipt.
type ReceiptResult struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// RejectedReceipt records a receipt dropped from the batch and why. The
// original host integration dropped these silently; the reason is surfaced
// so the operator can see what happened to each selection.
type RejectedReceipt struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ReconcileResult is the full reconciliation outcome.
type ReconcileResult struct {
	Success       bool              `json:"success"`
	PaymentsAdded []PaymentAdded    `json:"payments_added"`
	MpesaPayments []ReceiptResult   `json:"mpesa_payments"`
	Rejected      []RejectedReceipt `json:"rejected,omitempty"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Saved         bool              `json:"saved,omitempty"`
	Submitted     bool              `json:"submitted,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// ReconcileService books pending M-Pesa receipts against an open POS
// invoice: validate each receipt, finalize it, append a payment line, link
// it back to the invoice.
type ReconcileService struct {
	receipts store.ReceiptStore
	invoices store.InvoiceStore
	channels store.ChannelStore
	cfgSvc   *ConfigService
}

func NewReconcileService(receipts store.ReceiptStore, invoices store.InvoiceStore, channels store.ChannelStore, cfgSvc *ConfigService) *ReconcileService {
	return &ReconcileService{
		receipts: receipts,
		invoices: invoices,
		channels: channels,
		cfgSvc:   cfgSvc,
	}
}

// Reconcile processes the selected receipts against the invoice.
//
// Receipts are processed independently; one receipt's rejection never
// aborts the others. A batch where every receipt is rejected fails hard
// with zero side effects, since validation precedes any mutation.
//
// When AutoSave is set the invoice save is best-effort: a failure is logged
// and reported in the Error field while already-finalized receipts stay
// finalized. The POS re-saves the invoice on its own in that case; rolling
// receipts back would force the operator to re-process them.
func (s *ReconcileService) Reconcile(ctx context.Context, req *ReconcileRequest) (*ReconcileResult, error) {
	names := splitReceiptNames(req.MpesaPayments)
	if len(names) == 0 {
		return nil, ErrNoPaymentsSelected
	}

	inv, err := s.invoices.GetInvoice(ctx, req.POSInvoice)
	if err != nil {
		return nil, fmt.Errorf("load invoice %s: %w", req.POSInvoice, err)
	}
	if inv.IsCancelled() {
		return nil, ErrInvoiceCancelled
	}

	channel, err := s.cfgSvc.ResolvePaymentChannel(ctx, inv.Company)
	if err != nil {
		return nil, err
	}
	if channel == "" {
		return nil, &ChannelNotConfiguredError{Company: inv.Company}
	}

	shortcode, err := s.cfgSvc.ResolveShortcode(ctx, inv.Company)
	if err != nil {
		return nil, err
	}
	if shortcode == "" {
		return nil, &ProviderNotConfiguredError{Company: inv.Company}
	}

	account, err := s.channels.GetDefaultAccount(ctx, channel, inv.Company)
	if err != nil {
		return nil, fmt.Errorf("channel account for %s/%s: %w", channel, inv.Company, err)
	}

	result := &ReconcileResult{TotalAmount: decimal.Zero}

	for _, name := range names {
		receipt, err := s.receipts.GetReceipt(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			result.Rejected = append(result.Rejected, RejectedReceipt{Name: name, Reason: RejectNotFound})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load receipt %s: %w", name, err)
		}

		if reason := validateReceipt(receipt, shortcode); reason != "" {
			result.Rejected = append(result.Rejected, RejectedReceipt{Name: name, Reason: reason})
			continue
		}

		if err := s.acceptReceipt(ctx, receipt, req.Customer, channel); err != nil {
			return nil, fmt.Errorf("finalize receipt %s: %w", name, err)
		}

		inv.AppendPayment(models.PaymentLine{
			ModeOfPayment: channel,
			Amount:        receipt.TransAmount,
			Account:       account,
			Type:          "Phone",
			ReferenceNo:   receipt.Name,
		})

		if err := s.receipts.LinkInvoice(ctx, receipt.Name, inv.Name); err != nil {
			return nil, fmt.Errorf("link receipt %s: %w", name, err)
		}

		result.PaymentsAdded = append(result.PaymentsAdded, PaymentAdded{
			ModeOfPayment: channel,
			Amount:        receipt.TransAmount,
			Reference:     receipt.Name,
		})
		result.MpesaPayments = append(result.MpesaPayments, ReceiptResult{
			Name:   receipt.Name,
			Amount: receipt.TransAmount,
		})
		result.TotalAmount = result.TotalAmount.Add(receipt.TransAmount)
	}

	if len(result.PaymentsAdded) == 0 {
		return nil, ErrNoValidPayments
	}

	result.Success = true

	if req.AutoSave {
		s.saveAndMaybeSubmit(ctx, inv, req.AutoSubmit, result)
	}

	return result, nil
}

// acceptReceipt assigns the customer and channel onto the draft receipt and
// submits it. AssignParty never creates a derived payment entry; booking
// happens on the invoice side only.
func (s *ReconcileService) acceptReceipt(ctx context.Context, receipt *models.Receipt, customer, channel string) error {
	if err := s.receipts.AssignParty(ctx, receipt.Name, customer, channel); err != nil {
		return err
	}
	return s.receipts.SubmitReceipt(ctx, receipt.Name)
}

// saveAndMaybeSubmit persists the invoice and, when requested and fully
// paid, submits it. Failures are reported on the result, not returned:
// receipts already finalized stay finalized.
func (s *ReconcileService) saveAndMaybeSubmit(ctx context.Context, inv *models.Invoice, autoSubmit bool, result *ReconcileResult) {
	if err := s.invoices.SaveInvoice(ctx, inv); err != nil {
		log.Printf("[QuickPay] invoice %s save failed after reconciliation: %v", inv.Name, err)
		result.Error = err.Error()
		return
	}
	result.Saved = true

	if !autoSubmit || inv.DocStatus != models.DocStatusDraft {
		return
	}
	if inv.OutstandingAmount.GreaterThan(decimal.Zero) {
		return
	}
	if err := s.invoices.SubmitInvoice(ctx, inv); err != nil {
		log.Printf("[QuickPay] invoice %s submit failed after reconciliation: %v", inv.Name, err)
		result.Error = err.Error()
		return
	}
	result.Submitted = true
}

func validateReceipt(r *models.Receipt, shortcode string) string {
	if !r.IsDraft() {
		return RejectNotDraft
	}
	if strings.TrimSpace(r.BusinessShortcode) != shortcode {
		return RejectShortcodeMismatch
	}
	if !r.TransAmount.GreaterThan(decimal.Zero) {
		return RejectNonPositiveAmount
	}
	return ""
}

func splitReceiptNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
