package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dukapos/backend/internal/config"
	"github.com/dukapos/backend/internal/models"
	"github.com/dukapos/backend/internal/store"
	"github.com/shopspring/decimal"
)

// PendingPayment is one unreconciled receipt as listed to the POS.
type PendingPayment struct {
	Name          string          `json:"name"`
	FullName      string          `json:"full_name"`
	TransAmount   decimal.Decimal `json:"transamount"`
	TransID       string          `json:"transid"`
	MSISDN        string          `json:"msisdn"`
	PostingDate   time.Time       `json:"posting_date"`
	BillRefNumber string          `json:"billrefnumber"`
	Creation      time.Time       `json:"creation"`
}

// PendingPaymentsResult carries the unfiltered draft total alongside the
// current page of matches. Count is independent of len(Payments): the POS
// treats Count as "how many exist" and Payments as the search page.
type PendingPaymentsResult struct {
	Count    int              `json:"count"`
	Payments []PendingPayment `json:"payments"`
}

// PaymentsService lists unreconciled receipts for a company.
type PaymentsService struct {
	receipts store.ReceiptStore
	cfgSvc   *ConfigService
	cfg      *config.QuickPayConfig
}

func NewPaymentsService(receipts store.ReceiptStore, cfgSvc *ConfigService, cfg *config.QuickPayConfig) *PaymentsService {
	return &PaymentsService{receipts: receipts, cfgSvc: cfgSvc, cfg: cfg}
}

// GetPendingPayments returns the draft receipt count for the company's
// shortcode and, when the search term is at least three runes, the
// most-recent drafts matching it. A missing company or unresolvable
// shortcode yields an empty result, not an error.
//
// The scan stops at PaymentScanLimit rows (100 by default); searches over a
// larger backlog miss older matches. Known limitation, kept from the
// original behavior.
func (s *PaymentsService) GetPendingPayments(ctx context.Context, company, search string) (*PendingPaymentsResult, error) {
	result := &PendingPaymentsResult{Payments: []PendingPayment{}}

	if company == "" {
		return result, nil
	}

	shortcode, err := s.cfgSvc.ResolveShortcode(ctx, company)
	if err != nil {
		return nil, err
	}
	if shortcode == "" {
		return result, nil
	}

	count, err := s.receipts.CountDraftByShortcode(ctx, shortcode)
	if err != nil {
		return nil, fmt.Errorf("count draft receipts: %w", err)
	}
	result.Count = count

	if utf8.RuneCountInString(search) < s.cfg.SearchMinLength {
		return result, nil
	}

	receipts, err := s.receipts.ListDraftByShortcode(ctx, shortcode, s.cfg.PaymentScanLimit)
	if err != nil {
		return nil, fmt.Errorf("list draft receipts: %w", err)
	}

	needle := strings.ToLower(search)
	for _, r := range receipts {
		if !matchesSearch(&r, needle) {
			continue
		}
		result.Payments = append(result.Payments, PendingPayment{
			Name:          r.Name,
			FullName:      r.FullName,
			TransAmount:   r.TransAmount,
			TransID:       r.TransID,
			MSISDN:        r.MSISDN,
			PostingDate:   r.PostingDate,
			BillRefNumber: r.BillRefNumber,
			Creation:      r.CreatedAt,
		})
	}

	return result, nil
}

// matchesSearch OR-matches the needle across payer name, transaction id,
// bill reference and phone, case-insensitively.
func matchesSearch(r *models.Receipt, needle string) bool {
	return strings.Contains(strings.ToLower(r.FullName), needle) ||
		strings.Contains(strings.ToLower(r.TransID), needle) ||
		strings.Contains(strings.ToLower(r.BillRefNumber), needle) ||
		strings.Contains(strings.ToLower(r.MSISDN), needle)
}
