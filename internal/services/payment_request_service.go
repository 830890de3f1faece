package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log"
	"time"

	"github.com/dukapos/backend/internal/config"
	"github.com/dukapos/backend/internal/models"
	"github.com/dukapos/backend/internal/store"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

var ErrGatewayAccountNotFound = errors.New("no payment gateway account found for mpesa")

// PaymentRequestInput describes one inward payment ask.
type PaymentRequestInput struct {
	POSInvoice  string          `validate:"required"`
	Customer    string          `validate:"required"`
	PhoneNumber string          `validate:"required"`
	Amount      decimal.Decimal `validate:"required"`
}

// PaymentRequestService assembles and submits payment requests pointing at
// the company's M-Pesa gateway account.
type PaymentRequestService struct {
	invoices  store.InvoiceStore
	providers store.ProviderStore
	gateways  store.GatewayStore
	requests  store.PaymentRequestStore
	cfgSvc    *ConfigService
	redis     *redis.Client
	cfg       *config.QuickPayConfig
}

func NewPaymentRequestService(
	invoices store.InvoiceStore,
	providers store.ProviderStore,
	gateways store.GatewayStore,
	requests store.PaymentRequestStore,
	cfgSvc *ConfigService,
	redisClient *redis.Client,
	cfg *config.QuickPayConfig,
) *PaymentRequestService {
	return &PaymentRequestService{
		invoices:  invoices,
		providers: providers,
		gateways:  gateways,
		requests:  requests,
		cfgSvc:    cfgSvc,
		redis:     redisClient,
		cfg:       cfg,
	}
}

// Create builds an inward payment request for the invoice and submits it
// immediately. Returns the created record's name.
func (s *PaymentRequestService) Create(ctx context.Context, input *PaymentRequestInput) (string, error) {
	if !input.Amount.GreaterThan(decimal.Zero) {
		return "", errors.New("amount must be greater than zero")
	}

	inv, err := s.invoices.GetInvoice(ctx, input.POSInvoice)
	if err != nil {
		return "", fmt.Errorf("load invoice %s: %w", input.POSInvoice, err)
	}

	provider, err := s.providers.GetConfigForCompany(ctx, inv.Company)
	if errors.Is(err, store.ErrNotFound) {
		return "", &ProviderNotConfiguredError{Company: inv.Company}
	}
	if err != nil {
		return "", fmt.Errorf("provider config for %s: %w", inv.Company, err)
	}

	gateway, err := s.resolveGatewayAccount(ctx, provider)
	if err != nil {
		return "", err
	}

	// Channel resolution is best effort; a request can go out without a
	// mapped mode of payment.
	channel, err := s.cfgSvc.ResolvePaymentChannel(ctx, inv.Company)
	if err != nil {
		log.Printf("[QuickPay] channel resolution failed for %s: %v", inv.Company, err)
		channel = ""
	}

	pr := &models.PaymentRequest{
		Name:                  fmt.Sprintf("PRQ-%s", uuid.NewString()),
		RequestType:           "Inward",
		TransactionDate:       time.Now(),
		PhoneNumber:           input.PhoneNumber,
		Company:               inv.Company,
		PartyType:             "Customer",
		Party:                 input.Customer,
		ReferenceDocType:      "POS Invoice",
		ReferenceName:         input.POSInvoice,
		GrandTotal:            input.Amount,
		OutstandingAmount:     input.Amount,
		Currency:              inv.Currency,
		PaymentGatewayAccount: gateway.Name,
		PaymentGateway:        gateway.PaymentGateway,
		PaymentAccount:        gateway.PaymentAccount,
		PaymentChannel:        "Phone",
		ModeOfPayment:         channel,
		Subject:               fmt.Sprintf("Payment for %s", input.POSInvoice),
		Message:               fmt.Sprintf("Payment for %s", input.POSInvoice),
		MuteEmail:             true,
		MakeSalesInvoice:      false,
		DocStatus:             models.DocStatusSubmitted,
	}

	if err := s.requests.CreatePaymentRequest(ctx, pr); err != nil {
		return "", fmt.Errorf("create payment request: %w", err)
	}
	return pr.Name, nil
}

// resolveGatewayAccount tries the exact gateway named by the provider
// config (falling back to the config's own name), then a fuzzy brand match.
func (s *PaymentRequestService) resolveGatewayAccount(ctx context.Context, provider *models.ProviderConfig) (*models.GatewayAccount, error) {
	gatewayName := provider.PaymentGatewayName
	if gatewayName == "" {
		gatewayName = provider.Name
	}

	gateway, err := s.gateways.GetByGateway(ctx, gatewayName)
	if err == nil {
		return gateway, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("gateway account %s: %w", gatewayName, err)
	}

	gateway, err = s.gateways.FindByGatewayPattern(ctx, s.cfg.ProviderBrand)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrGatewayAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gateway account pattern search: %w", err)
	}
	return gateway, nil
}

// qrPayload is the scannable stand-in for an STK push: the till shows it,
// the customer pays the shortcode with the invoice as account reference.
type qrPayload struct {
	Shortcode string          `json:"shortcode"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

// RequestQR renders a QR image for a submitted payment request. The
// payload is parked in redis under the request name until it expires.
func (s *PaymentRequestService) RequestQR(ctx context.Context, name string) (string, error) {
	pr, err := s.requests.GetPaymentRequest(ctx, name)
	if err != nil {
		return "", fmt.Errorf("load payment request %s: %w", name, err)
	}

	provider, err := s.providers.GetConfigForCompany(ctx, pr.Company)
	if errors.Is(err, store.ErrNotFound) {
		return "", &ProviderNotConfiguredError{Company: pr.Company}
	}
	if err != nil {
		return "", err
	}

	payload := qrPayload{
		Shortcode: provider.BusinessShortcode,
		Amount:    pr.GrandTotal,
		Reference: pr.ReferenceName,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	if s.redis != nil {
		key := fmt.Sprintf("quickpay:qr:%s", name)
		if err := s.redis.Set(ctx, key, data, s.cfg.QRExpiry).Err(); err != nil {
			log.Printf("[QuickPay] qr payload cache write failed: %v", err)
		}
	}

	qr, err := qrcode.New(string(data), qrcode.Medium)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(256)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
