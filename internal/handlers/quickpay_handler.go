package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dukapos/backend/internal/services"
	"github.com/dukapos/backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// QuickPayHandler multiplexes the POS quick-pay actions behind a single
// endpoint. Inputs arrive as flat string-keyed form/query parameters and
// are parsed into typed requests before any service is touched.
type QuickPayHandler struct {
	config      *services.ConfigService
	payments    *services.PaymentsService
	reconcile   *services.ReconcileService
	customers   *services.CustomerService
	requests    *services.PaymentRequestService
	diagnostics *services.DiagnosticsService
	validator   *services.ValidationHelper
}

func NewQuickPayHandler(
	configSvc *services.ConfigService,
	payments *services.PaymentsService,
	reconcile *services.ReconcileService,
	customers *services.CustomerService,
	requests *services.PaymentRequestService,
	diagnostics *services.DiagnosticsService,
) *QuickPayHandler {
	return &QuickPayHandler{
		config:      configSvc,
		payments:    payments,
		reconcile:   reconcile,
		customers:   customers,
		requests:    requests,
		diagnostics: diagnostics,
		validator:   services.NewValidationHelper(),
	}
}

// Process dispatches on the action parameter.
// @Summary POS quick-pay entry point
// @Description Multiplexed endpoint for M-Pesa quick-pay actions
// @Tags QuickPay
// @Accept x-www-form-urlencoded
// @Produce json
// @Param action formData string true "One of check_mpesa_available, get_mpesa_payments, process_mpesa, get_customer_phone, create_payment_request"
// @Router /quickpay [post]
func (h *QuickPayHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		services.SendErrorResponse(w, "Invalid request parameters", http.StatusBadRequest, nil)
		return
	}

	action := r.FormValue("action")
	log.Printf("[QuickPay] action=%s", action)

	switch action {
	case "check_mpesa_available":
		h.checkAvailable(w, r)
	case "get_mpesa_payments":
		h.getPayments(w, r)
	case "process_mpesa":
		h.processMpesa(w, r)
	case "get_customer_phone":
		h.getCustomerPhone(w, r)
	case "create_payment_request":
		h.createPaymentRequest(w, r)
	default:
		services.SendErrorResponse(w, "Invalid action", http.StatusBadRequest, nil)
	}
}

func (h *QuickPayHandler) checkAvailable(w http.ResponseWriter, r *http.Request) {
	company := r.FormValue("company")

	available, err := h.config.Available(r.Context(), company)
	if err != nil {
		log.Printf("[QuickPay] availability check failed: %v", err)
		services.SendErrorResponse(w, "Availability check failed", http.StatusInternalServerError, nil)
		return
	}

	services.SendJSON(w, map[string]bool{"available": available})
}

func (h *QuickPayHandler) getPayments(w http.ResponseWriter, r *http.Request) {
	company := r.FormValue("company")
	search := r.FormValue("search")

	result, err := h.payments.GetPendingPayments(r.Context(), company, search)
	if err != nil {
		log.Printf("[QuickPay] pending payment lookup failed: %v", err)
		services.SendErrorResponse(w, "Failed to fetch pending payments", http.StatusInternalServerError, nil)
		return
	}

	services.SendJSON(w, result)
}

func (h *QuickPayHandler) processMpesa(w http.ResponseWriter, r *http.Request) {
	req := services.ReconcileRequest{
		MpesaPayments: r.FormValue("mpesa_payments"),
		Customer:      r.FormValue("customer"),
		POSInvoice:    r.FormValue("pos_invoice"),
		AutoSave:      parseFlag(r.FormValue("auto_save")),
		AutoSubmit:    parseFlag(r.FormValue("auto_submit")),
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	result, err := h.reconcile.Reconcile(r.Context(), &req)
	if err != nil {
		h.sendReconcileError(w, err)
		return
	}

	services.SendJSON(w, result)
}

func (h *QuickPayHandler) sendReconcileError(w http.ResponseWriter, err error) {
	log.Printf("[QuickPay] reconciliation failed: %v", err)

	var channelErr *services.ChannelNotConfiguredError
	var providerErr *services.ProviderNotConfiguredError
	switch {
	case errors.Is(err, services.ErrNoPaymentsSelected),
		errors.Is(err, services.ErrInvoiceCancelled),
		errors.Is(err, services.ErrNoValidPayments):
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	case errors.As(err, &channelErr), errors.As(err, &providerErr):
		services.SendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity, nil)
	case errors.Is(err, store.ErrNotFound):
		services.SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
	default:
		services.SendErrorResponse(w, "Reconciliation failed", http.StatusInternalServerError, nil)
	}
}

func (h *QuickPayHandler) getCustomerPhone(w http.ResponseWriter, r *http.Request) {
	customer := r.FormValue("customer")

	phone, err := h.customers.GetPhone(r.Context(), customer)
	if err != nil {
		log.Printf("[QuickPay] customer phone lookup failed: %v", err)
		services.SendErrorResponse(w, "Failed to fetch customer phone", http.StatusInternalServerError, nil)
		return
	}

	services.SendJSON(w, map[string]string{"phone": phone})
}

func (h *QuickPayHandler) createPaymentRequest(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(r.FormValue("amount"))
	if err != nil || !amount.GreaterThan(decimal.Zero) {
		services.SendErrorResponse(w, "Missing required parameters", http.StatusBadRequest, nil)
		return
	}

	input := services.PaymentRequestInput{
		POSInvoice:  r.FormValue("pos_invoice"),
		Customer:    r.FormValue("customer"),
		PhoneNumber: r.FormValue("phone_number"),
		Amount:      amount,
	}

	if err := h.validator.ValidateStruct(&input); err != nil {
		services.SendErrorResponse(w, "Missing required parameters", http.StatusBadRequest, err)
		return
	}

	name, err := h.requests.Create(r.Context(), &input)
	if err != nil {
		log.Printf("[QuickPay] payment request creation failed: %v", err)
		var providerErr *services.ProviderNotConfiguredError
		switch {
		case errors.As(err, &providerErr), errors.Is(err, services.ErrGatewayAccountNotFound):
			services.SendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity, nil)
		case errors.Is(err, store.ErrNotFound):
			services.SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
		default:
			services.SendErrorResponse(w, "Failed to create payment request", http.StatusInternalServerError, nil)
		}
		return
	}

	services.SendJSON(w, map[string]any{
		"success":         true,
		"payment_request": name,
	})
}

// Diagnostics returns the configuration audit.
// @Summary Quick-pay configuration diagnostics
// @Produce json
// @Router /quickpay/diagnostics [get]
func (h *QuickPayHandler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	result, err := h.diagnostics.Check(r.Context())
	if err != nil {
		log.Printf("[QuickPay] diagnostics failed: %v", err)
		services.SendErrorResponse(w, "Diagnostics failed", http.StatusInternalServerError, nil)
		return
	}
	services.SendJSON(w, result)
}

// PaymentRequestQR renders the scannable payload for a payment request.
// @Summary Payment request QR image
// @Produce json
// @Router /quickpay/payment-requests/{name}/qr [get]
func (h *QuickPayHandler) PaymentRequestQR(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	image, err := h.requests.RequestQR(r.Context(), name)
	if err != nil {
		log.Printf("[QuickPay] qr render failed for %s: %v", name, err)
		if errors.Is(err, store.ErrNotFound) {
			services.SendErrorResponse(w, "Payment request not found", http.StatusNotFound, nil)
			return
		}
		services.SendErrorResponse(w, "Failed to render QR", http.StatusInternalServerError, nil)
		return
	}

	services.SendJSON(w, map[string]string{
		"payment_request": name,
		"qr_image":        image,
	})
}

// parseFlag reads the 0/1 flags the POS sends.
func parseFlag(val string) bool {
	n, err := strconv.Atoi(val)
	return err == nil && n != 0
}
