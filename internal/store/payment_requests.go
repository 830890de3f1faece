package store

import (
	"context"
	"database/sql"

	"github.com/dukapos/backend/internal/models"
)

// PostgresPaymentRequestStore implements PaymentRequestStore over
// payment_requests.
type PostgresPaymentRequestStore struct {
	db *sql.DB
}

func NewPaymentRequestStore(db *sql.DB) *PostgresPaymentRequestStore {
	return &PostgresPaymentRequestStore{db: db}
}

func (s *PostgresPaymentRequestStore) CreatePaymentRequest(ctx context.Context, pr *models.PaymentRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_requests (
			name, request_type, transaction_date, phone_number, company,
			party_type, party, reference_doctype, reference_name,
			grand_total, outstanding_amount, currency, gateway_account,
			payment_gateway, payment_account, payment_channel,
			mode_of_payment, subject, message, mute_email,
			make_sales_invoice, docstatus
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		          $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		pr.Name, pr.RequestType, pr.TransactionDate, pr.PhoneNumber,
		pr.Company, pr.PartyType, pr.Party, pr.ReferenceDocType,
		pr.ReferenceName, pr.GrandTotal, pr.OutstandingAmount, pr.Currency,
		pr.PaymentGatewayAccount, pr.PaymentGateway, pr.PaymentAccount,
		pr.PaymentChannel, pr.ModeOfPayment, pr.Subject, pr.Message,
		pr.MuteEmail, pr.MakeSalesInvoice, pr.DocStatus)
	return err
}

func (s *PostgresPaymentRequestStore) GetPaymentRequest(ctx context.Context, name string) (*models.PaymentRequest, error) {
	var pr models.PaymentRequest
	err := s.db.QueryRowContext(ctx, `
		SELECT name, request_type, transaction_date, phone_number, company,
		       party_type, party, reference_doctype, reference_name,
		       grand_total, outstanding_amount, currency, gateway_account,
		       payment_gateway, payment_account, payment_channel,
		       mode_of_payment, subject, message, mute_email,
		       make_sales_invoice, docstatus
		FROM payment_requests
		WHERE name = $1`, name).
		Scan(&pr.Name, &pr.RequestType, &pr.TransactionDate, &pr.PhoneNumber,
			&pr.Company, &pr.PartyType, &pr.Party, &pr.ReferenceDocType,
			&pr.ReferenceName, &pr.GrandTotal, &pr.OutstandingAmount,
			&pr.Currency, &pr.PaymentGatewayAccount, &pr.PaymentGateway,
			&pr.PaymentAccount, &pr.PaymentChannel, &pr.ModeOfPayment,
			&pr.Subject, &pr.Message, &pr.MuteEmail, &pr.MakeSalesInvoice,
			&pr.DocStatus)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pr, nil
}
