package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/dukapos/backend/internal/models"
)

// PostgresReceiptStore implements ReceiptStore over c2b_receipts.
type PostgresReceiptStore struct {
	db *sql.DB
}

func NewReceiptStore(db *sql.DB) *PostgresReceiptStore {
	return &PostgresReceiptStore{db: db}
}

func (s *PostgresReceiptStore) GetReceipt(ctx context.Context, name string) (*models.Receipt, error) {
	var r models.Receipt
	var customer, mop, posInvoice sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT name, full_name, transamount, transid, msisdn, posting_date,
		       billrefnumber, businessshortcode, docstatus, customer,
		       mode_of_payment, pos_invoice, created_at
		FROM c2b_receipts
		WHERE name = $1`, name).
		Scan(&r.Name, &r.FullName, &r.TransAmount, &r.TransID, &r.MSISDN,
			&r.PostingDate, &r.BillRefNumber, &r.BusinessShortcode,
			&r.DocStatus, &customer, &mop, &posInvoice, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r.Customer = customer.String
	r.ModeOfPayment = mop.String
	r.POSInvoice = posInvoice.String
	return &r, nil
}

func (s *PostgresReceiptStore) CountDraftByShortcode(ctx context.Context, shortcode string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM c2b_receipts
		WHERE docstatus = 0 AND businessshortcode = $1`, shortcode).Scan(&count)
	return count, err
}

func (s *PostgresReceiptStore) ListDraftByShortcode(ctx context.Context, shortcode string, limit int) ([]models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, full_name, transamount, transid, msisdn, posting_date,
		       billrefnumber, businessshortcode, docstatus, created_at
		FROM c2b_receipts
		WHERE docstatus = 0 AND businessshortcode = $1
		ORDER BY created_at DESC
		LIMIT $2`, shortcode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []models.Receipt
	for rows.Next() {
		var r models.Receipt
		if err := rows.Scan(&r.Name, &r.FullName, &r.TransAmount, &r.TransID,
			&r.MSISDN, &r.PostingDate, &r.BillRefNumber,
			&r.BusinessShortcode, &r.DocStatus, &r.CreatedAt); err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}

func (s *PostgresReceiptStore) AssignParty(ctx context.Context, name, customer, modeOfPayment string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE c2b_receipts
		SET customer = $1, mode_of_payment = $2, updated_at = $3
		WHERE name = $4 AND docstatus = 0`,
		customer, modeOfPayment, time.Now(), name)
	if err != nil {
		return err
	}
	return requireRow(result, ErrStaleDocument)
}

func (s *PostgresReceiptStore) SubmitReceipt(ctx context.Context, name string) error {
	// Guarded transition; a receipt already submitted by a concurrent
	// request makes this a no-op and we report staleness instead.
	result, err := s.db.ExecContext(ctx, `
		UPDATE c2b_receipts
		SET docstatus = 1, updated_at = $1
		WHERE name = $2 AND docstatus = 0`,
		time.Now(), name)
	if err != nil {
		return err
	}
	return requireRow(result, ErrStaleDocument)
}

func (s *PostgresReceiptStore) LinkInvoice(ctx context.Context, name, invoice string) error {
	// Field-level update, valid even after submit.
	result, err := s.db.ExecContext(ctx, `
		UPDATE c2b_receipts
		SET pos_invoice = $1
		WHERE name = $2`, invoice, name)
	if err != nil {
		return err
	}
	return requireRow(result, ErrNotFound)
}

func requireRow(result sql.Result, missing error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return missing
	}
	return nil
}
