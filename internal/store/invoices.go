package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukapos/backend/internal/models"
	"github.com/shopspring/decimal"
)

// PostgresInvoiceStore implements InvoiceStore over pos_invoices and
// invoice_payments.
type PostgresInvoiceStore struct {
	db *sql.DB
}

func NewInvoiceStore(db *sql.DB) *PostgresInvoiceStore {
	return &PostgresInvoiceStore{db: db}
}

func (s *PostgresInvoiceStore) GetInvoice(ctx context.Context, name string) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.QueryRowContext(ctx, `
		SELECT name, company, customer, currency, grand_total, paid_amount,
		       outstanding_amount, docstatus, created_at, updated_at
		FROM pos_invoices
		WHERE name = $1`, name).
		Scan(&inv.Name, &inv.Company, &inv.Customer, &inv.Currency,
			&inv.GrandTotal, &inv.PaidAmount, &inv.OutstandingAmount,
			&inv.DocStatus, &inv.CreatedAt, &inv.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, invoice, mode_of_payment, amount, account, type, reference_no
		FROM invoice_payments
		WHERE invoice = $1
		ORDER BY id ASC`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line models.PaymentLine
		if err := rows.Scan(&line.ID, &line.Invoice, &line.ModeOfPayment,
			&line.Amount, &line.Account, &line.Type, &line.ReferenceNo); err != nil {
			return nil, err
		}
		inv.Payments = append(inv.Payments, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// SaveInvoice inserts payment lines appended since load (lines with a zero
// ID) and recomputes paid and outstanding amounts from the full line set.
func (s *PostgresInvoiceStore) SaveInvoice(ctx context.Context, inv *models.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	paid := decimal.Zero
	for i := range inv.Payments {
		line := &inv.Payments[i]
		if line.ID == 0 {
			err := tx.QueryRowContext(ctx, `
				INSERT INTO invoice_payments (invoice, mode_of_payment, amount, account, type, reference_no)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id`,
				inv.Name, line.ModeOfPayment, line.Amount, line.Account,
				line.Type, line.ReferenceNo).Scan(&line.ID)
			if err != nil {
				return fmt.Errorf("insert payment line: %w", err)
			}
		}
		paid = paid.Add(line.Amount)
	}

	outstanding := inv.GrandTotal.Sub(paid)
	result, err := tx.ExecContext(ctx, `
		UPDATE pos_invoices
		SET paid_amount = $1, outstanding_amount = $2, updated_at = $3
		WHERE name = $4 AND docstatus = 0`,
		paid, outstanding, time.Now(), inv.Name)
	if err != nil {
		return err
	}
	if err := requireRow(result, ErrStaleDocument); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	inv.PaidAmount = paid
	inv.OutstandingAmount = outstanding
	return nil
}

func (s *PostgresInvoiceStore) SubmitInvoice(ctx context.Context, inv *models.Invoice) error {
	if inv.OutstandingAmount.IsNegative() {
		return fmt.Errorf("invoice %s has negative outstanding amount", inv.Name)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE pos_invoices
		SET docstatus = 1, updated_at = $1
		WHERE name = $2 AND docstatus = 0`,
		time.Now(), inv.Name)
	if err != nil {
		return err
	}
	if err := requireRow(result, ErrStaleDocument); err != nil {
		return err
	}
	inv.DocStatus = models.DocStatusSubmitted
	return nil
}
