package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dukapos/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptStore_GetReceipt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewReceiptStore(db)
	ctx := context.Background()

	t.Run("existing receipt", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT name, full_name, transamount, transid, msisdn, posting_date").
			WithArgs("MP-001").
			WillReturnRows(sqlmock.NewRows([]string{
				"name", "full_name", "transamount", "transid", "msisdn",
				"posting_date", "billrefnumber", "businessshortcode",
				"docstatus", "customer", "mode_of_payment", "pos_invoice", "created_at",
			}).AddRow("MP-001", "John Kamau", "500", "RKT1ABC", "254700000001",
				now, "INV-9", "600100", 0, nil, nil, nil, now))

		receipt, err := s.GetReceipt(ctx, "MP-001")
		require.NoError(t, err)
		assert.Equal(t, "MP-001", receipt.Name)
		assert.Equal(t, "600100", receipt.BusinessShortcode)
		assert.True(t, receipt.TransAmount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, models.DocStatusDraft, receipt.DocStatus)
		assert.Empty(t, receipt.POSInvoice)
	})

	t.Run("missing receipt", func(t *testing.T) {
		mock.ExpectQuery("SELECT name, full_name, transamount").
			WithArgs("MP-404").
			WillReturnRows(sqlmock.NewRows([]string{"name"}))

		_, err := s.GetReceipt(ctx, "MP-404")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptStore_CountDraftByShortcode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewReceiptStore(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM c2b_receipts WHERE docstatus = 0 AND businessshortcode = \$1`).
		WithArgs("600100").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := s.CountDraftByShortcode(context.Background(), "600100")
	require.NoError(t, err)
	assert.Equal(t, 12, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptStore_ListDraftByShortcode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewReceiptStore(db)
	now := time.Now()

	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("600100", 100).
		WillReturnRows(sqlmock.NewRows([]string{
			"name", "full_name", "transamount", "transid", "msisdn",
			"posting_date", "billrefnumber", "businessshortcode", "docstatus", "created_at",
		}).
			AddRow("MP-002", "Grace Wanjiru", "300", "RKT2", "254700000002", now, "INV-7", "600100", 0, now).
			AddRow("MP-001", "John Kamau", "500", "RKT1", "254700000001", now, "INV-9", "600100", 0, now.Add(-time.Hour)))

	receipts, err := s.ListDraftByShortcode(context.Background(), "600100", 100)
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, "MP-002", receipts[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptStore_SubmitReceipt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewReceiptStore(db)
	ctx := context.Background()

	t.Run("draft receipt submits", func(t *testing.T) {
		mock.ExpectExec(`UPDATE c2b_receipts SET docstatus = 1, updated_at = \$1 WHERE name = \$2 AND docstatus = 0`).
			WithArgs(sqlmock.AnyArg(), "MP-001").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.SubmitReceipt(ctx, "MP-001"))
	})

	t.Run("already submitted receipt is stale", func(t *testing.T) {
		mock.ExpectExec(`UPDATE c2b_receipts SET docstatus = 1`).
			WithArgs(sqlmock.AnyArg(), "MP-001").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.SubmitReceipt(ctx, "MP-001"), ErrStaleDocument)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptStore_AssignParty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewReceiptStore(db)

	mock.ExpectExec(`UPDATE c2b_receipts SET customer = \$1, mode_of_payment = \$2`).
		WithArgs("CUST-1", "Phone-M", sqlmock.AnyArg(), "MP-001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.AssignParty(context.Background(), "MP-001", "CUST-1", "Phone-M"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptStore_LinkInvoice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewReceiptStore(db)
	ctx := context.Background()

	t.Run("links after submit", func(t *testing.T) {
		mock.ExpectExec(`UPDATE c2b_receipts SET pos_invoice = \$1 WHERE name = \$2`).
			WithArgs("INV-1", "MP-001").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.LinkInvoice(ctx, "MP-001", "INV-1"))
	})

	t.Run("missing receipt", func(t *testing.T) {
		mock.ExpectExec(`UPDATE c2b_receipts SET pos_invoice`).
			WithArgs("INV-1", "MP-404").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.LinkInvoice(ctx, "MP-404", "INV-1"), ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
