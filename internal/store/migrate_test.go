package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyReceiptLinkPatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	// Runs twice to prove the patch is idempotent: every statement carries
	// IF NOT EXISTS, so a second pass succeeds without side effects.
	for i := 0; i < 2; i++ {
		mock.ExpectExec(`ALTER TABLE c2b_receipts ADD COLUMN IF NOT EXISTS pos_invoice`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_c2b_receipts_pos_invoice`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, ApplyReceiptLinkPatch(ctx, db))
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyReceiptLinkPatch_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`ALTER TABLE c2b_receipts`).
		WillReturnError(assert.AnError)

	err = ApplyReceiptLinkPatch(context.Background(), db)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "apply receipt link patch")
	assert.NoError(t, mock.ExpectationsWereMet())
}
