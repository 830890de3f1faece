package store

import (
	"context"
	"database/sql"
	"fmt"
)

// patchStatements add the POS invoice link to the receipt register. Every
// statement uses IF NOT EXISTS semantics so the patch is safe to re-run on
// every startup.
var patchStatements = []string{
	`ALTER TABLE c2b_receipts ADD COLUMN IF NOT EXISTS pos_invoice TEXT`,
	`CREATE INDEX IF NOT EXISTS idx_c2b_receipts_pos_invoice ON c2b_receipts (pos_invoice)`,
}

// ApplyReceiptLinkPatch runs the one-time schema patch linking receipts to
// POS invoices.
func ApplyReceiptLinkPatch(ctx context.Context, db *sql.DB) error {
	for _, stmt := range patchStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply receipt link patch: %w", err)
		}
	}
	return nil
}
