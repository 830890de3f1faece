package store

import (
	"context"
	"database/sql"

	"github.com/dukapos/backend/internal/models"
)

// PostgresChannelStore implements ChannelStore over payment_channels and
// channel_accounts.
type PostgresChannelStore struct {
	db *sql.DB
}

func NewChannelStore(db *sql.DB) *PostgresChannelStore {
	return &PostgresChannelStore{db: db}
}

func (s *PostgresChannelStore) ListEnabledPhoneChannels(ctx context.Context) ([]models.PaymentChannel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, type, enabled
		FROM payment_channels
		WHERE type = 'Phone' AND enabled = true
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []models.PaymentChannel
	for rows.Next() {
		var c models.PaymentChannel
		if err := rows.Scan(&c.Name, &c.Type, &c.Enabled); err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}

func (s *PostgresChannelStore) GetDefaultAccount(ctx context.Context, channel, company string) (string, error) {
	var account string
	err := s.db.QueryRowContext(ctx, `
		SELECT default_account
		FROM channel_accounts
		WHERE channel = $1 AND company = $2`,
		channel, company).Scan(&account)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return account, nil
}

func (s *PostgresChannelStore) ListChannelAccounts(ctx context.Context, channel string) ([]models.ChannelAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT channel, company, default_account
		FROM channel_accounts
		WHERE channel = $1`, channel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.ChannelAccount
	for rows.Next() {
		var a models.ChannelAccount
		if err := rows.Scan(&a.Channel, &a.Company, &a.DefaultAccount); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
