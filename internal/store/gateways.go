package store

import (
	"context"
	"database/sql"

	"github.com/dukapos/backend/internal/models"
)

// PostgresGatewayStore implements GatewayStore over gateway_accounts.
type PostgresGatewayStore struct {
	db *sql.DB
}

func NewGatewayStore(db *sql.DB) *PostgresGatewayStore {
	return &PostgresGatewayStore{db: db}
}

func (s *PostgresGatewayStore) GetByGateway(ctx context.Context, gateway string) (*models.GatewayAccount, error) {
	var acc models.GatewayAccount
	err := s.db.QueryRowContext(ctx, `
		SELECT name, payment_gateway, payment_account
		FROM gateway_accounts
		WHERE payment_gateway = $1
		LIMIT 1`, gateway).
		Scan(&acc.Name, &acc.PaymentGateway, &acc.PaymentAccount)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *PostgresGatewayStore) FindByGatewayPattern(ctx context.Context, brand string) (*models.GatewayAccount, error) {
	var acc models.GatewayAccount
	err := s.db.QueryRowContext(ctx, `
		SELECT name, payment_gateway, payment_account
		FROM gateway_accounts
		WHERE payment_gateway ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT 1`, brand).
		Scan(&acc.Name, &acc.PaymentGateway, &acc.PaymentAccount)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *PostgresGatewayStore) ListByGatewayPattern(ctx context.Context, brand string) ([]models.GatewayAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, payment_gateway, payment_account
		FROM gateway_accounts
		WHERE payment_gateway ILIKE '%' || $1 || '%'
		ORDER BY name ASC`, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.GatewayAccount
	for rows.Next() {
		var acc models.GatewayAccount
		if err := rows.Scan(&acc.Name, &acc.PaymentGateway, &acc.PaymentAccount); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}
