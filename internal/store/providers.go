package store

import (
	"context"
	"database/sql"

	"github.com/dukapos/backend/internal/models"
)

// PostgresProviderStore implements ProviderStore over provider_configs.
type PostgresProviderStore struct {
	db *sql.DB
}

func NewProviderStore(db *sql.DB) *PostgresProviderStore {
	return &PostgresProviderStore{db: db}
}

func (s *PostgresProviderStore) GetConfigForCompany(ctx context.Context, company string) (*models.ProviderConfig, error) {
	// Ordered by name so the winner is stable when a company carries more
	// than one config.
	var cfg models.ProviderConfig
	err := s.db.QueryRowContext(ctx, `
		SELECT name, company, business_shortcode, payment_gateway_name
		FROM provider_configs
		WHERE company = $1
		ORDER BY name ASC
		LIMIT 1`, company).
		Scan(&cfg.Name, &cfg.Company, &cfg.BusinessShortcode, &cfg.PaymentGatewayName)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *PostgresProviderStore) ListConfigs(ctx context.Context) ([]models.ProviderConfig, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, company, business_shortcode, payment_gateway_name
		FROM provider_configs
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []models.ProviderConfig
	for rows.Next() {
		var cfg models.ProviderConfig
		if err := rows.Scan(&cfg.Name, &cfg.Company, &cfg.BusinessShortcode, &cfg.PaymentGatewayName); err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}
