package store

import (
	"context"
	"database/sql"
)

// PostgresCustomerStore implements CustomerStore over contacts,
// contact_links and customers.
type PostgresCustomerStore struct {
	db *sql.DB
}

func NewCustomerStore(db *sql.DB) *PostgresCustomerStore {
	return &PostgresCustomerStore{db: db}
}

// GetCustomerPhone walks the contact link chain: the linked contact's
// mobile number, then its phone, then the customer's own mobile field.
func (s *PostgresCustomerStore) GetCustomerPhone(ctx context.Context, customer string) (string, error) {
	if customer == "" {
		return "", nil
	}

	var mobile, phone sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT c.mobile_no, c.phone
		FROM contacts c
		JOIN contact_links cl ON cl.contact = c.name
		WHERE cl.link_doctype = 'Customer' AND cl.link_name = $1
		LIMIT 1`, customer).Scan(&mobile, &phone)
	if err != nil && err != sql.ErrNoRows {
		return "", err
	}
	if mobile.String != "" {
		return mobile.String, nil
	}
	if phone.String != "" {
		return phone.String, nil
	}

	var customerMobile sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT mobile_no FROM customers WHERE name = $1`, customer).
		Scan(&customerMobile)
	if err != nil && err != sql.ErrNoRows {
		return "", err
	}
	return customerMobile.String, nil
}
