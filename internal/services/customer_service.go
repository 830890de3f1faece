package services

import (
	"context"

	"github.com/dukapos/backend/internal/store"
)

// CustomerService exposes customer contact lookups to the POS.
type CustomerService struct {
	customers store.CustomerStore
}

func NewCustomerService(customers store.CustomerStore) *CustomerService {
	return &CustomerService{customers: customers}
}

// GetPhone returns the customer's phone number, empty when none is on file.
func (s *CustomerService) GetPhone(ctx context.Context, customer string) (string, error) {
	return s.customers.GetCustomerPhone(ctx, customer)
}
