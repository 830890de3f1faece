package models

// PaymentChannel is a named mode of payment. Only enabled Phone-type
// channels participate in M-Pesa quick pay.
type PaymentChannel struct {
	Name    string `json:"name" db:"name"`
	Type    string `json:"type" db:"type"`
	Enabled bool   `json:"enabled" db:"enabled"`
}

// ChannelAccount maps a payment channel to a ledger account for one company.
// A channel is usable for a company only if a mapping row exists for that
// exact company.
type ChannelAccount struct {
	Channel        string `json:"channel" db:"channel"`
	Company        string `json:"company" db:"company"`
	DefaultAccount string `json:"default_account" db:"default_account"`
}

// ProviderConfig is the per-company M-Pesa merchant identity. The business
// shortcode on inbound receipts must match the company's configured
// shortcode before a receipt is accepted.
type ProviderConfig struct {
	Name               string `json:"name" db:"name"`
	Company            string `json:"company" db:"company"`
	BusinessShortcode  string `json:"business_shortcode" db:"business_shortcode"`
	PaymentGatewayName string `json:"payment_gateway_name" db:"payment_gateway_name"`
}

// GatewayAccount links a payment gateway to the ledger account that
// receives gateway settlements.
type GatewayAccount struct {
	Name           string `json:"name" db:"name"`
	PaymentGateway string `json:"payment_gateway" db:"payment_gateway"`
	PaymentAccount string `json:"payment_account" db:"payment_account"`
}
