package config

import (
	"os"
	"strconv"
	"time"
)

type QuickPayConfig struct {
	SearchMinLength  int
	PaymentScanLimit int
	AvailabilityTTL  time.Duration
	QRExpiry         time.Duration
	ProviderBrand    string
}

func LoadQuickPayConfig() *QuickPayConfig {
	return &QuickPayConfig{
		SearchMinLength:  getEnvAsInt("QUICKPAY_SEARCH_MIN_LENGTH", 3),
		PaymentScanLimit: getEnvAsInt("QUICKPAY_PAYMENT_SCAN_LIMIT", 100),
		AvailabilityTTL:  getEnvAsDuration("QUICKPAY_AVAILABILITY_TTL", 60*time.Second),
		QRExpiry:         getEnvAsDuration("QUICKPAY_QR_EXPIRY", 5*time.Minute),
		ProviderBrand:    getEnv("QUICKPAY_PROVIDER_BRAND", "Mpesa"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
