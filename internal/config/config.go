package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Shipping ShippingConfig
	Payment  PaymentConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Host string
	Port int
}

type ShippingConfig struct {
	// DeliveryETADays is the fixed offset between dispatch and the estimated
	// delivery timestamp.
	DeliveryETADays int
}

type PaymentConfig struct {
	// DeclineAll forces the mock gateway to decline every charge; useful for
	// demoing the compensation path.
	DeclineAll bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("SERVICE_NAME", "storefront"),
			Env:  getEnv("ENV", "dev"),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8080),
		},
		Shipping: ShippingConfig{
			DeliveryETADays: getEnvAsInt("DELIVERY_ETA_DAYS", 3),
		},
		Payment: PaymentConfig{
			DeclineAll: getEnvAsBool("PAYMENT_DECLINE_ALL", false),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.Shipping.DeliveryETADays <= 0 {
		return fmt.Errorf("DELIVERY_ETA_DAYS must be greater than zero")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}
