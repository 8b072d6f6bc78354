package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Clients  ClientsConfig
	Checkout CheckoutConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ClientsConfig holds the base URLs of the three remote collaborators and
// the per-call timeout applied to every outbound request.
type ClientsConfig struct {
	IdentityBaseURL string
	CatalogBaseURL  string
	PaymentBaseURL  string
	Timeout         time.Duration
}

type CheckoutConfig struct {
	ShippingCost  float64
	Currency      string
	PaymentMethod string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "radagast")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "orders")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("IDENTITY_BASE_URL", "http://localhost:8081")
	viper.SetDefault("CATALOG_BASE_URL", "http://localhost:8082")
	viper.SetDefault("PAYMENT_BASE_URL", "http://localhost:8083")
	viper.SetDefault("CLIENT_TIMEOUT", "5s")
	viper.SetDefault("SHIPPING_COST", 5990.0)
	viper.SetDefault("PAYMENT_CURRENCY", "CLP")
	viper.SetDefault("PAYMENT_METHOD", "CREDIT_CARD")
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	clientTimeout, err := time.ParseDuration(viper.GetString("CLIENT_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Clients: ClientsConfig{
			IdentityBaseURL: viper.GetString("IDENTITY_BASE_URL"),
			CatalogBaseURL:  viper.GetString("CATALOG_BASE_URL"),
			PaymentBaseURL:  viper.GetString("PAYMENT_BASE_URL"),
			Timeout:         clientTimeout,
		},
		Checkout: CheckoutConfig{
			ShippingCost:  viper.GetFloat64("SHIPPING_COST"),
			Currency:      viper.GetString("PAYMENT_CURRENCY"),
			PaymentMethod: viper.GetString("PAYMENT_METHOD"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
