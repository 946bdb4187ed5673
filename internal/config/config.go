package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds portal configuration
type Config struct {
	APIBaseURL    string
	Port          string
	CookieName    string
	HashKey       string
	SessionTTL    time.Duration
	ClientTimeout time.Duration
}

// Get returns portal configuration with defaults. The API base URL is the
// single externally supplied address for all backend calls and has no
// default.
func Get() *Config {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("session.cookie_name", "bank_session")
	viper.SetDefault("session.hash_key", "dev-only-insecure-key")
	viper.SetDefault("session.ttl_hours", 24)
	viper.SetDefault("client.timeout_seconds", 15)

	return &Config{
		APIBaseURL:    viper.GetString("api.base_url"),
		Port:          viper.GetString("server.port"),
		CookieName:    viper.GetString("session.cookie_name"),
		HashKey:       viper.GetString("session.hash_key"),
		SessionTTL:    time.Duration(viper.GetInt("session.ttl_hours")) * time.Hour,
		ClientTimeout: time.Duration(viper.GetInt("client.timeout_seconds")) * time.Second,
	}
}
