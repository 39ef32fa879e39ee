// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Database struct {
		Host       string `envconfig:"HOST" default:"localhost"`
		Port       string `envconfig:"PORT" default:"5432"`
		User       string `envconfig:"USER" default:"postgres"`
		Password   string `envconfig:"PASSWORD" default:""`
		Name       string `envconfig:"NAME" default:"tenderdesk"`
		SSLMode    string `envconfig:"SSLMODE" default:"disable"`
		SearchPath string `envconfig:"SCHEMA" default:"public"`

		MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
		ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"5m"`
	} `envconfig:"DB"`
	JWT struct {
		Secret       string        `envconfig:"SECRET" required:"true"`
		ExpiryPeriod time.Duration `envconfig:"EXPIRY_PERIOD" default:"24h"`
		Issuer       string        `envconfig:"ISSUER" default:"tenderdesk"`
	} `envconfig:"JWT"`
	Server struct {
		Port           string        `envconfig:"PORT" default:"8080"`
		ReadTimeout    time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
		WriteTimeout   time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
		AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"https://*,http://*"`
		SecureCookies  bool          `envconfig:"SECURE_COOKIES" default:"true"`
	} `envconfig:"SERVER"`
	Mail struct {
		Provider string `envconfig:"PROVIDER" default:"sendgrid"`
		From     string `envconfig:"FROM" default:"no-reply@tenderdesk.nl"`
		FromName string `envconfig:"FROM_NAME" default:"TenderDesk"`
	} `envconfig:"MAIL"`
	Sendgrid struct {
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"SENDGRID"`
	SMTP struct {
		Host     string `envconfig:"HOST"`
		Port     int    `envconfig:"PORT" default:"587"`
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SMTP"`
	Graph struct {
		TenantID     string `envconfig:"TENANT_ID"`
		ClientID     string `envconfig:"CLIENT_ID"`
		ClientSecret string `envconfig:"CLIENT_SECRET"`
		Sender       string `envconfig:"SENDER"`
	} `envconfig:"GRAPH"`
	Registry struct {
		BaseURL  string        `envconfig:"BASE_URL" default:"https://api.kvk.nl/api/v1"`
		APIKey   string        `envconfig:"API_KEY"`
		CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	} `envconfig:"KVK"`
	AI struct {
		BaseURL string `envconfig:"BASE_URL"`
		APIKey  string `envconfig:"API_KEY"`
		Model   string `envconfig:"MODEL" default:"gpt-4o-mini"`
	} `envconfig:"AI"`
	RateLimit struct {
		InvitesPerHour   int `envconfig:"INVITES_PER_HOUR" default:"20"`
		InviteBurst      int `envconfig:"INVITE_BURST" default:"5"`
		LookupsPerMinute int `envconfig:"LOOKUPS_PER_MINUTE" default:"30"`
		LookupBurst      int `envconfig:"LOOKUP_BURST" default:"10"`
	} `envconfig:"RATE_LIMIT"`
	// Gates registration, company creation and invite acceptance on a
	// verified identity provider email.
	RequireVerifiedEmail bool          `envconfig:"REQUIRE_VERIFIED_EMAIL" default:"true"`
	InviteTTL            time.Duration `envconfig:"INVITE_TTL" default:"168h"`
	MinRejectionReason   int           `envconfig:"MIN_REJECTION_REASON" default:"10"`

	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	BaseURL         string        `envconfig:"BASE_URL" default:"http://localhost:3000"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	return &cfg, nil
}

// DSN returns the postgres connection string for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
		c.Database.SearchPath,
	)
}
