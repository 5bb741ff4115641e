package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the full server configuration, loaded from environment
// variables. The AI key and the admin key are optional on purpose: without
// the AI key the server still works on template content, and without the
// admin key the admin endpoints are disabled.
type Config struct {
	Port     string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// PostgreSQL
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNECTIONS" default:"10"`

	// External generation provider (OpenAI-compatible API)
	AIAPIKey     string        `envconfig:"XAI_API_KEY"`
	AIBaseURL    string        `envconfig:"AI_BASE_URL" default:"https://api.x.ai/v1"`
	AITextModel  string        `envconfig:"AI_TEXT_MODEL" default:"grok-3-beta"`
	AIImageModel string        `envconfig:"AI_IMAGE_MODEL" default:"grok-2-image"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"90s"`

	// S3-compatible object storage for re-hosted images
	StorageEndpoint      string `envconfig:"STORAGE_ENDPOINT" required:"true"`
	StorageRegion        string `envconfig:"STORAGE_REGION" default:"us-east-1"`
	StorageAccessKey     string `envconfig:"STORAGE_ACCESS_KEY" required:"true"`
	StorageSecretKey     string `envconfig:"STORAGE_SECRET_KEY" required:"true"`
	StorageBucket        string `envconfig:"STORAGE_BUCKET" default:"creature-images"`
	StoragePublicBaseURL string `envconfig:"STORAGE_PUBLIC_BASE_URL" required:"true"`

	// Shared secret gating the admin endpoints (?key=...)
	AdminSecretKey string `envconfig:"ADMIN_SECRET_KEY"`

	// Public site URL printed in the PDF footer
	SiteURL string `envconfig:"SITE_URL" default:"https://mythcreature.app"`

	// Cover images for new storybooks are generated in the background
	GenerateCovers bool          `envconfig:"GENERATE_COVERS" default:"true"`
	CoverTimeout   time.Duration `envconfig:"COVER_TIMEOUT" default:"2m"`
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
