package config

import (
	"fmt"
	"strings"
	"time"

	pkgconfig "github.com/utafrali/EcommerceGo/seeder/pkg/config"
	"github.com/utafrali/EcommerceGo/seeder/pkg/database"
	"github.com/utafrali/EcommerceGo/seeder/pkg/tracing"
	"github.com/utafrali/EcommerceGo/seeder/pkg/validator"
)

// Review policies.
const (
	ReviewPolicyOrder   = "order"
	ReviewPolicyProduct = "product"
)

// Config holds all configuration for the seeder.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost" validate:"required"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432" validate:"gte=1,lte=65535"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"postgres" validate:"required"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"ecommerce" validate:"required"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500" validate:"gte=0"`

	// Storefront API
	APIBaseURL       string        `env:"SEED_API_BASE_URL" envDefault:"http://localhost:3001" validate:"required,url"`
	HTTPTimeout      time.Duration `env:"SEED_HTTP_TIMEOUT" envDefault:"0s"`
	AdminEmail       string        `env:"SEED_ADMIN_EMAIL"`
	AdminPassword    string        `env:"SEED_ADMIN_PASSWORD"`
	SkipAdminLogin   bool          `env:"SKIP_ADMIN_LOGIN" envDefault:"false"`
	CustomerPassword string        `env:"SEED_CUSTOMER_PASSWORD" envDefault:"password123" validate:"required"`
	AddressAPIRPS    float64       `env:"ADDRESS_API_RPS" envDefault:"20" validate:"gte=0"`

	// Source spreadsheets
	SourceFiles []string `env:"SOURCE_FILES" envDefault:"Data/seed_data.xlsx,Data/seed_data_1.xlsx,Data/seed_data_2.xlsx,Data/seed_data_3.xlsx" envSeparator:"," validate:"min=1"`

	// Generation targets
	OrderCount           int           `env:"ORDER_COUNT" envDefault:"80" validate:"gte=0"`
	VariantPoolLimit     int           `env:"VARIANT_POOL_LIMIT" envDefault:"200" validate:"gte=1"`
	ReviewCap            int           `env:"REVIEW_CAP" envDefault:"100" validate:"gte=0"`
	ReviewProbability    float64       `env:"REVIEW_PROBABILITY" envDefault:"0.6" validate:"gte=0,lte=1"`
	ReviewPolicy         string        `env:"REVIEW_POLICY" envDefault:"order" validate:"oneof=order product"`
	ReviewsPerProductMin int           `env:"REVIEWS_PER_PRODUCT_MIN" envDefault:"5" validate:"gte=0"`
	ReviewsPerProductMax int           `env:"REVIEWS_PER_PRODUCT_MAX" envDefault:"20" validate:"gtefield=ReviewsPerProductMin"`
	ReviewThrottle       time.Duration `env:"REVIEW_THROTTLE" envDefault:"100ms"`
	PromotionProducts    int           `env:"PROMOTION_PRODUCTS" envDefault:"10" validate:"gte=0"`
	ShippingFee          int64         `env:"SHIPPING_FEE" envDefault:"30000" validate:"gte=0"`
	RandomSeed           uint64        `env:"SEED_RANDOM_SEED" envDefault:"0"`
	GeoRemoteDetail      bool          `env:"GEO_REMOTE_DETAIL" envDefault:"false"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0" validate:"gte=0,lte=1"`

	// Prometheus Pushgateway; empty disables the end-of-run push.
	PushgatewayURL string `env:"PUSHGATEWAY_URL" validate:"omitempty,url"`
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("load seeder config: %w", err)
	}

	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load seeder config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and the admin credentials rule.
func (c *Config) Validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("invalid seeder config: %w", err)
	}
	if !c.SkipAdminLogin && (c.AdminEmail == "" || c.AdminPassword == "") {
		return fmt.Errorf("invalid seeder config: SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required unless SKIP_ADMIN_LOGIN=true")
	}
	for i, f := range c.SourceFiles {
		c.SourceFiles[i] = strings.TrimSpace(f)
	}
	return nil
}

// Postgres returns the pool configuration for the target database.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	return pg
}

// Tracing returns the OpenTelemetry configuration.
func (c *Config) Tracing(serviceName string) tracing.Config {
	tc := tracing.DefaultConfig(serviceName)
	tc.Environment = c.Environment
	tc.OTLPEndpoint = c.OTELEndpoint
	tc.SampleRate = c.OTELSampleRate
	tc.Enabled = c.OTELEnabled
	return tc
}

// SlowQueryThreshold returns the slow query logging threshold.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryThresholdMs) * time.Millisecond
}
