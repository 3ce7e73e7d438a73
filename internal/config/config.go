package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Auth    AuthConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	Company CompanyConfig
	Billing BillingConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Name        string `mapstructure:"name"`
	SSLMode     string `mapstructure:"sslmode"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds bearer token verification settings. Tokens are issued by the
// hosted auth provider and signed with a shared HS256 secret.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

// Enabled reports whether bearer authentication is enforced.
func (a *AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// S3Config holds AWS S3 settings for archived invoice PDFs.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether invoice archiving to object storage is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BankConfig holds the bank details printed on invoices.
type BankConfig struct {
	Name    string `mapstructure:"name"`
	Account string `mapstructure:"account"`
	IFSC    string `mapstructure:"ifsc"`
	Branch  string `mapstructure:"branch"`
}

// CompanyConfig describes the issuing business. StateCode is the home
// jurisdiction used to decide between CGST+SGST and IGST.
type CompanyConfig struct {
	Name      string     `mapstructure:"name"`
	Tagline   string     `mapstructure:"tagline"`
	Address   string     `mapstructure:"address"`
	GSTIN     string     `mapstructure:"gstin"`
	State     string     `mapstructure:"state"`
	StateCode string     `mapstructure:"state_code"`
	Phone     string     `mapstructure:"phone"`
	Email     string     `mapstructure:"email"`
	Bank      BankConfig `mapstructure:"bank"`
}

// BillingConfig holds tax and numbering policies.
type BillingConfig struct {
	// RatePolicy is "per_line" or "first_line" (legacy single-rate invoices).
	RatePolicy string `mapstructure:"rate_policy"`
	// MissingRatePolicy is "reject" or "zero" (treat unknown HSN codes as 0%).
	MissingRatePolicy string `mapstructure:"missing_rate_policy"`
	DefaultSeries     string `mapstructure:"default_series"`
}

// Load reads configuration from environment variables with the GSTBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":4000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstbill")
	v.SetDefault("db.password", "gstbill_secret")
	v.SetDefault("db.name", "gstbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("db.auto_migrate", false)

	// Auth defaults (empty secret disables verification for local development)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "authenticated")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:4000,http://127.0.0.1:4000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "billing@example.com")
	v.SetDefault("email.from_name", "Billing")

	// Company defaults
	v.SetDefault("company.name", "BHAGWATI WOOD PROCESS")
	v.SetDefault("company.tagline", "Premium Plywood Supplier")
	v.SetDefault("company.address", "")
	v.SetDefault("company.gstin", "")
	v.SetDefault("company.state", "Gujarat")
	v.SetDefault("company.state_code", "24")
	v.SetDefault("company.phone", "")
	v.SetDefault("company.email", "")
	v.SetDefault("company.bank.name", "")
	v.SetDefault("company.bank.account", "")
	v.SetDefault("company.bank.ifsc", "")
	v.SetDefault("company.bank.branch", "")

	// Billing defaults
	v.SetDefault("billing.rate_policy", "per_line")
	v.SetDefault("billing.missing_rate_policy", "reject")
	v.SetDefault("billing.default_series", "A")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "GSTBILL_SERVER_PORT",
		"server.read_timeout":         "GSTBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "GSTBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":          "GSTBILL_SERVER_ENVIRONMENT",
		"db.host":                     "GSTBILL_DB_HOST",
		"db.port":                     "GSTBILL_DB_PORT",
		"db.user":                     "GSTBILL_DB_USER",
		"db.password":                 "GSTBILL_DB_PASSWORD",
		"db.name":                     "GSTBILL_DB_NAME",
		"db.sslmode":                  "GSTBILL_DB_SSLMODE",
		"db.max_open":                 "GSTBILL_DB_MAX_OPEN",
		"db.max_idle":                 "GSTBILL_DB_MAX_IDLE",
		"db.auto_migrate":             "GSTBILL_DB_AUTO_MIGRATE",
		"auth.jwt_secret":             "GSTBILL_AUTH_JWT_SECRET",
		"auth.issuer":                 "GSTBILL_AUTH_ISSUER",
		"auth.audience":               "GSTBILL_AUTH_AUDIENCE",
		"s3.region":                   "GSTBILL_S3_REGION",
		"s3.bucket":                   "GSTBILL_S3_BUCKET",
		"s3.endpoint":                 "GSTBILL_S3_ENDPOINT",
		"s3.access_key":               "GSTBILL_S3_ACCESS_KEY",
		"s3.secret_key":               "GSTBILL_S3_SECRET_KEY",
		"s3.presign_expiry":           "GSTBILL_S3_PRESIGN_EXPIRY",
		"log.level":                   "GSTBILL_LOG_LEVEL",
		"log.format":                  "GSTBILL_LOG_FORMAT",
		"cors.allowed_origins":        "GSTBILL_CORS_ALLOWED_ORIGINS",
		"email.provider":              "GSTBILL_EMAIL_PROVIDER",
		"email.region":                "GSTBILL_EMAIL_REGION",
		"email.from_address":          "GSTBILL_EMAIL_FROM_ADDRESS",
		"email.from_name":             "GSTBILL_EMAIL_FROM_NAME",
		"company.name":                "GSTBILL_COMPANY_NAME",
		"company.tagline":             "GSTBILL_COMPANY_TAGLINE",
		"company.address":             "GSTBILL_COMPANY_ADDRESS",
		"company.gstin":               "GSTBILL_COMPANY_GSTIN",
		"company.state":               "GSTBILL_COMPANY_STATE",
		"company.state_code":          "GSTBILL_COMPANY_STATE_CODE",
		"company.phone":               "GSTBILL_COMPANY_PHONE",
		"company.email":               "GSTBILL_COMPANY_EMAIL",
		"company.bank.name":           "GSTBILL_COMPANY_BANK_NAME",
		"company.bank.account":        "GSTBILL_COMPANY_BANK_ACCOUNT",
		"company.bank.ifsc":           "GSTBILL_COMPANY_BANK_IFSC",
		"company.bank.branch":         "GSTBILL_COMPANY_BANK_BRANCH",
		"billing.rate_policy":         "GSTBILL_BILLING_RATE_POLICY",
		"billing.missing_rate_policy": "GSTBILL_BILLING_MISSING_RATE_POLICY",
		"billing.default_series":      "GSTBILL_BILLING_DEFAULT_SERIES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Render/Heroku set a PORT env var. Use it if GSTBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:        v.GetString("db.host"),
		Port:        v.GetInt("db.port"),
		User:        v.GetString("db.user"),
		Password:    v.GetString("db.password"),
		Name:        v.GetString("db.name"),
		SSLMode:     v.GetString("db.sslmode"),
		MaxOpen:     v.GetInt("db.max_open"),
		MaxIdle:     v.GetInt("db.max_idle"),
		AutoMigrate: v.GetBool("db.auto_migrate"),
	}
	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
		Audience:  v.GetString("auth.audience"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Company = CompanyConfig{
		Name:      v.GetString("company.name"),
		Tagline:   v.GetString("company.tagline"),
		Address:   v.GetString("company.address"),
		GSTIN:     v.GetString("company.gstin"),
		State:     v.GetString("company.state"),
		StateCode: v.GetString("company.state_code"),
		Phone:     v.GetString("company.phone"),
		Email:     v.GetString("company.email"),
		Bank: BankConfig{
			Name:    v.GetString("company.bank.name"),
			Account: v.GetString("company.bank.account"),
			IFSC:    v.GetString("company.bank.ifsc"),
			Branch:  v.GetString("company.bank.branch"),
		},
	}

	cfg.Billing = BillingConfig{
		RatePolicy:        v.GetString("billing.rate_policy"),
		MissingRatePolicy: v.GetString("billing.missing_rate_policy"),
		DefaultSeries:     v.GetString("billing.default_series"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Billing.RatePolicy {
	case "per_line", "first_line":
	default:
		return fmt.Errorf("invalid billing.rate_policy %q: want per_line or first_line", c.Billing.RatePolicy)
	}
	switch c.Billing.MissingRatePolicy {
	case "reject", "zero":
	default:
		return fmt.Errorf("invalid billing.missing_rate_policy %q: want reject or zero", c.Billing.MissingRatePolicy)
	}
	if len(c.Company.StateCode) != 2 {
		return fmt.Errorf("invalid company.state_code %q: must be 2 characters", c.Company.StateCode)
	}
	return nil
}
