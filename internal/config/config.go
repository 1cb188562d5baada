// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Market     MarketConfig     `mapstructure:"market"`
	Calculator CalculatorConfig `mapstructure:"calculator"`
	State      StateConfig      `mapstructure:"state"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// GeminiConfig holds Gemini API configuration.
type GeminiConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`
	RatePerSecond  float64       `mapstructure:"rate_per_second"`
	RateBurst      int           `mapstructure:"rate_burst"`
}

// MarketConfig holds market data polling configuration.
type MarketConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	MaxHistory      int           `mapstructure:"max_history"`
}

// CalculatorConfig holds default calculator inputs.
type CalculatorConfig struct {
	Investment float64 `mapstructure:"investment"`
	BuyRate    float64 `mapstructure:"buy_rate"`
	SellRate   float64 `mapstructure:"sell_rate"`
	FeePercent float64 `mapstructure:"fee_percent"`
	Exchange   string  `mapstructure:"exchange"`
	Coin       string  `mapstructure:"coin"`
	Fiat       string  `mapstructure:"fiat"`
}

// InvestmentDecimal returns the default investment as decimal.Decimal.
func (c *CalculatorConfig) InvestmentDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.Investment)
}

// BuyRateDecimal returns the default buy rate as decimal.Decimal.
func (c *CalculatorConfig) BuyRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.BuyRate)
}

// SellRateDecimal returns the default sell rate as decimal.Decimal.
func (c *CalculatorConfig) SellRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.SellRate)
}

// FeePercentDecimal returns the default fee percent as decimal.Decimal.
func (c *CalculatorConfig) FeePercentDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.FeePercent)
}

// StateConfig holds persisted state file configuration.
type StateConfig struct {
	Dir  string `mapstructure:"dir"`
	File string `mapstructure:"file"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("P2P")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "P2P_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "P2P_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "P2P_LOG_LEVEL", "LOG_LEVEL")

	// Gemini
	v.BindEnv("gemini.api_key", "P2P_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY")
	v.BindEnv("gemini.base_url", "P2P_GEMINI_BASE_URL", "GEMINI_BASE_URL")
	v.BindEnv("gemini.model", "P2P_GEMINI_MODEL", "GEMINI_MODEL")

	// Market
	v.BindEnv("market.refresh_interval", "P2P_REFRESH_INTERVAL")
	v.BindEnv("market.max_history", "P2P_MAX_HISTORY")

	// State
	v.BindEnv("state.dir", "P2P_STATE_DIR")
	v.BindEnv("state.file", "P2P_STATE_FILE")

	// Telemetry
	v.BindEnv("telemetry.enabled", "P2P_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "P2P_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "P2P_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "p2p-calc")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Gemini defaults
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.request_timeout", "30s")
	v.SetDefault("gemini.max_retries", 2)
	v.SetDefault("gemini.retry_delay", "1s")
	v.SetDefault("gemini.rate_per_second", 1.0)
	v.SetDefault("gemini.rate_burst", 2)

	// Market defaults
	v.SetDefault("market.refresh_interval", "3m")
	v.SetDefault("market.max_history", 15)

	// Calculator defaults
	v.SetDefault("calculator.investment", 100000)
	v.SetDefault("calculator.buy_rate", 86.50)
	v.SetDefault("calculator.sell_rate", 87.20)
	v.SetDefault("calculator.fee_percent", 0.1)
	v.SetDefault("calculator.exchange", "Binance")
	v.SetDefault("calculator.coin", "USDT")
	v.SetDefault("calculator.fiat", "KGS")

	// State defaults
	v.SetDefault("state.dir", "")
	v.SetDefault("state.file", "state.json")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "p2p-calc")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Gemini.BaseURL == "" {
		return fmt.Errorf("gemini.base_url is required")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model is required")
	}
	if c.Market.MaxHistory <= 0 {
		return fmt.Errorf("market.max_history must be positive")
	}
	if c.Calculator.Investment <= 0 {
		return fmt.Errorf("calculator.investment must be positive")
	}
	if c.Calculator.BuyRate <= 0 {
		return fmt.Errorf("calculator.buy_rate must be positive")
	}
	if c.State.File == "" {
		return fmt.Errorf("state.file is required")
	}
	return nil
}
