package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type QuoteTokenConfig struct {
	Secret string
	TTL    time.Duration
}

type CurrencyConfig struct {
	FallbackUSDToTRY float64
	FallbackEURToTRY float64
}

type MetricsConfig struct {
	Prefix string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	QuoteToken  QuoteTokenConfig
	Currency    CurrencyConfig
	Metrics     MetricsConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	v.SetDefault("QUOTE_TOKEN_TTL", "720h")
	v.SetDefault("CURRENCY_FALLBACK_USD_TRY", 33.0)
	v.SetDefault("CURRENCY_FALLBACK_EUR_TRY", 36.5)

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:        v.GetString("HTTP_HOST"),
			Port:        v.GetInt("HTTP_PORT"),
			CORSOrigins: parseList(v.GetString("CORS_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		QuoteToken: QuoteTokenConfig{
			Secret: v.GetString("QUOTE_TOKEN_SECRET"),
			TTL:    v.GetDuration("QUOTE_TOKEN_TTL"),
		},
		Currency: CurrencyConfig{
			FallbackUSDToTRY: v.GetFloat64("CURRENCY_FALLBACK_USD_TRY"),
			FallbackEURToTRY: v.GetFloat64("CURRENCY_FALLBACK_EUR_TRY"),
		},
		Metrics: MetricsConfig{
			Prefix: v.GetString("METRICS_PREFIX"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8001
	}
	if len(cfg.HTTP.CORSOrigins) == 0 {
		cfg.HTTP.CORSOrigins = []string{"*"}
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 10
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 5
	}
	if cfg.DB.ConnMaxLifetime == "" {
		cfg.DB.ConnMaxLifetime = "30m"
	}
	if cfg.Metrics.Prefix == "" {
		cfg.Metrics.Prefix = "procurement"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.QuoteToken.Secret == "" {
		return fmt.Errorf("QUOTE_TOKEN_SECRET is required")
	}
	if cfg.QuoteToken.TTL <= 0 {
		return fmt.Errorf("QUOTE_TOKEN_TTL must be positive")
	}
	if cfg.Currency.FallbackUSDToTRY <= 0 || cfg.Currency.FallbackEURToTRY <= 0 {
		return fmt.Errorf("currency fallback rates must be positive")
	}
	if _, err := time.ParseDuration(cfg.DB.ConnMaxLifetime); err != nil {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
