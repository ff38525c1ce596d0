package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

var (
	ErrEmptyToken   = errors.New("error getting RW_TELEGRAM_TOKEN: variable not specified or contains an empty string")
	ErrInvalidValue = errors.New("invalid configuration value")
)

type Config struct {
	Env           string        // Env is the current environment: local, development, production.
	StoragePath   string        // StoragePath is the sqlite database file.
	WatchlistPath string        // WatchlistPath is an optional YAML file synced into storage on start.
	CheckInterval time.Duration // CheckInterval is the period between full check runs.
	Retention     int           // Retention is the number of snapshots kept per page.
	Fetch         Fetch
	Price         Price
	Analyzer      Analyzer
	Tg            Telegram
}

type Fetch struct {
	Timeout   time.Duration
	UserAgent string
}

type Price struct {
	MinValid   decimal.Decimal // MinValid and MaxValid bound plausible extracted prices.
	MaxValid   decimal.Decimal
	MinPercent decimal.Decimal // MinPercent and MinAmount are the alerting thresholds.
	MinAmount  decimal.Decimal
}

type Analyzer struct {
	BaseURL string
	APIKey  string // APIKey may be empty, the analyzer is then unavailable.
	Model   string
	Timeout time.Duration
}

type Telegram struct {
	Token       string        // Token is an unique telgram bot token.
	Timeout     time.Duration // Timeout is a poller timeout duration.
	AlertChatID int64         // AlertChatID receives alerts of competitors without their own chat.
}

// MustLoad loads the configuration from an optional .env file and environment variables.
func MustLoad() *Config {
	// A missing .env is fine, real environment variables still apply.
	_ = godotenv.Load()

	viper.SetEnvPrefix("RW")
	viper.AutomaticEnv()

	viper.SetDefault("ENV", "production")
	viper.SetDefault("STORAGE_PATH", "./rivalwatch.db")
	viper.SetDefault("WATCHLIST_PATH", "")
	viper.SetDefault("CHECK_INTERVAL", "6h")
	viper.SetDefault("SNAPSHOT_RETENTION", 10)
	viper.SetDefault("FETCH_TIMEOUT", "30s")
	viper.SetDefault("FETCH_USER_AGENT", "")
	viper.SetDefault("PRICE_MIN_VALID", "0.01")
	viper.SetDefault("PRICE_MAX_VALID", "1000000")
	viper.SetDefault("PRICE_MIN_PERCENT", "1")
	viper.SetDefault("PRICE_MIN_AMOUNT", "0.50")
	viper.SetDefault("ANALYZER_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("ANALYZER_API_KEY", "")
	viper.SetDefault("ANALYZER_MODEL", "gpt-4o-mini")
	viper.SetDefault("ANALYZER_TIMEOUT", "20s")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")
	viper.SetDefault("TELEGRAM_ALERT_CHAT_ID", 0)

	if viper.GetString("TELEGRAM_TOKEN") == "" {
		panic(ErrEmptyToken)
	}

	return &Config{
		Env:           viper.GetString("ENV"),
		StoragePath:   viper.GetString("STORAGE_PATH"),
		WatchlistPath: viper.GetString("WATCHLIST_PATH"),
		CheckInterval: viper.GetDuration("CHECK_INTERVAL"),
		Retention:     viper.GetInt("SNAPSHOT_RETENTION"),
		Fetch: Fetch{
			Timeout:   viper.GetDuration("FETCH_TIMEOUT"),
			UserAgent: viper.GetString("FETCH_USER_AGENT"),
		},
		Price: Price{
			MinValid:   mustDecimal("PRICE_MIN_VALID"),
			MaxValid:   mustDecimal("PRICE_MAX_VALID"),
			MinPercent: mustDecimal("PRICE_MIN_PERCENT"),
			MinAmount:  mustDecimal("PRICE_MIN_AMOUNT"),
		},
		Analyzer: Analyzer{
			BaseURL: viper.GetString("ANALYZER_BASE_URL"),
			APIKey:  viper.GetString("ANALYZER_API_KEY"),
			Model:   viper.GetString("ANALYZER_MODEL"),
			Timeout: viper.GetDuration("ANALYZER_TIMEOUT"),
		},
		Tg: Telegram{
			Token:       viper.GetString("TELEGRAM_TOKEN"),
			Timeout:     viper.GetDuration("TELEGRAM_TIMEOUT"),
			AlertChatID: viper.GetInt64("TELEGRAM_ALERT_CHAT_ID"),
		},
	}
}

func mustDecimal(key string) decimal.Decimal {
	d, err := decimal.NewFromString(viper.GetString(key))
	if err != nil || d.IsNegative() {
		panic(fmt.Errorf("%w: RW_%s=%q", ErrInvalidValue, key, viper.GetString(key)))
	}

	return d
}
