package config

import (
	gacha_constants "MenuGacha/constants/gacha"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultCategoryOrder is the display order of the Saizeriya menu
var DefaultCategoryOrder = []string{
	"サラダ", "スープ", "パン", "サイドメニュー", "ピザ", "ドリア",
	"パスタ", "肉メイン", "ライス", "デザート", "お酒", "トッピング",
}

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Session  SessionConfig  `mapstructure:"session"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Menu     MenuConfig     `mapstructure:"menu"`
	Gacha    GachaConfig    `mapstructure:"gacha"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type ServerConfig struct {
	Port     int      `mapstructure:"port"`
	Prod     bool     `mapstructure:"prod"`
	LogLevel string   `mapstructure:"log_level"`
	Origins  []string `mapstructure:"origins"`
}

type SessionConfig struct {
	Key  string `mapstructure:"key"`
	Name string `mapstructure:"name"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
	Verbose  bool   `mapstructure:"verbose"`
	Migrate  bool   `mapstructure:"migrate"`
}

// DSN builds the connection string understood by lib/pq
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	Database   int           `mapstructure:"database"`
	CatalogTTL time.Duration `mapstructure:"catalog_ttl"`
}

type MenuConfig struct {
	// "db" reads the menu_items table, "file" reads File directly
	Source string `mapstructure:"source"`
	File   string `mapstructure:"file"`
	// Import File into an empty menu_items table at startup
	SeedFromFile  bool     `mapstructure:"seed_from_file"`
	CategoryOrder []string `mapstructure:"category_order"`
}

type GachaConfig struct {
	MinBudget     int    `mapstructure:"min_budget"`
	MaxBudget     int    `mapstructure:"max_budget"`
	DefaultBudget int    `mapstructure:"default_budget"`
	Seed          uint64 `mapstructure:"seed"`
	RatePerMinute int    `mapstructure:"rate_per_minute"`
}

type AdminConfig struct {
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

// Load reads .env (when present), then config.yaml (when present), with
// environment variables overriding both, e.g. GACHA_MIN_BUDGET.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug("No config.yaml found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Menu.Source != "db" && c.Menu.Source != "file":
		return fmt.Errorf("menu.source must be \"db\" or \"file\", got %q", c.Menu.Source)
	case c.Gacha.MinBudget < 0:
		return fmt.Errorf("gacha.min_budget must not be negative")
	case c.Gacha.MaxBudget > gacha_constants.HARD_MAX_BUDGET:
		return fmt.Errorf("gacha.max_budget must not exceed %d", gacha_constants.HARD_MAX_BUDGET)
	case c.Gacha.MaxBudget < c.Gacha.MinBudget:
		return fmt.Errorf("gacha.max_budget (%d) is below gacha.min_budget (%d)", c.Gacha.MaxBudget, c.Gacha.MinBudget)
	case c.Gacha.DefaultBudget < 0 || c.Gacha.DefaultBudget > c.Gacha.MaxBudget:
		return fmt.Errorf("gacha.default_budget must be between 0 and gacha.max_budget")
	case c.Gacha.RatePerMinute <= 0:
		return fmt.Errorf("gacha.rate_per_minute must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.prod", false)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.origins", []string{"*"})

	v.SetDefault("session.key", "menu-gacha-dev-key")
	v.SetDefault("session.name", "gachasession")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "gacha")
	v.SetDefault("postgres.password", "gacha")
	v.SetDefault("postgres.database", "gacha")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.verbose", false)
	v.SetDefault("postgres.migrate", true)

	v.SetDefault("redis.url", "localhost:6379")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.catalog_ttl", 10*time.Minute)

	v.SetDefault("menu.source", "db")
	v.SetDefault("menu.file", "data/menu.json")
	v.SetDefault("menu.seed_from_file", true)
	v.SetDefault("menu.category_order", DefaultCategoryOrder)

	v.SetDefault("gacha.min_budget", 199)
	v.SetDefault("gacha.max_budget", 10000)
	v.SetDefault("gacha.default_budget", 1000)
	v.SetDefault("gacha.seed", 0)
	v.SetDefault("gacha.rate_per_minute", 60)

	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.jwt_secret", "")
	v.SetDefault("admin.token_ttl", 12*time.Hour)
}
