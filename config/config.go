package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the whole application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Mail     MailConfig     `mapstructure:"mail"`
	Log      LogConfig      `mapstructure:"log"`
	Site     SiteConfig     `mapstructure:"site"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port            int        `mapstructure:"port"`
	BaseURL         string     `mapstructure:"base_url"`
	MaxBodyBytes    int64      `mapstructure:"max_body_bytes"`
	RequestIDHeader string     `mapstructure:"request_id_header"`
	CORS            CORSConfig `mapstructure:"cors"`
}

// HTTPS reports whether the public base URL is served over TLS.
func (c *ServerConfig) HTTPS() bool {
	return strings.HasPrefix(strings.ToLower(c.BaseURL), "https://")
}

// CORSConfig cross-origin settings. An origin of "*" allows any origin
// without credentials.
type CORSConfig struct {
	AllowOrigins []string      `mapstructure:"allow_origins"`
	MaxAge       time.Duration `mapstructure:"max_age"`
}

// DatabaseConfig selects postgres (production) or sqlite (local).
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres | sqlite
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis settings. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig admin JWT settings.
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	AdminUsername   string        `mapstructure:"admin_username"`
	AdminPassword   string        `mapstructure:"admin_password"`
}

// MailConfig SMTP settings for the welcome mail.
type MailConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	SMTPHost  string `mapstructure:"smtp_host"`
	SMTPPort  int    `mapstructure:"smtp_port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	From      string `mapstructure:"from"`
	QueueSize int    `mapstructure:"queue_size"`
}

// LogConfig logging settings.
type LogConfig struct {
	Level  string   `mapstructure:"level"`
	Format string   `mapstructure:"format"` // json | console
	Output []string `mapstructure:"output"` // zap sink URLs or file paths
}

// SiteConfig public-facing settings of the club site.
type SiteConfig struct {
	Title        string        `mapstructure:"title"`
	Description  string        `mapstructure:"description"`
	Author       string        `mapstructure:"author"`
	Email        string        `mapstructure:"email"`
	Timezone     string        `mapstructure:"timezone"`
	FeedSize     int           `mapstructure:"feed_size"`
	FeedCacheTTL time.Duration `mapstructure:"feed_cache_ttl"`
	RegisterRate int           `mapstructure:"register_rate"` // requests per minute and IP
}

// Location resolves Site.Timezone, falling back to UTC.
func (c *SiteConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads defaults, then the config file, then CLUB_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.request_id_header", "X-Request-ID")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.cors.max_age", "24h")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "club")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Africa/Tunis")
	v.SetDefault("db.sqlite_path", "data/club.db")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h")
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password", "")

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.smtp_host", "")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "club@localhost")
	v.SetDefault("mail.queue_size", 64)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", []string{"stdout"})

	v.SetDefault("site.title", "FSS Open Tech Club")
	v.SetDefault("site.description", "News from the club")
	v.SetDefault("site.author", "FSS Open Tech Club")
	v.SetDefault("site.email", "")
	v.SetDefault("site.timezone", "Africa/Tunis")
	v.SetDefault("site.feed_size", 20)
	v.SetDefault("site.feed_cache_ttl", "5m")
	v.SetDefault("site.register_rate", 10)

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("CLUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535")
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("config: db.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if _, err := time.LoadLocation(c.Site.Timezone); err != nil {
		return fmt.Errorf("config: site.timezone: %w", err)
	}
	return nil
}
