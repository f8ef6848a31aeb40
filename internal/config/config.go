package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Catalog  CatalogConfig  `toml:"catalog_service"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Redis    RedisConfig    `toml:"redis"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Pricing  PricingConfig  `toml:"pricing"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN собирает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogConfig настройки клиента каталога материалов
type CatalogConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// RabbitMQConfig настройки публикации событий уведомлений
type RabbitMQConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
}

// RedisConfig настройки кеша ответов каталога
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	CacheTTL int    `toml:"cache_ttl"` // seconds
}

// AuthConfig секреты аутентификации
type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	WebhookSecret string `toml:"webhook_secret"`
}

// BookingConfig параметры расчёта доступности
type BookingConfig struct {
	HorizonDays             int `toml:"horizon_days"`
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
}

// PricingConfig дефолты ценообразования (заменяют глобальные админ-настройки)
type PricingConfig struct {
	DefaultMentorFeePercentage int                `toml:"default_mentor_fee_percentage"`
	OfflineSurchargePercent    int                `toml:"offline_surcharge_percent"`
	LevelMultipliers           map[string]float64 `toml:"level_multipliers"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "mnt-booking-service"
	}
	if cfg.Catalog.Timeout == 0 {
		cfg.Catalog.Timeout = 5
	}
	if cfg.Redis.CacheTTL == 0 {
		cfg.Redis.CacheTTL = 60
	}
	if cfg.Booking.HorizonDays == 0 {
		cfg.Booking.HorizonDays = 30
	}
	if cfg.Booking.MinBookingNoticeMinutes == 0 {
		cfg.Booking.MinBookingNoticeMinutes = 60
	}
	if cfg.Pricing.DefaultMentorFeePercentage == 0 {
		cfg.Pricing.DefaultMentorFeePercentage = 70
	}
	if cfg.Pricing.OfflineSurchargePercent == 0 {
		cfg.Pricing.OfflineSurchargePercent = 20
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if cfg.Pricing.DefaultMentorFeePercentage < 0 || cfg.Pricing.DefaultMentorFeePercentage > 100 {
		return fmt.Errorf("pricing.default_mentor_fee_percentage must be in [0, 100]")
	}
	if cfg.Booking.HorizonDays < 1 || cfg.Booking.HorizonDays > 365 {
		return fmt.Errorf("booking.horizon_days must be in [1, 365]")
	}
	return nil
}
