package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrInvalidConfig возвращается, если конфигурация не проходит проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Cache     CacheConfig     `toml:"cache"`
	AIRanker  AIRankerConfig  `toml:"ai_ranker"`
	RabbitMQ  RabbitMQConfig  `toml:"rabbitmq"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Admins    AdminsConfig    `toml:"admins"`
	Catalog   CatalogConfig   `toml:"catalog"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
	RequestTimeout  int `toml:"request_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	QueryTimeout    int    `toml:"query_timeout"`     // миллисекунды, statement_timeout
	TxRetries       int    `toml:"tx_retries"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки Redis (лок слотов и кэш каталога)
type RedisConfig struct {
	Enabled     bool   `toml:"enabled"`
	Address     string `toml:"address"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	DialTimeout int    `toml:"dial_timeout"` // миллисекунды
	ReadTimeout int    `toml:"read_timeout"` // миллисекунды
	LockTTL     int    `toml:"lock_ttl"`     // миллисекунды
	LockWait    int    `toml:"lock_wait"`    // миллисекунды
}

// CacheConfig настройки кэша каталога площадок
type CacheConfig struct {
	VenuesTTL int `toml:"venues_ttl"` // секунды
}

// AIRankerConfig настройки внешнего сервиса ранжирования
type AIRankerConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"` // секунды
}

// RabbitMQConfig настройки публикации событий жизненного цикла заявок
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// BookingConfig бизнес-ограничения бронирования
type BookingConfig struct {
	PendingTTL     int    `toml:"pending_ttl"`    // часы; 0 отключает истечение заявок
	SweepInterval  int    `toml:"sweep_interval"` // секунды
	SweepBatchSize uint64 `toml:"sweep_batch_size"`
	MaxAdvanceDays int    `toml:"max_advance_days"`
}

// RateLimitConfig ограничение частоты подачи заявок
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
	Burst             int     `toml:"burst"`
}

// AdminsConfig список администраторов кампуса
type AdminsConfig struct {
	UserIDs []string `toml:"user_ids"`
}

// CatalogConfig источник каталога площадок
type CatalogConfig struct {
	SeedFile string `toml:"seed_file"`
}

// Load читает конфигурацию из TOML файла
// Перед разбором подгружается .env (если есть) и раскрываются плейсхолдеры ${ENV_VAR}
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := defaults()
	if _, err := toml.Decode(os.ExpandEnv(string(data)), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
			RequestTimeout:  20,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			QueryTimeout:    5000,
			TxRetries:       3,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "eventsync-booking",
		},
		Redis: RedisConfig{
			DialTimeout: 500,
			ReadTimeout: 300,
			LockTTL:     10000,
			LockWait:    2000,
		},
		Cache: CacheConfig{
			VenuesTTL: 300,
		},
		AIRanker: AIRankerConfig{
			Timeout: 5,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "eventsync.requests",
		},
		Booking: BookingConfig{
			PendingTTL:     72,
			SweepInterval:  300,
			SweepBatchSize: 100,
			MaxAdvanceDays: 90,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 10,
			Burst:             3,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		problems = append(problems, "database.host, database.dbname and database.user are required")
	}
	if c.Database.TxRetries < 0 {
		problems = append(problems, "database.tx_retries must not be negative")
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		problems = append(problems, "redis.address is required when redis is enabled")
	}
	if c.AIRanker.Enabled && c.AIRanker.URL == "" {
		problems = append(problems, "ai_ranker.url is required when ai_ranker is enabled")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		problems = append(problems, "rabbitmq.url is required when rabbitmq is enabled")
	}
	if c.Booking.PendingTTL < 0 {
		problems = append(problems, "booking.pending_ttl must not be negative")
	}
	if c.Booking.MaxAdvanceDays <= 0 {
		problems = append(problems, "booking.max_advance_days must be positive")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		problems = append(problems, "rate_limit.requests_per_minute must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// DSN формирует строку подключения для lib/pq
// statement_timeout ограничивает каждый запрос на стороне PostgreSQL
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.DBName,
	}

	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	if d.QueryTimeout > 0 {
		q.Set("options", fmt.Sprintf("-c statement_timeout=%d", d.QueryTimeout))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// ConnMaxLifetimeDuration время жизни соединения в пуле
func (d DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// PendingTTLDuration срок ожидания решения по заявке; 0 отключает истечение
func (b BookingConfig) PendingTTLDuration() time.Duration {
	return time.Duration(b.PendingTTL) * time.Hour
}

// SweepIntervalDuration период фоновой очистки
func (b BookingConfig) SweepIntervalDuration() time.Duration {
	return time.Duration(b.SweepInterval) * time.Second
}

// IsAdmin проверяет, входит ли пользователь в список администраторов
func (a AdminsConfig) IsAdmin(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range a.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
