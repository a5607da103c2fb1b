package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Storage   StorageConfig   `toml:"storage"`
	Push      PushConfig      `toml:"push"`
	WalkIn    WalkInConfig    `toml:"walkin"`
	Dashboard DashboardConfig `toml:"dashboard"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	QR        QRConfig        `toml:"qr"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
	MaxUploadMB     int      `toml:"max_upload_mb"`
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// RedisConfig настройки Redis
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки JWT и внутреннего вебхука оплаты
type AuthConfig struct {
	Enabled       bool   `toml:"enabled"`
	JWTSecret     string `toml:"jwt_secret"`
	WebhookSecret string `toml:"webhook_secret"`
	TokenIssuer   string `toml:"token_issuer"`
}

// StorageConfig настройки хранилища изображений
type StorageConfig struct {
	Dir       string `toml:"dir"`
	PublicURL string `toml:"public_url"`
	MaxWidth  int    `toml:"max_width"`
}

// PushConfig настройки отправки push-уведомлений
type PushConfig struct {
	Enabled     bool   `toml:"enabled"`
	URL         string `toml:"url"`
	APIKey      string `toml:"api_key"`
	Timeout     int    `toml:"timeout"`
	Concurrency int    `toml:"concurrency"`
	QueueSize   int    `toml:"queue_size"`
}

// WalkInConfig ограничение частоты записей без предварительной брони
type WalkInConfig struct {
	MaxPerPhone int `toml:"max_per_phone"`
	WindowSec   int `toml:"window_sec"`
}

// Window окно ограничения
func (c WalkInConfig) Window() time.Duration {
	return time.Duration(c.WindowSec) * time.Second
}

// DashboardConfig настройки панели салона
type DashboardConfig struct {
	NextLineSize int `toml:"next_line_size"`
}

// RateLimitConfig ограничение частоты HTTP запросов с одного адреса
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// QRConfig настройки QR-кодов для записи на месте
type QRConfig struct {
	ClientURL string `toml:"client_url"`
	Size      int    `toml:"size"`
}

// Load читает .env (если есть), затем TOML файл, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 {
		errs = append(errs, errors.New("server.http_port must be positive"))
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		errs = append(errs, errors.New("database.host, database.dbname and database.user are required"))
	}
	if c.Database.Port <= 0 {
		errs = append(errs, errors.New("database.port must be positive"))
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required when auth is enabled"))
	}
	if c.Dashboard.NextLineSize < 1 {
		errs = append(errs, errors.New("dashboard.next_line_size must be at least 1"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
	}
	if c.Push.Enabled && c.Push.URL == "" {
		errs = append(errs, errors.New("push.url is required when push is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("PAYMENT_WEBHOOK_SECRET"); v != "" {
		c.Auth.WebhookSecret = v
	}
	if v := os.Getenv("PUSH_API_KEY"); v != "" {
		c.Push.APIKey = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 20
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon_booking"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "uploads"
	}
	if c.Storage.PublicURL == "" {
		c.Storage.PublicURL = "/uploads"
	}
	if c.Storage.MaxWidth == 0 {
		c.Storage.MaxWidth = 1600
	}
	if c.Push.Timeout == 0 {
		c.Push.Timeout = 5
	}
	if c.Push.Concurrency == 0 {
		c.Push.Concurrency = 8
	}
	if c.Push.QueueSize == 0 {
		c.Push.QueueSize = 256
	}
	if c.WalkIn.MaxPerPhone == 0 {
		c.WalkIn.MaxPerPhone = 3
	}
	if c.WalkIn.WindowSec == 0 {
		c.WalkIn.WindowSec = 3600
	}
	if c.Dashboard.NextLineSize == 0 {
		c.Dashboard.NextLineSize = 4
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
	if c.QR.Size == 0 {
		c.QR.Size = 256
	}
}
