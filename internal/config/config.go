package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// envPrefix префикс переменных окружения, переопределяющих значения из файла
const envPrefix = "SMC_"

// Config конфигурация сервиса
type Config struct {
	Server              ServerConfig              `toml:"server"`
	Database            DatabaseConfig            `toml:"database"`
	Logs                LogsConfig                `toml:"logs"`
	Metrics             MetricsConfig             `toml:"metrics"`
	Tracing             TracingConfig             `toml:"tracing"`
	Redis               RedisConfig               `toml:"redis"`
	RateLimit           RateLimitConfig           `toml:"rate_limit"`
	NotificationService NotificationServiceConfig `toml:"notification_service"`
	Availability        AvailabilityConfig        `toml:"availability"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
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
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN строка подключения в формате URL (понимают и lib/pq, и pgx)
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TracingConfig параметры OpenTelemetry
type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	ServiceName  string  `toml:"service_name"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

// RedisConfig параметры Redis; пустой Addr отключает Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Enabled возвращает true, если Redis настроен
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

// RateLimitConfig ограничение частоты запросов к публичной странице записи
type RateLimitConfig struct {
	Enabled       bool   `toml:"enabled"`
	Limit         int    `toml:"limit"`          // запросов за окно
	WindowSeconds int    `toml:"window_seconds"` // длина окна
	Prefix        string `toml:"prefix"`         // префикс ключей в Redis
	FailOpen      bool   `toml:"fail_open"`      // пропускать запросы, если Redis недоступен
	// Адреса и подсети прокси, которым доверяем X-Forwarded-For; пусто - ключом служит адрес соединения
	TrustedProxies []string `toml:"trusted_proxies"`
}

// NotificationServiceConfig клиент сервиса уведомлений; пустой URL отключает уведомления
type NotificationServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// AvailabilityConfig параметры расчета свободного времени
type AvailabilityConfig struct {
	Parallelism int `toml:"parallelism"` // сколько мастеров считаются одновременно
}

// Load читает конфигурацию из toml файла
// Переменные из .env (если файл есть) и окружения с префиксом SMC_ переопределяют значения файла
func Load(path string) (*Config, error) {
	// .env необязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
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
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon-service",
		},
		Tracing: TracingConfig{
			ServiceName:  "salon-service",
			OTLPEndpoint: "localhost:4317",
			SampleRatio:  1,
		},
		RateLimit: RateLimitConfig{
			Limit:         60,
			WindowSeconds: 60,
			Prefix:        "rl:public",
			FailOpen:      true,
		},
		NotificationService: NotificationServiceConfig{
			Timeout: 5,
		},
		Availability: AvailabilityConfig{
			Parallelism: 8,
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func applyEnv(cfg *Config) error {
	strVars := map[string]*string{
		"DB_HOST":              &cfg.Database.Host,
		"DB_USER":              &cfg.Database.User,
		"DB_PASSWORD":          &cfg.Database.Password,
		"DB_NAME":              &cfg.Database.DBName,
		"DB_SSLMODE":           &cfg.Database.SSLMode,
		"LOG_LEVEL":            &cfg.Logs.Level,
		"REDIS_ADDR":           &cfg.Redis.Addr,
		"REDIS_PASSWORD":       &cfg.Redis.Password,
		"OTLP_ENDPOINT":        &cfg.Tracing.OTLPEndpoint,
		"NOTIFICATION_SERVICE": &cfg.NotificationService.URL,
	}
	for name, dst := range strVars {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"HTTP_PORT": &cfg.Server.HTTPPort,
		"DB_PORT":   &cfg.Database.Port,
	}
	for name, dst := range intVars {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s=%q: %w", envPrefix, name, v, err)
		}
		*dst = n
	}

	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in range 1-65535, got %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.User == "" {
		errs = append(errs, errors.New("database.user is required"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path))
	}
	if c.RateLimit.Enabled && !c.Redis.Enabled() {
		errs = append(errs, errors.New("rate_limit.enabled requires redis.addr"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.WindowSeconds <= 0) {
		errs = append(errs, errors.New("rate_limit.limit and rate_limit.window_seconds must be positive"))
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if !validProxy(proxy) {
			errs = append(errs, fmt.Errorf("rate_limit.trusted_proxies: invalid address or CIDR %q", proxy))
		}
	}
	if c.Availability.Parallelism <= 0 {
		errs = append(errs, fmt.Errorf("availability.parallelism must be positive, got %d", c.Availability.Parallelism))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func validProxy(proxy string) bool {
	proxy = strings.TrimSpace(proxy)
	if strings.Contains(proxy, "/") {
		_, err := netip.ParsePrefix(proxy)
		return err == nil
	}
	_, err := netip.ParseAddr(proxy)
	return err == nil
}
