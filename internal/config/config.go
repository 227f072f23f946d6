package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Identity  IdentityConfig  `toml:"identity"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
	Engine    EngineConfig    `toml:"engine"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки проверки bearer токенов
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// IdentityConfig настройки клиента identity provider
type IdentityConfig struct {
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"`   // секунды
	CacheTTL int    `toml:"cache_ttl"` // секунды, 0 = без кэша
}

// RedisConfig настройки Redis (кэш профилей identity provider)
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig ограничение частоты запросов на IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// CORSConfig настройки CORS
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// EngineConfig параметры сетки слотов и вместимости
type EngineConfig struct {
	OpenTime            string `toml:"open_time"`  // HH:MM в опорной зоне
	CloseTime           string `toml:"close_time"` // HH:MM в опорной зоне
	SlotIntervalMinutes int    `toml:"slot_interval_minutes"`
	UTCOffsetMinutes    int    `toml:"utc_offset_minutes"`
	ZoneName            string `toml:"zone_name"`
	DefaultActiveBays   int    `toml:"default_active_bays"`
	MaxActiveBays       int    `toml:"max_active_bays"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "washbooking",
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
			ServiceName: "wash-booking",
		},
		Identity: IdentityConfig{
			Timeout: 5,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Engine: EngineConfig{
			OpenTime:            "07:00",
			CloseTime:           "18:00",
			SlotIntervalMinutes: 15,
			UTCOffsetMinutes:    120,
			ZoneName:            "SAST",
			DefaultActiveBays:   1,
			MaxActiveBays:       50,
		},
	}
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
// Переменные окружения дополнительно подгружаются из .env, если он есть
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Identity.URL, "IDENTITY_URL")
	setString(&c.Redis.Address, "REDIS_ADDRESS")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.Engine.OpenTime, "ENGINE_OPEN_TIME")
	setString(&c.Engine.CloseTime, "ENGINE_CLOSE_TIME")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Engine.SlotIntervalMinutes, "ENGINE_SLOT_INTERVAL_MINUTES"); err != nil {
		return err
	}
	if err := setInt(&c.Engine.UTCOffsetMinutes, "ENGINE_UTC_OFFSET_MINUTES"); err != nil {
		return err
	}
	if err := setInt(&c.Engine.DefaultActiveBays, "ENGINE_DEFAULT_ACTIVE_BAYS"); err != nil {
		return err
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORS.AllowedOrigins = strings.Split(origins, ",")
	}
	return nil
}

// Validate проверяет обязательные параметры и параметры сетки
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}

	e := c.Engine
	open, err := minutesOf(e.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: engine.open_time: %v", ErrInvalidConfig, err)
	}
	closeAt, err := minutesOf(e.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: engine.close_time: %v", ErrInvalidConfig, err)
	}
	if closeAt <= open {
		return fmt.Errorf("%w: engine.close_time must be after open_time", ErrInvalidConfig)
	}
	if e.SlotIntervalMinutes <= 0 || (closeAt-open)%e.SlotIntervalMinutes != 0 {
		return fmt.Errorf("%w: engine.slot_interval_minutes must divide the operating window", ErrInvalidConfig)
	}
	if e.UTCOffsetMinutes < -14*60 || e.UTCOffsetMinutes > 14*60 {
		return fmt.Errorf("%w: engine.utc_offset_minutes out of range", ErrInvalidConfig)
	}
	if e.DefaultActiveBays < 1 || e.DefaultActiveBays > e.MaxActiveBays {
		return fmt.Errorf("%w: engine.default_active_bays must be in [1, max_active_bays]", ErrInvalidConfig)
	}
	return nil
}

func minutesOf(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return h*60 + m, nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err)
	}
	*dst = n
	return nil
}
