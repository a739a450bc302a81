package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	Admin    AdminConfig    `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int           `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     time.Duration `toml:"read_timeout" envconfig:"HTTP_READ_TIMEOUT"`
	WriteTimeout    time.Duration `toml:"write_timeout" envconfig:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `toml:"idle_timeout" envconfig:"HTTP_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" envconfig:"HTTP_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string        `toml:"host" envconfig:"DB_HOST"`
	Port            int           `toml:"port" envconfig:"DB_PORT"`
	User            string        `toml:"user" envconfig:"DB_USER"`
	Password        string        `toml:"password" envconfig:"DB_PASSWORD"`
	DBName          string        `toml:"dbname" envconfig:"DB_NAME"`
	SSLMode         string        `toml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxOpenConns    int           `toml:"max_open_conns" envconfig:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `toml:"max_idle_conns" envconfig:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime" envconfig:"DB_CONN_MAX_LIFETIME"`
}

type LogsConfig struct {
	File  string `toml:"file" envconfig:"LOG_FILE"`
	Level string `toml:"level" envconfig:"LOG_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"METRICS_ENABLED"`
	Path        string `toml:"path" envconfig:"METRICS_PATH"`
	ServiceName string `toml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}

// AuthConfig параметры проверки токенов провайдера идентификации
type AuthConfig struct {
	JWTSecret string        `toml:"jwt_secret" envconfig:"JWT_SECRET"`
	Issuer    string        `toml:"issuer" envconfig:"JWT_ISSUER"`
	Audience  string        `toml:"audience" envconfig:"JWT_AUDIENCE"`
	Leeway    time.Duration `toml:"leeway" envconfig:"JWT_LEEWAY"`
}

// RedisConfig публикация событий бронирований
type RedisConfig struct {
	Enabled      bool          `toml:"enabled" envconfig:"REDIS_ENABLED"`
	Addr         string        `toml:"addr" envconfig:"REDIS_ADDR"`
	Password     string        `toml:"password" envconfig:"REDIS_PASSWORD"`
	DB           int           `toml:"db" envconfig:"REDIS_DB"`
	Channel      string        `toml:"channel" envconfig:"REDIS_CHANNEL"`
	DialTimeout  time.Duration `toml:"dial_timeout" envconfig:"REDIS_DIAL_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" envconfig:"REDIS_WRITE_TIMEOUT"`
}

// AdminConfig bootstrap-администраторы: профили с этими e-mail получают root
type AdminConfig struct {
	Emails []string `toml:"emails" envconfig:"ADMIN_EMAILS"`
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Addr адрес HTTP сервера
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.HTTPPort)
}

// Load читает toml файл, затем применяет переменные окружения
// Переменные из .env (если файл есть) не перекрывают уже заданные в окружении.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
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
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "yakidesk",
		},
		Auth: AuthConfig{
			Leeway: 30 * time.Second,
		},
		Redis: RedisConfig{
			Addr:         "localhost:6379",
			Channel:      "yakidesk:bookings",
			DialTimeout:  2 * time.Second,
			WriteTimeout: time.Second,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}
	return nil
}

// applyEnv переопределяет параметры из переменных окружения YAKIDESK_*
// YAKIDESK_DATABASE_URL применяется первым, отдельные YAKIDESK_DB_* его уточняют.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(envPrefix + "_DATABASE_URL"); ok && strings.TrimSpace(v) != "" {
		if err := applyDatabaseURL(&cfg.Database, strings.TrimSpace(v)); err != nil {
			return err
		}
	}

	// Секции обрабатываются по отдельности: имена переменных задаются тегами
	// envconfig без префикса секции (YAKIDESK_DB_HOST, а не YAKIDESK_DATABASE_DB_HOST).
	sections := []interface{}{
		&cfg.Server,
		&cfg.Database,
		&cfg.Logs,
		&cfg.Metrics,
		&cfg.Auth,
		&cfg.Redis,
		&cfg.Admin,
	}
	for _, section := range sections {
		if err := envconfig.Process(envPrefix, section); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

const envPrefix = "YAKIDESK"

func applyDatabaseURL(db *DatabaseConfig, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: %s_DATABASE_URL is not a valid url", ErrInvalidConfig, envPrefix)
	}

	db.Host = u.Hostname()
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("%w: %s_DATABASE_URL port: %v", ErrInvalidConfig, envPrefix, err)
		}
		db.Port = port
	}
	if u.User != nil {
		db.User = u.User.Username()
		if pwd, ok := u.User.Password(); ok {
			db.Password = pwd
		}
	}
	if name := strings.TrimPrefix(u.Path, "/"); name != "" {
		db.DBName = name
	}
	if mode := u.Query().Get("sslmode"); mode != "" {
		db.SSLMode = mode
	}
	return nil
}
