package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// DefaultPath путь к конфигурации, если CONFIG_PATH не задан
	DefaultPath = "config.toml"

	envConfigPath = "CONFIG_PATH"
	envJWTSecret  = "JWT_SECRET"
	envDBPassword = "DB_PASSWORD"
)

var (
	// ErrRead возвращается, если файл конфигурации не удалось прочитать
	ErrRead = errors.New("config: failed to read config file")

	// ErrInvalid возвращается, если в конфигурации нет обязательных значений
	ErrInvalid = errors.New("config: invalid configuration")
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Redis    RedisConfig    `toml:"redis"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File   string `toml:"file"`
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type BookingConfig struct {
	// Timezone часовой пояс, в котором определяется "сегодня" для проверок дат
	Timezone string `toml:"timezone"`
}

// Location возвращает часовой пояс сервиса, пустое значение означает UTC
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

type KafkaConfig struct {
	Enabled  bool     `toml:"enabled"`
	Brokers  []string `toml:"brokers"`
	Topic    string   `toml:"topic"`
	ClientID string   `toml:"client_id"`
	Timeout  int      `toml:"timeout"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// TTL время жизни сохраненного ответа по ключу идемпотентности, в секундах
	TTL int `toml:"ttl"`
}

// Load читает конфигурацию. Сначала подхватывается .env (если есть),
// затем TOML файл, затем переменные окружения перекрывают секреты.
// Если CONFIG_PATH задан, он имеет приоритет над path.
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	if p := os.Getenv(envConfigPath); p != "" {
		path = p
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			ServiceName: "stay_service",
			Path:        "/metrics",
		},
		Booking: BookingConfig{
			Timezone: "UTC",
		},
		Kafka: KafkaConfig{
			Topic:    "booking-events",
			ClientID: "stay-service",
			Timeout:  5,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  86400,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envJWTSecret); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv(envDBPassword); v != "" {
		cfg.Database.Password = v
	}
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0:
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalid)
	case c.Database.Host == "":
		return fmt.Errorf("%w: database.host is required", ErrInvalid)
	case c.Database.DBName == "":
		return fmt.Errorf("%w: database.dbname is required", ErrInvalid)
	case c.Auth.JWTSecret == "":
		return fmt.Errorf("%w: auth.jwt_secret (or JWT_SECRET) is required", ErrInvalid)
	case c.Logs.Format != "text" && c.Logs.Format != "json":
		return fmt.Errorf("%w: logs.format must be text or json", ErrInvalid)
	case c.Metrics.Enabled && c.Metrics.Path == "":
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalid)
	case c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == ""):
		return fmt.Errorf("%w: kafka.brokers and kafka.topic are required when kafka is enabled", ErrInvalid)
	case c.Redis.Enabled && (c.Redis.Addr == "" || c.Redis.TTL <= 0):
		return fmt.Errorf("%w: redis.addr and positive redis.ttl are required when redis is enabled", ErrInvalid)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalid, err)
	}

	return nil
}
