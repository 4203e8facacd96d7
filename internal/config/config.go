package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"
)

// Варианты приложения (обслуживаются по отдельности)
const (
	VariantCards = "cards"
	VariantUnits = "units"
)

// Backend определяет хранилище документов по схеме DATABASE_URL
type Backend string

// Поддерживаемые хранилища
const (
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
	BackendS3       Backend = "s3"
	BackendMemory   Backend = "memory"
)

var schemes = map[string]Backend{
	"postgres":    BackendPostgres,
	"postgresql":  BackendPostgres,
	"mongodb":     BackendMongo,
	"mongodb+srv": BackendMongo,
	"s3":          BackendS3,
	"memory":      BackendMemory,
}

// Config содержит всю конфигурацию приложения
type Config struct {
	App      AppConfig      // Общие настройки
	Server   ServerConfig   // Настройки HTTP сервера
	Database DatabaseConfig // Настройки хранилища документов
	S3       S3Config       // Настройки S3 (только для s3://)
}

// AppConfig содержит общие настройки приложения
type AppConfig struct {
	Variant  string     `envconfig:"APP_VARIANT" default:"cards"`
	LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"info"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port            int           `envconfig:"PORT" default:"3000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	CORSOrigins     []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Address возвращает адрес, на котором слушает сервер
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig содержит настройки подключения к хранилищу
type DatabaseConfig struct {
	URL      string `envconfig:"DATABASE_URL"`
	Name     string `envconfig:"DB_NAME"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`
}

// Backend возвращает хранилище, соответствующее схеме URL
func (d DatabaseConfig) Backend() (Backend, error) {
	u, err := url.Parse(d.URL)
	if err != nil {
		return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	backend, ok := schemes[strings.ToLower(u.Scheme)]
	if !ok {
		return "", fmt.Errorf("unsupported DATABASE_URL scheme %q", u.Scheme)
	}
	return backend, nil
}

// S3Config содержит настройки S3-совместимого хранилища
type S3Config struct {
	Endpoint     string `envconfig:"S3_ENDPOINT"`
	Region       string `envconfig:"S3_REGION" default:"us-east-1"`
	AccessKey    string `envconfig:"S3_ACCESS_KEY"`
	SecretKey    string `envconfig:"S3_SECRET_KEY"`
	UsePathStyle bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.App,
		validation.Field(&c.App.Variant, validation.Required, validation.In(VariantCards, VariantUnits)),
	); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.URL,
			validation.Required.Error("DATABASE_URL is required"),
			validation.By(func(any) error {
				_, err := c.Database.Backend()
				return err
			}),
		),
	); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	return nil
}

// Load читает конфигурацию из переменных окружения.
// MONGO_URI принимается как запасное имя для DATABASE_URL.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("MONGO_URI")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
