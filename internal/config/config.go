// Package config загружает конфигурацию сервиса из TOML файла.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-EscrowService/internal/domain"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Events   EventsConfig   `toml:"events"`
	Policy   PolicyConfig   `toml:"policy"`
}

// ServerConfig настройки HTTP сервера
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

// AuthConfig настройки проверки подписи запросов (JWT c wallet-адресом)
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// EventsConfig настройки публикации событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// PolicyConfig параметры политики возвратов и комиссии.
// Курс EUR -> единицы леджера фиксированный и задается конфигурацией,
// а не вычисляется. Поля указатели: отсутствующее значение получает
// дефолт, явный ноль трактуется буквально.
type PolicyConfig struct {
	EURRateUnits       *int64 `toml:"eur_rate_units"`
	CommissionBps      *int64 `toml:"commission_bps"`
	NoShowGraceMinutes *int64 `toml:"no_show_grace_minutes"`
}

// DomainPolicy конвертирует конфигурацию в доменную политику,
// подставляя дефолты для незаполненных значений
func (p PolicyConfig) DomainPolicy() domain.Policy {
	policy := domain.DefaultPolicy()
	if p.EURRateUnits != nil {
		policy.EURRateUnits = *p.EURRateUnits
	}
	if p.CommissionBps != nil {
		policy.CommissionBps = *p.CommissionBps
	}
	if p.NoShowGraceMinutes != nil {
		policy.NoShowGrace = time.Duration(*p.NoShowGraceMinutes) * time.Minute
	}
	return policy
}

// Load читает и валидирует конфигурацию из файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("events.url is required when events are enabled")
	}
	if c.Policy.EURRateUnits != nil && *c.Policy.EURRateUnits <= 0 {
		return fmt.Errorf("policy.eur_rate_units must be positive")
	}
	if c.Policy.CommissionBps != nil && (*c.Policy.CommissionBps < 0 || *c.Policy.CommissionBps > 10000) {
		return fmt.Errorf("policy.commission_bps must be between 0 and 10000")
	}
	if c.Policy.NoShowGraceMinutes != nil && *c.Policy.NoShowGraceMinutes < 0 {
		return fmt.Errorf("policy.no_show_grace_minutes must not be negative")
	}
	return nil
}
