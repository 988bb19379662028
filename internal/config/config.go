package config

import (
	"fmt"
	"net/url"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
	Business  BusinessConfig
	Health    HealthConfig
	Auth      AuthConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns DATABASE_URL when set, otherwise builds one from the parts
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type SchedulerConfig struct {
	Timezone    string
	PayrollCron string
	OverdueCron string
	LockTTL     time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

type BusinessConfig struct {
	// PayrollPreserveBonus keeps a manually set bonus when a period is recalculated
	PayrollPreserveBonus bool
	ReportCacheTTL       time.Duration
}

type HealthConfig struct {
	Timeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "backoffice")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SCHEDULER_TIMEZONE", "Asia/Tashkent")
	v.SetDefault("PAYROLL_CRON", "0 0 3 1 * *")
	v.SetDefault("OVERDUE_CRON", "0 0 0 * * *")
	v.SetDefault("SCHEDULER_LOCK_TTL", "10m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PAYROLL_PRESERVE_BONUS", false)
	v.SetDefault("REPORT_CACHE_TTL", "10m")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")
	v.SetDefault("JWT_SECRET", "")
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Real environment wins over .env, so missing files are fine
	for _, file := range []string{".env", "./deployments/.env"} {
		_ = godotenv.Load(file)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper decodes a config from an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	config := Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetString("DATABASE_PORT"),
			Name:            v.GetString("DATABASE_NAME"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Scheduler: SchedulerConfig{
			Timezone:    v.GetString("SCHEDULER_TIMEZONE"),
			PayrollCron: v.GetString("PAYROLL_CRON"),
			OverdueCron: v.GetString("OVERDUE_CRON"),
			LockTTL:     v.GetDuration("SCHEDULER_LOCK_TTL"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Business: BusinessConfig{
			PayrollPreserveBonus: v.GetBool("PAYROLL_PRESERVE_BONUS"),
			ReportCacheTTL:       v.GetDuration("REPORT_CACHE_TTL"),
		},
		Health: HealthConfig{
			Timeout: v.GetDuration("HEALTH_CHECK_TIMEOUT"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST and DATABASE_NAME are required")
	}

	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("DATABASE_MAX_OPEN_CONNS must be greater than 0")
	}

	if c.Health.Timeout <= 0 {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a positive duration")
	}

	if c.Business.ReportCacheTTL < 0 {
		return fmt.Errorf("REPORT_CACHE_TTL must not be negative")
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA zone: %w", err)
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Scheduler.PayrollCron); err != nil {
		return fmt.Errorf("PAYROLL_CRON must be a valid cron spec: %w", err)
	}
	if _, err := parser.Parse(c.Scheduler.OverdueCron); err != nil {
		return fmt.Errorf("OVERDUE_CRON must be a valid cron spec: %w", err)
	}

	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// Location returns the zone used for calendar computations
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
