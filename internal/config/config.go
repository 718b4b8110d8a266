package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Policy   PolicyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// PolicyConfig holds the payroll policy constants. Hard-coded values are
// fallbacks only; deployments override them per site.
type PolicyConfig struct {
	FullDayHours    float64
	HalfDayMinHours float64
	DefaultSalary   decimal.Decimal
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	// Payroll policy configuration
	fullDayHours, err := strconv.ParseFloat(getEnv("POLICY_FULL_DAY_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_FULL_DAY_HOURS: %w", err)
	}
	halfDayMinHours, err := strconv.ParseFloat(getEnv("POLICY_HALF_DAY_MIN_HOURS", "3"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_HALF_DAY_MIN_HOURS: %w", err)
	}
	defaultSalary, err := decimal.NewFromString(getEnv("POLICY_DEFAULT_MONTHLY_SALARY", "30000"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_DEFAULT_MONTHLY_SALARY: %w", err)
	}

	config.Policy = PolicyConfig{
		FullDayHours:    fullDayHours,
		HalfDayMinHours: halfDayMinHours,
		DefaultSalary:   defaultSalary,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Policy.FullDayHours <= 0 {
		return fmt.Errorf("POLICY_FULL_DAY_HOURS must be positive")
	}
	if c.Policy.HalfDayMinHours <= 0 || c.Policy.HalfDayMinHours > c.Policy.FullDayHours {
		return fmt.Errorf("POLICY_HALF_DAY_MIN_HOURS must be in (0, POLICY_FULL_DAY_HOURS]")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	return strings.Split(getEnv(env, fallback), ",")
}
