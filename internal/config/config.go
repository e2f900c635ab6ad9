package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Logging LoggingConfig
	Engine  EngineConfig
}

// ServerConfig governs the gRPC serving shell.
type ServerConfig struct {
	Port            int
	AuthToken       string
	ShutdownTimeout time.Duration
}

// DBConfig describes connectivity to PostgreSQL.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ConnString renders the lib/pq connection string.
func (c DBConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

// EngineConfig carries the money-movement engine's tunables.
type EngineConfig struct {
	HighValueThreshold  decimal.Decimal
	LowBalanceThreshold decimal.Decimal
	EventBuffer         int
}

const (
	defaultPort            = 8080
	defaultAuthToken       = "dev-token"
	defaultShutdownTimeout = 10 * time.Second
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBPassword      = "postgres"
	defaultDBName          = "corebank"
	defaultDBSSLMode       = "disable"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultHighValue       = "10000"
	defaultLowBalance      = "100"
	defaultEventBuffer     = 64
)

// fileConfig mirrors Config for the optional YAML overlay.
// Thresholds are strings so they parse through decimal, not float64.
type fileConfig struct {
	Server struct {
		Port      int    `yaml:"port"`
		AuthToken string `yaml:"auth_token"`
	} `yaml:"server"`
	DB struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"db"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Engine struct {
		HighValueThreshold  string `yaml:"high_value_threshold"`
		LowBalanceThreshold string `yaml:"low_balance_threshold"`
		EventBuffer         int    `yaml:"event_buffer"`
	} `yaml:"engine"`
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in that order of precedence
// (environment wins).
func Load() (Config, error) {
	highValue := defaultHighValue
	lowBalance := defaultLowBalance

	cfg := Config{
		Server: ServerConfig{
			Port:            defaultPort,
			AuthToken:       defaultAuthToken,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		DB: DBConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
			SSLMode:  defaultDBSSLMode,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Engine: EngineConfig{
			EventBuffer: defaultEventBuffer,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var fc fileConfig
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
		applyFile(&cfg, fc, &highValue, &lowBalance)
	}

	cfg.Server.Port = intFromEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Server.AuthToken = valueOrDefault("API_TOKEN", cfg.Server.AuthToken)
	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	cfg.DB.Host = valueOrDefault("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = intFromEnv("DB_PORT", cfg.DB.Port)
	cfg.DB.User = valueOrDefault("DB_USER", cfg.DB.User)
	cfg.DB.Password = valueOrDefault("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = valueOrDefault("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = valueOrDefault("DB_SSLMODE", cfg.DB.SSLMode)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)

	highValue = valueOrDefault("HIGH_VALUE_THRESHOLD", highValue)
	lowBalance = valueOrDefault("LOW_BALANCE_THRESHOLD", lowBalance)
	cfg.Engine.EventBuffer = intFromEnv("EVENT_BUFFER", cfg.Engine.EventBuffer)

	var err error
	if cfg.Engine.HighValueThreshold, err = decimal.NewFromString(highValue); err != nil {
		return Config{}, fmt.Errorf("invalid high-value threshold %q: %w", highValue, err)
	}
	if cfg.Engine.LowBalanceThreshold, err = decimal.NewFromString(lowBalance); err != nil {
		return Config{}, fmt.Errorf("invalid low-balance threshold %q: %w", lowBalance, err)
	}

	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig, highValue, lowBalance *string) {
	if fc.Server.Port != 0 {
		cfg.Server.Port = fc.Server.Port
	}
	if fc.Server.AuthToken != "" {
		cfg.Server.AuthToken = fc.Server.AuthToken
	}
	if fc.DB.Host != "" {
		cfg.DB.Host = fc.DB.Host
	}
	if fc.DB.Port != 0 {
		cfg.DB.Port = fc.DB.Port
	}
	if fc.DB.User != "" {
		cfg.DB.User = fc.DB.User
	}
	if fc.DB.Password != "" {
		cfg.DB.Password = fc.DB.Password
	}
	if fc.DB.Name != "" {
		cfg.DB.Name = fc.DB.Name
	}
	if fc.DB.SSLMode != "" {
		cfg.DB.SSLMode = fc.DB.SSLMode
	}
	if fc.Logging.Level != "" {
		cfg.Logging.Level = fc.Logging.Level
	}
	if fc.Logging.Format != "" {
		cfg.Logging.Format = fc.Logging.Format
	}
	if fc.Engine.HighValueThreshold != "" {
		*highValue = fc.Engine.HighValueThreshold
	}
	if fc.Engine.LowBalanceThreshold != "" {
		*lowBalance = fc.Engine.LowBalanceThreshold
	}
	if fc.Engine.EventBuffer != 0 {
		cfg.Engine.EventBuffer = fc.Engine.EventBuffer
	}
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intFromEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}
