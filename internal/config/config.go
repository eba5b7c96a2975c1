package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Notify   NotifyConfig   `yaml:"notify"`
}

type ServerConfig struct {
	HTTPPort           string        `yaml:"http_port"`
	GRPCPort           string        `yaml:"grpc_port"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"`
	FileName string `yaml:"file_name"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type NotifyConfig struct {
	SlackToken   string        `yaml:"slack_token"`
	SlackChannel string        `yaml:"slack_channel"`
	SlackAPIURL  string        `yaml:"slack_api_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:           "8081",
			GRPCPort:           "9090",
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       30 * time.Second,
			IdleTimeout:        120 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:    "info",
			FilePath: "logs",
			FileName: "tasklist-service.log",
		},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
			Name: "tasklist_db",
			User: "tasklist_user",
		},
		Notify: NotifyConfig{
			SlackChannel: "task-notifications",
			Timeout:      5 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty or the file does not exist), then environment
// variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.HTTPPort = getEnv("HTTP_PORT", cfg.Server.HTTPPort)
	cfg.Server.GRPCPort = getEnv("GRPC_PORT", cfg.Server.GRPCPort)
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.Server.CORSAllowedOrigins = parseList(origins)
	}

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.FilePath = getEnv("LOG_FILE_PATH", cfg.Logging.FilePath)
	cfg.Logging.FileName = getEnv("LOG_FILE_NAME", cfg.Logging.FileName)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvInt("DB_PORT", cfg.Database.Port)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)

	cfg.Notify.SlackToken = getEnv("SLACK_TOKEN", cfg.Notify.SlackToken)
	cfg.Notify.SlackChannel = getEnv("SLACK_CHANNEL", cfg.Notify.SlackChannel)
	cfg.Notify.SlackAPIURL = getEnv("SLACK_API_URL", cfg.Notify.SlackAPIURL)
	cfg.Notify.Timeout = getEnvDuration("NOTIFY_TIMEOUT", cfg.Notify.Timeout)
}

func (c *Config) Validate() error {
	if c.Server.HTTPPort == "" {
		return errors.New("http port is required")
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("invalid database port %d", c.Database.Port)
	}
	if c.Notify.SlackChannel == "" {
		return errors.New("slack channel is required")
	}
	if c.Notify.Timeout <= 0 {
		return fmt.Errorf("invalid notify timeout %s", c.Notify.Timeout)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name,
	)
}

func parseList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
