package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the server.
type Config struct {
	ServerAddr             string   `yaml:"server_addr"`
	MediaRoot              string   `yaml:"media_root"`
	FFmpegBin              string   `yaml:"ffmpeg_bin"`
	FFprobeBin             string   `yaml:"ffprobe_bin"`
	LogLevel               string   `yaml:"log_level"`
	ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
	CORSAllowedOrigins     []string `yaml:"cors_allowed_origins"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ServerAddr:             ":8081",
		FFmpegBin:              "ffmpeg",
		FFprobeBin:             "ffprobe",
		LogLevel:               "info",
		ShutdownTimeoutSeconds: 30,
		CORSAllowedOrigins:     []string{"*"},
	}
}

// Load layers defaults, the optional YAML file at path and environment
// variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ServerAddr = getEnv("SERVER_ADDR", cfg.ServerAddr)
	cfg.MediaRoot = getEnv("MEDIA_ROOT", cfg.MediaRoot)
	cfg.FFmpegBin = getEnv("FFMPEG_BIN", cfg.FFmpegBin)
	cfg.FFprobeBin = getEnv("FFPROBE_BIN", cfg.FFprobeBin)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.ShutdownTimeoutSeconds = getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", cfg.ShutdownTimeoutSeconds)
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.CORSAllowedOrigins = splitList(origins)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ServerAddr) == "" {
		errs = append(errs, errors.New("server_addr is required"))
	}
	if strings.TrimSpace(c.FFmpegBin) == "" {
		errs = append(errs, errors.New("ffmpeg_bin is required"))
	}
	if strings.TrimSpace(c.FFprobeBin) == "" {
		errs = append(errs, errors.New("ffprobe_bin is required"))
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout_seconds must be positive, got %d", c.ShutdownTimeoutSeconds))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ShutdownTimeout bounds graceful shutdown, including in-flight tasks.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	var out int
	_, err := fmt.Sscanf(value, "%d", &out)
	if err != nil || out <= 0 {
		return fallback
	}
	return out
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
