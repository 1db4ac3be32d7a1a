package logger

import (
	"os"
	"strconv"
)

// Config defines logging configuration, overridable from the environment.
type Config struct {
	Level            string
	Format           string // json or console
	EnableSampling   bool
	SampleInitial    int
	SampleThereafter int
	Development      bool
}

// DefaultConfig returns production defaults: sampled JSON at info level.
func DefaultConfig() Config {
	return Config{
		Level:            "info",
		Format:           "json",
		EnableSampling:   true,
		SampleInitial:    100,
		SampleThereafter: 1000,
		Development:      false,
	}
}

// NewFromEnv creates a logger configured from MH_LOG_* environment
// variables.
func NewFromEnv() (Logger, error) {
	return NewZapLogger(configFromEnv())
}

// NewComponent creates a logger with a component field pre-set.
func NewComponent(component string) (Logger, error) {
	l, err := NewZapLogger(configFromEnv())
	if err != nil {
		return nil, err
	}
	return l.With(String("component", component)), nil
}

func configFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("MH_LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("MH_LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("MH_LOG_DEVELOPMENT"); v != "" {
		if dev, err := strconv.ParseBool(v); err == nil {
			cfg.Development = dev
			if dev {
				cfg.Level = "debug"
				cfg.Format = "console"
				cfg.EnableSampling = false
			}
		}
	}
	return cfg
}
