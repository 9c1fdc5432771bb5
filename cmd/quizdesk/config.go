package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/quizdesk/quizdesk/internal/logger"
)

const (
	defaultBaseURL      = "http://127.0.0.1:8080"
	defaultLoggingLevel = logger.LevelWarn
	defaultEnvironment  = logger.EnvDevelopment
	defaultHTTPTimeout  = 10 * time.Second
)

type Config struct {
	// Backend origin to talk to
	BaseURL string

	// File holding the access/refresh token pair between runs
	// Empty means the user config directory is used
	TokenFile string

	// Default logging level
	LogLevel string

	// Environment (dev logs text, prod logs JSON)
	Environment string

	// Bound per-request wait before a connectivity error is surfaced
	HTTPTimeout time.Duration
}

func NewConfig() *Config {
	return &Config{
		BaseURL:     defaultBaseURL,
		LogLevel:    defaultLoggingLevel,
		Environment: defaultEnvironment,
		HTTPTimeout: defaultHTTPTimeout,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}
	setDuration := func(o *time.Duration) func(value string) {
		return func(value string) {
			if value == "" {
				return
			}
			if d, err := time.ParseDuration(value); err == nil {
				*o = d
			}
		}
	}

	envMap := map[string]func(string){
		"QUIZDESK_BASE_URL":   setString(&c.BaseURL),
		"QUIZDESK_TOKEN_FILE": setString(&c.TokenFile),
		"LOG_LEVEL":           setString(&c.LogLevel),
		"ENVIRONMENT":         setString(&c.Environment),
		"HTTP_TIMEOUT":        setDuration(&c.HTTPTimeout),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

// ParseFlags reads flags up to the first subcommand and returns the rest
func (c *Config) ParseFlags(args []string) ([]string, error) {
	fs := pflag.NewFlagSet("quizdesk", pflag.ContinueOnError)

	fs.StringVarP(&c.BaseURL, "base-url", "b", c.BaseURL, "Backend base URL")
	fs.StringVarP(&c.TokenFile, "token-file", "t", c.TokenFile, "Token file path")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.DurationVar(&c.HTTPTimeout, "timeout", c.HTTPTimeout, "HTTP request timeout")

	// Subcommand args keep their own flags (e.g. logout --all)
	fs.SetInterspersed(false)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// ResolveTokenFile falls back to the user config directory
func (c *Config) ResolveTokenFile() (string, error) {
	if c.TokenFile != "" {
		return c.TokenFile, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error while resolving user config dir. Err: %w", err)
	}
	return filepath.Join(dir, "quizdesk", "tokens.json"), nil
}
