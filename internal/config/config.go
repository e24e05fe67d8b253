// Package config reads Quizline settings from the environment, after
// loading an optional dotenv file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/soaringjerry/Quizline/internal/services"
	"github.com/soaringjerry/Quizline/internal/utils"
)

const (
	DefaultAddr          = ":3000"
	DefaultPusherKey     = "ab79b520a9a82017626a"
	DefaultPusherCluster = "ap1"
)

type Config struct {
	Addr string
	// APIBaseURL is the backend origin used for server-side calls.
	APIBaseURL string
	// PublicAPIBaseURL is the origin handed to browsers.
	PublicAPIBaseURL string
	APITimeout       time.Duration
	PusherKey        string
	PusherCluster    string
}

// Load reads QUIZLINE_ENV_FILE (default .env) if it exists, then the
// process environment. Variables already set win over the file.
func Load() (*Config, error) {
	envFile := utils.SafeEnv("QUIZLINE_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	timeout, err := utils.EnvDuration("QUIZLINE_API_TIMEOUT", services.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return &Config{
		Addr:             utils.SafeEnv("QUIZLINE_ADDR", DefaultAddr),
		APIBaseURL:       utils.SafeEnv("QUIZLINE_API_BASE_URL", services.DefaultOrigin),
		PublicAPIBaseURL: utils.SafeEnv("QUIZLINE_PUBLIC_API_BASE_URL", services.DefaultOrigin),
		APITimeout:       timeout,
		PusherKey:        utils.SafeEnv("QUIZLINE_PUSHER_KEY", DefaultPusherKey),
		PusherCluster:    utils.SafeEnv("QUIZLINE_PUSHER_CLUSTER", DefaultPusherCluster),
	}, nil
}

// ServerClient is the backend client for server-side code such as the proxy.
func (c *Config) ServerClient() *services.APIClient {
	return services.NewAPIClient(services.APIBaseURL(c.APIBaseURL), services.WithTimeout(c.APITimeout))
}

// PublicClient mirrors what the browser uses: the public origin plus the
// X-Requested-With marker the frontend sends.
func (c *Config) PublicClient() *services.APIClient {
	return services.NewAPIClient(services.APIBaseURL(c.PublicAPIBaseURL),
		services.WithTimeout(c.APITimeout),
		services.WithHeader("X-Requested-With", "XMLHttpRequest"))
}
