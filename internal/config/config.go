package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel  int      `env:"LOG_LEVEL" envDefault:"0"`
	LogFormat string   `env:"LOG_FORMAT" envDefault:"text"`
	HTTP      HTTP     `envPrefix:"HTTP_"`
	Database  Database `envPrefix:"DATABASE_"`
	Store     Store    `envPrefix:"STORE_"`
	JWT       JWT      `envPrefix:"JWT_"`
	Bcrypt    Bcrypt   `envPrefix:"BCRYPT_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Address            string        `env:"ADDRESS" envDefault:":8080"`
	EnableHTTPS        bool          `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string        `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string        `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	ReadHeaderTimeout  time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	SecureCookie       bool          `env:"SECURE_COOKIE" envDefault:"false"`
	CORSOrigins        []string      `env:"CORS_ORIGINS" envDefault:"http://localhost:8080" envSeparator:","`
}

// Database contains database connection parameters.
// The DSN scheme selects the backend: postgres:// or mongodb://.
type Database struct {
	DSN  string `env:"DSN,required,notEmpty"`
	Name string `env:"NAME" envDefault:"sessions"`
}

// Store contains per-call store limits.
type Store struct {
	Timeout time.Duration `env:"TIMEOUT" envDefault:"3s"`
}

// JWT contains JWT-related parameters.
type JWT struct {
	Secret string `env:"SECRET,required,notEmpty"`
}

// Bcrypt contains password hashing parameters.
type Bcrypt struct {
	Cost int `env:"COST" envDefault:"10"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Load overlays variables from envFile, if it exists, and parses the environment.
// Variables already set in the process environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	return NewConfig()
}
