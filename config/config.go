package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalidURL is returned when the inference address is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid inference service url")

const (
	DefaultListenAddress    = "0.0.0.0:8080"
	DefaultIAAPIURL         = "http://localhost:8000"
	DefaultTimeout          = 30 * time.Second
	DefaultMaxResponseBytes = 10 << 20
	DefaultAPIURL           = "/api/prueba-ia"
)

// LoadDotEnv loads path into the process environment. A missing file is not
// an error and variables already set are never overwritten.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

// LoadConfig builds the configuration from defaults, the optional YAML file,
// the environment and, when flags is not nil, the command line.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_address", DefaultListenAddress)
	v.SetDefault("ia_api_url", DefaultIAAPIURL)
	v.SetDefault("diagnostico_url", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("max_response_bytes", DefaultMaxResponseBytes)
	v.SetDefault("failure_status", http.StatusBadGateway)
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup("listen"); f != nil {
			if err := v.BindPFlag("listen_address", f); err != nil {
				return nil, fmt.Errorf("error binding flags: %w", err)
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.DiagnosticoURL == "" && c.IAAPIURL == "" {
		return errors.New("ia_api_url is required")
	}
	if err := checkURL(c.TargetURL()); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.MaxResponseBytes <= 0 {
		return errors.New("max_response_bytes must be positive")
	}
	if c.FailureStatus < 100 || c.FailureStatus > 599 {
		return fmt.Errorf("failure_status %d is not an HTTP status code", c.FailureStatus)
	}
	if c.ListenAddress == "" {
		return errors.New("listen_address is required")
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return nil
}
