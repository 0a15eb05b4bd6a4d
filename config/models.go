package config

import (
	"strings"
	"time"
)

// DiagnosticPath is appended to the inference base address.
const DiagnosticPath = "/diagnostico"

// CORSConfig controls which browser origins may call the API.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AuthConfig holds the settings of the authenticated /api/user route.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds the application configuration.
type Config struct {
	ListenAddress    string        `mapstructure:"listen_address"`
	IAAPIURL         string        `mapstructure:"ia_api_url"`
	DiagnosticoURL   string        `mapstructure:"diagnostico_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxResponseBytes int64         `mapstructure:"max_response_bytes"`
	FailureStatus    int           `mapstructure:"failure_status"`
	APIURL           string        `mapstructure:"api_url"`
	CORS             CORSConfig    `mapstructure:"cors"`
	Auth             AuthConfig    `mapstructure:"auth"`
	Log              LogConfig     `mapstructure:"log"`
}

// TargetURL is the address every diagnosis is posted to. A literal
// diagnostico_url wins over the base address.
func (c *Config) TargetURL() string {
	if c.DiagnosticoURL != "" {
		return c.DiagnosticoURL
	}
	return strings.TrimRight(c.IAAPIURL, "/") + DiagnosticPath
}
