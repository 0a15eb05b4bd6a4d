package config

import "github.com/spf13/pflag"

// CliConfig holds the values of the persistent command line flags.
type CliConfig struct {
	ConfigFile string
	EnvFile    string
	Listen     string
	Debug      bool
}

// BindFlags registers the flags on fs.
func (c *CliConfig) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", "", "Path to the config file")
	fs.StringVar(&c.EnvFile, "env-file", ".env", "Path to a .env file loaded before reading the environment")
	fs.StringVar(&c.Listen, "listen", "", "Address to listen on (overrides listen_address)")
	fs.BoolVarP(&c.Debug, "debug", "d", false, "Enable debug mode")
}
