package cmd

import (
	"fmt"
	"os"

	"github.com/cyberes/diagnostico-relay/config"
	"github.com/cyberes/diagnostico-relay/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var cliArgs config.CliConfig

var rootCmd = &cobra.Command{
	Use:   "diagnostico-relay",
	Short: "Relay between the diagnosis form and the inference service",
	Long: `diagnostico-relay serves a small diagnosis form and forwards every
submission to the inference service, returning its JSON answer unchanged.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cliArgs.BindFlags(rootCmd.PersistentFlags())
}

// loadConfig reads .env, the config file and the environment, then sets up
// the process logger from the result.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(cliArgs.EnvFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(cliArgs.ConfigFile, rootCmd.PersistentFlags())
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(cfg.Log.Level)
	if cliArgs.Debug {
		level = logrus.DebugLevel
	}
	logging.InitLogger(level)
	logging.SetFormat(cfg.Log.Format)
	return cfg, nil
}
