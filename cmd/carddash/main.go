package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"carddash.org/internal/appconf"
	"carddash.org/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "carddash",
		Short: "Filter and aggregate credit card transactions for a dashboard",
		Long: `carddash loads a zipped CSV of credit card transactions and serves
per-district and per-year aggregates as JSON and as a small HTML dashboard.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommand(cmd, configFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Optional config file (yaml, toml or json)")
	flags.Int("port", 4000, "API server port")
	flags.String("env", "development", "Environment (development|test|production)")
	flags.StringSlice("api-keys", []string{"test"}, "Comma separated API keys")
	flags.Int("rate-limit", 100, "Requests per second allowed for each API key")
	flags.String("data-url", "data.zip", "Local path or http(s) URL of the transactions zip archive")
	flags.String("log-level", "info", "Log level (debug|info|warn|error)")
	flags.Int("top-n", 10, "Number of districts in the salary ranking")
	flags.Int("bins", 20, "Number of bins of the age histogram")
	flags.Bool("verbose", false, "Log every row skipped while loading the dataset")

	rootCmd.AddCommand(newServeCmd(&configFile), newSummaryCmd(&configFile))

	return rootCmd
}

func loadConfig(cmd *cobra.Command, configFile string) (appconf.Config, error) {
	return appconf.Load(configFile, cmd.Flags())
}

// newLogger writes JSON in production and readable text everywhere else
func newLogger(cfg appconf.Config, w io.Writer) *slog.Logger {
	if cfg.Env == appconf.Production {
		return logging.NewStructuredLogger(w, cfg.LogLevel)
	}
	return logging.NewTextLogger(w, cfg.LogLevel)
}
