package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"carddash.org/internal/appconf"
	"carddash.org/internal/pipeline"
	"carddash.org/internal/utils"
)

func newSummaryCmd(configFile *string) *cobra.Command {
	params := pipeline.DefaultParams()

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard for one filter selection as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configFile)
			if err != nil {
				return err
			}
			// stdout carries the JSON document only
			logger := newLogger(cfg, os.Stderr)
			return runSummary(cmd.Context(), cfg, params, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().StringVar(&params.District, "district", params.District, "District to select")
	cmd.Flags().StringVar(&params.Year, "year", params.Year, "Year to select")
	cmd.Flags().StringVar(&params.Palette, "palette", params.Palette, "Palette name")

	return cmd
}

func runSummary(ctx context.Context, cfg appconf.Config, params pipeline.Params, out io.Writer, logger *slog.Logger) error {
	application, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.DataManager.Shutdown()

	params = params.WithDefaults()
	if fieldErrors := utils.ValidateDashboardParams(params, application.Options()); len(fieldErrors) > 0 {
		var msgs []string
		for _, field := range slices.Sorted(maps.Keys(fieldErrors)) {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, strings.Join(fieldErrors[field], " ")))
		}
		return fmt.Errorf("invalid parameters: %s", strings.Join(msgs, "; "))
	}

	dashboard, err := application.BuildDashboard(params)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dashboard)
}
