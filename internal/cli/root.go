// Package cli wires the command-line surface: flag parsing, configuration
// loading and dispatch into the report modes and the dashboard.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-veylop/pstats/internal/config"
	"github.com/j-veylop/pstats/internal/logger"
	"github.com/j-veylop/pstats/internal/models"
	"github.com/j-veylop/pstats/internal/plausible"
	"github.com/j-veylop/pstats/internal/report"
)

var (
	flagList      bool
	flagAll       bool
	flagSite      string
	flagPeriod    string
	flagMetrics   []string
	flagSave      bool
	flagOutputDir string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "pstats",
	Short: "Fetch statistics from a Plausible Analytics instance",
	Long: `pstats fetches visitor statistics from a Plausible Analytics instance.

It can list the sites your API key has access to, fetch one site's stats
for a period, or fetch every site's stats in one run. Reports are printed
as JSON, or saved to a timestamped file with --save.

Configuration comes from the environment (or a .env file):
PLAUSIBLE_BASE_URL and PLAUSIBLE_API_KEY are required.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().BoolVar(&flagList, "list", false, "list accessible sites")
	rootCmd.Flags().BoolVar(&flagAll, "all", false, "fetch stats for every accessible site")
	rootCmd.Flags().StringVar(&flagSite, "site", "", "fetch stats for one site domain")
	rootCmd.Flags().StringVar(&flagPeriod, "period", "day", "period token (day, 7d, 30d, month, 6mo, 12mo)")
	rootCmd.Flags().StringSliceVar(&flagMetrics, "metrics", nil, "metrics to fetch (default set when omitted)")
	rootCmd.Flags().BoolVar(&flagSave, "save", false, "write the report to a timestamped file instead of stdout")
	rootCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "directory for saved reports (overrides PLAUSIBLE_OUTPUT_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(flagVerbose)

	mode, err := selectMode(flagList, flagAll, flagSite)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	period, err := models.ParsePeriod(flagPeriod)
	if err != nil {
		return err
	}
	var metrics []string
	if flagMetrics != nil {
		if err := models.ValidateMetrics(flagMetrics); err != nil {
			return err
		}
		metrics = flagMetrics
	}

	runner := report.NewRunner(newClient(cfg), cfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch mode {
	case modeList:
		return runner.ListSites(ctx, flagSave)
	case modeAll:
		return runner.AllSites(ctx, period, metrics, flagSave)
	default:
		return runner.SingleSite(ctx, flagSite, period, metrics, flagSave)
	}
}

type runMode int

const (
	modeList runMode = iota
	modeAll
	modeSite
)

// selectMode enforces that exactly one fetch mode was requested.
func selectMode(list, all bool, site string) (runMode, error) {
	set := 0
	if list {
		set++
	}
	if all {
		set++
	}
	if site != "" {
		set++
	}

	switch {
	case set == 0:
		return 0, fmt.Errorf("one of --list, --all or --site is required")
	case set > 1:
		return 0, fmt.Errorf("--list, --all and --site are mutually exclusive")
	case list:
		return modeList, nil
	case all:
		return modeAll, nil
	default:
		return modeSite, nil
	}
}

// loadConfig loads settings from the environment and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *plausible.Client {
	return plausible.New(plausible.Config{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.RequestTimeout,
		Precision: cfg.MetricPrecision,
	})
}

// Execute runs the root command and reports whether it succeeded.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		return err
	}
	return nil
}
