package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wbreport/domain/indicator"
	"wbreport/internal"
	"wbreport/internal/config"
	"wbreport/internal/report"
)

// flags override the environment only when set on the command line
type flags struct {
	data     string
	out      string
	lenient  bool
	width    int
	height   int
	logLevel string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	var cfg *config.Config
	logger := internal.NewLogger(internal.LogLevelInfo)

	rootCmd := &cobra.Command{
		Use:           "wbreport",
		Short:         "World Bank indicator statistics and charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cmd, f)
			if err != nil {
				return err
			}
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetLevel(internal.ParseLogLevel(cfg.Log.Level))
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.data, "data", "", "dataset file (.csv or .xlsx)")
	pf.StringVar(&f.out, "out", "", "output directory for charts and the report")
	pf.BoolVar(&f.lenient, "lenient", false, "accept thousands separators, currency and percent signs in numbers")
	pf.IntVar(&f.width, "width", 0, "chart width in pixels")
	pf.IntVar(&f.height, "height", 0, "chart height in pixels")
	pf.StringVar(&f.logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE")

	run := func(cmd *cobra.Command, args []string) error {
		_, err := report.NewPipeline(cfg, cmd.OutOrStdout(), logger).Run(cmd.Context(), report.DefaultPlans())
		return err
	}
	rootCmd.RunE = run

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Load the dataset, print statistics and render every chart",
			Args:  cobra.NoArgs,
			RunE:  run,
		},
		newDescribeCmd(&cfg, logger),
		newPreviewCmd(&cfg, logger),
	)
	return rootCmd
}

func newDescribeCmd(cfg **config.Config, logger *internal.Logger) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print descriptive statistics for one indicator",
		Long: `Print count, mean, std, quartiles, median, mode, skewness and kurtosis
for one indicator column of the transposed table.

Example: wbreport describe --indicator FR.INR.RINR`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ind, ok := indicator.Parse(key)
			if !ok {
				return fmt.Errorf("unknown indicator %q; known codes: %v", key, knownCodes())
			}
			_, err := report.NewPipeline(*cfg, cmd.OutOrStdout(), logger).Describe(cmd.Context(), ind.Key)
			return err
		},
	}

	cmd.Flags().StringVar(&key, "indicator", string(report.DescribedIndicator), "indicator code or full column header")
	return cmd
}

func newPreviewCmd(cfg **config.Config, logger *internal.Logger) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the first rows of the raw, transposed and cleaned tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *cfg
			if cmd.Flags().Changed("rows") {
				c.Console.PreviewRows = rows
				if err := c.Validate(); err != nil {
					return err
				}
			}
			_, err := report.NewPipeline(c, cmd.OutOrStdout(), logger).Preview(cmd.Context())
			return err
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 5, "rows to show per table")
	return cmd
}

// loadConfig reads the environment and applies the flags that were set
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("data") {
		cfg.Data.DatasetPath = f.data
	}
	if changed("out") {
		cfg.Charts.OutputDir = f.out
	}
	if changed("lenient") {
		cfg.Data.Lenient = f.lenient
	}
	if changed("width") {
		cfg.Charts.Width = f.width
	}
	if changed("height") {
		cfg.Charts.Height = f.height
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	return cfg, cfg.Validate()
}

func knownCodes() []string {
	all := indicator.All()
	codes := make([]string, len(all))
	for i, ind := range all {
		codes[i] = string(ind.Key)
	}
	return codes
}
