// Package cli provides the command-line front end of the dashboard: one
// command per menu entry plus a menu listing.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"playstore-dashboard/config"
	"playstore-dashboard/render"
	"playstore-dashboard/services"
	"playstore-dashboard/utils"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
	FormatHTML  = "html"
)

var formats = []string{FormatTable, FormatJSON, FormatCSV, FormatXLSX, FormatHTML}

// Version is set at build time.
var Version = "0.1.0"

type options struct {
	appsPath     string
	reviewsPath  string
	source       string
	timezone     string
	format       string
	out          string
	chartPath    string
	snapshotPath string
	debug        bool
}

type app struct {
	logger *utils.Logger
	clock  services.Clock
	cfg    *config.Config
	opts   options
}

// NewRootCmd builds the command tree. The clock decides the viewing windows,
// so tests can pass a fixed one.
func NewRootCmd(logger *utils.Logger, clock services.Clock) *cobra.Command {
	a := &app{logger: logger, clock: clock}

	rootCmd := &cobra.Command{
		Use:   "playstore-dashboard",
		Short: "Google Play Store Data Analysis",
		Long: `Loads the Play Store app catalog and user reviews, cleans and aggregates them,
and renders one of three analyses as a table, export or chart.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return a.loadConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.opts.appsPath, "apps", "", "app catalog CSV (default from APPS_CSV_PATH)")
	pf.StringVar(&a.opts.reviewsPath, "reviews", "", "user reviews CSV (default from REVIEWS_CSV_PATH)")
	pf.StringVar(&a.opts.source, "source", "", "input backend: csv or postgres (default from DATA_SOURCE)")
	pf.StringVar(&a.opts.timezone, "tz", "", "zone the viewing windows are defined in (default from GATE_TIMEZONE)")
	pf.StringVarP(&a.opts.format, "format", "f", FormatTable, "output format ("+strings.Join(formats, "|")+")")
	pf.StringVarP(&a.opts.out, "out", "o", "", "write output to this file instead of stdout")
	pf.StringVar(&a.opts.chartPath, "chart", "", "also draw the chart as PNG to this file")
	pf.StringVar(&a.opts.snapshotPath, "snapshot", "", "also capture the HTML report with headless Chrome to this PNG file")
	pf.BoolVarP(&a.opts.debug, "verbose", "v", false, "debug logging")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return formats, cobra.ShellCompDirectiveNoFileComp
	})

	for _, task := range services.Tasks {
		rootCmd.AddCommand(a.newTaskCommand(task))
	}
	rootCmd.AddCommand(a.newRunCommand())
	rootCmd.AddCommand(newMenuCommand())

	return rootCmd
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	a.cfg = config.Load()
	flags := cmd.Flags()

	if flags.Changed("apps") {
		a.cfg.AppsCSVPath = a.opts.appsPath
	}
	if flags.Changed("reviews") {
		a.cfg.ReviewsCSVPath = a.opts.reviewsPath
	}
	if flags.Changed("source") {
		a.cfg.DataSource = strings.ToLower(a.opts.source)
	}
	if flags.Changed("tz") {
		a.cfg.GateTimezone = a.opts.timezone
	}
	if flags.Changed("verbose") {
		a.cfg.Debug = a.opts.debug
	}
	a.logger.SetDebug(a.cfg.Debug)

	switch a.cfg.DataSource {
	case config.SourceCSV, config.SourcePostgres:
	default:
		return fmt.Errorf("unknown data source %q (want %s or %s)", a.cfg.DataSource, config.SourceCSV, config.SourcePostgres)
	}
	for _, f := range formats {
		if a.opts.format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want one of %s)", a.opts.format, strings.Join(formats, ", "))
}

func (a *app) newTaskCommand(task services.Task) *cobra.Command {
	return &cobra.Command{
		Use:   task.Slug(),
		Short: task.String(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, task)
		},
	}
}

func (a *app) newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <option>",
		Short: "Run the analysis named by a menu option",
		Example: `  playstore-dashboard run "Installs Trend Over Time"
  playstore-dashboard run sentiment --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := services.ParseTask(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, task)
		},
	}
}

func newMenuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List the available analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			labels := make([]string, 0, len(services.Tasks))
			for _, t := range services.Tasks {
				labels = append(labels, fmt.Sprintf("%s (%s)", t, t.Slug()))
			}
			return render.Menu(cmd.OutOrStdout(), labels)
		},
	}
}
