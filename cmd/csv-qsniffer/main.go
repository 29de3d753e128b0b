package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cli-tools/csv-qsniffer/internal/appcli"
	"github.com/cli-tools/csv-qsniffer/internal/dialect"
	"github.com/cli-tools/csv-qsniffer/internal/output"
	"github.com/cli-tools/csv-qsniffer/internal/sniffconfig"
	"github.com/spf13/cobra"
)

// Version information set by build process.
var (
	Version = "dev"     //nolint:gochecknoglobals // Build-time version information
	Commit  = "unknown" //nolint:gochecknoglobals // Build-time commit information
	Date    = "unknown" //nolint:gochecknoglobals // Build-time date information
)

// App represents the main application with dependency injection.
type App struct {
	logger        *appcli.SimpleLogger
	configService *sniffconfig.ConfigService
	rootCmd       *cobra.Command

	format  string
	maxRows int
	minRows int
	verbose bool
	cfgPath string
}

// NewApp creates a new application instance with dependency injection.
func NewApp() *App {
	logger := appcli.NewLogger(false)
	validator := sniffconfig.NewSimpleValidator(logger)
	configService := sniffconfig.NewConfigService(logger, validator)

	app := &App{
		logger:        logger,
		configService: configService,
	}

	app.rootCmd = app.buildRootCommand()
	return app
}

// buildRootCommand constructs the root command and its flags.
func (a *App) buildRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "csv-qsniffer [OPTIONS] [FILE]",
		Short:   "Detects the dialect of a delimiter-separated file",
		Long: `csv-qsniffer inspects a sample of a delimiter-separated file and reports
its dialect: delimiter, quote character, escape character, line terminator,
and whether the first row is a header.

FILE may be a path, "-", or omitted; both the latter mean standard input.`,
		Version:      fmt.Sprintf("%s (%s, built %s)", Version, Commit, Date),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         a.runSniff,
	}

	rootCmd.Flags().StringVarP(&a.format, "format", "f", "", "Output format: human, json, csv")
	rootCmd.Flags().IntVar(&a.maxRows, "max-rows", 0, "Maximum rows sampled per candidate")
	rootCmd.Flags().IntVar(&a.minRows, "min-rows", 0, "Minimum rows required for a candidate")
	rootCmd.Flags().BoolVarP(&a.verbose, "verbose", "v", false, "Print debug diagnostics to stderr")
	rootCmd.Flags().StringVar(&a.cfgPath, "config", "", "Path to configuration file")
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	return rootCmd
}

// runSniff implements the root command's behavior: resolve config,
// detect the dialect of the FILE argument (or stdin), and write the
// chosen rendering to stdout.
func (a *App) runSniff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if a.verbose {
		a.logger = appcli.NewLogger(true)
		validator := sniffconfig.NewSimpleValidator(a.logger)
		a.configService = sniffconfig.NewConfigService(a.logger, validator)
	}

	cfg, err := a.configService.LoadConfig(ctx, a.cfgPath, sniffconfig.Config{
		MaxRows:       a.maxRows,
		MinRows:       a.minRows,
		DefaultFormat: a.format,
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	sniffer := &dialect.Sniffer{MaxRows: cfg.MaxRows, MinRows: cfg.MinRows}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	var d dialect.Dialect
	if path == "" || path == "-" {
		d, err = sniffer.Sniff(cmd.InOrStdin())
	} else {
		d, err = sniffer.SniffFile(path)
	}
	if err != nil {
		return err
	}

	if a.verbose {
		a.logger.Debug("detected dialect", "delimiter", string(d.Delimiter), "terminator", d.Terminator.String())
	}

	return output.Write(cmd.OutOrStdout(), cfg.DefaultFormat, d)
}

// Execute runs the application with context cancellation support.
func (a *App) Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return a.rootCmd.ExecuteContext(ctx)
}

// classify maps an error returned by the sniffing pipeline to the
// exit code spec.md §6/§7 assigns it.
func classify(err error) int {
	if err == nil {
		return 0
	}
	switch {
	case errors.Is(err, dialect.ErrNoValidDialect), errors.Is(err, dialect.ErrInvalidInput):
		return 1
	default:
		return 2
	}
}

func main() {
	app := NewApp()

	if err := app.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(classify(err))
	}
}
