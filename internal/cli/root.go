// Package cli wires the geomap commands.
package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"geomap/internal/config"
	"geomap/internal/ingest"
	"geomap/internal/logger"
	"geomap/internal/tui"
)

// version is set at build time with -ldflags "-X geomap/internal/cli.version=..."
var version = "dev"

// persistent flags
var (
	cfgPath    string
	logLevel   string
	logConsole bool
	logFile    string
)

// state shared by subcommands after setup
var (
	cfg     config.Config
	log     = zerolog.Nop()
	logSink *os.File // open --log-file, closed by Execute
)

var rootCmd = &cobra.Command{
	Use:   "geomap [file]",
	Short: "View, inspect and export point data from CSV, Excel and GeoJSON files",
	Long: `geomap loads CSV, Excel (.xlsx/.xls), JSON and GeoJSON files, detects the
latitude/longitude columns of tabular data and turns every file into a GeoJSON
FeatureCollection.

Without a subcommand it opens the terminal map viewer, optionally preloading a file.

Viewer controls:
  Tab      - File list
  Enter    - Open selected file
  ↑↓←→     - Pan
  +/-      - Zoom
  a        - Attributes table
  i        - Inspect nearest feature
  p        - Paste WKT
  q        - Quit`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "config file (default $XDG_CONFIG_HOME/geomap/config.toml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	pf.BoolVar(&logConsole, "log-console", false, "human-readable log output")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file (the viewer discards logs otherwise)")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeLog(); err == nil {
		err = cerr
	}
	return err
}

func closeLog() error {
	if logSink == nil {
		return nil
	}
	err := logSink.Close()
	logSink = nil
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := closeLog(); err != nil {
		return err
	}
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if logConsole {
		c.Log.Console = true
	}
	if logFile != "" {
		c.Log.File = logFile
	}
	cfg = c

	out, err := logOutput(cmd)
	if err != nil {
		return err
	}
	log = logger.Build(logger.Config{
		Level:     cfg.Log.Level,
		Console:   cfg.Log.Console,
		Component: cmd.Name(),
	}, out)
	log.Debug().Str("config", cfgPath).Str("level", cfg.Log.Level).Msg("configured")
	return nil
}

// logOutput picks the log sink. The viewer owns the terminal, so it only
// logs to a file.
func logOutput(cmd *cobra.Command) (io.Writer, error) {
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logSink = f
		return f, nil
	}
	if !cmd.HasParent() {
		return io.Discard, nil
	}
	return cmd.ErrOrStderr(), nil
}

func newIngester() *ingest.Ingester {
	return ingest.New(
		ingest.WithSampleSize(cfg.Ingest.SampleSize),
		ingest.WithLogger(log),
	)
}

func runTUI(_ *cobra.Command, args []string) error {
	opts := tui.Options{
		Ingester:     newIngester(),
		Logger:       log,
		CacheEntries: cfg.TUI.CacheEntries,
	}
	var m tea.Model
	if len(args) > 0 {
		m = tui.NewWithPath(opts, args[0])
	} else {
		m = tui.New(opts)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
