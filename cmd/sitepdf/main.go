package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// History database path. Set before calling Run().
	HistoryPath string

	// Configuration file read before parsing flags. Empty means none.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Exports sitepdf.ExportService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		HistoryPath: defaultHistoryPath(),
		ConfigPath:  os.Getenv("SITEPDF_CONFIG"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	var configPaths []string
	if m.ConfigPath != "" {
		configPaths = append(configPaths, m.ConfigPath)
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitepdf"),
		kong.Description("Crawl a website and save its pages as a single PDF"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(LoadConfig, configPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitepdf --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	historyPath := m.HistoryPath
	if cli.HistoryDB != "" {
		historyPath = cli.HistoryDB
	}
	m.DB = sqlite.NewDB(historyPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITEPDF_HISTORY to use a different history database\n")
		return fmt.Errorf("failed to open history database at %q: %w", historyPath, err)
	}
	defer m.Close()

	m.Exports = sqlite.NewExportService(m.DB)
	deps.DB = m.DB
	deps.Exports = m.Exports

	if strings.HasPrefix(kongCtx.Command(), "crawl") {
		exporter, closer, err := newExporter(ctx, &cli.Crawl, cli.Verbose, deps)
		if err != nil {
			return err
		}
		defer func() {
			if err := closer.Close(); err != nil {
				deps.Logger.Warn("release fetchers failed", "err", err)
			}
		}()
		deps.Exporter = exporter
	}

	return kongCtx.Run(deps)
}

// newLogger returns a slog logger writing human-readable lines to w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
	})
	return slog.New(handler)
}

func defaultHistoryPath() string {
	if path := os.Getenv("SITEPDF_HISTORY"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	dir := filepath.Join(home, ".sitepdf")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "history.db")
}

// closers releases resources in reverse order of acquisition.
type closers []func() error

func (c closers) Close() error {
	var errs []error
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
