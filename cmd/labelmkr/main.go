package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/labelmkr"
	"github.com/fwojciec/labelmkr/collect"
	"github.com/fwojciec/labelmkr/fs"
	"github.com/fwojciec/labelmkr/goquery"
	lmhttp "github.com/fwojciec/labelmkr/http"
	"github.com/fwojciec/labelmkr/rod"
	lmslog "github.com/fwojciec/labelmkr/slog"
	"github.com/fwojciec/labelmkr/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := loadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loadEnv loads environment variables from path. A missing file is not an error.
func loadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db and LABELMKR_DB override it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher replaces the browser or HTTP fetcher when set.
	Fetcher labelmkr.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("labelmkr"),
		kong.Description("Build CSS selectors for page elements and pair code values with labels"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'labelmkr --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	command := strings.Fields(kongCtx.Command())[0]

	if command == "profile" || command == "last" || (command == "labels" && cli.Labels.Profile != "") {
		if err := m.openDB(cli.DB, stderr); err != nil {
			return err
		}
		defer m.Close()

		deps.Profiles = sqlite.NewProfileService(m.DB)
		deps.Results = sqlite.NewResultService(m.DB)
	}

	if command == "candidates" || command == "extract" || command == "labels" {
		fetcher := m.Fetcher
		if fetcher == nil {
			f, err := newFetcher(cli, stderr)
			if err != nil {
				return err
			}
			defer f.Close()
			fetcher = f
		}
		deps.Fetcher = lmslog.NewLoggingFetcher(fetcher, logger)
		deps.Parser = lmslog.NewLoggingParser(goquery.NewParser(), logger)
	}

	if command == "labels" {
		deps.Collector = &collect.Collector{
			Fetcher:     deps.Fetcher,
			Parser:      deps.Parser,
			RateLimiter: collect.NewDomainLimiter(cli.Labels.RPS),
			Logger:      logger,
			Concurrency: cli.Labels.Concurrency,
		}
		if cli.Labels.Robots {
			deps.Collector.Robots = lmhttp.NewRobots(cli.Timeout)
		}
		if cli.Labels.Snapshots != "" {
			dir, err := filepath.Abs(cli.Labels.Snapshots)
			if err != nil {
				return err
			}
			deps.Collector.Snapshots = fs.NewSnapshotStore(filepath.Dir(dir), filepath.Base(dir))
		}
	}

	return kongCtx.Run(deps)
}

// openDB opens the database at path, falling back to m.DBPath.
func (m *Main) openDB(path string, stderr io.Writer) error {
	if path == "" {
		path = m.DBPath
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LABELMKR_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// newFetcher returns the HTTP fetcher for --static, headless Chrome otherwise.
func newFetcher(cli *CLI, stderr io.Writer) (labelmkr.Fetcher, error) {
	if cli.Static {
		return lmhttp.NewFetcher(lmhttp.WithTimeout(cli.Timeout)), nil
	}

	fetcher, err := rod.NewFetcher(
		rod.WithFetchTimeout(cli.Timeout),
		rod.WithRenderDelay(cli.RenderDelay),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static for plain HTTP")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return fetcher, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "labelmkr.db"
	}
	return filepath.Join(home, ".labelmkr", "labelmkr.db")
}
