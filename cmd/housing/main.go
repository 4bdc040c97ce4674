// Command housing classifies buildings by height and reports the house with
// the least residential area per resident.
//
// Usage:
//
//	housing [flags] [path]
//	housing serve
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/housing/internal/config"
	"github.com/JonMunkholm/housing/internal/core"
	"github.com/JonMunkholm/housing/internal/database"
	"github.com/JonMunkholm/housing/internal/logging"
	"github.com/JonMunkholm/housing/internal/web"
	"github.com/joho/godotenv"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Real environment variables win over .env
	_ = godotenv.Load()

	// Validated after flags are applied: a path argument can replace the
	// configured source.
	cfg, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "housing: %v\n", err)
		return exitUsage
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	if len(args) > 0 && args[0] == "serve" {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "housing: %v\n", err)
			return exitUsage
		}
		return serve(cfg, stderr)
	}
	return analyze(cfg, args, stdout, stderr)
}

func analyze(cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("housing", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "Output format: text or json")
	list := fs.Bool("list", false, "Also list every house with its category")
	delimiter := fs.String("delimiter", cfg.Input.Delimiter, `Field delimiter: one character, "\t" or "tab"`)
	noColor := fs.Bool("no-color", false, "Disable colored output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage:
  housing [flags] [path]   analyze a CSV file (default: %s)
  housing serve            run the HTTP server on %s

Flags:
`, cfg.Input.Path, cfg.Server.Addr())
		fs.PrintDefaults()
		fmt.Fprint(stderr, `
Environment:
  INPUT_SOURCE      csv or postgres
  DATABASE_URL      PostgreSQL connection string (postgres source)
  LOG_LEVEL         debug, info, warn or error
  NO_COLOR          disable colored output
`)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "housing: unknown format %q\n", *format)
		fs.Usage()
		return exitUsage
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "housing: at most one input path is allowed")
		fs.Usage()
		return exitUsage
	}

	cfg.Input.Delimiter = *delimiter
	if fs.NArg() == 1 {
		cfg.Input.Source = config.SourceCSV
		cfg.Input.Path = fs.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "housing: %v\n", err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return reportError(stderr, err)
	}
	defer closeSource()

	report, err := core.NewService(src).Analyze(ctx)
	if err != nil {
		return reportError(stderr, err)
	}

	if *format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return reportError(stderr, err)
		}
		return exitOK
	}

	opts := textOptions{List: *list, Color: !*noColor && colorEnabled(stdout)}
	if err := writeText(stdout, report, opts); err != nil {
		return reportError(stderr, err)
	}
	return exitOK
}

// openSource returns the configured source and a func that releases it.
func openSource(ctx context.Context, cfg *config.Config) (core.Source, func(), error) {
	if cfg.Input.Source == config.SourcePostgres {
		src, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	}

	src := core.FileSource{
		Path:    cfg.Input.Path,
		Options: core.CSVOptions{Delimiter: cfg.Input.DelimiterRune()},
	}
	return src, func() {}, nil
}

// reportError logs the technical error and prints it. Errors with a known
// cause also get the user-facing message and code.
func reportError(stderr io.Writer, err error) int {
	slog.Error("analysis failed", "error", err)
	if core.IsUserFacing(err) {
		fmt.Fprintf(stderr, "housing: %v\n%s\n", err, core.FormatUserError(err))
	} else {
		fmt.Fprintf(stderr, "housing: %v\n", err)
	}
	return exitError
}

func serve(cfg *config.Config, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return reportError(stderr, err)
	}
	defer closeSource()

	server := web.NewServer(core.NewService(src), cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr(), "source", src.Name())
	if err := server.Start(); !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		return exitError
	}
	<-done
	return exitOK
}
