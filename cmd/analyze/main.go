package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"unemploycli/internal/app"
	"unemploycli/internal/config"
	"unemploycli/pkg/contracts"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, runs one analysis and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataPath := fs.String("data", "", "dataset CSV path (created with sample data when missing)")
	configFile := fs.String("config", "", "YAML config file")
	chartMode := fs.String("charts", "", "chart output: png | terminal | both | none")
	outDir := fs.String("out", "", "output directory for charts/ and reports/")
	cutoff := fs.String("cutoff", "", "event cutoff date, YYYY-MM-DD")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "analyze: %v\n", err)
		return 1
	}
	applyFlags(cfg, *dataPath, *chartMode, *outDir, *cutoff)

	a, err := app.New(cfg, app.Options{Stdout: stdout})
	if err != nil {
		fmt.Fprintf(stderr, "analyze: %v\n", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Close(shutdownCtx); err != nil {
			fmt.Fprintf(stderr, "analyze: shutdown: %v\n", err)
		}
	}()

	if _, err := a.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "analyze: %v\n", err)
		return 1
	}
	return 0
}

// applyFlags overrides cfg with every flag that was given
func applyFlags(cfg *config.Config, dataPath, chartMode, outDir, cutoff string) {
	if dataPath != "" {
		cfg.Dataset.Path = dataPath
	}
	if chartMode != "" {
		cfg.Charts.Mode = chartMode
	}
	if outDir != "" {
		cfg.Charts.Dir = filepath.Join(outDir, "charts")
		cfg.Output.ReportsDir = filepath.Join(outDir, "reports")
	}
	if cutoff != "" {
		cfg.Analysis.Cutoff = cutoff
	}
}
