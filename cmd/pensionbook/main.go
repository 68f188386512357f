package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/pensionbook/internal/cli"
	"github.com/alexanderramin/pensionbook/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()

	app := &cli.App{
		Config:  cfg,
		Logger:  logger,
		Metrics: reg,
		Connect: connector(logger, reg),
	}
	defer app.Close()

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.TermWidth = func() int {
		w, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return 0
		}
		return w
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
