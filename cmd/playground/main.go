package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/aiplayground/playground-client-go/playground"
	"github.com/aiplayground/playground-client-go/playground/rest"
	"github.com/aiplayground/playground-client-go/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func run() error {
	// .env is optional; real environment wins either way.
	_ = godotenv.Load()

	cfg, err := playground.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, closeLog, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	gw := rest.NewClient(cfg.APIBaseURL)
	nav := playground.NewNav(cfg, gw, func(user string) playground.Dialer {
		return playground.NewDialer(cfg, user, logger)
	}, logger)

	return tui.Run(nav)
}

// buildLogger logs to the configured file, or nowhere: the TUI owns the
// terminal while the program runs.
func buildLogger(cfg playground.Config) (playground.Logger, func(), error) {
	if cfg.LogFile == "" {
		return playground.NoopLogger(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return playground.NewStdLogger(log.New(f, "", log.LstdFlags)), func() { _ = f.Close() }, nil
}
