package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"

	"github.com/nsetools/factsheet-extract/internal/batch"
	"github.com/nsetools/factsheet-extract/internal/config"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

// setupLogging configures the default logger from the loaded configuration
func setupLogging(cfg *config.Config) {
	log.DefaultLogger = log.Logger{
		Level:  log.ParseLevel(cfg.LogLevel),
		Writer: &log.ConsoleWriter{Writer: os.Stderr},
	}
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			fmt.Printf("factsheet-extract %s (built %s)\n", version, buildTime)
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	cfg.Version = version

	setupLogging(cfg)
	log.Debug().Str("config", cfg.String()).Msg("Loaded configuration")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stop between files on SIGINT/SIGTERM
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalCh
		log.Warn().Str("signal", sig.String()).Msg("Shutting down")
		cancel()
	}()

	processor, err := batch.NewProcessor(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize processor")
		os.Exit(1)
	}

	summary, err := processor.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Batch failed")
		os.Exit(1)
	}

	fmt.Printf("Processing complete: %d processed, %d skipped, %d without sector table\n",
		summary.Processed, summary.Skipped, summary.NoSectorTable)
}
