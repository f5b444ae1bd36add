// cmd/smsdedup/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smsdedup/internal/adapters/backupxml"
	"smsdedup/internal/adapters/output"
	"smsdedup/internal/core/domain"
	"smsdedup/internal/core/normalize"
	"smsdedup/internal/core/ports"
	"smsdedup/internal/core/usecases"
	"smsdedup/internal/platform/config"
	"smsdedup/internal/platform/logx"
	"smsdedup/internal/platform/ui"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// 1. Load centralized config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	if cfg.PrintHelp {
		config.PrintHelp()
	}
	if cfg.PrintVersion {
		config.PrintVersion(version, commit, date)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: smsdedup -i <backup.xml>")
		fmt.Fprintln(os.Stderr, "Try: smsdedup -h for help")
		os.Exit(2)
	}

	// 2. Shared logger
	logger := logx.New()

	logger.Info("smsdedup starting",
		"version", version,
		"inputs", len(cfg.Inputs),
		"aggressive", cfg.Aggressive,
		"workers", cfg.Workers,
	)

	// 3. Context and signals for clean shutdown
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	// 4. Presenter
	presenter := buildPresenter(cfg)
	presenter.Start(ports.RunInfo{
		Inputs:             cfg.Inputs,
		OutputPath:         cfg.Output,
		LogPath:            cfg.LogFile,
		DefaultCountryCode: cfg.DefaultCountryCode,
		IgnoreMillis:       cfg.IgnoreDateMillis,
		IgnoreWhitespace:   cfg.IgnoreWhitespace,
		Aggressive:         cfg.Aggressive,
		Workers:            cfg.Workers,
		Version:            version,
	})

	// 5. Build the engine and its adapters
	engine := usecases.NewEngine(normalize.Options{
		DefaultCountryCode: cfg.DefaultCountryCode,
		TruncateMillis:     cfg.IgnoreDateMillis,
		CollapseWhitespace: cfg.IgnoreWhitespace,
	}, cfg.Aggressive)

	reader := backupxml.NewReader(logger)

	ledger, err := output.NewLedgerWriter(cfg.LogFile, logger)
	if err != nil {
		logger.Err(err, "phase", "setup")
		os.Exit(2)
	}
	presenter.Phase("Log file", cfg.LogFile)

	orch := usecases.NewOrchestrator(usecases.OrchestratorOptions{
		Reader: reader,
		Ledger: ledger,
		Dedupe: usecases.NewDedupeService(engine, logger, cfg.Workers),
		Logger: logger,
	})

	// 6. Execute the deduplication pass
	presenter.Phase("Searching for duplicates", "")
	start := time.Now()
	result, runErr := orch.Run(ctx, cfg.Inputs)
	elapsed := time.Since(start)

	if runErr != nil {
		logger.Err(runErr, "phase", "run", "elapsed_ms", elapsed.Milliseconds())
		os.Exit(1)
	}
	result.Metadata.Version = version

	// 7. Write outputs
	if err := writeOutputs(cfg, reader, result, presenter, logger); err != nil {
		logger.Err(err, "phase", "output")
		os.Exit(1)
	}

	// 8. Summary
	presenter.Summary(result)

	logger.Info("smsdedup finished",
		"elapsed_ms", elapsed.Milliseconds(),
		"records", result.Metadata.TotalRecords,
		"removed", result.TotalRemoved(),
		"warnings", len(result.Warnings),
	)
}

// buildPresenter selecciona el presenter según el modo quiet.
func buildPresenter(cfg config.Config) ports.Presenter {
	if cfg.Quiet {
		return ui.NewNoopPresenter()
	}
	return ui.NewPTermPresenter()
}

// writeOutputs decide y ejecuta las salidas según la configuración.
// Si no hubo eliminaciones, el XML de salida se omite: no hay nada que
// reescribir y el archivo original sigue siendo válido.
func writeOutputs(cfg config.Config, reader *backupxml.Reader, result *domain.RunResult,
	presenter ports.Presenter, logger logx.Logger) error {

	if result.HasRemovals() {
		presenter.Phase("Writing output", cfg.Output)
		writer := backupxml.NewWriter(reader.Root(), logger)
		if err := writer.Write(cfg.Output, result); err != nil {
			return fmt.Errorf("xml output: %w", err)
		}
	} else {
		presenter.Phase("No duplicate messages found", "skipping writing of output file")
	}

	if cfg.JSON {
		if err := output.WriteJSONStdout(result); err != nil {
			return fmt.Errorf("json output: %w", err)
		}
	}

	return nil
}

// rootContextWithSignals creates a root context cancelled on SIGINT/SIGTERM.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanupCancel := func() {
		signal.Stop(ch)
		close(ch)
		baseCancel()
	}

	return base, cleanupCancel
}
