// daybt-run executes a backtest: it reads a strategy-JSON file, a
// bar-groups JSON file, and an optional daily-stats JSON file (the two
// tabular collaborator inputs of spec.md §1), runs the full pipeline
// (translate → simulate → extract stats → aggregate → chain equity), and
// writes the resulting ResultDocument as JSON. When storage paths are
// configured, it also archives the run's candles/trades/equity to Parquet
// and records the run in the SQLite registry.
//
// Usage:
//
//	daybt-run -strategy strategy.json -bars bars.json -stats stats.json -out result.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"daybt/internal/config"
	"daybt/internal/domain"
	"daybt/internal/driver"
	"daybt/internal/resultstore"
	"daybt/internal/strategyio"
	"daybt/internal/util"
)

func main() {
	strategyPath := flag.String("strategy", "", "path to a strategy-definition JSON file (required)")
	barsPath := flag.String("bars", "", "path to a bar-groups JSON file (required)")
	statsPath := flag.String("stats", "", "path to a daily-stats JSON file (optional; pm/yesterday levels default to absent)")
	outPath := flag.String("out", "", "path to write the result document JSON (default: stdout)")
	cfgPath := flag.String("config", "", "path to a daybt config YAML file (optional)")
	archiveDir := flag.String("archive-dir", "", "override the Parquet archive directory from config")
	registryPath := flag.String("registry", "", "override the SQLite run registry path from config")
	strategyName := flag.String("name", "unnamed", "strategy name recorded in the run registry")
	workers := flag.Int("workers", 0, "max concurrent day workers (0 uses config default)")
	flag.Parse()

	if *strategyPath == "" || *barsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: daybt-run -strategy strategy.json -bars bars.json [-stats stats.json] [-out result.json]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *archiveDir != "" {
		cfg.Storage.ArchiveDir = *archiveDir
	}
	if *registryPath != "" {
		cfg.Storage.RegistryPath = *registryPath
	}

	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	strategyData, err := os.ReadFile(*strategyPath)
	if err != nil {
		log.Fatalf("reading strategy file: %v", err)
	}
	def, err := strategyio.Decode(strategyData)
	if err != nil {
		log.Fatalf("decoding strategy: %v", err)
	}

	barsData, err := os.ReadFile(*barsPath)
	if err != nil {
		log.Fatalf("reading bars file: %v", err)
	}
	groups, err := strategyio.DecodeBarGroups(barsData)
	if err != nil {
		log.Fatalf("decoding bar groups: %v", err)
	}

	if *statsPath != "" {
		statsData, err := os.ReadFile(*statsPath)
		if err != nil {
			log.Fatalf("reading stats file: %v", err)
		}
		stats, err := strategyio.DecodeDailyStats(statsData)
		if err != nil {
			log.Fatalf("decoding daily stats: %v", err)
		}
		strategyio.MergeDailyStats(groups, stats)
	}

	maxWorkers := cfg.Driver.MaxWorkers
	if *workers > 0 {
		maxWorkers = *workers
	}

	var registry *resultstore.RunRegistry
	var runID string
	if cfg.Storage.RegistryPath != "" {
		registry, err = resultstore.OpenRunRegistry(cfg.Storage.RegistryPath)
		if err != nil {
			log.Fatalf("opening run registry: %v", err)
		}
		defer registry.Close()

		runID, err = registry.BeginRun(*strategyName)
		if err != nil {
			log.Fatalf("beginning run record: %v", err)
		}
	}

	doc, err := driver.Run(context.Background(), groups, def, driver.Options{
		Config:     domain.BacktestConfig{InitCash: cfg.Backtest.InitCash, Fees: cfg.Backtest.Fees, Slippage: cfg.Backtest.Slippage},
		MaxWorkers: maxWorkers,
	})
	if err != nil {
		if registry != nil {
			_ = registry.FailRun(runID)
		}
		log.Fatalf("running backtest: %v", err)
	}

	if registry != nil {
		if err := registry.FinishRun(runID, doc.AggregateMetrics.TotalDays, doc.AggregateMetrics.TotalTrades, doc.AggregateMetrics.TotalReturnPct); err != nil {
			slog.Error("failed to finalize run record", "error", err)
		}
	}

	if cfg.Storage.ArchiveDir != "" {
		archive := resultstore.NewParquetArchive(cfg.Storage.ArchiveDir)
		archiveRunID := runID
		if archiveRunID == "" {
			archiveRunID = *strategyName
		}
		if err := archive.WriteResult(archiveRunID, doc); err != nil {
			slog.Error("failed to archive result", "error", err)
		}
	}

	out, err := strategyio.EncodeResult(doc)
	if err != nil {
		log.Fatalf("encoding result: %v", err)
	}
	destination := "stdout"
	if *outPath == "" {
		fmt.Println(string(out))
	} else {
		if err := os.WriteFile(*outPath, out, 0o644); err != nil {
			log.Fatalf("writing result file: %v", err)
		}
		destination = *outPath
	}

	slog.Info("backtest complete",
		"days", doc.AggregateMetrics.TotalDays,
		"trades", doc.AggregateMetrics.TotalTrades,
		"total_return_pct", doc.AggregateMetrics.TotalReturnPct,
		"out", destination,
	)
}
