// Command importer loads a per-player box score CSV into the stats store.
//
// Usage:
//
//	importer stats.csv
//	importer stats.csv --backend supabase --batch-size 200
//	importer stats.csv --schedule "0 6 * * *"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/backend"
	"github.com/Lil-Chen05/TheBench/internal/config"
	"github.com/Lil-Chen05/TheBench/internal/importer"
	"github.com/Lil-Chen05/TheBench/internal/lock"
	"github.com/Lil-Chen05/TheBench/internal/metrics"
	"github.com/Lil-Chen05/TheBench/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		batchSize    int
		schedule     string
		storeBackend string
	)

	cmd := &cobra.Command{
		Use:          "importer <csv_file_path>",
		Short:        "Import player game stats from a CSV file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("input file: %w", err)
			}

			cfg, err := config.Load(func(c *config.Config) {
				if cmd.Flags().Changed("batch-size") {
					c.BatchSize = batchSize
				}
				if cmd.Flags().Changed("schedule") {
					c.Schedule = schedule
				}
				if cmd.Flags().Changed("backend") {
					c.StoreBackend = storeBackend
				}
			})
			if err != nil {
				return err
			}

			setupLogger(cfg)
			log.Info().
				Str("env", cfg.AppEnv).
				Str("backend", cfg.StoreBackend).
				Str("file", path).
				Msg("Configuration loaded")

			return run(cfg, path)
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", importer.DefaultBatchSize, "Records per upsert batch")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron spec to re-run the import until interrupted")
	cmd.Flags().StringVar(&storeBackend, "backend", config.BackendPostgres, "Backing store: postgres or supabase")

	return cmd
}

// run wires the store, lock and scheduler and performs the import
func run(cfg *config.Config, path string) error {
	ctx := log.Logger.WithContext(context.Background())

	store, err := backend.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	job := &scheduler.Job{
		Store: store.Store,
		Path:  path,
		Options: importer.Options{
			BatchSize:        cfg.BatchSize,
			ProgressInterval: cfg.ProgressInterval,
		},
		LockTarget: cfg.StoreBackend,
	}

	if cfg.LockEnabled() {
		locker, err := lock.NewLocker(ctx, cfg.RedisURL, cfg.ImportLockTTL)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without run lock")
		} else {
			defer locker.Close()
			job.Locker = locker
		}
	}

	if cfg.Schedule != "" {
		return runScheduled(ctx, cfg, job, store)
	}

	_, err = job.Run(ctx)
	pushMetrics(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Import failed")
		return err
	}

	return nil
}

// runScheduled runs the job once now and then on cfg.Schedule until SIGINT/SIGTERM
func runScheduled(ctx context.Context, cfg *config.Config, job *scheduler.Job, store *backend.Backend) error {
	if cfg.EnableMetrics {
		go startMetricsServer(cfg.MetricsPort, store)
	}

	if _, err := job.Run(ctx); err != nil && !errors.Is(err, lock.ErrLocked) {
		log.Error().Err(err).Msg("Initial import failed, continuing on schedule")
	}
	pushMetrics(ctx, cfg)

	sched := scheduler.NewScheduler(cfg.Schedule, scheduler.RunnerFunc(func(ctx context.Context) error {
		_, err := job.Run(ctx)
		pushMetrics(ctx, cfg)
		return err
	}))
	if err := sched.Start(ctx); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Received shutdown signal, waiting for running import...")

	sched.Stop()
	log.Info().Msg("Importer shutdown complete")
	return nil
}

func pushMetrics(ctx context.Context, cfg *config.Config) {
	if cfg.PushgatewayURL == "" {
		return
	}

	hostname, _ := os.Hostname()
	if err := metrics.Push(ctx, cfg.PushgatewayURL, hostname); err != nil {
		log.Warn().Err(err).Msg("Failed to push metrics")
	}
}

// setupLogger configures the zerolog logger
func setupLogger(cfg *config.Config) {
	// Human-readable progress on stdout unless JSON is requested
	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
	zerolog.DefaultContextLogger = &log.Logger

	// Set log level
	level := zerolog.InfoLevel
	if parsedLevel, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		level = parsedLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Debug().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// healthChecker reports store health for the health endpoint
type healthChecker interface {
	Health(ctx context.Context) (map[string]interface{}, error)
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port int, store healthChecker) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/health", healthHandler(store))

	addr := fmt.Sprintf(":%d", port)
	log.Info().Int("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}

// healthHandler pings the store and reports its details, 503 when unreachable
func healthHandler(store healthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{"status": "healthy"}
		status := http.StatusOK

		details, err := store.Health(r.Context())
		if err != nil {
			body["status"] = "unhealthy"
			body["error"] = err.Error()
			status = http.StatusServiceUnavailable
			metrics.RecordError("health", "store_unreachable")
		} else if details != nil {
			body["store"] = details
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Warn().Err(err).Msg("Failed to write health response")
		}
	}
}
