package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/metrics"
	"github.com/Lil-Chen05/TheBench/internal/models"
	"github.com/Lil-Chen05/TheBench/internal/statsfile"

	"github.com/rs/zerolog"
)

// Defaults for Options
const (
	DefaultBatchSize        = 100
	DefaultProgressInterval = 1000
)

// State is the importer's position in a run
type State int

const (
	StateNotStarted State = iota
	StateLoading
	StateStreaming
	StateDraining
	StateDone
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateLoading:
		return "loading"
	case StateStreaming:
		return "streaming"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// RowSource yields source rows in file order. It returns io.EOF when exhausted
// and *statsfile.RowError for a record that should be counted and skipped.
type RowSource interface {
	Next() (statsfile.Row, error)
}

// Options configures an import run
type Options struct {
	BatchSize        int
	ProgressInterval int
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = DefaultProgressInterval
	}
	return o
}

// Summary is the outcome of a run
type Summary struct {
	Processed     int
	Errors        int
	Batches       int
	FailedBatches int
	Created       CreatedCounts
	Duration      time.Duration
}

// SuccessRate returns (processed-errors)/processed as a percentage.
// ok is false when no rows were processed.
func (s Summary) SuccessRate() (rate float64, ok bool) {
	if s.Processed == 0 {
		return 0, false
	}
	return float64(s.Processed-s.Errors) / float64(s.Processed) * 100, true
}

// FormatSuccessRate renders the success rate with one decimal, or "" when undefined
func (s Summary) FormatSuccessRate() string {
	rate, ok := s.SuccessRate()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.1f%%", rate)
}

// Importer streams rows into the store in fixed-size upsert batches.
// An Importer runs once; create a new one per file.
type Importer struct {
	store Store
	opts  Options
	state State

	cache       *ReferenceCache
	resolver    *Resolver
	transformer *Transformer

	buffer  []*models.PlayerGameStats
	summary Summary
}

// New creates an importer writing to store
func New(store Store, opts Options) *Importer {
	opts = opts.withDefaults()
	cache := NewReferenceCache()
	resolver := NewResolver(cache, store)

	return &Importer{
		store:       store,
		opts:        opts,
		state:       StateNotStarted,
		cache:       cache,
		resolver:    resolver,
		transformer: NewTransformer(cache, resolver),
		buffer:      make([]*models.PlayerGameStats, 0, opts.BatchSize),
	}
}

// State returns the current run state
func (imp *Importer) State() State {
	return imp.state
}

// Run loads reference data, streams every row from src and flushes the final batch.
// Row and batch failures are counted in the summary; only a failed reference
// load or an unreadable source aborts the run.
func (imp *Importer) Run(ctx context.Context, src RowSource) (Summary, error) {
	if imp.state != StateNotStarted {
		return imp.summary, fmt.Errorf("importer already run: state=%s", imp.state)
	}

	logger := zerolog.Ctx(ctx)
	start := time.Now()

	imp.state = StateLoading
	logger.Info().Msg("Loading existing data for mapping...")
	if err := imp.cache.Load(ctx, imp.store); err != nil {
		metrics.RecordImport("failed", time.Since(start).Seconds())
		return imp.summary, fmt.Errorf("failed to load reference data: %w", err)
	}
	counts := imp.cache.Counts()
	logger.Info().
		Int("teams", counts.Teams).
		Int("players", counts.Players).
		Int("seasons", counts.Seasons).
		Int("games", counts.Games).
		Msg("Reference data loaded")

	imp.state = StateStreaming
	if err := imp.stream(ctx, src); err != nil {
		metrics.RecordImport("failed", time.Since(start).Seconds())
		return imp.summary, err
	}

	imp.state = StateDraining
	if len(imp.buffer) > 0 {
		n := len(imp.buffer)
		if imp.flush(ctx) {
			logger.Info().Int("records", n).Msgf("Inserted final batch of %d records", n)
		}
	}

	imp.state = StateDone
	imp.summary.Created = imp.resolver.Created()
	imp.summary.Duration = time.Since(start)
	imp.logSummary(logger)
	metrics.RecordImport("success", imp.summary.Duration.Seconds())

	return imp.summary, nil
}

func (imp *Importer) stream(ctx context.Context, src RowSource) error {
	logger := zerolog.Ctx(ctx)

	for {
		row, err := src.Next()
		if err == io.EOF {
			return nil
		}

		var rowErr *statsfile.RowError
		if err != nil && !errors.As(err, &rowErr) {
			return fmt.Errorf("failed to read input after %d rows: %w", imp.summary.Processed, err)
		}

		imp.summary.Processed++
		metrics.RecordRowProcessed()

		if rowErr != nil {
			imp.skip(logger, rowErr, row)
		} else if stats, err := imp.transformer.Transform(ctx, row); err != nil {
			imp.skip(logger, err, row)
		} else {
			imp.buffer = append(imp.buffer, stats)
			if len(imp.buffer) >= imp.opts.BatchSize {
				n := len(imp.buffer)
				if imp.flush(ctx) {
					logger.Info().
						Int("records", n).
						Int("processed", imp.summary.Processed).
						Msgf("Inserted batch of %d records. Total processed: %d", n, imp.summary.Processed)
				}
			}
		}

		if imp.summary.Processed%imp.opts.ProgressInterval == 0 {
			logger.Info().
				Int("processed", imp.summary.Processed).
				Int("errors", imp.summary.Errors).
				Msgf("Processed %d rows, %d errors", imp.summary.Processed, imp.summary.Errors)
		}
	}
}

func (imp *Importer) skip(logger *zerolog.Logger, err error, row statsfile.Row) {
	imp.summary.Errors++
	reason := SkipReason(err)
	metrics.RecordRowSkipped(reason)

	event := logger.Warn().Err(err).Str("reason", reason)
	if line := row.Line(); line > 0 {
		event = event.Int("line", line)
	}
	event.Str("row", row.String()).Msg("Error processing row")
}

// flush upserts the buffer and resets it. A failed upsert counts every buffered
// record as an error; nothing is retried.
func (imp *Importer) flush(ctx context.Context) bool {
	batch := imp.buffer
	imp.buffer = make([]*models.PlayerGameStats, 0, imp.opts.BatchSize)
	imp.summary.Batches++

	if err := imp.store.UpsertPlayerGameStats(ctx, batch); err != nil {
		imp.summary.FailedBatches++
		imp.summary.Errors += len(batch)
		metrics.RecordBatch("failed", len(batch))
		metrics.RecordError("importer", "batch_upsert")

		zerolog.Ctx(ctx).Error().
			Err(err).
			Int("records", len(batch)).
			Msg("Error inserting batch")
		return false
	}

	metrics.RecordBatch("success", len(batch))
	return true
}

func (imp *Importer) logSummary(logger *zerolog.Logger) {
	s := imp.summary
	logger.Info().
		Int("processed", s.Processed).
		Int("errors", s.Errors).
		Int("batches", s.Batches).
		Int("failed_batches", s.FailedBatches).
		Int("seasons_created", s.Created.Seasons).
		Int("players_created", s.Created.Players).
		Int("games_created", s.Created.Games).
		Dur("duration", s.Duration).
		Msg("Import completed!")

	logger.Info().Msgf("Total rows processed: %d", s.Processed)
	logger.Info().Msgf("Total errors: %d", s.Errors)
	if rate := s.FormatSuccessRate(); rate != "" {
		logger.Info().Msgf("Success rate: %s", rate)
	}
}
