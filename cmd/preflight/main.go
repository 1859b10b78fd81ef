// Command preflight dry-runs a stats CSV against the store's reference data.
// It reports rows the importer would skip and never writes.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"

	"github.com/Lil-Chen05/TheBench/internal/backend"
	"github.com/Lil-Chen05/TheBench/internal/config"
	"github.com/Lil-Chen05/TheBench/internal/importer"
	"github.com/Lil-Chen05/TheBench/internal/statsfile"

	"github.com/rs/zerolog/log"
)

// Exit codes
const (
	exitOK      = 0
	exitFailed  = 1
	exitSkipped = 2
)

func main() {
	if len(os.Args) != 2 {
		log.Error().Msg("Usage: preflight <csv_file_path>")
		os.Exit(exitFailed)
	}

	os.Exit(run(context.Background(), config.MustLoad(), os.Args[1]))
}

// run checks path against the configured store and returns the exit code.
// Deferred closes run before main exits.
func run(ctx context.Context, cfg *config.Config, path string) int {
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open store")
		return exitFailed
	}
	defer store.Close()

	return preflight(ctx, store.Store, path)
}

func preflight(ctx context.Context, store importer.Store, path string) int {
	// 1. Load reference data
	cache := importer.NewReferenceCache()
	if err := cache.Load(ctx, store); err != nil {
		log.Error().Err(err).Msg("Failed to load reference data")
		return exitFailed
	}

	// 2. Open the file
	reader, err := statsfile.Open(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to open input file")
		return exitFailed
	}
	defer reader.Close()

	// 3. Check every row without resolving anything that would write
	r, err := check(reader, importer.NewTransformer(cache, nil))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read input file")
		return exitFailed
	}

	return r.log()
}

type report struct {
	rows    int
	ok      int
	skipped map[string]int
}

// log writes the skip counts and summary and returns the exit code
func (r report) log() int {
	reasons := make([]string, 0, len(r.skipped))
	for reason := range r.skipped {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		log.Warn().Str("reason", reason).Int("rows", r.skipped[reason]).Msg("Rows would be skipped")
	}

	log.Info().
		Int("rows", r.rows).
		Int("ok", r.ok).
		Msg("Preflight complete.")

	if r.ok < r.rows {
		return exitSkipped
	}
	return exitOK
}

func check(src importer.RowSource, tr *importer.Transformer) (report, error) {
	r := report{skipped: make(map[string]int)}

	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return r, nil
		}

		var rowErr *statsfile.RowError
		if err != nil && !errors.As(err, &rowErr) {
			return r, err
		}

		r.rows++
		if err == nil {
			err = tr.Validate(row)
		}
		if err != nil {
			r.skipped[importer.SkipReason(err)]++
			log.Debug().Err(err).Int("line", row.Line()).Msg("Row would be skipped")
			continue
		}
		r.ok++
	}
}
