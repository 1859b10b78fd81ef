package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lil-Chen05/TheBench/internal/importer"
	"github.com/Lil-Chen05/TheBench/internal/lock"
	"github.com/Lil-Chen05/TheBench/internal/statsfile"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Locker takes the import run lock
type Locker interface {
	Acquire(ctx context.Context, target string) (*lock.Lock, error)
}

// Job imports one CSV file into a store
type Job struct {
	Store   importer.Store
	Path    string
	Options importer.Options

	// Locker is optional; nil runs without a lock
	Locker     Locker
	LockTarget string
}

// Run opens the file and runs a fresh importer over it under a new run id
func (j *Job) Run(ctx context.Context) (importer.Summary, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("run_id", uuid.NewString()).
		Str("file", j.Path).
		Logger()
	ctx = logger.WithContext(ctx)

	if j.Locker != nil {
		held, err := j.Locker.Acquire(ctx, j.LockTarget)
		if err != nil {
			if errors.Is(err, lock.ErrLocked) {
				logger.Warn().Str("target", j.LockTarget).Msg("Import already running, skipping")
			}
			return importer.Summary{}, err
		}
		defer func() {
			if err := held.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Error().Err(err).Msg("Failed to release import lock")
			}
		}()
	}

	reader, err := statsfile.Open(j.Path)
	if err != nil {
		return importer.Summary{}, fmt.Errorf("failed to open %s: %w", j.Path, err)
	}
	defer reader.Close()

	return importer.New(j.Store, j.Options).Run(ctx, reader)
}
