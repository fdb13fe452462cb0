package repository

import (
	"context"
	"sync/atomic"
	"time"

	"gvcargo/internal/domain"
	"gvcargo/internal/models"

	"github.com/rs/zerolog"
)

// FailoverStateRepository prefers the primary (redis) repository and
// falls back to the in-memory one when it errors. A lost redis means
// in-flight conversations degrade to process-local state, which the
// design accepts.
type FailoverStateRepository struct {
	primary   domain.StateRepository
	fallback  domain.StateRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverStateRepository(primary, fallback domain.StateRepository, logger *zerolog.Logger) *FailoverStateRepository {
	return &FailoverStateRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverStateRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary state repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck = time.Now()
}

// recovered probes the primary again after a minute of downtime.
func (r *FailoverStateRepository) recovered() bool {
	return r.isDown.Load() && time.Since(r.lastCheck) > time.Minute
}

func (r *FailoverStateRepository) GetState(ctx context.Context, userID int64) (*models.UserState, error) {
	if !r.isDown.Load() {
		state, err := r.primary.GetState(ctx, userID)
		if err == nil {
			return state, nil
		}
		r.markDown(err)
	}

	if r.recovered() {
		state, err := r.primary.GetState(ctx, userID)
		if err == nil {
			r.isDown.Store(false)
			return state, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetState(ctx, userID)
}

func (r *FailoverStateRepository) SetState(ctx context.Context, state *models.UserState) error {
	if !r.isDown.Load() {
		err := r.primary.SetState(ctx, state)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SetState(ctx, state)
}

func (r *FailoverStateRepository) ClearState(ctx context.Context, userID int64) error {
	if !r.isDown.Load() {
		err := r.primary.ClearState(ctx, userID)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.ClearState(ctx, userID)
}

func (r *FailoverStateRepository) GetCursor(ctx context.Context, userID int64) (*models.BrowseCursor, error) {
	if !r.isDown.Load() {
		cursor, err := r.primary.GetCursor(ctx, userID)
		if err == nil {
			return cursor, nil
		}
		r.markDown(err)
	}

	return r.fallback.GetCursor(ctx, userID)
}

func (r *FailoverStateRepository) SetCursor(ctx context.Context, cursor *models.BrowseCursor) error {
	if !r.isDown.Load() {
		err := r.primary.SetCursor(ctx, cursor)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SetCursor(ctx, cursor)
}

func (r *FailoverStateRepository) ClearCursor(ctx context.Context, userID int64) error {
	if !r.isDown.Load() {
		err := r.primary.ClearCursor(ctx, userID)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.ClearCursor(ctx, userID)
}

func (r *FailoverStateRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, userID, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.CheckRateLimit(ctx, userID, limit, window)
}
