package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/RSA-Bots/Reppy/internal/database/dbretry"
	"github.com/RSA-Bots/Reppy/internal/database/types"
	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ReputationModel handles database operations for per-user, per-channel score
// snapshots. It implements qa.ReputationStore.
type ReputationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReputation creates a new reputation model.
func NewReputation(db *bun.DB, logger *zap.Logger) *ReputationModel {
	return &ReputationModel{
		db:     db,
		logger: logger.Named("db_reputation"),
	}
}

// UpsertScore writes a recomputed score snapshot.
func (r *ReputationModel) UpsertScore(ctx context.Context, rep *types.UserReputation) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().
			Model(rep).
			On("CONFLICT (guild_id, user_id, channel_id) DO UPDATE").
			Set("reputation = EXCLUDED.reputation").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		return nil
	})
}

// GetScore reads the last written snapshot. Unknown combinations score zero.
func (r *ReputationModel) GetScore(ctx context.Context, guildID, userID, channelID uint64) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		rep := new(types.UserReputation)

		err := r.db.NewSelect().
			Model(rep).
			Where("guild_id = ?", guildID).
			Where("user_id = ?", userID).
			Where("channel_id = ?", channelID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, nil
			}

			return 0, fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		return rep.Reputation, nil
	})
}
