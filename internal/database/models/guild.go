package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RSA-Bots/Reppy/internal/database/dbretry"
	"github.com/RSA-Bots/Reppy/internal/database/types"
	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"go.uber.org/zap"
)

// GuildModel handles database operations for guild configuration records.
// It implements qa.GuildStore.
type GuildModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewGuild creates a new guild model.
func NewGuild(db *bun.DB, logger *zap.Logger) *GuildModel {
	return &GuildModel{
		db:     db,
		logger: logger.Named("db_guild"),
	}
}

// GetGuild loads the configuration record for a guild.
func (r *GuildModel) GetGuild(ctx context.Context, guildID uint64) (*types.GuildConfig, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.GuildConfig, error) {
		config := new(types.GuildConfig)

		err := r.db.NewSelect().
			Model(config).
			Where("guild_id = ?", guildID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, qa.ErrConfigMissing
			}

			return nil, fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		return config, nil
	})
}

// CreateDefault inserts an empty record for a newly joined guild. Joining a
// guild the bot already knows changes nothing.
func (r *GuildModel) CreateDefault(ctx context.Context, guildID uint64) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		now := time.Now()
		config := &types.GuildConfig{
			GuildID:       guildID,
			ValidChannels: []uint64{},
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		_, err := r.db.NewInsert().
			Model(config).
			On("CONFLICT (guild_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		return nil
	})
}

// SaveValidChannels replaces the guild's valid channel set.
func (r *GuildModel) SaveValidChannels(ctx context.Context, guildID uint64, channels []uint64) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewUpdate().
			Model((*types.GuildConfig)(nil)).
			Set("valid_channels = ?", pgArray(channels)).
			Set("updated_at = ?", time.Now()).
			Where("guild_id = ?", guildID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		return nil
	})
}

// SetReportChannel assigns the channel flagged messages are routed to.
func (r *GuildModel) SetReportChannel(ctx context.Context, guildID, channelID uint64) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewUpdate().
			Model((*types.GuildConfig)(nil)).
			Set("report_channel_id = ?", channelID).
			Set("updated_at = ?", time.Now()).
			Where("guild_id = ?", guildID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		return nil
	})
}

// pgArray wraps a slice for use as a bind parameter in a SET expression.
func pgArray(values []uint64) *pgdialect.ArrayValue {
	return pgdialect.Array(values)
}
