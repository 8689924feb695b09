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

// MessageModel handles database operations for answer vote records.
// It implements qa.MessageStore.
type MessageModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewMessage creates a new message record model.
func NewMessage(db *bun.DB, logger *zap.Logger) *MessageModel {
	return &MessageModel{
		db:     db,
		logger: logger.Named("db_message"),
	}
}

// GetRecord loads the vote record for a published answer.
func (r *MessageModel) GetRecord(ctx context.Context, guildID, messageID uint64) (*types.MessageRecord, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.MessageRecord, error) {
		record := new(types.MessageRecord)

		err := r.db.NewSelect().
			Model(record).
			Where("guild_id = ?", guildID).
			Where("message_id = ?", messageID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, qa.ErrRecordMissing
			}

			return nil, fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		return record, nil
	})
}

// InsertRecord creates the vote record for a freshly published answer.
func (r *MessageModel) InsertRecord(ctx context.Context, record *types.MessageRecord) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().
			Model(record).
			On("CONFLICT (message_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		return nil
	})
}

// CastVote moves the voter into the requested vote set and out of the
// opposite one in a single statement, so concurrent presses on the same
// message cannot overwrite each other. Voting the same direction twice leaves
// the sets untouched.
func (r *MessageModel) CastVote(
	ctx context.Context, guildID, messageID, voterID uint64, direction qa.VoteDirection,
) (*types.MessageRecord, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.MessageRecord, error) {
		record := new(types.MessageRecord)

		target, opposite := "upvoters", "downvoters"
		if direction == qa.VoteDown {
			target, opposite = "downvoters", "upvoters"
		}

		res, err := r.db.NewUpdate().
			Model(record).
			SetColumn(target, fmt.Sprintf(
				"CASE WHEN ? = ANY(%s) THEN %s ELSE array_append(%s, ?) END", target, target, target,
			), voterID, voterID).
			SetColumn(opposite, fmt.Sprintf("array_remove(%s, ?)", opposite), voterID).
			Where("guild_id = ?", guildID).
			Where("message_id = ?", messageID).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		if affected == 0 {
			return nil, qa.ErrRecordMissing
		}

		return record, nil
	})
}

// ChannelScore derives a user's score in a channel as the sum of upvotes
// minus downvotes across their recorded answers.
func (r *MessageModel) ChannelScore(ctx context.Context, guildID, userID, channelID uint64) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		var score int64

		err := r.db.NewSelect().
			Model((*types.MessageRecord)(nil)).
			ColumnExpr("COALESCE(SUM(" +
				"COALESCE(array_length(upvoters, 1), 0) - COALESCE(array_length(downvoters, 1), 0)" +
				"), 0)").
			Where("guild_id = ?", guildID).
			Where("poster_id = ?", userID).
			Where("channel_id = ?", channelID).
			Scan(ctx, &score)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", qa.ErrStoreUnavailable, err)
		}

		return score, nil
	})
}
