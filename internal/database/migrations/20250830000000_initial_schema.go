package migrations

import (
	"context"
	"fmt"

	"github.com/RSA-Bots/Reppy/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.GuildConfig)(nil),
			(*types.MessageRecord)(nil),
			(*types.UserReputation)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		// The channel cap is enforced in code per batch; the constraint backs
		// it up against out-of-band writes.
		_, err := db.ExecContext(ctx, `
			ALTER TABLE guild_configs
			ADD CONSTRAINT valid_channels_cap
			CHECK (COALESCE(array_length(valid_channels, 1), 0) <= 5)
		`)
		if err != nil {
			return fmt.Errorf("failed to add channel cap constraint: %w", err)
		}

		indexes := []struct {
			name    string
			model   any
			columns []string
		}{
			{"idx_message_records_guild", (*types.MessageRecord)(nil), []string{"guild_id"}},
			{"idx_message_records_poster", (*types.MessageRecord)(nil), []string{"guild_id", "poster_id", "channel_id"}},
		}

		for _, idx := range indexes {
			q := db.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				IfNotExists()

			for _, col := range idx.columns {
				q = q.Column(col)
			}

			if _, err := q.Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.UserReputation)(nil),
			(*types.MessageRecord)(nil),
			(*types.GuildConfig)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}

		return nil
	})
}
