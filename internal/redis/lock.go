package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

const (
	// lockTTL bounds how long a crashed holder can block a guild.
	lockTTL = 10 * time.Second
	// acquireInterval is the polling interval while waiting for a held lock.
	acquireInterval = 50 * time.Millisecond
)

// releaseScript deletes the lock only when the caller still holds it, so a
// slow handler cannot release a lock that has already expired and been
// re-acquired by someone else.
var releaseScript = rueidis.NewLuaScript(
	`if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`,
)

// GuildLocker serializes read-modify-write mutations per guild. Locks for
// different guilds are independent keys, so unrelated guilds never block each
// other. It implements qa.GuildLocker.
type GuildLocker struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewGuildLocker creates a guild locker on the given Redis client.
func NewGuildLocker(client rueidis.Client, logger *zap.Logger) *GuildLocker {
	return &GuildLocker{
		client: client,
		logger: logger.Named("guild_lock"),
	}
}

// Acquire blocks until the guild's lock is held or the context is done, then
// returns the release function.
func (l *GuildLocker) Acquire(ctx context.Context, guildID uint64) (func(), error) {
	key := fmt.Sprintf("guild_lock:%d", guildID)
	token := uuid.NewString()

	err := backoff.Retry(func() error {
		resp := l.client.Do(ctx, l.client.B().Set().Key(key).Value(token).Nx().Px(lockTTL).Build())
		if err := resp.Error(); err != nil {
			if rueidis.IsRedisNil(err) {
				// Held by someone else, keep polling.
				return err
			}

			return backoff.Permanent(err)
		}

		return nil
	}, backoff.WithContext(backoff.NewConstantBackOff(acquireInterval), ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock for guild %d: %w", guildID, err)
	}

	release := func() {
		resp := releaseScript.Exec(context.Background(), l.client, []string{key}, []string{token})
		if err := resp.Error(); err != nil {
			l.logger.Warn("Failed to release guild lock",
				zap.Uint64("guild_id", guildID),
				zap.Error(err))
		}
	}

	return release, nil
}
