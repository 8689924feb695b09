package qa

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// MaxValidChannels caps how many channels a guild may enable for the
// reputation workflow.
const MaxValidChannels = 5

// ChannelConfigManager toggles which channels participate in the Q&A workflow
// and assigns the report channel. All mutations are serialized per guild
// through the locker since they read, modify, and write a multi-field record.
type ChannelConfigManager struct {
	guilds GuildStore
	locks  GuildLocker
	logger *zap.Logger
}

// NewChannelConfigManager creates a channel config manager.
func NewChannelConfigManager(guilds GuildStore, locks GuildLocker, logger *zap.Logger) *ChannelConfigManager {
	return &ChannelConfigManager{
		guilds: guilds,
		locks:  locks,
		logger: logger.Named("qa_channels"),
	}
}

// ToggleChannels flips membership of each requested channel in the guild's
// valid channel set. The batch is atomic: if the resulting set would exceed
// the cap, nothing is changed and ErrCapacityExceeded is returned. Toggling
// the same batch twice restores the original set.
func (m *ChannelConfigManager) ToggleChannels(ctx context.Context, guildID uint64, channelIDs []uint64) ([]uint64, error) {
	if len(channelIDs) == 0 || len(channelIDs) > MaxValidChannels {
		return nil, fmt.Errorf("%w: expected 1 to %d channels, got %d", ErrMalformedAction, MaxValidChannels, len(channelIDs))
	}

	// Duplicate arguments would toggle a channel back off within one batch.
	seen := make(map[uint64]struct{}, len(channelIDs))
	for _, id := range channelIDs {
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate channel %d", ErrMalformedAction, id)
		}

		seen[id] = struct{}{}
	}

	release, err := m.locks.Acquire(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer release()

	config, err := m.guilds.GetGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	next := slices.Clone(config.ValidChannels)
	for _, id := range channelIDs {
		if i := slices.Index(next, id); i >= 0 {
			next = slices.Delete(next, i, i+1)
		} else {
			next = append(next, id)
		}
	}

	if len(next) > MaxValidChannels {
		return config.ValidChannels, ErrCapacityExceeded
	}

	if err := m.guilds.SaveValidChannels(ctx, guildID, next); err != nil {
		return nil, err
	}

	m.logger.Debug("Toggled valid channels",
		zap.Uint64("guild_id", guildID),
		zap.Int("channel_count", len(next)))

	return next, nil
}

// ValidChannels returns the guild's current valid channel set.
func (m *ChannelConfigManager) ValidChannels(ctx context.Context, guildID uint64) ([]uint64, error) {
	config, err := m.guilds.GetGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	return config.ValidChannels, nil
}

// SetReportChannel assigns the channel flagged messages are routed to.
func (m *ChannelConfigManager) SetReportChannel(ctx context.Context, guildID, channelID uint64) error {
	if channelID == 0 {
		return fmt.Errorf("%w: missing report channel", ErrMalformedAction)
	}

	release, err := m.locks.Acquire(ctx, guildID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer release()

	if _, err := m.guilds.GetGuild(ctx, guildID); err != nil {
		return err
	}

	return m.guilds.SetReportChannel(ctx, guildID, channelID)
}
