package qa_test

import (
	"testing"

	"github.com/RSA-Bots/Reppy/internal/database/types"
	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testGuildID = uint64(100)

func setupChannelManager(t *testing.T, seeded ...uint64) (*qa.ChannelConfigManager, *fakeGuildStore) {
	t.Helper()

	guilds := newFakeGuildStore()
	guilds.seed(&types.GuildConfig{GuildID: testGuildID, ValidChannels: seeded})

	manager := qa.NewChannelConfigManager(guilds, newFakeLocker(), zap.NewNop())

	return manager, guilds
}

func TestToggleChannelsAddsAndRemoves(t *testing.T) {
	t.Parallel()
	manager, _ := setupChannelManager(t, 1, 2)

	ctx := t.Context()

	// 2 is present and toggles off, 3 is absent and toggles on.
	channels, err := manager.ToggleChannels(ctx, testGuildID, []uint64{2, 3})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{1, 3}, channels)
}

func TestToggleChannelsTwiceRestoresOriginal(t *testing.T) {
	t.Parallel()
	manager, _ := setupChannelManager(t, 1, 2)

	ctx := t.Context()
	batch := []uint64{2, 3, 4}

	_, err := manager.ToggleChannels(ctx, testGuildID, batch)
	require.NoError(t, err)

	channels, err := manager.ToggleChannels(ctx, testGuildID, batch)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{1, 2}, channels)
}

func TestToggleChannelsCapacityExceededChangesNothing(t *testing.T) {
	t.Parallel()
	manager, _ := setupChannelManager(t, 1, 2, 3, 4)

	ctx := t.Context()

	// Two additions on a four channel set would land at six.
	channels, err := manager.ToggleChannels(ctx, testGuildID, []uint64{5, 6})
	require.ErrorIs(t, err, qa.ErrCapacityExceeded)
	assert.ElementsMatch(t, []uint64{1, 2, 3, 4}, channels)

	// The rejection is atomic: even the toggles that fit were not applied.
	current, err := manager.ValidChannels(ctx, testGuildID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{1, 2, 3, 4}, current)
}

func TestToggleChannelsRemovalAtCapSucceeds(t *testing.T) {
	t.Parallel()
	manager, _ := setupChannelManager(t, 1, 2, 3, 4, 5)

	ctx := t.Context()

	// Removing one and adding one nets out at the cap.
	channels, err := manager.ToggleChannels(ctx, testGuildID, []uint64{1, 6})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3, 4, 5, 6}, channels)
}

func TestToggleChannelsMalformedBatches(t *testing.T) {
	t.Parallel()
	manager, _ := setupChannelManager(t)

	ctx := t.Context()

	_, err := manager.ToggleChannels(ctx, testGuildID, nil)
	assert.ErrorIs(t, err, qa.ErrMalformedAction)

	_, err = manager.ToggleChannels(ctx, testGuildID, []uint64{1, 2, 3, 4, 5, 6})
	assert.ErrorIs(t, err, qa.ErrMalformedAction)

	_, err = manager.ToggleChannels(ctx, testGuildID, []uint64{1, 1})
	assert.ErrorIs(t, err, qa.ErrMalformedAction)
}

func TestToggleChannelsUnknownGuild(t *testing.T) {
	t.Parallel()
	manager, _ := setupChannelManager(t)

	_, err := manager.ToggleChannels(t.Context(), 999, []uint64{1})
	assert.ErrorIs(t, err, qa.ErrConfigMissing)
}

func TestSetReportChannel(t *testing.T) {
	t.Parallel()
	manager, guilds := setupChannelManager(t)

	ctx := t.Context()

	require.NoError(t, manager.SetReportChannel(ctx, testGuildID, 42))

	config, err := guilds.GetGuild(ctx, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), config.ReportChannelID)
}

func TestSetReportChannelValidation(t *testing.T) {
	t.Parallel()
	manager, _ := setupChannelManager(t)

	ctx := t.Context()

	err := manager.SetReportChannel(ctx, testGuildID, 0)
	assert.ErrorIs(t, err, qa.ErrMalformedAction)

	err = manager.SetReportChannel(ctx, 999, 42)
	assert.ErrorIs(t, err, qa.ErrConfigMissing)
}
