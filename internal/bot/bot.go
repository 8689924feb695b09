package bot

import (
	"context"
	"sync"
	"time"

	"github.com/RSA-Bots/Reppy/internal/bot/constants"
	"github.com/RSA-Bots/Reppy/internal/database"
	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/RSA-Bots/Reppy/internal/redis"
	"github.com/disgoorg/disgo"
	botclient "github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Bot wires the Q&A components to the Discord gateway. Every inbound action
// is dispatched to exactly one component; the component validates against the
// guild's record, mutates, persists, and the handler emits a single ephemeral
// acknowledgment.
type Bot struct {
	db       database.Client
	client   botclient.Client
	logger   *zap.Logger
	gateway  *discordGateway
	channels *qa.ChannelConfigManager
	perms    *qa.PermissionSynchronizer
	convert  *qa.ConversionStateMachine
	ledger   *qa.ReputationLedger
	flags    *qa.FlagWorkflow

	// Guild IDs collected from ready events, synced once all are in.
	mu          sync.Mutex
	readyGuilds []snowflake.ID
}

// New initializes a Bot instance by creating the Discord client and wiring
// the Q&A components to their stores, the guild locker and the gateway.
func New(token string, db database.Client, redisManager *redis.Manager, logger *zap.Logger) (*Bot, error) {
	lockClient, err := redisManager.GetClient(redis.LockDBIndex)
	if err != nil {
		return nil, err
	}

	locker := redis.NewGuildLocker(lockClient, logger)

	b := &Bot{
		db:     db,
		logger: logger.Named("bot"),
	}

	client, err := disgo.New(token,
		botclient.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMessages,
				gateway.IntentGuildMembers,
			),
		),
		botclient.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: b.handleApplicationCommandInteraction,
			OnComponentInteraction:          b.handleComponentInteraction,
			OnGuildReady:                    b.handleGuildReady,
			OnGuildsReady:                   b.handleGuildsReady,
			OnGuildJoin:                     b.handleGuildJoin,
		}),
	)
	if err != nil {
		return nil, err
	}

	b.client = client
	b.gateway = newDiscordGateway(client.Rest(), client.ApplicationID(), logger)

	guilds := db.Model().Guild()
	messages := db.Model().Message()
	reputation := db.Model().Reputation()

	b.channels = qa.NewChannelConfigManager(guilds, locker, logger)
	b.perms = qa.NewPermissionSynchronizer(b.gateway, logger)
	b.convert = qa.NewConversionStateMachine(guilds, messages, b.gateway, logger)
	b.ledger = qa.NewReputationLedger(messages, reputation, b.gateway, logger)
	b.flags = qa.NewFlagWorkflow(guilds, logger)

	return b, nil
}

// Start opens the gateway connection. Commands are registered per guild once
// the guild ready events arrive.
func (b *Bot) Start() error {
	b.logger.Info("Starting bot")
	return b.client.OpenGateway(context.Background())
}

// Close gracefully shuts down the Discord gateway connection.
func (b *Bot) Close() {
	b.logger.Info("Closing bot")
	b.client.Close(context.Background())
}

// handleApplicationCommandInteraction defers the ephemeral response and
// dispatches the command in a goroutine so commands process concurrently.
func (b *Bot) handleApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	go func() {
		// Defer response to prevent Discord timeout while processing
		if err := event.DeferCreateMessage(true); err != nil {
			b.logger.Error("Failed to defer create message", zap.Error(err))
			return
		}

		start := time.Now()

		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in application command interaction handler", zap.Any("panic", r))
				b.updateResponse(event, "Internal error. Please report this to an administrator.")
			}

			b.logger.Debug("Application command interaction handled",
				zap.String("command", event.Data.CommandName()),
				zap.Duration("duration", time.Since(start)))
		}()

		switch event.Data.Type() {
		case discord.ApplicationCommandTypeSlash:
			b.handleSlashCommand(event)
		case discord.ApplicationCommandTypeMessage:
			b.handleContextCommand(event)
		default:
			b.updateResponse(event, "Invalid interactionData received.")
		}
	}()
}

// handleSlashCommand dispatches the three configuration commands.
func (b *Bot) handleSlashCommand(event *events.ApplicationCommandInteractionCreate) {
	switch event.Data.CommandName() {
	case constants.UpdateCommandName:
		b.handleUpdate(event)
	case constants.ViewCommandName:
		b.handleView(event)
	case constants.SetCommandName:
		b.handleSet(event)
	default:
		b.updateResponse(event, "Invalid interactionData received.")
	}
}

// handleGuildReady collects guild IDs as they stream in during startup.
func (b *Bot) handleGuildReady(event *events.GuildReady) {
	b.mu.Lock()
	b.readyGuilds = append(b.readyGuilds, event.Guild.ID)
	b.mu.Unlock()
}

// handleGuildsReady registers commands and resyncs permissions for every
// guild concurrently once the initial guild stream completes.
func (b *Bot) handleGuildsReady(*events.GuildsReady) {
	b.mu.Lock()
	guilds := b.readyGuilds
	b.readyGuilds = nil
	b.mu.Unlock()

	b.logger.Info("Syncing guild commands", zap.Int("guilds", len(guilds)))

	p := pool.New().WithMaxGoroutines(4)
	for _, guildID := range guilds {
		p.Go(func() {
			b.syncGuild(guildID)
		})
	}

	p.Wait()
}

// handleGuildJoin brings the new guild's record, commands and permissions up
// to date.
func (b *Bot) handleGuildJoin(event *events.GuildJoin) {
	b.logger.Info("Bot joined a new guild",
		zap.String("guild_id", event.Guild.ID.String()),
		zap.String("guild_name", event.Guild.Name))

	b.syncGuild(event.Guild.ID)
}

// syncGuild ensures the guild's default record exists, registers the guild's
// command payload and replaces the permitted role set of the restricted
// configuration commands from the guild's live roles. Failures are logged and
// swallowed; the guild retries on the next startup or join.
func (b *Bot) syncGuild(guildID snowflake.ID) {
	if err := b.db.Model().Guild().CreateDefault(context.Background(), uint64(guildID)); err != nil {
		b.logger.Warn("Failed to create default guild record",
			zap.String("guild_id", guildID.String()),
			zap.Error(err))
	}

	commands, err := b.client.Rest().SetGuildCommands(b.client.ApplicationID(), guildID, guildCommands())
	if err != nil {
		b.logger.Warn("Failed to register guild commands",
			zap.String("guild_id", guildID.String()),
			zap.Error(err))

		return
	}

	restricted := make([]uint64, 0, 2)

	for _, command := range commands {
		switch command.Name() {
		case constants.UpdateCommandName, constants.SetCommandName:
			restricted = append(restricted, uint64(command.ID()))
		}
	}

	roles, err := b.client.Rest().GetRoles(guildID)
	if err != nil {
		b.logger.Warn("Failed to fetch guild roles",
			zap.String("guild_id", guildID.String()),
			zap.Error(err))

		return
	}

	qaRoles := make([]qa.Role, 0, len(roles))
	for _, role := range roles {
		qaRoles = append(qaRoles, qa.Role{
			ID:        uint64(role.ID),
			CanManage: role.Permissions.Has(discord.PermissionManageGuild),
		})
	}

	if err := b.perms.Resync(context.Background(), uint64(guildID), qaRoles, restricted); err != nil {
		b.logger.Warn("Failed to resync command permissions",
			zap.String("guild_id", guildID.String()),
			zap.Error(err))
	}
}
