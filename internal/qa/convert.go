package qa

import (
	"context"
	"fmt"
	"slices"

	"github.com/RSA-Bots/Reppy/internal/database/types"
	"go.uber.org/zap"
)

// ConversionStateMachine governs question and answer conversions. Every
// transition requires the acting user to be the target message's poster, and
// each validation step is checked in a fixed order with the first failure
// winning: guild context, guild config, target message, channel eligibility,
// authorization, then the state-specific idempotence check.
type ConversionStateMachine struct {
	guilds   GuildStore
	messages MessageStore
	gateway  Gateway
	logger   *zap.Logger
}

// NewConversionStateMachine creates a conversion state machine.
func NewConversionStateMachine(guilds GuildStore, messages MessageStore, gateway Gateway, logger *zap.Logger) *ConversionStateMachine {
	return &ConversionStateMachine{
		guilds:   guilds,
		messages: messages,
		gateway:  gateway,
		logger:   logger.Named("qa_convert"),
	}
}

// ConvertToQuestion attaches a thread to a plain message in a valid channel,
// turning it into a question. The returned ID is the new thread's ID, or the
// existing thread's ID alongside ErrAlreadyConverted when the message was
// converted before.
func (c *ConversionStateMachine) ConvertToQuestion(ctx context.Context, guildID, actorID uint64, msg Message) (uint64, error) {
	config, err := c.loadConfig(ctx, guildID)
	if err != nil {
		return 0, err
	}

	if msg.ID == 0 {
		// Unresolvable target message, nothing to report.
		c.logger.Debug("Question conversion on unresolvable message", zap.Uint64("guild_id", guildID))
		return 0, nil
	}

	if !slices.Contains(config.ValidChannels, msg.ChannelID) {
		return 0, ErrChannelNotEligible
	}

	if actorID != msg.AuthorID {
		return 0, ErrNotAuthorized
	}

	if msg.HasThread {
		// A thread created on a message shares the message's ID.
		return msg.ID, ErrAlreadyConverted
	}

	threadID, err := c.gateway.CreateThread(ctx, msg.ChannelID, msg.ID, QuestionTitle(msg.Content))
	if err != nil {
		return 0, fmt.Errorf("create thread: %w", err)
	}

	c.logger.Info("Converted message to question",
		zap.Uint64("guild_id", guildID),
		zap.Uint64("message_id", msg.ID),
		zap.Uint64("thread_id", threadID))

	return threadID, nil
}

// ConvertToAnswer publishes a reply inside a question thread as an answer: a
// new embed message carrying vote controls replaces the reply, the reply is
// deleted, and a vote record is created for the new message. Returns the
// published answer's message ID.
func (c *ConversionStateMachine) ConvertToAnswer(ctx context.Context, guildID, actorID uint64, msg Message) (uint64, error) {
	config, err := c.loadConfig(ctx, guildID)
	if err != nil {
		return 0, err
	}

	if msg.ID == 0 {
		c.logger.Debug("Answer conversion on unresolvable message", zap.Uint64("guild_id", guildID))
		return 0, nil
	}

	thread, ok, err := c.gateway.ThreadOf(ctx, msg.ChannelID)
	if err != nil {
		return 0, fmt.Errorf("resolve thread: %w", err)
	}

	if !ok || !slices.Contains(config.ValidChannels, thread.ParentID) {
		return 0, ErrChannelNotEligible
	}

	if actorID != msg.AuthorID {
		return 0, ErrNotAuthorized
	}

	if msg.HasEmbeds {
		return msg.ID, ErrAlreadyConverted
	}

	name, err := c.gateway.MemberDisplayName(ctx, guildID, msg.AuthorID)
	if err != nil {
		return 0, fmt.Errorf("resolve member: %w", err)
	}

	answerID, err := c.gateway.PostAnswer(ctx, AnswerPost{
		ThreadID:   thread.ID,
		AuthorName: name,
		Content:    msg.Content,
	})
	if err != nil {
		return 0, fmt.Errorf("post answer: %w", err)
	}

	// The published answer is the vote-bearing record from here on. Failures
	// past this point are reported but not rolled back; the answer stays up.
	record := &types.MessageRecord{
		GuildID:    guildID,
		MessageID:  answerID,
		ChannelID:  thread.ParentID,
		PosterID:   msg.AuthorID,
		Upvoters:   []uint64{},
		Downvoters: []uint64{},
	}
	if err := c.messages.InsertRecord(ctx, record); err != nil {
		c.logger.Warn("Failed to record published answer",
			zap.Uint64("guild_id", guildID),
			zap.Uint64("answer_id", answerID),
			zap.Error(err))
	}

	if err := c.gateway.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
		c.logger.Warn("Failed to delete original reply",
			zap.Uint64("guild_id", guildID),
			zap.Uint64("message_id", msg.ID),
			zap.Error(err))
	}

	c.logger.Info("Converted reply to answer",
		zap.Uint64("guild_id", guildID),
		zap.Uint64("message_id", msg.ID),
		zap.Uint64("answer_id", answerID))

	return answerID, nil
}

// AcceptAnswer will mark one published answer inside a question thread as the
// accepted answer, authorized by the question's author rather than the
// answer's poster, with exactly one accepted answer per thread. The behavior
// is not implemented yet.
func (c *ConversionStateMachine) AcceptAnswer(ctx context.Context, guildID, actorID uint64, msg Message) error {
	return ErrNotImplemented
}

func (c *ConversionStateMachine) loadConfig(ctx context.Context, guildID uint64) (*types.GuildConfig, error) {
	if guildID == 0 {
		return nil, ErrGuildUnresolved
	}

	return c.guilds.GetGuild(ctx, guildID)
}
