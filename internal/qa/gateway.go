package qa

import "context"

// Message is the slice of a platform message the components inspect.
type Message struct {
	ID        uint64
	ChannelID uint64
	AuthorID  uint64
	Content   string
	// HasThread is set when a thread is already attached to the message.
	HasThread bool
	// HasEmbeds is set when the message carries at least one embed, which
	// marks it as an already published answer.
	HasEmbeds bool
}

// Thread identifies a thread channel and the parent channel it hangs off.
type Thread struct {
	ID       uint64
	ParentID uint64
}

// AnswerPost describes the embed message that replaces a converted reply.
type AnswerPost struct {
	ThreadID   uint64
	AuthorName string
	Content    string
}

// Gateway is the platform surface the Q&A components drive. The Discord
// implementation lives in the bot package; tests substitute fakes.
type Gateway interface {
	// CreateThread opens a thread on the message and returns its ID.
	CreateThread(ctx context.Context, channelID, messageID uint64, name string) (uint64, error)
	// ThreadOf resolves the thread a channel ID refers to. The second return
	// is false when the channel is not a thread.
	ThreadOf(ctx context.Context, channelID uint64) (Thread, bool, error)
	// PostAnswer publishes the answer embed with its vote controls and
	// returns the new message's ID.
	PostAnswer(ctx context.Context, post AnswerPost) (uint64, error)
	// DeleteMessage removes the original reply after conversion.
	DeleteMessage(ctx context.Context, channelID, messageID uint64) error
	// MemberDisplayName resolves a guild member's display name.
	MemberDisplayName(ctx context.Context, guildID, userID uint64) (string, error)
	// UpdateAnswerFooter rewrites the vote tallies on a published answer.
	UpdateAnswerFooter(ctx context.Context, channelID, messageID uint64, upvotes, downvotes int) error
}
