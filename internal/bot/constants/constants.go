package constants

// Context menu command names. These are the contract surface users see.
const (
	ConvertToAnswerCommandName   = "Convert to Answer"
	ConvertToQuestionCommandName = "Convert to Question"
	AcceptAnswerCommandName      = "Accept Answer"
	FlagCommandName              = "Flag"
)

// Slash command names.
const (
	UpdateCommandName = "update"
	ViewCommandName   = "view"
	SetCommandName    = "set"
)

// Option names.
const (
	ReportChannelOptionName = "reportchannel"
)

// Vote button custom IDs attached to published answers.
const (
	UpvoteButtonID   = "upvote"
	DownvoteButtonID = "downvote"
)

// Answer embed layout.
const (
	AnswerEmbedTitle = "Answer"
	// Zero-width space, the field needs a non-empty name.
	AnswerFieldName = "​"
)
