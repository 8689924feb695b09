package qa

import "errors"

// Validation and infrastructure failures surfaced by the Q&A components.
// Validation errors are rendered as ephemeral replies at the handler boundary;
// none of them are fatal to the process.
var (
	// ErrGuildUnresolved means the action carried no resolvable guild context.
	ErrGuildUnresolved = errors.New("could not resolve guild from action")
	// ErrConfigMissing means no configuration record exists for the guild.
	ErrConfigMissing = errors.New("no configuration exists for this guild")
	// ErrChannelNotEligible means the target channel is not enabled for the
	// reputation workflow.
	ErrChannelNotEligible = errors.New("channel is not a valid reputation channel")
	// ErrNotAuthorized means the acting user is not the target message's poster.
	ErrNotAuthorized = errors.New("acting user is not the message poster")
	// ErrAlreadyConverted means the message already went through the requested
	// conversion.
	ErrAlreadyConverted = errors.New("message is already converted")
	// ErrCapacityExceeded means a channel toggle would push a guild past the
	// valid channel limit.
	ErrCapacityExceeded = errors.New("valid channel limit exceeded")
	// ErrReportChannelUnset means a flag was raised with no report channel
	// configured.
	ErrReportChannelUnset = errors.New("no report channel is set")
	// ErrRecordMissing means no vote record exists for the message.
	ErrRecordMissing = errors.New("no vote record exists for message")
	// ErrMalformedAction means the action payload is missing an expected option.
	ErrMalformedAction = errors.New("action payload is missing expected option")
	// ErrStoreUnavailable means the record store could not be reached.
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrNotImplemented marks contract placeholders that have no behavior yet.
	ErrNotImplemented = errors.New("not yet implemented")
)
