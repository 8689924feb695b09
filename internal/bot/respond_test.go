package bot

import (
	"errors"
	"testing"

	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/stretchr/testify/assert"
)

func TestRenderError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"guild unresolved", qa.ErrGuildUnresolved, "Failed to fetch guildId from interaction."},
		{"config missing", qa.ErrConfigMissing, "No guild data exists for this guild."},
		{"malformed action", qa.ErrMalformedAction, "Invalid interactionData received."},
		{"not implemented", qa.ErrNotImplemented, "Not yet implemented."},
		{"unknown failure", errors.New("boom"), "The action failed, please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, renderError(tt.err))
		})
	}
}
