package qa_test

import (
	"testing"

	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFlagNotImplemented(t *testing.T) {
	t.Parallel()

	workflow := qa.NewFlagWorkflow(newFakeGuildStore(), zap.NewNop())

	err := workflow.Flag(t.Context(), testGuildID, 200, posterID, qa.FlagSpam)
	assert.ErrorIs(t, err, qa.ErrNotImplemented)
}
