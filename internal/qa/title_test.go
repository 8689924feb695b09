package qa_test

import (
	"testing"

	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/stretchr/testify/assert"
)

func TestQuestionTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "cuts at first question mark",
			content: "How do I sort a slice? I tried everything.",
			want:    "How do I sort a slice",
		},
		{
			name:    "question mark before period wins",
			content: "Is this right? It works. Mostly.",
			want:    "Is this right",
		},
		{
			name:    "leading question mark falls back to period",
			content: "?? not sure. help please",
			want:    "?? not sure",
		},
		{
			name:    "leading question mark without period",
			content: "?only a question mark",
			want:    "",
		},
		{
			name:    "no question mark cuts nothing",
			content: "This message. Has periods. No question mark",
			want:    "",
		},
		{
			name:    "no punctuation at all",
			content: "just some words",
			want:    "",
		},
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
		{
			name:    "leading question mark then immediate period",
			content: "?. odd message",
			want:    "?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, qa.QuestionTitle(tt.content))
		})
	}
}
