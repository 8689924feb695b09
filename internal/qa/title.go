package qa

import "strings"

// QuestionTitle derives a thread title from the question's content.
//
// The cut position is the index of the first "?", falling back to the index
// of the first "." only when "?" is the very first character. A cut position
// of -1 or 0 yields an empty title, so content without either character gets
// no title at all. Users rely on this truncation, do not change it.
func QuestionTitle(content string) string {
	cut := strings.Index(content, "?")
	if cut == 0 {
		cut = strings.Index(content, ".")
	}

	if cut <= 0 {
		return ""
	}

	return content[:cut]
}
