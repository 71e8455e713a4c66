package document

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind names a content item collection for labeling purposes.
type Kind string

const (
	KindNotation   Kind = "Notation"
	KindDefinition Kind = "Definition"
	KindFact       Kind = "Fact"
	KindLemma      Kind = "Lemma"
	KindConjecture Kind = "Conjecture"
	KindIdea       Kind = "Idea"
	KindPitfall    Kind = "Pitfall"
)

var autoLabelPattern = regexp.MustCompile(`^([A-Za-z]+)\s+(\d+)$`)

// IsAutoLabel reports whether title is a synthesized positional label for
// the given kind, e.g. "Lemma 3" for KindLemma. Such titles are cleared at
// normalization time so reordering never bakes stale numbers into content.
func IsAutoLabel(kind Kind, title string) bool {
	m := autoLabelPattern.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return false
	}
	return strings.EqualFold(m[1], string(kind))
}

// DisplayTitle returns the title to present for an item at the given
// zero-based position, synthesizing "<Kind> <n>" when the stored title is
// blank. This is a presentation convenience, never persisted.
func DisplayTitle(kind Kind, index int, title string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	return fmt.Sprintf("%s %d", kind, index+1)
}
