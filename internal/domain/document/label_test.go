package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAutoLabel(t *testing.T) {
	require.True(t, IsAutoLabel(KindLemma, "Lemma 3"))
	require.True(t, IsAutoLabel(KindLemma, "lemma 3"))
	require.True(t, IsAutoLabel(KindLemma, "  Lemma 12  "))
	require.True(t, IsAutoLabel(KindConjecture, "Conjecture 1"))

	require.False(t, IsAutoLabel(KindLemma, "Fact 3"))
	require.False(t, IsAutoLabel(KindLemma, "Lemma three"))
	require.False(t, IsAutoLabel(KindLemma, "Lemma 3a"))
	require.False(t, IsAutoLabel(KindLemma, ""))
	require.False(t, IsAutoLabel(KindLemma, "Zorn's Lemma 1 application"))
}

func TestDisplayTitle(t *testing.T) {
	require.Equal(t, "Key bound", DisplayTitle(KindLemma, 0, "Key bound"))
	require.Equal(t, "Lemma 1", DisplayTitle(KindLemma, 0, ""))
	require.Equal(t, "Fact 4", DisplayTitle(KindFact, 3, "   "))
}
