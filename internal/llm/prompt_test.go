package llm

import (
	"testing"
	"time"

	"github.com/rgould/proofdesk/internal/domain/document"
	"github.com/stretchr/testify/require"
)

func draftProject() *document.Project {
	p := document.New("p1", "Prime Gaps", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	p.Notation = []document.Notation{{ID: "n1", Name: "pi(x)", Description: "prime counting"}}
	p.Facts = []document.Fact{{ID: "f1", StatementTex: "infinitely many primes"}}
	p.Lemmas = []document.Lemma{{ID: "l1", StatementTex: "x > 0", DependsOn: []string{"f1"}}}
	return p
}

func TestBuildDraftPrompt_TargetedLemma(t *testing.T) {
	prompt, warnings := buildDraftPrompt(draftProject(), "l1")
	require.Empty(t, warnings)
	require.Contains(t, prompt, "Project: Prime Gaps")
	require.Contains(t, prompt, "[f1]")
	require.Contains(t, prompt, "Draft a proof of lemma [l1]: x > 0")
	require.Contains(t, prompt, "It is expected to depend on: f1")
}

func TestBuildDraftPrompt_UnknownLemmaWarns(t *testing.T) {
	prompt, warnings := buildDraftPrompt(draftProject(), "missing")
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "missing")
	require.Contains(t, prompt, "Draft a proof sketch for lemma missing")
}

func TestBuildDraftPrompt_NoTarget(t *testing.T) {
	prompt, warnings := buildDraftPrompt(draftProject(), "")
	require.Empty(t, warnings)
	require.Contains(t, prompt, "most promising open lemma")
}
