package llm

import (
	"context"
	"fmt"

	"github.com/rgould/proofdesk/internal/domain/assist"
)

// Stub is a deterministic collaborator for tests and offline use. It
// never performs network calls.
type Stub struct{}

// NewStub creates a stub collaborator.
func NewStub() *Stub {
	return &Stub{}
}

// Chat echoes the prompt back in a canned reply.
func (s *Stub) Chat(ctx context.Context, req assist.ChatRequest) (string, error) {
	return fmt.Sprintf("(offline) I received your message: %s", req.Prompt), nil
}

// DraftProof produces a canned Markdown sketch referencing the target.
func (s *Stub) DraftProof(ctx context.Context, req assist.DraftRequest) (*assist.Draft, error) {
	target := req.LemmaID
	if target == "" {
		target = "the first open lemma"
	}
	markdown := fmt.Sprintf("## Proof sketch\n\nNo language model is configured; this is a placeholder draft for %s in project %q.\n", target, req.Project.Title)
	return &assist.Draft{Markdown: markdown, Warnings: []string{"offline stub draft"}}, nil
}
