package assist

import (
	"context"

	"github.com/rgould/proofdesk/internal/domain/document"
)

// Draft is a proof draft produced by a drafting collaborator.
type Draft struct {
	Markdown string   `json:"markdown"`
	Warnings []string `json:"warnings"`
}

// DraftRequest carries the loaded project and resolved credentials to a
// drafting collaborator.
type DraftRequest struct {
	Project  *document.Project
	LemmaID  string
	Provider string
	Model    string
	APIKey   string
}

// ChatRequest carries one chat turn with prior history to a collaborator.
type ChatRequest struct {
	Prompt   string
	History  []document.Message
	Provider string
	Model    string
	APIKey   string
}

// Drafter produces proof drafts. Implementations may call a language
// model or be entirely canned; the core only guarantees the target
// project exists before invoking one.
type Drafter interface {
	DraftProof(ctx context.Context, req DraftRequest) (*Draft, error)
}

// Chatter answers a single chat prompt.
type Chatter interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}
