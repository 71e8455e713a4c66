package store

import (
	"context"

	"github.com/rgould/proofdesk/internal/domain/document"
)

// DocumentStore manages versioned per-project persistence. Every read and
// write is addressed through an etag: a hash of the exact serialized bytes
// on disk, used as an optimistic-concurrency token.
type DocumentStore interface {
	// Create writes a fresh default document for id. Fails with
	// ErrAlreadyExists when a document for id is present.
	Create(ctx context.Context, id, title string) (*document.Project, string, error)

	// Get loads, normalizes and returns the document along with the etag
	// of the unnormalized on-disk bytes. Fails with ErrNotFound.
	Get(ctx context.Context, id string) (*document.Project, string, error)

	// Save replaces the stored document if etag still matches the stored
	// bytes, returning the new etag. Fails with ErrNotFound or ErrStaleEtag.
	Save(ctx context.Context, doc *document.Project, etag string) (string, error)

	// List returns summaries of all readable documents, most recently
	// updated first. Corrupt entries are skipped.
	List(ctx context.Context) ([]document.Summary, error)
}

// SettingsStore is the small key-value persistence for user-level defaults
// (provider, model, API key). It is deliberately separate from project
// documents so secrets never round-trip through the document store.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}
