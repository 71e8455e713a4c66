package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rgould/proofdesk/internal/domain/document"
	"github.com/rgould/proofdesk/internal/export/latex"
	"github.com/rgould/proofdesk/internal/store"
)

// Service handles project document operations.
type Service struct {
	store  store.DocumentStore
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(docs store.DocumentStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: docs, logger: logger}
}

// Create creates a new project with a default document.
func (s *Service) Create(ctx context.Context, id, title string) (*document.Project, string, error) {
	if strings.TrimSpace(id) == "" {
		return nil, "", fmt.Errorf("%w: missing project id", ErrInvalidInput)
	}
	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}

	doc, etag, err := s.store.Create(ctx, id, title)
	if err != nil {
		return nil, "", mapStoreError(err, "creating project")
	}
	return doc, etag, nil
}

// Get fetches a project document and its etag by id.
func (s *Service) Get(ctx context.Context, id string) (*document.Project, string, error) {
	if strings.TrimSpace(id) == "" {
		return nil, "", fmt.Errorf("%w: missing project id", ErrInvalidInput)
	}

	doc, etag, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, "", mapStoreError(err, "getting project")
	}
	return doc, etag, nil
}

// Save replaces a project document. The caller sends the entire desired
// next state together with the etag it observed on read.
func (s *Service) Save(ctx context.Context, doc *document.Project, etag string) (string, error) {
	if doc == nil || strings.TrimSpace(doc.ID) == "" {
		return "", fmt.Errorf("%w: missing project id", ErrInvalidInput)
	}
	if strings.TrimSpace(etag) == "" {
		return "", fmt.Errorf("%w: missing etag", ErrInvalidInput)
	}

	newEtag, err := s.store.Save(ctx, doc, etag)
	if err != nil {
		return "", mapStoreError(err, "saving project")
	}
	return newEtag, nil
}

// List returns project summaries, most recently updated first.
func (s *Service) List(ctx context.Context) ([]document.Summary, error) {
	summaries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return summaries, nil
}

// Export renders the project into a LaTeX bundle archive. Read-only.
func (s *Service) Export(ctx context.Context, id string, opts latex.Options) (string, []byte, error) {
	doc, _, err := s.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}

	filename, data, err := latex.Bundle(doc, opts)
	if err != nil {
		return "", nil, fmt.Errorf("exporting project %s: %w", id, err)
	}

	s.logger.Info("project exported", "id", id, "archive", filename, "bytes", len(data))
	return filename, data, nil
}

func mapStoreError(err error, action string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrProjectNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrProjectExists
	case errors.Is(err, store.ErrStaleEtag):
		return ErrStaleEtag
	case errors.Is(err, store.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
