package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rgould/proofdesk/internal/domain/project"
	"github.com/rgould/proofdesk/internal/store"
)

// Setting keys in the user configuration store. Credentials live there,
// outside project documents.
const (
	SettingProvider = "provider"
	SettingModel    = "model"
	SettingAPIKey   = "api_key"
)

// Service mediates between the document store and the LLM collaborators.
type Service struct {
	docs     store.DocumentStore
	settings store.SettingsStore
	drafter  Drafter
	chatter  Chatter
	logger   *slog.Logger
}

// NewService creates a new assist service.
func NewService(docs store.DocumentStore, settings store.SettingsStore, drafter Drafter, chatter Chatter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		docs:     docs,
		settings: settings,
		drafter:  drafter,
		chatter:  chatter,
		logger:   logger,
	}
}

// DraftProof asks the drafting collaborator for a proof draft. The target
// project must exist; the collaborator itself is opaque to the core.
func (s *Service) DraftProof(ctx context.Context, projectID, lemmaID string) (*Draft, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("%w: missing project id", project.ErrInvalidInput)
	}

	doc, _, err := s.docs.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	req := DraftRequest{Project: doc, LemmaID: lemmaID}
	req.Provider, req.Model, req.APIKey = s.credentials(ctx, "", "", "")

	draft, err := s.drafter.DraftProof(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("drafting proof: %w", err)
	}
	if draft.Warnings == nil {
		draft.Warnings = []string{}
	}
	s.logger.Info("proof drafted", "project", projectID, "lemma", lemmaID, "warnings", len(draft.Warnings))
	return draft, nil
}

// Chat forwards a prompt to the chat collaborator. The core's validation
// ends at requiring a non-empty prompt; provider, model and API key fall
// back to the user configuration store when the request omits them.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", ErrEmptyPrompt
	}

	req.Provider, req.Model, req.APIKey = s.credentials(ctx, req.Provider, req.Model, req.APIKey)

	reply, err := s.chatter.Chat(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return reply, nil
}

// credentials fills blanks from stored user defaults. Lookup failures are
// ignored; a collaborator that needs a key will say so.
func (s *Service) credentials(ctx context.Context, provider, model, apiKey string) (string, string, string) {
	if s.settings == nil {
		return provider, model, apiKey
	}
	if provider == "" {
		provider, _ = s.settings.Get(ctx, SettingProvider)
	}
	if model == "" {
		model, _ = s.settings.Get(ctx, SettingModel)
	}
	if apiKey == "" {
		apiKey, _ = s.settings.Get(ctx, SettingAPIKey)
	}
	return provider, model, apiKey
}
