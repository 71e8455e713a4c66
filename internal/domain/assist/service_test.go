package assist_test

import (
	"context"
	"testing"
	"time"

	"github.com/rgould/proofdesk/internal/domain/assist"
	"github.com/rgould/proofdesk/internal/domain/document"
	"github.com/rgould/proofdesk/internal/domain/project"
	"github.com/rgould/proofdesk/internal/llm"
	"github.com/rgould/proofdesk/internal/store"
	"github.com/rgould/proofdesk/internal/store/mocks"
	"github.com/stretchr/testify/require"
)

func TestDraftProof_RequiresExistingProject(t *testing.T) {
	ctx := context.Background()
	docs := &mocks.DocumentStore{}
	docs.On("Get", ctx, "ghost").Return(nil, "", store.ErrNotFound)

	svc := assist.NewService(docs, nil, llm.NewStub(), llm.NewStub(), nil)
	_, err := svc.DraftProof(ctx, "ghost", "")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestDraftProof_ReturnsDraft(t *testing.T) {
	ctx := context.Background()
	docs := &mocks.DocumentStore{}
	doc := document.New("p1", "Primes", time.Now())
	doc.Lemmas = append(doc.Lemmas, document.Lemma{ID: "l1", StatementTex: "x > 0"})
	docs.On("Get", ctx, "p1").Return(doc, "etag", nil)

	svc := assist.NewService(docs, nil, llm.NewStub(), llm.NewStub(), nil)
	draft, err := svc.DraftProof(ctx, "p1", "l1")
	require.NoError(t, err)
	require.NotEmpty(t, draft.Markdown)
	require.NotNil(t, draft.Warnings)
}

func TestChat_EmptyPromptRejected(t *testing.T) {
	svc := assist.NewService(&mocks.DocumentStore{}, nil, llm.NewStub(), llm.NewStub(), nil)
	_, err := svc.Chat(context.Background(), assist.ChatRequest{Prompt: "   "})
	require.ErrorIs(t, err, assist.ErrEmptyPrompt)
}

func TestChat_DefaultsFromSettings(t *testing.T) {
	ctx := context.Background()
	settings := &mocks.SettingsStore{}
	settings.On("Get", ctx, assist.SettingProvider).Return("openai", nil)
	settings.On("Get", ctx, assist.SettingModel).Return("gpt-4o-mini", nil)
	settings.On("Get", ctx, assist.SettingAPIKey).Return("sk-test", nil)

	stub := llm.NewStub()
	svc := assist.NewService(&mocks.DocumentStore{}, settings, stub, stub, nil)

	reply, err := svc.Chat(ctx, assist.ChatRequest{Prompt: "hello"})
	require.NoError(t, err)
	require.NotEmpty(t, reply)
	settings.AssertExpectations(t)
}
