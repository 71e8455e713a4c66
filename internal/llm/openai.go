// Package llm provides the language-model collaborators behind the assist
// service: an OpenAI-compatible client and a deterministic stub.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rgould/proofdesk/internal/domain/assist"
	"github.com/rgould/proofdesk/internal/domain/document"
	"github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

const draftSystemPrompt = "You are a careful research mathematician. " +
	"Draft a proof sketch in Markdown for the requested lemma, using only " +
	"the provided notation, facts and lemmas. Flag any gaps explicitly."

const chatSystemPrompt = "You are a collaborator on a mathematics research project."

// OpenAIClient implements assist.Drafter and assist.Chatter against any
// OpenAI-compatible chat completion endpoint.
type OpenAIClient struct {
	baseURL string
	logger  *slog.Logger
}

// NewOpenAIClient creates a client. baseURL may be empty for the OpenAI
// default, or point at a compatible local endpoint.
func NewOpenAIClient(baseURL string, logger *slog.Logger) *OpenAIClient {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OpenAIClient{baseURL: baseURL, logger: logger}
}

// Chat sends the history plus prompt as a chat completion request.
func (c *OpenAIClient) Chat(ctx context.Context, req assist.ChatRequest) (string, error) {
	client, model, err := c.client(req.APIKey, req.Model)
	if err != nil {
		return "", err
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
	}
	for _, msg := range req.History {
		role := openai.ChatMessageRoleAssistant
		if msg.Role == document.RoleUser {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	c.logger.Debug("chat completion request", "model", model, "history", len(req.History))
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// DraftProof builds a drafting prompt from the project content and asks
// the model for a Markdown proof sketch.
func (c *OpenAIClient) DraftProof(ctx context.Context, req assist.DraftRequest) (*assist.Draft, error) {
	client, model, err := c.client(req.APIKey, req.Model)
	if err != nil {
		return nil, err
	}

	prompt, warnings := buildDraftPrompt(req.Project, req.LemmaID)

	c.logger.Debug("draft request", "model", model, "project", req.Project.ID, "lemma", req.LemmaID)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: draftSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("draft completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("draft completion returned no choices")
	}
	return &assist.Draft{
		Markdown: resp.Choices[0].Message.Content,
		Warnings: warnings,
	}, nil
}

func (c *OpenAIClient) client(apiKey, model string) (*openai.Client, string, error) {
	if apiKey == "" {
		return nil, "", assist.ErrMissingAPIKey
	}
	cfg := openai.DefaultConfig(apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	if model == "" {
		model = defaultModel
	}
	return openai.NewClientWithConfig(cfg), model, nil
}

// buildDraftPrompt flattens the project into a textual context block. It
// also reports warnings for references it could not resolve.
func buildDraftPrompt(p *document.Project, lemmaID string) (string, []string) {
	var b strings.Builder
	warnings := []string{}

	fmt.Fprintf(&b, "Project: %s\n", p.Title)
	if p.Abstract != "" {
		fmt.Fprintf(&b, "Abstract: %s\n", p.Abstract)
	}

	if len(p.Notation) > 0 {
		b.WriteString("\nNotation:\n")
		for i, n := range p.Notation {
			fmt.Fprintf(&b, "- %s: %s\n", document.DisplayTitle(document.KindNotation, i, n.Name), n.Description)
		}
	}
	if len(p.Facts) > 0 {
		b.WriteString("\nKnown facts:\n")
		for i, f := range p.Facts {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", f.ID, document.DisplayTitle(document.KindFact, i, f.Title), f.StatementTex)
		}
	}
	if len(p.Lemmas) > 0 {
		b.WriteString("\nLemmas:\n")
		for i, l := range p.Lemmas {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", l.ID, document.DisplayTitle(document.KindLemma, i, l.Title), l.StatementTex)
		}
	}

	if lemmaID == "" {
		b.WriteString("\nDraft a proof sketch for the most promising open lemma.\n")
		return b.String(), warnings
	}

	target := findLemma(p, lemmaID)
	if target == nil {
		warnings = append(warnings, fmt.Sprintf("lemma %s not found in project; drafting without a target statement", lemmaID))
		fmt.Fprintf(&b, "\nDraft a proof sketch for lemma %s.\n", lemmaID)
		return b.String(), warnings
	}

	fmt.Fprintf(&b, "\nDraft a proof of lemma [%s]: %s\n", target.ID, target.StatementTex)
	if len(target.DependsOn) > 0 {
		fmt.Fprintf(&b, "It is expected to depend on: %s\n", strings.Join(target.DependsOn, ", "))
	}
	return b.String(), warnings
}

func findLemma(p *document.Project, id string) *document.Lemma {
	for i := range p.Lemmas {
		if p.Lemmas[i].ID == id {
			return &p.Lemmas[i]
		}
	}
	return nil
}
