package mcp

import (
	"github.com/rgould/proofdesk/internal/domain/document"
)

type CreateProjectParams struct {
	ID    string `json:"id" jsonschema:"unique slug used as the storage key"`
	Title string `json:"title,omitempty" jsonschema:"project display title"`
}

type GetProjectParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type SaveProjectParams struct {
	Project document.Project `json:"project" jsonschema:"the entire desired next state of the document"`
	Etag    string           `json:"etag" jsonschema:"etag observed when the document was read"`
}

type ListProjectsParams struct{}

type ExportLatexParams struct {
	ProjectID string `json:"project_id" jsonschema:"project id"`
	Preamble  string `json:"preamble,omitempty" jsonschema:"extra LaTeX preamble appended to the root document"`
}

type DraftProofParams struct {
	ProjectID string `json:"project_id" jsonschema:"project id"`
	LemmaID   string `json:"lemma_id,omitempty" jsonschema:"target lemma id; omit to let the drafter choose"`
}

type ChatParams struct {
	Prompt   string             `json:"prompt" jsonschema:"user message"`
	Provider string             `json:"provider,omitempty" jsonschema:"LLM provider override"`
	Model    string             `json:"model,omitempty" jsonschema:"model override"`
	History  []document.Message `json:"history,omitempty" jsonschema:"prior conversation turns"`
}

type GetSettingsParams struct{}

type UpdateSettingsParams struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

type ProjectResult struct {
	Project document.Project `json:"project"`
	Etag    string           `json:"etag"`
}

type SaveProjectResult struct {
	Etag string `json:"etag"`
}

type ListProjectsResult struct {
	Projects []document.Summary `json:"projects"`
}

type ExportLatexResult struct {
	Filename      string   `json:"filename"`
	Files         []string `json:"files"`
	ArchiveBase64 string   `json:"archive_base64"`
}

type DraftProofResult struct {
	Markdown string   `json:"markdown"`
	Warnings []string `json:"warnings"`
}

type ChatResult struct {
	Message string `json:"message"`
}

// SettingsResult echoes stored settings with the API key redacted.
type SettingsResult struct {
	Settings map[string]string `json:"settings"`
}
