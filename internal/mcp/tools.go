package mcp

import (
	"context"
	"encoding/base64"
	"log/slog"
	"sort"

	"github.com/rgould/proofdesk/internal/domain/assist"
	"github.com/rgould/proofdesk/internal/export/latex"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handlers holds the domain services behind the tool surface. Each tool
// is a thin adapter: decode params, call the service, map errors.
type Handlers struct {
	projects ProjectService
	assist   AssistService
	settings SettingsService
	logger   *slog.Logger
}

func registerTools(server *sdkmcp.Server, h *Handlers) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new proof project with the given id and title",
	}, h.createProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project document and the etag required to save changes",
	}, h.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_project",
		Description: "Replace a project document; fails with PRECONDITION_FAILED when the etag is stale",
	}, h.saveProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects, most recently updated first",
	}, h.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_latex",
		Description: "Export a project as a zip archive of compilable LaTeX sources",
	}, h.exportLatex)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "draft_proof",
		Description: "Ask the drafting collaborator for a Markdown proof sketch of a lemma",
	}, h.draftProof)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "chat",
		Description: "Send a chat message to the configured language model",
	}, h.chat)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_settings",
		Description: "Read user-level defaults (provider, model); the API key is redacted",
	}, h.getSettings)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_settings",
		Description: "Update user-level defaults for provider, model or API key",
	}, h.updateSettings)
}

func (h *Handlers) createProject(ctx context.Context, req *sdkmcp.CallToolRequest, args CreateProjectParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
	doc, etag, err := h.projects.Create(ctx, args.ID, args.Title)
	if err != nil {
		return nil, ProjectResult{}, mapError(err)
	}
	return nil, ProjectResult{Project: *doc, Etag: etag}, nil
}

func (h *Handlers) getProject(ctx context.Context, req *sdkmcp.CallToolRequest, args GetProjectParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
	doc, etag, err := h.projects.Get(ctx, args.ID)
	if err != nil {
		return nil, ProjectResult{}, mapError(err)
	}
	return nil, ProjectResult{Project: *doc, Etag: etag}, nil
}

func (h *Handlers) saveProject(ctx context.Context, req *sdkmcp.CallToolRequest, args SaveProjectParams) (*sdkmcp.CallToolResult, SaveProjectResult, error) {
	doc := args.Project
	etag, err := h.projects.Save(ctx, &doc, args.Etag)
	if err != nil {
		return nil, SaveProjectResult{}, mapError(err)
	}
	return nil, SaveProjectResult{Etag: etag}, nil
}

func (h *Handlers) listProjects(ctx context.Context, req *sdkmcp.CallToolRequest, args ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
	summaries, err := h.projects.List(ctx)
	if err != nil {
		return nil, ListProjectsResult{}, mapError(err)
	}
	return nil, ListProjectsResult{Projects: summaries}, nil
}

func (h *Handlers) exportLatex(ctx context.Context, req *sdkmcp.CallToolRequest, args ExportLatexParams) (*sdkmcp.CallToolResult, ExportLatexResult, error) {
	filename, data, err := h.projects.Export(ctx, args.ProjectID, latex.Options{Preamble: args.Preamble})
	if err != nil {
		return nil, ExportLatexResult{}, mapError(err)
	}
	files := []string{
		latex.RootFile,
		latex.NotationFile,
		latex.FactsFile,
		latex.LemmasFile,
		latex.ConjecturesFile,
	}
	sort.Strings(files)
	return nil, ExportLatexResult{
		Filename:      filename,
		Files:         files,
		ArchiveBase64: base64.StdEncoding.EncodeToString(data),
	}, nil
}

func (h *Handlers) draftProof(ctx context.Context, req *sdkmcp.CallToolRequest, args DraftProofParams) (*sdkmcp.CallToolResult, DraftProofResult, error) {
	draft, err := h.assist.DraftProof(ctx, args.ProjectID, args.LemmaID)
	if err != nil {
		return nil, DraftProofResult{}, mapError(err)
	}
	return nil, DraftProofResult{Markdown: draft.Markdown, Warnings: draft.Warnings}, nil
}

func (h *Handlers) chat(ctx context.Context, req *sdkmcp.CallToolRequest, args ChatParams) (*sdkmcp.CallToolResult, ChatResult, error) {
	reply, err := h.assist.Chat(ctx, assist.ChatRequest{
		Prompt:   args.Prompt,
		Provider: args.Provider,
		Model:    args.Model,
		History:  args.History,
	})
	if err != nil {
		return nil, ChatResult{}, mapError(err)
	}
	return nil, ChatResult{Message: reply}, nil
}

func (h *Handlers) getSettings(ctx context.Context, req *sdkmcp.CallToolRequest, args GetSettingsParams) (*sdkmcp.CallToolResult, SettingsResult, error) {
	all, err := h.settings.All(ctx)
	if err != nil {
		return nil, SettingsResult{}, mapError(err)
	}
	return nil, SettingsResult{Settings: redact(all)}, nil
}

func (h *Handlers) updateSettings(ctx context.Context, req *sdkmcp.CallToolRequest, args UpdateSettingsParams) (*sdkmcp.CallToolResult, SettingsResult, error) {
	updates := map[string]string{}
	if args.Provider != "" {
		updates[assist.SettingProvider] = args.Provider
	}
	if args.Model != "" {
		updates[assist.SettingModel] = args.Model
	}
	if args.APIKey != "" {
		updates[assist.SettingAPIKey] = args.APIKey
	}
	for key, value := range updates {
		if err := h.settings.Set(ctx, key, value); err != nil {
			return nil, SettingsResult{}, mapError(err)
		}
	}

	all, err := h.settings.All(ctx)
	if err != nil {
		return nil, SettingsResult{}, mapError(err)
	}
	return nil, SettingsResult{Settings: redact(all)}, nil
}

// redact masks secret values before they leave the server.
func redact(settings map[string]string) map[string]string {
	out := map[string]string{}
	for key, value := range settings {
		if key == assist.SettingAPIKey && value != "" {
			out[key] = "(set)"
			continue
		}
		out[key] = value
	}
	return out
}
