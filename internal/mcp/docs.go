package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `proofdesk stores structured math proof projects as versioned documents.

Core concepts:
- Project: notation, definitions, facts, lemmas, conjectures, ideas, pitfalls and chat threads, stored as one JSON document per project.
- Etag: a hash of the exact stored bytes, returned by create_project/get_project. Every save_project must send back the etag it read; a stale etag fails with PRECONDITION_FAILED.
- Saves are whole-document: send the entire desired next state, never a partial patch.

Rules of engagement:
1) Orient: list_projects, then get_project for the one you want.
2) Edit: modify the returned document locally and call save_project with the etag from the read.
3) On PRECONDITION_FAILED: reload with get_project, reapply your edits on the fresh document, save again. Never retry with the old etag; that would discard someone else's change.
4) Export: export_latex returns a zip of compilable LaTeX sources.
5) Assist: draft_proof asks the configured model for a proof sketch; chat holds a free-form conversation. Configure credentials once with update_settings.

Item titles: a blank title is displayed as "<Kind> <n>" by position. Do not write such labels into titles yourself; they are recomputed on reorder.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "proofdesk://docs/concurrency",
		Name:        "docs_concurrency",
		Title:       "Etags and conflict handling",
		Description: "How optimistic concurrency works and what to do on PRECONDITION_FAILED.",
		Content: `# Etags and conflict handling

Every read returns an etag: a SHA-256 of the exact bytes on disk. A save
succeeds only when its etag still matches the stored bytes, so at most one
writer wins per observed version.

When a save fails with PRECONDITION_FAILED:

1. Call get_project to load the current document and a fresh etag.
2. Reapply your edits on top of the fresh document.
3. Call save_project with the fresh etag.

Do not resend the old payload with the new etag without looking at the
fresh document first: the conflicting writer changed something, and a blind
retry overwrites it.
`,
	},
	{
		URI:         "proofdesk://docs/document",
		Name:        "docs_document",
		Title:       "Document shape",
		Description: "The canonical project document and how loose input is repaired.",
		Content: `# Document shape

A project document carries notation, definitions, facts, lemmas,
conjectures, ideas, pitfalls, attempts, attachments and chat threads, all
as ordered lists. Order is significant: exports number items by position.

Documents are normalized on every read: missing collections become empty
lists, lemma proofs default to empty strings, chat messages without string
content are dropped, and a legacy flat chatHistory is lifted into a single
"Thread #1". API keys never appear in documents; they live in the settings
store.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		resource := doc
		server.AddResource(&sdkmcp.Resource{
			URI:         resource.URI,
			Name:        resource.Name,
			Title:       resource.Title,
			Description: resource.Description,
			MIMEType:    "text/markdown",
		}, func(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      resource.URI,
					MIMEType: "text/markdown",
					Text:     resource.Content,
				}},
			}, nil
		})
	}
}
