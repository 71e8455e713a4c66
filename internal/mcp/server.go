package mcp

import (
	"context"
	"log/slog"

	"github.com/rgould/proofdesk/internal/domain/assist"
	"github.com/rgould/proofdesk/internal/domain/document"
	"github.com/rgould/proofdesk/internal/export/latex"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, id, title string) (*document.Project, string, error)
	Get(ctx context.Context, id string) (*document.Project, string, error)
	Save(ctx context.Context, doc *document.Project, etag string) (string, error)
	List(ctx context.Context) ([]document.Summary, error)
	Export(ctx context.Context, id string, opts latex.Options) (string, []byte, error)
}

// AssistService defines collaborator operations needed by MCP.
type AssistService interface {
	DraftProof(ctx context.Context, projectID, lemmaID string) (*assist.Draft, error)
	Chat(ctx context.Context, req assist.ChatRequest) (string, error)
}

// SettingsService defines user configuration operations needed by MCP.
type SettingsService interface {
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Assist   AssistService
	Settings SettingsService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "proofdesk",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	handlers := &Handlers{
		projects: cfg.Services.Projects,
		assist:   cfg.Services.Assist,
		settings: cfg.Services.Settings,
		logger:   cfg.Logger,
	}
	registerTools(server, handlers)

	return server
}
