package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/voltcraft/troubleshoot"
	"github.com/voltcraft/troubleshoot/internal/logging"
	"github.com/voltcraft/troubleshoot/internal/presentation/graph"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/ports"
	"github.com/voltcraft/troubleshoot/pkg/session"
)

// SessionResponse mirrors the HTTP session payload so every front end returns the same shape.
type SessionResponse struct {
	State   *domain.State     `json:"state" jsonschema_description:"The session state"`
	View    domain.View       `json:"view" jsonschema_description:"What to show the user next"`
	Changes *domain.StateDiff `json:"changes,omitempty" jsonschema_description:"What the last operation changed"`
}

// CategoriesResponse lists the equipment categories.
type CategoriesResponse struct {
	Categories []domain.CategorySummary `json:"categories"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type startArgs struct {
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
}

type selectArgs struct {
	SessionID string `json:"session_id"`
	Option    *int   `json:"option"`
}

// Server exposes the wizard as MCP tools. Sessions are held by a session.Manager.
type Server struct {
	wizard    ports.Wizard
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(wizard ports.Wizard, sessions *session.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		wizard:    wizard,
		sessions:  sessions,
		logger:    logger,
		mcpServer: server.NewMCPServer("troubleshoot-mcp", troubleshoot.Version,
			server.WithToolCapabilities(true),
			server.WithResourceCapabilities(true, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is canceled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the equipment categories that can be diagnosed."),
		mcp.WithOutputSchema[CategoriesResponse](),
	), mcp.NewStructuredToolHandler(s.handleListCategories))

	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Create a session (or reuse session_id) and, if category is given, show its first question."),
		mcp.WithString("session_id", mcp.Description("Existing session to reuse (optional)")),
		mcp.WithString("category", mcp.Description("Equipment category key, e.g. generator (optional)")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("select_option",
		mcp.WithDescription("Answer the current question with a zero-based option index."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithNumber("option", mcp.Required(), mcp.Description("Zero-based option index")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleSelect))

	s.mcpServer.AddTool(mcp.NewTool("go_back",
		mcp.WithDescription("Step back once: hide the diagnosis, return to the previous question, or leave the category."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleBack))

	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Return the session to the category selection screen."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleReset))

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Show the current screen of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleGet))
}

func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest, args struct{}) (CategoriesResponse, error) {
	return CategoriesResponse{Categories: s.wizard.Categories()}, nil
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args startArgs) (SessionResponse, error) {
	id := args.SessionID
	if id == "" {
		id = session.NewID()
	}
	state, err := s.sessions.LoadOrCreate(ctx, id)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("failed to open session: %w", err)
	}
	if args.Category == "" {
		return s.respond(state, domain.Diff(nil, state))
	}
	return s.transition(ctx, id, func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.wizard.Start(ctx, state, args.Category)
	})
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest, args selectArgs) (SessionResponse, error) {
	if args.Option == nil {
		return SessionResponse{}, errors.New("option is required")
	}
	return s.transition(ctx, args.SessionID, func(ctx context.Context, state *domain.State) (*domain.State, error) {
		return s.wizard.Select(ctx, state, *args.Option)
	})
}

func (s *Server) handleBack(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (SessionResponse, error) {
	return s.transition(ctx, args.SessionID, s.wizard.Back)
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (SessionResponse, error) {
	return s.transition(ctx, args.SessionID, s.wizard.Reset)
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (SessionResponse, error) {
	state, err := s.sessions.Load(ctx, args.SessionID)
	if err != nil {
		return SessionResponse{}, err
	}
	return s.respond(state, nil)
}

func (s *Server) transition(ctx context.Context, id string, op func(context.Context, *domain.State) (*domain.State, error)) (SessionResponse, error) {
	if id == "" {
		return SessionResponse{}, errors.New("session_id is required")
	}
	before, after, err := s.sessions.Update(ctx, id, func(state *domain.State) (*domain.State, error) {
		return op(ctx, state)
	})
	if err != nil {
		s.logger.Debug("MCP tool rejected", "session_id", id, "err", err)
		return SessionResponse{}, err
	}
	return s.respond(after, domain.Diff(before, after))
}

func (s *Server) respond(state *domain.State, diff *domain.StateDiff) (SessionResponse, error) {
	view, err := s.wizard.Render(state)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("render failed: %w", err)
	}
	return SessionResponse{State: state, View: view, Changes: diff}, nil
}

// registerResources exposes every tree as JSON and as a Mermaid diagram.
func (s *Server) registerResources() {
	for _, cat := range s.wizard.Categories() {
		key := cat.Key

		treeURI := "troubleshoot://trees/" + key
		s.mcpServer.AddResource(mcp.NewResource(treeURI, cat.Title+" decision tree",
			mcp.WithMIMEType("application/json"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			tree, err := s.wizard.Tree(key)
			if err != nil {
				return nil, err
			}
			data, err := json.Marshal(tree)
			if err != nil {
				return nil, fmt.Errorf("failed to encode tree: %w", err)
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: treeURI, MIMEType: "application/json", Text: string(data)},
			}, nil
		})

		graphURI := "troubleshoot://graphs/" + key
		s.mcpServer.AddResource(mcp.NewResource(graphURI, cat.Title+" diagram",
			mcp.WithMIMEType("text/plain"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			tree, err := s.wizard.Tree(key)
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: graphURI, MIMEType: "text/plain", Text: graph.GenerateMermaid(tree, nil)},
			}, nil
		})
	}
}
