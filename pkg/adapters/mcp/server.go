// Package mcp exposes a navigation session as Model Context Protocol tools,
// so an agent can plan and drive routes itself.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/logging"
	mermaid "github.com/aretw0/wayfinder/internal/presentation/graph"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/graph"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GotoResult is the structured output of the goto tool.
type GotoResult struct {
	Reached  bool     `json:"reached" jsonschema_description:"Whether the destination was confirmed ready"`
	Position string   `json:"position" jsonschema_description:"Last screen confirmed ready"`
	Hops     []string `json:"hops" jsonschema_description:"Screens reached, in order"`
	Error    string   `json:"error,omitempty" jsonschema_description:"Why the traversal stopped"`
}

// MapEdge is a transition as seen by agents.
type MapEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// MapResult is the structured output of the get_map tool.
type MapResult struct {
	Screens []string  `json:"screens"`
	Edges   []MapEdge `json:"edges"`
	Mermaid string    `json:"mermaid"`
}

// Server wraps a navigator and exposes it as an MCP Server.
type Server struct {
	nav       ports.Navigator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(nav ports.Navigator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		nav:       nav,
		logger:    logger,
		mcpServer: server.NewMCPServer("wayfinder-mcp", strings.TrimSpace(wayfinder.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
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
	// TOOL: shortest_path
	s.mcpServer.AddTool(mcp.NewTool("shortest_path",
		mcp.WithDescription("Compute the fewest-hops route between two screens. The origin is excluded, the destination included. An empty route means no path (or origin equals destination)."),
		mcp.WithString("to", mcp.Required(), mcp.Description("Destination screen ID")),
		mcp.WithString("from", mcp.Description("Origin screen ID (defaults to the current position)")),
	), s.handleShortestPath)

	// TOOL: get_map
	s.mcpServer.AddTool(mcp.NewTool("get_map",
		mcp.WithDescription("Get every screen and transition of the application map."),
		mcp.WithOutputSchema[MapResult](),
	), mcp.NewStructuredToolHandler(s.handleGetMap))

	// TOOL: goto
	s.mcpServer.AddTool(mcp.NewTool("goto",
		mcp.WithDescription("Drive the application from the current position to a screen, confirming each hop."),
		mcp.WithString("to", mcp.Required(), mcp.Description("Destination screen ID")),
		mcp.WithOutputSchema[GotoResult](),
	), mcp.NewStructuredToolHandler(s.handleGoto))

	// TOOL: position
	s.mcpServer.AddTool(mcp.NewTool("position",
		mcp.WithDescription("Get the last screen confirmed ready."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		position := s.nav.Position()
		if position == nil {
			return mcp.NewToolResultError(domain.ErrUnknownPosition.Error()), nil
		}
		return mcp.NewToolResultText(position.ID()), nil
	})
}

func (s *Server) handleShortestPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g := s.nav.Graph()

	to, ok := g.Lookup(request.GetString("to", ""))
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown destination %q", request.GetString("to", ""))), nil
	}

	from := s.nav.Position()
	if id := request.GetString("from", ""); id != "" {
		if from, ok = g.Lookup(id); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown origin %q", id)), nil
		}
	}
	if from == nil {
		return mcp.NewToolResultError(domain.ErrUnknownPosition.Error()), nil
	}

	route, _ := json.Marshal(graph.IDs(g.ShortestPath(from, to)))
	return mcp.NewToolResultText(string(route)), nil
}

func (s *Server) handleGetMap(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MapResult, error) {
	g := s.nav.Graph()
	res := MapResult{
		Screens: graph.IDs(g.Nodes()),
		Edges:   []MapEdge{},
		Mermaid: mermaid.GenerateMermaid(g, "", nil),
	}
	for _, e := range g.Edges() {
		res.Edges = append(res.Edges, MapEdge{From: e.From.ID(), To: e.To.ID(), Label: e.Label})
	}
	return res, nil
}

func (s *Server) handleGoto(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GotoResult, error) {
	id, _ := args["to"].(string)
	dest, ok := s.nav.Graph().Lookup(id)
	if !ok {
		return GotoResult{}, fmt.Errorf("unknown destination %q", id)
	}

	hops, err := s.nav.NavigateTo(ctx, dest)
	res := GotoResult{
		Reached:  err == nil,
		Position: domain.IDOf(s.nav.Position()),
		Hops:     graph.IDs(hops),
	}
	if err != nil {
		s.logger.Warn("MCP goto failed", "to", id, "err", err)
		res.Error = err.Error()
	}
	return res, nil
}

func (s *Server) registerResources() {
	// EXPOSE: wayfinder://records
	s.mcpServer.AddResource(mcp.NewResource("wayfinder://records", "Last-known screen states",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		records, err := s.nav.Records(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list records: %w", err)
		}
		jsonBytes, _ := json.Marshal(records)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "wayfinder://records",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
