package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/ali/internal/runtime"
	"github.com/aretw0/ali/pkg/domain"
)

const verbsURI = "ali://verbs"

// ResolveResponse is the structured result of the resolve_command tool.
type ResolveResponse struct {
	Command     string            `json:"command,omitempty" jsonschema_description:"The resolved shell command"`
	Verb        string            `json:"verb,omitempty" jsonschema_description:"Canonical verb"`
	Plugin      string            `json:"plugin,omitempty" jsonschema_description:"Rule set that handled the verb"`
	Fields      domain.FieldState `json:"fields,omitempty" jsonschema_description:"Fields extracted from the command"`
	Outcome     string            `json:"outcome" jsonschema_description:"resolved, or the kind of failure"`
	Error       string            `json:"error,omitempty" jsonschema_description:"Error message when resolution failed"`
	Suggestions []string          `json:"suggestions,omitempty" jsonschema_description:"Close verbs for an unknown verb"`
}

// VerbInfo describes one registered verb.
type VerbInfo struct {
	Verb   string `json:"verb"`
	Plugin string `json:"plugin"`
}

// VerbsResponse is the structured result of the list_verbs tool.
type VerbsResponse struct {
	Verbs []VerbInfo `json:"verbs" jsonschema_description:"Registered verbs with their owning rule set"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	Trace(ctx context.Context, raw string) (*domain.Resolution, error)
	Catalog() *runtime.Catalog
}

// Server wraps the interpreter and exposes it as an MCP Server.
// Commands are only resolved, never executed.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("ali-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	resolveTool := mcp.NewTool("resolve_command",
		mcp.WithDescription("Resolve a verb-led command (e.g. \"CREATE PANE LEFT\") into the shell command it maps to. The command is not executed."),
		mcp.WithString("command", mcp.Required(), mcp.Description("The command to interpret")),
		mcp.WithOutputSchema[ResolveResponse](),
	)
	s.mcpServer.AddTool(resolveTool, mcp.NewStructuredToolHandler(s.handleResolve))

	verbsTool := mcp.NewTool("list_verbs",
		mcp.WithDescription("List every verb the loaded rule sets understand."),
		mcp.WithOutputSchema[VerbsResponse](),
	)
	s.mcpServer.AddTool(verbsTool, mcp.NewStructuredToolHandler(s.handleListVerbs))
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ResolveResponse, error) {
	command, _ := args["command"].(string)
	return s.Resolve(ctx, command), nil
}

func (s *Server) handleListVerbs(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (VerbsResponse, error) {
	return s.Verbs(), nil
}

// Resolve runs command through the pipeline. Failures are reported in the response.
func (s *Server) Resolve(ctx context.Context, command string) ResolveResponse {
	res, err := s.engine.Trace(ctx, command)
	resp := ResolveResponse{
		Command: res.Command,
		Verb:    res.Verb,
		Plugin:  res.RuleSet,
		Fields:  res.Fields,
		Outcome: domain.OutcomeOf(err),
	}
	if err != nil {
		resp.Error = domain.FormatResult(err)
		var unknown *domain.UnknownVerbError
		if errors.As(err, &unknown) {
			resp.Suggestions = unknown.Suggestions
		}
	}
	return resp
}

// Verbs lists the registered verbs, sorted.
func (s *Server) Verbs() VerbsResponse {
	catalog := s.engine.Catalog()
	verbs := catalog.Verbs()
	out := VerbsResponse{Verbs: make([]VerbInfo, 0, len(verbs))}
	for _, v := range verbs {
		out.Verbs = append(out.Verbs, VerbInfo{Verb: v, Plugin: catalog.Owner(v)})
	}
	return out
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(verbsURI, "Registered verbs",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.Verbs())
		if err != nil {
			return nil, fmt.Errorf("failed to encode verbs: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      verbsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
