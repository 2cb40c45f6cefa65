package mcp

import (
	"context"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winshift/internal/config"
	"github.com/1broseidon/winshift/internal/platform"
)

const (
	ServerName    = "winshift"
	ServerVersion = "0.1.0"
)

// Server is the MCP server exposing window placement tools.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	backend   platform.Backend

	// mu serializes tool calls; the backend is not safe for concurrent use.
	mu sync.Mutex
}

// NewServer creates an MCP server that places windows through backend. The
// server owns backend and disconnects it on Close.
func NewServer(cfg *config.Config, backend platform.Backend) *Server {
	s := &Server{
		config:  cfg,
		backend: backend,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases server resources.
func (s *Server) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend.Disconnect()
	s.backend = nil
	return nil
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the outputs of the X display with their full frame and the usable area left after panels and docks. Disconnected outputs are listed only when include_disconnected is set.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_placements",
		Description: "List the named placements accepted by place_window, including placements defined in the config file.",
	}, s.handleListPlacements)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows managed by the window manager with their ids, titles and the display each is on. Pass an id as the window argument of place_window or move_window.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "place_window",
		Description: "Move and resize a window to a named placement (or x,y,w,h fractions) of the usable area of the display it is on. Defaults to the active window.",
	}, s.handlePlaceWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window to the neighbouring display in a direction, keeping its position and size relative to the display. Defaults to the active window.",
	}, s.handleMoveWindow)
}
