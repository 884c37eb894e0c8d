// Package mcp exposes window animation commands as MCP tools over stdio.
// Tool calls forward to the running daemon through the IPC socket.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/glide/internal/ipc"
)

const (
	ServerName    = "glide"
	ServerVersion = "0.1.0"
)

// daemonClient is the IPC surface the tools need. The concrete
// implementation is ipc.Client; tests substitute a fake.
type daemonClient interface {
	ApplyLayout(layoutName string, animated *bool, durationMs *int) error
	MoveWindow(window string, x, y, width, height, durationMs *int) error
	FadeWindow(window string, to float64, from *float64, durationMs *int) error
	ListLayouts() (*ipc.LayoutsData, error)
	GetStatus() (*ipc.StatusData, error)
}

// Server is the MCP server bridging tools to the glide daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	client    daemonClient
}

// NewServer creates an MCP server talking to the daemon over IPC.
func NewServer() *Server {
	s := &Server{client: ipc.NewClient()}

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

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_layout",
		Description: "Transition all registered windows to a named layout. Windows glide to their new positions unless animated is false.",
	}, s.handleApplyLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Animate a registered window toward a target position and/or size. Omitted fields keep the window's current geometry. Calling again while a previous move is in flight supersedes it.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "fade_window",
		Description: "Animate a registered window's opacity toward a target between 0 and 1. Requires a compositing window manager.",
	}, s.handleFadeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_layouts",
		Description: "List configured layouts along with the default and currently active layout.",
	}, s.handleListLayouts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report daemon status: active layout, registered window count, and whether animations are running.",
	}, s.handleGetStatus)
}

func (s *Server) handleApplyLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args ApplyLayoutInput) (*mcpsdk.CallToolResult, ApplyLayoutOutput, error) {
	if args.Layout == "" {
		return nil, ApplyLayoutOutput{}, fmt.Errorf("layout is required")
	}

	if err := s.client.ApplyLayout(args.Layout, args.Animated, args.DurationMs); err != nil {
		return nil, ApplyLayoutOutput{}, err
	}

	return nil, ApplyLayoutOutput{Layout: args.Layout, Applied: true}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, MoveWindowOutput, error) {
	if args.Window == "" {
		return nil, MoveWindowOutput{}, fmt.Errorf("window is required")
	}
	if args.X == nil && args.Y == nil && args.Width == nil && args.Height == nil {
		return nil, MoveWindowOutput{}, fmt.Errorf("at least one of x, y, width, height is required")
	}

	if err := s.client.MoveWindow(args.Window, args.X, args.Y, args.Width, args.Height, args.DurationMs); err != nil {
		return nil, MoveWindowOutput{}, err
	}

	return nil, MoveWindowOutput{Window: args.Window, Started: true}, nil
}

func (s *Server) handleFadeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FadeWindowInput) (*mcpsdk.CallToolResult, FadeWindowOutput, error) {
	if args.Window == "" {
		return nil, FadeWindowOutput{}, fmt.Errorf("window is required")
	}
	if args.To < 0 || args.To > 1 {
		return nil, FadeWindowOutput{}, fmt.Errorf("to must be between 0 and 1, got %v", args.To)
	}

	if err := s.client.FadeWindow(args.Window, args.To, args.From, args.DurationMs); err != nil {
		return nil, FadeWindowOutput{}, err
	}

	return nil, FadeWindowOutput{Window: args.Window, To: args.To, Started: true}, nil
}

func (s *Server) handleListLayouts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListLayoutsInput) (*mcpsdk.CallToolResult, ListLayoutsOutput, error) {
	data, err := s.client.ListLayouts()
	if err != nil {
		return nil, ListLayoutsOutput{}, err
	}

	return nil, ListLayoutsOutput{
		Layouts:       data.Layouts,
		DefaultLayout: data.DefaultLayout,
		ActiveLayout:  data.ActiveLayout,
	}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}

	return nil, GetStatusOutput{
		DaemonRunning: status.DaemonRunning,
		ActiveLayout:  status.ActiveLayout,
		WindowCount:   status.WindowCount,
		Animating:     status.Animating,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}
