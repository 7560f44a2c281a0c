package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/internal/logging"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/ports"
	"github.com/aretw0/handik/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const stateURI = "handik://state"

// InputResponse reports whether an input call reached the generators.
type InputResponse struct {
	Kind      string `json:"kind" jsonschema_description:"The input kind that was applied"`
	Forwarded bool   `json:"forwarded" jsonschema_description:"False when the current modes gated the input"`
}

// ModesResponse carries the modes after a change.
type ModesResponse struct {
	Modes domain.Modes `json:"modes" jsonschema_description:"The modes after the change"`
}

// Server exposes a running engine as an MCP server.
type Server struct {
	runner    *runner.Runner
	store     ports.SnapshotStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the snapshot tools.
func WithStore(store ports.SnapshotStore) Option {
	return func(s *Server) { s.store = store }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a new MCP server for r.
func NewServer(r *runner.Runner, opts ...Option) *Server {
	s := &Server{
		runner:    r,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("handik-mcp", handik.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
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
	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the hand targets, modes and motion state published after the last frame."),
		mcp.WithOutputSchema[runner.FrameSnapshot](),
	), mcp.NewStructuredToolHandler(s.handleGetState))

	s.mcpServer.AddTool(mcp.NewTool("set_modes",
		mcp.WithDescription("Change one or more modes. Omitted modes are left unchanged; invalid indices are ignored."),
		mcp.WithBoolean("always_hand_down", mcp.Description("Keep both hands down")),
		mcp.WithNumber("keyboard_and_mouse", mcp.Description("-1 none, 0 touchpad, 1 presentation, 2 pen tablet")),
		mcp.WithNumber("gamepad", mcp.Description("0 gamepad, 1 arcade stick")),
		mcp.WithNumber("word_to_motion_device", mcp.Description("0 none, 1 keyboard word, 2 keyboard number, 3 gamepad, 4 midi")),
		mcp.WithBoolean("hand_down_timeout", mcp.Description("Lower idle hands after a timeout")),
		mcp.WithNumber("y_offset", mcp.Description("Vertical offset applied to every hand target")),
		mcp.WithOutputSchema[ModesResponse](),
	), mcp.NewStructuredToolHandler(s.handleSetModes))

	s.mcpServer.AddTool(mcp.NewTool("send_input",
		mcp.WithDescription("Send one raw input call, e.g. kind=mouse_move with args {\"x\":0.1,\"y\":0.2}."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum(handik.InputKinds...), mcp.Description("Input kind")),
		mcp.WithObject("args", mcp.Description("Arguments of the kind: key, x, y, z, knob, value or note")),
		mcp.WithOutputSchema[InputResponse](),
	), mcp.NewStructuredToolHandler(s.handleSendInput))

	if s.store == nil {
		return
	}

	s.mcpServer.AddTool(mcp.NewTool("save_snapshot",
		mcp.WithDescription("Save the current modes under an avatar profile."),
		mcp.WithString("profile", mcp.Required(), mcp.Description("Avatar profile ID")),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleSaveSnapshot))

	s.mcpServer.AddTool(mcp.NewTool("restore_snapshot",
		mcp.WithDescription("Restore the modes saved under an avatar profile."),
		mcp.WithString("profile", mcp.Required(), mcp.Description("Avatar profile ID")),
		mcp.WithOutputSchema[ModesResponse](),
	), mcp.NewStructuredToolHandler(s.handleRestoreSnapshot))
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (runner.FrameSnapshot, error) {
	return s.runner.Snapshot(), nil
}

func (s *Server) handleSetModes(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ModesResponse, error) {
	patch, err := handik.DecodeModesPatch(args)
	if err != nil {
		return ModesResponse{}, err
	}

	var modes domain.Modes
	if err := s.runner.Submit(ctx, func(e *handik.Engine) {
		modes = e.PatchModes(patch)
	}); err != nil {
		return ModesResponse{}, fmt.Errorf("set modes: %w", err)
	}
	return ModesResponse{Modes: modes}, nil
}

func (s *Server) handleSendInput(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (InputResponse, error) {
	kind, _ := args["kind"].(string)

	var callArgs map[string]any
	switch v := args["args"].(type) {
	case nil:
	case map[string]any:
		callArgs = v
	case string:
		if err := json.Unmarshal([]byte(v), &callArgs); err != nil {
			return InputResponse{}, fmt.Errorf("args: %w", err)
		}
	default:
		return InputResponse{}, fmt.Errorf("args: expected an object, got %T", v)
	}

	cmd, err := handik.DecodeCommand(kind, callArgs)
	if err != nil {
		return InputResponse{}, err
	}

	var (
		forwarded bool
		applyErr  error
	)
	if err := s.runner.Submit(ctx, func(e *handik.Engine) {
		forwarded, applyErr = e.Apply(cmd)
	}); err != nil {
		return InputResponse{}, fmt.Errorf("send input: %w", err)
	}
	if applyErr != nil {
		s.logger.Warn("MCP send_input rejected", "kind", kind, "error", applyErr)
		return InputResponse{}, applyErr
	}
	return InputResponse{Kind: kind, Forwarded: forwarded}, nil
}

func (s *Server) handleSaveSnapshot(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.Snapshot, error) {
	profile, _ := args["profile"].(string)

	var snap domain.Snapshot
	if err := s.runner.Submit(ctx, func(e *handik.Engine) {
		snap = e.Snapshot(profile)
	}); err != nil {
		return domain.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}

func (s *Server) handleRestoreSnapshot(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ModesResponse, error) {
	profile, _ := args["profile"].(string)

	snap, err := s.store.Load(ctx, profile)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return ModesResponse{}, fmt.Errorf("no snapshot for profile %q", profile)
		}
		return ModesResponse{}, fmt.Errorf("restore snapshot: %w", err)
	}

	var modes domain.Modes
	if err := s.runner.Submit(ctx, func(e *handik.Engine) {
		e.RestoreModes(snap)
		modes = e.Modes()
	}); err != nil {
		return ModesResponse{}, fmt.Errorf("restore snapshot: %w", err)
	}
	return ModesResponse{Modes: modes}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(stateURI, "Current Engine State",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.runner.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("failed to encode state: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      stateURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
