// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/rusq/discord-mcp/internal/imagedl"
)

const (
	serverName    = "discord-mcp-server"
	serverVersion = "0.1.0"

	endpointPath = "/mcp"
	healthPath   = "/healthz"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// ErrNotReady is returned to the client when a tool is called before the
// Discord client is ready.
var ErrNotReady = errors.New("Discord client not ready")

// Downloader downloads channel images.
type Downloader interface {
	Download(ctx context.Context, req imagedl.Request) (*imagedl.Result, error)
}

// Readiness reports whether the platform client is ready to serve requests.
type Readiness interface {
	Ready() bool
}

// Server wraps an MCP server and the downloader.
type Server struct {
	mcp    *mcpsrv.MCPServer
	dl     Downloader
	ready  Readiness
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.  Nil logger is ignored.
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithReadiness sets the readiness handle, checked before each tool call.
// Without it, the server is always considered ready.
func WithReadiness(r Readiness) Option {
	return func(s *Server) {
		s.ready = r
	}
}

// New creates a new MCP server backed by the given Downloader.  The server
// does not start listening until one of the Serve* methods is called.
func New(dl Downloader, opts ...Option) *Server {
	if dl == nil {
		panic("programming error:  downloader is nil")
	}
	s := &Server{
		dl:     dl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions),
		mcpsrv.WithToolCapabilities(false),
		mcpsrv.WithToolHandlerMiddleware(s.logCall),
		mcpsrv.WithToolHandlerMiddleware(s.requireReady),
		mcpsrv.WithRecovery(),
	)
	for _, t := range s.tools() {
		s.mcp.AddTool(t.Tool, t.Handler)
	}
	return s
}

const instructions = `You are connected to a Discord image downloader MCP server.

The download_channel_images tool scans the latest messages of a Discord
channel and saves the image attachments (jpg, jpeg, png, gif, webp, svg)
to a directory on the server host, along with a metadata.json file that
describes the run.  The bot must be a member of the guild and have View
Channel and Read Message History permissions.`

// isReady returns true if the platform client is ready.
func (s *Server) isReady() bool {
	return s.ready == nil || s.ready.Ready()
}

// requireReady is the tool middleware that rejects calls while the Discord
// client is not ready.
func (s *Server) requireReady(next mcpsrv.ToolHandlerFunc) mcpsrv.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		if !s.isReady() {
			return nil, ErrNotReady
		}
		return next(ctx, req)
	}
}

// logCall is the tool middleware that assigns a run ID to each call and logs
// its outcome.
func (s *Server) logCall(next mcpsrv.ToolHandlerFunc) mcpsrv.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		lg := s.logger.With("tool", req.Params.Name, "run_id", uuid.NewString())
		start := time.Now()
		lg.InfoContext(ctx, "mcp: tool call")
		res, err := next(withLogger(ctx, lg), req)
		if err != nil {
			lg.ErrorContext(ctx, "mcp: tool call failed", "error", err, "took", time.Since(start))
		} else {
			lg.InfoContext(ctx, "mcp: tool call complete", "took", time.Since(start))
		}
		return res, err
	}
}

type loggerKey struct{}

func withLogger(ctx context.Context, lg *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, lg)
}

// loggerFrom returns the per-call logger from the context, or the server
// logger.
func (s *Server) loggerFrom(ctx context.Context) *slog.Logger {
	if lg, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return lg
	}
	return s.logger
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.serveStdio(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serveStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, r, w); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// Handler returns the HTTP handler for the Streamable HTTP transport.  The
// MCP endpoint is served on /mcp, and the readiness probe on /healthz.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	stream := mcpsrv.NewStreamableHTTPServer(s.mcp, mcpsrv.WithEndpointPath(endpointPath))
	r.Handle(endpointPath, stream)
	r.Get(healthPath, s.handleHealth)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.isReady() {
		http.Error(w, ErrNotReady.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled.  addr should be a host:port string such as "127.0.0.1:8483".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr, "endpoint", endpointPath)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(sctx); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolDownloadChannelImages(),
	}
}

// resultJSON is a helper that serialises v to JSON and returns a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named integer argument from a tool call request.  The
// MCP protocol serialises numbers as float64, so we convert accordingly.
// It returns (0, false, nil) if the argument is absent, and an error if it
// is not a whole number.
func intArg(req mcplib.CallToolRequest, name string) (int, bool, error) {
	args := req.GetArguments()
	if args == nil {
		return 0, false, nil
	}
	v, ok := args[name]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, true, fmt.Errorf("%s must be an integer", name)
		}
		return int(n), true, nil
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	}
	return 0, true, fmt.Errorf("%s must be a number, got %T", name, v)
}

// boolArg extracts a named bool argument from a tool call request.
func boolArg(req mcplib.CallToolRequest, name string, defaultVal bool) bool {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}
