package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
	toolx "github.com/tanpawarit/a2a-support-desk/agent/tool"
)

// MetaCorrelationID is the _meta key carrying the caller's correlation id.
// Tool results echo it back under the same key.
const MetaCorrelationID = "correlation_id"

type ServerConfig struct {
	Host            string        `default:"127.0.0.1"`
	Port            int           `default:"5000"`
	BasePath        string        `split_words:"true" default:"/mcp"`
	Name            string        `default:"customer-support-mcp-server"`
	Version         string        `default:"1.0.0"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
}

func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type ServerOption func(*Server)

func WithServerLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// Server exposes the backend as MCP tools. It holds no per-call state; the
// backend is the only shared resource.
type Server struct {
	cfg     ServerConfig
	mcp     *server.MCPServer
	exec    toolx.Executor
	metrics *metrics
	logger  zerolog.Logger
}

func NewServer(backend contractx.Backend, cfg ServerConfig, opts ...ServerOption) (*Server, error) {
	if backend == nil {
		return nil, errors.New("tool backend is required")
	}

	cfg.BasePath = strings.TrimSpace(cfg.BasePath)
	if cfg.BasePath == "" {
		cfg.BasePath = "/mcp"
	}
	if !strings.HasPrefix(cfg.BasePath, "/") {
		cfg.BasePath = "/" + cfg.BasePath
	}
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = "customer-support-mcp-server"
	}
	if strings.TrimSpace(cfg.Version) == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:     cfg,
		exec:    toolx.NewExecutor(backend),
		metrics: newMetrics(),
		logger:  log.Logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.mcp = server.NewMCPServer(
		cfg.Name,
		cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	catalog := toolx.Catalog()
	tools := make([]server.ServerTool, 0, len(catalog))
	for _, t := range catalog {
		name, err := contractx.ParseToolName(t.Name)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", t.Name, err)
		}
		tools = append(tools, server.ServerTool{Tool: t, Handler: s.toolHandler(name)})
	}
	s.mcp.AddTools(tools...)

	return s, nil
}

func (s *Server) Config() ServerConfig {
	return s.cfg
}

func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Handle processes one raw JSON-RPC message (initialize, tools/list or
// tools/call) and returns the single response for it.
func (s *Server) Handle(ctx context.Context, raw json.RawMessage) mcp.JSONRPCMessage {
	return s.mcp.HandleMessage(ctx, raw)
}

func (s *Server) toolHandler(name contractx.ToolName) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		correlationID := correlationIDFrom(req)

		out := s.exec(ctx, name, req.GetArguments())
		body, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", name, err)
		}

		elapsed := time.Since(start)
		s.metrics.observe(name, out.Failed(), elapsed)

		evt := s.logger.Info()
		if out.Failed() {
			evt = s.logger.Warn()
		}
		evt.Str("tool", string(name)).
			Str("correlation_id", correlationID).
			Bool("success", !out.Failed()).
			Dur("elapsed", elapsed).
			Msg("tool call handled")

		res := mcp.NewToolResultText(string(body))
		if correlationID != "" {
			res.Meta = &mcp.Meta{AdditionalFields: map[string]any{MetaCorrelationID: correlationID}}
		}
		return res, nil
	}
}

func correlationIDFrom(req mcp.CallToolRequest) string {
	return metaCorrelationID(req.Params.Meta)
}

func metaCorrelationID(m *mcp.Meta) string {
	if m == nil {
		return ""
	}
	id, _ := m.AdditionalFields[MetaCorrelationID].(string)
	return id
}
