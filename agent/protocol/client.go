package protocol

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
	toolx "github.com/tanpawarit/a2a-support-desk/agent/tool"
)

const (
	clientName    = "support-tool-client"
	clientVersion = "1.0.0"
)

type ClientConfig struct {
	Host     string        `default:"127.0.0.1"`
	Port     int           `default:"5000"`
	BasePath string        `split_words:"true" default:"/mcp"`
	Timeout  time.Duration `default:"10s"`
}

func (c ClientConfig) URL() string {
	path := c.BasePath
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "http://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) + path
}

type ClientOption func(*Client)

func WithClientLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client invokes tools on a protocol server. Every failure, including an
// unreachable server, comes back as a failed payload rather than an error.
type Client struct {
	mu          sync.Mutex
	mcp         *client.Client
	initialized bool
	serverInfo  mcp.Implementation
	logger      zerolog.Logger
}

// NewClient targets a server over streamable HTTP. No connection is made
// until the first call.
func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	c, err := client.NewStreamableHttpClient(cfg.URL(), transport.WithHTTPTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("%w: create client for %s: %v", contractx.ErrTransport, cfg.URL(), err)
	}
	return newClient(c, opts...), nil
}

// NewInProcessClient talks to srv without a network hop.
func NewInProcessClient(srv *Server, opts ...ClientOption) (*Client, error) {
	if srv == nil {
		return nil, errors.New("protocol server is required")
	}
	c, err := client.NewInProcessClient(srv.MCP())
	if err != nil {
		return nil, fmt.Errorf("%w: create in-process client: %v", contractx.ErrTransport, err)
	}
	return newClient(c, opts...), nil
}

func newClient(c *client.Client, opts ...ClientOption) *Client {
	out := &Client{mcp: c, logger: log.Logger}
	for _, opt := range opts {
		if opt != nil {
			opt(out)
		}
	}
	return out
}

func (c *Client) connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}

	if err := c.mcp.Start(ctx); err != nil {
		return fmt.Errorf("%w: start: %v", contractx.ErrTransport, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}
	res, err := c.mcp.Initialize(ctx, initReq)
	if err != nil {
		return fmt.Errorf("%w: initialize: %v", contractx.ErrTransport, err)
	}

	c.serverInfo = res.ServerInfo
	c.initialized = true
	c.logger.Debug().
		Str("server", res.ServerInfo.Name).
		Str("version", res.ServerInfo.Version).
		Msg("tool client initialized")
	return nil
}

// ServerInfo returns the name and version the server reported on initialize.
func (c *Client) ServerInfo(ctx context.Context) (mcp.Implementation, error) {
	if err := c.connect(ctx); err != nil {
		return mcp.Implementation{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverInfo, nil
}

// CallTool sends one tools/call and returns the decoded payload.
func (c *Client) CallTool(ctx context.Context, name contractx.ToolName, args map[string]any) contractx.Payload {
	tr := contractx.ToolRequest{
		ToolName:      name,
		Arguments:     args,
		CorrelationID: uuid.NewString(),
	}
	logger := c.logger.With().
		Str("tool", string(tr.ToolName)).
		Str("correlation_id", tr.CorrelationID).
		Logger()

	if err := c.connect(ctx); err != nil {
		logger.Error().Err(err).Msg("tool call failed")
		return contractx.FailurePayload(err.Error())
	}

	res, err := c.mcp.CallTool(ctx, callRequest(tr))
	if err != nil {
		logger.Error().Err(err).Msg("tool call failed")
		return contractx.FailurePayload(fmt.Sprintf("%s: %v", contractx.ErrTransport, err))
	}

	if echoed := metaCorrelationID(res.Meta); echoed != tr.CorrelationID {
		logger.Warn().Str("echoed_correlation_id", echoed).Msg("correlation id mismatch")
	}

	text, ok := firstText(res.Content)
	if !ok {
		logger.Error().Msg("tool result carried no text content")
		return contractx.FailurePayload("tool returned no content")
	}
	if res.IsError {
		logger.Warn().Str("error", text).Msg("tool reported an error")
		return contractx.FailurePayload(text)
	}

	payload, err := contractx.ParsePayload(text)
	if err != nil {
		logger.Error().Err(err).Msg("tool payload is not JSON")
		return contractx.FailurePayload(err.Error())
	}
	logger.Debug().Bool("success", payload.Success).Msg("tool call completed")
	return payload
}

// ListTools returns the server's tool catalogue.
func (c *Client) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	res, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: list tools: %v", contractx.ErrTransport, err)
	}
	return res.Tools, nil
}

// Describe returns the remote catalogue as eino tool descriptors.
func (c *Client) Describe(ctx context.Context) ([]*schema.ToolInfo, error) {
	tools, err := c.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	return toolx.ToolInfos(tools), nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initialized = false
	return c.mcp.Close()
}

func callRequest(tr contractx.ToolRequest) mcp.CallToolRequest {
	args := tr.Arguments
	if args == nil {
		args = map[string]any{}
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = string(tr.ToolName)
	req.Params.Arguments = args
	req.Params.Meta = &mcp.Meta{
		AdditionalFields: map[string]any{MetaCorrelationID: tr.CorrelationID},
	}
	return req
}

func firstText(content []mcp.Content) (string, bool) {
	for _, item := range content {
		switch tc := item.(type) {
		case mcp.TextContent:
			return tc.Text, true
		case *mcp.TextContent:
			return tc.Text, true
		}
	}
	return "", false
}
