package orchestrator

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
	nodex "github.com/tanpawarit/a2a-support-desk/agent/nodes"
	promptx "github.com/tanpawarit/a2a-support-desk/agent/prompt"
)

type Option func(*Orchestrator)

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator routes each query to exactly one path. It keeps nothing
// between queries.
type Orchestrator struct {
	agents  contractx.Registry
	replies promptx.ReplySet
	logger  zerolog.Logger

	graphRunner compose.Runnable[nodex.GraphInput, contractx.RouterResult]
}

func New(agents contractx.Registry, opts ...Option) (*Orchestrator, error) {
	if agents == nil {
		return nil, errors.New("agent registry is required")
	}
	if agents.Data() == nil || agents.Support() == nil {
		return nil, errors.New("agent registry is incomplete")
	}

	o := &Orchestrator{
		agents:  agents,
		replies: promptx.LoadReplySet(),
		logger:  log.Logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	graphRunner, err := o.compileHandleQueryGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

func (o *Orchestrator) HandleQuery(ctx context.Context, query string) (contractx.RouterResult, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{Query: query})
	if err != nil {
		o.logger.Error().Err(err).Str("query", query).Msg("query handling failed")
		return contractx.RouterResult{}, err
	}
	o.logger.Debug().
		Str("query", query).
		Int("trace_len", len(out.Trace)).
		Msg("query handled")
	return out, nil
}
