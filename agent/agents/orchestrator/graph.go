package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
	nodex "github.com/tanpawarit/a2a-support-desk/agent/nodes"
)

func (o *Orchestrator) compileHandleQueryGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, contractx.RouterResult], error) {
	graph := compose.NewGraph[nodex.GraphInput, contractx.RouterResult]()

	if err := graph.AddLambdaNode("receive_query",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ReceiveQuery(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node receive_query: %w", err)
	}

	if err := graph.AddLambdaNode("classify_intent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ClassifyIntent(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeDirectLookup,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (contractx.RouterResult, error) {
			st, err := nodex.DirectLookup(ctx, in, o.agents.Data())
			if err != nil {
				return contractx.RouterResult{}, err
			}
			return nodex.FinalizeReply(st)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeDirectLookup, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeDispatchSpecialist,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (contractx.RouterResult, error) {
			st, err := nodex.DispatchSpecialist(ctx, in, o.agents.Support())
			if err != nil {
				return contractx.RouterResult{}, err
			}
			return nodex.FinalizeReply(st)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeDispatchSpecialist, err)
	}

	if err := graph.AddLambdaNode(nodex.NodeFallbackReply,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (contractx.RouterResult, error) {
			st, err := nodex.FallbackReply(in, o.replies.Fallback)
			if err != nil {
				return contractx.RouterResult{}, err
			}
			return nodex.FinalizeReply(st)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodex.NodeFallbackReply, err)
	}

	if err := graph.AddBranch("classify_intent", compose.NewGraphBranch(nodex.Route, nodex.PathNodes())); err != nil {
		return nil, fmt.Errorf("add branch classify_intent: %w", err)
	}

	edges := [][2]string{
		{compose.START, "receive_query"},
		{"receive_query", "classify_intent"},
		{nodex.NodeDirectLookup, compose.END},
		{nodex.NodeDispatchSpecialist, compose.END},
		{nodex.NodeFallbackReply, compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.handle_query"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
