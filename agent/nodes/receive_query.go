package orchestratornode

import (
	"errors"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
	intentx "github.com/tanpawarit/a2a-support-desk/agent/intent"
)

var ErrNilState = errors.New("graph state is nil")

type GraphInput struct {
	Query string
}

// GraphState is owned by a single query for the length of one graph run.
type GraphState struct {
	Query          string
	Classification intentx.Classification
	Trace          *contractx.Trace
	Answer         string
}

// ReceiveQuery starts the trace. The query is kept verbatim; an empty query
// is valid and ends on the fallback path.
func ReceiveQuery(in GraphInput) (*GraphState, error) {
	trace := contractx.NewTrace()
	trace.Appendf(contractx.AgentTypeRouter, "Received user query → \"%s\"", in.Query)

	return &GraphState{
		Query: in.Query,
		Trace: trace,
	}, nil
}
