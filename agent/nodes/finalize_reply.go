package orchestratornode

import (
	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

func FallbackReply(in *GraphState, reply string) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilState
	}
	in.Answer = reply
	return in, nil
}

func FinalizeReply(in *GraphState) (contractx.RouterResult, error) {
	if in == nil {
		return contractx.RouterResult{}, ErrNilState
	}
	return contractx.RouterResult{
		Query:       in.Query,
		FinalAnswer: in.Answer,
		Trace:       in.Trace.Entries(),
	}, nil
}
