package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
	intentx "github.com/tanpawarit/a2a-support-desk/agent/intent"
)

const (
	NodeDirectLookup       = "direct_lookup"
	NodeDispatchSpecialist = "dispatch_specialist"
	NodeFallbackReply      = "fallback_reply"
)

// PathNodes lists every node Route can pick.
func PathNodes() map[string]bool {
	return map[string]bool{
		NodeDirectLookup:       true,
		NodeDispatchSpecialist: true,
		NodeFallbackReply:      true,
	}
}

// ClassifyIntent picks the case and records the routing decision before any
// delegated step runs.
func ClassifyIntent(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilState
	}

	in.Classification = intentx.Classify(in.Query)
	in.Trace.Append(contractx.AgentTypeRouter, routeAction(in.Classification.Case))
	return in, nil
}

// Route is the branch condition after classification.
func Route(_ context.Context, in *GraphState) (string, error) {
	if in == nil {
		return "", ErrNilState
	}
	switch in.Classification.Case {
	case intentx.CaseCustomerLookup:
		return NodeDirectLookup, nil
	case intentx.CaseFallback:
		return NodeFallbackReply, nil
	case intentx.CaseAccountHelp,
		intentx.CaseBillingCancel,
		intentx.CaseTicketReport,
		intentx.CaseUpgrade,
		intentx.CaseRefundEscalation,
		intentx.CaseEmailAndHistory:
		return NodeDispatchSpecialist, nil
	default:
		return "", fmt.Errorf("%w: unknown intent case %q", contractx.ErrValidation, in.Classification.Case)
	}
}

func routeAction(c intentx.Case) string {
	switch c {
	case intentx.CaseCustomerLookup:
		return fmt.Sprintf("Detected simple query → %s.%s", contractx.AgentTypeData, contractx.ToolGetCustomer)
	case intentx.CaseAccountHelp:
		return "Scenario 1 detected → delegating to SupportAgent"
	case intentx.CaseBillingCancel:
		return "Scenario 2 detected → SupportAgent handles negotiation flow"
	case intentx.CaseTicketReport:
		return "Scenario 3 detected → multi-step flow"
	case intentx.CaseUpgrade:
		return "Coordinated upgrade scenario"
	case intentx.CaseRefundEscalation:
		return "Escalation detected → high-priority refund"
	case intentx.CaseEmailAndHistory:
		return "Multi-intent flow detected"
	default:
		return "No recognized pattern → fallback reply"
	}
}
