package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
	intentx "github.com/tanpawarit/a2a-support-desk/agent/intent"
)

func DispatchSpecialist(ctx context.Context, in *GraphState, support contractx.SupportSpecialist) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilState
	}

	cls := in.Classification
	switch cls.Case {
	case intentx.CaseAccountHelp:
		in.Answer = support.AccountHelp(ctx, cls.CustomerID, in.Trace)
	case intentx.CaseBillingCancel:
		in.Answer = support.BillingAndCancel(ctx, in.Trace)
	case intentx.CaseTicketReport:
		in.Answer = support.TicketReport(ctx, in.Trace)
	case intentx.CaseUpgrade:
		in.Answer = support.UpgradeGuidance(ctx, cls.CustomerID, in.Trace)
	case intentx.CaseRefundEscalation:
		in.Answer = support.EscalateRefund(ctx, cls.ResolvedID(), in.Trace)
	case intentx.CaseEmailAndHistory:
		in.Answer = support.UpdateEmailAndHistory(ctx, cls.ResolvedID(), cls.ResolvedEmail(), in.Trace)
	default:
		return nil, fmt.Errorf("%w: case %q has no specialist workflow", contractx.ErrValidation, cls.Case)
	}
	return in, nil
}
