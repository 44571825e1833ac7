package customerdata

import (
	"context"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

// activeScanLimit bounds the customer listing behind the open-ticket report.
const activeScanLimit = 100

// Agent is the data-access specialist. It only issues tool calls and decodes
// their payloads; it makes no decisions of its own.
type Agent struct {
	tools contractx.ToolCaller
}

func New(tools contractx.ToolCaller) *Agent {
	return &Agent{tools: tools}
}

func (a *Agent) GetCustomer(ctx context.Context, id int64) contractx.CustomerResult {
	var out contractx.CustomerResult
	decode(a.tools.CallTool(ctx, contractx.ToolGetCustomer, map[string]any{
		"customer_id": id,
	}), &out, &out.Result)
	return out
}

func (a *Agent) ListCustomers(ctx context.Context, status contractx.CustomerStatus, limit int) contractx.CustomerListResult {
	args := map[string]any{"limit": limit}
	if status != "" {
		args["status"] = string(status)
	}

	var out contractx.CustomerListResult
	decode(a.tools.CallTool(ctx, contractx.ToolListCustomers, args), &out, &out.Result)
	return out
}

func (a *Agent) UpdateCustomer(ctx context.Context, id int64, data map[string]any) contractx.CustomerResult {
	var out contractx.CustomerResult
	decode(a.tools.CallTool(ctx, contractx.ToolUpdateCustomer, map[string]any{
		"customer_id": id,
		"data":        data,
	}), &out, &out.Result)
	return out
}

func (a *Agent) CreateTicket(ctx context.Context, customerID int64, issue string, priority contractx.Priority) contractx.TicketResult {
	if priority == "" {
		priority = contractx.PriorityMedium
	}

	var out contractx.TicketResult
	decode(a.tools.CallTool(ctx, contractx.ToolCreateTicket, map[string]any{
		"customer_id": customerID,
		"issue":       issue,
		"priority":    string(priority),
	}), &out, &out.Result)
	return out
}

func (a *Agent) GetCustomerHistory(ctx context.Context, customerID int64) contractx.TicketListResult {
	var out contractx.TicketListResult
	decode(a.tools.CallTool(ctx, contractx.ToolGetCustomerHistory, map[string]any{
		"customer_id": customerID,
	}), &out, &out.Result)
	return out
}

// ActiveCustomersWithOpenTickets pairs each active customer with their open
// tickets, keeping listing order. A customer whose history cannot be fetched
// is left out; only a failed listing fails the whole call.
func (a *Agent) ActiveCustomersWithOpenTickets(ctx context.Context) contractx.OpenTicketsResult {
	base := a.ListCustomers(ctx, contractx.CustomerActive, activeScanLimit)
	if base.Failed() {
		return contractx.OpenTicketsResult{Result: base.Result}
	}

	items := make([]contractx.CustomerTickets, 0, len(base.Customers))
	for _, cust := range base.Customers {
		hist := a.GetCustomerHistory(ctx, cust.ID)
		if hist.Failed() {
			continue
		}

		var open []contractx.Ticket
		for _, t := range hist.Tickets {
			if t.Status == contractx.TicketOpen {
				open = append(open, t)
			}
		}
		if len(open) > 0 {
			items = append(items, contractx.CustomerTickets{Customer: cust, OpenTickets: open})
		}
	}

	return contractx.OpenTicketsResult{
		Result: contractx.Result{Success: true},
		Count:  len(items),
		Items:  items,
	}
}

// decode fills out from p. A payload whose body does not fit the expected
// shape becomes a failure so callers only ever check Success.
func decode(p contractx.Payload, out any, envelope *contractx.Result) {
	if p.Failed() {
		*envelope = p.Result
		return
	}
	if err := p.Decode(out); err != nil {
		*envelope = contractx.Failure(err.Error())
	}
}

var _ contractx.CustomerData = (*Agent)(nil)
