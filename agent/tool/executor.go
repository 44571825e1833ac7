package tool

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

// Outcome is any typed tool result; all of them embed contract.Result.
type Outcome interface {
	Failed() bool
}

// Executor runs one tool against the backend and always returns a payload,
// never an error: validation, lookup and storage faults become Success=false.
type Executor func(ctx context.Context, name contractx.ToolName, args map[string]any) Outcome

func NewExecutor(backend contractx.Backend) Executor {
	fallback := DefaultExecutor()
	return func(ctx context.Context, name contractx.ToolName, args map[string]any) (out Outcome) {
		defer func() {
			if r := recover(); r != nil {
				out = contractx.Failuref("%s: panic: %v", contractx.ErrBackend, r)
			}
		}()

		switch name {
		case contractx.ToolGetCustomer:
			return getCustomer(ctx, backend, args)
		case contractx.ToolListCustomers:
			return listCustomers(ctx, backend, args)
		case contractx.ToolUpdateCustomer:
			return updateCustomer(ctx, backend, args)
		case contractx.ToolCreateTicket:
			return createTicket(ctx, backend, args)
		case contractx.ToolGetCustomerHistory:
			return customerHistory(ctx, backend, args)
		default:
			return fallback(ctx, name, args)
		}
	}
}

func DefaultExecutor() Executor {
	return func(_ context.Context, name contractx.ToolName, _ map[string]any) Outcome {
		return contractx.Failuref("tool=%s is unavailable", name)
	}
}

func getCustomer(ctx context.Context, backend contractx.Backend, args map[string]any) Outcome {
	in, err := BindGetCustomer(args)
	if err != nil {
		return failure(err)
	}
	c, err := backend.GetCustomer(ctx, in.CustomerID)
	if err != nil {
		return failure(err)
	}
	return contractx.CustomerResult{
		Result:   contractx.Result{Success: true},
		Customer: &c,
	}
}

func listCustomers(ctx context.Context, backend contractx.Backend, args map[string]any) Outcome {
	in, err := BindListCustomers(args)
	if err != nil {
		return failure(err)
	}
	customers, err := backend.ListCustomers(ctx, contractx.CustomerFilter{Status: in.Status, Limit: in.Limit})
	if err != nil {
		return failure(err)
	}
	if customers == nil {
		customers = []contractx.Customer{}
	}
	return contractx.CustomerListResult{
		Result:    contractx.Result{Success: true},
		Count:     len(customers),
		Customers: customers,
	}
}

func updateCustomer(ctx context.Context, backend contractx.Backend, args map[string]any) Outcome {
	in, err := BindUpdateCustomer(args)
	if err != nil {
		return failure(err)
	}
	c, err := backend.UpdateCustomer(ctx, in.CustomerID, in.Update)
	if err != nil {
		return failure(err)
	}
	return contractx.CustomerResult{
		Result:   contractx.Result{Success: true},
		Message:  fmt.Sprintf("customer %d updated successfully", in.CustomerID),
		Customer: &c,
	}
}

func createTicket(ctx context.Context, backend contractx.Backend, args map[string]any) Outcome {
	in, err := BindCreateTicket(args)
	if err != nil {
		return failure(err)
	}
	t, err := backend.CreateTicket(ctx, in.CustomerID, in.Issue, in.Priority)
	if err != nil {
		return failure(err)
	}
	return contractx.TicketResult{
		Result: contractx.Result{Success: true},
		Ticket: &t,
	}
}

func customerHistory(ctx context.Context, backend contractx.Backend, args map[string]any) Outcome {
	in, err := BindCustomerHistory(args)
	if err != nil {
		return failure(err)
	}
	tickets, err := backend.CustomerHistory(ctx, in.CustomerID)
	if err != nil {
		return failure(err)
	}
	if tickets == nil {
		tickets = []contractx.Ticket{}
	}
	return contractx.TicketListResult{
		Result:  contractx.Result{Success: true},
		Count:   len(tickets),
		Tickets: tickets,
	}
}

func failure(err error) contractx.Result {
	switch {
	case errors.Is(err, contractx.ErrValidation),
		errors.Is(err, contractx.ErrNotFound),
		errors.Is(err, contractx.ErrBackend):
		return contractx.Failure(err.Error())
	default:
		return contractx.Failuref("%s: %v", contractx.ErrBackend, err)
	}
}
