package contract

import "context"

// Backend is the data store behind the tools. Each call is atomic on its own.
type Backend interface {
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	ListCustomers(ctx context.Context, filter CustomerFilter) ([]Customer, error)
	UpdateCustomer(ctx context.Context, id int64, update CustomerUpdate) (Customer, error)
	CreateTicket(ctx context.Context, customerID int64, issue string, priority Priority) (Ticket, error)
	CustomerHistory(ctx context.Context, customerID int64) ([]Ticket, error)
}

// ToolCaller never returns an error: transport and business failures both
// come back as a Payload with Success=false.
type ToolCaller interface {
	CallTool(ctx context.Context, name ToolName, args map[string]any) Payload
}

type CustomerData interface {
	GetCustomer(ctx context.Context, id int64) CustomerResult
	ListCustomers(ctx context.Context, status CustomerStatus, limit int) CustomerListResult
	UpdateCustomer(ctx context.Context, id int64, data map[string]any) CustomerResult
	CreateTicket(ctx context.Context, customerID int64, issue string, priority Priority) TicketResult
	GetCustomerHistory(ctx context.Context, customerID int64) TicketListResult
	ActiveCustomersWithOpenTickets(ctx context.Context) OpenTicketsResult
}

type SupportSpecialist interface {
	AccountHelp(ctx context.Context, customerID int64, trace *Trace) string
	UpgradeGuidance(ctx context.Context, customerID int64, trace *Trace) string
	BillingAndCancel(ctx context.Context, trace *Trace) string
	EscalateRefund(ctx context.Context, customerID int64, trace *Trace) string
	TicketReport(ctx context.Context, trace *Trace) string
	UpdateEmailAndHistory(ctx context.Context, customerID int64, email string, trace *Trace) string
}

type Registry interface {
	Data() CustomerData
	Support() SupportSpecialist
}
