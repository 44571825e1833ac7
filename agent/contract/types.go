package contract

import (
	"fmt"
	"time"
)

type AgentType string

const (
	AgentTypeRouter  AgentType = "RouterAgent"
	AgentTypeSupport AgentType = "SupportAgent"
	AgentTypeData    AgentType = "DataAgent"
)

// ToolName is the closed set of tools exposed by the protocol server.
type ToolName string

const (
	ToolGetCustomer        ToolName = "get_customer"
	ToolListCustomers      ToolName = "list_customers"
	ToolUpdateCustomer     ToolName = "update_customer"
	ToolCreateTicket       ToolName = "create_ticket"
	ToolGetCustomerHistory ToolName = "get_customer_history"
)

var toolNames = []ToolName{
	ToolGetCustomer,
	ToolListCustomers,
	ToolUpdateCustomer,
	ToolCreateTicket,
	ToolGetCustomerHistory,
}

func ToolNames() []ToolName {
	return append([]ToolName(nil), toolNames...)
}

func ParseToolName(name string) (ToolName, error) {
	for _, t := range toolNames {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrToolNotFound, name)
}

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerDisabled CustomerStatus = "disabled"
)

func (s CustomerStatus) Valid() bool {
	return s == CustomerActive || s == CustomerDisabled
}

func ParseCustomerStatus(raw string) (CustomerStatus, error) {
	s := CustomerStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf(`%w: status must be "active" or "disabled"`, ErrValidation)
	}
	return s, nil
}

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", fmt.Errorf(`%w: priority must be one of: "low", "medium", "high"`, ErrValidation)
	}
	return p, nil
}

type Customer struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Status    CustomerStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Ticket struct {
	ID         int64        `json:"id"`
	CustomerID int64        `json:"customer_id"`
	Issue      string       `json:"issue"`
	Status     TicketStatus `json:"status"`
	Priority   Priority     `json:"priority"`
	CreatedAt  time.Time    `json:"created_at"`
}

// CustomerUpdate carries the subset of fields update_customer may change.
// A nil field is left untouched.
type CustomerUpdate struct {
	Name   *string
	Email  *string
	Phone  *string
	Status *CustomerStatus
}

func (u CustomerUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Status == nil
}

type ToolRequest struct {
	ToolName      ToolName       `json:"tool_name"`
	Arguments     map[string]any `json:"arguments,omitempty"`
	CorrelationID string         `json:"correlation_id"`
}

type CustomerFilter struct {
	Status CustomerStatus
	Limit  int
}

const DefaultListLimit = 10

type RouterResult struct {
	Query       string       `json:"query"`
	FinalAnswer string       `json:"final_answer"`
	Trace       []TraceEntry `json:"trace"`
}
