package tool

import (
	"bytes"
	"encoding/json"
	"fmt"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

type GetCustomerArgs struct {
	CustomerID int64
}

type ListCustomersArgs struct {
	Status contractx.CustomerStatus
	Limit  int
}

type UpdateCustomerArgs struct {
	CustomerID int64
	Update     contractx.CustomerUpdate
}

type CreateTicketArgs struct {
	CustomerID int64
	Issue      string
	Priority   contractx.Priority
}

type CustomerHistoryArgs struct {
	CustomerID int64
}

// wire shapes; pointers tell a missing field apart from a zero value.
type customerIDWire struct {
	CustomerID *int64 `json:"customer_id"`
}

type listCustomersWire struct {
	Status *string `json:"status"`
	Limit  *int    `json:"limit"`
}

type updateCustomerWire struct {
	CustomerID *int64         `json:"customer_id"`
	Data       map[string]any `json:"data"`
}

type createTicketWire struct {
	CustomerID *int64  `json:"customer_id"`
	Issue      *string `json:"issue"`
	Priority   *string `json:"priority"`
}

func BindGetCustomer(args map[string]any) (GetCustomerArgs, error) {
	var w customerIDWire
	if err := decodeStrict(contractx.ToolGetCustomer, args, &w); err != nil {
		return GetCustomerArgs{}, err
	}
	if w.CustomerID == nil {
		return GetCustomerArgs{}, missing("customer_id")
	}
	return GetCustomerArgs{CustomerID: *w.CustomerID}, nil
}

func BindListCustomers(args map[string]any) (ListCustomersArgs, error) {
	var w listCustomersWire
	if err := decodeStrict(contractx.ToolListCustomers, args, &w); err != nil {
		return ListCustomersArgs{}, err
	}

	out := ListCustomersArgs{Limit: contractx.DefaultListLimit}
	if w.Status != nil && *w.Status != "" {
		status, err := contractx.ParseCustomerStatus(*w.Status)
		if err != nil {
			return ListCustomersArgs{}, err
		}
		out.Status = status
	}
	if w.Limit != nil {
		if *w.Limit < 0 {
			return ListCustomersArgs{}, fmt.Errorf("%w: limit must be >= 0", contractx.ErrValidation)
		}
		out.Limit = *w.Limit
	}
	return out, nil
}

func BindUpdateCustomer(args map[string]any) (UpdateCustomerArgs, error) {
	var w updateCustomerWire
	if err := decodeStrict(contractx.ToolUpdateCustomer, args, &w); err != nil {
		return UpdateCustomerArgs{}, err
	}
	if w.CustomerID == nil {
		return UpdateCustomerArgs{}, missing("customer_id")
	}
	if w.Data == nil {
		return UpdateCustomerArgs{}, missing("data")
	}

	var update contractx.CustomerUpdate
	for key, raw := range w.Data {
		if raw == nil {
			continue
		}
		switch key {
		case "name", "email", "phone", "status":
		default:
			continue
		}
		val, ok := raw.(string)
		if !ok {
			return UpdateCustomerArgs{}, fmt.Errorf("%w: data.%s must be a string", contractx.ErrValidation, key)
		}
		switch key {
		case "name":
			update.Name = &val
		case "email":
			update.Email = &val
		case "phone":
			update.Phone = &val
		case "status":
			status, err := contractx.ParseCustomerStatus(val)
			if err != nil {
				return UpdateCustomerArgs{}, err
			}
			update.Status = &status
		}
	}
	if update.Empty() {
		return UpdateCustomerArgs{}, fmt.Errorf("%w: no valid fields to update", contractx.ErrValidation)
	}
	return UpdateCustomerArgs{CustomerID: *w.CustomerID, Update: update}, nil
}

func BindCreateTicket(args map[string]any) (CreateTicketArgs, error) {
	var w createTicketWire
	if err := decodeStrict(contractx.ToolCreateTicket, args, &w); err != nil {
		return CreateTicketArgs{}, err
	}
	if w.CustomerID == nil {
		return CreateTicketArgs{}, missing("customer_id")
	}
	if w.Issue == nil {
		return CreateTicketArgs{}, missing("issue")
	}

	priority := contractx.PriorityMedium
	if w.Priority != nil {
		p, err := contractx.ParsePriority(*w.Priority)
		if err != nil {
			return CreateTicketArgs{}, err
		}
		priority = p
	}
	return CreateTicketArgs{CustomerID: *w.CustomerID, Issue: *w.Issue, Priority: priority}, nil
}

func BindCustomerHistory(args map[string]any) (CustomerHistoryArgs, error) {
	var w customerIDWire
	if err := decodeStrict(contractx.ToolGetCustomerHistory, args, &w); err != nil {
		return CustomerHistoryArgs{}, err
	}
	if w.CustomerID == nil {
		return CustomerHistoryArgs{}, missing("customer_id")
	}
	return CustomerHistoryArgs{CustomerID: *w.CustomerID}, nil
}

func decodeStrict(name contractx.ToolName, args map[string]any, out any) error {
	if args == nil {
		args = map[string]any{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: encode arguments for %s: %v", contractx.ErrValidation, name, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid arguments for %s: %v", contractx.ErrValidation, name, err)
	}
	return nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s is required", contractx.ErrValidation, field)
}
