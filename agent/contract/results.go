package contract

import (
	"encoding/json"
	"fmt"
)

// Result is the envelope shared by every tool payload. Callers check Success
// and read Error when it is false, regardless of where the failure happened.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func Failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

func Failuref(format string, args ...any) Result {
	return Failure(fmt.Sprintf(format, args...))
}

func (r Result) Failed() bool {
	return !r.Success
}

type CustomerResult struct {
	Result
	Message  string    `json:"message,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
}

type CustomerListResult struct {
	Result
	Count     int        `json:"count"`
	Customers []Customer `json:"customers"`
}

type TicketResult struct {
	Result
	Ticket *Ticket `json:"ticket,omitempty"`
}

type TicketListResult struct {
	Result
	Count   int      `json:"count"`
	Tickets []Ticket `json:"tickets"`
}

type CustomerTickets struct {
	Customer    Customer `json:"customer"`
	OpenTickets []Ticket `json:"open_tickets"`
}

type OpenTicketsResult struct {
	Result
	Count int               `json:"count"`
	Items []CustomerTickets `json:"items"`
}

// Payload is a tool response as seen by a caller: the decoded envelope plus
// the raw document for tool-specific decoding.
type Payload struct {
	Result
	Body json.RawMessage `json:"-"`
}

func FailurePayload(msg string) Payload {
	res := Failure(msg)
	body, _ := json.Marshal(res)
	return Payload{Result: res, Body: body}
}

func ParsePayload(text string) (Payload, error) {
	var res Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return Payload{}, fmt.Errorf("%w: decode tool payload: %v", ErrTransport, err)
	}
	return Payload{Result: res, Body: json.RawMessage(text)}, nil
}

// Decode fills out with the tool-specific document. The envelope of a failed
// payload is copied as-is so typed results keep the same failure shape.
func (p Payload) Decode(out any) error {
	if len(p.Body) == 0 {
		return fmt.Errorf("%w: empty tool payload", ErrTransport)
	}
	if err := json.Unmarshal(p.Body, out); err != nil {
		return fmt.Errorf("%w: decode tool payload: %v", ErrTransport, err)
	}
	return nil
}
