package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

// DirectLookup answers a plain customer lookup from the data specialist
// without involving the support workflows.
func DirectLookup(ctx context.Context, in *GraphState, data contractx.CustomerData) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilState
	}

	id := in.Classification.CustomerID
	res := data.GetCustomer(ctx, id)
	if res.Failed() || res.Customer == nil {
		in.Answer = fmt.Sprintf("Unable to retrieve customer %d: %s", id, res.Error)
		return in, nil
	}

	c := res.Customer
	in.Answer = fmt.Sprintf(
		"Customer %d information:\n- Name: %s\n- Email: %s\n- Phone: %s\n- Status: %s",
		id, c.Name, c.Email, c.Phone, c.Status,
	)
	return in, nil
}
