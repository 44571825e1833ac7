package specialist

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
	promptx "github.com/tanpawarit/a2a-support-desk/agent/prompt"
)

const refundIssue = "Double charge / urgent refund"

// supportImpl runs the support workflows. Each workflow is self-contained and
// records its delegation steps on the caller's trace.
type supportImpl struct {
	data    contractx.CustomerData
	replies promptx.ReplySet
}

func newSupport(data contractx.CustomerData, replies promptx.ReplySet) *supportImpl {
	return &supportImpl{data: data, replies: replies}
}

func (s *supportImpl) note(trace *contractx.Trace, format string, args ...any) {
	if trace != nil {
		trace.Appendf(contractx.AgentTypeSupport, format, args...)
	}
}

func (s *supportImpl) AccountHelp(ctx context.Context, customerID int64, trace *contractx.Trace) string {
	s.note(trace, "Requesting customer info via %s.%s(%d)", contractx.AgentTypeData, contractx.ToolGetCustomer, customerID)

	res := s.data.GetCustomer(ctx, customerID)
	if res.Failed() || res.Customer == nil {
		return fmt.Sprintf("Unable to fetch account info for customer %d: %s", customerID, res.Error)
	}
	c := res.Customer
	return fmt.Sprintf("I found your account: %s (ID %d), status = %s.", c.Name, c.ID, c.Status)
}

func (s *supportImpl) UpgradeGuidance(ctx context.Context, customerID int64, trace *contractx.Trace) string {
	s.note(trace, "Fetching customer info before recommending upgrade")

	res := s.data.GetCustomer(ctx, customerID)
	if res.Failed() || res.Customer == nil {
		return fmt.Sprintf("Unable to fetch account info for customer %d: %s", customerID, res.Error)
	}
	c := res.Customer
	return fmt.Sprintf("Hello %s! Your current account status is %s.\n", c.Name, c.Status) +
		"Based on your typical usage, I can help you upgrade to a better plan if needed."
}

func (s *supportImpl) BillingAndCancel(ctx context.Context, trace *contractx.Trace) string {
	s.note(trace, "Handling combined billing + cancellation flow")
	return s.replies.BillingCancel
}

func (s *supportImpl) EscalateRefund(ctx context.Context, customerID int64, trace *contractx.Trace) string {
	s.note(trace, "Creating high-priority refund ticket due to double charge")

	res := s.data.CreateTicket(ctx, customerID, refundIssue, contractx.PriorityHigh)
	if res.Failed() || res.Ticket == nil {
		return fmt.Sprintf("Failed to create escalation ticket: %s", res.Error)
	}
	s.note(trace, "High-priority ticket #%d created", res.Ticket.ID)

	return "I’m sorry for the duplicate charge.\n" +
		fmt.Sprintf("A high-priority refund ticket (ID %d) has been submitted. ", res.Ticket.ID) +
		"Our billing team will contact you shortly."
}

func (s *supportImpl) TicketReport(ctx context.Context, trace *contractx.Trace) string {
	s.note(trace, "Requesting active customers with open tickets")

	res := s.data.ActiveCustomersWithOpenTickets(ctx)
	if res.Failed() {
		return fmt.Sprintf("Unable to generate ticket report: %s", res.Error)
	}
	if res.Count == 0 {
		return s.replies.AllClear
	}

	lines := []string{"Here is the list of active customers with open tickets:"}
	for _, item := range res.Items {
		lines = append(lines, fmt.Sprintf("\n- %s (ID %d)", item.Customer.Name, item.Customer.ID))
		for _, t := range item.OpenTickets {
			lines = append(lines, fmt.Sprintf("    • Ticket #%d: %s [priority=%s]", t.ID, t.Issue, t.Priority))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *supportImpl) UpdateEmailAndHistory(ctx context.Context, customerID int64, email string, trace *contractx.Trace) string {
	s.note(trace, "Updating email, then fetching ticket history")

	upd := s.data.UpdateCustomer(ctx, customerID, map[string]any{"email": email})
	if upd.Failed() {
		return fmt.Sprintf("Failed to update email: %s", upd.Error)
	}

	hist := s.data.GetCustomerHistory(ctx, customerID)
	if hist.Failed() {
		return fmt.Sprintf("Email updated to %s, but failed to fetch ticket history.", email)
	}

	lines := []string{fmt.Sprintf("Email updated to %s. Here’s your ticket history:", email)}
	for _, t := range hist.Tickets {
		lines = append(lines, fmt.Sprintf("- Ticket #%d: %s [status=%s, priority=%s]", t.ID, t.Issue, t.Status, t.Priority))
	}
	return strings.Join(lines, "\n")
}

var _ contractx.SupportSpecialist = (*supportImpl)(nil)
