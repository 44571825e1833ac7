package store

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

// DemoCustomers is the fixture used by the demo and by `serve --seed`.
func DemoCustomers() []contractx.Customer {
	return []contractx.Customer{
		{ID: 1, Name: "John Doe", Email: "john.doe@example.com", Phone: "+1-555-0101", Status: contractx.CustomerActive},
		{ID: 2, Name: "Jane Smith", Email: "jane.smith@example.com", Phone: "+1-555-0102", Status: contractx.CustomerActive},
		{ID: 3, Name: "Bob Johnson", Email: "bob.johnson@example.com", Phone: "+1-555-0103", Status: contractx.CustomerDisabled},
		{ID: 4, Name: "Alice Williams", Email: "alice.w@example.com", Phone: "+1-555-0104", Status: contractx.CustomerActive},
		{ID: 5, Name: "Charlie Brown", Email: "charlie.brown@example.com", Phone: "+1-555-0105", Status: contractx.CustomerActive},
	}
}

func DemoTickets() []contractx.Ticket {
	return []contractx.Ticket{
		{CustomerID: 1, Issue: "Cannot login to account", Status: contractx.TicketOpen, Priority: contractx.PriorityHigh},
		{CustomerID: 1, Issue: "Password reset email not received", Status: contractx.TicketClosed, Priority: contractx.PriorityMedium},
		{CustomerID: 2, Issue: "Billing discrepancy on last invoice", Status: contractx.TicketOpen, Priority: contractx.PriorityMedium},
		{CustomerID: 3, Issue: "Request to reactivate account", Status: contractx.TicketOpen, Priority: contractx.PriorityLow},
		{CustomerID: 4, Issue: "Feature request: dark mode", Status: contractx.TicketClosed, Priority: contractx.PriorityLow},
	}
}

// Seed inserts customers and tickets in one transaction. Zero timestamps are
// filled from the store clock; tickets are spaced one second apart so that
// history ordering is deterministic.
func (s *SQLStore) Seed(ctx context.Context, customers []contractx.Customer, tickets []contractx.Ticket) error {
	now := s.now().UTC()
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, c := range customers {
			row := &customerRow{
				ID:        c.ID,
				Name:      c.Name,
				Email:     c.Email,
				Phone:     c.Phone,
				Status:    c.Status,
				CreatedAt: orNow(c.CreatedAt, now),
				UpdatedAt: orNow(c.UpdatedAt, now),
			}
			if row.Status == "" {
				row.Status = contractx.CustomerActive
			}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return fmt.Errorf("seed customer id=%d: %w", c.ID, err)
			}
		}
		for i, t := range tickets {
			row := &ticketRow{
				ID:         t.ID,
				CustomerID: t.CustomerID,
				Issue:      t.Issue,
				Status:     t.Status,
				Priority:   t.Priority,
				CreatedAt:  orNow(t.CreatedAt, now.Add(time.Duration(i-len(tickets))*time.Second)),
			}
			if row.Status == "" {
				row.Status = contractx.TicketOpen
			}
			if row.Priority == "" {
				row.Priority = contractx.PriorityMedium
			}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return fmt.Errorf("seed ticket for customer=%d: %w", t.CustomerID, err)
			}
		}
		return nil
	})
}

// SeedIfEmpty loads the demo fixture when the customers table has no rows.
func (s *SQLStore) SeedIfEmpty(ctx context.Context) (bool, error) {
	n, err := s.db.NewSelect().Model((*customerRow)(nil)).Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count customers: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := s.Seed(ctx, DemoCustomers(), DemoTickets()); err != nil {
		return false, err
	}
	return true, nil
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t.UTC()
}
