package store

import (
	"time"

	"github.com/uptrace/bun"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

type customerRow struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID        int64                    `bun:"id,pk,autoincrement"`
	Name      string                   `bun:"name,notnull"`
	Email     string                   `bun:"email"`
	Phone     string                   `bun:"phone"`
	Status    contractx.CustomerStatus `bun:"status,notnull"`
	CreatedAt time.Time                `bun:"created_at,notnull"`
	UpdatedAt time.Time                `bun:"updated_at,notnull"`
}

func (r *customerRow) toContract() contractx.Customer {
	return contractx.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type ticketRow struct {
	bun.BaseModel `bun:"table:tickets,alias:t"`

	ID         int64                  `bun:"id,pk,autoincrement"`
	CustomerID int64                  `bun:"customer_id,notnull"`
	Issue      string                 `bun:"issue,notnull"`
	Status     contractx.TicketStatus `bun:"status,notnull"`
	Priority   contractx.Priority     `bun:"priority,notnull"`
	CreatedAt  time.Time              `bun:"created_at,notnull"`
}

func (r *ticketRow) toContract() contractx.Ticket {
	return contractx.Ticket{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Issue:      r.Issue,
		Status:     r.Status,
		Priority:   r.Priority,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}
