package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

func newTestStore(t *testing.T, opts ...StoreOption) *SQLStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dsn}, opts...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedFixture(t *testing.T, s *SQLStore) {
	t.Helper()

	customers := []contractx.Customer{
		{ID: 1, Name: "Ann", Email: "a@x.com", Phone: "555", Status: contractx.CustomerActive},
		{ID: 2, Name: "Ben", Email: "b@x.com", Phone: "556", Status: contractx.CustomerActive},
		{ID: 3, Name: "Cid", Email: "c@x.com", Phone: "557", Status: contractx.CustomerDisabled},
		{ID: 4, Name: "Dee", Email: "d@x.com", Phone: "558", Status: contractx.CustomerActive},
	}
	if err := s.Seed(context.Background(), customers, nil); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedFixture(t, s)

	_, err := s.GetCustomer(context.Background(), 99)
	if !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("GetCustomer() error = %v, want ErrNotFound", err)
	}
	if err.Error() != "customer 99 not found" {
		t.Fatalf("GetCustomer() error = %q", err.Error())
	}
}

func TestUpdateCustomerRefreshesUpdatedAt(t *testing.T) {
	t.Parallel()

	clock := &stepClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Minute}
	s := newTestStore(t, WithClock(clock.Now))
	seedFixture(t, s)
	ctx := context.Background()

	before, err := s.GetCustomer(ctx, 1)
	if err != nil {
		t.Fatalf("GetCustomer() error = %v", err)
	}

	email := "ann@new.com"
	updated, err := s.UpdateCustomer(ctx, 1, contractx.CustomerUpdate{Email: &email})
	if err != nil {
		t.Fatalf("UpdateCustomer() error = %v", err)
	}
	if updated.Email != email {
		t.Fatalf("UpdateCustomer().Email = %q, want %q", updated.Email, email)
	}

	after, err := s.GetCustomer(ctx, 1)
	if err != nil {
		t.Fatalf("GetCustomer() error = %v", err)
	}
	if after.Email != email {
		t.Fatalf("GetCustomer().Email = %q, want %q", after.Email, email)
	}
	if after.Name != "Ann" {
		t.Fatalf("untouched field changed: name=%q", after.Name)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("updated_at not refreshed: before=%v after=%v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestUpdateCustomerValidation(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedFixture(t, s)
	ctx := context.Background()

	if _, err := s.UpdateCustomer(ctx, 1, contractx.CustomerUpdate{}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("empty update error = %v, want ErrValidation", err)
	}

	bogus := contractx.CustomerStatus("bogus")
	if _, err := s.UpdateCustomer(ctx, 1, contractx.CustomerUpdate{Status: &bogus}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("bogus status error = %v, want ErrValidation", err)
	}

	name := "Nobody"
	if _, err := s.UpdateCustomer(ctx, 42, contractx.CustomerUpdate{Name: &name}); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestListCustomersFilterAndLimit(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedFixture(t, s)
	ctx := context.Background()

	got, err := s.ListCustomers(ctx, contractx.CustomerFilter{Status: contractx.CustomerActive, Limit: 2})
	if err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListCustomers() len = %d, want 2", len(got))
	}
	for _, c := range got {
		if c.Status != contractx.CustomerActive {
			t.Fatalf("ListCustomers() returned status=%s", c.Status)
		}
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("ListCustomers() order = [%d %d], want [1 2]", got[0].ID, got[1].ID)
	}

	all, err := s.ListCustomers(ctx, contractx.CustomerFilter{Limit: 10})
	if err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("ListCustomers() without filter len = %d, want 4", len(all))
	}

	none, err := s.ListCustomers(ctx, contractx.CustomerFilter{Limit: 0})
	if err != nil {
		t.Fatalf("ListCustomers() limit=0 error = %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("ListCustomers() limit=0 len = %d", len(none))
	}
}

func TestListCustomersRejectsBogusStatus(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedFixture(t, s)

	_, err := s.ListCustomers(context.Background(), contractx.CustomerFilter{Status: "bogus", Limit: 5})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("ListCustomers() error = %v, want ErrValidation", err)
	}
}

func TestCreateTicketAlwaysOpenWithUniqueIDs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedFixture(t, s)
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 3; i++ {
		tk, err := s.CreateTicket(ctx, 2, fmt.Sprintf("issue %d", i), contractx.PriorityHigh)
		if err != nil {
			t.Fatalf("CreateTicket() error = %v", err)
		}
		if tk.Status != contractx.TicketOpen {
			t.Fatalf("CreateTicket().Status = %s, want open", tk.Status)
		}
		if tk.ID == 0 || seen[tk.ID] {
			t.Fatalf("CreateTicket() id=%d is zero or duplicated", tk.ID)
		}
		seen[tk.ID] = true
	}
}

func TestCreateTicketRequiresExistingCustomer(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seedFixture(t, s)
	ctx := context.Background()

	if _, err := s.CreateTicket(ctx, 77, "ghost", contractx.PriorityLow); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("CreateTicket() error = %v, want ErrNotFound", err)
	}
	if _, err := s.CreateTicket(ctx, 1, "x", contractx.Priority("urgent")); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("CreateTicket() error = %v, want ErrValidation", err)
	}

	history, err := s.CustomerHistory(ctx, 77)
	if err != nil {
		t.Fatalf("CustomerHistory() error = %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("ticket inserted for unknown customer: %+v", history)
	}
}

func TestCustomerHistoryNewestFirst(t *testing.T) {
	t.Parallel()

	clock := &stepClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Second}
	s := newTestStore(t, WithClock(clock.Now))
	seedFixture(t, s)
	ctx := context.Background()

	empty, err := s.CustomerHistory(ctx, 4)
	if err != nil {
		t.Fatalf("CustomerHistory() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("CustomerHistory() = %#v, want empty slice", empty)
	}

	first, err := s.CreateTicket(ctx, 4, "first", contractx.PriorityLow)
	if err != nil {
		t.Fatalf("CreateTicket() error = %v", err)
	}
	second, err := s.CreateTicket(ctx, 4, "second", contractx.PriorityMedium)
	if err != nil {
		t.Fatalf("CreateTicket() error = %v", err)
	}

	history, err := s.CustomerHistory(ctx, 4)
	if err != nil {
		t.Fatalf("CustomerHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("CustomerHistory() len = %d, want 2", len(history))
	}
	if history[0].ID != second.ID || history[1].ID != first.ID {
		t.Fatalf("CustomerHistory() order = [%d %d], want [%d %d]", history[0].ID, history[1].ID, second.ID, first.ID)
	}
}

func TestSeedIfEmptyOnlyOnce(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	seeded, err := s.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	if !seeded {
		t.Fatal("expected first SeedIfEmpty to seed")
	}
	seeded, err = s.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	if seeded {
		t.Fatal("expected second SeedIfEmpty to be a no-op")
	}

	c, err := s.GetCustomer(ctx, 1)
	if err != nil {
		t.Fatalf("GetCustomer() error = %v", err)
	}
	if c.Status != contractx.CustomerActive {
		t.Fatalf("demo customer 1 status = %s", c.Status)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{Driver: "oracle", DSN: "x"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
