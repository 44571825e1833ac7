package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver   string `split_words:"true" default:"sqlite3"`
	DSN      string `envconfig:"DSN" default:"file:support.db?_busy_timeout=10000"`
	MaxConns int    `split_words:"true" default:"10"`
	Seed     bool   `default:"false"`
}

// StoreOption customizes SQLStore.
type StoreOption func(*SQLStore)

func WithClock(now func() time.Time) StoreOption {
	return func(s *SQLStore) {
		if now != nil {
			s.now = now
		}
	}
}

// SQLStore implements contract.Backend on top of bun. Every operation that
// reads before it writes runs inside one transaction.
type SQLStore struct {
	db     *bun.DB
	driver string
	now    func() time.Time
}

var _ contractx.Backend = (*SQLStore)(nil)

func Open(ctx context.Context, cfg Config, opts ...StoreOption) (*SQLStore, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverSQLite
	}
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("store dsn is required")
	}

	var db *bun.DB
	switch driver {
	case DriverSQLite, "sqlite":
		driver = DriverSQLite
		sqldb, err := sql.Open(DriverSQLite, dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite allows a single writer; one connection serializes access.
		sqldb.SetMaxOpenConns(1)
		sqldb.SetMaxIdleConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case DriverPostgres, "postgresql":
		driver = DriverPostgres
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		if cfg.MaxConns > 0 {
			sqldb.SetMaxOpenConns(cfg.MaxConns)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("unsupported store driver=%q", cfg.Driver)
	}
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=10000"); err != nil {
			log.Warn().Err(err).Msg("failed to set sqlite busy timeout")
		}
	}

	s := New(db, driver, opts...)
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func New(db *bun.DB, driver string, opts ...StoreOption) *SQLStore {
	s := &SQLStore{
		db:     db,
		driver: driver,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *SQLStore) DB() *bun.DB {
	return s.db
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*customerRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create customers table: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*ticketRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create tickets table: %w", err)
	}
	if _, err := s.db.NewCreateIndex().
		Model((*ticketRow)(nil)).
		Index("idx_tickets_customer_id").
		IfNotExists().
		Column("customer_id").
		Exec(ctx); err != nil {
		return fmt.Errorf("create tickets index: %w", err)
	}
	return nil
}

func (s *SQLStore) GetCustomer(ctx context.Context, id int64) (contractx.Customer, error) {
	row := new(customerRow)
	if err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx); err != nil {
		return contractx.Customer{}, s.lookupErr(err, id)
	}
	return row.toContract(), nil
}

func (s *SQLStore) ListCustomers(ctx context.Context, filter contractx.CustomerFilter) ([]contractx.Customer, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf(`%w: status must be "active" or "disabled"`, contractx.ErrValidation)
	}
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", contractx.ErrValidation)
	}
	if filter.Limit == 0 {
		return []contractx.Customer{}, nil
	}

	var rows []customerRow
	q := s.db.NewSelect().Model(&rows).OrderExpr("id ASC").Limit(filter.Limit)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, backendErr(err)
	}

	out := make([]contractx.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toContract())
	}
	return out, nil
}

func (s *SQLStore) UpdateCustomer(ctx context.Context, id int64, update contractx.CustomerUpdate) (contractx.Customer, error) {
	if update.Empty() {
		return contractx.Customer{}, fmt.Errorf("%w: no valid fields to update", contractx.ErrValidation)
	}
	if update.Status != nil && !update.Status.Valid() {
		return contractx.Customer{}, fmt.Errorf(`%w: status must be "active" or "disabled"`, contractx.ErrValidation)
	}

	row := new(customerRow)
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().Model(row).Where("id = ?", id)
		if s.driver == DriverPostgres {
			q = q.For("UPDATE")
		}
		if err := q.Scan(ctx); err != nil {
			return s.lookupErr(err, id)
		}

		columns := applyUpdate(row, update)
		row.UpdatedAt = s.now().UTC()
		columns = append(columns, "updated_at")

		if _, err := tx.NewUpdate().Model(row).Column(columns...).WherePK().Exec(ctx); err != nil {
			return backendErr(err)
		}
		return nil
	})
	if err != nil {
		return contractx.Customer{}, err
	}
	return row.toContract(), nil
}

func (s *SQLStore) CreateTicket(
	ctx context.Context,
	customerID int64,
	issue string,
	priority contractx.Priority,
) (contractx.Ticket, error) {
	if !priority.Valid() {
		return contractx.Ticket{}, fmt.Errorf(`%w: priority must be one of: "low", "medium", "high"`, contractx.ErrValidation)
	}

	row := &ticketRow{
		CustomerID: customerID,
		Issue:      issue,
		Status:     contractx.TicketOpen,
		Priority:   priority,
	}
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().Model((*customerRow)(nil)).Column("id").Where("id = ?", customerID)
		if s.driver == DriverPostgres {
			q = q.For("SHARE")
		}
		exists, err := q.Exists(ctx)
		if err != nil {
			return backendErr(err)
		}
		if !exists {
			return customerNotFound(customerID)
		}

		row.CreatedAt = s.now().UTC()
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return backendErr(err)
		}
		return nil
	})
	if err != nil {
		return contractx.Ticket{}, err
	}
	return row.toContract(), nil
}

func (s *SQLStore) CustomerHistory(ctx context.Context, customerID int64) ([]contractx.Ticket, error) {
	var rows []ticketRow
	if err := s.db.NewSelect().
		Model(&rows).
		Where("customer_id = ?", customerID).
		OrderExpr("created_at DESC, id DESC").
		Scan(ctx); err != nil {
		return nil, backendErr(err)
	}

	out := make([]contractx.Ticket, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toContract())
	}
	return out, nil
}

func applyUpdate(row *customerRow, update contractx.CustomerUpdate) []string {
	columns := make([]string, 0, 5)
	if update.Name != nil {
		row.Name = *update.Name
		columns = append(columns, "name")
	}
	if update.Email != nil {
		row.Email = *update.Email
		columns = append(columns, "email")
	}
	if update.Phone != nil {
		row.Phone = *update.Phone
		columns = append(columns, "phone")
	}
	if update.Status != nil {
		row.Status = *update.Status
		columns = append(columns, "status")
	}
	return columns
}

func (s *SQLStore) lookupErr(err error, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return customerNotFound(id)
	}
	return backendErr(err)
}

func customerNotFound(id int64) error {
	return fmt.Errorf("customer %d %w", id, contractx.ErrNotFound)
}

func backendErr(err error) error {
	if errors.Is(err, contractx.ErrNotFound) || errors.Is(err, contractx.ErrValidation) || errors.Is(err, contractx.ErrBackend) {
		return err
	}
	return fmt.Errorf("%w: %v", contractx.ErrBackend, err)
}
