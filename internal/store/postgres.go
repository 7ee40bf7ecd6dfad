package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/logging"
)

// DefaultQueryTimeout bounds a single gateway call when none is configured.
const DefaultQueryTimeout = 10 * time.Second

// Postgres is the Gateway backed by a PostgreSQL customers table.
type Postgres struct {
	db      DBTX
	timeout time.Duration
	logger  *slog.Logger
}

// NewPostgres returns a gateway over db. A zero timeout uses
// DefaultQueryTimeout.
func NewPostgres(db DBTX, timeout time.Duration, logger *slog.Logger) *Postgres {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Postgres{db: db, timeout: timeout, logger: logging.OrDefault(logger)}
}

func (p *Postgres) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.timeout)
}

func (p *Postgres) List(ctx context.Context) ([]core.Record, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	records, err := p.query(ctx, "SELECT "+selectColumns+" FROM customers ORDER BY created_at DESC")
	if err != nil {
		return nil, &core.TransportError{Op: "list", Err: err}
	}
	return records, nil
}

func (p *Postgres) GetByID(ctx context.Context, id string) (core.Record, error) {
	uid := core.ToPgUUID(id)
	if !uid.Valid {
		return core.Record{}, &core.TransportError{Op: "get", Err: core.ErrNotFound}
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	row := p.db.QueryRow(ctx, "SELECT "+selectColumns+" FROM customers WHERE id = $1", uid)
	r, err := scanRecord(row)
	if err != nil {
		return core.Record{}, &core.TransportError{Op: "get", Err: notFound(err)}
	}
	return r, nil
}

func (p *Postgres) Create(ctx context.Context, in core.Input) (core.Record, error) {
	in = in.Normalize()
	if err := core.ValidateInput(in); err != nil {
		return core.Record{}, err
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	r, err := scanRecord(p.db.QueryRow(ctx, buildInsertQuery(), inputArgs(in)...))
	if err != nil {
		return core.Record{}, &core.TransportError{Op: "create", Err: err}
	}
	return r, nil
}

func (p *Postgres) Update(ctx context.Context, id string, in core.Input) (core.Record, error) {
	in = in.Normalize()
	if err := core.ValidateInput(in); err != nil {
		return core.Record{}, err
	}

	uid := core.ToPgUUID(id)
	if !uid.Valid {
		return core.Record{}, &core.TransportError{Op: "update", Err: core.ErrNotFound}
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	args := append(inputArgs(in), uid)
	r, err := scanRecord(p.db.QueryRow(ctx, buildUpdateQuery(), args...))
	if err != nil {
		return core.Record{}, &core.TransportError{Op: "update", Err: notFound(err)}
	}
	return r, nil
}

// Delete removes the customer. An absent or malformed id is not an error.
func (p *Postgres) Delete(ctx context.Context, id string) error {
	uid := core.ToPgUUID(id)
	if !uid.Valid {
		p.logger.Debug("delete skipped: malformed id", "id", id)
		return nil
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	tag, err := p.db.Exec(ctx, "DELETE FROM customers WHERE id = $1", uid)
	if err != nil {
		return &core.TransportError{Op: "delete", Err: err}
	}
	if tag.RowsAffected() == 0 {
		p.logger.Debug("delete matched no rows", "id", id)
	}
	return nil
}

func (p *Postgres) Search(ctx context.Context, f core.SearchFilters) ([]core.Record, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	sql, args := buildSearchQuery(f)
	records, err := p.query(ctx, sql, args...)
	if err != nil {
		return nil, &core.TransportError{Op: "search", Err: err}
	}
	return records, nil
}

// TestConnection runs a one-row probe. It never returns an error.
func (p *Postgres) TestConnection(ctx context.Context) bool {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var n int64
	err := p.db.QueryRow(ctx, "SELECT count(*) FROM (SELECT 1 FROM customers LIMIT 1) AS probe").Scan(&n)
	if err != nil {
		p.logger.Debug("connection probe failed", "error", err)
		return false
	}
	return true
}

func (p *Postgres) query(ctx context.Context, sql string, args ...interface{}) ([]core.Record, error) {
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.Record, error) {
		return scanRecord(row)
	})
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []core.Record{}
	}
	return records, nil
}

func scanRecord(row pgx.Row) (core.Record, error) {
	var (
		r        core.Record
		id       pgtype.UUID
		website  pgtype.Text
		interest string
		priority string
		followUp string
	)
	err := row.Scan(
		&id, &r.Country, &r.CompanyName, &website, &r.Sector,
		&interest, &priority, &r.ActionNote, &followUp, &r.CreatedAt,
	)
	if err != nil {
		return core.Record{}, err
	}
	r.ID = core.PgUUIDToString(id)
	r.Website = core.FromPgText(website)
	r.InterestStatus = core.InterestStatus(interest)
	r.Priority = core.Priority(priority)
	r.FollowUpStatus = core.FollowUpStatus(followUp)
	return r, nil
}

// inputArgs returns the insert/update arguments in core.CustomerFields order.
func inputArgs(in core.Input) []interface{} {
	return []interface{}{
		in.Country,
		in.CompanyName,
		core.ToPgText(in.Website),
		in.Sector,
		string(in.InterestStatus),
		string(in.Priority),
		in.ActionNote,
		string(in.FollowUpStatus),
	}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}
