package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/miketud/realestateapp/internal/domain"
)

const (
	dialectPostgres = "postgres"
	colID           = "id"
	colCreatedAt    = "created_at"
	colUpdatedAt    = "updated_at"
	colMonth        = "month"
	colYear         = "year"
	colPropertyID   = "property_id"
)

// PostgreSQL SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeNumericOverflow     = "22003"
	codeStringTooLong       = "22001"
)

var dialect = goqu.Dialect(dialectPostgres)

// table runs goqu-built statements against one table whose rows scan into T.
type table[T any] struct {
	pool     *pgxpool.Pool
	name     string
	notFound error
}

func newTable[T any](pool *pgxpool.Pool, name string, notFound error) table[T] {
	return table[T]{pool: pool, name: name, notFound: notFound}
}

func (t table[T]) from() *goqu.SelectDataset {
	return dialect.From(t.name).Prepared(true)
}

func (t table[T]) queryAll(ctx context.Context, ds *goqu.SelectDataset) ([]*T, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", t.name, err)
	}

	rows, err := t.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.name, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", t.name, err)
	}
	return items, nil
}

func (t table[T]) queryOne(ctx context.Context, query string, args []any) (*T, error) {
	rows, err := t.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to query %s: %w", t.name, err))
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, t.notFound
	}
	if err != nil {
		return nil, classify(fmt.Errorf("failed to read %s row: %w", t.name, err))
	}
	return item, nil
}

func (t table[T]) getWhere(ctx context.Context, where exp.Ex) (*T, error) {
	query, args, err := t.from().Where(where).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", t.name, err)
	}
	return t.queryOne(ctx, query, args)
}

func (t table[T]) get(ctx context.Context, id int64) (*T, error) {
	return t.getWhere(ctx, exp.Ex{colID: id})
}

func (t table[T]) insert(ctx context.Context, fields domain.Fields) (*T, error) {
	query, args, err := dialect.Insert(t.name).Prepared(true).
		Rows(record(fields)).
		Returning(goqu.Star()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s insert: %w", t.name, err)
	}
	return t.queryOne(ctx, query, args)
}

func (t table[T]) updateWhere(ctx context.Context, where exp.Ex, fields domain.Fields) (*T, error) {
	if len(fields) == 0 {
		return t.getWhere(ctx, where)
	}

	query, args, err := dialect.Update(t.name).Prepared(true).
		Set(record(fields)).
		Where(where).
		Returning(goqu.Star()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s update: %w", t.name, err)
	}
	return t.queryOne(ctx, query, args)
}

func (t table[T]) update(ctx context.Context, id int64, fields domain.Fields) (*T, error) {
	return t.updateWhere(ctx, exp.Ex{colID: id}, fields)
}

// upsert inserts fields or, when a row with the same key columns exists,
// overwrites only the columns present in fields. created reports an insert.
func (t table[T]) upsert(ctx context.Context, key []string, fields domain.Fields) (*T, bool, error) {
	set := goqu.Record{colUpdatedAt: goqu.L("now()")}
	for col := range fields {
		if !slices.Contains(key, col) {
			set[col] = goqu.I("excluded." + col)
		}
	}

	query, args, err := dialect.Insert(t.name).Prepared(true).
		Rows(record(fields)).
		OnConflict(goqu.DoUpdate(strings.Join(key, ", "), set)).
		Returning(goqu.C(colID), goqu.L("(xmax = 0)").As("inserted")).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build %s upsert: %w", t.name, err)
	}

	var (
		id       int64
		inserted bool
	)
	if err := t.pool.QueryRow(ctx, query, args...).Scan(&id, &inserted); err != nil {
		return nil, false, classify(fmt.Errorf("failed to upsert %s: %w", t.name, err))
	}

	item, err := t.get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return item, inserted, nil
}

func (t table[T]) deleteWhere(ctx context.Context, where exp.Ex) error {
	query, args, err := dialect.Delete(t.name).Prepared(true).Where(where).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build %s delete: %w", t.name, err)
	}

	tag, err := t.pool.Exec(ctx, query, args...)
	if err != nil {
		return classify(fmt.Errorf("failed to delete from %s: %w", t.name, err))
	}
	if tag.RowsAffected() == 0 {
		return t.notFound
	}
	return nil
}

func (t table[T]) delete(ctx context.Context, id int64) error {
	return t.deleteWhere(ctx, exp.Ex{colID: id})
}

func record(fields domain.Fields) goqu.Record {
	rec := make(goqu.Record, len(fields))
	for col, v := range fields {
		rec[col] = v
	}
	return rec
}

// classify maps constraint violations onto domain errors, keeping err in
// the chain for logging.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w (%s): %w", domain.ErrConflict, pgErr.ConstraintName, err)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w (%s): %w", domain.ErrInvalidReference, pgErr.ConstraintName, err)
	case codeCheckViolation, codeNotNullViolation:
		return fmt.Errorf("%w (%s): %w", domain.ErrInvalidValue, pgErr.ConstraintName, err)
	case codeNumericOverflow, codeStringTooLong:
		return fmt.Errorf("%w: %w", domain.ErrInvalidValue, err)
	default:
		return err
	}
}

// likePattern escapes LIKE wildcards in a user search term.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}
