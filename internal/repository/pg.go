package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Page selects a window of a list query.
type Page struct {
	Limit  int
	Offset int
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

type pgBase struct {
	db *pgxpool.Pool
}

// q returns the transaction bound to ctx, or the pool.
func (b pgBase) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return b.db
}

// withTx runs fn inside a transaction; nested calls reuse the outer one.
func (b pgBase) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := b.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapWriteErr translates constraint violations into domain errors.
func mapWriteErr(op string, err error) error {
	switch pgCode(err) {
	case pgUniqueViolation:
		return domain.ErrAlreadyExists
	case pgForeignKeyViolation:
		return domain.ErrReferenceNotFound
	case pgCheckViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidField)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func mapReadErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func expectAffected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// filter accumulates WHERE conditions with numbered placeholders.
type filter struct {
	conds []string
	args  []any
}

func (f *filter) next(arg any) string {
	f.args = append(f.args, arg)
	return fmt.Sprintf("$%d", len(f.args))
}

// contains adds a case-insensitive substring match when value is set.
func (f *filter) contains(column, value string) {
	if value == "" {
		return
	}
	f.conds = append(f.conds, fmt.Sprintf("%s ILIKE %s", column, f.next("%"+escapeLike(value)+"%")))
}

func (f *filter) equalFold(column, value string) {
	if value == "" {
		return
	}
	f.conds = append(f.conds, fmt.Sprintf("UPPER(%s) = UPPER(%s)", column, f.next(value)))
}

func (f *filter) anyID(column string, ids []int64) {
	if len(ids) == 0 {
		return
	}
	f.conds = append(f.conds, fmt.Sprintf("%s = ANY(%s)", column, f.next(ids)))
}

func (f *filter) anyCode(column string, codes []string) {
	if len(codes) == 0 {
		return
	}
	upper := make([]string, len(codes))
	for i, c := range codes {
		upper[i] = strings.ToUpper(c)
	}
	f.conds = append(f.conds, fmt.Sprintf("%s = ANY(%s)", column, f.next(upper)))
}

func (f *filter) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// window appends LIMIT/OFFSET for p and returns the query suffix and args.
func (f *filter) window(p Page) (string, []any) {
	args := append([]any(nil), f.args...)
	if p.Limit <= 0 {
		return "", args
	}
	args = append(args, p.Limit, p.Offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func (b pgBase) count(ctx context.Context, from string, f *filter) (int, error) {
	var total int
	if err := b.q(ctx).QueryRow(ctx, "SELECT COUNT(*) "+from+f.where(), f.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return total, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
