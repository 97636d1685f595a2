package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"theinsight/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("record not found")

// DBTX: общее подмножество *pgxpool.Pool и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Filter собирает WHERE с нумерованными плейсхолдерами.
type Filter struct {
	conds []string
	args  []any
}

func NewFilter() *Filter { return &Filter{} }

func (f *Filter) next(v any) string {
	f.args = append(f.args, v)
	return fmt.Sprintf("$%d", len(f.args))
}

// Eq добавляет точное совпадение; пустая строка и nil пропускаются.
func (f *Filter) Eq(col string, v any) *Filter {
	switch x := v.(type) {
	case nil:
		return f
	case string:
		if x == "" {
			return f
		}
	case *bool:
		if x == nil {
			return f
		}
		v = *x
	case *string:
		if x == nil || *x == "" {
			return f
		}
		v = *x
	}
	f.conds = append(f.conds, col+" = "+f.next(v))
	return f
}

// EqUnlessAll как Eq, но значение "all" отключает фильтр.
func (f *Filter) EqUnlessAll(col, v string) *Filter {
	if v == "all" {
		return f
	}
	return f.Eq(col, v)
}

// Raw добавляет условие без параметров.
func (f *Filter) Raw(cond string) *Filter {
	f.conds = append(f.conds, cond)
	return f
}

// Search: регистронезависимый поиск подстроки по нескольким колонкам через OR.
func (f *Filter) Search(term string, cols ...string) *Filter {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return f
	}
	ph := f.next("%" + escapeLike(term) + "%")
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " ILIKE " + ph
	}
	f.conds = append(f.conds, "("+strings.Join(parts, " OR ")+")")
	return f
}

func (f *Filter) Since(col string, t time.Time) *Filter {
	f.conds = append(f.conds, col+" >= "+f.next(t))
	return f
}

// Where возвращает " WHERE ..." (или пустую строку) и аргументы.
func (f *Filter) Where() (string, []any) {
	if f == nil || len(f.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(f.conds, " AND "), f.args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Lister: общий механизм выборки страниц для одной таблицы.
// T сканируется по db-тегам, поэтому columns должны совпадать с полями T.
type Lister[T any] struct {
	table   string
	columns string
}

func NewLister[T any](table, columns string) Lister[T] {
	return Lister[T]{table: table, columns: columns}
}

func (l Lister[T]) selectSQL() string {
	return "SELECT " + l.columns + " FROM " + l.table
}

// Page возвращает страницу элементов и общее количество под фильтром.
func (l Lister[T]) Page(ctx context.Context, db DBTX, f *Filter, orderBy string, p models.Page) ([]*T, int, error) {
	where, args := f.Where()

	var total int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM "+l.table+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", l.table, err)
	}

	n := len(args)
	q := fmt.Sprintf("%s%s ORDER BY %s LIMIT $%d OFFSET $%d", l.selectSQL(), where, orderBy, n+1, n+2)
	items, err := l.query(ctx, db, q, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// All возвращает до limit элементов (при limit <= 0 без ограничения).
func (l Lister[T]) All(ctx context.Context, db DBTX, f *Filter, orderBy string, limit int) ([]*T, error) {
	where, args := f.Where()
	q := l.selectSQL() + where + " ORDER BY " + orderBy
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}
	return l.query(ctx, db, q, args...)
}

// One возвращает первую строку под фильтром или ErrNotFound.
func (l Lister[T]) One(ctx context.Context, db DBTX, f *Filter, orderBy string) (*T, error) {
	items, err := l.All(ctx, db, f, orderBy, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return items[0], nil
}

func (l Lister[T]) ByID(ctx context.Context, db DBTX, id int64) (*T, error) {
	return l.One(ctx, db, NewFilter().Eq("id", id), "id")
}

// Row выполняет произвольный запрос, возвращающий ровно одну строку T.
func (l Lister[T]) Row(ctx context.Context, db DBTX, q string, args ...any) (*T, error) {
	rows, err := db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", l.table, err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.table, err)
	}
	return item, nil
}

func (l Lister[T]) query(ctx context.Context, db DBTX, q string, args ...any) ([]*T, error) {
	rows, err := db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", l.table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", l.table, err)
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}

func (l Lister[T]) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, "DELETE FROM "+l.table+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (l Lister[T]) Exists(ctx context.Context, db DBTX, id int64) (bool, error) {
	var ok bool
	err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM "+l.table+" WHERE id = $1)", id).Scan(&ok)
	return ok, err
}
