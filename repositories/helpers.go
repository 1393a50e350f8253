package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// ErrForeignKey is returned when a referenced row does not exist.
var ErrForeignKey = errors.New("referenced entity does not exist")

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func executor(db *sql.DB, exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return db
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// uniqueViolation reports the violated constraint when err is a unique violation.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

// jsonList scans a JSON array column (json_agg and friends) into a typed slice.
// NULL and empty input become an empty, non-nil slice.
type jsonList[T any] []T

func (l *jsonList[T]) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = jsonList[T]{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonList: unsupported source type %T", src)
	}

	if len(raw) == 0 || string(raw) == "null" {
		*l = jsonList[T]{}
		return nil
	}

	items := make([]T, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("jsonList: %w", err)
	}
	*l = items
	return nil
}

// jsonRaw scans a JSON column verbatim, defaulting to an empty array.
type jsonRaw json.RawMessage

func (j *jsonRaw) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*j = jsonRaw("[]")
	case []byte:
		*j = append(jsonRaw(nil), v...)
	case string:
		*j = jsonRaw(v)
	default:
		return fmt.Errorf("jsonRaw: unsupported source type %T", src)
	}
	return nil
}

// filterBuilder accumulates AND-ed conditions. Each "?" in a condition is bound to the same argument.
type filterBuilder struct {
	conds []string
	args  []interface{}
}

func (b *filterBuilder) add(cond string, arg interface{}) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(b.args))))
}

func (b *filterBuilder) addIf(ok bool, cond string, arg interface{}) {
	if ok {
		b.add(cond, arg)
	}
}

func (b *filterBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// next returns the placeholder for an argument appended after the filter arguments.
func (b *filterBuilder) next(arg interface{}) string {
	b.args = append(b.args, arg)
	return "$" + strconv.Itoa(len(b.args))
}

func like(s string) string {
	return "%" + s + "%"
}
