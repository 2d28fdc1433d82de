package storage

import (
	"context"
	"errors"
	"maps"
	"regexp"
	"slices"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown column")
	ErrEmptyValues   = errors.New("no values given")
)

// Gateway defines the table operations commands persist bookmarks through.
//
// Table and column names must come from a Table registered with
// CreateTable; literal values are always bound as statement parameters.
type Gateway interface {
	CreateTable(ctx context.Context, table Table) error
	Insert(ctx context.Context, table string, row Values) (int64, error)
	Update(ctx context.Context, table string, match, values Values) (int64, error)
	Delete(ctx context.Context, table string, match Values) (int64, error)
	Select(ctx context.Context, dest any, table string, match Values, orderBy string) error
}

// Column is a column name and its SQL type spec.
type Column struct {
	Name string
	Type string
}

// Table describes a table schema. Columns keep their declared order.
type Table struct {
	Name    string
	Columns []Column
}

// HasColumn reports whether name is one of the table's columns.
func (t Table) HasColumn(name string) bool {
	return slices.ContainsFunc(t.Columns, func(c Column) bool {
		return c.Name == name
	})
}

// Values maps column names to literal values.
type Values map[string]any

// Keys returns the column names in sorted order so statements are stable.
func (v Values) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func validIdent(s string) bool {
	return identPattern.MatchString(s)
}
