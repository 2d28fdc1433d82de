package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var _ Gateway = (*SQLiteStorage)(nil)

// SQLiteStorage implements Gateway using a SQLite database.
// It is opened once at startup and owned by the process until Close.
type SQLiteStorage struct {
	db     *sqlx.DB
	path   string
	tables map[string]Table
}

// NewSQLiteStorage opens (creating if needed) the database at path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	// A single connection: the menu runs one action at a time.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting %q: %w", pragma, err)
		}
	}

	return &SQLiteStorage{
		db:     db,
		path:   path,
		tables: make(map[string]Table),
	}, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing db: %w", err)
	}
	return nil
}

// CreateTable creates the table if it does not exist and registers its
// schema, which every later statement's identifiers are checked against.
func (s *SQLiteStorage) CreateTable(ctx context.Context, table Table) error {
	if !validIdent(table.Name) {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table.Name)
	}
	if len(table.Columns) == 0 {
		return fmt.Errorf("creating table %s: %w", table.Name, ErrEmptyValues)
	}

	defs := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		if !validIdent(c.Name) {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, c.Name)
		}
		defs[i] = c.Name + " " + c.Type
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table.Name, strings.Join(defs, ", "))
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating table %s: %w", table.Name, err)
	}

	s.tables[table.Name] = table
	return nil
}

// Insert adds one row and returns its assigned id.
func (s *SQLiteStorage) Insert(ctx context.Context, table string, row Values) (int64, error) {
	if len(row) == 0 {
		return 0, fmt.Errorf("inserting into %s: %w", table, ErrEmptyValues)
	}
	columns, args, err := s.columns(table, row)
	if err != nil {
		return 0, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", table, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("fetching inserted id: %w", err)
	}
	return id, nil
}

// Update sets values on every row matching match and returns the number
// of rows changed. Zero matched rows is not an error.
func (s *SQLiteStorage) Update(ctx context.Context, table string, match, values Values) (int64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("updating %s: %w", table, ErrEmptyValues)
	}
	setColumns, setArgs, err := s.columns(table, values)
	if err != nil {
		return 0, err
	}
	where, whereArgs, err := s.where(table, match)
	if err != nil {
		return 0, err
	}

	assignments := make([]string, len(setColumns))
	for i, c := range setColumns {
		assignments[i] = c + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(assignments, ", "), where)

	result, err := s.db.ExecContext(ctx, query, append(setArgs, whereArgs...)...)
	if err != nil {
		return 0, fmt.Errorf("updating %s: %w", table, err)
	}
	return rowsAffected(result)
}

// Delete removes every row matching match. An empty match is refused so a
// missing criteria map can never clear the table.
func (s *SQLiteStorage) Delete(ctx context.Context, table string, match Values) (int64, error) {
	if len(match) == 0 {
		return 0, fmt.Errorf("deleting from %s: %w", table, ErrEmptyValues)
	}
	where, args, err := s.where(table, match)
	if err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM "+table+where, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", table, err)
	}
	return rowsAffected(result)
}

// Select scans the rows matching match into dest (a pointer to a slice of
// db-tagged structs), ascending by orderBy when it is set.
func (s *SQLiteStorage) Select(ctx context.Context, dest any, table string, match Values, orderBy string) error {
	where, args, err := s.where(table, match)
	if err != nil {
		return err
	}

	query := "SELECT * FROM " + table + where
	if orderBy != "" {
		if err := s.checkColumn(table, orderBy); err != nil {
			return err
		}
		query += " ORDER BY " + orderBy
	}

	if err := s.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("selecting from %s: %w", table, err)
	}
	return nil
}

// columns validates the keys of v against the table schema and returns
// them in sorted order with their values.
func (s *SQLiteStorage) columns(table string, v Values) ([]string, []any, error) {
	keys := v.Keys()
	args := make([]any, len(keys))
	for i, k := range keys {
		if err := s.checkColumn(table, k); err != nil {
			return nil, nil, err
		}
		args[i] = v[k]
	}
	return keys, args, nil
}

// where builds a " WHERE a = ? AND b = ?" clause, or "" for no criteria.
func (s *SQLiteStorage) where(table string, match Values) (string, []any, error) {
	if _, ok := s.tables[table]; !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if len(match) == 0 {
		return "", nil, nil
	}

	keys, args, err := s.columns(table, match)
	if err != nil {
		return "", nil, err
	}
	conds := make([]string, len(keys))
	for i, k := range keys {
		conds[i] = k + " = ?"
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func (s *SQLiteStorage) checkColumn(table, column string) error {
	t, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if !validIdent(column) || !t.HasColumn(column) {
		return fmt.Errorf("%w: %q in %s", ErrUnknownColumn, column, table)
	}
	return nil
}

func rowsAffected(r sql.Result) (int64, error) {
	n, err := r.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("fetching rows affected: %w", err)
	}
	return n, nil
}
