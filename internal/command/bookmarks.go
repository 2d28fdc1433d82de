package command

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nikbrunner/bark/internal/model"
	"github.com/nikbrunner/bark/internal/search"
	"github.com/nikbrunner/bark/internal/storage"
)

// BookmarksTable is the schema of the bookmarks table. Its names are the
// only identifiers that ever reach SQL text.
var BookmarksTable = storage.Table{
	Name: "bookmarks",
	Columns: []storage.Column{
		{Name: string(model.FieldID), Type: "integer primary key autoincrement"},
		{Name: string(model.FieldTitle), Type: "text not null"},
		{Name: string(model.FieldURL), Type: "text not null"},
		{Name: string(model.FieldNotes), Type: "text"},
		{Name: string(model.FieldDateAdded), Type: "text not null"},
	},
}

// bookmarkRow is a bookmark as stored in the database.
type bookmarkRow struct {
	ID        int64          `db:"id"`
	Title     string         `db:"title"`
	URL       string         `db:"url"`
	Notes     sql.NullString `db:"notes"`
	DateAdded string         `db:"date_added"`
}

func (r bookmarkRow) toModel() model.Bookmark {
	b := model.Bookmark{
		ID:    r.ID,
		Title: r.Title,
		URL:   r.URL,
		Notes: r.Notes.String,
	}
	// Unparseable dates from foreign tools stay zero rather than failing the list
	b.DateAdded, _ = model.ParseTime(r.DateAdded)
	return b
}

func selectBookmarks(ctx context.Context, gw storage.Gateway, orderBy model.Field) ([]model.Bookmark, error) {
	var rows []bookmarkRow
	if err := gw.Select(ctx, &rows, BookmarksTable.Name, nil, string(orderBy)); err != nil {
		return nil, err
	}

	bookmarks := make([]model.Bookmark, len(rows))
	for i, r := range rows {
		bookmarks[i] = r.toModel()
	}
	return bookmarks, nil
}

// CreateTable ensures the bookmarks table exists. Safe to run on every start.
type CreateTable struct {
	Store storage.Gateway
}

func (c CreateTable) Execute(ctx context.Context, _ None) (Result, error) {
	if err := c.Store.CreateTable(ctx, BookmarksTable); err != nil {
		return Result{}, err
	}
	return OK(Empty{}), nil
}

// AddBookmark inserts one bookmark, stamping it with Now unless the
// params carry a date.
type AddBookmark struct {
	Store storage.Gateway
	Now   func() time.Time // optional, time.Now if nil
}

func (c AddBookmark) Execute(ctx context.Context, params model.NewBookmarkParams) (Result, error) {
	added := params.DateAdded
	if added.IsZero() {
		added = c.now()
	}

	var notes any
	if params.Notes != "" {
		notes = params.Notes
	}

	_, err := c.Store.Insert(ctx, BookmarksTable.Name, storage.Values{
		string(model.FieldTitle):     params.Title,
		string(model.FieldURL):       params.URL,
		string(model.FieldNotes):     notes,
		string(model.FieldDateAdded): model.FormatTime(added),
	})
	if err != nil {
		return Result{}, err
	}
	return OK(Message("Bookmark added!")), nil
}

func (c AddBookmark) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// ListBookmarks returns every bookmark ascending by OrderBy
// (date_added when empty).
type ListBookmarks struct {
	Store   storage.Gateway
	OrderBy model.Field
}

func (c ListBookmarks) Execute(ctx context.Context, _ None) (Result, error) {
	orderBy := c.OrderBy
	if orderBy == "" {
		orderBy = model.FieldDateAdded
	}

	bookmarks, err := selectBookmarks(ctx, c.Store, orderBy)
	if err != nil {
		return Result{}, err
	}
	return OK(Rows(bookmarks)), nil
}

// EditInput changes one field of one bookmark.
type EditInput struct {
	ID    int64
	Field model.Field
	Value string
}

// EditBookmark applies a single-field update. Editing an id that does not
// exist changes nothing and still succeeds.
type EditBookmark struct {
	Store storage.Gateway
}

func (c EditBookmark) Execute(ctx context.Context, in EditInput) (Result, error) {
	if _, err := model.ParseField(string(in.Field)); err != nil {
		return Result{}, fmt.Errorf("editing bookmark %d: %w", in.ID, err)
	}

	_, err := c.Store.Update(ctx, BookmarksTable.Name,
		storage.Values{string(model.FieldID): in.ID},
		storage.Values{string(in.Field): in.Value},
	)
	if err != nil {
		return Result{}, err
	}
	return OK(Message("Bookmark updated!")), nil
}

// DeleteBookmark removes the bookmark with the given id, if there is one.
type DeleteBookmark struct {
	Store storage.Gateway
}

func (c DeleteBookmark) Execute(ctx context.Context, id int64) (Result, error) {
	_, err := c.Store.Delete(ctx, BookmarksTable.Name, storage.Values{string(model.FieldID): id})
	if err != nil {
		return Result{}, err
	}
	return OK(Message("Bookmark deleted!")), nil
}

// SearchBookmarks fuzzy-matches titles, best match first.
type SearchBookmarks struct {
	Store storage.Gateway
}

func (c SearchBookmarks) Execute(ctx context.Context, query string) (Result, error) {
	bookmarks, err := selectBookmarks(ctx, c.Store, model.FieldDateAdded)
	if err != nil {
		return Result{}, err
	}

	results := search.FuzzySearchBookmarks(bookmarks, query)
	rows := make(Rows, len(results))
	for i, r := range results {
		rows[i] = *r.Bookmark
	}
	return OK(rows), nil
}
