package menu

import (
	"time"

	"github.com/nikbrunner/bark/internal/command"
	"github.com/nikbrunner/bark/internal/logger"
	"github.com/nikbrunner/bark/internal/model"
	"github.com/nikbrunner/bark/internal/option"
	"github.com/nikbrunner/bark/internal/storage"
)

// Deps are the collaborators the menu commands run against.
type Deps struct {
	Store storage.Gateway
	Stars command.StarSource
	Log   logger.Logger
	Now   func() time.Time // optional
}

// Options returns the bark menu in display order.
func Options(d Deps) []Entry {
	add := command.AddBookmark{Store: d.Store, Now: d.Now}

	return []Entry{
		{"A", option.New("Add a bookmark", add, newBookmarkData,
			option.WithSuccessMessage("Bookmark added!"))},
		{"B", option.New[command.None]("List bookmarks by date",
			command.ListBookmarks{Store: d.Store, OrderBy: model.FieldDateAdded}, nil)},
		{"T", option.New[command.None]("List bookmarks by title",
			command.ListBookmarks{Store: d.Store, OrderBy: model.FieldTitle}, nil)},
		{"E", option.New("Edit a bookmark", command.EditBookmark{Store: d.Store}, bookmarkEdit,
			option.WithSuccessMessage("Bookmark updated!"))},
		{"D", option.New("Delete a bookmark", command.DeleteBookmark{Store: d.Store}, bookmarkIDForDeletion,
			option.WithSuccessMessage("Bookmark deleted!"))},
		{"S", option.New("Search bookmarks", command.SearchBookmarks{Store: d.Store}, searchQuery)},
		{"G", option.New("Import GitHub stars", command.ImportStars{Source: d.Stars, Add: add, Log: d.Log}, githubImportOptions,
			option.WithSuccessMessage("Imported {result} bookmarks from starred repos!"))},
		{"I", option.New("Import bookmarks from HTML", command.ImportHTML{Add: add, Log: d.Log}, importPath,
			option.WithSuccessMessage("Imported {result} bookmarks from file!"))},
		{"X", option.New("Export bookmarks to HTML", command.ExportHTML{Store: d.Store, Log: d.Log}, exportPath,
			option.WithSuccessMessage("Exported bookmarks to {result}"))},
		{"Q", option.New[command.None]("Quit", command.Quit{}, nil)},
	}
}
