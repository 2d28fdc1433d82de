package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nikbrunner/bark/internal/exporter"
	"github.com/nikbrunner/bark/internal/github"
	"github.com/nikbrunner/bark/internal/importer"
	"github.com/nikbrunner/bark/internal/logger"
	"github.com/nikbrunner/bark/internal/model"
	"github.com/nikbrunner/bark/internal/storage"
)

// StarSource pages through a user's starred repositories.
// An empty pageURL asks for the first page; Page.Next is empty on the last.
type StarSource interface {
	Starred(ctx context.Context, user, pageURL string) (github.Page, error)
}

// ImportCriteria selects whose stars to import and how to date them.
type ImportCriteria struct {
	Username           string
	PreserveTimestamps bool
}

// ImportStars adds one bookmark per starred repository, page after page,
// until the source reports no next page. Pages are not transactional: a
// failure mid-import keeps what earlier pages added.
type ImportStars struct {
	Source StarSource
	Add    AddBookmark
	Log    logger.Logger
}

func (c ImportStars) Execute(ctx context.Context, criteria ImportCriteria) (Result, error) {
	log := orNop(c.Log).With(
		logger.String("run", uuid.NewString()),
		logger.String("user", criteria.Username),
	)
	log.Info("importing stars", logger.Bool("preserveTimestamps", criteria.PreserveTimestamps))

	imported := 0
	next := ""
	for page := 1; ; page++ {
		p, err := c.Source.Starred(ctx, criteria.Username, next)
		if err != nil {
			log.Error("fetching stars failed", logger.Int("page", page), logger.Int("imported", imported), logger.Error(err))
			return Result{}, fmt.Errorf("fetching stars page %d: %w", page, err)
		}
		log.Debugf("page %d: %d stars", page, len(p.Stars))

		for _, star := range p.Stars {
			params := model.NewBookmarkParams{
				Title: star.Name,
				URL:   star.URL,
				Notes: star.Description,
			}
			if criteria.PreserveTimestamps {
				params.DateAdded = star.StarredAt
			}
			if _, err := c.Add.Execute(ctx, params); err != nil {
				return Result{}, err
			}
			imported++
		}

		if p.Next == "" {
			break
		}
		next = p.Next
	}

	log.Info("imported stars", logger.Int("count", imported))
	return OK(Count(imported)), nil
}

// ImportHTML adds every link of a Netscape bookmark file, keeping its
// ADD_DATE and description.
type ImportHTML struct {
	Add AddBookmark
	Log logger.Logger
}

func (c ImportHTML) Execute(ctx context.Context, path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	entries, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		return Result{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, e := range entries {
		_, err := c.Add.Execute(ctx, model.NewBookmarkParams{
			Title:     e.Title,
			URL:       e.URL,
			Notes:     e.Notes,
			DateAdded: e.AddedAt,
		})
		if err != nil {
			return Result{}, err
		}
	}

	orNop(c.Log).Info("imported bookmark file", logger.String("path", path), logger.Int("count", len(entries)))
	return OK(Count(len(entries))), nil
}

// ExportHTML writes all bookmarks, oldest first, as a Netscape bookmark
// file. An empty path means exporter.DefaultExportPath.
type ExportHTML struct {
	Store storage.Gateway
	Log   logger.Logger
}

func (c ExportHTML) Execute(ctx context.Context, path string) (Result, error) {
	if path == "" {
		var err error
		path, err = exporter.DefaultExportPath()
		if err != nil {
			return Result{}, fmt.Errorf("default export path: %w", err)
		}
	}

	bookmarks, err := selectBookmarks(ctx, c.Store, model.FieldDateAdded)
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Result{}, fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(exporter.ExportHTML(bookmarks)), 0644); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", path, err)
	}

	orNop(c.Log).Info("exported bookmarks", logger.String("path", path), logger.Int("count", len(bookmarks)))
	return OK(Message(path)), nil
}

func orNop(l logger.Logger) logger.Logger {
	if l == nil {
		return logger.Nop()
	}
	return l
}
