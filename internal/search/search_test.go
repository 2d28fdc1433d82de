package search

import (
	"testing"

	"github.com/nikbrunner/bark/internal/model"
)

func TestFuzzySearchBookmarks_EmptyQuery(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: 1, Title: "GitHub", URL: "https://github.com"},
	}

	results := FuzzySearchBookmarks(bookmarks, "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_ExactMatch(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: 1, Title: "GitHub", URL: "https://github.com"},
		{ID: 2, Title: "GitLab", URL: "https://gitlab.com"},
	}

	results := FuzzySearchBookmarks(bookmarks, "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark.ID != 1 {
		t.Errorf("expected GitHub, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_FuzzyMatch(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: 1, Title: "TanStack Router", URL: "https://tanstack.com/router"},
		{ID: 2, Title: "React Router", URL: "https://reactrouter.com"},
	}

	// "tanrou" should fuzzy match "TanStack Router"
	results := FuzzySearchBookmarks(bookmarks, "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	// TanStack Router should be first (better match)
	if results[0].Bookmark.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_NoMatch(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: 1, Title: "GitHub", URL: "https://github.com"},
	}

	results := FuzzySearchBookmarks(bookmarks, "zzz")

	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_PointsIntoInput(t *testing.T) {
	bookmarks := []model.Bookmark{
		{ID: 7, Title: "Go Docs", URL: "https://go.dev/doc"},
	}

	results := FuzzySearchBookmarks(bookmarks, "docs")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark != &bookmarks[0] {
		t.Error("expected result to reference the input bookmark")
	}
	if len(results[0].MatchedIndexes) != 4 {
		t.Errorf("expected 4 matched indexes, got %v", results[0].MatchedIndexes)
	}
}
