package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestNextLink(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "empty header",
			header: "",
			want:   "",
		},
		{
			name:   "next and last",
			header: `<https://api.github.com/user/1/starred?page=2>; rel="next", <https://api.github.com/user/1/starred?page=5>; rel="last"`,
			want:   "https://api.github.com/user/1/starred?page=2",
		},
		{
			name:   "last page has only prev and first",
			header: `<https://x/?page=4>; rel="prev", <https://x/?page=1>; rel="first"`,
			want:   "",
		},
		{
			name:   "unquoted rel",
			header: `<https://x/?page=3>; rel=next`,
			want:   "https://x/?page=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, nextLink(tt.header), tt.want)
		})
	}
}

func TestClient_StarredFollowsPages(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != starMediaType {
			t.Errorf("expected Accept %q, got %q", starMediaType, got)
		}
		if r.URL.Path != "/users/octo/starred" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/users/octo/starred?per_page=100&page=2>; rel="next"`, srv.URL))
			fmt.Fprint(w, `[{"starred_at":"2020-01-02T03:04:05Z","repo":{"name":"bark","html_url":"https://github.com/o/bark","description":"bookmarks"}}]`)
		case "2":
			fmt.Fprint(w, `[{"starred_at":"2021-06-07T08:09:10Z","repo":{"name":"nodesc","html_url":"https://github.com/o/nodesc","description":null}}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(ctx, ClientParams{BaseURL: srv.URL})

	first, err := c.Starred(ctx, "octo", "")
	assert.NilError(t, err)
	assert.Equal(t, len(first.Stars), 1)
	assert.Equal(t, first.Stars[0].Name, "bark")
	assert.Equal(t, first.Stars[0].URL, "https://github.com/o/bark")
	assert.Equal(t, first.Stars[0].Description, "bookmarks")
	assert.Assert(t, first.Stars[0].StarredAt.Equal(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.Assert(t, first.Next != "")

	second, err := c.Starred(ctx, "octo", first.Next)
	assert.NilError(t, err)
	assert.Equal(t, second.Stars[0].Description, "")
	assert.Equal(t, second.Next, "")
}

func TestClient_SendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected bearer token, got %q", got)
		}
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(ctx, ClientParams{BaseURL: srv.URL, Token: "secret"})

	page, err := c.Starred(ctx, "octo", "")
	assert.NilError(t, err)
	assert.Equal(t, len(page.Stars), 0)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(ctx, ClientParams{BaseURL: srv.URL})

	_, err := c.Starred(ctx, "nobody", "")
	assert.Assert(t, errors.Is(err, ErrRequest))
	assert.ErrorContains(t, err, "status 404")
}

func TestClient_MalformedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not":"a list"}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(ctx, ClientParams{BaseURL: srv.URL})

	_, err := c.Starred(ctx, "octo", "")
	assert.ErrorContains(t, err, "decode stars")
}
