package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

const (
	perPage = 100
	// starMediaType makes the API wrap each repo with its starred_at time.
	starMediaType = "application/vnd.github.star+json"
)

var ErrRequest = errors.New("GitHub request failed")

// Star is one starred repository.
type Star struct {
	Name        string
	URL         string
	Description string
	StarredAt   time.Time
}

// Page is one page of stars. Next is empty on the last page.
type Page struct {
	Stars []Star
	Next  string
}

// Client fetches starred repositories page by page.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientParams holds parameters for creating a new Client.
type ClientParams struct {
	BaseURL string // optional, DefaultBaseURL if empty
	Token   string // optional, unauthenticated if empty
	Timeout time.Duration
}

// NewClient creates a Client. A token raises the API rate limit; public
// stars are readable without one.
func NewClient(ctx context.Context, params ClientParams) *Client {
	baseURL := strings.TrimSuffix(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := params.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{}
	if params.Token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: params.Token}))
	}
	httpClient.Timeout = timeout

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type apiStar struct {
	StarredAt time.Time `json:"starred_at"`
	Repo      struct {
		Name        string  `json:"name"`
		HTMLURL     string  `json:"html_url"`
		Description *string `json:"description"`
	} `json:"repo"`
}

// Starred fetches one page of user's stars. An empty pageURL requests the
// first page; later pages use the Next link of the previous one.
func (c *Client) Starred(ctx context.Context, user, pageURL string) (Page, error) {
	if pageURL == "" {
		pageURL = fmt.Sprintf("%s/users/%s/starred?per_page=%d", c.baseURL, url.PathEscape(user), perPage)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", starMediaType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Page{}, fmt.Errorf("%w: status %d: %s", ErrRequest, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []apiStar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Page{}, fmt.Errorf("decode stars: %w", err)
	}

	page := Page{
		Stars: make([]Star, len(raw)),
		Next:  nextLink(resp.Header.Get("Link")),
	}
	for i, s := range raw {
		star := Star{
			Name:      s.Repo.Name,
			URL:       s.Repo.HTMLURL,
			StarredAt: s.StarredAt,
		}
		if s.Repo.Description != nil {
			star.Description = *s.Repo.Description
		}
		page.Stars[i] = star
	}

	return page, nil
}

// nextLink returns the rel="next" target of an RFC 8288 Link header.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range segments[1:] {
			param = strings.TrimSpace(param)
			if param == `rel="next"` || param == "rel=next" {
				return target[1 : len(target)-1]
			}
		}
	}
	return ""
}
