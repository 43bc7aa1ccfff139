package zendesk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const searchPath = "/api/v2/help_center/articles/search"

// maxErrorBody bounds how much of a failed response is kept in the error
const maxErrorBody = 4096

// TokenProvider supplies the OAuth2 bearer token for a call
type TokenProvider interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// Config configures a Client
type Config struct {
	Subdomain     string
	BaseURL       string // overrides https://{subdomain}.zendesk.com
	Credentials   TokenProvider
	MaxBodyLength int // 0 disables truncation
	HTTPClient    *http.Client
}

// Client is a Zendesk Help Center article search client
type Client struct {
	subdomain     string
	baseURL       string
	credentials   TokenProvider
	maxBodyLength int
	client        *http.Client
}

// NewClient creates a new Help Center search client
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		subdomain:     strings.TrimSpace(cfg.Subdomain),
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		credentials:   cfg.Credentials,
		maxBodyLength: cfg.MaxBodyLength,
		client:        httpClient,
	}
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return "zendesk"
}

// Search runs an article search. Pages are fetched one after another; any
// failure discards the pages already collected.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	pageLimit := 1
	if req.AllPages {
		pageLimit = req.MaxPages
	}

	log.Printf("[Zendesk] Searching articles: %q (all_pages=%t, max_pages=%d)", req.Query, req.AllPages, req.MaxPages)

	result := &SearchResult{Articles: []Article{}}
	pageURL := endpoint + "?" + req.Values().Encode()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := c.fetchPage(ctx, pageURL, token)
		if err != nil {
			return nil, err
		}

		result.PagesFetched++
		result.Count = page.Count
		for _, a := range page.Results {
			result.Articles = append(result.Articles, normalizeArticle(a, req.IncludeBody, c.maxBodyLength))
		}

		result.HasMore = page.NextPage != nil && *page.NextPage != ""
		if !result.HasMore {
			break
		}
		if pageLimit > 0 && result.PagesFetched >= pageLimit {
			if req.AllPages {
				log.Printf("[Zendesk] Reached max_pages limit (%d)", pageLimit)
			}
			break
		}
		if len(result.Articles) >= MaxTotalResults {
			log.Printf("[Zendesk] Reached maximum total results limit (%d)", MaxTotalResults)
			result.Warnings = append(result.Warnings, Warning{
				Type:       "ResultLimitReached",
				Message:    fmt.Sprintf("Result limit of %d reached. Use more specific filters to narrow your search.", MaxTotalResults),
				Suggestion: "Try adding filters like category, section, or date ranges to get more targeted results.",
			})
			break
		}

		pageURL, err = resolveNextPage(endpoint, *page.NextPage)
		if err != nil {
			return nil, err
		}
	}

	log.Printf("[Zendesk] Found %d articles across %d page(s) (total reported: %d)", len(result.Articles), result.PagesFetched, result.Count)
	return result, nil
}

func (c *Client) endpoint() (string, error) {
	if c.baseURL != "" {
		return c.baseURL + searchPath, nil
	}
	if c.subdomain == "" {
		return "", &ConfigurationError{
			Setting: "ZENDESK_SUBDOMAIN",
			Message: "Zendesk subdomain not configured",
		}
	}
	return "https://" + c.subdomain + ".zendesk.com" + searchPath, nil
}

func (c *Client) token(ctx context.Context) (*oauth2.Token, error) {
	if c.credentials == nil {
		return nil, &ConfigurationError{Setting: "credentials", Message: "no OAuth2 credentials configured"}
	}
	token, err := c.credentials.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			remoteErr := &RemoteServiceError{
				StatusCode: retrieveErr.Response.StatusCode,
				Status:     retrieveErr.Response.Status,
				Body:       string(retrieveErr.Body),
			}
			if retrieveErr.Response.Request != nil {
				remoteErr.URL = retrieveErr.Response.Request.URL.String()
			}
			return nil, remoteErr
		}
		return nil, &ConfigurationError{Setting: "credentials", Message: err.Error()}
	}
	if token == nil || token.AccessToken == "" {
		return nil, &ConfigurationError{Setting: "credentials", Message: "empty access token"}
	}
	return token, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string, token *oauth2.Token) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	token.SetAuthHeader(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[Zendesk] Response status: %d", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &RemoteServiceError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(bodyBytes)),
			URL:        pageURL,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	var page searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &page, nil
}

// resolveNextPage resolves a next_page link against the search endpoint and
// refuses links that leave the Zendesk host.
func resolveNextPage(endpoint, next string) (string, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to parse endpoint: %w", err)
	}
	ref, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("failed to parse next_page %q: %w", next, err)
	}
	resolved := base.ResolveReference(ref)
	if resolved.Host != base.Host {
		return "", fmt.Errorf("next_page %q points outside %s", next, base.Host)
	}
	return resolved.String(), nil
}

func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
