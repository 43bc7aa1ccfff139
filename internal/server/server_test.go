package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amityadav/helpcenter/internal/adk/tools"
	"github.com/amityadav/helpcenter/internal/auth"
	"github.com/amityadav/helpcenter/internal/zendesk"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	req   zendesk.SearchRequest
	token string
	calls int
	res   *zendesk.SearchResult
	err   error
	panic bool
}

func (s *stubSearcher) Search(ctx context.Context, req zendesk.SearchRequest) (*zendesk.SearchResult, error) {
	s.calls++
	s.req = req
	s.token, _ = auth.TokenFromContext(ctx)
	if s.panic {
		panic("boom")
	}
	return s.res, s.err
}

func newServer(t *testing.T, s *stubSearcher, opts Options) *httptest.Server {
	t.Helper()
	reg := tools.NewRegistry()
	searchTool, err := tools.NewSearchArticlesTool(s)
	require.NoError(t, err)
	reg.Register(searchTool)

	srv := httptest.NewServer(NewHandler(Services{Searcher: s, Tools: reg}, opts))
	t.Cleanup(srv.Close)
	return srv
}

func postSearch(t *testing.T, srv *httptest.Server, body string, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/tools/search_articles", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var out errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signToken(t *testing.T, secret, subject string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject, "exp": exp.Unix()})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestHealth(t *testing.T) {
	srv := newServer(t, &stubSearcher{}, Options{JWTSecret: "secret"})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListTools(t *testing.T) {
	srv := newServer(t, &stubSearcher{}, Options{})

	resp, err := http.Get(srv.URL + "/api/tools")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []toolInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "search_articles", out[0].Name)
	assert.NotEmpty(t, out[0].Description)
}

func TestSearchArticlesSuccess(t *testing.T) {
	s := &stubSearcher{res: &zendesk.SearchResult{
		Articles:     []zendesk.Article{{ID: 1, Title: "How to reset your password", LabelNames: []string{}}},
		Count:        1,
		PagesFetched: 1,
	}}
	srv := newServer(t, s, Options{})

	resp := postSearch(t, srv, `{"query":"password reset","per_page":10,"created_after":"2024-01-01","include_body":true}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out zendesk.SearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1, out.PagesFetched)
	require.Len(t, out.Articles, 1)
	assert.Equal(t, "How to reset your password", out.Articles[0].Title)

	assert.Equal(t, "password reset", s.req.Query)
	assert.Equal(t, 10, s.req.PerPage)
	assert.True(t, s.req.IncludeBody)
	assert.Equal(t, "2024-01-01", s.req.CreatedAfter.Format("2006-01-02"))
}

func TestSearchArticlesBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind string
	}{
		{"malformed json", `{"query":`, "InvalidRequest"},
		{"unknown field", `{"qeury":"typo"}`, "InvalidRequest"},
		{"bad date", `{"query":"x","created_at":"15/01/2024"}`, "ValidationError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &stubSearcher{}
			srv := newServer(t, s, Options{})

			resp := postSearch(t, srv, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.kind, decodeError(t, resp).Error)
			assert.Equal(t, 0, s.calls)
		})
	}
}

func TestSearchArticlesErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"validation", &zendesk.ValidationError{Field: "per_page", Value: "101", Message: "must be between 1 and 100"}, http.StatusBadRequest, "ValidationError"},
		{"configuration", &zendesk.ConfigurationError{Setting: "ZENDESK_SUBDOMAIN", Message: "missing"}, http.StatusServiceUnavailable, "ConfigurationError"},
		{"unauthorized", &zendesk.RemoteServiceError{StatusCode: 401, Body: "Couldn't authenticate you"}, http.StatusUnauthorized, "RemoteServiceError"},
		{"upstream failure", &zendesk.RemoteServiceError{StatusCode: 500, Body: "oops"}, http.StatusBadGateway, "RemoteServiceError"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "TimeoutError"},
		{"other", errors.New("decode failed"), http.StatusInternalServerError, "SearchError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, &stubSearcher{err: tt.err}, Options{})

			resp := postSearch(t, srv, `{"query":"x"}`, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.kind, decodeError(t, resp).Error)
		})
	}
}

func TestSearchArticlesRateLimited(t *testing.T) {
	srv := newServer(t, &stubSearcher{err: &zendesk.RemoteServiceError{StatusCode: 429, RetryAfter: 30 * time.Second}}, Options{})

	resp := postSearch(t, srv, `{"query":"x"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get("Retry-After"))
	assert.Equal(t, 429, decodeError(t, resp).Status)
}

func TestZendeskTokenHeaderIsForwarded(t *testing.T) {
	s := &stubSearcher{res: &zendesk.SearchResult{}}
	srv := newServer(t, s, Options{})

	resp := postSearch(t, srv, `{"query":"x"}`, map[string]string{ZendeskTokenHeader: "caller-token"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "caller-token", s.token)
}

func TestJWTAuth(t *testing.T) {
	const secret = "tool-secret"

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other", "agent-1", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, secret, "agent-1", time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"valid", "Bearer " + signToken(t, secret, "agent-1", time.Now().Add(time.Hour)), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &stubSearcher{res: &zendesk.SearchResult{}}
			srv := newServer(t, s, Options{JWTSecret: secret})

			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			resp := postSearch(t, srv, `{"query":"x"}`, headers)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				assert.Equal(t, 0, s.calls)
			}
		})
	}
}

func TestVerifyReturnsSubject(t *testing.T) {
	m := NewAuthMiddleware([]byte("s"))
	sub, err := m.Verify(signToken(t, "s", "agent-7", time.Now().Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, "agent-7", sub)
}

func TestCORSPreflight(t *testing.T) {
	srv := newServer(t, &stubSearcher{}, Options{JWTSecret: "secret"})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/tools/search_articles", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://agent.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestPanicRecovery(t *testing.T) {
	srv := newServer(t, &stubSearcher{panic: true}, Options{})

	resp := postSearch(t, srv, `{"query":"x"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "InternalError", decodeError(t, resp).Error)
}
