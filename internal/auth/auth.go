package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrNoCredentials is returned when neither the call nor the configuration
// carries Zendesk credentials
var ErrNoCredentials = errors.New("no authentication token found, please authenticate with Zendesk first")

type contextKey string

const tokenKey contextKey = "zendeskToken"

// WithToken attaches a per-call access token, supplied by the caller's own
// OAuth flow, to the context. It takes precedence over configured credentials.
func WithToken(ctx context.Context, accessToken string) context.Context {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey, accessToken)
}

// TokenFromContext returns the per-call access token, if any
func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey).(string)
	return tok, ok && tok != ""
}

// Config selects where configured credentials come from
type Config struct {
	Subdomain    string
	AccessToken  string // static OAuth access token
	ClientID     string // client credentials grant
	ClientSecret string
	Scopes       []string
	TokenURL     string // overrides https://{subdomain}.zendesk.com/oauth/tokens
	HTTPClient   *http.Client
}

// Provider resolves the bearer token for a Zendesk call
type Provider struct {
	source oauth2.TokenSource
	kind   string
}

// NewProvider builds a Provider. A static access token wins over client
// credentials; with neither, only per-call tokens will work.
func NewProvider(cfg Config) *Provider {
	switch {
	case cfg.AccessToken != "":
		return &Provider{
			source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"}),
			kind:   "static",
		}
	case cfg.ClientID != "" && cfg.ClientSecret != "":
		tokenURL := cfg.TokenURL
		if tokenURL == "" && cfg.Subdomain != "" {
			tokenURL = fmt.Sprintf("https://%s.zendesk.com/oauth/tokens", cfg.Subdomain)
		}
		if tokenURL == "" {
			return &Provider{kind: "none"}
		}
		scopes := cfg.Scopes
		if len(scopes) == 0 {
			scopes = []string{"read"}
		}
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
			Scopes:       scopes,
		}
		ctx := context.Background()
		if cfg.HTTPClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.HTTPClient)
		}
		// clientcredentials caches the token until it expires
		return &Provider{source: cc.TokenSource(ctx), kind: "client_credentials"}
	default:
		return &Provider{kind: "none"}
	}
}

// Kind names the configured credential source ("static", "client_credentials", "none")
func (p *Provider) Kind() string {
	return p.kind
}

// Token returns the per-call token when present, otherwise the configured one
func (p *Provider) Token(ctx context.Context) (*oauth2.Token, error) {
	if tok, ok := TokenFromContext(ctx); ok {
		return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
	}
	if p == nil || p.source == nil {
		return nil, ErrNoCredentials
	}
	tok, err := p.source.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain zendesk token: %w", err)
	}
	return tok, nil
}
