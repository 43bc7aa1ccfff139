package fx

import (
	"fmt"
	"log"

	"github.com/amityadav/helpcenter/internal/adk/tools"
	"github.com/amityadav/helpcenter/internal/auth"
	"github.com/amityadav/helpcenter/internal/config"
	"github.com/amityadav/helpcenter/internal/zendesk"
	"go.uber.org/fx"
)

// ============================================================================
// FX MODULES - Group related providers together
// ============================================================================

// ConfigModule provides application configuration
var ConfigModule = fx.Module("config",
	fx.Provide(config.Load),
)

// AuthModule provides Zendesk OAuth2 credentials
var AuthModule = fx.Module("auth",
	fx.Provide(NewCredentials),
)

// ZendeskModule provides the Help Center search client
var ZendeskModule = fx.Module("zendesk",
	fx.Provide(
		NewZendeskClient,
		NewSearcher,
	),
)

// ToolsModule provides the agent tool registry
var ToolsModule = fx.Module("tools",
	fx.Provide(NewToolRegistry),
)

// ============================================================================
// PROVIDER FUNCTIONS - Constructors that FX will call automatically
// ============================================================================

// NewCredentials creates the OAuth2 token provider
func NewCredentials(cfg config.Config) *auth.Provider {
	p := auth.NewProvider(auth.Config{
		Subdomain:    cfg.ZendeskSubdomain,
		AccessToken:  cfg.ZendeskAccessToken,
		ClientID:     cfg.ZendeskClientID,
		ClientSecret: cfg.ZendeskClientSecret,
		Scopes:       cfg.ZendeskScopes,
	})
	if p.Kind() == "none" {
		log.Printf("[FX] Credentials: none configured, per-call tokens required")
	} else {
		log.Printf("[FX] Credentials initialized (%s)", p.Kind())
	}
	return p
}

// NewZendeskClient creates the Help Center search client
func NewZendeskClient(cfg config.Config, creds *auth.Provider) *zendesk.Client {
	if cfg.ZendeskSubdomain == "" {
		log.Printf("[FX] WARNING: ZENDESK_SUBDOMAIN not set, searches will fail with a configuration error")
	}
	c := zendesk.NewClient(zendesk.Config{
		Subdomain:     cfg.ZendeskSubdomain,
		Credentials:   creds,
		MaxBodyLength: cfg.ZendeskMaxBodyLength,
	})
	log.Printf("[FX] ZendeskClient initialized (subdomain=%q)", cfg.ZendeskSubdomain)
	return c
}

// NewSearcher exposes the client behind the tools.Searcher interface
func NewSearcher(c *zendesk.Client) tools.Searcher {
	return c
}

// NewToolRegistry creates the registry with every tool this service exposes
func NewToolRegistry(s tools.Searcher) (*tools.Registry, error) {
	registry := tools.NewRegistry()

	searchTool, err := tools.NewSearchArticlesTool(s)
	if err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	registry.Register(searchTool)

	log.Printf("[FX] ToolRegistry: %d tool(s) registered", registry.Count())
	return registry, nil
}
