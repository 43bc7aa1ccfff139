package fx

import (
	"testing"

	"github.com/amityadav/helpcenter/internal/adk/tools"
	"github.com/amityadav/helpcenter/internal/auth"
	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestAppStartsAndStops(t *testing.T) {
	t.Setenv("ZENDESK_SUBDOMAIN", "acme")
	t.Setenv("ZENDESK_ACCESS_TOKEN", "tok")
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")

	var registry *tools.Registry
	var creds *auth.Provider

	app := fxtest.New(t,
		ConfigModule,
		AuthModule,
		ZendeskModule,
		ToolsModule,
		ServerModule,
		fx.Populate(&registry, &creds),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, 1, registry.Count())
	_, ok := registry.Get(tools.SearchArticlesToolName)
	assert.True(t, ok)
	assert.Equal(t, "static", creds.Kind())
}

func TestCredentialsWithoutConfiguration(t *testing.T) {
	t.Setenv("ZENDESK_ACCESS_TOKEN", "")
	t.Setenv("ZENDESK_CLIENT_ID", "")
	t.Setenv("ZENDESK_CLIENT_SECRET", "")

	var creds *auth.Provider
	fxtest.New(t, ConfigModule, AuthModule, fx.Populate(&creds)).RequireStart().RequireStop()
	assert.Equal(t, "none", creds.Kind())
}
