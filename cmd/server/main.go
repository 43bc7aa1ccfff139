package main

import (
	"log"

	appfx "github.com/amityadav/helpcenter/internal/fx"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// fx resolves dependencies, runs OnStart/OnStop hooks and shuts down
	// gracefully on SIGINT/SIGTERM
	app := fx.New(
		appfx.ConfigModule,  // Provides: config.Config
		appfx.AuthModule,    // Provides: *auth.Provider
		appfx.ZendeskModule, // Provides: *zendesk.Client, tools.Searcher
		appfx.ToolsModule,   // Provides: *tools.Registry
		appfx.ServerModule,  // Starts the HTTP tool server

		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		}),
	)

	app.Run()
}
