package fx

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/amityadav/helpcenter/internal/adk/tools"
	"github.com/amityadav/helpcenter/internal/config"
	"github.com/amityadav/helpcenter/internal/server"
	"go.uber.org/fx"
)

// ServerModule provides the HTTP tool server
var ServerModule = fx.Module("server",
	fx.Provide(NewHTTPServer),
	fx.Invoke(StartServer),
)

// NewHTTPServer creates the tool server with its handler chain
func NewHTTPServer(cfg config.Config, searcher tools.Searcher, registry *tools.Registry) *http.Server {
	if cfg.ToolJWTSecret == "" {
		log.Printf("[FX] WARNING: TOOL_JWT_SECRET not set, tool endpoints are unauthenticated")
	}
	handler := server.NewHandler(
		server.Services{Searcher: searcher, Tools: registry},
		server.Options{JWTSecret: cfg.ToolJWTSecret},
	)
	log.Printf("[FX] HTTP Server created")
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// StartServer starts the HTTP server with lifecycle management
func StartServer(lc fx.Lifecycle, srv *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}

			go func() {
				log.Printf("[FX] HTTP Server listening on %s", lis.Addr())
				if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("[FX] HTTP Server error: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Printf("[FX] Shutting down HTTP server...")
			return srv.Shutdown(ctx)
		},
	})
}
