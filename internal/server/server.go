package server

import (
	"net/http"

	"github.com/amityadav/helpcenter/internal/adk/tools"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// ZendeskTokenHeader carries a per-call Zendesk OAuth access token
const ZendeskTokenHeader = "X-Zendesk-Access-Token"

// Services groups the dependencies of the tool endpoints
type Services struct {
	Searcher tools.Searcher
	Tools    *tools.Registry
}

// Options configures the tool server
type Options struct {
	JWTSecret      string   // when set, /api/* requires a bearer JWT
	AllowedOrigins []string // defaults to all origins
}

// NewHandler creates the tool server handler: routes, auth, CORS and panic recovery
func NewHandler(svc Services, opts Options) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(NewAuthMiddleware([]byte(opts.JWTSecret)).Handler)
	api.Use(zendeskTokenMiddleware)
	api.HandleFunc("/tools", handleListTools(svc.Tools)).Methods(http.MethodGet)
	api.HandleFunc("/tools/"+tools.SearchArticlesToolName, handleSearchArticles(svc.Searcher)).Methods(http.MethodPost)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", ZendeskTokenHeader},
		MaxAge:           1728000,
	})

	return CreateRecoveryHandler(c.Handler(r))
}
