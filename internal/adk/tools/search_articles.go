package tools

import (
	"context"
	"fmt"
	"log"

	"github.com/amityadav/helpcenter/internal/zendesk"
	"github.com/amityadav/helpcenter/prompts"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// SearchArticlesToolName is the name agents call the article search by
const SearchArticlesToolName = "search_articles"

// Searcher runs a Help Center article search
type Searcher interface {
	Search(ctx context.Context, req zendesk.SearchRequest) (*zendesk.SearchResult, error)
}

// SearchArticlesArgs are the named parameters of the search_articles tool
type SearchArticlesArgs struct {
	Query         string `json:"query,omitempty" jsonschema:"Search text to match against articles. Quoted phrases match exactly, e.g. \"password reset\""`
	LabelNames    string `json:"label_names,omitempty" jsonschema:"Comma-separated label names (case-insensitive). Article must have at least one matching label. Professional/Enterprise plans only"`
	Category      int64  `json:"category,omitempty" jsonschema:"Filter by category ID"`
	Section       int64  `json:"section,omitempty" jsonschema:"Filter by section ID"`
	CreatedAfter  string `json:"created_after,omitempty" jsonschema:"Articles created after this date (YYYY-MM-DD)"`
	CreatedBefore string `json:"created_before,omitempty" jsonschema:"Articles created before this date (YYYY-MM-DD)"`
	CreatedAt     string `json:"created_at,omitempty" jsonschema:"Articles created on this exact date (YYYY-MM-DD)"`
	UpdatedAfter  string `json:"updated_after,omitempty" jsonschema:"Articles updated after this date (YYYY-MM-DD)"`
	UpdatedBefore string `json:"updated_before,omitempty" jsonschema:"Articles updated before this date (YYYY-MM-DD)"`
	UpdatedAt     string `json:"updated_at,omitempty" jsonschema:"Articles updated on this exact date (YYYY-MM-DD)"`
	SortBy        string `json:"sort_by,omitempty" jsonschema:"Sort by 'created_at'. Defaults to relevance when omitted"`
	SortOrder     string `json:"sort_order,omitempty" jsonschema:"Sort order: 'asc' or 'desc'"`
	PerPage       int    `json:"per_page,omitempty" jsonschema:"Results per page, 1 to 100. Defaults to 10"`
	AllPages      bool   `json:"all_pages,omitempty" jsonschema:"Fetch every available page of results"`
	MaxPages      int    `json:"max_pages,omitempty" jsonschema:"With all_pages, stop after this many pages"`
	IncludeBody   bool   `json:"include_body,omitempty" jsonschema:"Include article bodies, cleaned of HTML and truncated"`
}

// Request converts the tool arguments into a search request, validating dates
func (a SearchArticlesArgs) Request() (zendesk.SearchRequest, error) {
	req := zendesk.SearchRequest{
		Query:       a.Query,
		LabelNames:  a.LabelNames,
		Category:    a.Category,
		Section:     a.Section,
		SortBy:      a.SortBy,
		SortOrder:   a.SortOrder,
		PerPage:     a.PerPage,
		AllPages:    a.AllPages,
		MaxPages:    a.MaxPages,
		IncludeBody: a.IncludeBody,
	}

	var err error
	if req.CreatedAfter, err = zendesk.ParseDate("created_after", a.CreatedAfter); err != nil {
		return req, err
	}
	if req.CreatedBefore, err = zendesk.ParseDate("created_before", a.CreatedBefore); err != nil {
		return req, err
	}
	if req.CreatedAt, err = zendesk.ParseDate("created_at", a.CreatedAt); err != nil {
		return req, err
	}
	if req.UpdatedAfter, err = zendesk.ParseDate("updated_after", a.UpdatedAfter); err != nil {
		return req, err
	}
	if req.UpdatedBefore, err = zendesk.ParseDate("updated_before", a.UpdatedBefore); err != nil {
		return req, err
	}
	if req.UpdatedAt, err = zendesk.ParseDate("updated_at", a.UpdatedAt); err != nil {
		return req, err
	}
	return req, nil
}

// SearchArticles runs the tool logic outside of the agent runtime
func SearchArticles(ctx context.Context, s Searcher, args SearchArticlesArgs) (*zendesk.SearchResult, error) {
	req, err := args.Request()
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, req)
}

// NewSearchArticlesTool creates the search_articles tool
func NewSearchArticlesTool(s Searcher) (tool.Tool, error) {
	handler := func(ctx tool.Context, args SearchArticlesArgs) (zendesk.SearchResult, error) {
		log.Printf("[SearchArticlesTool] Called with query=%q category=%d section=%d labels=%q", args.Query, args.Category, args.Section, args.LabelNames)
		res, err := SearchArticles(ctx, s, args)
		if err != nil {
			log.Printf("[SearchArticlesTool] Search failed: %v", err)
			return zendesk.SearchResult{}, err
		}
		return *res, nil
	}

	t, err := functiontool.New(functiontool.Config{
		Name:        SearchArticlesToolName,
		Description: prompts.ToolSearchArticlesDesc,
	}, handler)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s tool: %w", SearchArticlesToolName, err)
	}
	return t, nil
}
