package zendesk

import "time"

const (
	// MaxPerPage is the largest page size the search endpoint accepts
	MaxPerPage = 100
	// DefaultPerPage is used when a request leaves PerPage unset
	DefaultPerPage = 10
	// MaxTotalResults caps an all-pages fetch
	MaxTotalResults = 1000
	// DefaultMaxBodyLength is the body truncation length used when none is configured
	DefaultMaxBodyLength = 500

	// SortByCreatedAt is the only sort field the article search endpoint supports
	SortByCreatedAt = "created_at"
	SortAsc         = "asc"
	SortDesc        = "desc"

	dateLayout = "2006-01-02"
)

// SearchRequest describes one article search. Zero values mean "unset" and are
// never sent to the API.
type SearchRequest struct {
	Query      string
	LabelNames string // comma-separated, parsed by Zendesk
	Category   int64
	Section    int64

	CreatedAfter  time.Time
	CreatedBefore time.Time
	CreatedAt     time.Time
	UpdatedAfter  time.Time
	UpdatedBefore time.Time
	UpdatedAt     time.Time

	SortBy    string
	SortOrder string

	PerPage     int  // 1..100, 0 means DefaultPerPage
	AllPages    bool // follow next_page links
	MaxPages    int  // only with AllPages, 0 means no limit
	IncludeBody bool
}

// Article is a normalized Help Center article
type Article struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Body       string    `json:"body,omitempty"`
	Snippet    string    `json:"snippet,omitempty"`
	Locale     string    `json:"locale,omitempty"`
	AuthorID   int64     `json:"author_id,omitempty"`
	LabelNames []string  `json:"label_names"`
	CategoryID int64     `json:"category_id,omitempty"`
	SectionID  int64     `json:"section_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Warning flags a condition the caller should know about, such as a truncated
// result set.
type Warning struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// SearchResult aggregates every page fetched for a request
type SearchResult struct {
	Articles     []Article `json:"articles"`
	Count        int       `json:"count"` // total reported by Zendesk
	PagesFetched int       `json:"pages_fetched"`
	HasMore      bool      `json:"has_more"`
	Warnings     []Warning `json:"warnings,omitempty"`
}

// --- Wire types for the search endpoint (NOT exported) ---

type searchResponse struct {
	Results   []apiArticle `json:"results"`
	Count     int          `json:"count"`
	NextPage  *string      `json:"next_page"`
	Page      int          `json:"page"`
	PageCount int          `json:"page_count"`
	PerPage   int          `json:"per_page"`
}

type apiArticle struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	HTMLURL    string    `json:"html_url"`
	Body       string    `json:"body"`
	Snippet    string    `json:"snippet"`
	Locale     string    `json:"locale"`
	AuthorID   int64     `json:"author_id"`
	LabelNames []string  `json:"label_names"`
	CategoryID int64     `json:"category_id"`
	SectionID  int64     `json:"section_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
