package zendesk

import (
	"net/url"
	"strconv"
	"time"
)

// Validate checks the request without touching the network
func (r SearchRequest) Validate() error {
	if r.Query == "" && r.LabelNames == "" && r.Category == 0 && r.Section == 0 {
		return &ValidationError{
			Field:   "query",
			Message: "at least one of query, category, section, or label_names must be provided",
		}
	}
	if r.PerPage < 0 || r.PerPage > MaxPerPage {
		return &ValidationError{
			Field:   "per_page",
			Value:   strconv.Itoa(r.PerPage),
			Message: "must be between 1 and 100",
		}
	}
	if r.MaxPages < 0 {
		return &ValidationError{
			Field:   "max_pages",
			Value:   strconv.Itoa(r.MaxPages),
			Message: "must be at least 1 if specified",
		}
	}
	if r.SortBy != "" && r.SortBy != SortByCreatedAt {
		return &ValidationError{
			Field:   "sort_by",
			Value:   r.SortBy,
			Message: "must be 'created_at'",
		}
	}
	if r.SortOrder != "" && r.SortOrder != SortAsc && r.SortOrder != SortDesc {
		return &ValidationError{
			Field:   "sort_order",
			Value:   r.SortOrder,
			Message: "must be 'asc' or 'desc'",
		}
	}
	return nil
}

// Values translates the populated fields into query parameters. Unset fields
// are left out entirely.
func (r SearchRequest) Values() url.Values {
	v := url.Values{}

	perPage := r.PerPage
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	v.Set("per_page", strconv.Itoa(min(perPage, MaxPerPage)))

	setString(v, "query", r.Query)
	setString(v, "label_names", r.LabelNames)
	setID(v, "category", r.Category)
	setID(v, "section", r.Section)

	setDate(v, "created_after", r.CreatedAfter)
	setDate(v, "created_before", r.CreatedBefore)
	setDate(v, "created_at", r.CreatedAt)
	setDate(v, "updated_after", r.UpdatedAfter)
	setDate(v, "updated_before", r.UpdatedBefore)
	setDate(v, "updated_at", r.UpdatedAt)

	setString(v, "sort_by", r.SortBy)
	setString(v, "sort_order", r.SortOrder)
	return v
}

// ParseDate parses a YYYY-MM-DD date; field names the parameter for the error.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil || len(value) != len(dateLayout) {
		return time.Time{}, &ValidationError{
			Field:   field,
			Value:   value,
			Message: "please use YYYY-MM-DD format (e.g. 2024-01-15)",
		}
	}
	return t, nil
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setID(v url.Values, key string, id int64) {
	if id != 0 {
		v.Set(key, strconv.FormatInt(id, 10))
	}
}

func setDate(v url.Values, key string, t time.Time) {
	if !t.IsZero() {
		v.Set(key, t.Format(dateLayout))
	}
}
