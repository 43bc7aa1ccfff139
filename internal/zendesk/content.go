package zendesk

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TruncationMarker is appended to bodies cut down to the configured length
const TruncationMarker = " ... [truncated]"

// CleanHTML strips markup from an article body and collapses whitespace
func CleanHTML(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		// Not parseable as HTML: fall back to the raw text
		return strings.Join(strings.Fields(body), " ")
	}
	doc.Find("script, style, noscript").Remove()

	var parts []string
	for _, n := range doc.Nodes {
		parts = collectText(n, parts)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func collectText(n *html.Node, parts []string) []string {
	if n.Type == html.TextNode {
		return append(parts, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = collectText(c, parts)
	}
	return parts
}

// Truncate shortens text to maxLen characters, marker included. A maxLen of
// zero or less disables truncation.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}
	cut := maxLen - len([]rune(TruncationMarker))
	if cut <= 0 {
		return TruncationMarker
	}
	return string(runes[:cut]) + TruncationMarker
}

// normalizeArticle converts a wire article; the body is dropped unless requested
func normalizeArticle(a apiArticle, includeBody bool, maxBodyLength int) Article {
	out := Article{
		ID:         a.ID,
		Title:      a.Title,
		URL:        a.HTMLURL,
		Snippet:    CleanHTML(a.Snippet),
		Locale:     a.Locale,
		AuthorID:   a.AuthorID,
		LabelNames: a.LabelNames,
		CategoryID: a.CategoryID,
		SectionID:  a.SectionID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if out.LabelNames == nil {
		out.LabelNames = []string{}
	}
	if includeBody {
		out.Body = Truncate(CleanHTML(a.Body), maxBodyLength)
	}
	return out
}
