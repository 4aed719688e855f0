package content

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// minContentLength is the threshold below which a selector match is
// considered too thin and the extraction keeps looking.
const minContentLength = 200

// contentSelectors are tried in order against the document.
var contentSelectors = []string{
	"article",
	"[role=\"article\"]",
	".article-content",
	".post-content",
	".entry-content",
	".content",
	"main article",
	".article-body",
	".post-body",
}

var titleSelectors = []string{"h1", "title", ".article-title", ".post-title", ".entry-title"}

// strippedElements never contribute to extracted text.
const strippedElements = "script, style, nav, aside, footer, header, iframe"

var (
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
	spaceRunsPattern  = regexp.MustCompile(` {2,}`)
)

// Result is the best-effort extraction of one article page.
type Result struct {
	Content string `json:"content"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

// Extractor fetches article pages and pulls out their readable text.
type Extractor struct {
	httpClient *http.Client
}

// NewExtractor creates an extractor with the given request timeout.
// Redirects are followed.
func NewExtractor(timeout time.Duration) *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the page at url and extracts its main text and
// title. Extraction is best effort: an inaccessible or unparseable
// page is an error for the caller to degrade on.
func (e *Extractor) Fetch(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	return &Result{
		Content: extractContent(doc),
		Title:   extractTitle(doc),
		URL:     url,
	}, nil
}

func extractContent(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := selectionText(sel)
		if len(text) >= minContentLength {
			return text
		}
	}

	// Nothing substantial matched; fall back to the whole body.
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return ""
	}
	return selectionText(body)
}

// selectionText renders a selection to text with boilerplate elements
// removed and whitespace normalized.
func selectionText(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find(strippedElements).Remove()

	var parts []string
	clone.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote").Each(func(i int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})

	text := strings.Join(parts, "\n\n")
	if text == "" {
		text = strings.TrimSpace(clone.Text())
	}

	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	text = spaceRunsPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		if title := strings.TrimSpace(doc.Find(selector).First().Text()); title != "" {
			return title
		}
	}
	return ""
}
