package classify

import (
	"strings"
	"time"

	"github.com/ainewshub/ai-news-hub/internal/model"
	"github.com/ainewshub/ai-news-hub/internal/textutil"
)

// trendingWindow is how far back an article may have been published
// and still count as trending on recency alone.
const trendingWindow = 24 * time.Hour

// viralKeywords mark an article as trending regardless of age.
var viralKeywords = []string{
	"breaking", "exclusive", "major", "huge", "revolutionary",
	"new", "latest", "update", "announcement",
}

// importantKeywords mark an article as important.
var importantKeywords = []string{
	"model release", "agi", "breakthrough", "announcement",
	"research", "ai bill", "safety", "gpt-", "claude", "gemini",
}

// majorLabs is the source allow-list for the importance flag, matched
// case-insensitively as substrings of the source name.
var majorLabs = []string{"openai", "deepmind", "anthropic", "google research"}

// Result carries the derived flags for one article.
type Result struct {
	Trending  bool
	Important bool
}

// Classify tags an article as trending and/or important, given the
// full deduplicated corpus as context for cross-source repetition.
// It never fails: any degenerate input yields both flags false.
func Classify(article model.Article, corpus []model.Article) Result {
	content := strings.ToLower(article.Title) + " " + strings.ToLower(article.Description)

	return Result{
		Trending:  isTrending(article, content, corpus),
		Important: isImportant(article, content),
	}
}

func isTrending(article model.Article, content string, corpus []model.Article) bool {
	// Published within the last 24 hours. A zero timestamp never
	// happens upstream (date parsing falls back to fetch time) but
	// degrades safely here anyway.
	if !article.PublishedAt.IsZero() {
		age := time.Since(article.PublishedAt)
		if age >= 0 && age <= trendingWindow {
			return true
		}
	}

	// Appears from two or more sources: exact normalized-title match
	// counted across the whole corpus.
	normalized := textutil.NormalizeTitle(article.Title)
	if normalized != "" {
		count := 0
		for _, other := range corpus {
			if textutil.NormalizeTitle(other.Title) == normalized {
				count++
			}
		}
		if count > 1 {
			return true
		}
	}

	for _, kw := range viralKeywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

func isImportant(article model.Article, content string) bool {
	for _, kw := range importantKeywords {
		if strings.Contains(content, kw) {
			return true
		}
	}

	source := strings.ToLower(article.Source)
	for _, lab := range majorLabs {
		if strings.Contains(source, lab) {
			return true
		}
	}
	return false
}
