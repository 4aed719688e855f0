package aggregate

import (
	"strings"

	"github.com/ainewshub/ai-news-hub/internal/model"
	"github.com/ainewshub/ai-news-hub/internal/textutil"
)

// minDedupLength is the normalized-title length both sides of a
// comparison must exceed before substring containment counts as a
// duplicate. Short generic headlines would otherwise collapse into
// each other.
const minDedupLength = 20

// Deduplicate collapses near-duplicate articles by normalized-title
// similarity: substring containment in either direction, applied only
// when both titles are longer than minDedupLength. The first-seen
// article wins, so the input's merge order decides which duplicate's
// metadata survives. O(n²) over titles; the corpus is bounded to a
// few hundred items per cycle.
func Deduplicate(articles []model.Article) []model.Article {
	var seenTitles []string
	unique := make([]model.Article, 0, len(articles))

	for _, article := range articles {
		normalized := textutil.NormalizeTitle(article.Title)

		duplicate := false
		if len(normalized) > minDedupLength {
			for _, seen := range seenTitles {
				if len(seen) <= minDedupLength {
					continue
				}
				if strings.Contains(seen, normalized) || strings.Contains(normalized, seen) {
					duplicate = true
					break
				}
			}
		}

		if !duplicate {
			seenTitles = append(seenTitles, normalized)
			unique = append(unique, article)
		}
	}
	return unique
}
