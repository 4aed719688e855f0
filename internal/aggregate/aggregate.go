package aggregate

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/ainewshub/ai-news-hub/internal/cache"
	"github.com/ainewshub/ai-news-hub/internal/classify"
	"github.com/ainewshub/ai-news-hub/internal/content"
	"github.com/ainewshub/ai-news-hub/internal/model"
)

// Cache keys for the composite results. Each entry carries its own
// TTL independently; refreshing one never invalidates another.
const (
	keyAllNews       = "all_news"
	keyTrendingNews  = "trending_news"
	keyImportantNews = "important_news"
	keyAllVideos     = "all_videos"
	keySearchPrefix  = "search_"
	keyContentPrefix = "article_content_"
)

// trendingFallbackCount is how many of the most recent articles get
// promoted when nothing classified as trending.
const trendingFallbackCount = 10

// ArticleSource is one adapter producing normalized articles. Fetch
// is expected to contain its own per-feed fault isolation; an error
// here means the whole adapter produced nothing.
type ArticleSource interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Article, error)
}

// VideoSource produces the merged video corpus.
type VideoSource interface {
	Fetch(ctx context.Context) ([]model.Video, error)
}

// ContentFetcher extracts readable text from an article page.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*content.Result, error)
}

// SearchResult is a combined news+video search hit list.
type SearchResult struct {
	Query  string          `json:"query"`
	News   []model.Article `json:"news"`
	Videos []model.Video   `json:"videos"`
}

// Service runs the aggregation pipeline: concurrent multi-source
// fetch, merge in source order, dedup, sort, classify, and a
// TTL-cached view layer on top. All heavy operations are memoized in
// the injected cache.
type Service struct {
	articleSources []ArticleSource
	videoSource    VideoSource
	contentFetcher ContentFetcher
	cache          *cache.Cache
}

// NewService wires a Service. The order of articleSources defines the
// merge order and therefore which duplicate survives deduplication.
func NewService(articleSources []ArticleSource, videoSource VideoSource, contentFetcher ContentFetcher, c *cache.Cache) *Service {
	return &Service{
		articleSources: articleSources,
		videoSource:    videoSource,
		contentFetcher: contentFetcher,
		cache:          c,
	}
}

// AllNews returns the full merged, deduplicated, sorted and classified
// article list, rebuilding it on cache miss.
func (s *Service) AllNews(ctx context.Context) ([]model.Article, error) {
	if cached, ok := s.cache.Get(keyAllNews); ok {
		return cached.([]model.Article), nil
	}

	articles := s.gather(ctx)
	articles = Deduplicate(articles)
	sortArticles(articles)

	// Classification sees the full deduplicated set for the
	// cross-source repetition rule.
	for i := range articles {
		result := classify.Classify(articles[i], articles)
		articles[i].IsTrending = result.Trending
		articles[i].IsImportant = result.Important
	}

	s.cache.Set(keyAllNews, articles)
	return articles, nil
}

// gather fans out over all article sources concurrently and merges
// their contributions preserving source order. A failed source is
// logged and contributes nothing.
func (s *Service) gather(ctx context.Context) []model.Article {
	type result struct {
		index    int
		articles []model.Article
		err      error
	}

	results := make(chan result, len(s.articleSources))
	for i, src := range s.articleSources {
		go func(index int, src ArticleSource) {
			articles, err := src.Fetch(ctx)
			results <- result{index: index, articles: articles, err: err}
		}(i, src)
	}

	bySource := make([][]model.Article, len(s.articleSources))
	for range s.articleSources {
		res := <-results
		if res.err != nil {
			log.Printf("aggregate: source %s failed: %v", s.articleSources[res.index].Name(), res.err)
			continue
		}
		bySource[res.index] = res.articles
	}

	var merged []model.Article
	for _, articles := range bySource {
		merged = append(merged, articles...)
	}
	return merged
}

// sortArticles orders by publish date descending. Equal timestamps
// fall back to the title so ordering stays deterministic.
func sortArticles(articles []model.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		if !articles[i].PublishedAt.Equal(articles[j].PublishedAt) {
			return articles[i].PublishedAt.After(articles[j].PublishedAt)
		}
		return articles[i].Title < articles[j].Title
	})
}

// Trending returns the trending view. If nothing classified as
// trending but the corpus is non-empty, the most recent articles are
// promoted so the view is never empty when data exists.
func (s *Service) Trending(ctx context.Context) ([]model.Article, error) {
	if cached, ok := s.cache.Get(keyTrendingNews); ok {
		return cached.([]model.Article), nil
	}

	all, err := s.AllNews(ctx)
	if err != nil {
		return nil, err
	}

	var trending []model.Article
	for _, a := range all {
		if a.IsTrending {
			trending = append(trending, a)
		}
	}

	if len(trending) == 0 && len(all) > 0 {
		n := trendingFallbackCount
		if n > len(all) {
			n = len(all)
		}
		// Copy before flagging; the all_news entry stays untouched.
		trending = make([]model.Article, n)
		copy(trending, all[:n])
		for i := range trending {
			trending[i].IsTrending = true
		}
	}

	s.cache.Set(keyTrendingNews, trending)
	return trending, nil
}

// Important returns the important view.
func (s *Service) Important(ctx context.Context) ([]model.Article, error) {
	if cached, ok := s.cache.Get(keyImportantNews); ok {
		return cached.([]model.Article), nil
	}

	all, err := s.AllNews(ctx)
	if err != nil {
		return nil, err
	}

	var important []model.Article
	for _, a := range all {
		if a.IsImportant {
			important = append(important, a)
		}
	}

	s.cache.Set(keyImportantNews, important)
	return important, nil
}

// categoryKeywords drive the video category filter. An unknown
// category matches nothing.
var categoryKeywords = map[string][]string{
	"talks":    {"talk", "conference", "presentation"},
	"demos":    {"demo", "demonstration", "showcase"},
	"research": {"research", "paper", "study"},
}

// Videos returns the merged video corpus, optionally filtered by
// category keyword match against title and description. Only the
// unfiltered corpus is cached.
func (s *Service) Videos(ctx context.Context, category string) ([]model.Video, error) {
	videos, err := s.allVideos(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return videos, nil
	}

	keywords := categoryKeywords[strings.ToLower(category)]
	var filtered []model.Video
	for _, v := range videos {
		haystack := strings.ToLower(v.Title) + " " + strings.ToLower(v.Description)
		for _, kw := range keywords {
			if strings.Contains(haystack, kw) {
				filtered = append(filtered, v)
				break
			}
		}
	}
	return filtered, nil
}

func (s *Service) allVideos(ctx context.Context) ([]model.Video, error) {
	if cached, ok := s.cache.Get(keyAllVideos); ok {
		return cached.([]model.Video), nil
	}

	videos, err := s.videoSource.Fetch(ctx)
	if err != nil {
		log.Printf("aggregate: video source failed: %v", err)
		videos = nil
	}

	s.cache.Set(keyAllVideos, videos)
	return videos, nil
}

// Search performs a case-insensitive substring search over news
// (title, description, source) and videos (title, description,
// channel). Each literal query string is cached independently.
func (s *Service) Search(ctx context.Context, query string) (*SearchResult, error) {
	key := keySearchPrefix + query
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*SearchResult), nil
	}

	q := strings.ToLower(query)

	news, err := s.AllNews(ctx)
	if err != nil {
		return nil, err
	}
	var newsHits []model.Article
	for _, a := range news {
		if strings.Contains(strings.ToLower(a.Title), q) ||
			strings.Contains(strings.ToLower(a.Description), q) ||
			strings.Contains(strings.ToLower(a.Source), q) {
			newsHits = append(newsHits, a)
		}
	}

	videos, err := s.allVideos(ctx)
	if err != nil {
		return nil, err
	}
	var videoHits []model.Video
	for _, v := range videos {
		if strings.Contains(strings.ToLower(v.Title), q) ||
			strings.Contains(strings.ToLower(v.Description), q) ||
			strings.Contains(strings.ToLower(v.Channel), q) {
			videoHits = append(videoHits, v)
		}
	}

	result := &SearchResult{Query: query, News: newsHits, Videos: videoHits}
	s.cache.Set(key, result)
	return result, nil
}

// ArticleContent fetches the readable text of one article URL,
// memoized per literal URL.
func (s *Service) ArticleContent(ctx context.Context, url string) (*content.Result, error) {
	key := keyContentPrefix + url
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*content.Result), nil
	}

	result, err := s.contentFetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, result)
	return result, nil
}
