package aggregate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ainewshub/ai-news-hub/internal/cache"
	"github.com/ainewshub/ai-news-hub/internal/content"
	"github.com/ainewshub/ai-news-hub/internal/model"
)

type stubSource struct {
	name     string
	articles []model.Article
	err      error
	calls    int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context) ([]model.Article, error) {
	s.calls++
	return s.articles, s.err
}

type stubVideos struct {
	videos []model.Video
	err    error
	calls  int
}

func (s *stubVideos) Fetch(ctx context.Context) ([]model.Video, error) {
	s.calls++
	return s.videos, s.err
}

type stubContent struct {
	result *content.Result
	err    error
	calls  int
}

func (s *stubContent) Fetch(ctx context.Context, url string) (*content.Result, error) {
	s.calls++
	return s.result, s.err
}

func newTestService(sources []ArticleSource, videos VideoSource, fetcher ContentFetcher) *Service {
	if videos == nil {
		videos = &stubVideos{}
	}
	if fetcher == nil {
		fetcher = &stubContent{}
	}
	return NewService(sources, videos, fetcher, cache.New(time.Hour))
}

func TestAllNewsMergesAndSorts(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	rssSource := &stubSource{name: "rss", articles: []model.Article{
		{Title: "Older detailed story about chip manufacturing", PublishedAt: base.Add(-2 * time.Hour), Source: "Feed A"},
	}}
	apiSource := &stubSource{name: "newsapi", articles: []model.Article{
		{Title: "Fresher detailed story about chip packaging", PublishedAt: base, Source: "Wire B"},
	}}

	svc := newTestService([]ArticleSource{rssSource, apiSource}, nil, nil)

	articles, err := svc.AllNews(context.Background())
	if err != nil {
		t.Fatalf("AllNews returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}
	if articles[0].Source != "Wire B" {
		t.Errorf("Expected newest article first, got %q", articles[0].Source)
	}
}

func TestAllNewsFailingSourceIsolated(t *testing.T) {
	failing := &stubSource{name: "broken", err: errors.New("connection refused")}
	healthy := &stubSource{name: "healthy", articles: []model.Article{
		{Title: "Survivor story about the remaining adapter", PublishedAt: time.Now(), Source: "Feed"},
	}}

	svc := newTestService([]ArticleSource{failing, healthy}, nil, nil)

	articles, err := svc.AllNews(context.Background())
	if err != nil {
		t.Fatalf("AllNews must not fail when one source fails: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected the healthy source's article, got %d articles", len(articles))
	}
}

func TestAllNewsDedupRespectsMergeOrder(t *testing.T) {
	when := time.Now().Add(-time.Hour)
	rssSource := &stubSource{name: "rss", articles: []model.Article{
		{Title: "Foundation model benchmark results published", PublishedAt: when, Source: "RSS Feed"},
	}}
	apiSource := &stubSource{name: "newsapi", articles: []model.Article{
		{Title: "Foundation model benchmark results published today", PublishedAt: when, Source: "API Wire"},
	}}

	svc := newTestService([]ArticleSource{rssSource, apiSource}, nil, nil)

	articles, err := svc.AllNews(context.Background())
	if err != nil {
		t.Fatalf("AllNews returned error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected duplicates collapsed to 1, got %d", len(articles))
	}
	if articles[0].Source != "RSS Feed" {
		t.Errorf("Expected RSS-first merge order to decide the survivor, got %q", articles[0].Source)
	}
}

func TestAllNewsCached(t *testing.T) {
	source := &stubSource{name: "s", articles: []model.Article{
		{Title: "Cached story about inference pricing", PublishedAt: time.Now(), Source: "Feed"},
	}}
	svc := newTestService([]ArticleSource{source}, nil, nil)

	if _, err := svc.AllNews(context.Background()); err != nil {
		t.Fatalf("first AllNews: %v", err)
	}
	if _, err := svc.AllNews(context.Background()); err != nil {
		t.Fatalf("second AllNews: %v", err)
	}

	if source.calls != 1 {
		t.Errorf("Expected a single upstream fetch while cached, got %d", source.calls)
	}
}

func TestTrendingFallbackPromotion(t *testing.T) {
	// Old articles, unique titles, no viral keywords: nothing
	// classifies as trending.
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	var articles []model.Article
	for i := 0; i < 12; i++ {
		articles = append(articles, model.Article{
			Title:       fmt.Sprintf("Archive retrospective piece number %d for the record", i),
			PublishedAt: base.Add(-time.Duration(i) * time.Hour),
			Source:      "Feed",
		})
	}
	source := &stubSource{name: "s", articles: articles}
	svc := newTestService([]ArticleSource{source}, nil, nil)

	trending, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending returned error: %v", err)
	}
	if len(trending) != trendingFallbackCount {
		t.Fatalf("Expected exactly %d promoted articles, got %d", trendingFallbackCount, len(trending))
	}
	for _, a := range trending {
		if !a.IsTrending {
			t.Errorf("Promoted article %q not flagged trending", a.Title)
		}
	}
	// The most recent article leads the promoted set.
	if trending[0].Title != "Archive retrospective piece number 0 for the record" {
		t.Errorf("Expected most recent article first, got %q", trending[0].Title)
	}

	// Promotion must not leak into the cached full list.
	all, err := svc.AllNews(context.Background())
	if err != nil {
		t.Fatalf("AllNews returned error: %v", err)
	}
	for _, a := range all {
		if a.IsTrending {
			t.Errorf("all_news entry %q mutated by trending promotion", a.Title)
		}
	}
}

func TestTrendingFiltersFlagged(t *testing.T) {
	source := &stubSource{name: "s", articles: []model.Article{
		{Title: "Recent piece inside the trending window", PublishedAt: time.Now().Add(-time.Hour), Source: "Feed"},
		{Title: "Stale archive piece outside every rule", PublishedAt: time.Now().Add(-60 * time.Hour), Source: "Feed"},
	}}
	svc := newTestService([]ArticleSource{source}, nil, nil)

	trending, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending returned error: %v", err)
	}
	if len(trending) != 1 {
		t.Fatalf("Expected 1 trending article, got %d", len(trending))
	}
	if trending[0].Title != "Recent piece inside the trending window" {
		t.Errorf("Unexpected trending article %q", trending[0].Title)
	}
}

func TestImportantView(t *testing.T) {
	source := &stubSource{name: "s", articles: []model.Article{
		{Title: "Lab publishes alignment safety roadmap", PublishedAt: time.Now(), Source: "Feed"},
		{Title: "Stadium concert sells out in minutes", PublishedAt: time.Now(), Source: "Feed"},
	}}
	svc := newTestService([]ArticleSource{source}, nil, nil)

	important, err := svc.Important(context.Background())
	if err != nil {
		t.Fatalf("Important returned error: %v", err)
	}
	if len(important) != 1 {
		t.Fatalf("Expected 1 important article, got %d", len(important))
	}
	if important[0].Title != "Lab publishes alignment safety roadmap" {
		t.Errorf("Unexpected important article %q", important[0].Title)
	}
}

func TestVideosCategoryFilter(t *testing.T) {
	videos := &stubVideos{videos: []model.Video{
		{ID: "1", Title: "Conference talk on scaling laws", PublishedAt: time.Now()},
		{ID: "2", Title: "Live demo of a coding agent", PublishedAt: time.Now()},
		{ID: "3", Title: "Music video", PublishedAt: time.Now()},
	}}
	svc := newTestService(nil, videos, nil)
	ctx := context.Background()

	all, err := svc.Videos(ctx, "")
	if err != nil {
		t.Fatalf("Videos returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 videos unfiltered, got %d", len(all))
	}

	talks, _ := svc.Videos(ctx, "talks")
	if len(talks) != 1 || talks[0].ID != "1" {
		t.Errorf("Expected only the talk, got %+v", talks)
	}

	demos, _ := svc.Videos(ctx, "Demos")
	if len(demos) != 1 || demos[0].ID != "2" {
		t.Errorf("Expected case-insensitive category match, got %+v", demos)
	}

	unknown, _ := svc.Videos(ctx, "cooking")
	if len(unknown) != 0 {
		t.Errorf("Expected unknown category to match nothing, got %d", len(unknown))
	}

	if videos.calls != 1 {
		t.Errorf("Expected the video corpus fetched once through the cache, got %d calls", videos.calls)
	}
}

func TestSearch(t *testing.T) {
	source := &stubSource{name: "s", articles: []model.Article{
		{Title: "Quantum computing milestone reached", Description: "", Source: "Feed", PublishedAt: time.Now()},
		{Title: "Gardening tips for spring", Description: "includes quantum-dot lamps", Source: "Feed", PublishedAt: time.Now()},
		{Title: "Unrelated piece", Description: "", Source: "Quantum Daily", PublishedAt: time.Now()},
	}}
	videos := &stubVideos{videos: []model.Video{
		{ID: "1", Title: "Quantum explainer", Channel: "EduTube", PublishedAt: time.Now()},
		{ID: "2", Title: "Cat compilation", Channel: "Cats", PublishedAt: time.Now()},
	}}
	svc := newTestService([]ArticleSource{source}, videos, nil)

	result, err := svc.Search(context.Background(), "QUANTUM")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if result.Query != "QUANTUM" {
		t.Errorf("Expected literal query echoed, got %q", result.Query)
	}
	if len(result.News) != 3 {
		t.Errorf("Expected matches in title, description and source (3), got %d", len(result.News))
	}
	if len(result.Videos) != 1 || result.Videos[0].ID != "1" {
		t.Errorf("Expected 1 video match, got %+v", result.Videos)
	}
}

func TestArticleContentCachedPerURL(t *testing.T) {
	fetcher := &stubContent{result: &content.Result{Content: "body text", Title: "T", URL: "http://example.com/a"}}
	svc := newTestService(nil, nil, fetcher)
	ctx := context.Background()

	first, err := svc.ArticleContent(ctx, "http://example.com/a")
	if err != nil {
		t.Fatalf("ArticleContent returned error: %v", err)
	}
	second, err := svc.ArticleContent(ctx, "http://example.com/a")
	if err != nil {
		t.Fatalf("ArticleContent (cached) returned error: %v", err)
	}

	if first.Content != "body text" || second.Content != "body text" {
		t.Error("Unexpected content result")
	}
	if fetcher.calls != 1 {
		t.Errorf("Expected a single extraction per URL, got %d", fetcher.calls)
	}
}

func TestArticleContentError(t *testing.T) {
	fetcher := &stubContent{err: errors.New("paywalled")}
	svc := newTestService(nil, nil, fetcher)

	if _, err := svc.ArticleContent(context.Background(), "http://example.com/x"); err == nil {
		t.Error("Expected extraction error to propagate for the boundary to degrade on")
	}
}
