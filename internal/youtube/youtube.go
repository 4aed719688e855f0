package youtube

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/ainewshub/ai-news-hub/internal/model"
	"github.com/ainewshub/ai-news-hub/internal/textutil"
)

const (
	// maxVideos bounds the merged corpus.
	maxVideos = 50
	// resultsPerTask caps each channel or query fetch.
	resultsPerTask = 5
)

// channels are fetched in addition to search queries. Bounded to
// three to stay inside API quota.
var channels = []struct {
	ID   string
	Name string
}{
	{ID: "UCr0ail1RdXdusqeqco44loA", Name: "OpenAI"},
	{ID: "UC0e3QhIYukixgh5VVpKHH9Q", Name: "Google Research"},
	{ID: "UC0e3QhIYukixgh5VVpKHH9Q", Name: "DeepMind"},
}

var searchQueries = []string{
	"artificial intelligence research",
	"AI breakthrough",
	"machine learning conference",
}

// Client fetches AI-related videos from the YouTube Data API. Without
// an API key it serves a small fixed mock corpus so downstream
// consumers always see videos.
type Client struct {
	apiKey string
}

// NewClient creates a video client. An empty key enables mock mode.
func NewClient(apiKey string) *Client {
	return &Client{apiKey: apiKey}
}

// Fetch retrieves videos from all configured channels and search
// queries concurrently, dedupes them by video id (first seen wins),
// sorts by publish date descending and caps the result. A failing
// task contributes an empty list.
func (c *Client) Fetch(ctx context.Context) ([]model.Video, error) {
	if c.apiKey == "" {
		return Merge([][]model.Video{MockVideos()}), nil
	}

	svc, err := yt.NewService(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}

	type task struct {
		label     string
		channelID string
		query     string
	}
	var tasks []task
	for _, ch := range channels {
		tasks = append(tasks, task{label: "channel " + ch.Name, channelID: ch.ID})
	}
	for _, q := range searchQueries {
		tasks = append(tasks, task{label: "query " + q, query: q})
	}

	type result struct {
		index  int
		videos []model.Video
		err    error
	}
	results := make(chan result, len(tasks))
	for i, tk := range tasks {
		go func(index int, tk task) {
			videos, err := c.search(ctx, svc, tk.channelID, tk.query)
			results <- result{index: index, videos: videos, err: err}
		}(i, tk)
	}

	byTask := make([][]model.Video, len(tasks))
	for range tasks {
		res := <-results
		if res.err != nil {
			log.Printf("youtube: fetching %s: %v", tasks[res.index].label, res.err)
			continue
		}
		byTask[res.index] = res.videos
	}

	return Merge(byTask), nil
}

func (c *Client) search(ctx context.Context, svc *yt.Service, channelID, query string) ([]model.Video, error) {
	call := svc.Search.List([]string{"snippet"}).
		Type("video").
		Order("date").
		MaxResults(resultsPerTask).
		Context(ctx)
	if channelID != "" {
		call = call.ChannelId(channelID)
	}
	if query != "" {
		call = call.Q(query)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search call: %w", err)
	}

	videos := make([]model.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		id := item.Id.VideoId
		title := item.Snippet.Title
		if id == "" || title == "" {
			continue
		}

		thumbnail := ""
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			thumbnail = item.Snippet.Thumbnails.High.Url
		}

		videos = append(videos, model.Video{
			ID:          id,
			Title:       title,
			Description: item.Snippet.Description,
			Thumbnail:   thumbnail,
			Channel:     item.Snippet.ChannelTitle,
			PublishedAt: textutil.ParseDate(item.Snippet.PublishedAt),
			ChannelID:   item.Snippet.ChannelId,
		})
	}
	return videos, nil
}

// Merge collapses per-task result lists into one corpus: video ids are
// unique (the first occurrence in task order wins), ordering is by
// publish date descending with id as tie-break, and the total is
// capped at maxVideos.
func Merge(lists [][]model.Video) []model.Video {
	seen := make(map[string]bool)
	var merged []model.Video
	for _, list := range lists {
		for _, v := range list {
			if v.ID == "" || seen[v.ID] {
				continue
			}
			seen[v.ID] = true
			merged = append(merged, v)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].PublishedAt.Equal(merged[j].PublishedAt) {
			return merged[i].PublishedAt.After(merged[j].PublishedAt)
		}
		return merged[i].ID < merged[j].ID
	})

	if len(merged) > maxVideos {
		merged = merged[:maxVideos]
	}
	return merged
}

// MockVideos is the fixed fallback corpus served when no API key is
// configured.
func MockVideos() []model.Video {
	now := time.Now()
	return []model.Video{
		{
			ID:          "dQw4w9WgXcQ",
			Title:       "AI Research Breakthrough: Understanding Large Language Models",
			Description: "Exploring the latest advances in AI research and LLM capabilities.",
			Thumbnail:   "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
			Channel:     "OpenAI",
			PublishedAt: now,
			ChannelID:   "UCr0ail1RdXdusqeqco44loA",
		},
		{
			ID:          "jNQXAC9IVRw",
			Title:       "DeepMind: Latest AI Safety Research",
			Description: "DeepMind researchers discuss AI safety and alignment.",
			Thumbnail:   "https://img.youtube.com/vi/jNQXAC9IVRw/maxresdefault.jpg",
			Channel:     "DeepMind",
			PublishedAt: now,
			ChannelID:   "UC0e3QhIYukixgh5VVpKHH9Q",
		},
	}
}
