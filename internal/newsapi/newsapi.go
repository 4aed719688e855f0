package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/ainewshub/ai-news-hub/internal/model"
	"github.com/ainewshub/ai-news-hub/internal/textutil"
)

const (
	defaultNewsAPIBaseURL = "https://newsapi.org/v2/everything"
	defaultBingBaseURL    = "https://api.bing.microsoft.com/v7.0/news/search"

	newsAPIQuery = "artificial intelligence OR AI OR machine learning"
	bingQuery    = "artificial intelligence AI"
	pageSize     = 50
)

// Client fetches articles from the optional news API providers.
// A provider with no configured key is a no-op returning an empty
// list, never an error.
type Client struct {
	newsAPIKey string
	bingAPIKey string
	httpClient *http.Client

	// Overridable for tests.
	NewsAPIBaseURL string
	BingBaseURL    string
}

// NewClient creates a news API client. Either or both keys may be
// empty.
func NewClient(newsAPIKey, bingAPIKey string, timeout time.Duration) *Client {
	return &Client{
		newsAPIKey:     newsAPIKey,
		bingAPIKey:     bingAPIKey,
		httpClient:     &http.Client{Timeout: timeout},
		NewsAPIBaseURL: defaultNewsAPIBaseURL,
		BingBaseURL:    defaultBingBaseURL,
	}
}

// Name identifies this adapter in logs.
func (c *Client) Name() string { return "newsapi" }

// Fetch queries both providers concurrently and merges their results,
// NewsAPI contribution first. A failing provider contributes an empty
// list.
func (c *Client) Fetch(ctx context.Context) ([]model.Article, error) {
	type result struct {
		index    int
		articles []model.Article
		err      error
	}

	tasks := []struct {
		name  string
		fetch func(context.Context) ([]model.Article, error)
	}{
		{"NewsAPI", c.fetchNewsAPI},
		{"Bing News", c.fetchBing},
	}

	results := make(chan result, len(tasks))
	for i, task := range tasks {
		go func(index int, fetch func(context.Context) ([]model.Article, error)) {
			articles, err := fetch(ctx)
			results <- result{index: index, articles: articles, err: err}
		}(i, task.fetch)
	}

	byProvider := make([][]model.Article, len(tasks))
	for range tasks {
		res := <-results
		if res.err != nil {
			log.Printf("newsapi: fetching %s: %v", tasks[res.index].name, res.err)
			continue
		}
		byProvider[res.index] = res.articles
	}

	var all []model.Article
	for _, articles := range byProvider {
		all = append(all, articles...)
	}
	return all, nil
}

// newsAPIResponse is the subset of the NewsAPI payload we consume.
type newsAPIResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Author      string `json:"author"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (c *Client) fetchNewsAPI(ctx context.Context) ([]model.Article, error) {
	if c.newsAPIKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", newsAPIQuery)
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("pageSize", fmt.Sprint(pageSize))
	params.Set("apiKey", c.newsAPIKey)

	var payload newsAPIResponse
	if err := c.getJSON(ctx, c.NewsAPIBaseURL+"?"+params.Encode(), nil, &payload); err != nil {
		return nil, err
	}

	articles := make([]model.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		title := textutil.CleanText(item.Title)
		if title == "" {
			continue
		}

		source := item.Source.Name
		if source == "" {
			source = "NewsAPI"
		}
		image := item.URLToImage
		if image == "" {
			image = textutil.PlaceholderImage(item.Title)
		}

		articles = append(articles, model.Article{
			Title:       title,
			Description: textutil.CleanText(item.Description),
			Link:        item.URL,
			PublishedAt: textutil.ParseDate(item.PublishedAt),
			Source:      source,
			Author:      item.Author,
			Image:       image,
		})
	}
	return articles, nil
}

// bingResponse is the subset of the Bing News Search payload we consume.
type bingResponse struct {
	Value []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Image       struct {
			Thumbnail struct {
				ContentURL string `json:"contentUrl"`
			} `json:"thumbnail"`
		} `json:"image"`
		DatePublished string `json:"datePublished"`
		Provider      []struct {
			Name string `json:"name"`
		} `json:"provider"`
	} `json:"value"`
}

func (c *Client) fetchBing(ctx context.Context) ([]model.Article, error) {
	if c.bingAPIKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", bingQuery)
	params.Set("count", fmt.Sprint(pageSize))
	params.Set("freshness", "Day")

	headers := map[string]string{"Ocp-Apim-Subscription-Key": c.bingAPIKey}

	var payload bingResponse
	if err := c.getJSON(ctx, c.BingBaseURL+"?"+params.Encode(), headers, &payload); err != nil {
		return nil, err
	}

	articles := make([]model.Article, 0, len(payload.Value))
	for _, item := range payload.Value {
		title := textutil.CleanText(item.Name)
		if title == "" {
			continue
		}

		source := "Bing News"
		if len(item.Provider) > 0 && item.Provider[0].Name != "" {
			source = item.Provider[0].Name
		}
		image := item.Image.Thumbnail.ContentURL
		if image == "" {
			image = textutil.PlaceholderImage(item.Name)
		}

		articles = append(articles, model.Article{
			Title:       title,
			Description: textutil.CleanText(item.Description),
			Link:        item.URL,
			PublishedAt: textutil.ParseDate(item.DatePublished),
			Source:      source,
			Image:       image,
		})
	}
	return articles, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
