package rss

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/ainewshub/ai-news-hub/internal/config"
	"github.com/ainewshub/ai-news-hub/internal/model"
	"github.com/ainewshub/ai-news-hub/internal/textutil"
)

// maxItemsPerFeed caps each feed's contribution to bound total work.
const maxItemsPerFeed = 20

// Client fetches and normalizes articles from a fixed set of RSS feeds.
type Client struct {
	feeds      []config.Source
	parser     *gofeed.Parser
	httpClient *http.Client
	userAgent  string
}

// NewClient creates an RSS client for the given feeds.
func NewClient(feeds []config.Source, timeout time.Duration) *Client {
	return &Client{
		feeds:      feeds,
		parser:     gofeed.NewParser(),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "ai-news-hub/1.0",
	}
}

// Name identifies this adapter in logs.
func (c *Client) Name() string { return "rss" }

// Fetch retrieves all configured feeds concurrently. A failing feed is
// logged and contributes an empty list; the merge preserves the
// configured feed order.
func (c *Client) Fetch(ctx context.Context) ([]model.Article, error) {
	type result struct {
		index    int
		articles []model.Article
		err      error
	}

	results := make(chan result, len(c.feeds))
	for i, feed := range c.feeds {
		go func(index int, src config.Source) {
			articles, err := c.fetchFeed(ctx, src)
			results <- result{index: index, articles: articles, err: err}
		}(i, feed)
	}

	byFeed := make([][]model.Article, len(c.feeds))
	for range c.feeds {
		res := <-results
		if res.err != nil {
			log.Printf("rss: fetching %s: %v", c.feeds[res.index].Name, res.err)
			continue
		}
		byFeed[res.index] = res.articles
	}

	var all []model.Article
	for _, articles := range byFeed {
		all = append(all, articles...)
	}
	return all, nil
}

// fetchFeed retrieves and normalizes a single feed.
func (c *Client) fetchFeed(ctx context.Context, src config.Source) ([]model.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	articles := make([]model.Article, 0, maxItemsPerFeed)
	for _, item := range feed.Items {
		if len(articles) >= maxItemsPerFeed {
			break
		}

		title := textutil.CleanText(item.Title)
		if title == "" {
			continue
		}

		rawDescription := item.Description
		if rawDescription == "" {
			rawDescription = item.Content
		}

		articles = append(articles, model.Article{
			Title:       title,
			Description: textutil.CleanText(rawDescription),
			Link:        item.Link,
			PublishedAt: itemPublished(item),
			Source:      src.Name,
			Author:      itemAuthor(item),
			Image:       resolveImage(item, feed, title, rawDescription),
		})
	}
	return articles, nil
}

// itemPublished resolves an item timestamp, preferring the dates the
// parser already understood and falling back to the textual chain.
func itemPublished(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	if item.Published != "" {
		return textutil.ParseDate(item.Published)
	}
	return time.Now()
}

func itemAuthor(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}

// resolveImage picks an article image, in priority order: item-level
// image, media extension content/thumbnail, image enclosure, an image
// reference embedded in the description HTML, the feed-level image,
// and finally a deterministic placeholder keyed on the title.
func resolveImage(item *gofeed.Item, feed *gofeed.Feed, title, rawDescription string) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, ext := range media[name] {
				url := ext.Attrs["url"]
				if url == "" {
					continue
				}
				if t := ext.Attrs["type"]; t != "" && !strings.HasPrefix(t, "image") {
					continue
				}
				return url
			}
		}
	}

	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image") && enc.URL != "" {
			return enc.URL
		}
	}

	if url := textutil.ImageFromHTML(rawDescription); url != "" {
		return url
	}

	if feed.Image != nil && feed.Image.URL != "" {
		return feed.Image.URL
	}

	return textutil.PlaceholderImage(title)
}
