package model

import "time"

// Article is a normalized news record from any article source.
// PublishedAt is always resolved; unparseable upstream dates degrade
// to the fetch time. Image is never empty — adapters fall back to a
// deterministic placeholder.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
	Source      string    `json:"source"`
	Author      string    `json:"author"`
	Image       string    `json:"image"`
	IsTrending  bool      `json:"is_trending"`
	IsImportant bool      `json:"is_important"`
}

// Video is a normalized record from the video platform. Identity is
// the platform-assigned ID.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Channel     string    `json:"channel"`
	PublishedAt time.Time `json:"published_at"`
	ChannelID   string    `json:"channel_id"`
}
