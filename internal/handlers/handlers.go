package handlers

import (
	"log"
	"net/http"

	"github.com/ainewshub/ai-news-hub/internal/model"
)

// allNewsHandler returns the merged, deduplicated article list.
// Source failures degrade to an empty list with an error field so
// frontends never see a hard failure for a transient feed outage.
func (s *Server) allNewsHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := s.service.AllNews(r.Context())
	s.writeArticles(w, articles, err)
}

func (s *Server) trendingNewsHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := s.service.Trending(r.Context())
	s.writeArticles(w, articles, err)
}

func (s *Server) importantNewsHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := s.service.Important(r.Context())
	s.writeArticles(w, articles, err)
}

func (s *Server) writeArticles(w http.ResponseWriter, articles []model.Article, err error) {
	if err != nil {
		log.Printf("handlers: fetching articles: %v", err)
		writeJSON(w, map[string]interface{}{
			"articles": []model.Article{},
			"count":    0,
			"error":    err.Error(),
		})
		return
	}
	if articles == nil {
		articles = []model.Article{}
	}
	writeJSON(w, map[string]interface{}{
		"articles": articles,
		"count":    len(articles),
	})
}

func (s *Server) articleContentHandler(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "url parameter is required", http.StatusBadRequest)
		return
	}

	result, err := s.service.ArticleContent(r.Context(), url)
	if err != nil {
		log.Printf("handlers: extracting content from %s: %v", url, err)
		writeJSON(w, map[string]interface{}{
			"content": nil,
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, result)
}

func (s *Server) videosHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	videos, err := s.service.Videos(r.Context(), category)
	if err != nil {
		log.Printf("handlers: fetching videos: %v", err)
		writeJSON(w, map[string]interface{}{
			"videos": []model.Video{},
			"count":  0,
			"error":  err.Error(),
		})
		return
	}
	if videos == nil {
		videos = []model.Video{}
	}
	writeJSON(w, map[string]interface{}{
		"videos": videos,
		"count":  len(videos),
	})
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}

	result, err := s.service.Search(r.Context(), query)
	if err != nil {
		log.Printf("handlers: searching for %q: %v", query, err)
		writeJSON(w, map[string]interface{}{
			"query":        query,
			"news":         []model.Article{},
			"videos":       []model.Video{},
			"news_count":   0,
			"videos_count": 0,
			"error":        err.Error(),
		})
		return
	}
	news := result.News
	if news == nil {
		news = []model.Article{}
	}
	videos := result.Videos
	if videos == nil {
		videos = []model.Video{}
	}
	writeJSON(w, map[string]interface{}{
		"query":        result.Query,
		"news":         news,
		"videos":       videos,
		"news_count":   len(news),
		"videos_count": len(videos),
	})
}

func (s *Server) cacheStatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.cache.GetStats())
}

func (s *Server) cacheClearHandler(w http.ResponseWriter, r *http.Request) {
	s.cache.Clear()
	writeJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "cache cleared",
	})
}
