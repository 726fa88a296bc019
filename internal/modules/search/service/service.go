package search

import (
	"encoding/json"
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"sukamaju.desa.id/portal/internal/entity"
)

const newsIndex = "news"

type NewsHit struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	ImageURL  string `json:"image_url,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type SearchService interface {
	IndexNews(news *entity.News) error
	DeleteNews(id string) error
	SearchNews(query string, limit int64) ([]NewsHit, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	sortableAttrs := []string{"created_at"}
	if _, err := s.client.Index(newsIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update news sortable attributes: %v", err)
	}
}

func (s *searchService) cleanContentForIndex(content string) string {
	// Replace block tags with spaces to prevent text merging
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexNews(news *entity.News) error {
	if !news.Published {
		return s.DeleteNews(news.ID.String())
	}

	clean := s.cleanContentForIndex(news.Content)
	excerpt := clean
	if len(excerpt) > 200 {
		excerpt = excerpt[:200]
	}

	doc := map[string]interface{}{
		"id":         news.ID.String(),
		"title":      news.Title,
		"slug":       news.Slug,
		"content":    clean,
		"excerpt":    excerpt,
		"created_at": news.CreatedAt.Unix(),
	}
	if news.ImageURL != nil {
		doc["image_url"] = *news.ImageURL
	}

	primaryKey := "id"
	_, err := s.client.Index(newsIndex).AddDocuments([]map[string]interface{}{doc}, &primaryKey)
	return err
}

func (s *searchService) DeleteNews(id string) error {
	_, err := s.client.Index(newsIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchNews(query string, limit int64) ([]NewsHit, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	resp, err := s.client.Index(newsIndex).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
		Sort:  []string{"created_at:desc"},
	})
	if err != nil {
		return nil, err
	}

	hits := make([]NewsHit, 0, len(resp.Hits))
	for _, raw := range resp.Hits {
		encoded, err := json.Marshal(raw)
		if err != nil {
			continue
		}
		var hit NewsHit
		if err := json.Unmarshal(encoded, &hit); err != nil {
			continue
		}
		hits = append(hits, hit)
	}

	return hits, nil
}
