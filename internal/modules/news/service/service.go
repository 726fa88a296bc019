package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/news/dto"
	"sukamaju.desa.id/portal/internal/modules/news/repository"
	search "sukamaju.desa.id/portal/internal/modules/search/service"
	"sukamaju.desa.id/portal/pkg/apperror"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
)

const (
	listCachePrefix = "news:list:"
	listCacheTTL    = 5 * time.Minute
)

type NewsService interface {
	CreateNews(ctx context.Context, authorID uuid.UUID, req dto.CreateNewsRequest) (*entity.News, error)
	GetBySlug(ctx context.Context, slug string) (*entity.News, error)
	GetPublished(ctx context.Context, filter commonDto.NewsFilter) (*dto.PaginatedNewsResponse, error)
	GetAll(ctx context.Context, filter commonDto.NewsFilter) (*dto.PaginatedNewsResponse, error)
	UpdateNews(ctx context.Context, id uuid.UUID, req dto.UpdateNewsRequest) (*entity.News, error)
	DeleteNews(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, limit int64) ([]search.NewsHit, error)
}

type newsService struct {
	repo        repository.NewsRepository
	searchSvc   search.SearchService
	redisClient *redis.Client
	sanitizer   *bluemonday.Policy
}

func NewNewsService(repo repository.NewsRepository, searchSvc search.SearchService, redisClient *redis.Client) NewsService {
	return &newsService{
		repo:        repo,
		searchSvc:   searchSvc,
		redisClient: redisClient,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

func (s *newsService) CreateNews(ctx context.Context, authorID uuid.UUID, req dto.CreateNewsRequest) (*entity.News, error) {
	slug := slugify(req.Title)

	if existing, _ := s.repo.FindBySlug(ctx, slug); existing != nil {
		// Duplicate titles happen; suffix keeps the slug unique.
		slug = fmt.Sprintf("%s-%d", slug, time.Now().Unix())
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	news := &entity.News{
		Title:     req.Title,
		Slug:      slug,
		Content:   s.sanitizer.Sanitize(req.Content),
		ImageURL:  req.ImageURL,
		Published: published,
		AuthorID:  &authorID,
	}

	if err := s.repo.Create(ctx, news); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, news)
	return news, nil
}

func (s *newsService) GetBySlug(ctx context.Context, slug string) (*entity.News, error) {
	news, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if !news.Published {
		return nil, apperror.ErrNotFound
	}

	return news, nil
}

func (s *newsService) GetPublished(ctx context.Context, filter commonDto.NewsFilter) (*dto.PaginatedNewsResponse, error) {
	cacheKey := ""
	if s.redisClient != nil && filter.Search == "" {
		cacheKey = fmt.Sprintf("%sp%d:l%d", listCachePrefix, filter.Page, filter.Limit)
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.PaginatedNewsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.list(ctx, filter, true)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if encoded, err := json.Marshal(resp); err == nil {
			s.redisClient.Set(ctx, cacheKey, encoded, listCacheTTL)
		}
	}

	return resp, nil
}

func (s *newsService) GetAll(ctx context.Context, filter commonDto.NewsFilter) (*dto.PaginatedNewsResponse, error) {
	return s.list(ctx, filter, false)
}

func (s *newsService) list(ctx context.Context, filter commonDto.NewsFilter, publishedOnly bool) (*dto.PaginatedNewsResponse, error) {
	items, total, err := s.repo.FindAll(ctx, filter, publishedOnly)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 50 {
		limit = 10
	}

	return &dto.PaginatedNewsResponse{
		Data: items,
		Meta: commonDto.PaginationMeta{
			CurrentPage: page,
			TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
			TotalItems:  total,
			Limit:       limit,
		},
	}, nil
}

func (s *newsService) UpdateNews(ctx context.Context, id uuid.UUID, req dto.UpdateNewsRequest) (*entity.News, error) {
	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		news.Title = *req.Title
	}
	if req.Content != nil {
		news.Content = s.sanitizer.Sanitize(*req.Content)
	}
	if req.ImageURL != nil {
		news.ImageURL = req.ImageURL
	}
	if req.Published != nil {
		news.Published = *req.Published
	}

	if err := s.repo.Update(ctx, news); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, news)
	return news, nil
}

func (s *newsService) DeleteNews(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchSvc != nil {
		if err := s.searchSvc.DeleteNews(id.String()); err != nil {
			log.Printf("failed to remove news %s from search index: %v", id, err)
		}
	}
	s.invalidateListCache(ctx)

	return nil
}

func (s *newsService) Search(ctx context.Context, query string, limit int64) ([]search.NewsHit, error) {
	if s.searchSvc == nil {
		return []search.NewsHit{}, nil
	}
	return s.searchSvc.SearchNews(query, limit)
}

// afterWrite keeps the search index and the list cache in step with the
// database. Both are best-effort.
func (s *newsService) afterWrite(ctx context.Context, news *entity.News) {
	if s.searchSvc != nil {
		if err := s.searchSvc.IndexNews(news); err != nil {
			log.Printf("failed to index news %s: %v", news.ID, err)
		}
	}
	s.invalidateListCache(ctx)
}

func (s *newsService) invalidateListCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}

	iter := s.redisClient.Scan(ctx, 0, listCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		s.redisClient.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("failed to invalidate news cache: %v", err)
	}
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
