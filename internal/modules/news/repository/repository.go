package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/pkg/dto"
)

type NewsRepository interface {
	Create(ctx context.Context, news *entity.News) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.News, error)
	FindBySlug(ctx context.Context, slug string) (*entity.News, error)
	FindAll(ctx context.Context, filter dto.NewsFilter, publishedOnly bool) ([]*entity.News, int64, error)
	Update(ctx context.Context, news *entity.News) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, news *entity.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

func (r *newsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.News, error) {
	var news entity.News
	if err := r.db.WithContext(ctx).First(&news, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepository) FindBySlug(ctx context.Context, slug string) (*entity.News, error) {
	var news entity.News
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&news).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *newsRepository) FindAll(ctx context.Context, filter dto.NewsFilter, publishedOnly bool) ([]*entity.News, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.News{})

	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var items []*entity.News
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *newsRepository) Update(ctx context.Context, news *entity.News) error {
	return r.db.WithContext(ctx).Save(news).Error
}

func (r *newsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.News{}, "id = ?", id).Error
}
