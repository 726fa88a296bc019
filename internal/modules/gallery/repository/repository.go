package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
)

type GalleryRepository interface {
	Create(ctx context.Context, item *entity.GalleryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.GalleryItem, error)
	FindAll(ctx context.Context, category string) ([]*entity.GalleryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type galleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, item *entity.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *galleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.GalleryItem, error) {
	var item entity.GalleryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryRepository) FindAll(ctx context.Context, category string) ([]*entity.GalleryItem, error) {
	var items []*entity.GalleryItem
	query := r.db.WithContext(ctx)

	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.GalleryItem{}, "id = ?", id).Error
}
