package gallery

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/gallery/dto"
	"sukamaju.desa.id/portal/internal/modules/gallery/repository"
	"sukamaju.desa.id/portal/pkg/apperror"
)

type GalleryService interface {
	CreateItem(ctx context.Context, req dto.CreateGalleryItemRequest) (*entity.GalleryItem, error)
	GetAllItems(ctx context.Context, category string) ([]*entity.GalleryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type galleryService struct {
	repo repository.GalleryRepository
}

func NewGalleryService(repo repository.GalleryRepository) GalleryService {
	return &galleryService{repo: repo}
}

func (s *galleryService) CreateItem(ctx context.Context, req dto.CreateGalleryItemRequest) (*entity.GalleryItem, error) {
	item := &entity.GalleryItem{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Category: req.Category,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *galleryService) GetAllItems(ctx context.Context, category string) ([]*entity.GalleryItem, error) {
	return s.repo.FindAll(ctx, category)
}

func (s *galleryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
