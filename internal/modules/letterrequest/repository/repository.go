package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/pkg/dto"
)

type LetterRequestRepository interface {
	Create(ctx context.Context, request *entity.LetterRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LetterRequest, error)
	FindAll(ctx context.Context, filter dto.LetterRequestFilter) ([]*entity.LetterRequest, int64, error)
	FindByNIK(ctx context.Context, nik string) ([]*entity.LetterRequest, error)
	FindLatestByNIK(ctx context.Context, nik string) (*entity.LetterRequest, error)
	Patch(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type letterRequestRepository struct {
	db *gorm.DB
}

func NewLetterRequestRepository(db *gorm.DB) LetterRequestRepository {
	return &letterRequestRepository{db: db}
}

func (r *letterRequestRepository) Create(ctx context.Context, request *entity.LetterRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *letterRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LetterRequest, error) {
	var request entity.LetterRequest
	if err := r.db.WithContext(ctx).
		Preload("LetterType").
		First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *letterRequestRepository) FindAll(ctx context.Context, filter dto.LetterRequestFilter) ([]*entity.LetterRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.LetterRequest{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.LetterTypeID != "" {
		query = query.Where("letter_type_id = ?", filter.LetterTypeID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR nik ILIKE ?", pattern, pattern)
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
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var requests []*entity.LetterRequest
	if err := query.
		Preload("LetterType").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *letterRequestRepository) FindByNIK(ctx context.Context, nik string) ([]*entity.LetterRequest, error) {
	var requests []*entity.LetterRequest
	if err := r.db.WithContext(ctx).
		Preload("LetterType").
		Where("nik = ?", nik).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *letterRequestRepository) FindLatestByNIK(ctx context.Context, nik string) (*entity.LetterRequest, error) {
	var request entity.LetterRequest
	if err := r.db.WithContext(ctx).
		Where("nik = ?", nik).
		Order("created_at DESC").
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *letterRequestRepository) Patch(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.LetterRequest{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *letterRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LetterRequest{}, "id = ?", id).Error
}
