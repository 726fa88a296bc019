package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/pkg/dto"
)

type LetterTypeRepository interface {
	Create(ctx context.Context, letterType *entity.LetterType) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LetterType, error)
	FindByCode(ctx context.Context, code string) (*entity.LetterType, error)
	FindAll(ctx context.Context, filter dto.LetterTypeFilter) ([]*entity.LetterType, error)
	Update(ctx context.Context, letterType *entity.LetterType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type letterTypeRepository struct {
	db *gorm.DB
}

func NewLetterTypeRepository(db *gorm.DB) LetterTypeRepository {
	return &letterTypeRepository{db: db}
}

func (r *letterTypeRepository) Create(ctx context.Context, letterType *entity.LetterType) error {
	return r.db.WithContext(ctx).Create(letterType).Error
}

func (r *letterTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LetterType, error) {
	var letterType entity.LetterType
	if err := r.db.WithContext(ctx).First(&letterType, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &letterType, nil
}

func (r *letterTypeRepository) FindByCode(ctx context.Context, code string) (*entity.LetterType, error) {
	var letterType entity.LetterType
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&letterType).Error; err != nil {
		return nil, err
	}
	return &letterType, nil
}

func (r *letterTypeRepository) FindAll(ctx context.Context, filter dto.LetterTypeFilter) ([]*entity.LetterType, error) {
	var letterTypes []*entity.LetterType
	query := r.db.WithContext(ctx)

	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.FormTemplate != "" {
		query = query.Where("form_template = ?", filter.FormTemplate)
	}

	if err := query.Order("display_order ASC, name ASC").Find(&letterTypes).Error; err != nil {
		return nil, err
	}
	return letterTypes, nil
}

func (r *letterTypeRepository) Update(ctx context.Context, letterType *entity.LetterType) error {
	return r.db.WithContext(ctx).Save(letterType).Error
}

func (r *letterTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LetterType{}, "id = ?", id).Error
}
