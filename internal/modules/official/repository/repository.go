package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
)

type OfficialRepository interface {
	Create(ctx context.Context, official *entity.Official) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Official, error)
	FindAll(ctx context.Context) ([]*entity.Official, error)
	Update(ctx context.Context, official *entity.Official) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type officialRepository struct {
	db *gorm.DB
}

func NewOfficialRepository(db *gorm.DB) OfficialRepository {
	return &officialRepository{db: db}
}

func (r *officialRepository) Create(ctx context.Context, official *entity.Official) error {
	return r.db.WithContext(ctx).Create(official).Error
}

func (r *officialRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Official, error) {
	var official entity.Official
	if err := r.db.WithContext(ctx).First(&official, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &official, nil
}

func (r *officialRepository) FindAll(ctx context.Context) ([]*entity.Official, error) {
	var officials []*entity.Official
	if err := r.db.WithContext(ctx).
		Order("display_order ASC, name ASC").
		Find(&officials).Error; err != nil {
		return nil, err
	}
	return officials, nil
}

func (r *officialRepository) Update(ctx context.Context, official *entity.Official) error {
	return r.db.WithContext(ctx).Save(official).Error
}

func (r *officialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Official{}, "id = ?", id).Error
}
