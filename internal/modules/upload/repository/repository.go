package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
)

type UploadRepository interface {
	Create(ctx context.Context, upload *entity.Upload) error
	FindOrphans(ctx context.Context, olderThan time.Time) ([]*entity.Upload, error)
	Delete(ctx context.Context, id uint) error
}

type uploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, upload *entity.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

// FindOrphans returns uploads older than the cutoff that no letter
// request, news article or gallery item references anymore.
func (r *uploadRepository) FindOrphans(ctx context.Context, olderThan time.Time) ([]*entity.Upload, error) {
	var uploads []*entity.Upload
	query := `
		SELECT * FROM uploads u
		WHERE u.created_at < ?
		AND NOT EXISTS (
			SELECT 1 FROM letter_requests lr
			WHERE lr.id_photo_url = u.file_url
			   OR lr.family_register_url = u.file_url
			   OR lr.cover_letter_url = u.file_url
			   OR lr.extra_documents::text LIKE '%' || u.file_url || '%'
		)
		AND NOT EXISTS (SELECT 1 FROM news n WHERE n.image_url = u.file_url)
		AND NOT EXISTS (SELECT 1 FROM gallery_items g WHERE g.image_url = u.file_url)
		AND NOT EXISTS (SELECT 1 FROM officials o WHERE o.photo_url = u.file_url)
	`

	if err := r.db.WithContext(ctx).Raw(query, olderThan).Scan(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *uploadRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Upload{}, id).Error
}
