package upload

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/upload/repository"
	"sukamaju.desa.id/portal/pkg/apperror"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
	"sukamaju.desa.id/portal/pkg/storage"
)

const maxUploadSize = 5 << 20 // 5 MB

type UploadService interface {
	UploadFile(ctx context.Context, uploaderID uuid.UUID, file *multipart.FileHeader, category, subcategory string) (*commonDto.UploadResponse, error)
	CleanupOrphanUploads(ctx context.Context) error
}

type uploadService struct {
	repo        repository.UploadRepository
	fileStorage storage.FileStorage
}

func NewUploadService(repo repository.UploadRepository, fileStorage storage.FileStorage) UploadService {
	return &uploadService{
		repo:        repo,
		fileStorage: fileStorage,
	}
}

func (s *uploadService) UploadFile(ctx context.Context, uploaderID uuid.UUID, file *multipart.FileHeader, category, subcategory string) (*commonDto.UploadResponse, error) {
	if file.Size > maxUploadSize {
		return nil, fmt.Errorf("%w: ukuran file maksimal 5MB", apperror.ErrInvalidInput)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".pdf":
	default:
		return nil, fmt.Errorf("%w: tipe file tidak didukung", apperror.ErrInvalidInput)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if category == "" {
		category = "umum"
	}
	folder := category
	if subcategory != "" {
		folder = category + "/" + subcategory
	}

	fileName := fmt.Sprintf("%d_%s", time.Now().Unix(), file.Filename)

	var url string
	if ext == ".pdf" {
		url, err = s.fileStorage.UploadRaw(ctx, src, folder, fileName)
	} else {
		url, err = s.fileStorage.UploadImage(ctx, src, folder, fileName)
	}
	if err != nil {
		return nil, err
	}

	record := &entity.Upload{
		FileURL:    url,
		FileName:   file.Filename,
		Category:   category,
		UploaderID: uploaderID,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		// The object is already stored; losing the tracking row only
		// delays orphan cleanup.
		log.Printf("failed to record upload %s: %v", url, err)
	}

	return &commonDto.UploadResponse{
		Success:  true,
		URL:      url,
		Filename: file.Filename,
	}, nil
}

// CleanupOrphanUploads removes stored objects nothing references anymore.
// Runs from the 12-hourly background job.
func (s *uploadService) CleanupOrphanUploads(ctx context.Context) error {
	cutoff := time.Now().Add(-24 * time.Hour)

	orphans, err := s.repo.FindOrphans(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, orphan := range orphans {
		if err := s.fileStorage.DeleteFile(ctx, orphan.FileURL); err != nil {
			log.Printf("failed to delete orphan file %s: %v", orphan.FileURL, err)
			continue
		}
		if err := s.repo.Delete(ctx, orphan.ID); err != nil {
			log.Printf("failed to delete orphan record %d: %v", orphan.ID, err)
		}
	}

	return nil
}
