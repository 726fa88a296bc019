package letterrequest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/letterrequest/dto"
	"sukamaju.desa.id/portal/pkg/apperror"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
)

// GenerateLetter renders the request into a PDF, persists it under the
// letters/ folder and patches the request record. Generation implies
// approval: the same patch forces status=approved. The flow is
// deliberately best-effort — if the upload fails the request is left
// untouched and the admin retries; a second successful call stores a
// second file and overwrites the URL reference.
func (s *letterRequestService) GenerateLetter(ctx context.Context, id uuid.UUID, adminName string) (*commonDto.GenerateLetterResponse, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	letterNumber := s.renderer.LetterNumber(request.LetterType.Code)
	request.LetterNumber = &letterNumber

	content, err := s.renderer.Render(request, &request.LetterType)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat surat: %w", err)
	}

	filename := fmt.Sprintf("surat_%s_%s_%d.pdf", request.TypeCode, request.NIK, time.Now().Unix())

	letterURL, err := s.fileStorage.UploadRaw(ctx, bytes.NewReader(content), "letters", filename)
	if err != nil {
		return nil, fmt.Errorf("gagal menyimpan surat: %w", err)
	}

	now := time.Now()
	fields := map[string]interface{}{
		"letter_generated":    true,
		"letter_url":          letterURL,
		"letter_number":       letterNumber,
		"letter_generated_at": now,
		"letter_generated_by": adminName,
		"status":              entity.StatusApproved,
		"updated_at":          now,
	}

	if err := s.repo.Patch(ctx, id, fields); err != nil {
		return nil, err
	}

	return &commonDto.GenerateLetterResponse{
		LetterURL: letterURL,
		Filename:  filename,
	}, nil
}

// Download streams a generated letter back to its owner. Admins may fetch
// any letter; a citizen only their own.
func (s *letterRequestService) Download(ctx context.Context, id uuid.UUID, caller *entity.User) (*dto.DownloadResult, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if !caller.IsAdmin() {
		if caller.NIK == nil || *caller.NIK != request.NIK {
			return nil, apperror.ErrForbidden
		}
	}

	if !request.LetterGenerated || request.LetterURL == nil {
		return nil, fmt.Errorf("%w: surat belum diterbitkan", apperror.ErrNotFound)
	}

	content, err := s.fetchLetter(ctx, *request.LetterURL)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil surat: %w", err)
	}

	return &dto.DownloadResult{
		Filename: downloadFilename(&request.LetterType, request.FullName),
		Content:  content,
	}, nil
}

func (s *letterRequestService) fetchLetter(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func downloadFilename(letterType *entity.LetterType, applicant string) string {
	name := letterType.Name
	if name == "" {
		name = "Surat_Keterangan"
	}
	clean := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	}
	return fmt.Sprintf("%s_%s.pdf", clean(name), clean(applicant))
}
