package letterrequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/letterrequest/dto"
	"sukamaju.desa.id/portal/internal/modules/letterrequest/repository"
	letterTypeRepo "sukamaju.desa.id/portal/internal/modules/lettertype/repository"
	"sukamaju.desa.id/portal/pkg/apperror"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
	"sukamaju.desa.id/portal/pkg/storage"
)

// AccountResolver is the slice of the citizen auth service the submission
// path needs: making sure a requester can later log in and track the
// request.
type AccountResolver interface {
	ResolveOrCreate(ctx context.Context, nik, phone, name string) (*entity.User, error)
}

// Notifier pushes an admin alert when a new request arrives. Failures are
// logged, never surfaced to the citizen.
type Notifier interface {
	NotifySubmission(ctx context.Context, request *entity.LetterRequest) error
}

// LetterRenderer produces the PDF bytes and the issued reference number.
type LetterRenderer interface {
	Render(request *entity.LetterRequest, letterType *entity.LetterType) ([]byte, error)
	LetterNumber(code string) string
}

type LetterRequestService interface {
	Submit(ctx context.Context, req dto.SubmitLetterRequest) (*entity.LetterRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.LetterRequest, error)
	List(ctx context.Context, filter commonDto.LetterRequestFilter) (*dto.PaginatedLetterRequestResponse, error)
	ListMine(ctx context.Context, nik string) ([]*entity.LetterRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input dto.UpdateLetterRequestInput) (*entity.LetterRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateLetter(ctx context.Context, id uuid.UUID, adminName string) (*commonDto.GenerateLetterResponse, error)
	Download(ctx context.Context, id uuid.UUID, caller *entity.User) (*dto.DownloadResult, error)
}

type letterRequestService struct {
	repo        repository.LetterRequestRepository
	typeRepo    letterTypeRepo.LetterTypeRepository
	resolver    AccountResolver
	notifier    Notifier
	renderer    LetterRenderer
	fileStorage storage.FileStorage
	httpClient  *http.Client
}

func NewLetterRequestService(
	repo repository.LetterRequestRepository,
	typeRepo letterTypeRepo.LetterTypeRepository,
	resolver AccountResolver,
	notifier Notifier,
	renderer LetterRenderer,
	fileStorage storage.FileStorage,
) LetterRequestService {
	return &letterRequestService{
		repo:        repo,
		typeRepo:    typeRepo,
		resolver:    resolver,
		notifier:    notifier,
		renderer:    renderer,
		fileStorage: fileStorage,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *letterRequestService) Submit(ctx context.Context, req dto.SubmitLetterRequest) (*entity.LetterRequest, error) {
	typeID, err := uuid.Parse(req.LetterTypeID)
	if err != nil {
		return nil, fmt.Errorf("%w: jenis surat tidak valid", apperror.ErrInvalidInput)
	}

	letterType, err := s.typeRepo.FindByID(ctx, typeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: jenis surat tidak ditemukan", apperror.ErrInvalidInput)
		}
		return nil, err
	}

	if !letterType.Active {
		return nil, fmt.Errorf("%w: jenis surat sudah tidak aktif", apperror.ErrInvalidInput)
	}

	if letterType.FormTemplate == entity.FormTemplateMove {
		if req.DestinationAddress == nil || *req.DestinationAddress == "" {
			return nil, fmt.Errorf("%w: alamat tujuan wajib diisi", apperror.ErrInvalidInput)
		}
		if req.MoveReason == nil || *req.MoveReason == "" {
			return nil, fmt.Errorf("%w: alasan pindah wajib diisi", apperror.ErrInvalidInput)
		}
	}

	request := &entity.LetterRequest{
		LetterTypeID:       letterType.ID,
		TypeCode:           letterType.Code,
		FullName:           req.FullName,
		NIK:                req.NIK,
		BirthPlace:         req.BirthPlace,
		BirthDate:          req.BirthDate,
		Address:            req.Address,
		Phone:              req.Phone,
		Purpose:            req.Purpose,
		DestinationAddress: req.DestinationAddress,
		MoveReason:         req.MoveReason,
		IDPhotoURL:         req.IDPhotoURL,
		FamilyRegisterURL:  req.FamilyRegisterURL,
		CoverLetterURL:     req.CoverLetterURL,
		Status:             entity.StatusPending,
	}

	if req.Details != nil {
		raw, err := json.Marshal(req.Details)
		if err != nil {
			return nil, fmt.Errorf("%w: data tambahan tidak valid", apperror.ErrInvalidInput)
		}
		request.Details = datatypes.JSON(raw)
	}
	if len(req.ExtraDocuments) > 0 {
		raw, err := json.Marshal(req.ExtraDocuments)
		if err != nil {
			return nil, fmt.Errorf("%w: lampiran tidak valid", apperror.ErrInvalidInput)
		}
		request.ExtraDocuments = datatypes.JSON(raw)
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}
	request.LetterType = *letterType

	// Account resolution is a side effect; a failure here must not lose
	// the submission. Login can still materialize the account later.
	if _, err := s.resolver.ResolveOrCreate(ctx, req.NIK, req.Phone, req.FullName); err != nil {
		log.Printf("failed to resolve citizen account for NIK %s: %v", req.NIK, err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifySubmission(ctx, request); err != nil {
			log.Printf("failed to notify admins of request %s: %v", request.ID, err)
		}
	}

	return request, nil
}

func (s *letterRequestService) Get(ctx context.Context, id uuid.UUID) (*entity.LetterRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return request, nil
}

func (s *letterRequestService) List(ctx context.Context, filter commonDto.LetterRequestFilter) (*dto.PaginatedLetterRequestResponse, error) {
	requests, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &dto.PaginatedLetterRequestResponse{
		Data: requests,
		Meta: commonDto.PaginationMeta{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       limit,
		},
	}, nil
}

func (s *letterRequestService) ListMine(ctx context.Context, nik string) ([]*entity.LetterRequest, error) {
	return s.repo.FindByNIK(ctx, nik)
}

func (s *letterRequestService) UpdateStatus(ctx context.Context, id uuid.UUID, input dto.UpdateLetterRequestInput) (*entity.LetterRequest, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.Catatan != nil {
		fields["note"] = *input.Catatan
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
		if err := s.repo.Patch(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, id)
}

func (s *letterRequestService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
