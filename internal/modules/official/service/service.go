package official

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/official/dto"
	"sukamaju.desa.id/portal/internal/modules/official/repository"
	"sukamaju.desa.id/portal/pkg/apperror"
)

type OfficialService interface {
	CreateOfficial(ctx context.Context, req dto.CreateOfficialRequest) (*entity.Official, error)
	GetAllOfficials(ctx context.Context) ([]*entity.Official, error)
	UpdateOfficial(ctx context.Context, id uuid.UUID, req dto.UpdateOfficialRequest) (*entity.Official, error)
	DeleteOfficial(ctx context.Context, id uuid.UUID) error
}

type officialService struct {
	repo repository.OfficialRepository
}

func NewOfficialService(repo repository.OfficialRepository) OfficialService {
	return &officialService{repo: repo}
}

func (s *officialService) CreateOfficial(ctx context.Context, req dto.CreateOfficialRequest) (*entity.Official, error) {
	official := &entity.Official{
		Name:         req.Name,
		Position:     req.Position,
		PhotoURL:     req.PhotoURL,
		DisplayOrder: req.Order,
	}

	if err := s.repo.Create(ctx, official); err != nil {
		return nil, err
	}
	return official, nil
}

func (s *officialService) GetAllOfficials(ctx context.Context) ([]*entity.Official, error) {
	return s.repo.FindAll(ctx)
}

func (s *officialService) UpdateOfficial(ctx context.Context, id uuid.UUID, req dto.UpdateOfficialRequest) (*entity.Official, error) {
	official, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		official.Name = *req.Name
	}
	if req.Position != nil {
		official.Position = *req.Position
	}
	if req.PhotoURL != nil {
		official.PhotoURL = req.PhotoURL
	}
	if req.Order != nil {
		official.DisplayOrder = *req.Order
	}

	if err := s.repo.Update(ctx, official); err != nil {
		return nil, err
	}
	return official, nil
}

func (s *officialService) DeleteOfficial(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
