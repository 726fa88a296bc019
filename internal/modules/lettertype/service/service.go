package lettertype

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/lettertype/dto"
	"sukamaju.desa.id/portal/internal/modules/lettertype/repository"
	"sukamaju.desa.id/portal/pkg/apperror"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
)

type LetterTypeService interface {
	CreateLetterType(ctx context.Context, req dto.CreateLetterTypeRequest) (*entity.LetterType, error)
	GetLetterType(ctx context.Context, id uuid.UUID) (*entity.LetterType, error)
	GetAllLetterTypes(ctx context.Context, filter commonDto.LetterTypeFilter) ([]*entity.LetterType, error)
	UpdateLetterType(ctx context.Context, id uuid.UUID, req dto.UpdateLetterTypeRequest) (*entity.LetterType, error)
	DeleteLetterType(ctx context.Context, id uuid.UUID) error
}

type letterTypeService struct {
	repo repository.LetterTypeRepository
}

func NewLetterTypeService(repo repository.LetterTypeRepository) LetterTypeService {
	return &letterTypeService{repo: repo}
}

func (s *letterTypeService) CreateLetterType(ctx context.Context, req dto.CreateLetterTypeRequest) (*entity.LetterType, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, _ := s.repo.FindByCode(ctx, code)
	if existing != nil {
		return nil, apperror.ErrConflict
	}

	formTemplate := req.FormTemplate
	if formTemplate == "" {
		formTemplate = entity.FormTemplateGeneral
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	letterType := &entity.LetterType{
		Code:         code,
		Name:         req.Name,
		Description:  req.Description,
		FormTemplate: formTemplate,
		Active:       active,
		DisplayOrder: req.Order,
		Requirements: req.Requirements,
		Notes:        req.Notes,
	}

	if err := s.repo.Create(ctx, letterType); err != nil {
		return nil, err
	}

	return letterType, nil
}

func (s *letterTypeService) GetLetterType(ctx context.Context, id uuid.UUID) (*entity.LetterType, error) {
	letterType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return letterType, nil
}

func (s *letterTypeService) GetAllLetterTypes(ctx context.Context, filter commonDto.LetterTypeFilter) ([]*entity.LetterType, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *letterTypeService) UpdateLetterType(ctx context.Context, id uuid.UUID, req dto.UpdateLetterTypeRequest) (*entity.LetterType, error) {
	letterType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code != letterType.Code {
			if existing, _ := s.repo.FindByCode(ctx, code); existing != nil {
				return nil, apperror.ErrConflict
			}
			letterType.Code = code
		}
	}
	if req.Name != nil {
		letterType.Name = *req.Name
	}
	if req.Description != nil {
		letterType.Description = *req.Description
	}
	if req.FormTemplate != nil {
		letterType.FormTemplate = *req.FormTemplate
	}
	if req.Active != nil {
		letterType.Active = *req.Active
	}
	if req.Order != nil {
		letterType.DisplayOrder = *req.Order
	}
	if req.Requirements != nil {
		letterType.Requirements = *req.Requirements
	}
	if req.Notes != nil {
		letterType.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, letterType); err != nil {
		return nil, err
	}

	return letterType, nil
}

func (s *letterTypeService) DeleteLetterType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}
