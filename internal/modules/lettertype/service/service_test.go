package lettertype

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/lettertype/dto"
	"sukamaju.desa.id/portal/pkg/apperror"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
)

type MockLetterTypeRepository struct {
	mock.Mock
}

func (m *MockLetterTypeRepository) Create(ctx context.Context, letterType *entity.LetterType) error {
	args := m.Called(ctx, letterType)
	return args.Error(0)
}

func (m *MockLetterTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LetterType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LetterType), args.Error(1)
}

func (m *MockLetterTypeRepository) FindByCode(ctx context.Context, code string) (*entity.LetterType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LetterType), args.Error(1)
}

func (m *MockLetterTypeRepository) FindAll(ctx context.Context, filter commonDto.LetterTypeFilter) ([]*entity.LetterType, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LetterType), args.Error(1)
}

func (m *MockLetterTypeRepository) Update(ctx context.Context, letterType *entity.LetterType) error {
	args := m.Called(ctx, letterType)
	return args.Error(0)
}

func (m *MockLetterTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateLetterTypeNormalizesCode(t *testing.T) {
	repo := new(MockLetterTypeRepository)
	repo.On("FindByCode", mock.Anything, "SKD").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.LetterType")).Return(nil)

	svc := NewLetterTypeService(repo)

	created, err := svc.CreateLetterType(context.Background(), dto.CreateLetterTypeRequest{
		Code: "  skd ",
		Name: "Surat Keterangan Domisili",
	})

	require.NoError(t, err)
	assert.Equal(t, "SKD", created.Code)
	assert.Equal(t, entity.FormTemplateGeneral, created.FormTemplate)
	assert.True(t, created.Active)
	repo.AssertExpectations(t)
}

func TestCreateLetterTypeDuplicateCode(t *testing.T) {
	repo := new(MockLetterTypeRepository)
	repo.On("FindByCode", mock.Anything, "SKD").Return(&entity.LetterType{Code: "SKD"}, nil)

	svc := NewLetterTypeService(repo)

	_, err := svc.CreateLetterType(context.Background(), dto.CreateLetterTypeRequest{
		Code: "skd",
		Name: "Surat Keterangan Domisili",
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateLetterTypeCodeConflict(t *testing.T) {
	id := uuid.New()
	repo := new(MockLetterTypeRepository)
	repo.On("FindByID", mock.Anything, id).Return(&entity.LetterType{ID: id, Code: "SKD"}, nil)
	repo.On("FindByCode", mock.Anything, "SKU").Return(&entity.LetterType{Code: "SKU"}, nil)

	svc := NewLetterTypeService(repo)

	newCode := "sku"
	_, err := svc.UpdateLetterType(context.Background(), id, dto.UpdateLetterTypeRequest{Code: &newCode})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateLetterTypeNotFound(t *testing.T) {
	id := uuid.New()
	repo := new(MockLetterTypeRepository)
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewLetterTypeService(repo)

	name := "Surat Baru"
	_, err := svc.UpdateLetterType(context.Background(), id, dto.UpdateLetterTypeRequest{Name: &name})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateLetterTypeKeepsCodeWhenUnchanged(t *testing.T) {
	id := uuid.New()
	repo := new(MockLetterTypeRepository)
	repo.On("FindByID", mock.Anything, id).Return(&entity.LetterType{ID: id, Code: "SKD", Name: "Lama"}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*entity.LetterType")).Return(nil)

	svc := NewLetterTypeService(repo)

	sameCode := "skd"
	name := "Surat Keterangan Domisili"
	updated, err := svc.UpdateLetterType(context.Background(), id, dto.UpdateLetterTypeRequest{Code: &sameCode, Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "SKD", updated.Code)
	assert.Equal(t, name, updated.Name)
	repo.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
}
