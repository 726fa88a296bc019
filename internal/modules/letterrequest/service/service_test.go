package letterrequest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/letterrequest/dto"
	"sukamaju.desa.id/portal/pkg/apperror"
	commonDto "sukamaju.desa.id/portal/pkg/dto"
)

type MockLetterRequestRepository struct {
	mock.Mock
}

func (m *MockLetterRequestRepository) Create(ctx context.Context, request *entity.LetterRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockLetterRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LetterRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LetterRequest), args.Error(1)
}

func (m *MockLetterRequestRepository) FindAll(ctx context.Context, filter commonDto.LetterRequestFilter) ([]*entity.LetterRequest, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.LetterRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockLetterRequestRepository) FindByNIK(ctx context.Context, nik string) ([]*entity.LetterRequest, error) {
	args := m.Called(ctx, nik)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LetterRequest), args.Error(1)
}

func (m *MockLetterRequestRepository) FindLatestByNIK(ctx context.Context, nik string) (*entity.LetterRequest, error) {
	args := m.Called(ctx, nik)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LetterRequest), args.Error(1)
}

func (m *MockLetterRequestRepository) Patch(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockLetterRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) ResolveOrCreate(ctx context.Context, nik, phone, name string) (*entity.User, error) {
	args := m.Called(ctx, nik, phone, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifySubmission(ctx context.Context, request *entity.LetterRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(request *entity.LetterRequest, letterType *entity.LetterType) ([]byte, error) {
	args := m.Called(request, letterType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) LetterNumber(code string) string {
	args := m.Called(code)
	return args.String(0)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	args := m.Called(ctx, r, folder, fileName)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) UploadRaw(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	args := m.Called(ctx, r, folder, fileName)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteFile(ctx context.Context, fileURL string) error {
	args := m.Called(ctx, fileURL)
	return args.Error(0)
}

type serviceFixture struct {
	repo     *MockLetterRequestRepository
	typeRepo *MockLetterTypeRepository
	resolver *MockAccountResolver
	notifier *MockNotifier
	renderer *MockRenderer
	storage  *MockFileStorage
	svc      LetterRequestService
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		repo:     new(MockLetterRequestRepository),
		typeRepo: new(MockLetterTypeRepository),
		resolver: new(MockAccountResolver),
		notifier: new(MockNotifier),
		renderer: new(MockRenderer),
		storage:  new(MockFileStorage),
	}
	f.svc = NewLetterRequestService(f.repo, f.typeRepo, f.resolver, f.notifier, f.renderer, f.storage)
	return f
}

func activeType(code, formTemplate string) *entity.LetterType {
	return &entity.LetterType{
		ID:           uuid.New(),
		Code:         code,
		Name:         "Surat Keterangan Domisili",
		FormTemplate: formTemplate,
		Active:       true,
	}
}

func submitInput(typeID uuid.UUID) dto.SubmitLetterRequest {
	return dto.SubmitLetterRequest{
		LetterTypeID: typeID.String(),
		FullName:     "Budi Santoso",
		NIK:          "3201234567890001",
		Address:      "Kampung Tengah RT 01 RW 02",
		Phone:        "081234567890",
		Purpose:      "melamar pekerjaan",
	}
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	f := newFixture()
	letterType := activeType("SKD", entity.FormTemplateDomicile)

	f.typeRepo.On("FindByID", mock.Anything, letterType.ID).Return(letterType, nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.LetterRequest")).Return(nil)
	f.resolver.On("ResolveOrCreate", mock.Anything, "3201234567890001", "081234567890", "Budi Santoso").
		Return(&entity.User{}, nil)
	f.notifier.On("NotifySubmission", mock.Anything, mock.AnythingOfType("*entity.LetterRequest")).Return(nil)

	request, err := f.svc.Submit(context.Background(), submitInput(letterType.ID))

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, request.Status)
	assert.False(t, request.LetterGenerated)
	assert.Nil(t, request.LetterURL)
	assert.Equal(t, "SKD", request.TypeCode)
	f.resolver.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestSubmitUnknownType(t *testing.T) {
	f := newFixture()
	typeID := uuid.New()
	f.typeRepo.On("FindByID", mock.Anything, typeID).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Submit(context.Background(), submitInput(typeID))

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitInactiveType(t *testing.T) {
	f := newFixture()
	letterType := activeType("SKD", entity.FormTemplateDomicile)
	letterType.Active = false
	f.typeRepo.On("FindByID", mock.Anything, letterType.ID).Return(letterType, nil)

	_, err := f.svc.Submit(context.Background(), submitInput(letterType.ID))

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitMoveTemplateRequiresDestination(t *testing.T) {
	f := newFixture()
	letterType := activeType("SKPD", entity.FormTemplateMove)
	f.typeRepo.On("FindByID", mock.Anything, letterType.ID).Return(letterType, nil)

	_, err := f.svc.Submit(context.Background(), submitInput(letterType.ID))

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitMoveTemplateWithDestination(t *testing.T) {
	f := newFixture()
	letterType := activeType("SKPD", entity.FormTemplateMove)
	f.typeRepo.On("FindByID", mock.Anything, letterType.ID).Return(letterType, nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.LetterRequest")).Return(nil)
	f.resolver.On("ResolveOrCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&entity.User{}, nil)
	f.notifier.On("NotifySubmission", mock.Anything, mock.Anything).Return(nil)

	input := submitInput(letterType.ID)
	dest := "Jl. Merdeka No. 5, Kota Depok"
	reason := "ikut keluarga"
	input.DestinationAddress = &dest
	input.MoveReason = &reason

	request, err := f.svc.Submit(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, request.DestinationAddress)
	assert.Equal(t, dest, *request.DestinationAddress)
}

func TestSubmitSurvivesResolverFailure(t *testing.T) {
	f := newFixture()
	letterType := activeType("SKD", entity.FormTemplateDomicile)
	f.typeRepo.On("FindByID", mock.Anything, letterType.ID).Return(letterType, nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.LetterRequest")).Return(nil)
	f.resolver.On("ResolveOrCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))
	f.notifier.On("NotifySubmission", mock.Anything, mock.Anything).Return(nil)

	request, err := f.svc.Submit(context.Background(), submitInput(letterType.ID))

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, request.Status)
}

func pendingRequest() *entity.LetterRequest {
	return &entity.LetterRequest{
		ID:       uuid.New(),
		TypeCode: "SKD",
		LetterType: entity.LetterType{
			Code: "SKD",
			Name: "Surat Keterangan Domisili",
		},
		FullName: "Budi Santoso",
		NIK:      "3201234567890001",
		Status:   entity.StatusPending,
	}
}

func TestGenerateLetterPatchesApproved(t *testing.T) {
	f := newFixture()
	request := pendingRequest()

	f.repo.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	f.renderer.On("LetterNumber", "SKD").Return("470/SKD/VIII/2026")
	f.renderer.On("Render", request, &request.LetterType).Return([]byte("%PDF-1.4 fake"), nil)
	f.storage.On("UploadRaw", mock.Anything, mock.Anything, "letters", mock.AnythingOfType("string")).
		Return("https://cdn.example.com/letters/surat.pdf", nil)
	f.repo.On("Patch", mock.Anything, request.ID, mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["letter_generated"] == true &&
			fields["status"] == entity.StatusApproved &&
			fields["letter_number"] == "470/SKD/VIII/2026" &&
			fields["letter_generated_by"] == "Pak Lurah"
	})).Return(nil)

	resp, err := f.svc.GenerateLetter(context.Background(), request.ID, "Pak Lurah")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/letters/surat.pdf", resp.LetterURL)
	assert.Contains(t, resp.Filename, "surat_SKD_3201234567890001")
	f.repo.AssertExpectations(t)
}

func TestGenerateLetterUploadFailureLeavesRequestUntouched(t *testing.T) {
	f := newFixture()
	request := pendingRequest()

	f.repo.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	f.renderer.On("LetterNumber", "SKD").Return("470/SKD/VIII/2026")
	f.renderer.On("Render", request, &request.LetterType).Return([]byte("%PDF"), nil)
	f.storage.On("UploadRaw", mock.Anything, mock.Anything, "letters", mock.AnythingOfType("string")).
		Return("", errors.New("cloudinary timeout"))

	_, err := f.svc.GenerateLetter(context.Background(), request.ID, "Pak Lurah")

	require.Error(t, err)
	f.repo.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateLetterNotFound(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.GenerateLetter(context.Background(), id, "Pak Lurah")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func adminCaller() *entity.User {
	username := "admin"
	return &entity.User{Username: &username, Role: entity.Role{Name: entity.RoleAdmin}}
}

func citizenCaller(nik string) *entity.User {
	return &entity.User{NIK: &nik, Role: entity.Role{Name: entity.RoleWarga}}
}

func generatedRequest(letterURL string) *entity.LetterRequest {
	request := pendingRequest()
	request.Status = entity.StatusApproved
	request.LetterGenerated = true
	request.LetterURL = &letterURL
	return request
}

func TestDownloadOwnLetter(t *testing.T) {
	content := []byte("%PDF-1.4 surat")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	f := newFixture()
	request := generatedRequest(server.URL + "/letters/surat.pdf")
	f.repo.On("FindByID", mock.Anything, request.ID).Return(request, nil)

	result, err := f.svc.Download(context.Background(), request.ID, citizenCaller(request.NIK))

	require.NoError(t, err)
	assert.Equal(t, content, result.Content)
	assert.Equal(t, "Surat_Keterangan_Domisili_Budi_Santoso.pdf", result.Filename)
}

func TestDownloadAsAdmin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF"))
	}))
	defer server.Close()

	f := newFixture()
	request := generatedRequest(server.URL + "/letters/surat.pdf")
	f.repo.On("FindByID", mock.Anything, request.ID).Return(request, nil)

	_, err := f.svc.Download(context.Background(), request.ID, adminCaller())

	assert.NoError(t, err)
}

func TestDownloadForbiddenForOtherCitizen(t *testing.T) {
	f := newFixture()
	request := generatedRequest("https://cdn.example.com/letters/surat.pdf")
	f.repo.On("FindByID", mock.Anything, request.ID).Return(request, nil)

	_, err := f.svc.Download(context.Background(), request.ID, citizenCaller("9999999999999999"))

	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestDownloadNotYetGenerated(t *testing.T) {
	f := newFixture()
	request := pendingRequest()
	f.repo.On("FindByID", mock.Anything, request.ID).Return(request, nil)

	_, err := f.svc.Download(context.Background(), request.ID, adminCaller())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateStatusNotFound(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	status := entity.StatusApproved
	_, err := f.svc.UpdateStatus(context.Background(), id, dto.UpdateLetterRequestInput{Status: &status})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateStatusPatchesStatusAndNote(t *testing.T) {
	f := newFixture()
	request := pendingRequest()
	f.repo.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	f.repo.On("Patch", mock.Anything, request.ID, mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["status"] == entity.StatusRevision && fields["note"] == "lampirkan foto KTP"
	})).Return(nil)

	status := entity.StatusRevision
	note := "lampirkan foto KTP"
	_, err := f.svc.UpdateStatus(context.Background(), request.ID, dto.UpdateLetterRequestInput{Status: &status, Catatan: &note})

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestListBuildsPaginationMeta(t *testing.T) {
	f := newFixture()
	f.repo.On("FindAll", mock.Anything, mock.Anything).
		Return([]*entity.LetterRequest{pendingRequest()}, int64(21), nil)

	resp, err := f.svc.List(context.Background(), commonDto.LetterRequestFilter{Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Meta.CurrentPage)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, int64(21), resp.Meta.TotalItems)
}
