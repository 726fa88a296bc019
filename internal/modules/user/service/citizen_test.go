package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/user/dto"
	"sukamaju.desa.id/portal/pkg/apperror"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByNIK(ctx context.Context, nik string) (*entity.User, error) {
	args := m.Called(ctx, nik)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindRoleByName(ctx context.Context, name string) (*entity.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Role), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockRequestLookup struct {
	mock.Mock
}

func (m *MockRequestLookup) FindLatestByNIK(ctx context.Context, nik string) (*entity.LetterRequest, error) {
	args := m.Called(ctx, nik)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LetterRequest), args.Error(1)
}

const (
	testNIK   = "3201234567890001"
	testPhone = "081234567890"
)

func wargaUser(hasPassword bool) *entity.User {
	nik := testNIK
	phone := testPhone
	user := &entity.User{
		NIK:      &nik,
		Phone:    &phone,
		FullName: "Budi Santoso",
		Role:     entity.Role{Name: entity.RoleWarga},
	}
	if hasPassword {
		hash, _ := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
		hashStr := string(hash)
		user.PasswordHash = &hashStr
		user.HasSetPassword = true
	}
	return user
}

func TestResolveOrCreateReturnsExisting(t *testing.T) {
	existing := wargaUser(false)
	repo := new(MockUserRepository)
	repo.On("FindByNIK", mock.Anything, testNIK).Return(existing, nil)

	svc := NewCitizenAuthService(repo, new(MockRequestLookup), PasswordPolicy{AllowPhoneOnlyLogin: true})

	user, err := svc.ResolveOrCreate(context.Background(), testNIK, testPhone, "Budi Santoso")

	require.NoError(t, err)
	assert.Same(t, existing, user)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResolveOrCreateCreatesWargaAccount(t *testing.T) {
	roleID := uint(2)
	repo := new(MockUserRepository)
	repo.On("FindByNIK", mock.Anything, testNIK).Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindRoleByName", mock.Anything, entity.RoleWarga).Return(&entity.Role{ID: roleID, Name: entity.RoleWarga}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

	svc := NewCitizenAuthService(repo, new(MockRequestLookup), PasswordPolicy{AllowPhoneOnlyLogin: true})

	user, err := svc.ResolveOrCreate(context.Background(), testNIK, testPhone, "Budi Santoso")

	require.NoError(t, err)
	require.NotNil(t, user.NIK)
	assert.Equal(t, testNIK, *user.NIK)
	assert.Equal(t, "Budi Santoso", user.FullName)
	assert.True(t, user.IsAutoCreated)
	assert.False(t, user.HasSetPassword)
	require.NotNil(t, user.RoleID)
	assert.Equal(t, roleID, *user.RoleID)
	repo.AssertExpectations(t)
}

func TestLoginPhoneOnly(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByNIK", mock.Anything, testNIK).Return(wargaUser(false), nil)

	svc := NewCitizenAuthService(repo, new(MockRequestLookup), PasswordPolicy{AllowPhoneOnlyLogin: true})

	resp, err := svc.Login(context.Background(), dto.WargaLoginInput{NIK: testNIK, Phone: testPhone})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
}

func TestLoginPhoneOnlyDisabledByPolicy(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByNIK", mock.Anything, testNIK).Return(wargaUser(false), nil)

	svc := NewCitizenAuthService(repo, new(MockRequestLookup), PasswordPolicy{AllowPhoneOnlyLogin: false})

	_, err := svc.Login(context.Background(), dto.WargaLoginInput{NIK: testNIK, Phone: testPhone})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginPhoneMismatch(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByNIK", mock.Anything, testNIK).Return(wargaUser(false), nil)

	svc := NewCitizenAuthService(repo, new(MockRequestLookup), PasswordPolicy{AllowPhoneOnlyLogin: true})

	_, err := svc.Login(context.Background(), dto.WargaLoginInput{NIK: testNIK, Phone: "089999999999"})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginWithPassword(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByNIK", mock.Anything, testNIK).Return(wargaUser(true), nil)

	svc := NewCitizenAuthService(repo, new(MockRequestLookup), PasswordPolicy{AllowPhoneOnlyLogin: true})

	resp, err := svc.Login(context.Background(), dto.WargaLoginInput{NIK: testNIK, Phone: testPhone, Password: "rahasia123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPasswordAfterSetPassword(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByNIK", mock.Anything, testNIK).Return(wargaUser(true), nil)

	svc := NewCitizenAuthService(repo, new(MockRequestLookup), PasswordPolicy{AllowPhoneOnlyLogin: true})

	// Once a password is set, matching phone alone is no longer enough.
	_, err := svc.Login(context.Background(), dto.WargaLoginInput{NIK: testNIK, Phone: testPhone, Password: "salah"})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginMaterializesAccountFromRequest(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByNIK", mock.Anything, testNIK).Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindRoleByName", mock.Anything, entity.RoleWarga).Return(&entity.Role{ID: 2, Name: entity.RoleWarga}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

	requests := new(MockRequestLookup)
	requests.On("FindLatestByNIK", mock.Anything, testNIK).Return(&entity.LetterRequest{
		NIK:      testNIK,
		Phone:    testPhone,
		FullName: "Budi Santoso",
	}, nil)

	svc := NewCitizenAuthService(repo, requests, PasswordPolicy{AllowPhoneOnlyLogin: true})

	resp, err := svc.Login(context.Background(), dto.WargaLoginInput{NIK: testNIK, Phone: testPhone})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	repo.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*entity.User"))
}

func TestLoginRequestPhoneMismatch(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByNIK", mock.Anything, testNIK).Return(nil, gorm.ErrRecordNotFound)

	requests := new(MockRequestLookup)
	requests.On("FindLatestByNIK", mock.Anything, testNIK).Return(&entity.LetterRequest{
		NIK:   testNIK,
		Phone: testPhone,
	}, nil)

	svc := NewCitizenAuthService(repo, requests, PasswordPolicy{AllowPhoneOnlyLogin: true})

	_, err := svc.Login(context.Background(), dto.WargaLoginInput{NIK: testNIK, Phone: "089999999999"})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginNoAccountNoRequest(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByNIK", mock.Anything, testNIK).Return(nil, gorm.ErrRecordNotFound)

	requests := new(MockRequestLookup)
	requests.On("FindLatestByNIK", mock.Anything, testNIK).Return(nil, gorm.ErrRecordNotFound)

	svc := NewCitizenAuthService(repo, requests, PasswordPolicy{AllowPhoneOnlyLogin: true})

	_, err := svc.Login(context.Background(), dto.WargaLoginInput{NIK: testNIK, Phone: testPhone})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestSetPassword(t *testing.T) {
	user := wargaUser(false)
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, "some-id").Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	svc := NewCitizenAuthService(repo, new(MockRequestLookup), PasswordPolicy{AllowPhoneOnlyLogin: true})

	err := svc.SetPassword(context.Background(), "some-id", dto.SetPasswordInput{Password: "rahasia-baru"})

	require.NoError(t, err)
	assert.True(t, user.HasSetPassword)
	assert.False(t, user.IsAutoCreated)
	require.NotNil(t, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("rahasia-baru")))
}

func TestSetPasswordRejectsAdmin(t *testing.T) {
	username := "admin"
	admin := &entity.User{Username: &username, Role: entity.Role{Name: entity.RoleAdmin}}
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, "admin-id").Return(admin, nil)

	svc := NewCitizenAuthService(repo, new(MockRequestLookup), PasswordPolicy{AllowPhoneOnlyLogin: true})

	err := svc.SetPassword(context.Background(), "admin-id", dto.SetPasswordInput{Password: "rahasia-baru"})

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
