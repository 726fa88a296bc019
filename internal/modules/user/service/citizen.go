package service

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"sukamaju.desa.id/portal/internal/entity"
	"sukamaju.desa.id/portal/internal/modules/user/dto"
	"sukamaju.desa.id/portal/internal/modules/user/repository"
	"sukamaju.desa.id/portal/pkg/apperror"
)

// PasswordPolicy controls how citizens without a password may log in.
// Phone-only first login is the product decision of the village office:
// a first-time citizen reaches their dashboard with just NIK + phone.
// It can be switched off without touching any calling code.
type PasswordPolicy struct {
	AllowPhoneOnlyLogin bool
}

func NewPasswordPolicyFromEnv() PasswordPolicy {
	allow := true
	if v := os.Getenv("WARGA_PHONE_LOGIN"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			allow = parsed
		}
	}
	return PasswordPolicy{AllowPhoneOnlyLogin: allow}
}

// RequestLookup is the slice of the letter-request store the citizen auth
// flow needs: finding a submitted request so an account can be created
// lazily on first login.
type RequestLookup interface {
	FindLatestByNIK(ctx context.Context, nik string) (*entity.LetterRequest, error)
}

type CitizenAuthService interface {
	// ResolveOrCreate finds the citizen account for a NIK or creates an
	// auto-created one. Idempotent per NIK.
	ResolveOrCreate(ctx context.Context, nik, phone, name string) (*entity.User, error)
	Login(ctx context.Context, input dto.WargaLoginInput) (*dto.AuthResponse, error)
	SetPassword(ctx context.Context, userID string, input dto.SetPasswordInput) error
}

type citizenAuthService struct {
	repo     repository.UserRepository
	requests RequestLookup
	policy   PasswordPolicy
	secret   string
	tokenTTL time.Duration
}

func NewCitizenAuthService(repo repository.UserRepository, requests RequestLookup, policy PasswordPolicy) CitizenAuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := 24 * time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	return &citizenAuthService{
		repo:     repo,
		requests: requests,
		policy:   policy,
		secret:   secret,
		tokenTTL: ttl,
	}
}

func (s *citizenAuthService) ResolveOrCreate(ctx context.Context, nik, phone, name string) (*entity.User, error) {
	user, err := s.repo.FindByNIK(ctx, nik)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, entity.RoleWarga)
	if err != nil {
		return nil, err
	}

	newUser := &entity.User{
		NIK:           &nik,
		Phone:         &phone,
		FullName:      name,
		RoleID:        &role.ID,
		Role:          *role,
		IsAutoCreated: true,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		// A concurrent submission may have created the account first.
		if existing, findErr := s.repo.FindByNIK(ctx, nik); findErr == nil {
			return existing, nil
		}
		return nil, err
	}

	return newUser, nil
}

func (s *citizenAuthService) Login(ctx context.Context, input dto.WargaLoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByNIK(ctx, input.NIK)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		// No account yet: materialize one from a submitted request whose
		// NIK and phone both match.
		user, err = s.resolveFromRequest(ctx, input.NIK, input.Phone)
		if err != nil {
			return nil, err
		}
	}

	if user.HasSetPassword {
		if user.PasswordHash == nil ||
			bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.Password)) != nil {
			return nil, apperror.ErrUnauthorized
		}
	} else {
		if !s.policy.AllowPhoneOnlyLogin {
			return nil, apperror.ErrUnauthorized
		}
		if user.Phone == nil || *user.Phone != input.Phone {
			return nil, apperror.ErrUnauthorized
		}
	}

	return buildAuthResponse(user, s.secret, s.tokenTTL)
}

func (s *citizenAuthService) resolveFromRequest(ctx context.Context, nik, phone string) (*entity.User, error) {
	request, err := s.requests.FindLatestByNIK(ctx, nik)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	if request.Phone != phone {
		return nil, apperror.ErrUnauthorized
	}

	return s.ResolveOrCreate(ctx, nik, phone, request.FullName)
}

func (s *citizenAuthService) SetPassword(ctx context.Context, userID string, input dto.SetPasswordInput) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if user.NIK == nil {
		return apperror.ErrForbidden
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	hashedStr := string(hashed)
	user.PasswordHash = &hashedStr
	user.HasSetPassword = true
	user.IsAutoCreated = false

	return s.repo.Update(ctx, user)
}
