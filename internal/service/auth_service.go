package service

import (
	"errors"
	"ery_cursos_backend/internal/config"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/repository"
	"ery_cursos_backend/internal/util"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{UserRepo: userRepo, Config: cfg}
}

// Register creates an account. The administrator role is reserved for the
// configured admin email, and that email cannot register as a student.
func (s *AuthService) Register(email, password, fullName string, role model.UserRole) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email", util.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", util.ErrInvalidInput)
	}

	switch role {
	case model.Student, model.Admin, model.Evaluator, model.Assistant:
	case "":
		role = model.Student
	default:
		return nil, fmt.Errorf("%w: unknown role %q", util.ErrInvalidInput, role)
	}

	adminEmail := strings.ToLower(s.Config.Auth.AdminEmail)
	if role == model.Admin && email != adminEmail {
		return nil, util.ErrAdminEmailMismatch
	}
	if role == model.Student && adminEmail != "" && email == adminEmail {
		return nil, fmt.Errorf("%w: the admin email cannot register as student", util.ErrInvalidInput)
	}

	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: string(hashed),
		FullName: fullName,
		Role:     role,
		Active:   true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, util.ErrUserNotFound) {
		return "", nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !user.Active {
		return "", nil, util.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
