package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"GroceryWise/internal/auth"
	"GroceryWise/internal/model"
	"GroceryWise/internal/repo"

	"gorm.io/gorm"
)

// MinPasswordLength: минимальная длина пароля в символах.
const MinPasswordLength = 8

// PasswordHasher хеширует и проверяет пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(plain, hash string) bool
}

// UserService: каталог пользователей: регистрация, аутентификация, профиль.
type UserService struct {
	repo   repo.UserRepository
	hasher PasswordHasher
}

func NewUserService(r repo.UserRepository, h PasswordHasher) *UserService {
	return &UserService{repo: r, hasher: h}
}

// Register создаёт пользователя. Занятый email даёт ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword("password", password); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hash("password", password)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.CreateUser(ctx, &model.User{Email: email, HashedPassword: hash, IsActive: true})
	if err != nil {
		// гонка двух регистраций: уникальный индекс срабатывает на вставке
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate возвращает пользователя при верных учётных данных.
// Отсутствующий пользователь и неверный пароль неразличимы: оба дают ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByEmail ищет пользователя по email; отсутствие даёт ErrNotFound.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user == nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// ChangePassword проверяет текущий пароль, запрещает повтор и перехеширует новый.
func (s *UserService) ChangePassword(ctx context.Context, user *model.User, current, newPassword string) error {
	if err := validatePassword("new_password", newPassword); err != nil {
		return err
	}
	if !s.hasher.Verify(current, user.HashedPassword) {
		return ErrIncorrectPassword
	}
	if current == newPassword {
		return ErrSamePassword
	}
	hash, err := s.hash("new_password", newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	user.HashedPassword = hash
	return nil
}

// UpdateProfile: у профиля пока нет изменяемых полей, возвращает актуальную запись.
func (s *UserService) UpdateProfile(ctx context.Context, user *model.User) (*model.User, error) {
	fresh, err := s.repo.GetUserByID(ctx, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && fresh == nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return fresh, nil
}

// Delete удаляет пользователя и все его позиции.
func (s *UserService) Delete(ctx context.Context, user *model.User) error {
	if err := s.repo.DeleteUser(ctx, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *UserService) hash(field, password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", Invalid(field, "must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", Invalid("email", "field required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", Invalid("email", "value is not a valid email address")
	}
	return email, nil
}

func validatePassword(field, password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return Invalid(field, fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	return nil
}
