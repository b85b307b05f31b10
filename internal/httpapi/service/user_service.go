package service

import (
	"context"
	"errors"

	"titlehub/internal/httpapi/apperr"
	"titlehub/internal/httpapi/dto"
	"titlehub/internal/httpapi/models"
	"titlehub/internal/httpapi/repository"

	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context, search, role string, page, pageSize int) ([]models.User, int64, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, input dto.CreateUserDTO) (*models.User, error)
	Update(ctx context.Context, username string, input dto.UpdateUserDTO) (*models.User, error)
	Delete(ctx context.Context, username string) error
	// UpdateProfile applies a partial update to the caller's own row but
	// always forces role and superuser back to their stored values.
	UpdateProfile(ctx context.Context, user *models.User, input dto.UpdateUserDTO) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search, role string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, role, page, pageSize)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, input dto.CreateUserDTO) (*models.User, error) {
	if input.Username == "me" {
		return nil, apperr.Validation("username", "username \"me\" is reserved")
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Validation("username", "username already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Validation("email", "email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := input.ToModel()
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) Update(ctx context.Context, username string, input dto.UpdateUserDTO) (*models.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if *input.Username == "me" {
			return nil, apperr.Validation("username", "username \"me\" is reserved")
		}
		if _, err := s.userRepo.FindByUsername(ctx, *input.Username); err == nil {
			return nil, apperr.Validation("username", "username already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, *input.Email); err == nil {
			return nil, apperr.Validation("email", "email already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	input.ApplyTo(user)
	if err := s.userRepo.Update(ctx, user); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	if err := s.userRepo.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *userService) UpdateProfile(ctx context.Context, user *models.User, input dto.UpdateUserDTO) (*models.User, error) {
	// No privilege self-escalation through this path: whatever the body
	// carried, role keeps its pre-update value.
	input.Role = nil
	return s.Update(ctx, user.Username, input)
}
