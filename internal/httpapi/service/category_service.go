package service

import (
	"context"
	"errors"

	"titlehub/internal/httpapi/apperr"
	"titlehub/internal/httpapi/models"
	"titlehub/internal/httpapi/repository"

	"gorm.io/gorm"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.repo.List(ctx, search, page, pageSize)
}

func (s *categoryService) Create(ctx context.Context, category *models.Category) error {
	if _, err := s.repo.FindBySlug(ctx, category.Slug); err == nil {
		return apperr.Validation("slug", "slug already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if apperr.IsUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return err
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return nil
}
