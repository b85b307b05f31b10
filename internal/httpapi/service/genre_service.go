package service

import (
	"context"
	"errors"

	"titlehub/internal/httpapi/apperr"
	"titlehub/internal/httpapi/models"
	"titlehub/internal/httpapi/repository"

	"gorm.io/gorm"
)

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	Create(ctx context.Context, genre *models.Genre) error
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.repo.List(ctx, search, page, pageSize)
}

func (s *genreService) Create(ctx context.Context, genre *models.Genre) error {
	if _, err := s.repo.FindBySlug(ctx, genre.Slug); err == nil {
		return apperr.Validation("slug", "slug already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.repo.Create(ctx, genre); err != nil {
		if apperr.IsUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return err
	}
	return nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return nil
}
