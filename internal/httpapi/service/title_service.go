package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"titlehub/internal/httpapi/apperr"
	"titlehub/internal/httpapi/dto"
	"titlehub/internal/httpapi/models"
	"titlehub/internal/httpapi/repository"

	"gorm.io/gorm"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, input dto.CreateTitleDTO) (*models.Title, error)
	Update(ctx context.Context, id int64, input dto.UpdateTitleDTO) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter, page, pageSize)
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, input dto.CreateTitleDTO) (*models.Title, error) {
	if err := validateYear(*input.Year); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}
	genreIDs, err := s.resolveGenres(ctx, input.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        input.Name,
		Year:        *input.Year,
		Description: input.Description,
		CategoryID:  category.ID,
	}
	if err := s.titleRepo.Create(ctx, title, genreIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, input dto.UpdateTitleDTO) (*models.Title, error) {
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Year != nil {
		if err := validateYear(*input.Year); err != nil {
			return nil, err
		}
		title.Year = *input.Year
	}
	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Description != nil {
		title.Description = input.Description
	}
	if input.Category != nil {
		category, err := s.resolveCategory(ctx, *input.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = category.ID
	}

	var genreIDs []int64
	if input.Genre != nil {
		if genreIDs, err = s.resolveGenres(ctx, input.Genre); err != nil {
			return nil, err
		}
	}

	if err := s.titleRepo.Update(ctx, title, genreIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return nil
}

// validateYear enforces the single domain rule on titles: the release year
// cannot be in the future.
func validateYear(year int) error {
	current := time.Now().Year()
	if year > current {
		return apperr.Validation("year", fmt.Sprintf("year cannot be greater than %d", current))
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("category", fmt.Sprintf("unknown category slug %q", slug))
		}
		return nil, err
	}
	return category, nil
}

// resolveGenres maps slugs to ids, rejecting the request when any slug is
// unknown.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]int64, error) {
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	found := make(map[string]int64, len(genres))
	for _, g := range genres {
		found[g.Slug] = g.ID
	}

	ids := make([]int64, 0, len(slugs))
	for _, slug := range slugs {
		id, ok := found[slug]
		if !ok {
			return nil, apperr.Validation("genre", fmt.Sprintf("unknown genre slug %q", slug))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
