package service

import (
	"context"
	"errors"
	"net/http"

	"titlehub/internal/httpapi/apperr"
	"titlehub/internal/httpapi/dto"
	"titlehub/internal/httpapi/models"
	"titlehub/internal/httpapi/repository"
	"titlehub/internal/permissions"

	"gorm.io/gorm"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, id int64) (*models.Review, error)
	Create(ctx context.Context, actor *models.User, titleID int64, input dto.CreateReviewDTO) (*models.Review, error)
	Update(ctx context.Context, actor *models.User, titleID, id int64, input dto.UpdateReviewDTO) (*models.Review, error)
	Delete(ctx context.Context, actor *models.User, titleID, id int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// ensureTitle resolves the parent title from the path, turning a missing
// parent into NotFound before any child operation runs.
func (s *reviewService) ensureTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) Get(ctx context.Context, titleID, id int64) (*models.Review, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(ctx, titleID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Create(ctx context.Context, actor *models.User, titleID int64, input dto.CreateReviewDTO) (*models.Review, error) {
	if err := validateScore(input.Score); err != nil {
		return nil, err
	}
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByAuthorAndTitle(ctx, actor.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Validation("title", "you have already reviewed this title")
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     input.Text,
		Score:    input.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// the unique index is the authority when two requests race the
		// pre-check
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, id int64, input dto.UpdateReviewDTO) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, id)
	if err != nil {
		return nil, err
	}
	if !permissions.ModeratorAuthorOrReadOnly(actor, http.MethodPatch, review.AuthorID) {
		return nil, apperr.ErrForbidden
	}

	if input.Score != nil {
		if err := validateScore(*input.Score); err != nil {
			return nil, err
		}
		review.Score = *input.Score
	}
	if input.Text != nil {
		review.Text = *input.Text
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, id int64) error {
	review, err := s.Get(ctx, titleID, id)
	if err != nil {
		return err
	}
	if !permissions.ModeratorAuthorOrReadOnly(actor, http.MethodDelete, review.AuthorID) {
		return apperr.ErrForbidden
	}
	return s.reviewRepo.Delete(ctx, titleID, id)
}

// validateScore enforces the [1,10] range at the application layer; the DB
// check constraint stays as the last line of defense.
func validateScore(score int) error {
	if score < 1 || score > 10 {
		return apperr.Validation("score", "score must be between 1 and 10")
	}
	return nil
}
