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

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, id int64) (*models.Comment, error)
	Create(ctx context.Context, actor *models.User, titleID, reviewID int64, input dto.CreateCommentDTO) (*models.Comment, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID, id int64, input dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID, id int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// ensureReview checks that the parent review exists under the path title, so
// a review id paired with the wrong title is NotFound, not a leak.
func (s *commentService) ensureReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, id int64) (*models.Comment, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, reviewID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, actor *models.User, titleID, reviewID int64, input dto.CreateCommentDTO) (*models.Comment, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     input.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, id int64, input dto.UpdateCommentDTO) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}
	if !permissions.ModeratorAuthorOrReadOnly(actor, http.MethodPatch, comment.AuthorID) {
		return nil, apperr.ErrForbidden
	}

	comment.Text = input.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, id int64) error {
	comment, err := s.Get(ctx, titleID, reviewID, id)
	if err != nil {
		return err
	}
	if !permissions.ModeratorAuthorOrReadOnly(actor, http.MethodDelete, comment.AuthorID) {
		return apperr.ErrForbidden
	}
	return s.commentRepo.Delete(ctx, reviewID, id)
}
