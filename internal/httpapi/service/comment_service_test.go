package service

import (
	"context"
	"testing"

	"titlehub/internal/httpapi/apperr"
	"titlehub/internal/httpapi/dto"
	"titlehub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCreateComment_ReviewNotUnderTitle(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(new(MockCommentRepository), reviewRepo)

	// review 5 exists, but under a different title than the path names
	reviewRepo.On("GetByID", mock.Anything, int64(2), int64(5)).Return(nil, gorm.ErrRecordNotFound)

	author := &models.User{ID: "author-1", Role: models.RoleUser}
	_, err := svc.Create(context.Background(), author, 2, 5, dto.CreateCommentDTO{Text: "hi"})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateComment_OK(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(5)).
		Return(&models.Review{ID: 5, TitleID: 1, AuthorID: "reviewer"}, nil)
	commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)
	commentRepo.On("GetByID", mock.Anything, int64(5), int64(0)).
		Return(&models.Comment{ReviewID: 5, AuthorID: "author-1", Text: "hi"}, nil)

	author := &models.User{ID: "author-1", Role: models.RoleUser}
	comment, err := svc.Create(context.Background(), author, 1, 5, dto.CreateCommentDTO{Text: "hi"})

	assert.NoError(t, err)
	assert.Equal(t, "author-1", comment.AuthorID)
	assert.Equal(t, int64(5), comment.ReviewID)
}

func TestUpdateComment_StrangerForbidden(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(5)).
		Return(&models.Review{ID: 5, TitleID: 1}, nil)
	commentRepo.On("GetByID", mock.Anything, int64(5), int64(9)).
		Return(&models.Comment{ID: 9, ReviewID: 5, AuthorID: "author-1"}, nil)

	stranger := &models.User{ID: "someone-else", Role: models.RoleUser}
	_, err := svc.Update(context.Background(), stranger, 1, 5, 9, dto.UpdateCommentDTO{Text: "edited"})

	assert.ErrorIs(t, err, apperr.ErrForbidden)
	commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteComment_AdminCanDeleteOthers(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewCommentService(commentRepo, reviewRepo)

	reviewRepo.On("GetByID", mock.Anything, int64(1), int64(5)).
		Return(&models.Review{ID: 5, TitleID: 1}, nil)
	commentRepo.On("GetByID", mock.Anything, int64(5), int64(9)).
		Return(&models.Comment{ID: 9, ReviewID: 5, AuthorID: "author-1"}, nil)
	commentRepo.On("Delete", mock.Anything, int64(5), int64(9)).Return(nil)

	admin := &models.User{ID: "admin-1", Role: models.RoleAdmin}
	err := svc.Delete(context.Background(), admin, 1, 5, 9)

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}
