package dto

import "titlehub/internal/httpapi/models"

// CreateTitleDTO for POST /v1/titles/. Category and genres are referenced by
// slug; the service resolves them and rejects unknown ones. Year is a pointer
// so that year zero counts as present, not missing.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        *int     `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category" binding:"required,slug"`
	Genre       []string `json:"genre" binding:"required,min=1,dive,slug"`
}

// UpdateTitleDTO for PATCH /v1/titles/:id (partial updates allowed)
type UpdateTitleDTO struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=256"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,slug"`
	Genre       []string `json:"genre,omitempty" binding:"omitempty,min=1,dive,slug"`
}

// TitleResponse is the nested read view: embedded category/genre objects plus
// the computed rating (null when the title has no reviews).
type TitleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *float64         `json:"rating"`
	Description *string          `json:"description,omitempty"`
	Category    CategoryResponse `json:"category"`
	Genre       []GenreResponse  `json:"genre"`
}

func TitleFromModel(t models.Title) TitleResponse {
	genres := make([]GenreResponse, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, GenreFromModel(g))
	}
	return TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Category:    CategoryFromModel(t.Category),
		Genre:       genres,
	}
}
