package repository

import (
	"context"

	"titlehub/internal/httpapi/models"

	"gorm.io/gorm"
)

// TitleFilter narrows the title listing. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

type TitleRepository interface {
	Create(ctx context.Context, title *models.Title, genreIDs []int64) error
	Update(ctx context.Context, title *models.Title, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title, genreIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres", "Category").Create(title).Error; err != nil {
			return err
		}
		return replaceGenres(tx, title, genreIDs)
	})
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title, genreIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres", "Category").Save(title).Error; err != nil {
			return err
		}
		if genreIDs == nil {
			// partial update that did not touch genres
			return nil
		}
		return replaceGenres(tx, title, genreIDs)
	})
}

func replaceGenres(tx *gorm.DB, title *models.Title, genreIDs []int64) error {
	genres := make([]models.Genre, 0, len(genreIDs))
	for _, id := range genreIDs {
		genres = append(genres, models.Genre{ID: id})
	}
	return tx.Model(title).Association("Genres").Replace(&genres)
}

// Delete removes a title; reviews and their comments go with it through the
// storage-level cascades.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error
	if err != nil {
		return nil, err
	}
	if err := r.fillRatings(ctx, []*models.Title{&title}); err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Title{})
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != 0 {
		q = q.Where("titles.year = ?", filter.Year)
	}

	// Count on its own session: Distinct("titles.id") would otherwise stick
	// to the shared statement and gut the SELECT of the Find below.
	if err := q.Session(&gorm.Session{}).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Distinct().
		Preload("Category").
		Preload("Genres").
		Order("titles.id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*models.Title, len(titles))
	for i := range titles {
		refs[i] = &titles[i]
	}
	if err := r.fillRatings(ctx, refs); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

// fillRatings computes the average review score for each title in one grouped
// query and attaches it to the in-memory rows. Titles without reviews keep a
// nil rating.
func (r *titleRepository) fillRatings(ctx context.Context, titles []*models.Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}

	var rows []struct {
		TitleID int64
		Average float64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("title_id, AVG(score) as average").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	byID := make(map[int64]float64, len(rows))
	for _, row := range rows {
		byID[row.TitleID] = row.Average
	}
	for _, t := range titles {
		if avg, ok := byID[t.ID]; ok {
			v := avg
			t.Rating = &v
		}
	}
	return nil
}
