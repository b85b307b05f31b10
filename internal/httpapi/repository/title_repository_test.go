package repository

import (
	"context"
	"testing"

	"titlehub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.SetupJoinTable(&models.Title{}, "Genres", &models.GenreTitle{}))
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.GenreTitle{},
		&models.Review{},
		&models.Comment{},
	))
	return db
}

func seedTitle(t *testing.T, db *gorm.DB, name string, year int) (*models.Title, *models.Genre) {
	t.Helper()

	category := &models.Category{Name: "Books", Slug: "books"}
	require.NoError(t, db.Create(category).Error)
	genre := &models.Genre{Name: "Drama", Slug: "drama"}
	require.NoError(t, db.Create(genre).Error)

	title := &models.Title{Name: name, Year: year, CategoryID: category.ID}
	repo := NewTitleRepository(db)
	require.NoError(t, repo.Create(context.Background(), title, []int64{genre.ID}))
	return title, genre
}

func TestTitleList_RowsKeepTheirColumns(t *testing.T) {
	db := newTestDB(t)
	seedTitle(t, db, "Foo", 2000)
	repo := NewTitleRepository(db)

	titles, total, err := repo.List(context.Background(), TitleFilter{}, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, titles, 1)
	assert.Equal(t, "Foo", titles[0].Name)
	assert.Equal(t, 2000, titles[0].Year)
	assert.NotZero(t, titles[0].CategoryID)
	assert.Equal(t, "books", titles[0].Category.Slug)
	require.Len(t, titles[0].Genres, 1)
	assert.Equal(t, "drama", titles[0].Genres[0].Slug)
}

func TestTitleList_GenreFilterCountMatchesRows(t *testing.T) {
	db := newTestDB(t)
	seedTitle(t, db, "Foo", 2000)

	other := &models.Category{Name: "Movies", Slug: "movies"}
	require.NoError(t, db.Create(other).Error)
	repo := NewTitleRepository(db)
	require.NoError(t, repo.Create(context.Background(),
		&models.Title{Name: "Bar", Year: 1990, CategoryID: other.ID}, nil))

	titles, total, err := repo.List(context.Background(), TitleFilter{GenreSlug: "drama"}, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, titles, 1)
	assert.Equal(t, "Foo", titles[0].Name)
}

func TestTitleList_FillsAverageRating(t *testing.T) {
	db := newTestDB(t)
	title, _ := seedTitle(t, db, "Rated", 1999)

	alice := &models.User{Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
	bob := &models.User{Username: "bob", Email: "bob@example.com", Role: models.RoleUser}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)
	require.NoError(t, db.Create(&models.Review{TitleID: title.ID, AuthorID: alice.ID, Text: "good", Score: 8}).Error)
	require.NoError(t, db.Create(&models.Review{TitleID: title.ID, AuthorID: bob.ID, Text: "fine", Score: 5}).Error)

	repo := NewTitleRepository(db)
	titles, _, err := repo.List(context.Background(), TitleFilter{}, 1, 20)

	require.NoError(t, err)
	require.Len(t, titles, 1)
	require.NotNil(t, titles[0].Rating)
	assert.InDelta(t, 6.5, *titles[0].Rating, 0.001)
}
