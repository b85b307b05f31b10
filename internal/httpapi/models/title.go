package models

type Title struct {
	ID          int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string   `json:"name" gorm:"size:256;not null"`
	Year        int      `json:"year" gorm:"not null;index"`
	Description *string  `json:"description,omitempty" gorm:"type:text"`
	CategoryID  int64    `json:"-" gorm:"not null;index"`
	Category    Category `json:"category" gorm:"foreignKey:CategoryID"`

	// association
	Genres []Genre `json:"genres" gorm:"many2many:genre_titles;constraint:OnDelete:CASCADE;"`

	// Rating is the read-time average of review scores. Never stored; filled
	// by the repository on reads, nil when the title has no reviews.
	Rating *float64 `json:"rating" gorm:"-"`
}

func (Title) TableName() string {
	return "titles"
}
