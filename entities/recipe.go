// File: entities/recipe.go
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is keyed by a surrogate ID. Name and Slug are both unique and never
// change after creation.
type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"recipe_name"`
	Slug         string    `gorm:"uniqueIndex;not null" json:"slug"`
	AccountID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CuisineID    string    `gorm:"size:64;not null" json:"cuisine_id"`
	Description  string    `gorm:"type:text" json:"recipe_description"`
	PrepTime     int       `json:"prep_time"`
	CookTime     int       `json:"cook_time"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	ImageURL     string    `json:"recipe_image,omitempty"`

	Account      *Account             `gorm:"foreignKey:AccountID"`
	Cuisine      *Cuisine             `gorm:"foreignKey:CuisineID"`
	Ingredients  []*Ingredient        `gorm:"foreignKey:RecipeID"`
	Restrictions []*RecipeRestriction `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type Ingredient struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;index;not null" json:"recipe_id"`
	Name     string    `gorm:"not null" json:"ingredient_name"`
}

type RecipeRestriction struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	Tag      string    `gorm:"primaryKey;size:32" json:"tag"`
}

// RatedRecipe is a read model: a recipe row joined with its rating aggregate.
type RatedRecipe struct {
	ID           uuid.UUID
	Name         string
	Slug         string
	AccountID    uuid.UUID
	CuisineID    string
	Description  string
	PrepTime     int
	CookTime     int
	Instructions string
	ImageURL     string
	CreatedAt    time.Time
	AvgRating    float64
	RatingCount  int64
}
