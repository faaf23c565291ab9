package rating

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/database"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RatingRepository interface {
		UpsertRating(ctx context.Context, accountID, recipeID uuid.UUID, value int) error
		GetSummary(ctx context.Context, recipeID uuid.UUID) (domain.RatingSummary, error)
	}

	ratingRepository struct {
		db *gorm.DB
	}
)

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// UpsertRating keeps one rating per account and recipe; rating again
// overwrites the value.
func (r *ratingRepository) UpsertRating(ctx context.Context, accountID, recipeID uuid.UUID, value int) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entities.Rating{AccountID: accountID, RecipeID: recipeID, Value: value}).Error
	return database.Wrap(err)
}

func (r *ratingRepository) GetSummary(ctx context.Context, recipeID uuid.UUID) (domain.RatingSummary, error) {
	var summary struct {
		Mean  float64
		Count int64
	}
	if err := r.db.WithContext(ctx).Model(&entities.Rating{}).
		Select("COALESCE(AVG(value), 0) AS mean, COUNT(*) AS count").
		Where("recipe_id = ?", recipeID).
		Scan(&summary).Error; err != nil {
		return domain.RatingSummary{}, database.Wrap(err)
	}
	return domain.RatingSummary{Mean: summary.Mean, Count: summary.Count}, nil
}
