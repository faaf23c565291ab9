package recommendation

import (
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/database"
	"Recipe-Share-Backend/pkg/recipe"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecommendationRepository interface {
		GetRestrictions(ctx context.Context, accountID uuid.UUID) ([]string, error)
		GetRecipesWithAllTags(ctx context.Context, tags []string) ([]*entities.RatedRecipe, error)
	}

	recommendationRepository struct {
		db *gorm.DB
	}
)

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) GetRestrictions(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	var tags []string
	if err := r.db.WithContext(ctx).Model(&entities.UserRestriction{}).
		Where("account_id = ?", accountID).
		Pluck("tag", &tags).Error; err != nil {
		return nil, database.Wrap(err)
	}
	return tags, nil
}

// GetRecipesWithAllTags returns recipes carrying every tag in tags, best rated
// first with ties broken by name. No tags means no filter.
func (r *recommendationRepository) GetRecipesWithAllTags(ctx context.Context, tags []string) ([]*entities.RatedRecipe, error) {
	query := recipe.RatedRecipes(r.db.WithContext(ctx))
	if len(tags) > 0 {
		query = query.Where(
			`recipes.id IN (SELECT recipe_id FROM recipe_restrictions WHERE tag IN ?
				GROUP BY recipe_id HAVING COUNT(DISTINCT tag) = ?)`,
			tags, len(tags),
		)
	}

	var recipes []*entities.RatedRecipe
	if err := query.Order("avg_rating DESC, recipes.name ASC").Scan(&recipes).Error; err != nil {
		return nil, database.Wrap(err)
	}
	return recipes, nil
}
