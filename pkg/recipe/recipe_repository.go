package recipe

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/database"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []string, tags []string) error
		GetRecipeBySlug(ctx context.Context, slug string) (*entities.RatedRecipe, error)
		GetRecipeByName(ctx context.Context, name string) (*entities.Recipe, error)
		GetIngredients(ctx context.Context, recipeID uuid.UUID) ([]string, error)
		GetTags(ctx context.Context, recipeID uuid.UUID) ([]string, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []string, replaceIngredients bool, tags []string) error
		DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
		GetRecipes(ctx context.Context, search string) ([]*entities.RatedRecipe, error)
		GetCuisines(ctx context.Context) ([]*entities.Cuisine, error)
		CuisineExists(ctx context.Context, id string) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// RatedRecipes selects recipe rows joined with their rating aggregate. The
// mean is 0 for recipes nobody rated.
func RatedRecipes(db *gorm.DB) *gorm.DB {
	return db.Table("recipes").
		Select(`recipes.id, recipes.name, recipes.slug, recipes.account_id, recipes.cuisine_id,
			recipes.description, recipes.prep_time, recipes.cook_time, recipes.instructions,
			recipes.image_url, recipes.created_at,
			COALESCE(AVG(ratings.value), 0) AS avg_rating,
			COUNT(ratings.account_id) AS rating_count`).
		Joins("LEFT JOIN ratings ON ratings.recipe_id = recipes.id").
		Group("recipes.id")
}

func insertIngredients(tx *gorm.DB, recipeID uuid.UUID, ingredients []string) error {
	for _, name := range ingredients {
		if err := tx.Create(&entities.Ingredient{RecipeID: recipeID, Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertTags(tx *gorm.DB, recipeID uuid.UUID, tags []string) error {
	for _, tag := range tags {
		if err := tx.Create(&entities.RecipeRestriction{RecipeID: recipeID, Tag: tag}).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateRecipe writes the recipe, its ingredients and its tags in one
// transaction.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []string, tags []string) error {
	return database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		var clash entities.Recipe
		err := tx.Where("name = ? OR slug = ?", recipe.Name, recipe.Slug).Limit(1).Find(&clash).Error
		if err != nil {
			return err
		}
		if clash.ID != uuid.Nil {
			if clash.Name == recipe.Name {
				return domain.ErrRecipeNameTaken
			}
			return domain.ErrRecipeSlugTaken
		}

		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			if database.IsDuplicate(err) {
				return domain.ErrRecipeNameTaken
			}
			return err
		}
		if err := insertIngredients(tx, recipe.ID, ingredients); err != nil {
			return err
		}
		return insertTags(tx, recipe.ID, tags)
	})
}

func (r *recipeRepository) GetRecipeBySlug(ctx context.Context, slug string) (*entities.RatedRecipe, error) {
	var recipes []*entities.RatedRecipe
	if err := RatedRecipes(r.db.WithContext(ctx)).
		Where("recipes.slug = ?", slug).
		Scan(&recipes).Error; err != nil {
		return nil, database.Wrap(err)
	}
	if len(recipes) == 0 {
		return nil, domain.ErrRecipeNotFound
	}
	return recipes[0], nil
}

func (r *recipeRepository) GetRecipeByName(ctx context.Context, name string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&recipe).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, database.Wrap(err)
	}
	return &recipe, nil
}

// GetIngredients returns ingredient names in insertion order.
func (r *recipeRepository) GetIngredients(ctx context.Context, recipeID uuid.UUID) ([]string, error) {
	names := []string{}
	if err := r.db.WithContext(ctx).Model(&entities.Ingredient{}).
		Where("recipe_id = ?", recipeID).
		Order("id").
		Pluck("name", &names).Error; err != nil {
		return nil, database.Wrap(err)
	}
	return names, nil
}

func (r *recipeRepository) GetTags(ctx context.Context, recipeID uuid.UUID) ([]string, error) {
	tags := []string{}
	if err := r.db.WithContext(ctx).Model(&entities.RecipeRestriction{}).
		Where("recipe_id = ?", recipeID).
		Order("tag").
		Pluck("tag", &tags).Error; err != nil {
		return nil, database.Wrap(err)
	}
	return tags, nil
}

// UpdateRecipe rewrites the scalar fields and replaces the tag set. The
// ingredient list is replaced only when replaceIngredients is set. Name and
// slug are never touched.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []string, replaceIngredients bool, tags []string) error {
	return database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		res := tx.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]any{
			"description":  recipe.Description,
			"cuisine_id":   recipe.CuisineID,
			"prep_time":    recipe.PrepTime,
			"cook_time":    recipe.CookTime,
			"instructions": recipe.Instructions,
			"image_url":    recipe.ImageURL,
			"updated_at":   time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRecipeNotFound
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeRestriction{}).Error; err != nil {
			return err
		}
		if err := insertTags(tx, recipe.ID, tags); err != nil {
			return err
		}

		if !replaceIngredients {
			return nil
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		return insertIngredients(tx, recipe.ID, ingredients)
	})
}

// DeleteRecipe removes the recipe and every row that references it.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	return database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		for _, model := range []any{
			&entities.Rating{},
			&entities.CookbookEntry{},
			&entities.Ingredient{},
			&entities.RecipeRestriction{},
		} {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(model).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", recipeID).Delete(&entities.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRecipeNotFound
		}
		return nil
	})
}

// GetRecipes lists recipes whose name contains search, ignoring case. An empty
// search lists everything.
func (r *recipeRepository) GetRecipes(ctx context.Context, search string) ([]*entities.RatedRecipe, error) {
	query := RatedRecipes(r.db.WithContext(ctx))
	if search != "" {
		query = query.Where("LOWER(recipes.name) LIKE LOWER(?)", "%"+search+"%")
	}

	var recipes []*entities.RatedRecipe
	if err := query.Order("recipes.created_at DESC, recipes.name").Scan(&recipes).Error; err != nil {
		return nil, database.Wrap(err)
	}
	return recipes, nil
}

func (r *recipeRepository) GetCuisines(ctx context.Context) ([]*entities.Cuisine, error) {
	var cuisines []*entities.Cuisine
	if err := r.db.WithContext(ctx).
		Preload("Regions", func(db *gorm.DB) *gorm.DB { return db.Order("region_desc") }).
		Preload("Types", func(db *gorm.DB) *gorm.DB { return db.Order("type_description") }).
		Order("id").
		Find(&cuisines).Error; err != nil {
		return nil, database.Wrap(err)
	}
	return cuisines, nil
}

func (r *recipeRepository) CuisineExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Cuisine{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, database.Wrap(err)
	}
	return count > 0, nil
}
