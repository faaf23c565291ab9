package cookbook

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/database"
	"Recipe-Share-Backend/pkg/recipe"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type (
	CookbookRepository interface {
		EnsureCookbook(ctx context.Context, accountID uuid.UUID) error
		IsMember(ctx context.Context, accountID, recipeID uuid.UUID) (bool, error)
		AddEntry(ctx context.Context, accountID, recipeID uuid.UUID) error
		ToggleEntry(ctx context.Context, accountID, recipeID uuid.UUID) (domain.CookbookAction, error)
		GetCookbookRecipes(ctx context.Context, accountID uuid.UUID) ([]*entities.RatedRecipe, error)
	}

	cookbookRepository struct {
		db *gorm.DB
	}
)

func NewCookbookRepository(db *gorm.DB) CookbookRepository {
	return &cookbookRepository{db: db}
}

func ensureCookbook(tx *gorm.DB, accountID uuid.UUID) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.Cookbook{AccountID: accountID}).Error
}

// insertEntry reports whether a new row was written. An existing entry is
// left untouched.
func insertEntry(tx *gorm.DB, accountID, recipeID uuid.UUID) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.CookbookEntry{CookbookID: accountID, RecipeID: recipeID, CreatedAt: time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *cookbookRepository) EnsureCookbook(ctx context.Context, accountID uuid.UUID) error {
	return database.Wrap(ensureCookbook(r.db.WithContext(ctx), accountID))
}

func (r *cookbookRepository) IsMember(ctx context.Context, accountID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.CookbookEntry{}).
		Where("cookbook_id = ? AND recipe_id = ?", accountID, recipeID).
		Count(&count).Error; err != nil {
		return false, database.Wrap(err)
	}
	return count > 0, nil
}

func (r *cookbookRepository) AddEntry(ctx context.Context, accountID, recipeID uuid.UUID) error {
	return database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := ensureCookbook(tx, accountID); err != nil {
			return err
		}
		added, err := insertEntry(tx, accountID, recipeID)
		if err != nil {
			return err
		}
		if !added {
			return domain.ErrAlreadyInCookbook
		}
		return nil
	})
}

// ToggleEntry removes the entry when present and inserts it otherwise. The
// composite key decides the outcome, so concurrent toggles cannot both insert.
func (r *cookbookRepository) ToggleEntry(ctx context.Context, accountID, recipeID uuid.UUID) (domain.CookbookAction, error) {
	var action domain.CookbookAction
	err := database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := ensureCookbook(tx, accountID); err != nil {
			return err
		}

		res := tx.Where("cookbook_id = ? AND recipe_id = ?", accountID, recipeID).Delete(&entities.CookbookEntry{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			action = domain.CookbookRemoved
			return nil
		}

		if _, err := insertEntry(tx, accountID, recipeID); err != nil {
			return err
		}
		action = domain.CookbookAdded
		return nil
	})
	if err != nil {
		return "", err
	}
	return action, nil
}

// GetCookbookRecipes lists the recipes the account owns together with the ones
// saved in its cookbook, each once.
func (r *cookbookRepository) GetCookbookRecipes(ctx context.Context, accountID uuid.UUID) ([]*entities.RatedRecipe, error) {
	var recipes []*entities.RatedRecipe
	if err := recipe.RatedRecipes(r.db.WithContext(ctx)).
		Where("recipes.account_id = ? OR recipes.id IN (SELECT recipe_id FROM cookbook_entries WHERE cookbook_id = ?)", accountID, accountID).
		Order("recipes.name").
		Scan(&recipes).Error; err != nil {
		return nil, database.Wrap(err)
	}
	return recipes, nil
}
