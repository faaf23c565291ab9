package user

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
	UserRepository interface {
		CreateRegularUser(ctx context.Context, account *entities.Account) error
		GetAccountByUsername(ctx context.Context, username string) (*entities.Account, error)
		GetAccountByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
		IsAdmin(ctx context.Context, id uuid.UUID) (bool, error)
		PromoteToAdmin(ctx context.Context, id uuid.UUID, adminName string) error
		UpdateUsername(ctx context.Context, id uuid.UUID, username string) error
		UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
		UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
		GetRestrictions(ctx context.Context, id uuid.UUID) ([]string, error)
		ReplaceRestrictions(ctx context.Context, id uuid.UUID, tags []string) error
		DeleteAccount(ctx context.Context, id uuid.UUID) ([]string, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateRegularUser inserts the account and its regular-user role row in one
// transaction. A clash on username or email yields ErrDuplicateAccount.
func (r *userRepository) CreateRegularUser(ctx context.Context, account *entities.Account) error {
	return database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Account{}).
			Where("username = ? OR email = ?", account.Username, account.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateAccount
		}

		if err := tx.Create(account).Error; err != nil {
			if database.IsDuplicate(err) {
				return domain.ErrDuplicateAccount
			}
			return err
		}
		return tx.Create(&entities.RegularUser{AccountID: account.ID}).Error
	})
}

func (r *userRepository) getAccount(ctx context.Context, query string, arg any) (*entities.Account, error) {
	var account entities.Account
	if err := r.db.WithContext(ctx).Where(query, arg).First(&account).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, database.Wrap(err)
	}
	return &account, nil
}

func (r *userRepository) GetAccountByUsername(ctx context.Context, username string) (*entities.Account, error) {
	return r.getAccount(ctx, "username = ?", username)
}

func (r *userRepository) GetAccountByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	return r.getAccount(ctx, "id = ?", id)
}

func (r *userRepository) IsAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Admin{}).
		Where("account_id = ?", id).
		Count(&count).Error; err != nil {
		return false, database.Wrap(err)
	}
	return count > 0, nil
}

// PromoteToAdmin moves the account from the regular set to the admin set.
// Promoting an admin again is a no-op.
func (r *userRepository) PromoteToAdmin(ctx context.Context, id uuid.UUID, adminName string) error {
	return database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&entities.RegularUser{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entities.Admin{AccountID: id, AdminName: adminName}).Error
	})
}

func (r *userRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value any, conflict error) error {
	res := r.db.WithContext(ctx).Model(&entities.Account{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		if conflict != nil && database.IsDuplicate(res.Error) {
			return conflict
		}
		return database.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *userRepository) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	return r.updateColumn(ctx, id, "username", username, domain.ErrUsernameTaken)
}

func (r *userRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	return r.updateColumn(ctx, id, "email", email, domain.ErrEmailTaken)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.updateColumn(ctx, id, "password", hash, nil)
}

func (r *userRepository) GetRestrictions(ctx context.Context, id uuid.UUID) ([]string, error) {
	tags := []string{}
	if err := r.db.WithContext(ctx).Model(&entities.UserRestriction{}).
		Where("account_id = ?", id).
		Order("tag").
		Pluck("tag", &tags).Error; err != nil {
		return nil, database.Wrap(err)
	}
	return tags, nil
}

func (r *userRepository) ReplaceRestrictions(ctx context.Context, id uuid.UUID, tags []string) error {
	return database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&entities.UserRestriction{}).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&entities.UserRestriction{AccountID: id, Tag: tag}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteAccount removes the account and everything that references it,
// children first. It returns the image links of the deleted recipes so the
// caller can drop them from storage after commit.
func (r *userRepository) DeleteAccount(ctx context.Context, id uuid.UUID) ([]string, error) {
	var images []string
	err := database.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Account{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrAccountNotFound
		}

		if err := tx.Model(&entities.Recipe{}).
			Where("account_id = ? AND image_url <> ''", id).
			Pluck("image_url", &images).Error; err != nil {
			return err
		}

		const owned = "recipe_id IN (SELECT id FROM recipes WHERE account_id = ?)"
		steps := []struct {
			model any
			query string
			args  []any
		}{
			{&entities.Rating{}, owned + " OR account_id = ?", []any{id, id}},
			{&entities.CookbookEntry{}, owned + " OR cookbook_id = ?", []any{id, id}},
			{&entities.Ingredient{}, owned, []any{id}},
			{&entities.RecipeRestriction{}, owned, []any{id}},
			{&entities.Cookbook{}, "account_id = ?", []any{id}},
			{&entities.UserRestriction{}, "account_id = ?", []any{id}},
			{&entities.Recipe{}, "account_id = ?", []any{id}},
			{&entities.RegularUser{}, "account_id = ?", []any{id}},
			{&entities.Admin{}, "account_id = ?", []any{id}},
			{&entities.Account{}, "id = ?", []any{id}},
		}
		for _, step := range steps {
			if err := tx.Where(step.query, step.args...).Delete(step.model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}
