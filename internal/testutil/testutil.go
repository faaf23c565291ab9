// Package testutil provides database and fixture helpers shared by tests.
package testutil

import (
	migration "Recipe-Share-Backend/cmd/database/migrate"
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/pkg/database"
	"bytes"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SetupTestDB opens a migrated SQLite database in a temporary directory.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateAccount inserts a regular account whose password is "password".
func CreateAccount(t *testing.T, db *gorm.DB, username string) entities.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	account := entities.Account{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, db.Create(&account).Error)
	require.NoError(t, db.Create(&entities.RegularUser{AccountID: account.ID}).Error)
	return account
}

func CreateAdmin(t *testing.T, db *gorm.DB, username string) entities.Account {
	t.Helper()

	account := CreateAccount(t, db, username)
	require.NoError(t, db.Where("account_id = ?", account.ID).Delete(&entities.RegularUser{}).Error)
	require.NoError(t, db.Create(&entities.Admin{AccountID: account.ID, AdminName: username}).Error)
	return account
}

func Actor(account entities.Account) domain.Actor {
	return domain.Actor{AccountID: account.ID, Role: domain.RoleUser}
}

func AdminActor(account entities.Account) domain.Actor {
	return domain.Actor{AccountID: account.ID, Role: domain.RoleAdmin}
}

// CreateRecipe inserts a recipe row with the given tags and no ingredients.
func CreateRecipe(t *testing.T, db *gorm.DB, owner entities.Account, name string, tags ...string) entities.Recipe {
	t.Helper()

	recipe := entities.Recipe{
		ID:        uuid.New(),
		Name:      name,
		Slug:      utils.Slugify(name),
		AccountID: owner.ID,
		CuisineID: "Italian",
	}
	require.NoError(t, db.Create(&recipe).Error)
	for _, tag := range tags {
		require.NoError(t, db.Create(&entities.RecipeRestriction{RecipeID: recipe.ID, Tag: tag}).Error)
	}
	return recipe
}

func Rate(t *testing.T, db *gorm.DB, account entities.Account, recipe entities.Recipe, value int) {
	t.Helper()
	require.NoError(t, db.Create(&entities.Rating{AccountID: account.ID, RecipeID: recipe.ID, Value: value}).Error)
}

// Count returns the number of rows in model's table matching query.
func Count(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()

	var n int64
	tx := db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&n).Error)
	return n
}

// FileHeader builds a multipart file header holding content.
func FileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}
