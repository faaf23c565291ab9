package recipe

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/testutil"
	"Recipe-Share-Backend/internal/utils/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	service  RecipeService
	imageDir string
	owner    entities.Account
	other    entities.Account
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "/static/images")
	require.NoError(t, err)

	return fixture{
		db:       db,
		service:  NewRecipeService(NewRecipeRepository(db), store),
		imageDir: dir,
		owner:    testutil.CreateAccount(t, db, "owner"),
		other:    testutil.CreateAccount(t, db, "other"),
	}
}

func form(name string) domain.RecipeForm {
	return domain.RecipeForm{
		Name:         name,
		Description:  "A test recipe",
		CuisineID:    "Thai",
		PrepTime:     10,
		CookTime:     20,
		Instructions: "Cook it.",
	}
}

func imageFiles(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "recipes", "*"))
	require.NoError(t, err)
	return files
}

func TestCreateAndRead(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := form("Pad Thai")
	in.Ingredients = "rice noodles, , tofu ,peanuts,"
	in.Tags = []string{domain.TagVegan, domain.TagGlutenFree, domain.TagVegan}

	slug, err := f.service.Create(ctx, testutil.Actor(f.owner), in)
	require.NoError(t, err)
	assert.Equal(t, "pad-thai", slug)

	detail, err := f.service.Read(ctx, domain.Actor{}, "pad-thai")
	require.NoError(t, err)
	assert.Equal(t, "Pad Thai", detail.Name)
	assert.Equal(t, f.owner.ID.String(), detail.OwnerID)
	assert.Equal(t, []string{"rice noodles", "tofu", "peanuts"}, detail.Ingredients)
	assert.ElementsMatch(t, []string{domain.TagVegan, domain.TagGlutenFree}, detail.Tags)
	assert.Equal(t, 0.0, detail.AvgRating)
	assert.Equal(t, int64(0), detail.RatingCount)
	assert.False(t, detail.CanEdit)

	detail, err = f.service.Read(ctx, testutil.Actor(f.owner), "Pad Thai")
	require.NoError(t, err)
	assert.True(t, detail.CanEdit)

	_, err = f.service.Read(ctx, domain.Actor{}, "no-such-recipe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateRejectsSlugCollision(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, testutil.Actor(f.owner), form("Pad Thai"))
	require.NoError(t, err)

	_, err = f.service.Create(ctx, testutil.Actor(f.other), form("pad-thai"))
	assert.ErrorIs(t, err, domain.ErrRecipeSlugTaken)

	_, err = f.service.Create(ctx, testutil.Actor(f.other), form("Pad Thai"))
	assert.ErrorIs(t, err, domain.ErrRecipeNameTaken)

	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.Recipe{}, ""))
}

func TestCreateValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	actor := testutil.Actor(f.owner)

	_, err := f.service.Create(ctx, actor, form("   "))
	assert.ErrorIs(t, err, domain.ErrRecipeNameRequired)

	bad := form("Bad Tags")
	bad.Tags = []string{"Keto"}
	_, err = f.service.Create(ctx, actor, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidTag)

	bad = form("Bad Cuisine")
	bad.CuisineID = "Martian"
	_, err = f.service.Create(ctx, actor, bad)
	assert.ErrorIs(t, err, domain.ErrUnknownCuisine)

	bad = form("Bad Time")
	bad.CookTime = -1
	_, err = f.service.Create(ctx, actor, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad = form("Bad Image")
	bad.Image = testutil.FileHeader(t, "doc.pdf", []byte("%PDF"))
	_, err = f.service.Create(ctx, actor, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)

	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Recipe{}, ""))
	assert.Empty(t, imageFiles(t, f.imageDir))
}

func TestCreateRollsBackOnLastTagFailure(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	injected := errors.New("injected failure")
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_last_tag", func(tx *gorm.DB) {
		if rr, ok := tx.Statement.Dest.(*entities.RecipeRestriction); ok && rr.Tag == domain.TagDairyFree {
			_ = tx.AddError(injected)
		}
	}))

	in := form("Doomed Curry")
	in.Ingredients = "coconut milk, curry paste, rice"
	in.Tags = []string{domain.TagVegan, domain.TagGlutenFree, domain.TagDairyFree}
	in.Image = testutil.FileHeader(t, "curry.png", []byte("png"))

	_, err := f.service.Create(ctx, testutil.Actor(f.owner), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)
	assert.ErrorIs(t, err, domain.ErrStorage)

	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Recipe{}, ""))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Ingredient{}, ""))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.RecipeRestriction{}, ""))
	assert.Empty(t, imageFiles(t, f.imageDir))
}

func TestCreateStoresImage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := form("Photo Soup")
	in.Image = testutil.FileHeader(t, "soup.JPG", []byte("jpg"))
	slug, err := f.service.Create(ctx, testutil.Actor(f.owner), in)
	require.NoError(t, err)

	detail, err := f.service.Read(ctx, domain.Actor{}, slug)
	require.NoError(t, err)
	assert.Contains(t, detail.ImageURL, "/static/images/recipes/recipe-")
	assert.Len(t, imageFiles(t, f.imageDir), 1)
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := form("Green Curry")
	in.Ingredients = "paste, milk"
	in.Tags = []string{domain.TagVegan}
	in.Image = testutil.FileHeader(t, "old.png", []byte("old"))
	slug, err := f.service.Create(ctx, testutil.Actor(f.owner), in)
	require.NoError(t, err)

	edit := form("Ignored New Name")
	edit.Description = "Updated"
	edit.CuisineID = "Indian"
	edit.Tags = []string{domain.TagGlutenFree, domain.TagDairyFree}

	_, err = f.service.Update(ctx, testutil.Actor(f.other), slug, edit)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	newSlug, err := f.service.Update(ctx, testutil.Actor(f.owner), slug, edit)
	require.NoError(t, err)
	assert.Equal(t, slug, newSlug)

	detail, err := f.service.Read(ctx, domain.Actor{}, slug)
	require.NoError(t, err)
	assert.Equal(t, "Green Curry", detail.Name)
	assert.Equal(t, "Updated", detail.Description)
	assert.Equal(t, "Indian", detail.CuisineID)
	assert.ElementsMatch(t, []string{domain.TagGlutenFree, domain.TagDairyFree}, detail.Tags)
	assert.Equal(t, []string{"paste", "milk"}, detail.Ingredients)
	assert.NotEmpty(t, detail.ImageURL)

	edit.IngredientsSet = true
	edit.Ingredients = "basil"
	edit.Image = testutil.FileHeader(t, "new.gif", []byte("new"))
	admin := testutil.CreateAdmin(t, f.db, "admin")
	_, err = f.service.Update(ctx, testutil.AdminActor(admin), slug, edit)
	require.NoError(t, err)

	updated, err := f.service.Read(ctx, domain.Actor{}, slug)
	require.NoError(t, err)
	assert.Equal(t, []string{"basil"}, updated.Ingredients)
	assert.NotEqual(t, detail.ImageURL, updated.ImageURL)
	files := imageFiles(t, f.imageDir)
	require.Len(t, files, 1)
	assert.Equal(t, ".gif", filepath.Ext(files[0]))

	_, err = f.service.Update(ctx, testutil.Actor(f.owner), "missing", edit)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestEditForm(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	slug, err := f.service.Create(ctx, testutil.Actor(f.owner), form("Tom Yum"))
	require.NoError(t, err)

	res, err := f.service.EditForm(ctx, testutil.Actor(f.owner), slug)
	require.NoError(t, err)
	assert.Equal(t, "Tom Yum", res.Recipe.Name)
	assert.Equal(t, domain.AllTags, res.AllTags)
	assert.NotEmpty(t, res.Cuisines)

	_, err = f.service.EditForm(ctx, testutil.Actor(f.other), slug)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteRemovesDependents(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := form("Soup")
	in.Ingredients = "water, salt"
	in.Tags = []string{domain.TagVegan}
	in.Image = testutil.FileHeader(t, "soup.png", []byte("png"))
	_, err := f.service.Create(ctx, testutil.Actor(f.owner), in)
	require.NoError(t, err)

	var soup entities.Recipe
	require.NoError(t, f.db.Where("name = ?", "Soup").First(&soup).Error)
	testutil.Rate(t, f.db, f.other, soup, 5)
	require.NoError(t, f.db.Create(&entities.Cookbook{AccountID: f.other.ID}).Error)
	require.NoError(t, f.db.Create(&entities.CookbookEntry{CookbookID: f.other.ID, RecipeID: soup.ID}).Error)

	err = f.service.Delete(ctx, testutil.Actor(f.other), "Soup")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = f.service.Delete(ctx, testutil.Actor(f.owner), "Nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.service.Delete(ctx, testutil.Actor(f.owner), "Soup"))

	for _, model := range []any{&entities.Rating{}, &entities.CookbookEntry{}, &entities.Ingredient{}, &entities.RecipeRestriction{}} {
		assert.Equal(t, int64(0), testutil.Count(t, f.db, model, "recipe_id = ?", soup.ID), "%T", model)
	}
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Recipe{}, "id = ?", soup.ID))
	assert.Empty(t, imageFiles(t, f.imageDir))
}

func TestAdminCanDeleteAnyRecipe(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	testutil.CreateRecipe(t, f.db, f.owner, "Owner Stew")
	admin := testutil.CreateAdmin(t, f.db, "root")

	require.NoError(t, f.service.Delete(ctx, testutil.AdminActor(admin), "Owner Stew"))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Recipe{}, ""))
}

func TestListSearchAndAggregates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	curry := testutil.CreateRecipe(t, f.db, f.owner, "Red Curry")
	testutil.CreateRecipe(t, f.db, f.owner, "Curry Puff")
	testutil.CreateRecipe(t, f.db, f.owner, "Salad")
	testutil.Rate(t, f.db, f.owner, curry, 4)
	testutil.Rate(t, f.db, f.other, curry, 5)

	all, err := f.service.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := f.service.List(ctx, "cURRy")
	require.NoError(t, err)
	require.Len(t, found, 2)

	byName := map[string]domain.Recipe{}
	for _, r := range found {
		byName[r.Name] = r
	}
	assert.InDelta(t, 4.5, byName["Red Curry"].AvgRating, 1e-9)
	assert.Equal(t, int64(2), byName["Red Curry"].RatingCount)
	assert.Equal(t, 0.0, byName["Curry Puff"].AvgRating)
	assert.Equal(t, int64(0), byName["Curry Puff"].RatingCount)

	none, err := f.service.List(ctx, "pizza")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCuisines(t *testing.T) {
	f := setup(t)

	cuisines, err := f.service.Cuisines(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, cuisines)

	var thai domain.Cuisine
	for _, c := range cuisines {
		if c.ID == "Thai" {
			thai = c
		}
	}
	assert.Equal(t, []string{"Southeast Asia"}, thai.Regions)
	assert.Contains(t, thai.Types, "Curry")
}

func TestParseIngredients(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, ParseIngredients(" a ,, b c ,"))
	assert.Empty(t, ParseIngredients(""))
	assert.Empty(t, ParseIngredients(" , ,"))
}

func TestCanEditOnlyForOwnerOrAdmin(t *testing.T) {
	f := setup(t)
	r := testutil.CreateRecipe(t, f.db, f.owner, "Plain Rice")
	ctx := context.Background()

	detail, err := f.service.Read(ctx, domain.Actor{AccountID: uuid.New(), Role: domain.RoleUser}, r.Slug)
	require.NoError(t, err)
	assert.False(t, detail.CanEdit)

	detail, err = f.service.Read(ctx, domain.Actor{AccountID: uuid.New(), Role: domain.RoleAdmin}, r.Slug)
	require.NoError(t, err)
	assert.True(t, detail.CanEdit)
}
