package recommendation

import (
	"context"
	"testing"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func names(recipes []domain.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Name)
	}
	return out
}

func restrict(t *testing.T, db *gorm.DB, account entities.Account, tags ...string) {
	t.Helper()
	for _, tag := range tags {
		require.NoError(t, db.Create(&entities.UserRestriction{AccountID: account.ID, Tag: tag}).Error)
	}
}

func TestRecommendRequiresEveryTag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRecommendationService(NewRecommendationRepository(db))
	owner := testutil.CreateAccount(t, db, "owner")
	viewer := testutil.CreateAccount(t, db, "viewer")

	testutil.CreateRecipe(t, db, owner, "R1", domain.TagVegan)
	testutil.CreateRecipe(t, db, owner, "R2", domain.TagVegan, domain.TagGlutenFree)
	testutil.CreateRecipe(t, db, owner, "R3", domain.TagGlutenFree)
	restrict(t, db, viewer, domain.TagVegan, domain.TagGlutenFree)

	recipes, err := service.Recommend(context.Background(), testutil.Actor(viewer))
	require.NoError(t, err)
	assert.Equal(t, []string{"R2"}, names(recipes))
}

func TestRecommendWithoutRestrictionsReturnsAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRecommendationService(NewRecommendationRepository(db))
	owner := testutil.CreateAccount(t, db, "owner")
	free := testutil.CreateAccount(t, db, "free")
	none := testutil.CreateAccount(t, db, "none")

	testutil.CreateRecipe(t, db, owner, "Beta", domain.TagVegan)
	testutil.CreateRecipe(t, db, owner, "Alpha")
	restrict(t, db, none, domain.RestrictionNone, domain.TagVegan)

	for _, account := range []entities.Account{free, none} {
		recipes, err := service.Recommend(context.Background(), testutil.Actor(account))
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Beta"}, names(recipes), account.Username)
	}
}

func TestRecommendOrdersByRating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRecommendationService(NewRecommendationRepository(db))
	owner := testutil.CreateAccount(t, db, "owner")
	rater := testutil.CreateAccount(t, db, "rater")
	viewer := testutil.CreateAccount(t, db, "viewer")

	low := testutil.CreateRecipe(t, db, owner, "Low", domain.TagVegetarian)
	high := testutil.CreateRecipe(t, db, owner, "High", domain.TagVegetarian)
	testutil.CreateRecipe(t, db, owner, "Unrated", domain.TagVegetarian)
	testutil.CreateRecipe(t, db, owner, "Meat")
	testutil.Rate(t, db, rater, low, 2)
	testutil.Rate(t, db, rater, high, 5)
	restrict(t, db, viewer, domain.TagVegetarian)

	recipes, err := service.Recommend(context.Background(), testutil.Actor(viewer))
	require.NoError(t, err)
	assert.Equal(t, []string{"High", "Low", "Unrated"}, names(recipes))
	assert.Equal(t, 5.0, recipes[0].AvgRating)
	assert.Equal(t, 0.0, recipes[2].AvgRating)
}
