package migration

import (
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/logging"
	"fmt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every table in foreign-key order: a table only references
// tables listed before it.
func Models() []any {
	return []any{
		&entities.Account{},
		&entities.RegularUser{},
		&entities.Admin{},
		&entities.UserRestriction{},
		&entities.Cuisine{},
		&entities.RegionalCuisine{},
		&entities.CuisineType{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.RecipeRestriction{},
		&entities.Cookbook{},
		&entities.CookbookEntry{},
		&entities.Rating{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrating %T: %w", model, err)
		}
	}

	if err := SeedCuisines(db); err != nil {
		return fmt.Errorf("seeding cuisines: %w", err)
	}

	logging.Info().Msg("Database migration complete")
	return nil
}

var cuisineSeed = []struct {
	id      string
	regions []string
	types   []string
}{
	{"American", []string{"North America"}, []string{"Comfort Food", "Barbecue"}},
	{"Chinese", []string{"East Asia"}, []string{"Stir Fry", "Dim Sum"}},
	{"French", []string{"Western Europe"}, []string{"Bistro", "Pastry"}},
	{"Indian", []string{"South Asia"}, []string{"Curry", "Tandoori"}},
	{"Italian", []string{"Southern Europe"}, []string{"Pasta", "Pizza"}},
	{"Japanese", []string{"East Asia"}, []string{"Sushi", "Noodles"}},
	{"Korean", []string{"East Asia"}, []string{"Barbecue", "Fermented"}},
	{"Mediterranean", []string{"Southern Europe", "Middle East"}, []string{"Grill", "Mezze"}},
	{"Mexican", []string{"North America"}, []string{"Street Food", "Stew"}},
	{"Thai", []string{"Southeast Asia"}, []string{"Curry", "Noodles"}},
}

// SeedCuisines inserts the reference cuisines. Existing rows are left alone.
func SeedCuisines(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range cuisineSeed {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&entities.Cuisine{ID: c.id}).Error; err != nil {
				return err
			}
			for _, r := range c.regions {
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
					Create(&entities.RegionalCuisine{CuisineID: c.id, RegionDesc: r}).Error; err != nil {
					return err
				}
			}
			for _, ty := range c.types {
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
					Create(&entities.CuisineType{CuisineID: c.id, TypeDescription: ty}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
