package domain

import (
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessGetRecipeForm   = "success get recipe form"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "Recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedGetRecipeForm   = "failed to get recipe form"
	MessageFailedCreateRecipe    = "Failed to insert recipe into database"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "Failed to delete recipe"

	ErrRecipeNotFound           = NewError(ErrNotFound, "Recipe not found")
	ErrUnauthorizedRecipeAccess = NewError(ErrForbidden, "Unauthorized")
	ErrRecipeNameTaken          = NewError(ErrConflict, "a recipe with this name already exists")
	ErrRecipeSlugTaken          = NewError(ErrConflict, "a recipe with the same URL already exists")
	ErrRecipeNameRequired       = NewError(ErrValidation, "recipe name is required")
	ErrUnknownCuisine           = NewError(ErrValidation, "unknown cuisine")
	ErrInvalidTag               = NewError(ErrValidation, "invalid dietary tag")
	ErrInvalidImageFormat       = NewError(ErrValidation, "invalid image format")
	ErrInvalidTime              = NewError(ErrValidation, "prep and cook time must be non-negative whole minutes")
)

type (
	// RecipeForm carries the fields of the create and edit forms.
	// Name is ignored on edit. Ingredients is only applied on edit when
	// IngredientsSet is true.
	RecipeForm struct {
		Name           string   `form:"recipe_name" validate:"omitempty,max=200"`
		Description    string   `form:"description" validate:"max=2000"`
		CuisineID      string   `form:"cuisine_type" validate:"required"`
		PrepTime       int      `form:"prep_time" validate:"min=0"`
		CookTime       int      `form:"cook_time" validate:"min=0"`
		Instructions   string   `form:"instructions"`
		Ingredients    string   `form:"ingredients"`
		IngredientsSet bool     `form:"-"`
		Tags           []string `form:"tags[]" validate:"dive,dietary_tag"`
		Image          *multipart.FileHeader
	}

	Recipe struct {
		ID           string    `json:"id"`
		Name         string    `json:"recipe_name"`
		Slug         string    `json:"slug"`
		Description  string    `json:"recipe_description"`
		CuisineID    string    `json:"cuisine_id"`
		OwnerID      string    `json:"user_id"`
		PrepTime     int       `json:"prep_time"`
		CookTime     int       `json:"cook_time"`
		Instructions string    `json:"instructions"`
		ImageURL     string    `json:"recipe_image,omitempty"`
		AvgRating    float64   `json:"avg_rating"`
		RatingCount  int64     `json:"rating_count"`
		CreatedAt    time.Time `json:"created_at"`
	}

	RecipeDetail struct {
		Recipe
		Ingredients []string `json:"ingredients"`
		Tags        []string `json:"tags"`
		CanEdit     bool     `json:"can_edit"`
	}

	Cuisine struct {
		ID      string   `json:"id"`
		Regions []string `json:"regions,omitempty"`
		Types   []string `json:"types,omitempty"`
	}

	CreateRecipeFormResponse struct {
		Cuisines []Cuisine `json:"cuisines"`
		Tags     []string  `json:"tags"`
	}

	EditRecipeFormResponse struct {
		Recipe   RecipeDetail `json:"recipe"`
		Cuisines []Cuisine    `json:"cuisines"`
		AllTags  []string     `json:"all_tags"`
	}

	RecipeListResponse struct {
		Recipes []Recipe `json:"recipes"`
	}
)
