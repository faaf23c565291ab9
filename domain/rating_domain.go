package domain

var (
	MessageSuccessRateRecipe         = "Rating updated successfully"
	MessageSuccessGetRecommendations = "success get recommendations"

	MessageFailedRateRecipe         = "Failed to rate recipe"
	MessageFailedGetRecommendations = "An error occurred while fetching recommendations"
)

type (
	// RateRecipeRequest bounds the value at the HTTP boundary; the ledger
	// itself stores whatever it is given.
	RateRecipeRequest struct {
		RecipeName string `json:"recipe_name" form:"recipe_name" validate:"required"`
		Rating     int    `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	}

	// RatingSummary is the aggregate of all ratings of one recipe. Mean is 0
	// when Count is 0.
	RatingSummary struct {
		Mean  float64 `json:"avg_rating"`
		Count int64   `json:"rating_count"`
	}
)
