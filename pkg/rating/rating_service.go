package rating

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/metrics"
	"Recipe-Share-Backend/pkg/recipe"
	"context"
)

type (
	RatingService interface {
		Rate(ctx context.Context, actor domain.Actor, recipeName string, value int) (domain.RatingSummary, error)
		Aggregate(ctx context.Context, recipeName string) (domain.RatingSummary, error)
	}

	ratingService struct {
		ratingRepository RatingRepository
		recipeRepository recipe.RecipeRepository
	}
)

func NewRatingService(ratingRepository RatingRepository, recipeRepository recipe.RecipeRepository) RatingService {
	return &ratingService{
		ratingRepository: ratingRepository,
		recipeRepository: recipeRepository,
	}
}

// Rate records the actor's rating and returns the recipe's new aggregate. The
// value is stored as given; range checks belong to the caller.
func (s *ratingService) Rate(ctx context.Context, actor domain.Actor, recipeName string, value int) (domain.RatingSummary, error) {
	r, err := s.recipeRepository.GetRecipeByName(ctx, recipeName)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	if err := s.ratingRepository.UpsertRating(ctx, actor.AccountID, r.ID, value); err != nil {
		return domain.RatingSummary{}, err
	}
	metrics.RatingsSubmitted.Inc()
	return s.ratingRepository.GetSummary(ctx, r.ID)
}

func (s *ratingService) Aggregate(ctx context.Context, recipeName string) (domain.RatingSummary, error) {
	r, err := s.recipeRepository.GetRecipeByName(ctx, recipeName)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return s.ratingRepository.GetSummary(ctx, r.ID)
}
