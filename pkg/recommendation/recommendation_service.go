package recommendation

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/metrics"
	"Recipe-Share-Backend/pkg/recipe"
	"context"
)

type (
	RecommendationService interface {
		Recommend(ctx context.Context, actor domain.Actor) ([]domain.Recipe, error)
	}

	recommendationService struct {
		recommendationRepository RecommendationRepository
	}
)

func NewRecommendationService(recommendationRepository RecommendationRepository) RecommendationService {
	return &recommendationService{recommendationRepository: recommendationRepository}
}

// Recommend lists recipes that satisfy every restriction of the actor. With
// no restrictions, or with None among them, every recipe qualifies.
func (s *recommendationService) Recommend(ctx context.Context, actor domain.Actor) ([]domain.Recipe, error) {
	restrictions, err := s.recommendationRepository.GetRestrictions(ctx, actor.AccountID)
	if err != nil {
		return nil, err
	}

	tags := distinct(restrictions)
	for _, tag := range tags {
		if tag == domain.RestrictionNone {
			tags = nil
			break
		}
	}

	rows, err := s.recommendationRepository.GetRecipesWithAllTags(ctx, tags)
	if err != nil {
		return nil, err
	}

	metrics.RecommendationResults.Observe(float64(len(rows)))
	return recipe.ToDomainList(rows), nil
}

func distinct(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
