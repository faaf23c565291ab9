package cookbook

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/metrics"
	"Recipe-Share-Backend/pkg/recipe"
	"context"
	"errors"
	"github.com/google/uuid"
)

type (
	CookbookService interface {
		IsMember(ctx context.Context, viewer domain.Actor, recipeName string) (bool, error)
		Add(ctx context.Context, actor domain.Actor, recipeName string) error
		Toggle(ctx context.Context, actor domain.Actor, recipeName string) (domain.CookbookAction, error)
		List(ctx context.Context, actor domain.Actor) ([]domain.Recipe, error)
	}

	cookbookService struct {
		cookbookRepository CookbookRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewCookbookService(cookbookRepository CookbookRepository, recipeRepository recipe.RecipeRepository) CookbookService {
	return &cookbookService{
		cookbookRepository: cookbookRepository,
		recipeRepository:   recipeRepository,
	}
}

// IsMember is false for anonymous viewers and unknown recipes.
func (s *cookbookService) IsMember(ctx context.Context, viewer domain.Actor, recipeName string) (bool, error) {
	if viewer.AccountID == uuid.Nil {
		return false, nil
	}
	r, err := s.recipeRepository.GetRecipeByName(ctx, recipeName)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.cookbookRepository.IsMember(ctx, viewer.AccountID, r.ID)
}

func (s *cookbookService) Add(ctx context.Context, actor domain.Actor, recipeName string) error {
	r, err := s.recipeRepository.GetRecipeByName(ctx, recipeName)
	if err != nil {
		return err
	}
	if err := s.cookbookRepository.AddEntry(ctx, actor.AccountID, r.ID); err != nil {
		return err
	}
	metrics.RecordCookbookChange(string(domain.CookbookAdded))
	return nil
}

func (s *cookbookService) Toggle(ctx context.Context, actor domain.Actor, recipeName string) (domain.CookbookAction, error) {
	r, err := s.recipeRepository.GetRecipeByName(ctx, recipeName)
	if err != nil {
		return "", err
	}
	action, err := s.cookbookRepository.ToggleEntry(ctx, actor.AccountID, r.ID)
	if err != nil {
		return "", err
	}
	metrics.RecordCookbookChange(string(action))
	return action, nil
}

func (s *cookbookService) List(ctx context.Context, actor domain.Actor) ([]domain.Recipe, error) {
	if err := s.cookbookRepository.EnsureCookbook(ctx, actor.AccountID); err != nil {
		return nil, err
	}
	rows, err := s.cookbookRepository.GetCookbookRecipes(ctx, actor.AccountID)
	if err != nil {
		return nil, err
	}
	return recipe.ToDomainList(rows), nil
}
