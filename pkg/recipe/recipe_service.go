package recipe

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/logging"
	"Recipe-Share-Backend/internal/metrics"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/storage"
	"context"
	"fmt"
	"github.com/google/uuid"
	"strings"
	"time"
)

type (
	RecipeService interface {
		CreateForm(ctx context.Context) (domain.CreateRecipeFormResponse, error)
		Create(ctx context.Context, actor domain.Actor, form domain.RecipeForm) (string, error)
		Read(ctx context.Context, viewer domain.Actor, slug string) (domain.RecipeDetail, error)
		EditForm(ctx context.Context, actor domain.Actor, slug string) (domain.EditRecipeFormResponse, error)
		Update(ctx context.Context, actor domain.Actor, slug string, form domain.RecipeForm) (string, error)
		Delete(ctx context.Context, actor domain.Actor, name string) error
		List(ctx context.Context, search string) ([]domain.Recipe, error)
		Cuisines(ctx context.Context) ([]domain.Cuisine, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		storage          storage.ImageStorage
	}
)

const imageFolder = "recipes"

func NewRecipeService(recipeRepository RecipeRepository, imageStorage storage.ImageStorage) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		storage:          imageStorage,
	}
}

// ToDomain converts a rated recipe row to its response form.
func ToDomain(r *entities.RatedRecipe) domain.Recipe {
	return domain.Recipe{
		ID:           r.ID.String(),
		Name:         r.Name,
		Slug:         r.Slug,
		Description:  r.Description,
		CuisineID:    r.CuisineID,
		OwnerID:      r.AccountID.String(),
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Instructions: r.Instructions,
		ImageURL:     r.ImageURL,
		AvgRating:    r.AvgRating,
		RatingCount:  r.RatingCount,
		CreatedAt:    r.CreatedAt,
	}
}

func ToDomainList(rows []*entities.RatedRecipe) []domain.Recipe {
	recipes := make([]domain.Recipe, 0, len(rows))
	for _, r := range rows {
		recipes = append(recipes, ToDomain(r))
	}
	return recipes
}

// ParseIngredients splits a comma separated list, trimming each entry and
// skipping empty ones.
func ParseIngredients(raw string) []string {
	ingredients := []string{}
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			ingredients = append(ingredients, name)
		}
	}
	return ingredients
}

func distinctTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, tag := range tags {
		if !domain.IsDietaryTag(tag) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTag, tag)
		}
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out, nil
}

func (s *recipeService) validate(ctx context.Context, form domain.RecipeForm) ([]string, error) {
	if form.PrepTime < 0 || form.CookTime < 0 {
		return nil, domain.ErrInvalidTime
	}
	tags, err := distinctTags(form.Tags)
	if err != nil {
		return nil, err
	}
	ok, err := s.recipeRepository.CuisineExists(ctx, form.CuisineID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnknownCuisine
	}
	if form.Image != nil {
		if _, err := storage.CheckExtension(form.Image.Filename, storage.AllowImage...); err != nil {
			return nil, err
		}
	}
	return tags, nil
}

func (s *recipeService) upload(recipeID uuid.UUID, form domain.RecipeForm) (string, string, error) {
	if form.Image == nil {
		return "", "", nil
	}
	objectKey, err := s.storage.UploadFile(
		fmt.Sprintf("recipe-%s-%d", recipeID.String(), time.Now().UnixNano()),
		form.Image,
		imageFolder,
		storage.AllowImage...,
	)
	if err != nil {
		return "", "", fmt.Errorf("%w: upload image: %w", domain.ErrStorage, err)
	}
	return objectKey, s.storage.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) removeImage(objectKey string) {
	if objectKey == "" {
		return
	}
	if err := s.storage.DeleteFile(objectKey); err != nil {
		logging.Warn().Err(err).Str("key", objectKey).Msg("failed to delete recipe image")
	}
}

func (s *recipeService) CreateForm(ctx context.Context) (domain.CreateRecipeFormResponse, error) {
	cuisines, err := s.Cuisines(ctx)
	if err != nil {
		return domain.CreateRecipeFormResponse{}, err
	}
	return domain.CreateRecipeFormResponse{Cuisines: cuisines, Tags: domain.AllTags}, nil
}

// Create stores a new recipe owned by actor and returns its slug. When any
// write fails nothing is kept, including the uploaded image.
func (s *recipeService) Create(ctx context.Context, actor domain.Actor, form domain.RecipeForm) (string, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return "", domain.ErrRecipeNameRequired
	}
	slug := utils.Slugify(name)

	tags, err := s.validate(ctx, form)
	if err != nil {
		return "", err
	}

	recipe := &entities.Recipe{
		ID:           uuid.New(),
		Name:         name,
		Slug:         slug,
		AccountID:    actor.AccountID,
		CuisineID:    form.CuisineID,
		Description:  form.Description,
		PrepTime:     form.PrepTime,
		CookTime:     form.CookTime,
		Instructions: form.Instructions,
	}

	objectKey, link, err := s.upload(recipe.ID, form)
	if err != nil {
		return "", err
	}
	recipe.ImageURL = link

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, ParseIngredients(form.Ingredients), tags); err != nil {
		s.removeImage(objectKey)
		return "", err
	}

	metrics.RecipesCreated.Inc()
	logging.Info().Str("recipe", name).Str("account_id", actor.AccountID.String()).Msg("recipe created")
	return slug, nil
}

func (s *recipeService) detail(ctx context.Context, viewer domain.Actor, slug string) (domain.RecipeDetail, error) {
	row, err := s.recipeRepository.GetRecipeBySlug(ctx, utils.NormalizeSlug(slug))
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	ingredients, err := s.recipeRepository.GetIngredients(ctx, row.ID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	tags, err := s.recipeRepository.GetTags(ctx, row.ID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	return domain.RecipeDetail{
		Recipe:      ToDomain(row),
		Ingredients: ingredients,
		Tags:        tags,
		CanEdit:     viewer.AccountID != uuid.Nil && viewer.CanModify(row.AccountID),
	}, nil
}

// Read returns the recipe behind slug. A zero viewer is anonymous.
func (s *recipeService) Read(ctx context.Context, viewer domain.Actor, slug string) (domain.RecipeDetail, error) {
	return s.detail(ctx, viewer, slug)
}

func (s *recipeService) EditForm(ctx context.Context, actor domain.Actor, slug string) (domain.EditRecipeFormResponse, error) {
	detail, err := s.detail(ctx, actor, slug)
	if err != nil {
		return domain.EditRecipeFormResponse{}, err
	}
	if !detail.CanEdit {
		return domain.EditRecipeFormResponse{}, domain.ErrUnauthorizedRecipeAccess
	}
	cuisines, err := s.Cuisines(ctx)
	if err != nil {
		return domain.EditRecipeFormResponse{}, err
	}
	return domain.EditRecipeFormResponse{Recipe: detail, Cuisines: cuisines, AllTags: domain.AllTags}, nil
}

// Update applies form to the recipe behind slug. The name is kept, so the
// returned slug is the one the recipe already had.
func (s *recipeService) Update(ctx context.Context, actor domain.Actor, slug string, form domain.RecipeForm) (string, error) {
	row, err := s.recipeRepository.GetRecipeBySlug(ctx, utils.NormalizeSlug(slug))
	if err != nil {
		return "", err
	}
	if !actor.CanModify(row.AccountID) {
		return "", domain.ErrUnauthorizedRecipeAccess
	}

	tags, err := s.validate(ctx, form)
	if err != nil {
		return "", err
	}

	recipe := &entities.Recipe{
		ID:           row.ID,
		CuisineID:    form.CuisineID,
		Description:  form.Description,
		PrepTime:     form.PrepTime,
		CookTime:     form.CookTime,
		Instructions: form.Instructions,
		ImageURL:     row.ImageURL,
	}

	objectKey, link, err := s.upload(row.ID, form)
	if err != nil {
		return "", err
	}
	if link != "" {
		recipe.ImageURL = link
	}

	var ingredients []string
	if form.IngredientsSet {
		ingredients = ParseIngredients(form.Ingredients)
	}
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, ingredients, form.IngredientsSet, tags); err != nil {
		s.removeImage(objectKey)
		return "", err
	}

	if link != "" && row.ImageURL != "" {
		s.removeImage(s.storage.GetObjectKeyFromLink(row.ImageURL))
	}

	logging.Info().Str("recipe", row.Name).Str("account_id", actor.AccountID.String()).Msg("recipe updated")
	return row.Slug, nil
}

// Delete removes the named recipe. Only its owner or an admin may do so.
func (s *recipeService) Delete(ctx context.Context, actor domain.Actor, name string) error {
	recipe, err := s.recipeRepository.GetRecipeByName(ctx, name)
	if err != nil {
		return err
	}
	if !actor.CanModify(recipe.AccountID) {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		return err
	}
	if recipe.ImageURL != "" {
		s.removeImage(s.storage.GetObjectKeyFromLink(recipe.ImageURL))
	}

	metrics.RecipesDeleted.Inc()
	logging.Info().Str("recipe", name).Str("account_id", actor.AccountID.String()).Msg("recipe deleted")
	return nil
}

func (s *recipeService) List(ctx context.Context, search string) ([]domain.Recipe, error) {
	rows, err := s.recipeRepository.GetRecipes(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return ToDomainList(rows), nil
}

func (s *recipeService) Cuisines(ctx context.Context) ([]domain.Cuisine, error) {
	rows, err := s.recipeRepository.GetCuisines(ctx)
	if err != nil {
		return nil, err
	}

	cuisines := make([]domain.Cuisine, 0, len(rows))
	for _, c := range rows {
		cuisine := domain.Cuisine{ID: c.ID}
		for _, r := range c.Regions {
			cuisine.Regions = append(cuisine.Regions, r.RegionDesc)
		}
		for _, t := range c.Types {
			cuisine.Types = append(cuisine.Types, t.TypeDescription)
		}
		cuisines = append(cuisines, cuisine)
	}
	return cuisines, nil
}
