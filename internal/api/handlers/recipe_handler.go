package handlers

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/pkg/recipe"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		Dashboard(c *fiber.Ctx) error
		ListRecipes(c *fiber.Ctx) error
		CreateRecipeForm(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		EditRecipeForm(c *fiber.Ctx) error
		EditRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func recipeLocation(slug string) string {
	return "/recipe/" + slug
}

func (h *recipeHandler) list(c *fiber.Ctx) error {
	recipes, err := h.recipeService.List(c.Context(), c.Query("search"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"recipes": recipes}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) Dashboard(c *fiber.Ctx) error {
	return h.list(c)
}

func (h *recipeHandler) ListRecipes(c *fiber.Ctx) error {
	return h.list(c)
}

func (h *recipeHandler) CreateRecipeForm(c *fiber.Ctx) error {
	res, err := h.recipeService.CreateForm(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipeForm, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"cuisines": res.Cuisines, "tags": res.Tags}, fiber.StatusOK, domain.MessageSuccessGetRecipeForm)
}

func (h *recipeHandler) parseForm(c *fiber.Ctx) (domain.RecipeForm, error) {
	form, err := parseRecipeForm(c)
	if err != nil {
		return form, err
	}
	return form, h.validator.Struct(form)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	form, err := h.parseForm(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	slug, err := h.recipeService.Create(c.Context(), middleware.ActorFrom(c), form)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateRecipe, err)
	}
	return c.Redirect(recipeLocation(slug), fiber.StatusFound)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	detail, err := h.recipeService.Read(c.Context(), middleware.ActorFrom(c), c.Params("slug"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"recipe": detail}, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) EditRecipeForm(c *fiber.Ctx) error {
	slug := c.Params("slug")
	res, err := h.recipeService.EditForm(c.Context(), middleware.ActorFrom(c), slug)
	if errors.Is(err, domain.ErrForbidden) {
		return c.Redirect(recipeLocation(slug), fiber.StatusFound)
	}
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipeForm, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"recipe":   res.Recipe,
		"cuisines": res.Cuisines,
		"all_tags": res.AllTags,
	}, fiber.StatusOK, domain.MessageSuccessGetRecipeForm)
}

func (h *recipeHandler) EditRecipe(c *fiber.Ctx) error {
	slug := c.Params("slug")
	form, err := h.parseForm(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	newSlug, err := h.recipeService.Update(c.Context(), middleware.ActorFrom(c), slug, form)
	if errors.Is(err, domain.ErrForbidden) {
		return c.Redirect(recipeLocation(slug), fiber.StatusFound)
	}
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateRecipe, err)
	}
	return c.Redirect(recipeLocation(newSlug), fiber.StatusFound)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.recipeService.Delete(c.Context(), middleware.ActorFrom(c), c.Params("name")); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteRecipe, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}
