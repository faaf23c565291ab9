package handlers

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/pkg/rating"
	"Recipe-Share-Backend/pkg/recommendation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RatingHandler interface {
		RateRecipe(c *fiber.Ctx) error
		Recommended(c *fiber.Ctx) error
	}

	ratingHandler struct {
		ratingService         rating.RatingService
		recommendationService recommendation.RecommendationService
		validator             *validator.Validate
	}
)

func NewRatingHandler(
	ratingService rating.RatingService,
	recommendationService recommendation.RecommendationService,
	validator *validator.Validate,
) RatingHandler {
	return &ratingHandler{
		ratingService:         ratingService,
		recommendationService: recommendationService,
		validator:             validator,
	}
}

func (h *ratingHandler) RateRecipe(c *fiber.Ctx) error {
	req := new(domain.RateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRateRecipe, err)
	}

	summary, err := h.ratingService.Rate(c.Context(), middleware.ActorFrom(c), req.RecipeName, req.Rating)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRateRecipe, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"avg_rating":   summary.Mean,
		"rating_count": summary.Count,
	}, fiber.StatusOK, domain.MessageSuccessRateRecipe)
}

func (h *ratingHandler) Recommended(c *fiber.Ctx) error {
	recipes, err := h.recommendationService.Recommend(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecommendations, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"recipes": recipes}, fiber.StatusOK, domain.MessageSuccessGetRecommendations)
}
