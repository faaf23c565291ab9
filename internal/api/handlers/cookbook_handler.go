package handlers

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/pkg/cookbook"
	"github.com/gofiber/fiber/v2"
)

type (
	CookbookHandler interface {
		SaveToCookbook(c *fiber.Ctx) error
		ToggleCookbook(c *fiber.Ctx) error
		CheckCookbook(c *fiber.Ctx) error
		GetCookbook(c *fiber.Ctx) error
	}

	cookbookHandler struct {
		cookbookService cookbook.CookbookService
	}
)

func NewCookbookHandler(cookbookService cookbook.CookbookService) CookbookHandler {
	return &cookbookHandler{cookbookService: cookbookService}
}

func (h *cookbookHandler) SaveToCookbook(c *fiber.Ctx) error {
	if err := h.cookbookService.Add(c.Context(), middleware.ActorFrom(c), c.Params("name")); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSaveToCookbook, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSaveToCookbook)
}

func (h *cookbookHandler) ToggleCookbook(c *fiber.Ctx) error {
	action, err := h.cookbookService.Toggle(c.Context(), middleware.ActorFrom(c), c.Params("name"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedToggleCookbook, err)
	}

	message := domain.MessageSuccessSaveToCookbook
	if action == domain.CookbookRemoved {
		message = domain.MessageSuccessRemoveFromCookbook
	}
	return presenters.SuccessResponse(c, fiber.Map{"in_cookbook": action == domain.CookbookAdded}, fiber.StatusOK, message)
}

// CheckCookbook answers false rather than failing for anonymous callers.
func (h *cookbookHandler) CheckCookbook(c *fiber.Ctx) error {
	in, err := h.cookbookService.IsMember(c.Context(), middleware.ActorFrom(c), c.Params("name"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetCookbook, err)
	}
	return c.JSON(fiber.Map{"in_cookbook": in})
}

func (h *cookbookHandler) GetCookbook(c *fiber.Ctx) error {
	recipes, err := h.cookbookService.List(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetCookbook, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"recipes": recipes}, fiber.StatusOK, domain.MessageSuccessGetCookbook)
}
