package handlers

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/pkg/user"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Signup(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		Settings(c *fiber.Ctx) error
		ChangeUsername(c *fiber.Ctx) error
		ChangeEmail(c *fiber.Ctx) error
		ChangePassword(c *fiber.Ctx) error
		UpdateSecurityKey(c *fiber.Ctx) error
		UpdateDietRestrictions(c *fiber.Ctx) error
		DeleteAccount(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

// parse decodes the body into req and validates it, writing the error
// response itself when either step fails.
func (h *userHandler) parse(c *fiber.Ctx, req any, failMessage string) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return false, presenters.ErrorResponse(c, fiber.StatusBadRequest, failMessage, err)
	}
	return true, nil
}

func (h *userHandler) Signup(c *fiber.Ctx) error {
	req := new(domain.SignupRequest)
	if ok, err := h.parse(c, req, domain.MessageFailedRegister); !ok {
		return err
	}

	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRegister, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"account_id": res.AccountID}, fiber.StatusOK, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if ok, err := h.parse(c, req, domain.MessageFailedLogin); !ok {
		return err
	}

	session, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedLogin, err)
	}

	middleware.SetSessionCookie(c, session.Token)
	return presenters.SuccessResponse(c, fiber.Map{
		"redirect":   "/dashboard",
		"account_id": session.AccountID,
		"is_admin":   session.IsAdmin,
	}, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) Logout(c *fiber.Ctx) error {
	middleware.ClearSessionCookie(c)
	return c.Redirect("/", fiber.StatusFound)
}

func (h *userHandler) Settings(c *fiber.Ctx) error {
	profile, err := h.userService.Profile(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetProfile, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"profile": profile}, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *userHandler) ChangeUsername(c *fiber.Ctx) error {
	req := new(domain.ChangeUsernameRequest)
	if ok, err := h.parse(c, req, domain.MessageFailedChangeUsername); !ok {
		return err
	}
	if err := h.userService.ChangeUsername(c.Context(), middleware.ActorFrom(c), *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedChangeUsername, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessChangeUsername)
}

func (h *userHandler) ChangeEmail(c *fiber.Ctx) error {
	req := new(domain.ChangeEmailRequest)
	if ok, err := h.parse(c, req, domain.MessageFailedChangeEmail); !ok {
		return err
	}
	if err := h.userService.ChangeEmail(c.Context(), middleware.ActorFrom(c), *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedChangeEmail, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessChangeEmail)
}

func (h *userHandler) ChangePassword(c *fiber.Ctx) error {
	req := new(domain.ChangePasswordRequest)
	if ok, err := h.parse(c, req, domain.MessageFailedChangePassword); !ok {
		return err
	}
	if err := h.userService.ChangePassword(c.Context(), middleware.ActorFrom(c), *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedChangePassword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessChangePassword)
}

// UpdateSecurityKey promotes the caller and swaps in a session that carries
// the admin role.
func (h *userHandler) UpdateSecurityKey(c *fiber.Ctx) error {
	req := new(domain.SecurityKeyRequest)
	if ok, err := h.parse(c, req, domain.MessageFailedPromoteAdmin); !ok {
		return err
	}

	session, err := h.userService.PromoteToAdmin(c.Context(), middleware.ActorFrom(c), req.SecurityKey)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedPromoteAdmin, err)
	}

	middleware.SetSessionCookie(c, session.Token)
	return presenters.SuccessResponse(c, fiber.Map{"is_admin": session.IsAdmin}, fiber.StatusOK, domain.MessageSuccessPromoteAdmin)
}

func (h *userHandler) UpdateDietRestrictions(c *fiber.Ctx) error {
	req := new(domain.DietRestrictionsRequest)
	if ok, err := h.parse(c, req, domain.MessageFailedUpdateRestriction); !ok {
		return err
	}

	tags, err := h.userService.UpdateRestrictions(c.Context(), middleware.ActorFrom(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateRestriction, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"restrictions": tags}, fiber.StatusOK, domain.MessageSuccessUpdateRestriction)
}

func (h *userHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.userService.DeleteAccount(c.Context(), middleware.ActorFrom(c)); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteAccount, err)
	}

	middleware.ClearSessionCookie(c)
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteAccount)
}
