package routes

import (
	"Recipe-Share-Backend/internal/api/handlers"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	CookbookHandler handlers.CookbookHandler
	RatingHandler   handlers.RatingHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.GuestRoute()
	c.User()
	c.Recipes()
	c.Cookbook()
	c.Ratings()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/signup", c.UserHandler.Signup)
	c.App.Post("/login", c.UserHandler.Login)
	c.App.Get("/logout", c.UserHandler.Logout)
	c.App.Get("/api/recipes", c.RecipeHandler.ListRecipes)
}

func (c *Config) User() {
	page := c.Middleware.PageAuthMiddleware(c.JWTService)
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Get("/settings", page, c.UserHandler.Settings)
	c.App.Post("/change_username", auth, c.UserHandler.ChangeUsername)
	c.App.Post("/change_email", auth, c.UserHandler.ChangeEmail)
	c.App.Post("/change_password", auth, c.UserHandler.ChangePassword)
	c.App.Post("/update_security_key", auth, c.UserHandler.UpdateSecurityKey)
	c.App.Post("/update_diet_restrictions", auth, c.UserHandler.UpdateDietRestrictions)
	c.App.Post("/delete_account", auth, c.UserHandler.DeleteAccount)
}

func (c *Config) Recipes() {
	page := c.Middleware.PageAuthMiddleware(c.JWTService)
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	soft := c.Middleware.OptionalAuth(c.JWTService)

	c.App.Get("/dashboard", page, c.RecipeHandler.Dashboard)
	c.App.Get("/create-recipe", page, c.RecipeHandler.CreateRecipeForm)
	c.App.Post("/create-recipe", page, c.RecipeHandler.CreateRecipe)
	c.App.Get("/recipe/:slug", soft, c.RecipeHandler.GetRecipeDetail)
	c.App.Get("/edit-recipe/:slug", page, c.RecipeHandler.EditRecipeForm)
	c.App.Post("/edit-recipe/:slug", page, c.RecipeHandler.EditRecipe)
	c.App.Delete("/delete-recipe/:name", auth, c.RecipeHandler.DeleteRecipe)
}

func (c *Config) Cookbook() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Get("/cookbook", c.Middleware.PageAuthMiddleware(c.JWTService), c.CookbookHandler.GetCookbook)
	c.App.Post("/save-to-cookbook/:name", auth, c.CookbookHandler.SaveToCookbook)
	c.App.Post("/toggle-cookbook/:name", auth, c.CookbookHandler.ToggleCookbook)
	c.App.Get("/check-cookbook/:name", c.Middleware.OptionalAuth(c.JWTService), c.CookbookHandler.CheckCookbook)
}

func (c *Config) Ratings() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Post("/rate-recipe", auth, c.RatingHandler.RateRecipe)
	c.App.Get("/api/recommended", auth, c.RatingHandler.Recommended)
}
