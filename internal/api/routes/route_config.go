package routes

import (
	"recipebook/internal/api/handlers"
	"recipebook/internal/middleware"
	"recipebook/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	RatingHandler   handlers.RatingHandler
	FavoriteHandler handlers.FavoriteHandler
	SuggestHandler  handlers.SuggestHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Suggestions()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")

	// Recipe detail stays public; everything else is owner-scoped.
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)

	auth := c.Middleware.AuthMiddleware(c.JWTService)
	recipes.Get("", auth, c.RecipeHandler.GetRecipes)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
	recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/ratings", auth, c.RatingHandler.RateRecipe)
	recipes.Delete("/:id/ratings", auth, c.RatingHandler.DeleteRating)

	recipes.Put("/:id/favorite", auth, c.FavoriteHandler.SetFavorite)
	recipes.Get("/:id/favorite", auth, c.FavoriteHandler.GetFavorite)
}

func (c *Config) Suggestions() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	c.App.Get("/api/v1/tags/suggest", auth, c.SuggestHandler.SuggestTags)
	c.App.Get("/api/v1/ingredients/suggest", auth, c.SuggestHandler.SuggestIngredients)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
