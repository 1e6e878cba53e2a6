package config

import (
	"recipebook/internal/api/handlers"
	"recipebook/internal/api/routes"
	"recipebook/internal/middleware"
	"recipebook/internal/utils"
	"recipebook/internal/utils/storage"
	"recipebook/pkg/favorite"
	"recipebook/pkg/jwt"
	"recipebook/pkg/rating"
	"recipebook/pkg/recipe"
	"recipebook/pkg/suggest"
	"recipebook/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	ratingRepository := rating.NewRatingRepository(db)
	favoriteRepository := favorite.NewFavoriteRepository(db)
	suggestRepository := suggest.NewSuggestRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, s3)
	ratingService := rating.NewRatingService(ratingRepository)
	favoriteService := favorite.NewFavoriteService(favoriteRepository, recipeRepository)
	suggestService := suggest.NewSuggestService(suggestRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	ratingHandler := handlers.NewRatingHandler(ratingService, validator)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, validator)
	suggestHandler := handlers.NewSuggestHandler(suggestService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		RatingHandler:   ratingHandler,
		FavoriteHandler: favoriteHandler,
		SuggestHandler:  suggestHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
