package config

import (
	"Recipe-Share-Backend/internal/api/handlers"
	"Recipe-Share-Backend/internal/api/routes"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/mailing"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/cookbook"
	"Recipe-Share-Backend/pkg/jwt"
	"Recipe-Share-Backend/pkg/rating"
	"Recipe-Share-Backend/pkg/recipe"
	"Recipe-Share-Backend/pkg/recommendation"
	"Recipe-Share-Backend/pkg/user"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// AppOptions carries the collaborators that main builds from configuration
// and tests replace.
type AppOptions struct {
	Storage          storage.ImageStorage
	Mailer           mailing.Mailer
	MailConfig       mailing.MailConfig
	JWTSecret        string
	AdminSecurityKey string
	AllowOrigins     string
	AccessLog        io.Writer
	RateLimit        int
	// StaticDir is served under /static/images when set.
	StaticDir    string
	PasswordCost int
}

// OptionsFromConfig fills AppOptions from utils.GetConfig. Storage and Mailer
// are left to the caller.
func OptionsFromConfig() AppOptions {
	rateLimit, _ := strconv.Atoi(utils.GetConfig("RATE_LIMIT_MAX"))
	opts := AppOptions{
		MailConfig:       mailing.LoadMailConfig(),
		JWTSecret:        utils.GetConfig("JWT_SECRET"),
		AdminSecurityKey: utils.GetConfig("ADMIN_SECURITY_KEY"),
		AllowOrigins:     utils.GetConfig("CORS_ALLOW_ORIGINS"),
		RateLimit:        rateLimit,
	}
	if utils.GetConfig("STORAGE_DRIVER") == "local" {
		opts.StaticDir = utils.GetConfig("UPLOAD_DIR")
	}
	return opts
}

func NewApp(db *gorm.DB, opts AppOptions) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		UnescapePath: true,
	})
	middlewares := middleware.NewMiddleware(opts.AllowOrigins)
	validator := utils.Validate

	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     accessLog,
	}))
	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}
	app.Use(middlewares.MetricsMiddleware())
	app.Use(middlewares.CORSMiddleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if opts.StaticDir != "" {
		app.Static("/static/images", opts.StaticDir)
	}

	// utils
	imageStorage := opts.Storage
	if imageStorage == nil {
		var err error
		if imageStorage, err = storage.New(); err != nil {
			return nil, err
		}
	}
	mailer := opts.Mailer
	if mailer == nil {
		mailer = mailing.NewMailer(opts.MailConfig)
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	cookbookRepository := cookbook.NewCookbookRepository(db)
	ratingRepository := rating.NewRatingRepository(db)
	recommendationRepository := recommendation.NewRecommendationRepository(db)

	// Service
	jwtService := jwt.NewJWTService(opts.JWTSecret)
	userService := user.NewUserService(userRepository, jwtService, imageStorage, mailer, user.UserServiceConfig{
		AdminSecurityKey: opts.AdminSecurityKey,
		Mail:             opts.MailConfig,
		PasswordCost:     opts.PasswordCost,
	})
	recipeService := recipe.NewRecipeService(recipeRepository, imageStorage)
	cookbookService := cookbook.NewCookbookService(cookbookRepository, recipeRepository)
	ratingService := rating.NewRatingService(ratingRepository, recipeRepository)
	recommendationService := recommendation.NewRecommendationService(recommendationRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	cookbookHandler := handlers.NewCookbookHandler(cookbookService)
	ratingHandler := handlers.NewRatingHandler(ratingService, recommendationService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		CookbookHandler: cookbookHandler,
		RatingHandler:   ratingHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
