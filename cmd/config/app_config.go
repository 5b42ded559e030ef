package config

import (
	"fmt"
	"os"
	"time"

	"foodloss-backend/internal/api/handlers"
	"foodloss-backend/internal/api/routes"
	"foodloss-backend/internal/middleware"
	"foodloss-backend/internal/utils"
	"foodloss-backend/internal/utils/mailing"
	"foodloss-backend/internal/utils/storage"
	"foodloss-backend/pkg/cart"
	"foodloss-backend/pkg/category"
	"foodloss-backend/pkg/food"
	"foodloss-backend/pkg/health"
	"foodloss-backend/pkg/jwt"
	"foodloss-backend/pkg/store"
	"foodloss-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	// Dependencies are the outside-world clients the services are built on.
	Dependencies struct {
		DB         *gorm.DB
		S3         storage.AwsS3
		Mailer     mailing.Mailer
		JWTService jwt.JWTService
		BcryptCost int
	}

	Services struct {
		User     user.UserService
		Store    store.StoreService
		Food     food.FoodService
		Category category.CategoryService
		Cart     cart.CartService
		Health   health.HealthService
	}
)

func DefaultDependencies(db *gorm.DB) Dependencies {
	return Dependencies{
		DB:         db,
		S3:         storage.NewAwsS3(),
		Mailer:     mailing.NewMailer(),
		JWTService: jwt.NewJWTService(),
		BcryptCost: bcrypt.DefaultCost,
	}
}

func NewServices(deps Dependencies) Services {
	// Repository
	userRepository := user.NewUserRepository(deps.DB)
	storeRepository := store.NewStoreRepository(deps.DB)
	foodRepository := food.NewFoodRepository(deps.DB)
	categoryRepository := category.NewCategoryRepository(deps.DB)
	cartRepository := cart.NewCartRepository(deps.DB)

	// Service
	return Services{
		User: user.NewUserService(
			userRepository,
			deps.JWTService,
			user.NewBcryptHasher(deps.BcryptCost),
			deps.S3,
			deps.Mailer,
			utils.GetConfig("APP_URL"),
		),
		Store:    store.NewStoreService(storeRepository, deps.S3),
		Food:     food.NewFoodService(foodRepository, storeRepository, categoryRepository, deps.S3),
		Category: category.NewCategoryService(categoryRepository),
		Cart:     cart.NewCartService(cartRepository),
		Health:   health.NewHealthService(deps.DB),
	}
}

// Mount registers every route on app.
func Mount(app *fiber.App, deps Dependencies) Services {
	utils.InitValidator()
	validator := utils.Validate
	services := NewServices(deps)

	// Handler
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     handlers.NewUserHandler(services.User, validator),
		FoodHandler:     handlers.NewFoodHandler(services.Food, validator),
		StoreHandler:    handlers.NewStoreHandler(services.Store, validator),
		CategoryHandler: handlers.NewCategoryHandler(services.Category, validator),
		CartHandler:     handlers.NewCartHandler(services.Cart, validator),
		HealthHandler:   handlers.NewHealthHandler(services.Health),
		Middleware:      middleware.NewMiddleware(services.User),
		JWTService:      deps.JWTService,
	}
	routesConfig.Setup()
	return services
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("APP_ENV") == "development",
		BodyLimit:         storage.MaxUploadSize + 1<<20,
	})

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Tokyo",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX", 10),
		Expiration: 1 * time.Second,
	}))

	Mount(app, DefaultDependencies(db))
	return app, nil
}
