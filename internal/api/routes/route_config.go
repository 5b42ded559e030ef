package routes

import (
	"foodloss-backend/domain"
	"foodloss-backend/internal/api/handlers"
	"foodloss-backend/internal/middleware"
	"foodloss-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	FoodHandler     handlers.FoodHandler
	StoreHandler    handlers.StoreHandler
	CategoryHandler handlers.CategoryHandler
	CartHandler     handlers.CartHandler
	HealthHandler   handlers.HealthHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Foods()
	c.Stores()
	c.Categories()
	c.Cart()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/register", c.UserHandler.Register)
		auth.Get("/verify", c.UserHandler.VerifyEmail)
		auth.Get("/me", c.auth(), c.UserHandler.Me)
		auth.Put("/profile", c.auth(), c.UserHandler.UpdateProfile)
		auth.Post("/logout", c.auth(), c.UserHandler.Logout)
		auth.Post("/send-verify", c.auth(), c.UserHandler.SendVerificationEmail)
		auth.Post("/avatar", c.auth(), c.UserHandler.UploadAvatar)
	}
}

func (c *Config) Foods() {
	foods := c.App.Group("/api/foods")
	storeOnly := c.Middleware.RequireRole(domain.RoleStore)

	foods.Get("", c.FoodHandler.ListFoods)
	foods.Get("/search", c.FoodHandler.SearchFoods)
	foods.Get("/expired", c.FoodHandler.ListExpiredFoods)
	foods.Get("/:id", c.FoodHandler.GetFood)

	foods.Post("", c.auth(), storeOnly, c.FoodHandler.CreateFood)
	foods.Put("/:id", c.auth(), storeOnly, c.FoodHandler.UpdateFood)
	foods.Patch("/:id/status", c.auth(), c.FoodHandler.ChangeFoodStatus)
	foods.Post("/:id/image", c.auth(), storeOnly, c.FoodHandler.UploadFoodImage)
	foods.Delete("/:id", c.auth(), c.FoodHandler.DeleteFood)
}

func (c *Config) Stores() {
	stores := c.App.Group("/api/stores")

	stores.Get("", c.StoreHandler.ListStores)
	stores.Get("/:id", c.StoreHandler.GetStore)
	stores.Get("/:id/foods/count", c.FoodHandler.CountStoreFoods)

	stores.Post("", c.auth(), c.Middleware.RequireRole(domain.RoleStore), c.StoreHandler.RegisterStore)
	stores.Put("/:id", c.auth(), c.StoreHandler.UpdateStore)
	stores.Post("/:id/image", c.auth(), c.StoreHandler.UploadStoreImage)
	stores.Delete("/:id", c.auth(), c.StoreHandler.DeleteStore)
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/categories")
	adminOnly := c.Middleware.RequireRole(domain.RoleAdmin)

	categories.Get("", c.CategoryHandler.ListCategories)
	categories.Post("", c.auth(), adminOnly, c.CategoryHandler.CreateCategory)
	categories.Put("/:id", c.auth(), adminOnly, c.CategoryHandler.UpdateCategory)
}

func (c *Config) Cart() {
	cart := c.App.Group("/api/cart", c.auth())
	{
		cart.Get("", c.CartHandler.ListItems)
		cart.Post("", c.CartHandler.AddItem)
		cart.Delete("/:id", c.CartHandler.RemoveItem)
		cart.Delete("", c.CartHandler.Clear)
	}

	c.App.Get("/api/orders", c.auth(), c.CartHandler.ListOrders)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/admin", c.auth(), c.Middleware.RequireRole(domain.RoleAdmin))
	admin.Patch("/users/:id/active", c.UserHandler.SetUserActive)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", c.HealthHandler.Ping)
	c.App.Get("/api/health", c.HealthHandler.Health)
}
