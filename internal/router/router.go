package router

import (
	"shoestore/internal/handlers"
	"shoestore/internal/middleware"
	"shoestore/internal/service"
	"shoestore/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Accounts service.AccountService
	Catalog  service.CatalogService
	Cart     service.CartService
	Checkout service.CheckoutService
	Orders   service.OrderService
	Tokens   service.TokenProvider
	Sessions session.Store
	Log      *zap.Logger
}

func Router(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authHandler := handlers.NewAuthHandler(d.Accounts, d.Log)
	catalogHandler := handlers.NewCatalogHandler(d.Catalog, d.Log)
	cartHandler := handlers.NewCartHandler(d.Cart, d.Log)
	orderHandler := handlers.NewOrderHandler(d.Checkout, d.Orders, d.Log)
	adminHandler := handlers.NewAdminHandler(d.Catalog, d.Orders, d.Accounts, d.Log)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthOptional(d.Tokens, d.Log))
	api.Use(middleware.GuestSession(d.Sessions, d.Log))

	// auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// public catalog
	api.GET("/categories", catalogHandler.Categories)
	api.GET("/products", catalogHandler.Products)
	api.GET("/products/:id", catalogHandler.Product)
	api.GET("/brands", catalogHandler.Brands)
	api.GET("/sliders", catalogHandler.Sliders)

	// cart + checkout: shared by guests and authenticated users
	api.GET("/cart", cartHandler.Get)
	api.POST("/cart/items", cartHandler.Add)
	api.PUT("/cart/items/:id", cartHandler.UpdateItem)
	api.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	api.DELETE("/cart", cartHandler.Clear)
	api.POST("/checkout", orderHandler.Checkout)
	api.GET("/orders/confirmation/:id", orderHandler.Confirmation)

	// authenticated customer area
	authed := api.Group("")
	authed.Use(middleware.AuthRequired(d.Tokens, d.Log))
	authed.GET("/me", authHandler.Me)
	authed.GET("/orders", orderHandler.MyOrders)
	authed.GET("/orders/:id", orderHandler.MyOrder)

	// back office; fine-grained role checks happen in the services
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(d.Tokens, d.Log))
	{
		admin.GET("/dashboard", adminHandler.Dashboard)

		admin.GET("/categories", adminHandler.ListCategories)
		admin.POST("/categories", adminHandler.CreateCategory)
		admin.PATCH("/categories/:id", adminHandler.UpdateCategory)
		admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

		admin.GET("/products", adminHandler.ListProducts)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PATCH("/products/:id", adminHandler.UpdateProduct)
		admin.DELETE("/products/:id", adminHandler.DeleteProduct)

		admin.GET("/products/:id/variants", adminHandler.ListVariants)
		admin.POST("/products/:id/variants", adminHandler.CreateVariant)
		admin.PATCH("/products/:id/variants/:variantId", adminHandler.UpdateVariant)
		admin.DELETE("/products/:id/variants/:variantId", adminHandler.DeleteVariant)

		admin.POST("/products/:id/images", adminHandler.AddImage)
		admin.PATCH("/products/:id/images/:imageId", adminHandler.ReorderImage)
		admin.DELETE("/products/:id/images/:imageId", adminHandler.DeleteImage)

		admin.GET("/sliders", adminHandler.ListSliders)
		admin.POST("/sliders", adminHandler.CreateSlider)
		admin.PATCH("/sliders/:id", adminHandler.UpdateSlider)
		admin.DELETE("/sliders/:id", adminHandler.DeleteSlider)

		admin.GET("/orders", adminHandler.ListOrders)
		admin.GET("/orders/:id", adminHandler.GetOrder)
		admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/:id", adminHandler.GetUser)
		admin.PATCH("/users/:id/role", adminHandler.SetUserRole)
	}

	return r
}
