package main

import (
	"log"

	"shopapi/config"
	"shopapi/handlers"
	"shopapi/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize database
	config.InitDB()

	// Create a new Gin router
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health-check", handlers.CheckConnection)

	// Public routes (no authentication required)
	r.POST("/auth/register", handlers.RegisterUser)
	r.POST("/auth/login", handlers.LoginUser)
	r.POST("/auth/refresh", handlers.RefreshToken)

	// Catalog and homepage blocks; a bearer token personalizes is_favorite
	public := r.Group("/")
	public.Use(middleware.OptionalAuth())
	{
		public.GET("/products", handlers.GetAllProducts)
		public.GET("/products/:id", handlers.GetProduct)
		public.GET("/sizes", handlers.GetSizes)

		public.GET("/home/index", handlers.GetHomeIndex)
		public.GET("/home/banner-head", handlers.GetHeadBanner)
		public.GET("/home/banner-middle", handlers.GetMiddleBanners)
		public.GET("/home/banner-catalog", handlers.GetCatalogBanners)
		public.GET("/home/popular-brands", handlers.GetPopularBrands)
		public.GET("/home/bestsellers", handlers.GetBestsellers)
		public.GET("/home/discounts", handlers.GetDiscounts)
	}

	// Protected routes (authentication required)
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/me", handlers.Me)
		auth.PATCH("/auth/me", handlers.UpdateMe)
		auth.POST("/auth/logout", handlers.LogoutUser)

		// Favorites
		auth.GET("/favorites", handlers.GetFavorites)
		auth.POST("/favorites/:product_id", handlers.AddFavorite)
		auth.DELETE("/favorites/:product_id", handlers.RemoveFavorite)

		// Basket
		auth.GET("/basket", handlers.GetBasket)
		auth.POST("/basket", handlers.AddToBasket)
		auth.DELETE("/basket", handlers.RemoveFromBasket)

		// Orders
		auth.POST("/orders", handlers.Checkout)
		auth.GET("/orders", handlers.GetOrders)
		auth.GET("/orders/:id", handlers.GetOrderDetails)
	}

	// Staff-only routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.StaffRequired())
	{
		// Catalog management
		admin.POST("/products", handlers.CreateProduct)
		admin.PUT("/products/:id", handlers.UpdateProduct)
		admin.DELETE("/products/:id", handlers.DeleteProduct)
		admin.PUT("/products/:id/storage", handlers.SetStorage)
		admin.POST("/sizes", handlers.CreateSize)
		admin.DELETE("/sizes/:id", handlers.DeleteSize)

		// Homepage banners
		admin.POST("/banners", handlers.CreateBanner)
		admin.DELETE("/banners/:id", handlers.DeleteBanner)

		// Order management
		admin.GET("/orders", handlers.GetAllOrders)
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
	}

	addr := ":" + config.Getenv("PORT", "8080")
	log.Printf("server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
