package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Catalog (no auth needed)
		public.GET("/restaurants", h.ListRestaurants)
		public.GET("/restaurants/ratings", h.GetRestaurantRatings)
		public.GET("/restaurants/:id/reviews", h.GetRestaurantReviews)
		public.GET("/cuisine-types", h.ListCuisineTypes)
		public.GET("/menu-items", h.ListMenuItems)

		// Delivery agents free to take an order
		public.GET("/delivery-agents/available", h.ListAvailableAgents)

		// Invitees settle their share of a split bill by email match
		public.POST("/split-payments/:id/pay", h.PaySplit)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/user/profile", h.GetProfile)
		auth.PUT("/user/profile", h.UpdateProfile)
		auth.GET("/user/stats", h.GetUserStats)

		auth.POST("/orders", h.PlaceOrder)
		auth.GET("/orders", h.ListOrders)
		auth.GET("/order-details", h.ListOrderDetails)

		auth.POST("/payments", h.ProcessPayment)
		auth.POST("/payment-methods", h.AddPaymentMethod)
		auth.GET("/payment-methods", h.ListPaymentMethods)
		auth.DELETE("/payment-methods/:id", h.DeletePaymentMethod)

		auth.POST("/reviews", h.CreateReview)
		auth.GET("/restaurants/suggestions", h.GetSuggestions)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	{
		admin.GET("/stats", h.AdminStats)

		admin.GET("/restaurants", h.AdminListRestaurants)
		admin.POST("/restaurants", h.AdminCreateRestaurant)
		admin.PUT("/restaurants/:id", h.AdminUpdateRestaurant)
		admin.DELETE("/restaurants/:id", h.AdminDeleteRestaurant)

		admin.GET("/menu-items", h.AdminListMenuItems)
		admin.POST("/menu-items", h.AdminCreateMenuItem)
		admin.PUT("/menu-items/:id", h.AdminUpdateMenuItem)
		admin.DELETE("/menu-items/:id", h.AdminDeleteMenuItem)

		admin.GET("/users", h.AdminListUsers)
		admin.POST("/users", h.AdminCreateUser)
		admin.PUT("/users/:id", h.AdminUpdateUser)
		admin.DELETE("/users/:id", h.AdminDeleteUser)

		admin.GET("/delivery-agents", h.AdminListAgents)
		admin.POST("/delivery-agents", h.AdminCreateAgent)
		admin.PUT("/delivery-agents/:id", h.AdminUpdateAgent)
		admin.DELETE("/delivery-agents/:id", h.AdminDeleteAgent)

		admin.GET("/orders", h.AdminListOrders)
		admin.PUT("/orders/:id", h.AdminUpdateOrderStatus)
		admin.PUT("/orders/:id/assign-agent", h.AdminReassignAgent)
		admin.GET("/order-details", h.AdminListOrderDetails)
	}
}
