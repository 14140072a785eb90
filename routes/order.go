package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafedesk/cafe-api/cart"
	orderControllers "github.com/cafedesk/cafe-api/controllers/order"
	"github.com/cafedesk/cafe-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Service, jwtSecret []byte) {
	checkout := r.Group("/checkout", middleware.CartSession(), middleware.RequireAuth(jwtSecret))
	{
		checkout.GET("/summary", orderControllers.CheckoutSummaryHandler(carts))
		checkout.POST("", orderControllers.PlaceOrderHandler(db, carts))
	}

	orders := r.Group("/orders", middleware.RequireAuth(jwtSecret))
	{
		orders.GET("", orderControllers.MyOrdersHandler(db))
		orders.GET("/:orderID", orderControllers.GetOrderHandler(db))
	}
}
