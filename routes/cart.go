package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafedesk/cafe-api/cart"
	cartControllers "github.com/cafedesk/cafe-api/controllers/cart"
	"github.com/cafedesk/cafe-api/middleware"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Service) {
	group := r.Group("/cart", middleware.CartSession())
	{
		group.GET("", cartControllers.GetCart(carts))
		group.GET("/count", cartControllers.GetCartCount(carts))
		group.POST("/items", cartControllers.AddToCart(db, carts))
		group.PUT("/items", cartControllers.UpdateQuantity(carts))
		group.DELETE("/items/:product_id", cartControllers.RemoveItem(carts))
		group.DELETE("", cartControllers.ClearCart(carts))
	}
}
