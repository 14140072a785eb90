package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productController "github.com/cafedesk/cafe-api/controllers/product"
)

func SetupMenuRoutes(r *gin.Engine, db *gorm.DB) {
	menu := r.Group("/menu")
	{
		menu.GET("", productController.ListMenu(db))
		menu.GET("/featured", productController.ListFeatured(db))
		menu.GET("/categories", productController.ListActiveCategories(db))
		menu.GET("/products/:id", productController.GetProductByID(db))
	}
}
