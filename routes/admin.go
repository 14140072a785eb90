package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/cafedesk/cafe-api/controllers/admin"
	orderControllers "github.com/cafedesk/cafe-api/controllers/order"
	productController "github.com/cafedesk/cafe-api/controllers/product"
	"github.com/cafedesk/cafe-api/middleware"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, jwtSecret []byte) {
	admin := r.Group("/admin", middleware.RequireAuth(jwtSecret), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminControllers.Dashboard(db))

		admin.GET("/orders", orderControllers.ListOrdersHandler(db))
		admin.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
		admin.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))

		admin.GET("/products", productController.ListAllProducts(db))
		admin.POST("/products", productController.CreateProduct(db))
		admin.PUT("/products/:id", productController.UpdateProduct(db))
		admin.DELETE("/products/:id", productController.DeleteProduct(db))

		admin.GET("/categories", productController.ListAllCategories(db))
		admin.GET("/categories/:id", productController.GetCategoryByID(db))
		admin.POST("/categories", productController.CreateCategory(db))
		admin.PUT("/categories/:id", productController.UpdateCategory(db))
		admin.DELETE("/categories/:id", productController.DeleteCategory(db))
	}
}
