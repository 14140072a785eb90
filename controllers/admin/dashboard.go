package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafedesk/cafe-api/models"
)

// GET /admin/dashboard
func Dashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			totalOrders     int64
			totalProducts   int64
			totalCategories int64
			pendingOrders   int64
			totalRevenue    float64
		)

		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
		if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
		if err := db.Model(&models.Category{}).Count(&totalCategories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusPending).
			Count(&pendingOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}

		var recentOrders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Limit(10).
			Find(&recentOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_orders":     totalOrders,
			"total_products":   totalProducts,
			"total_categories": totalCategories,
			"pending_orders":   pendingOrders,
			"total_revenue":    totalRevenue,
			"recent_orders":    recentOrders,
		})
	}
}
