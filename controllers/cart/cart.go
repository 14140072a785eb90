package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafedesk/cafe-api/cart"
	"github.com/cafedesk/cafe-api/middleware"
	"github.com/cafedesk/cafe-api/models"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1,max=100"`
}

type UpdateItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GET /cart
func GetCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := carts.Get(c.Request.Context(), middleware.SessionID(c))
		c.JSON(http.StatusOK, gin.H{
			"items":       current.Items,
			"total":       current.Total(),
			"total_items": current.TotalItems(),
		})
	}
}

// POST /cart/items
func AddToCart(db *gorm.DB, carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}
		if !product.InStock {
			c.JSON(http.StatusConflict, gin.H{"error": "Product not available"})
			return
		}

		item := models.CartItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    input.Quantity,
			ImageURL:    product.ImageURL,
		}
		if err := carts.Add(c.Request.Context(), middleware.SessionID(c), item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": product.Name + " added to cart"})
	}
}

// PUT /cart/items
func UpdateQuantity(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be between 1 and 100"})
			return
		}
		if err := carts.SetQuantity(c.Request.Context(), middleware.SessionID(c), input.ProductID, input.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	}
}

// DELETE /cart/items/:product_id
func RemoveItem(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseUintParam(c, "product_id")
		if !ok {
			return
		}
		if err := carts.Remove(c.Request.Context(), middleware.SessionID(c), productID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// DELETE /cart
func ClearCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), middleware.SessionID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// GET /cart/count (header badge)
func GetCartCount(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		count := carts.Count(c.Request.Context(), middleware.SessionID(c))
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}
