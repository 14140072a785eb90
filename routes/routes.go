package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafedesk/cafe-api/cart"
)

// SetupRoutes is the single entry point that wires up the menu, cart, order
// and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Service, jwtSecret []byte) {
	// Public menu routes (no auth)
	SetupMenuRoutes(r, db)

	// Cart routes (session cookie, no auth)
	SetupCartRoutes(r, db, carts)

	// Checkout and order routes (JWT-protected)
	SetupOrderRoutes(r, db, carts, jwtSecret)

	// Admin routes (JWT + Admin role)
	SetupAdminRoutes(r, db, jwtSecret)
}
