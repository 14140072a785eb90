package orderControllers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafedesk/cafe-api/cart"
	"github.com/cafedesk/cafe-api/middleware"
	"github.com/cafedesk/cafe-api/models"
)

var (
	ErrCartEmpty     = errors.New("cart is empty")
	ErrInvalidStatus = errors.New("invalid order status")
)

// -------- Request Structs --------

type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	Phone         string `json:"phone"`
	TableNumber   string `json:"table_number"`
	IsTakeaway    bool   `json:"is_takeaway"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// FieldError names the offending checkout field with a human message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{4,18}$`)

// Validate checks the checkout form and returns one entry per failing field.
// An empty result means the form is acceptable.
func (r CheckoutRequest) Validate() []FieldError {
	var failures []FieldError

	name := strings.TrimSpace(r.CustomerName)
	if name == "" {
		failures = append(failures, FieldError{"customer_name", "Name is required"})
	} else if len(name) > 100 {
		failures = append(failures, FieldError{"customer_name", "Name cannot exceed 100 characters"})
	}

	phone := strings.TrimSpace(r.Phone)
	if phone == "" {
		failures = append(failures, FieldError{"phone", "Phone number is required"})
	} else if len(phone) > 20 || !phonePattern.MatchString(phone) {
		failures = append(failures, FieldError{"phone", "Invalid phone number"})
	}

	if strings.TrimSpace(r.PaymentMethod) == "" {
		failures = append(failures, FieldError{"payment_method", "Please select a payment method"})
	}
	if len(r.TableNumber) > 10 {
		failures = append(failures, FieldError{"table_number", "Table number cannot exceed 10 characters"})
	}
	if len(r.Notes) > 500 {
		failures = append(failures, FieldError{"notes", "Notes cannot exceed 500 characters"})
	}

	return failures
}

// -------- Helpers --------

// mapOrderStatus normalizes a status label to its canonical form.
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case strings.ToLower(string(models.OrderStatusPending)):
		return models.OrderStatusPending, nil
	case strings.ToLower(string(models.OrderStatusPreparing)):
		return models.OrderStatusPreparing, nil
	case strings.ToLower(string(models.OrderStatusReady)):
		return models.OrderStatusReady, nil
	case strings.ToLower(string(models.OrderStatusCompleted)):
		return models.OrderStatusCompleted, nil
	case strings.ToLower(string(models.OrderStatusCancelled)):
		return models.OrderStatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// getOrderWithItems materializes the full aggregate: items plus the catalog
// rows they referenced. A missing order surfaces as gorm.ErrRecordNotFound.
func getOrderWithItems(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Category").
		First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Core Logic --------

// PlaceOrder converts the cart into a persisted order aggregate. The totals
// and item snapshots come from the cart's frozen prices; the catalog is not
// re-read here. The order and all its items are written in one transaction,
// so a failed write leaves nothing behind.
func PlaceOrder(db *gorm.DB, req CheckoutRequest, customerID string, shoppingCart models.Cart) (*models.Order, error) {
	if len(shoppingCart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	order := models.Order{
		CustomerID:    customerID,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		TableNumber:   req.TableNumber,
		IsTakeaway:    req.IsTakeaway,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		TotalAmount:   shoppingCart.Total(),
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
	}

	for _, item := range shoppingCart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal(),
		})
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		// Keep a local mirror of the customer so admin views can join on it.
		customer := models.User{ID: customerID, Name: req.CustomerName, Phone: req.Phone}
		if err := tx.Where("id = ?", customerID).FirstOrCreate(&customer).Error; err != nil {
			return err
		}
		return tx.Create(&order).Error
	}); err != nil {
		return nil, err
	}

	return &order, nil
}

// -------- Handlers --------

// POST /checkout
func PlaceOrderHandler(db *gorm.DB, carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if failures := req.Validate(); len(failures) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": failures})
			return
		}

		principal, ok := middleware.CurrentPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		sessionID := middleware.SessionID(c)
		shoppingCart := carts.Get(c.Request.Context(), sessionID)

		order, err := PlaceOrder(db, req, principal.UserID, shoppingCart)
		if err != nil {
			if errors.Is(err, ErrCartEmpty) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		// The cart is cleared only once the order is safely persisted. A
		// failed clear is logged by the cart service and leaves a stale cart
		// behind, but never loses the order.
		_ = carts.Clear(c.Request.Context(), sessionID)

		broadcastOrderEvent("order_created", *order)
		c.JSON(http.StatusCreated, *order)
	}
}

// GET /checkout/summary (prefilled checkout form data)
func CheckoutSummaryHandler(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.CurrentPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		shoppingCart := carts.Get(c.Request.Context(), middleware.SessionID(c))
		if len(shoppingCart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"customer_name": principal.Name,
			"phone":         principal.Phone,
			"total_amount":  shoppingCart.Total(),
			"total_items":   shoppingCart.TotalItems(),
			"items":         shoppingCart.Items,
		})
	}
}

// GET /orders
func MyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.CurrentPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("customer_id = ?", principal.UserID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID
//
// Missing orders are 404; an existing order read by a non-owning non-admin is
// 403. The two outcomes are deliberately distinct.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		principal, hasPrincipal := middleware.CurrentPrincipal(c)
		if !hasPrincipal {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := getOrderWithItems(db, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if order.CustomerID != principal.UserID && !principal.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders?status=
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.
			Preload("Items").
			Preload("Customer").
			Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			canonical, err := mapOrderStatus(status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", canonical)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:orderID/status
//
// The five labels are an unordered set: staff may move an order to any of
// them at any time. Unknown labels are rejected, unknown orders are 404.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		now := time.Now()
		order.Status = newStatus
		order.UpdatedAt = &now
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		broadcastOrderEvent("status_changed", order)
		c.JSON(http.StatusOK, order)
	}
}

func parseOrderID(c *gin.Context) (uint, bool) {
	raw := c.Param("orderID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, false
	}
	return uint(id), true
}
