package adminControllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cafedesk/cafe-api/auth"
	"github.com/cafedesk/cafe-api/cart"
	"github.com/cafedesk/cafe-api/models"
	"github.com/cafedesk/cafe-api/routes"
	"github.com/cafedesk/cafe-api/session"
)

var testSecret = []byte("test-secret")

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to open test database: " + err.Error())
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatal(err)
	}

	carts := cart.NewService(session.NewMemoryStore(), zap.NewNop().Sugar())

	r := gin.New()
	routes.SetupRoutes(r, db, carts, testSecret)
	return r, db
}

func adminToken(t *testing.T) string {
	token, err := auth.IssueToken(testSecret, auth.Principal{
		UserID: "staff-1",
		Roles:  []string{auth.RoleAdmin},
	}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestDashboardAggregates(t *testing.T) {
	r, db := setupTest(t)

	drinks := models.Category{Name: "Drinks", IsActive: true}
	assert.NoError(t, db.Create(&drinks).Error)
	assert.NoError(t, db.Create(&models.Product{Name: "Espresso", Price: 2.5, CategoryID: drinks.ID, InStock: true}).Error)
	assert.NoError(t, db.Create(&models.Product{Name: "Latte", Price: 4.75, CategoryID: drinks.ID, InStock: true}).Error)

	orders := []models.Order{
		{CustomerID: "cust-1", CustomerName: "Dana", Phone: "555", TotalAmount: 10, Status: models.OrderStatusPending, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{CustomerID: "cust-1", CustomerName: "Dana", Phone: "555", TotalAmount: 5.5, Status: models.OrderStatusCompleted, CreatedAt: time.Now().Add(-time.Hour)},
		{CustomerID: "cust-2", CustomerName: "Eve", Phone: "555", TotalAmount: 4.5, Status: models.OrderStatusPending, CreatedAt: time.Now()},
	}
	for i := range orders {
		assert.NoError(t, db.Create(&orders[i]).Error)
	}

	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalOrders     int64          `json:"total_orders"`
		TotalProducts   int64          `json:"total_products"`
		TotalCategories int64          `json:"total_categories"`
		PendingOrders   int64          `json:"pending_orders"`
		TotalRevenue    float64        `json:"total_revenue"`
		RecentOrders    []models.Order `json:"recent_orders"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, int64(3), resp.TotalOrders)
	assert.Equal(t, int64(2), resp.TotalProducts)
	assert.Equal(t, int64(1), resp.TotalCategories)
	assert.Equal(t, int64(2), resp.PendingOrders)
	assert.Equal(t, 20.0, resp.TotalRevenue)

	// Newest first
	assert.Len(t, resp.RecentOrders, 3)
	assert.Equal(t, "Eve", resp.RecentOrders[0].CustomerName)
}

func TestDashboardEmptyDatabase(t *testing.T) {
	r, _ := setupTest(t)

	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalOrders  int64   `json:"total_orders"`
		TotalRevenue float64 `json:"total_revenue"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.TotalOrders)
	assert.Zero(t, resp.TotalRevenue)
}
