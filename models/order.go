package models

import "time"

type OrderStatus string

const (
	// Order lifecycle labels. The kitchen treats these as an unordered set:
	// staff may move an order to any label at any time.
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerID    string      `gorm:"not null;index" json:"customer_id"`
	Customer      *User       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CustomerName  string      `gorm:"size:100;not null" json:"customer_name"`
	Phone         string      `gorm:"size:20;not null" json:"phone"`
	TableNumber   string      `gorm:"size:10" json:"table_number"`
	IsTakeaway    bool        `json:"is_takeaway"`
	TotalAmount   float64     `json:"total_amount"`
	Status        OrderStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	PaymentMethod string      `gorm:"size:50" json:"payment_method"`
	Notes         string      `gorm:"size:500" json:"notes"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	// UpdatedAt stays nil until the order is first changed after creation.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

// OrderItem is the frozen snapshot of a cart line at checkout time. Name,
// price and subtotal never change afterwards, whatever happens to the catalog.
type OrderItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	OrderID     uint     `gorm:"index" json:"order_id"`
	ProductID   uint     `json:"product_id"`
	Product     *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName string   `gorm:"size:200;not null" json:"product_name"`
	UnitPrice   float64  `json:"unit_price"`
	Quantity    int      `json:"quantity"`
	Subtotal    float64  `json:"subtotal"`
}
