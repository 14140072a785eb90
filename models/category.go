package models

type Category struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"size:500" json:"description"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	Products     []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
