package models

import "time"

// Category represents a product category.
// Name is unique case-insensitively and DisplayOrder is unique across all categories.
type Category struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:30;not null"`
	DisplayOrder int       `gorm:"uniqueIndex:idx_categories_display_order;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (c *Category) TableName() string {
	return "categories"
}
