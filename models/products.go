package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// Title is unique case-insensitively and every product belongs to exactly one category.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"not null"`
	Description string          `gorm:"not null"`
	ISBN        string          `gorm:"column:isbn;not null"`
	Author      string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID  uint            `gorm:"not null;index"`
	Category    Category        `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ImageURL    string          `gorm:"column:image_url;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

func (p *Product) TableName() string {
	return "products"
}
