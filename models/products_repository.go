package models

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	repository[Product]
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		repository: repository[Product]{db: db, preloads: []string{"Category"}},
	}
}

// Update replaces the mutable fields of the product with p.ID.
// The Category association is never written through a product.
func (r *ProductsRepository) Update(ctx context.Context, p *Product) error {
	return r.update(ctx, p.ID, map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"isbn":        p.ISBN,
		"author":      p.Author,
		"price":       p.Price,
		"category_id": p.CategoryID,
		"image_url":   p.ImageURL,
	})
}

// ProductID matches the product with the given id.
func ProductID(id uint) Predicate[Product] {
	return Predicate[Product]{
		scope: func(db *gorm.DB) *gorm.DB { return db.Where("products.id = ?", id) },
		match: func(p *Product) bool { return p.ID == id },
	}
}

// ProductTitleFold matches products whose title equals title ignoring case.
func ProductTitleFold(title string) Predicate[Product] {
	return Predicate[Product]{
		scope: func(db *gorm.DB) *gorm.DB { return db.Where("LOWER(products.title) = LOWER(?)", title) },
		match: func(p *Product) bool { return strings.EqualFold(p.Title, title) },
	}
}

// ProductsInCategory matches every product that belongs to the category.
func ProductsInCategory(categoryID uint) Predicate[Product] {
	return Predicate[Product]{
		scope: func(db *gorm.DB) *gorm.DB { return db.Where("products.category_id = ?", categoryID) },
		match: func(p *Product) bool { return p.CategoryID == categoryID },
	}
}
