package models

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	repository[Category]
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		repository: repository[Category]{db: db},
	}
}

// Update replaces the mutable fields of the category with c.ID.
func (r *CategoriesRepository) Update(ctx context.Context, c *Category) error {
	return r.update(ctx, c.ID, map[string]any{
		"name":          c.Name,
		"display_order": c.DisplayOrder,
	})
}

// CategoryID matches the category with the given id.
func CategoryID(id uint) Predicate[Category] {
	return Predicate[Category]{
		scope: func(db *gorm.DB) *gorm.DB { return db.Where("categories.id = ?", id) },
		match: func(c *Category) bool { return c.ID == id },
	}
}

// CategoryNameFold matches categories whose name equals name ignoring case.
func CategoryNameFold(name string) Predicate[Category] {
	return Predicate[Category]{
		scope: func(db *gorm.DB) *gorm.DB { return db.Where("LOWER(categories.name) = LOWER(?)", name) },
		match: func(c *Category) bool { return strings.EqualFold(c.Name, name) },
	}
}

// CategoryDisplayOrder matches the category using the given display order.
func CategoryDisplayOrder(order int) Predicate[Category] {
	return Predicate[Category]{
		scope: func(db *gorm.DB) *gorm.DB { return db.Where("categories.display_order = ?", order) },
		match: func(c *Category) bool { return c.DisplayOrder == order },
	}
}
