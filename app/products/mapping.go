package products

import (
	"github.com/shopspring/decimal"

	"github.com/ecomweb/catalog-api/app/categories"
	"github.com/ecomweb/catalog-api/models"
)

// priceScale matches the decimal(10,2) price column.
const priceScale = 2

// toPrice rounds a wire price to the scale of the price column.
func toPrice(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(priceScale)
}

func toDTO(p models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ISBN:        p.ISBN,
		Author:      p.Author,
		Price:       p.Price.InexactFloat64(),
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
	}
	if p.Category.ID != 0 {
		c := categories.ToDTO(p.Category)
		dto.Category = &c
	}
	return dto
}

func toDTOs(ps []models.Product) []ProductDTO {
	out := make([]ProductDTO, len(ps))
	for i, p := range ps {
		out[i] = toDTO(p)
	}
	return out
}

func fromDTO(d ProductDTO) models.Product {
	return models.Product{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		ISBN:        d.ISBN,
		Author:      d.Author,
		Price:       toPrice(d.Price),
		CategoryID:  d.CategoryID,
		ImageURL:    d.ImageURL,
	}
}

func fromCreateDTO(d ProductCreateDTO) models.Product {
	return models.Product{
		Title:       d.Title,
		Description: d.Description,
		ISBN:        d.ISBN,
		Author:      d.Author,
		Price:       toPrice(d.Price),
		CategoryID:  d.CategoryID,
		ImageURL:    d.ImageURL,
	}
}

func toCreateDTO(p models.Product) ProductCreateDTO {
	return ProductCreateDTO{
		Title:       p.Title,
		Description: p.Description,
		ISBN:        p.ISBN,
		Author:      p.Author,
		Price:       p.Price.InexactFloat64(),
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
	}
}

func fromUpdateDTO(d ProductUpdateDTO) models.Product {
	return models.Product{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		ISBN:        d.ISBN,
		Author:      d.Author,
		Price:       toPrice(d.Price),
		CategoryID:  d.CategoryID,
		ImageURL:    d.ImageURL,
	}
}

func toUpdateDTO(p models.Product) ProductUpdateDTO {
	return ProductUpdateDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ISBN:        p.ISBN,
		Author:      p.Author,
		Price:       p.Price.InexactFloat64(),
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
	}
}
