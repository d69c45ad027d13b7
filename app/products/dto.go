package products

import "github.com/ecomweb/catalog-api/app/categories"

// ProductDTO is the read model returned by every product endpoint. Category
// is filled in whenever the owning category was loaded with the product.
type ProductDTO struct {
	ID          uint                    `json:"Id"`
	Title       string                  `json:"Title"`
	Description string                  `json:"Description"`
	ISBN        string                  `json:"ISBN"`
	Author      string                  `json:"Author"`
	Price       float64                 `json:"Price"`
	CategoryID  uint                    `json:"CategoryId"`
	Category    *categories.CategoryDTO `json:"Category,omitempty"`
	ImageURL    string                  `json:"ImageUrl"`
}

// ProductCreateDTO is the body of POST /api/ProductAPI.
type ProductCreateDTO struct {
	Title       string  `json:"Title" validate:"required,notblank"`
	Description string  `json:"Description"`
	ISBN        string  `json:"ISBN" validate:"required,notblank"`
	Author      string  `json:"Author" validate:"required,notblank"`
	Price       float64 `json:"Price" validate:"min=1,max=1000" rangemsg:"The field Price must be between 1 and 1000."`
	CategoryID  uint    `json:"CategoryId"`
	ImageURL    string  `json:"ImageUrl"`
}

// ProductUpdateDTO is the body of PUT and the target of PATCH.
type ProductUpdateDTO struct {
	ID          uint    `json:"Id"`
	Title       string  `json:"Title" validate:"required,notblank"`
	Description string  `json:"Description"`
	ISBN        string  `json:"ISBN" validate:"required,notblank"`
	Author      string  `json:"Author" validate:"required,notblank"`
	Price       float64 `json:"Price" validate:"min=1,max=1000" rangemsg:"The field Price must be between 1 and 1000."`
	CategoryID  uint    `json:"CategoryId"`
	ImageURL    string  `json:"ImageUrl"`
}
