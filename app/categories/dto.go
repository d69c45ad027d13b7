package categories

// CategoryDTO is the read model returned by every category endpoint.
type CategoryDTO struct {
	ID           uint   `json:"Id"`
	Name         string `json:"Name"`
	DisplayOrder int    `json:"DisplayOrder"`
}

// CategoryCreateDTO is the body of POST /api/CategoryAPI.
type CategoryCreateDTO struct {
	Name         string `json:"Name" validate:"required,notblank,max=30"`
	DisplayOrder int    `json:"DisplayOrder" validate:"min=1,max=100" rangemsg:"Display Order must be between 1-100"`
}

// CategoryUpdateDTO is the body of PUT and the target of PATCH.
type CategoryUpdateDTO struct {
	ID           uint   `json:"Id"`
	Name         string `json:"Name" validate:"required,notblank,max=30"`
	DisplayOrder int    `json:"DisplayOrder" validate:"min=1,max=100" rangemsg:"Display Order must be between 1-100"`
}
