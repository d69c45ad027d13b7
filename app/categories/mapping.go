package categories

import "github.com/ecomweb/catalog-api/models"

// ToDTO projects a category onto its read model.
func ToDTO(c models.Category) CategoryDTO {
	return CategoryDTO{
		ID:           c.ID,
		Name:         c.Name,
		DisplayOrder: c.DisplayOrder,
	}
}

func toDTOs(cs []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, len(cs))
	for i, c := range cs {
		out[i] = ToDTO(c)
	}
	return out
}

func fromDTO(d CategoryDTO) models.Category {
	return models.Category{
		ID:           d.ID,
		Name:         d.Name,
		DisplayOrder: d.DisplayOrder,
	}
}

func fromCreateDTO(d CategoryCreateDTO) models.Category {
	return models.Category{
		Name:         d.Name,
		DisplayOrder: d.DisplayOrder,
	}
}

func toCreateDTO(c models.Category) CategoryCreateDTO {
	return CategoryCreateDTO{
		Name:         c.Name,
		DisplayOrder: c.DisplayOrder,
	}
}

func fromUpdateDTO(d CategoryUpdateDTO) models.Category {
	return models.Category{
		ID:           d.ID,
		Name:         d.Name,
		DisplayOrder: d.DisplayOrder,
	}
}

func toUpdateDTO(c models.Category) CategoryUpdateDTO {
	return CategoryUpdateDTO{
		ID:           c.ID,
		Name:         c.Name,
		DisplayOrder: c.DisplayOrder,
	}
}
