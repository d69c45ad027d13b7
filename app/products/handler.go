package products

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ecomweb/catalog-api/app/api"
	"github.com/ecomweb/catalog-api/app/patch"
	"github.com/ecomweb/catalog-api/models"
)

// BasePath is the route prefix of the product endpoints.
const BasePath = "/api/ProductAPI"

const (
	msgProductExists   = "Product already Exists!"
	msgCategoryInvalid = "Category ID is Invalid!"
)

type ProductProvider interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, where models.Predicate[models.Product]) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Remove(ctx context.Context, product *models.Product) error
}

// CategoryLookup resolves the category a product points at.
type CategoryLookup interface {
	Get(ctx context.Context, where models.Predicate[models.Category]) (*models.Category, error)
}

type ProductHandler struct {
	repo       ProductProvider
	categories CategoryLookup
}

func NewProductHandler(r ProductProvider, c CategoryLookup) *ProductHandler {
	return &ProductHandler{repo: r, categories: c}
}

func (h *ProductHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.List(r.Context())
	if err != nil {
		api.ServerErrorResponse(w, r, err, "failed to fetch products")
		return
	}

	api.OKResponse(w, toDTOs(products))
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil || id == 0 {
		api.StatusResponse(w, http.StatusBadRequest)
		return
	}

	product, err := h.repo.Get(r.Context(), models.ProductID(id))
	if errors.Is(err, models.ErrNotFound) {
		api.StatusResponse(w, http.StatusNotFound)
		return
	}
	if err != nil {
		api.ServerErrorResponse(w, r, err, "failed to fetch product")
		return
	}

	api.OKResponse(w, toDTO(*product))
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := api.BindJSON[ProductCreateDTO](w, r)
	if !ok {
		return
	}

	ms := api.NewModelState()
	api.Validate(input, ms)
	if !ms.IsValid() {
		api.ValidationResponse(w, ms)
		return
	}

	_, err := h.repo.Get(r.Context(), models.ProductTitleFold(input.Title))
	if err == nil {
		ms.AddError(api.KeyCustomerError, msgProductExists)
		api.ValidationResponse(w, ms)
		return
	}
	if !errors.Is(err, models.ErrNotFound) {
		api.ServerErrorResponse(w, r, err, "Failed to create product")
		return
	}

	category, ok := h.lookupCategory(w, r, input.CategoryID)
	if !ok {
		return
	}

	product := fromCreateDTO(*input)
	if err := h.repo.Create(r.Context(), &product); err != nil {
		h.writeError(w, r, err, "Failed to create product")
		return
	}
	product.Category = *category

	api.CreatedResponse(w, fmt.Sprintf("%s/%d", BasePath, product.ID), toDTO(product))
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.StatusResponse(w, http.StatusBadRequest)
		return
	}

	input, ok := api.BindJSON[ProductUpdateDTO](w, r)
	if !ok {
		return
	}
	if input.ID != id {
		api.StatusResponse(w, http.StatusBadRequest)
		return
	}

	ms := api.NewModelState()
	api.Validate(input, ms)
	if !ms.IsValid() {
		api.ValidationResponse(w, ms)
		return
	}

	if _, ok := h.lookupCategory(w, r, input.CategoryID); !ok {
		return
	}

	product := fromUpdateDTO(*input)
	if err := h.repo.Update(r.Context(), &product); err != nil {
		h.writeError(w, r, err, "Failed to update product")
		return
	}

	api.StatusResponse(w, http.StatusNoContent)
}

func (h *ProductHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil || id == 0 {
		api.StatusResponse(w, http.StatusBadRequest)
		return
	}

	body, err := api.ReadBody(w, r)
	if err != nil {
		api.StatusResponse(w, http.StatusBadRequest)
		return
	}
	doc, err := patch.Parse(r.Header.Get("Content-Type"), body)
	if errors.Is(err, patch.ErrEmptyDocument) {
		api.StatusResponse(w, http.StatusBadRequest)
		return
	}
	if err != nil {
		ms := api.NewModelState()
		ms.AddError(api.KeyPatchError, err.Error())
		api.ValidationResponse(w, ms)
		return
	}

	product, err := h.repo.Get(r.Context(), models.ProductID(id))
	if errors.Is(err, models.ErrNotFound) {
		api.StatusResponse(w, http.StatusNotFound)
		return
	}
	if err != nil {
		api.ServerErrorResponse(w, r, err, "failed to fetch product")
		return
	}

	dto := toUpdateDTO(*product)
	ms := api.NewModelState()
	patch.Apply(doc, &dto, ms)
	if ms.IsValid() {
		api.Validate(&dto, ms)
	}
	if !ms.IsValid() {
		api.ValidationResponse(w, ms)
		return
	}

	if dto.CategoryID != product.CategoryID {
		if _, ok := h.lookupCategory(w, r, dto.CategoryID); !ok {
			return
		}
	}

	model := fromUpdateDTO(dto)
	if err := h.repo.Update(r.Context(), &model); err != nil {
		h.writeError(w, r, err, "Failed to update product")
		return
	}

	api.StatusResponse(w, http.StatusNoContent)
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil || id == 0 {
		api.StatusResponse(w, http.StatusBadRequest)
		return
	}

	product, err := h.repo.Get(r.Context(), models.ProductID(id))
	if errors.Is(err, models.ErrNotFound) {
		api.StatusResponse(w, http.StatusNotFound)
		return
	}
	if err != nil {
		api.ServerErrorResponse(w, r, err, "failed to fetch product")
		return
	}

	if err := h.repo.Remove(r.Context(), product); err != nil {
		h.writeError(w, r, err, "Failed to delete product")
		return
	}

	api.StatusResponse(w, http.StatusNoContent)
}

// lookupCategory loads the category with the given id. When it does not
// exist the InvalidError response has already been written.
func (h *ProductHandler) lookupCategory(w http.ResponseWriter, r *http.Request, id uint) (*models.Category, bool) {
	if id == 0 {
		ms := api.NewModelState()
		ms.AddError(api.KeyInvalidError, msgCategoryInvalid)
		api.ValidationResponse(w, ms)
		return nil, false
	}
	category, err := h.categories.Get(r.Context(), models.CategoryID(id))
	if errors.Is(err, models.ErrNotFound) {
		ms := api.NewModelState()
		ms.AddError(api.KeyInvalidError, msgCategoryInvalid)
		api.ValidationResponse(w, ms)
		return nil, false
	}
	if err != nil {
		api.ServerErrorResponse(w, r, err, "failed to fetch category")
		return nil, false
	}
	return category, true
}

func (h *ProductHandler) writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	ms := api.NewModelState()
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.StatusResponse(w, http.StatusNotFound)
	case errors.Is(err, models.ErrDuplicate):
		ms.AddError(api.KeyCustomerError, msgProductExists)
		api.ValidationResponse(w, ms)
	case errors.Is(err, models.ErrInvalidReference):
		ms.AddError(api.KeyInvalidError, msgCategoryInvalid)
		api.ValidationResponse(w, ms)
	default:
		api.ServerErrorResponse(w, r, err, message)
	}
}
