package categories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ecomweb/catalog-api/app/api"
	"github.com/ecomweb/catalog-api/app/patch"
	"github.com/ecomweb/catalog-api/models"
)

// BasePath is the route prefix of the category endpoints.
const BasePath = "/api/CategoryAPI"

const (
	msgCategoryExists     = "Category already Exists!"
	msgDisplayOrderExists = "Display Order already Exists!"
	msgCategoryInUse      = "Category is in use by existing products!"
)

type CategoryProvider interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, where models.Predicate[models.Category]) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Remove(ctx context.Context, category *models.Category) error
}

// ProductCounter counts the products matching a predicate. It is used to
// refuse deleting categories that still have products.
type ProductCounter interface {
	Count(ctx context.Context, where models.Predicate[models.Product]) (int64, error)
}

type CategoryHandler struct {
	repo     CategoryProvider
	products ProductCounter
}

func NewCategoryHandler(r CategoryProvider, p ProductCounter) *CategoryHandler {
	return &CategoryHandler{repo: r, products: p}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List(r.Context())
	if err != nil {
		api.ServerErrorResponse(w, r, err, "failed to fetch categories")
		return
	}

	api.OKResponse(w, toDTOs(categories))
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil || id == 0 {
		api.StatusResponse(w, http.StatusBadRequest)
		return
	}

	category, err := h.repo.Get(r.Context(), models.CategoryID(id))
	if errors.Is(err, models.ErrNotFound) {
		api.StatusResponse(w, http.StatusNotFound)
		return
	}
	if err != nil {
		api.ServerErrorResponse(w, r, err, "failed to fetch category")
		return
	}

	api.OKResponse(w, ToDTO(*category))
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := api.BindJSON[CategoryCreateDTO](w, r)
	if !ok {
		return
	}

	ms := api.NewModelState()
	api.Validate(input, ms)
	if !ms.IsValid() {
		api.ValidationResponse(w, ms)
		return
	}

	// Friendly pre-checks; the unique indexes remain the authority.
	ms, err := h.checkUnique(r.Context(), input.Name, input.DisplayOrder)
	if err != nil {
		api.ServerErrorResponse(w, r, err, "Failed to create category")
		return
	}
	if !ms.IsValid() {
		api.ValidationResponse(w, ms)
		return
	}

	category := fromCreateDTO(*input)
	if err := h.repo.Create(r.Context(), &category); err != nil {
		h.writeError(w, r, err, "Failed to create category")
		return
	}

	api.CreatedResponse(w, fmt.Sprintf("%s/%d", BasePath, category.ID), ToDTO(category))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil {
		api.StatusResponse(w, http.StatusBadRequest)
		return
	}

	input, ok := api.BindJSON[CategoryUpdateDTO](w, r)
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

	category := fromUpdateDTO(*input)
	if err := h.repo.Update(r.Context(), &category); err != nil {
		h.writeError(w, r, err, "Failed to update category")
		return
	}

	api.StatusResponse(w, http.StatusNoContent)
}

func (h *CategoryHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
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

	category, err := h.repo.Get(r.Context(), models.CategoryID(id))
	if errors.Is(err, models.ErrNotFound) {
		api.StatusResponse(w, http.StatusNotFound)
		return
	}
	if err != nil {
		api.ServerErrorResponse(w, r, err, "failed to fetch category")
		return
	}

	dto := toUpdateDTO(*category)
	ms := api.NewModelState()
	patch.Apply(doc, &dto, ms)
	if ms.IsValid() {
		api.Validate(&dto, ms)
	}
	if !ms.IsValid() {
		api.ValidationResponse(w, ms)
		return
	}

	model := fromUpdateDTO(dto)
	if err := h.repo.Update(r.Context(), &model); err != nil {
		h.writeError(w, r, err, "Failed to update category")
		return
	}

	api.StatusResponse(w, http.StatusNoContent)
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := api.PathID(r)
	if err != nil || id == 0 {
		api.StatusResponse(w, http.StatusBadRequest)
		return
	}

	category, err := h.repo.Get(r.Context(), models.CategoryID(id))
	if errors.Is(err, models.ErrNotFound) {
		api.StatusResponse(w, http.StatusNotFound)
		return
	}
	if err != nil {
		api.ServerErrorResponse(w, r, err, "failed to fetch category")
		return
	}

	n, err := h.products.Count(r.Context(), models.ProductsInCategory(id))
	if err != nil {
		api.ServerErrorResponse(w, r, err, "Failed to delete category")
		return
	}
	if n > 0 {
		ms := api.NewModelState()
		ms.AddError(api.KeyReferenceError, msgCategoryInUse)
		api.ValidationResponse(w, ms)
		return
	}

	if err := h.repo.Remove(r.Context(), category); err != nil {
		h.writeError(w, r, err, "Failed to delete category")
		return
	}

	api.StatusResponse(w, http.StatusNoContent)
}

// checkUnique runs the create-time uniqueness checks in order: name first,
// then display order. Only the first failure is reported.
func (h *CategoryHandler) checkUnique(ctx context.Context, name string, order int) (api.ModelState, error) {
	ms := api.NewModelState()

	_, err := h.repo.Get(ctx, models.CategoryNameFold(name))
	if err == nil {
		ms.AddError(api.KeyCustomerError, msgCategoryExists)
		return ms, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	_, err = h.repo.Get(ctx, models.CategoryDisplayOrder(order))
	if err == nil {
		ms.AddError(api.KeyDuplicateError, msgDisplayOrderExists)
		return ms, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	return ms, nil
}

// writeError maps repository write errors onto responses.
func (h *CategoryHandler) writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	ms := api.NewModelState()
	switch {
	case errors.Is(err, models.ErrNotFound):
		api.StatusResponse(w, http.StatusNotFound)
	case errors.Is(err, models.ErrDuplicate):
		if strings.Contains(models.ViolatedConstraint(err), "display_order") {
			ms.AddError(api.KeyDuplicateError, msgDisplayOrderExists)
		} else {
			ms.AddError(api.KeyCustomerError, msgCategoryExists)
		}
		api.ValidationResponse(w, ms)
	case errors.Is(err, models.ErrInvalidReference):
		ms.AddError(api.KeyReferenceError, msgCategoryInUse)
		api.ValidationResponse(w, ms)
	default:
		api.ServerErrorResponse(w, r, err, message)
	}
}
