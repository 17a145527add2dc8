package v1

import (
	"net/http"

	"mitienda-backend/internal/domain"
	"mitienda-backend/internal/usecase"
	"mitienda-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUsecase *usecase.CatalogUsecase
}

func NewCatalogHandler(catalogUsecase *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUsecase.ListProducts(r.Context())
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    products,
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.catalogUsecase.GetProduct(r.Context(), id)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	if product == nil {
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    product,
	})
}
