package v1

import (
	"net/http"

	"mitienda-backend/config"
	"mitienda-backend/internal/domain"
	"mitienda-backend/internal/usecase"
	"mitienda-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type CartHandler struct {
	cartUsecase    *usecase.CartUsecase
	catalogUsecase *usecase.CatalogUsecase
	cfg            *config.Config
}

func NewCartHandler(cartUsecase *usecase.CartUsecase, catalogUsecase *usecase.CatalogUsecase, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartUsecase:    cartUsecase,
		catalogUsecase: catalogUsecase,
		cfg:            cfg,
	}
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    h.cartUsecase.GetCart(sess),
	})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity > h.cfg.MaxCartQuantity {
		utils.WriteError(w, http.StatusBadRequest, "Quantity exceeds allowed maximum")
		return
	}

	// The catalog is the source of truth for price, weight and stock.
	product, err := h.catalogUsecase.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	if product == nil {
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}

	cart, err := h.cartUsecase.AddItem(sess, *product, req.Quantity)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Message: "Item added to cart",
		Data:    cart,
	})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity > h.cfg.MaxCartQuantity {
		utils.WriteError(w, http.StatusBadRequest, "Quantity exceeds allowed maximum")
		return
	}

	cart, err := h.cartUsecase.UpdateItemQuantity(sess, req.ProductID, req.Quantity)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Message: "Cart updated",
		Data:    cart,
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}

	cart := h.cartUsecase.RemoveItem(sess, productID)

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Message: "Item removed from cart",
		Data:    cart,
	})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cart := h.cartUsecase.Clear(sess)

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Message: "Cart cleared",
		Data:    cart,
	})
}
