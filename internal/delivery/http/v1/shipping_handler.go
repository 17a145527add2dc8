package v1

import (
	"net/http"

	"mitienda-backend/internal/domain"
	"mitienda-backend/internal/usecase"
	"mitienda-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type ShippingHandler struct {
	shippingUsecase *usecase.ShippingUsecase
}

func NewShippingHandler(shippingUsecase *usecase.ShippingUsecase) *ShippingHandler {
	return &ShippingHandler{shippingUsecase: shippingUsecase}
}

type validateAddressRequest struct {
	PostalCode string `json:"postalCode"`
}

type ratesRequest struct {
	PostalCode string `json:"postalCode"`
}

type labelRequest struct {
	SelectedRate *domain.Rate         `json:"selectedRate"`
	ShippingData *domain.ShippingData `json:"shippingData"`
}

func (h *ShippingHandler) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	var req validateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	addr, err := h.shippingUsecase.ValidateAddress(r.Context(), req.PostalCode)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    addr,
	})
}

// Rates quotes the caller's current cart against the destination postal code.
func (h *ShippingHandler) Rates(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ratesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rates, err := h.shippingUsecase.CalculateShipping(r.Context(), req.PostalCode, sess.CartSnapshot().Items)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    rates,
	})
}

// Labels generates a shipping label for the rate the caller picked.
func (h *ShippingHandler) Labels(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req labelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	shipment, err := h.shippingUsecase.CreateShipment(r.Context(), sess.CartSnapshot().Items, req.SelectedRate, req.ShippingData)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, domain.Response{
		Success: true,
		Message: "Shipment created",
		Data:    shipment,
	})
}
