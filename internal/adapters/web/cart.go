package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"commerce-pos/internal/app"
	"commerce-pos/internal/core"
)

// cartResponse is the uniform payload for every cart mutation: the cart
// after the operation and the operation's outcome. Stock-limit rejections
// are business outcomes, not HTTP errors, so they ship as success=false
// with status 200.
type cartResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
	Cart     core.Cart `json:"cart"`
	HeldCart bool      `json:"held_cart"`
}

func toCartResponse(res *app.CartResult) cartResponse {
	return cartResponse{
		Success:  res.Result.Success,
		Message:  res.Result.Message,
		Cart:     res.Cart,
		HeldCart: res.HeldCart,
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetCart(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ClearCart(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string          `json:"product_id"`
		Quantity  decimal.Decimal `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		writeError(w, r, "product_id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	// Omitted quantity (zero) defaults to 1 in the service.
	if req.Quantity.IsNegative() {
		writeError(w, r, "quantity must be positive", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.AddItem(r.Context(), app.AddItemRequest{ProductID: req.ProductID, Quantity: req.Quantity})
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) addManualItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string          `json:"name"`
		Unit         string          `json:"unit"`
		PricePerUnit decimal.Decimal `json:"price_per_unit"`
		Quantity     decimal.Decimal `json:"quantity"`
		TaxRate      decimal.Decimal `json:"tax_rate"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.Name == "" || !req.Quantity.IsPositive() {
		writeError(w, r, "name and a positive quantity are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.AddManualItem(r.Context(), app.ManualItemRequest{
		Name:         req.Name,
		Unit:         req.Unit,
		PricePerUnit: req.PricePerUnit,
		Quantity:     req.Quantity,
		TaxRate:      req.TaxRate,
	})
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity decimal.Decimal `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.UpdateQuantity(r.Context(), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) updateItemDiscount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Discount decimal.Decimal `json:"discount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.Discount.IsNegative() {
		writeError(w, r, "discount cannot be negative", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.UpdateItemDiscount(r.Context(), chi.URLParam(r, "productID"), req.Discount)
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RemoveItem(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) setCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Customer *core.Customer `json:"customer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.SetCustomer(r.Context(), req.Customer)
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) setDiscount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount decimal.Decimal `json:"amount"`
		Type   string          `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.Amount.IsNegative() {
		writeError(w, r, "discount amount cannot be negative", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.SetDiscount(r.Context(), req.Amount, core.DiscountType(req.Type))
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) setCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.SetCouponCode(r.Context(), req.Code)
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) holdCart(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.HoldCart(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) recallHeldCart(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RecallHeldCart(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) completeSale(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.CompleteSale(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "CART_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		Success bool                `json:"success"`
		Message string              `json:"message,omitempty"`
		Sale    *core.CompletedSale `json:"sale,omitempty"`
	}{
		Success: res.Result.Success,
		Message: res.Result.Message,
		Sale:    res.Sale,
	})
}
