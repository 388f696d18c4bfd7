package web

import (
	"net/http"

	"github.com/shopspring/decimal"

	"commerce-pos/internal/app"
	"commerce-pos/internal/core"
)

func (h *Handler) scan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		writeError(w, r, "code is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.Scan(r.Context(), req.Code)
	if err != nil {
		writeError(w, r, err.Error(), "SCAN_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toCartResponse(res))
}

func (h *Handler) createLabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductName  string          `json:"product_name"`
		Weight       decimal.Decimal `json:"weight"`
		Unit         string          `json:"unit"`
		PricePerUnit decimal.Decimal `json:"price_per_unit"`
		TaxRate      decimal.Decimal `json:"tax_rate"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.CreateLabel(r.Context(), app.CreateLabelRequest{
		ProductName:  req.ProductName,
		Weight:       req.Weight,
		Unit:         req.Unit,
		PricePerUnit: req.PricePerUnit,
		TaxRate:      req.TaxRate,
	})
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSON(w, struct {
		Label   core.ManualLabel `json:"label"`
		Barcode string           `json:"barcode"`
	}{res.Label, res.Barcode})
}
