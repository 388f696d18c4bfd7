package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"commerce-pos/internal/app"
	"commerce-pos/internal/core"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	var (
		res *app.ProductListResult
		err error
	)
	if query := r.URL.Query().Get("q"); query != "" {
		res, err = h.svc.SearchProducts(r.Context(), query)
	} else {
		res, err = h.svc.ListProducts(r.Context())
	}
	if err != nil {
		writeError(w, r, err.Error(), "CATALOG_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		Products []core.Product `json:"products"`
	}{res.Products})
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.LowStockProducts(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "CATALOG_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		Products []core.Product `json:"products"`
	}{res.Products})
}

func (h *Handler) outOfStock(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.OutOfStockProducts(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "CATALOG_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		Products []core.Product `json:"products"`
	}{res.Products})
}

func (h *Handler) restock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity decimal.Decimal `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if !req.Quantity.IsPositive() {
		writeError(w, r, "quantity must be positive", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.RestockProduct(r.Context(), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, struct {
		Product core.Product `json:"product"`
	}{res.Product})
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity decimal.Decimal `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid request body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.UpdateStock(r.Context(), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, struct {
		Product core.Product `json:"product"`
	}{res.Product})
}

func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.StockAlerts(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "ALERT_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		Alerts []core.StockAlert `json:"alerts"`
	}{res.Alerts})
}

func (h *Handler) dismissAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DismissAlert(r.Context(), chi.URLParam(r, "alertID")); err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, struct {
		Dismissed bool `json:"dismissed"`
	}{true})
}

func (h *Handler) todaySummary(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.TodaySummary(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "SALES_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		Date              string          `json:"date"`
		TotalSales        decimal.Decimal `json:"total_sales"`
		InvoiceCount      int             `json:"invoice_count"`
		NextInvoiceNumber string          `json:"next_invoice_number"`
		LowStockCount     int             `json:"low_stock_count"`
		OutOfStockCount   int             `json:"out_of_stock_count"`
	}{
		Date:              res.Date,
		TotalSales:        res.TotalSales,
		InvoiceCount:      res.InvoiceCount,
		NextInvoiceNumber: res.NextInvoiceNumber,
		LowStockCount:     res.LowStockCount,
		OutOfStockCount:   res.OutOfStockCount,
	})
}
