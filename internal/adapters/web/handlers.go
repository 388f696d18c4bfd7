package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"commerce-pos/internal/app"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Handler holds the RegisterService and the chi router.
type Handler struct {
	svc    app.RegisterService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
// allowedOrigins is the comma-separated ALLOWED_ORIGINS value.
func NewHandler(svc app.RegisterService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(maxBodyBytes))

	r.Get("/api/health", h.health)

	// ── Catalog & stock ───────────────────────────────────────────────────────
	r.Get("/api/products", h.listProducts)
	r.Get("/api/products/low-stock", h.lowStock)
	r.Get("/api/products/out-of-stock", h.outOfStock)
	r.Post("/api/products/{productID}/restock", h.restock)
	r.Put("/api/products/{productID}/stock", h.updateStock)

	// ── Cart ──────────────────────────────────────────────────────────────────
	r.Get("/api/cart", h.getCart)
	r.Delete("/api/cart", h.clearCart)
	r.Post("/api/cart/items", h.addItem)
	r.Post("/api/cart/manual-items", h.addManualItem)
	r.Put("/api/cart/items/{productID}", h.updateQuantity)
	r.Put("/api/cart/items/{productID}/discount", h.updateItemDiscount)
	r.Delete("/api/cart/items/{productID}", h.removeItem)
	r.Put("/api/cart/customer", h.setCustomer)
	r.Put("/api/cart/discount", h.setDiscount)
	r.Put("/api/cart/coupon", h.setCoupon)
	r.Post("/api/cart/hold", h.holdCart)
	r.Post("/api/cart/recall", h.recallHeldCart)
	r.Post("/api/cart/complete", h.completeSale)

	// ── Scanning & labels ─────────────────────────────────────────────────────
	// Camera decoders post their decoded strings here directly; hardware
	// scanner input arrives on the terminal adapter instead.
	r.Post("/api/scan", h.scan)
	r.Post("/api/labels", h.createLabel)

	// ── Alerts & reporting ────────────────────────────────────────────────────
	r.Get("/api/alerts", h.listAlerts)
	r.Post("/api/alerts/{alertID}/dismiss", h.dismissAlert)
	r.Get("/api/sales/today", h.todaySummary)

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
