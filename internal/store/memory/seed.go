package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"commerce-pos/internal/core"
)

// SeedCatalog returns a small demo catalog for running the register without
// a database.
func SeedCatalog() []core.Product {
	now := time.Now()
	return []core.Product{
		{
			ID: "p-1001", Name: "Basmati Rice", SKU: "RICE-BAS", Barcode: "8901001000018",
			Unit: "kg", BasePrice: decimal.NewFromInt(90), TaxRate: decimal.NewFromInt(5),
			StockQuantity: decimal.NewFromInt(120), LowStockThreshold: decimal.NewFromInt(20),
			IsLoose: true, IsActive: true, CreatedAt: now,
		},
		{
			ID: "p-1002", Name: "Sunflower Oil 1L", SKU: "OIL-SUN-1L", Barcode: "8901001000025",
			Unit: "pcs", BasePrice: decimal.NewFromInt(140), TaxRate: decimal.NewFromInt(5),
			StockQuantity: decimal.NewFromInt(48), LowStockThreshold: decimal.NewFromInt(10),
			IsActive: true, CreatedAt: now,
		},
		{
			ID: "p-1003", Name: "Toor Dal", SKU: "DAL-TOOR", Barcode: "8901001000032",
			Unit: "kg", BasePrice: decimal.NewFromInt(160), TaxRate: decimal.NewFromInt(0),
			StockQuantity: decimal.NewFromInt(60), LowStockThreshold: decimal.NewFromInt(15),
			IsLoose: true, IsActive: true, CreatedAt: now,
		},
		{
			ID: "p-1004", Name: "Instant Coffee 100g", SKU: "COF-INS-100", Barcode: "8901001000049",
			Unit: "pcs", BasePrice: decimal.NewFromInt(320), TaxRate: decimal.NewFromInt(18),
			StockQuantity: decimal.NewFromInt(25), LowStockThreshold: decimal.NewFromInt(5),
			IsActive: true, CreatedAt: now,
		},
		{
			ID: "p-1005", Name: "Notebook A5", SKU: "STA-NB-A5", Barcode: "8901001000056",
			Unit: "pcs", BasePrice: decimal.NewFromInt(60), TaxRate: decimal.NewFromInt(12),
			StockQuantity: decimal.NewFromInt(200), LowStockThreshold: decimal.NewFromInt(30),
			IsActive: true, CreatedAt: now,
		},
	}
}
