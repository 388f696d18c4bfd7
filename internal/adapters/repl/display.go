package repl

import (
	"fmt"
	"strings"

	"commerce-pos/internal/app"
	"commerce-pos/internal/core"
)

func printOutcome(result core.ActionResult) {
	if result.Message == "" {
		return
	}
	if result.Success {
		fmt.Println(result.Message)
	} else {
		fmt.Printf("FAILED: %s\n", result.Message)
	}
}

func printProducts(result *app.ProductListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("  %-78s\n", "PRODUCTS")
	fmt.Println(strings.Repeat("=", 80))
	if len(result.Products) == 0 {
		fmt.Println("  No products found.")
		fmt.Println(strings.Repeat("=", 80))
		return
	}
	fmt.Printf("  %-8s %-24s %-10s %-6s %10s %10s\n", "ID", "NAME", "SKU", "UNIT", "PRICE", "STOCK")
	fmt.Println(strings.Repeat("-", 80))
	for _, p := range result.Products {
		stock := p.StockQuantity.String()
		if p.IsLoose {
			stock += " (loose)"
		}
		fmt.Printf("  %-8s %-24s %-10s %-6s %10s %10s\n",
			p.ID, p.Name, p.SKU, p.Unit, p.BasePrice.StringFixed(2), stock)
	}
	fmt.Println(strings.Repeat("=", 80))
}

func printCart(cart *core.Cart, held bool) {
	fmt.Println()
	fmt.Println(strings.Repeat("-", 72))
	header := "CART"
	if cart.Customer != nil {
		header = fmt.Sprintf("CART — %s", cart.Customer.Name)
	}
	fmt.Printf("  %s\n", header)
	fmt.Println(strings.Repeat("-", 72))
	if len(cart.Items) == 0 {
		fmt.Println("  (empty)")
	} else {
		fmt.Printf("  %-24s %8s %10s %8s %8s %10s\n", "ITEM", "QTY", "PRICE", "DISC", "TAX", "TOTAL")
		fmt.Println(strings.Repeat("-", 72))
		for _, item := range cart.Items {
			fmt.Printf("  %-24s %8s %10s %8s %8s %10s\n",
				item.Product.Name,
				item.Quantity.String(),
				item.UnitPrice.StringFixed(2),
				item.DiscountAmount.StringFixed(2),
				item.TaxAmount.StringFixed(2),
				item.Total.StringFixed(2),
			)
		}
	}
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("  %-52s %10s\n", "Subtotal", cart.Subtotal.StringFixed(2))
	if cart.DiscountAmount.IsPositive() {
		label := "Discount"
		if cart.DiscountType == core.DiscountPercentage {
			label = fmt.Sprintf("Discount (%s%%)", cart.DiscountAmount.String())
		}
		fmt.Printf("  %-52s %10s\n", label, cart.DiscountAmount.StringFixed(2))
	}
	if cart.CouponCode != "" {
		fmt.Printf("  %-52s %10s\n", "Coupon", cart.CouponCode)
	}
	fmt.Printf("  %-52s %10s\n", "Tax", cart.TaxAmount.StringFixed(2))
	fmt.Printf("  %-52s %10s\n", "TOTAL", cart.Total.StringFixed(2))
	if held {
		fmt.Println("  (a held cart is waiting; /recall to restore it)")
	}
	fmt.Println(strings.Repeat("-", 72))
}

func printReceipt(sale *core.CompletedSale) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 48))
	fmt.Printf("  RECEIPT  %s\n", sale.InvoiceNumber)
	fmt.Printf("  %s\n", sale.CompletedAt.Format("2006-01-02 15:04:05"))
	fmt.Println(strings.Repeat("=", 48))
	for _, item := range sale.Cart.Items {
		fmt.Printf("  %-28s\n", item.Product.Name)
		fmt.Printf("    %s x %s %28s\n",
			item.Quantity.String(), item.UnitPrice.StringFixed(2), item.Total.StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", 48))
	fmt.Printf("  %-30s %13s\n", "Subtotal", sale.Cart.Subtotal.StringFixed(2))
	fmt.Printf("  %-30s %13s\n", "Tax", sale.Cart.TaxAmount.StringFixed(2))
	fmt.Printf("  %-30s %13s\n", "TOTAL", sale.Cart.Total.StringFixed(2))
	fmt.Println(strings.Repeat("=", 48))
	fmt.Println("  Thank you!")
	fmt.Println(strings.Repeat("=", 48))
}

func printAlerts(result *app.AlertListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("  %-78s\n", "STOCK ALERTS")
	fmt.Println(strings.Repeat("=", 80))
	if len(result.Alerts) == 0 {
		fmt.Println("  No active alerts.")
		fmt.Println(strings.Repeat("=", 80))
		return
	}
	fmt.Printf("  %-38s %-22s %-14s %8s\n", "ID", "PRODUCT", "TYPE", "STOCK")
	fmt.Println(strings.Repeat("-", 80))
	for _, a := range result.Alerts {
		fmt.Printf("  %-38s %-22s %-14s %8s\n",
			a.ID, a.ProductName, a.Type, a.CurrentStock.String())
	}
	fmt.Println(strings.Repeat("=", 80))
}

func printSummary(result *app.SummaryResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 48))
	fmt.Printf("  TODAY — %s\n", result.Date)
	fmt.Println(strings.Repeat("=", 48))
	fmt.Printf("  %-28s %15s\n", "Total sales", result.TotalSales.StringFixed(2))
	fmt.Printf("  %-28s %15d\n", "Invoices", result.InvoiceCount)
	fmt.Printf("  %-28s %15s\n", "Next invoice", result.NextInvoiceNumber)
	fmt.Printf("  %-28s %15d\n", "Low stock products", result.LowStockCount)
	fmt.Printf("  %-28s %15d\n", "Out of stock products", result.OutOfStockCount)
	fmt.Println(strings.Repeat("=", 48))
}

func printHelp() {
	fmt.Println()
	fmt.Println("POINT OF SALE — COMMANDS")
	fmt.Println(strings.Repeat("=", 62))
	fmt.Println()
	fmt.Println("  CATALOG")
	fmt.Println("  /products [query]                List or search products")
	fmt.Println("  /stock <product-id> <qty>        Receive incoming stock")
	fmt.Println("  /alerts                          Active stock alerts")
	fmt.Println("  /dismiss <alert-id>              Dismiss an alert")
	fmt.Println()
	fmt.Println("  CART")
	fmt.Println("  /cart                            Show the cart")
	fmt.Println("  /add <product-id> [qty]          Add a product")
	fmt.Println("  /qty <product-id> <qty>          Change a line quantity (0 removes)")
	fmt.Println("  /remove <product-id>             Remove a line")
	fmt.Println("  /discount <amount> [percentage]  Bill-level discount")
	fmt.Println("  /discount <product-id> <amount>  Line-level discount")
	fmt.Println("  /coupon <code>                   Record a coupon code")
	fmt.Println("  /customer [name]                 Attach (or detach) a customer")
	fmt.Println("  /clear                           Abandon the cart")
	fmt.Println()
	fmt.Println("  CHECKOUT")
	fmt.Println("  /hold                            Park the cart")
	fmt.Println("  /recall                          Restore the parked cart")
	fmt.Println("  /pay                             Complete the sale and print a receipt")
	fmt.Println()
	fmt.Println("  LABELS")
	fmt.Println("  /label <name> <wt> <unit> <price>  Print a weighed-item barcode")
	fmt.Println()
	fmt.Println("  SESSION")
	fmt.Println("  /today                           Today's sales summary")
	fmt.Println("  /help                            Show this help")
	fmt.Println("  /exit                            Exit")
	fmt.Println()
	fmt.Println("  SCAN MODE  (no / prefix)")
	fmt.Println("  Type or scan any barcode: a catalog barcode, LOOSE-<id>-<weight>,")
	fmt.Println("  or MANUAL-<label-id>.")
	fmt.Println(strings.Repeat("=", 62))
}
