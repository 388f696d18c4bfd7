package repl

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"commerce-pos/internal/app"
	"commerce-pos/internal/core"

	"github.com/shopspring/decimal"
)

// Run starts the interactive register loop.
// It reads commands from reader, dispatches slash commands deterministically,
// and treats any other input as a barcode scan. A hardware scanner plugged in
// as a keyboard wedge therefore works without any command prefix.
func Run(ctx context.Context, svc app.RegisterService, reader *bufio.Reader) {
	fmt.Println("Point of Sale Register")
	fmt.Println("Scan a barcode, or use /help for commands.")
	fmt.Println(strings.Repeat("-", 70))

	errExit := fmt.Errorf("exit")

	// Terminal input arrives a full line at a time, so non-slash lines are
	// replayed through the classifier as a synthetic burst. Short lines are
	// filtered out the same way stray keystrokes are.
	var scanned string
	classifier := core.NewScanClassifier(func(code string) { scanned = code }, nil)

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "products", "p":
			query := strings.Join(args, " ")
			var (
				result *app.ProductListResult
				err    error
			)
			if query != "" {
				result, err = svc.SearchProducts(ctx, query)
			} else {
				result, err = svc.ListProducts(ctx)
			}
			if err != nil {
				return err
			}
			printProducts(result)

		case "cart", "c":
			result, err := svc.GetCart(ctx)
			if err != nil {
				return err
			}
			printCart(&result.Cart, result.HeldCart)

		case "add":
			if len(args) < 1 {
				fmt.Println("Usage: /add <product-id> [qty]")
				return nil
			}
			qty := decimal.NewFromInt(1)
			if len(args) >= 2 {
				q, err := decimal.NewFromString(args[1])
				if err != nil || !q.IsPositive() {
					fmt.Printf("Invalid quantity: %s\n", args[1])
					return nil
				}
				qty = q
			}
			result, err := svc.AddItem(ctx, app.AddItemRequest{ProductID: args[0], Quantity: qty})
			if err != nil {
				return err
			}
			printOutcome(result.Result)
			printCart(&result.Cart, result.HeldCart)

		case "qty":
			if len(args) < 2 {
				fmt.Println("Usage: /qty <product-id> <quantity>")
				fmt.Println("  A quantity of 0 removes the line.")
				return nil
			}
			qty, err := decimal.NewFromString(args[1])
			if err != nil {
				fmt.Printf("Invalid quantity: %s\n", args[1])
				return nil
			}
			result, err := svc.UpdateQuantity(ctx, args[0], qty)
			if err != nil {
				return err
			}
			printOutcome(result.Result)
			printCart(&result.Cart, result.HeldCart)

		case "remove", "rm":
			if len(args) < 1 {
				fmt.Println("Usage: /remove <product-id>")
				return nil
			}
			result, err := svc.RemoveItem(ctx, args[0])
			if err != nil {
				return err
			}
			printCart(&result.Cart, result.HeldCart)

		case "discount":
			// Usage: /discount <amount> [percentage|fixed]   bill-level
			//        /discount <product-id> <amount>         line-level
			if len(args) < 1 {
				fmt.Println("Usage: /discount <amount> [percentage|fixed]")
				fmt.Println("       /discount <product-id> <amount>")
				return nil
			}
			if amount, err := decimal.NewFromString(args[0]); err == nil {
				discountType := core.DiscountFixed
				if len(args) >= 2 && strings.EqualFold(args[1], "percentage") {
					discountType = core.DiscountPercentage
				}
				result, err := svc.SetDiscount(ctx, amount, discountType)
				if err != nil {
					return err
				}
				printCart(&result.Cart, result.HeldCart)
				return nil
			}
			if len(args) < 2 {
				fmt.Printf("Invalid amount: %s\n", args[0])
				return nil
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil || amount.IsNegative() {
				fmt.Printf("Invalid amount: %s\n", args[1])
				return nil
			}
			result, err := svc.UpdateItemDiscount(ctx, args[0], amount)
			if err != nil {
				return err
			}
			printCart(&result.Cart, result.HeldCart)

		case "coupon":
			if len(args) < 1 {
				fmt.Println("Usage: /coupon <code>")
				return nil
			}
			result, err := svc.SetCouponCode(ctx, args[0])
			if err != nil {
				return err
			}
			printCart(&result.Cart, result.HeldCart)

		case "customer":
			if len(args) < 1 {
				result, err := svc.SetCustomer(ctx, nil)
				if err != nil {
					return err
				}
				fmt.Println("Customer detached.")
				printCart(&result.Cart, result.HeldCart)
				return nil
			}
			result, err := svc.SetCustomer(ctx, &core.Customer{Name: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			printCart(&result.Cart, result.HeldCart)

		case "clear":
			result, err := svc.ClearCart(ctx)
			if err != nil {
				return err
			}
			fmt.Println("Cart cleared.")
			printCart(&result.Cart, result.HeldCart)

		case "hold":
			result, err := svc.HoldCart(ctx)
			if err != nil {
				return err
			}
			printOutcome(result.Result)

		case "recall":
			result, err := svc.RecallHeldCart(ctx)
			if err != nil {
				return err
			}
			printOutcome(result.Result)
			if result.Result.Success {
				printCart(&result.Cart, result.HeldCart)
			}

		case "pay":
			result, err := svc.CompleteSale(ctx)
			if err != nil {
				return err
			}
			if !result.Result.Success {
				printOutcome(result.Result)
				return nil
			}
			printReceipt(result.Sale)

		case "label":
			// Usage: /label <name> <weight> <unit> <price-per-unit> [tax-rate]
			if len(args) < 4 {
				fmt.Println("Usage: /label <name> <weight> <unit> <price-per-unit> [tax-rate]")
				fmt.Println("  Prints a MANUAL-* barcode for a weighed item.")
				return nil
			}
			weight, err := decimal.NewFromString(args[1])
			if err != nil || !weight.IsPositive() {
				fmt.Printf("Invalid weight: %s\n", args[1])
				return nil
			}
			price, err := decimal.NewFromString(args[3])
			if err != nil || price.IsNegative() {
				fmt.Printf("Invalid price: %s\n", args[3])
				return nil
			}
			taxRate := decimal.Zero
			if len(args) >= 5 {
				taxRate, err = decimal.NewFromString(args[4])
				if err != nil {
					fmt.Printf("Invalid tax rate: %s\n", args[4])
					return nil
				}
			}
			result, err := svc.CreateLabel(ctx, app.CreateLabelRequest{
				ProductName:  args[0],
				Weight:       weight,
				Unit:         args[2],
				PricePerUnit: price,
				TaxRate:      taxRate,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Label created: %s\n", result.Barcode)
			fmt.Printf("  %s  %s %s @ %s = %s\n",
				result.Label.ProductName,
				result.Label.Weight.StringFixed(3), result.Label.Unit,
				result.Label.PricePerUnit.StringFixed(2),
				result.Label.TotalPrice.StringFixed(2))

		case "stock":
			if len(args) < 2 {
				fmt.Println("Usage: /stock <product-id> <quantity>")
				fmt.Println("  Receives <quantity> units of incoming stock.")
				return nil
			}
			qty, err := decimal.NewFromString(args[1])
			if err != nil || !qty.IsPositive() {
				fmt.Printf("Invalid quantity: %s\n", args[1])
				return nil
			}
			result, err := svc.RestockProduct(ctx, args[0], qty)
			if err != nil {
				return err
			}
			fmt.Printf("Restocked %s. New stock: %s %s\n",
				result.Product.Name, result.Product.StockQuantity.String(), result.Product.Unit)

		case "alerts":
			result, err := svc.StockAlerts(ctx)
			if err != nil {
				return err
			}
			printAlerts(result)

		case "dismiss":
			if len(args) < 1 {
				fmt.Println("Usage: /dismiss <alert-id>")
				return nil
			}
			if err := svc.DismissAlert(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Alert dismissed.")

		case "today", "t":
			result, err := svc.TodaySummary(ctx)
			if err != nil {
				return err
			}
			printSummary(result)

		case "help", "h":
			printHelp()

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Printf("Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Print("\n> ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		// Slash prefix → deterministic command dispatcher.
		if strings.HasPrefix(input, "/") {
			if err := dispatchSlash(input); err != nil {
				if err == errExit {
					fmt.Println("Goodbye!")
					break
				}
				fmt.Printf("Error: %v\n", err)
			}
			continue
		}

		// No slash prefix → barcode scan.
		scanned = ""
		at := time.Now()
		for _, r := range input {
			classifier.HandleKey(core.KeyEvent{Key: string(r), Time: at})
			at = at.Add(time.Millisecond)
		}
		classifier.HandleKey(core.KeyEvent{Key: "Enter", Time: at})
		if scanned == "" {
			fmt.Println("Input too short to be a barcode. Use /help for commands.")
			continue
		}

		result, err := svc.Scan(ctx, scanned)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printOutcome(result.Result)
		if result.Result.Success {
			printCart(&result.Cart, result.HeldCart)
		}
	}
}
