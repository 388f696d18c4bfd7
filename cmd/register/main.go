package main

import (
	"bufio"
	"context"
	"log"
	"os"

	replAdapter "commerce-pos/internal/adapters/repl"
	"commerce-pos/internal/app"
	"commerce-pos/internal/core"
	"commerce-pos/internal/db"
	"commerce-pos/internal/store/memory"
	"commerce-pos/internal/store/postgres"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	var (
		products core.ProductSource
		labels   core.LabelStore
		salesDB  core.SalesStore
	)
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := db.NewPool(ctx)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer pool.Close()
		store := postgres.NewStore(pool)
		products, labels, salesDB = store, store, store
	} else {
		log.Println("DATABASE_URL is not set, using in-memory store with the demo catalog")
		store := memory.NewStore(memory.SeedCatalog())
		products, labels, salesDB = store, store, store
	}

	inventory, err := core.NewInventoryService(ctx, products)
	if err != nil {
		log.Fatalf("inventory: %v", err)
	}
	sales, err := core.NewSalesService(ctx, salesDB)
	if err != nil {
		log.Fatalf("sales: %v", err)
	}
	cart := core.NewCartService(inventory, sales)
	labelService := core.NewLabelService(labels)
	resolver := core.NewScanResolver(labelService, inventory, cart)

	svc := app.NewRegisterService(inventory, cart, sales, labelService, resolver)

	replAdapter.Run(ctx, svc, bufio.NewReader(os.Stdin))
}
