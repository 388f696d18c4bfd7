package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "commerce-pos/internal/adapters/web"
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

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
