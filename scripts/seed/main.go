// Package main implements a standalone seed script that populates the
// storefront catalog with realistic demo products via direct SQL. The
// catalog is read-only from the service's point of view, so seeding is
// the supported way to get products into a development stack.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type seedProduct struct {
	ID             string
	Name           string
	Slug           string
	Description    string
	Price          int64
	CancelledPrice int64
	Images         []string
	Category       string
	IsLatest       bool
	Materials      string
	Packaging      string
	Shipping       string
	ProductInfo    string
}

var products = []seedProduct{
	{
		ID: "1", Name: "Luna Ring", Slug: "luna-ring",
		Description: "A crescent-cut ring in recycled sterling silver.",
		Price:       149900, CancelledPrice: 189900,
		Images:   []string{"https://cdn.nuventa.example/products/luna-ring-1.jpg", "https://cdn.nuventa.example/products/luna-ring-2.jpg"},
		Category: "rings", IsLatest: true,
		Materials: "925 recycled sterling silver", Packaging: "FSC-certified gift box",
		Shipping: "Ships in 3-5 business days", ProductInfo: "Handmade to order; sizes 5-9.",
	},
	{
		ID: "2", Name: "Sol Pendant", Slug: "sol-pendant",
		Description: "A hammered-disc pendant on an 18 inch chain.",
		Price:       99900,
		Images:      []string{"https://cdn.nuventa.example/products/sol-pendant-1.jpg"},
		Category:    "necklaces", IsLatest: true,
		Materials: "Gold vermeil over sterling silver", Packaging: "Recycled kraft pouch",
		Shipping: "Ships in 3-5 business days", ProductInfo: "Chain length adjustable 16-18 inches.",
	},
	{
		ID: "3", Name: "Tide Hoops", Slug: "tide-hoops",
		Description: "Wave-textured mid-size hoops, sold as a pair.",
		Price:       79900, CancelledPrice: 99900,
		Images:   []string{"https://cdn.nuventa.example/products/tide-hoops-1.jpg"},
		Category: "earrings",
		Materials: "925 sterling silver", Packaging: "FSC-certified gift box",
		Shipping: "Ships in 3-5 business days", ProductInfo: "25mm diameter, butterfly backs.",
	},
	{
		ID: "4", Name: "Ember Cuff", Slug: "ember-cuff",
		Description: "An open cuff with a brushed copper inlay.",
		Price:       189900,
		Images:      []string{"https://cdn.nuventa.example/products/ember-cuff-1.jpg", "https://cdn.nuventa.example/products/ember-cuff-2.jpg"},
		Category:    "bracelets",
		Materials: "Sterling silver with copper inlay", Packaging: "FSC-certified gift box",
		Shipping: "Ships in 5-7 business days", ProductInfo: "One size, gently adjustable.",
	},
	{
		ID: "5", Name: "Mist Studs", Slug: "mist-studs",
		Description: "Minimal dome studs for everyday wear.",
		Price:       49900,
		Images:      []string{"https://cdn.nuventa.example/products/mist-studs-1.jpg"},
		Category:    "earrings", IsLatest: true,
		Materials: "925 sterling silver", Packaging: "Recycled kraft pouch",
		Shipping: "Ships in 3-5 business days", ProductInfo: "6mm domes, butterfly backs.",
	},
}

func main() {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "nuventa"),
		getEnv("POSTGRES_PASSWORD", "nuventa_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "nuventa"),
		getEnv("POSTGRES_SSL_MODE", "disable"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	seeded := 0
	for _, p := range products {
		images, err := json.Marshal(p.Images)
		if err != nil {
			log.Fatalf("marshal images for %s: %v", p.Slug, err)
		}

		tag, err := pool.Exec(ctx, `
			INSERT INTO products (
				id, name, slug, description, price, cancelled_price, images,
				category, is_latest, materials, packaging, shipping, product_info
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.Slug, p.Description, p.Price, p.CancelledPrice, images,
			p.Category, p.IsLatest, p.Materials, p.Packaging, p.Shipping, p.ProductInfo,
		)
		if err != nil {
			log.Fatalf("insert product %s: %v", p.Slug, err)
		}
		if tag.RowsAffected() > 0 {
			seeded++
		}
	}

	log.Printf("seed complete: %d new products (%d total in catalog)", seeded, len(products))
}
