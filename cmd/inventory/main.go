package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tillfront/internal/api"
	"tillfront/internal/config"
	"tillfront/internal/inventory"
	"tillfront/internal/model"
)

// Config holds CLI flags for the admin CRUD tool.
type Config struct {
	APIBase string
	Op      string // create|update|delete|settings
	ID      string

	Name        string
	SKU         string
	Brand       string
	Category    string
	Description string
	Price       float64
	Stock       int
	ImagePath   string

	// Shop identity fields (op=settings)
	ShopName    string
	ShopAddress string
	ShopPhone   string
	ShopEmail   string
	ShopTaxID   string
}

func main() {
	config.LoadEnv()
	cfg := readFlags()
	if err := run(cfg); err != nil {
		log.Fatalf("inventory failed: %v", err)
	}
}

func readFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.APIBase, "api", config.Getenv("POS_API_BASE", "http://localhost:8080"), "REST API base URL")
	flag.StringVar(&cfg.Op, "op", "", "operation: create|update|delete|settings")
	flag.StringVar(&cfg.ID, "id", "", "product id (update/delete)")
	flag.StringVar(&cfg.Name, "name", "", "product name")
	flag.StringVar(&cfg.SKU, "sku", "", "product SKU")
	flag.StringVar(&cfg.Brand, "brand", "", "brand")
	flag.StringVar(&cfg.Category, "category", "", "category")
	flag.StringVar(&cfg.Description, "description", "", "description")
	flag.Float64Var(&cfg.Price, "price", 0, "price")
	flag.IntVar(&cfg.Stock, "stock", 0, "stock quantity")
	flag.StringVar(&cfg.ImagePath, "image", "", "path to product image")
	flag.StringVar(&cfg.ShopName, "shop-name", "", "shop name (op=settings)")
	flag.StringVar(&cfg.ShopAddress, "shop-address", "", "shop address (op=settings)")
	flag.StringVar(&cfg.ShopPhone, "shop-phone", "", "shop phone (op=settings)")
	flag.StringVar(&cfg.ShopEmail, "shop-email", "", "shop email (op=settings)")
	flag.StringVar(&cfg.ShopTaxID, "shop-taxid", "", "shop tax id (op=settings)")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	client := api.NewClient(cfg.APIBase)
	admin := inventory.NewAdmin(client)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if cfg.Op == "settings" {
		return updateSettings(ctx, client, cfg)
	}

	form := inventory.Form{
		Name:          cfg.Name,
		SKU:           cfg.SKU,
		Brand:         cfg.Brand,
		Category:      cfg.Category,
		Description:   cfg.Description,
		Price:         cfg.Price,
		StockQuantity: cfg.Stock,
	}

	// Field-level validation happens before anything goes on the wire.
	if cfg.Op == "create" || cfg.Op == "update" {
		if errs := form.Validate(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "%s\n", e.Error())
			}
			return fmt.Errorf("invalid product form")
		}
	}

	var img *inventory.ImageFile
	if cfg.ImagePath != "" {
		f, err := os.Open(cfg.ImagePath)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		img = &inventory.ImageFile{Name: filepath.Base(cfg.ImagePath), Reader: f}
	}

	switch cfg.Op {
	case "create":
		p, err := admin.Create(ctx, form, img)
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s)\n", p.Name, p.ID)
	case "update":
		p, err := admin.Update(ctx, cfg.ID, form, img)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s (%s)\n", p.Name, p.ID)
	case "delete":
		if err := admin.Delete(ctx, cfg.ID); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", cfg.ID)
	default:
		return fmt.Errorf("unknown -op %q (create|update|delete|settings)", cfg.Op)
	}
	return nil
}

func updateSettings(ctx context.Context, client *api.Client, cfg Config) error {
	if cfg.ShopName == "" {
		return fmt.Errorf("-shop-name is required for op=settings")
	}
	s := model.ShopSettings{
		Name:    cfg.ShopName,
		Address: cfg.ShopAddress,
		Phone:   cfg.ShopPhone,
		Email:   cfg.ShopEmail,
		TaxID:   cfg.ShopTaxID,
	}
	if err := client.PutShopSettings(ctx, s); err != nil {
		return fmt.Errorf("update shop settings: %w", err)
	}
	fmt.Printf("shop settings updated (%s)\n", s.Name)
	return nil
}
