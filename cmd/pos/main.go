package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"tillfront/internal/api"
	"tillfront/internal/cart"
	"tillfront/internal/catalog"
	"tillfront/internal/checkout"
	"tillfront/internal/config"
	"tillfront/internal/events"
	"tillfront/internal/metrics"
	"tillfront/internal/model"
	"tillfront/internal/session"
)

// Config holds CLI flags for the POS terminal.
type Config struct {
	APIBase      string
	DataDir      string
	SessionStore string // file|pebble
	CatalogStore string // memory|redis
	RedisAddr    string
	Terminal     string
	HTTPAddr     string

	// Sale-event sink
	EventsSink     string // file|kafka|both|off
	KafkaBootstrap string
	TopicSales     string

	// Operations, executed in order: refresh, add, remove, show, checkout.
	Refresh  bool
	Add      string
	Remove   string
	Show     bool
	Clear    bool
	Checkout bool

	// Checkout fields
	Customer string
	Phone    string
	Email    string
	Cashier  string
	Payment  string
	Discount float64
}

func main() {
	config.LoadEnv()
	cfg := readFlags()
	if err := run(cfg); err != nil {
		log.Fatalf("pos failed: %v", err)
	}
}

func readFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.APIBase, "api", config.Getenv("POS_API_BASE", "http://localhost:8080"), "REST API base URL")
	flag.StringVar(&cfg.DataDir, "data", config.Getenv("POS_DATA_DIR", "./data/pos"), "local data directory")
	flag.StringVar(&cfg.SessionStore, "session-store", "file", "session backend: file|pebble")
	flag.StringVar(&cfg.CatalogStore, "catalog-store", "memory", "catalog backend: memory|redis")
	flag.StringVar(&cfg.RedisAddr, "redis", config.Getenv("POS_REDIS_ADDR", "localhost:6379"), "redis address for the shared catalog")
	flag.StringVar(&cfg.Terminal, "terminal", config.Getenv("POS_TERMINAL", "till-1"), "terminal id")
	flag.StringVar(&cfg.HTTPAddr, "http", "", "listen address for /metrics (empty: off)")
	flag.StringVar(&cfg.EventsSink, "events-sink", "file", "sale event sink: file|kafka|both|off")
	flag.StringVar(&cfg.KafkaBootstrap, "kafka-bootstrap", config.Getenv("POS_KAFKA_BOOTSTRAP", "localhost:9092"), "kafka bootstrap servers")
	flag.StringVar(&cfg.TopicSales, "topic-sales", "pos.sales", "kafka topic for sale events")
	flag.BoolVar(&cfg.Refresh, "refresh", false, "refetch the catalog before other operations")
	flag.StringVar(&cfg.Add, "add", "", "product id to add to the cart")
	flag.StringVar(&cfg.Remove, "remove", "", "product id to remove from the cart")
	flag.BoolVar(&cfg.Show, "show", false, "print the cart")
	flag.BoolVar(&cfg.Clear, "clear", false, "empty the cart")
	flag.BoolVar(&cfg.Checkout, "checkout", false, "check out the cart")
	flag.StringVar(&cfg.Customer, "customer", "", "customer name")
	flag.StringVar(&cfg.Phone, "phone", "", "customer phone")
	flag.StringVar(&cfg.Email, "email", "", "customer email")
	flag.StringVar(&cfg.Cashier, "cashier", "", "billed-by name")
	flag.StringVar(&cfg.Payment, "payment", "cash", "payment method")
	flag.Float64Var(&cfg.Discount, "discount", 0, "discount percentage")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	mreg := metrics.NewRegistry()
	if cfg.HTTPAddr != "" {
		go func() {
			http.Handle("/metrics", mreg.Handler())
			_ = http.ListenAndServe(cfg.HTTPAddr, nil)
		}()
	}

	var cache catalog.Cache
	switch cfg.CatalogStore {
	case "redis":
		rc, err := catalog.NewRedisCache(cfg.RedisAddr, 0)
		if err != nil {
			return fmt.Errorf("redis catalog: %w", err)
		}
		defer rc.Close()
		cache = rc
	default:
		cache = catalog.NewMemoryCache()
	}

	var persist session.Store
	switch cfg.SessionStore {
	case "pebble":
		ps, err := session.NewPebbleStore(filepath.Join(cfg.DataDir, "session"))
		if err != nil {
			return fmt.Errorf("pebble session: %w", err)
		}
		defer ps.Close()
		persist = ps
	default:
		persist = session.NewFileStore(cfg.DataDir)
	}

	store := cart.New(cache, persist)
	if err := store.Restore(); err != nil {
		// A torn session is not fatal; start from an empty cart.
		log.Printf("restore session: %v", err)
	}

	client := api.NewClient(cfg.APIBase)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if cfg.Refresh {
		applied, err := catalog.NewRefresher(client, cache).Refresh(ctx)
		if err != nil {
			log.Printf("catalog refresh failed, keeping last snapshot: %v", err)
		} else if applied {
			mreg.CatalogRefresh.Inc()
			log.Printf("catalog: %d products", cache.Len())
		} else {
			mreg.CatalogStale.Inc()
		}
	}

	if cfg.Add != "" {
		p, ok := cache.Get(cfg.Add)
		if !ok {
			// Not in the snapshot: ask the server for this one product
			// and fold it into the cached snapshot.
			p, ok = lookupProduct(ctx, client, cache, cfg.Add)
		}
		if !ok {
			log.Printf("product %s not found (try -refresh)", cfg.Add)
		} else if inCart := quantityOf(store, cfg.Add); inCart >= p.StockQuantity {
			// Stock is checked here, at the caller: the store itself
			// never enforces limits.
			log.Printf("only %d of %s in stock", p.StockQuantity, p.Name)
		} else {
			store.AddProduct(p)
			mreg.CartMutations.Inc()
		}
	}

	if cfg.Remove != "" {
		store.Remove(cfg.Remove)
		mreg.CartMutations.Inc()
	}

	if cfg.Clear {
		store.Clear()
		mreg.CartMutations.Inc()
	}

	if cfg.Show {
		printCart(store)
	}

	if cfg.Checkout {
		return doCheckout(ctx, cfg, store, client, mreg)
	}
	return nil
}

// lookupProduct fetches one product by id and appends it to the cached
// snapshot so cart reads can resolve it.
func lookupProduct(ctx context.Context, client *api.Client, cache catalog.Cache, id string) (model.Product, bool) {
	p, err := client.GetProduct(ctx, id)
	if err != nil {
		log.Printf("product lookup %s: %v", id, err)
		return model.Product{}, false
	}
	all, err := cache.All()
	if err != nil {
		log.Printf("catalog snapshot: %v", err)
	}
	if err := cache.ReplaceAll(append(all, p)); err != nil {
		log.Printf("catalog update: %v", err)
	}
	return p, true
}

func quantityOf(store *cart.Store, id string) int {
	for _, it := range store.Items() {
		if it.ID == id {
			return it.Quantity
		}
	}
	return 0
}

func printCart(store *cart.Store) {
	items := store.Items()
	for _, it := range items {
		fmt.Printf("%-30s x%-3d %8.2f %10.2f\n", it.Name, it.Quantity, it.Price, it.LineTotal())
	}
	fmt.Printf("items: %d  value: %.2f\n", store.TotalItems(), store.TotalValue())
}

func saleEvents(cfg Config) (events.Writer, error) {
	switch cfg.EventsSink {
	case "off":
		return nil, nil
	case "kafka":
		return events.NewKafkaWriter(cfg.KafkaBootstrap, cfg.TopicSales), nil
	case "both":
		fw, err := events.NewFileWriter(cfg.DataDir, "sales.jsonl")
		if err != nil {
			return nil, err
		}
		return events.NewMultiWriter(fw, events.NewKafkaWriter(cfg.KafkaBootstrap, cfg.TopicSales)), nil
	default:
		return events.NewFileWriter(cfg.DataDir, "sales.jsonl")
	}
}

func doCheckout(ctx context.Context, cfg Config, store *cart.Store, client *api.Client, mreg *metrics.Registry) error {
	ev, err := saleEvents(cfg)
	if err != nil {
		return fmt.Errorf("sale events: %w", err)
	}

	// Snapshot before checkout clears the cart; used for the stock patch.
	items := store.Items()

	svc := checkout.New(store, client, ev, cfg.Terminal)
	bill, err := svc.Checkout(ctx, checkout.Request{
		CustomerName:       cfg.Customer,
		CustomerPhone:      cfg.Phone,
		CustomerEmail:      cfg.Email,
		BilledBy:           cfg.Cashier,
		PaymentMethod:      cfg.Payment,
		DiscountPercentage: cfg.Discount,
	})
	if err != nil {
		mreg.CheckoutsFailed.Inc()
		if err == checkout.ErrEmptyCart {
			fmt.Fprintln(os.Stderr, "cart empty")
			return nil
		}
		log.Printf("checkout: %v", err)
		return nil
	}
	mreg.CheckoutsTotal.Inc()
	fmt.Printf("bill %s created\n", bill.ID)

	// Best-effort stock adjustment; the server holds the source of truth.
	for _, it := range items {
		left := it.StockQuantity - it.Quantity
		if left < 0 {
			left = 0
		}
		if err := client.PatchStock(ctx, it.ID, left); err != nil {
			log.Printf("patch stock %s: %v", it.ID, err)
		}
	}
	return nil
}
