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
	"tillfront/internal/invoice"
	"tillfront/internal/invoice/render"
	"tillfront/internal/metrics"
	"tillfront/internal/model"
)

// Config holds CLI flags for invoice generation.
type Config struct {
	APIBase string
	BillID  string
	List    bool
	OutDir  string
	PDF     bool
	Print   bool

	PageWidth  float64
	PageHeight float64
	Scale      int
}

func main() {
	config.LoadEnv()
	cfg := readFlags()
	if err := run(cfg); err != nil {
		log.Fatalf("invoice failed: %v", err)
	}
}

func readFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.APIBase, "api", config.Getenv("POS_API_BASE", "http://localhost:8080"), "REST API base URL")
	flag.StringVar(&cfg.BillID, "bill", "", "bill id to render")
	flag.BoolVar(&cfg.List, "list", false, "list bills instead of rendering one")
	flag.StringVar(&cfg.OutDir, "out", ".", "output directory for the PDF")
	flag.BoolVar(&cfg.PDF, "pdf", true, "write the PDF")
	flag.BoolVar(&cfg.Print, "print", false, "write the print-formatted view to stdout")
	flag.Float64Var(&cfg.PageWidth, "page-width", render.DefaultGeometry.PageWidth, "page width (mm)")
	flag.Float64Var(&cfg.PageHeight, "page-height", render.DefaultGeometry.PageHeight, "page height (mm)")
	flag.IntVar(&cfg.Scale, "scale", render.DefaultGeometry.Scale, "raster scale factor")
	flag.Parse()
	return cfg
}

func run(cfg Config) error {
	mreg := metrics.NewRegistry()
	client := api.NewClient(cfg.APIBase)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if cfg.List {
		listBills(ctx, client)
		return nil
	}
	if cfg.BillID == "" {
		return fmt.Errorf("-bill is required")
	}

	bill, err := client.GetBill(ctx, cfg.BillID)
	if err != nil {
		return fmt.Errorf("fetch bill: %w", err)
	}

	// Settings fall back to the built-in identity; this never blocks.
	shop := render.LoadShopSettings(ctx, client)
	geo := render.PageGeometry{PageWidth: cfg.PageWidth, PageHeight: cfg.PageHeight, Scale: cfg.Scale}

	if cfg.PDF {
		path, pages, err := writePDF(geo, bill, shop, cfg.OutDir, mreg)
		if err != nil {
			log.Printf("invoice pdf: %v", err)
		} else {
			fmt.Printf("wrote %s (%d page(s))\n", path, pages)
		}
	}

	if cfg.Print {
		fmt.Print(render.FormatText(bill, shop))
	}
	return nil
}

// writePDF renders the bill to <outDir>/invoice-<id>.pdf and records the
// render duration and page count. A failed render leaves no partial file.
func writePDF(geo render.PageGeometry, bill model.Bill, shop model.ShopSettings, outDir string, mreg *metrics.Registry) (string, int, error) {
	path := filepath.Join(outDir, render.Filename(bill.ID))
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	start := time.Now()
	pages, rerr := render.NewPDFRenderer(geo).Render(bill, shop, f)
	cerr := f.Close()
	if rerr != nil {
		_ = os.Remove(path)
		return "", 0, rerr
	}
	if cerr != nil {
		return "", 0, fmt.Errorf("close %s: %w", path, cerr)
	}
	mreg.RenderSec.Observe(time.Since(start).Seconds())
	mreg.InvoicePages.Add(float64(pages))
	return path, pages, nil
}

// listBills prints a one-line summary per bill. A fetch failure degrades
// to an empty listing, never an undefined state.
func listBills(ctx context.Context, client *api.Client) {
	bills, err := client.ListBills(ctx)
	if err != nil {
		log.Printf("list bills: %v", err)
		bills = nil
	}
	for _, b := range bills {
		t := invoice.Compute(b)
		fmt.Printf("%-36s %-24s %3d item(s) %10.2f\n",
			b.ID, b.CustomerName, len(b.BillItems), invoice.Round2(t.DisplayTotal))
	}
	fmt.Printf("%d bill(s)\n", len(bills))
}
