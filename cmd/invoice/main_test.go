package main

import (
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tillfront/internal/invoice/render"
	"tillfront/internal/metrics"
	"tillfront/internal/model"
)

func TestWritePDF_RecordsRenderMetrics(t *testing.T) {
	bill := model.Bill{
		ID:            "bill-metrics-1",
		CustomerName:  "jane smith",
		PaymentMethod: "cash",
		CreatedAt:     "2026-01-15",
		BillItems: []model.BillItem{
			{Product: model.BillProduct{Name: "green tea", SKU: "gt-01"}, Quantity: 2, UnitPrice: 50.0, TotalPrice: 100.0},
		},
	}
	// Enough lines to spill onto a second page.
	for i := 0; i < 80; i++ {
		bill.BillItems = append(bill.BillItems, bill.BillItems[0])
	}

	mreg := metrics.NewRegistry()
	dir := t.TempDir()

	path, pages, err := writePDF(render.DefaultGeometry, bill, render.DefaultShopSettings, dir, mreg)
	if err != nil {
		t.Fatalf("writePDF: %v", err)
	}
	if pages < 2 {
		t.Fatalf("long bill should paginate, got %d page(s)", pages)
	}
	if filepath.Base(path) != "invoice-bill-met.pdf" {
		t.Fatalf("unexpected filename: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("pdf missing: %v", err)
	}

	body := scrape(t, mreg)
	if !strings.Contains(body, "pos_invoice_render_seconds_count 1") {
		t.Fatalf("render duration not observed:\n%s", body)
	}
	if !strings.Contains(body, fmt.Sprintf("pos_invoice_pages_total %d", pages)) {
		t.Fatalf("page count %d not recorded:\n%s", pages, body)
	}
}

func TestWritePDF_NoPartialFileOnError(t *testing.T) {
	bill := model.Bill{ID: "bill-err-1"}
	mreg := metrics.NewRegistry()

	// A zero-height page makes the renderer fail.
	geo := render.PageGeometry{PageWidth: 210, PageHeight: 0, Scale: 2}
	dir := t.TempDir()
	_, _, err := writePDF(geo, bill, render.DefaultShopSettings, dir, mreg)
	if err == nil {
		t.Fatalf("expected render error")
	}
	if _, err := os.Stat(filepath.Join(dir, render.Filename(bill.ID))); !os.IsNotExist(err) {
		t.Fatalf("partial pdf left behind: %v", err)
	}

	body := scrape(t, mreg)
	if !strings.Contains(body, "pos_invoice_render_seconds_count 0") {
		t.Fatalf("failed render must not be observed:\n%s", body)
	}
}

func scrape(t *testing.T, mreg *metrics.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	mreg.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}
