package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tillfront/internal/model"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/products" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]model.Product{{ID: "a", Name: "Tea", Price: 10}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" || got[0].Price != 10 {
		t.Fatalf("unexpected products: %+v", got)
	}
}

func TestGetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/products/p9" {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(model.Product{ID: "p9", Name: "Coffee", Price: 4.5, StockQuantity: 12})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	p, err := c.GetProduct(context.Background(), "p9")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if p.ID != "p9" || p.Name != "Coffee" || p.StockQuantity != 12 {
		t.Fatalf("unexpected product: %+v", p)
	}

	_, err = c.GetProduct(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error for unknown id")
	}
}

func TestCreateBill_PostsJSONAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bills" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req model.BillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.CustomerName != "alice" || len(req.Items) != 1 || req.IdempotencyKey == "" {
			t.Fatalf("unexpected request body: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(model.Bill{ID: "bill-1", CustomerName: req.CustomerName, TotalAmount: 20.0})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	bill, err := c.CreateBill(context.Background(), model.BillRequest{
		IdempotencyKey: "k-1",
		CustomerName:   "alice",
		Items:          []model.BillRequestItem{{ProductID: "a", Quantity: 2, UnitPrice: 10, TotalPrice: 20}},
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	if bill.ID != "bill-1" {
		t.Fatalf("unexpected bill: %+v", bill)
	}
}

func TestErrorStatusIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"nope"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GetBill(context.Background(), "x")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("error should carry status: %v", err)
	}
}

func TestPatchStock(t *testing.T) {
	var gotBody map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/products/p1/stock" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.PatchStock(context.Background(), "p1", 7); err != nil {
		t.Fatalf("patch stock: %v", err)
	}
	if gotBody["stock_quantity"] != 7 {
		t.Fatalf("unexpected body: %v", gotBody)
	}
}

func TestCreateInventory_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/inventory" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("name") != "Tea" || r.FormValue("price") != "9.5" || r.FormValue("stock_quantity") != "3" {
			t.Fatalf("unexpected fields: %v", r.MultipartForm.Value)
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image part missing: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "tea.png" {
			t.Fatalf("image name: %s", hdr.Filename)
		}
		_ = json.NewEncoder(w).Encode(model.Product{ID: "new-1", Name: "Tea"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	p, err := c.CreateInventory(context.Background(), ProductUpload{
		Name:          "Tea",
		SKU:           "T-1",
		Price:         9.5,
		StockQuantity: 3,
		Image:         strings.NewReader("png-bytes"),
		ImageName:     "tea.png",
	})
	if err != nil {
		t.Fatalf("create inventory: %v", err)
	}
	if p.ID != "new-1" {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestGetShopSettings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shopDetails/shop-settings" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(model.ShopSettings{Name: "My Shop", TaxID: "TX1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	s, err := c.GetShopSettings(context.Background())
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if s.Name != "My Shop" || s.TaxID != "TX1" {
		t.Fatalf("unexpected settings: %+v", s)
	}
}

func TestPutShopSettings(t *testing.T) {
	var got model.ShopSettings
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/shopDetails/shop-settings" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	want := model.ShopSettings{Name: "My Shop", Address: "1 High St", Phone: "555", Email: "shop@example.com", TaxID: "TX1"}
	if err := c.PutShopSettings(context.Background(), want); err != nil {
		t.Fatalf("put settings: %v", err)
	}
	if got != want {
		t.Fatalf("server received %+v, want %+v", got, want)
	}
}
