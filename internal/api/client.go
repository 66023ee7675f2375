package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tillfront/internal/model"
)

// Client talks to the remote POS REST API. Every call takes a context
// and returns a wrapped error; callers decide how to degrade (list call
// sites fall back to empty lists, never to an undefined state).
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWith injects an http.Client, used by tests and by callers
// that need custom transport settings.
func NewClientWith(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// ListProducts fetches the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var out model.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+id, nil, &out); err != nil {
		return model.Product{}, err
	}
	return out, nil
}

// PatchStock sets a product's stock quantity.
func (c *Client) PatchStock(ctx context.Context, id string, stock int) error {
	body := map[string]int{"stock_quantity": stock}
	return c.doJSON(ctx, http.MethodPatch, "/products/"+id+"/stock", body, nil)
}

// CreateBill posts a checkout and returns the server-assigned bill.
func (c *Client) CreateBill(ctx context.Context, req model.BillRequest) (model.Bill, error) {
	var out model.Bill
	if err := c.doJSON(ctx, http.MethodPost, "/bills", req, &out); err != nil {
		return model.Bill{}, err
	}
	return out, nil
}

// ListBills fetches all bills.
func (c *Client) ListBills(ctx context.Context) ([]model.Bill, error) {
	var out []model.Bill
	if err := c.doJSON(ctx, http.MethodGet, "/bills", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBill fetches one bill by id.
func (c *Client) GetBill(ctx context.Context, id string) (model.Bill, error) {
	var out model.Bill
	if err := c.doJSON(ctx, http.MethodGet, "/bills/"+id, nil, &out); err != nil {
		return model.Bill{}, err
	}
	return out, nil
}

// ProductUpload is the multipart payload for inventory create/update.
// Image is optional; when set, ImageName names the file part.
type ProductUpload struct {
	Name          string
	SKU           string
	Brand         string
	Category      string
	Description   string
	Price         float64
	StockQuantity int
	Image         io.Reader
	ImageName     string
}

func (c *Client) doMultipart(ctx context.Context, method, path string, up ProductUpload, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":           up.Name,
		"sku":            up.SKU,
		"brand":          up.Brand,
		"category":       up.Category,
		"description":    up.Description,
		"price":          strconv.FormatFloat(up.Price, 'f', -1, 64),
		"stock_quantity": strconv.Itoa(up.StockQuantity),
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("multipart field %s: %w", k, err)
		}
	}
	if up.Image != nil {
		fw, err := mw.CreateFormFile("image", up.ImageName)
		if err != nil {
			return fmt.Errorf("multipart image: %w", err)
		}
		if _, err := io.Copy(fw, up.Image); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, out)
}

// CreateInventory creates a product, image included.
func (c *Client) CreateInventory(ctx context.Context, up ProductUpload) (model.Product, error) {
	var out model.Product
	if err := c.doMultipart(ctx, http.MethodPost, "/inventory", up, &out); err != nil {
		return model.Product{}, err
	}
	return out, nil
}

// UpdateInventory updates a product in place.
func (c *Client) UpdateInventory(ctx context.Context, id string, up ProductUpload) (model.Product, error) {
	var out model.Product
	if err := c.doMultipart(ctx, http.MethodPut, "/inventory/"+id, up, &out); err != nil {
		return model.Product{}, err
	}
	return out, nil
}

// DeleteInventory removes a product.
func (c *Client) DeleteInventory(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/inventory/"+id, nil, nil)
}

// GetShopSettings fetches the shop identity used on invoices.
func (c *Client) GetShopSettings(ctx context.Context) (model.ShopSettings, error) {
	var out model.ShopSettings
	if err := c.doJSON(ctx, http.MethodGet, "/shopDetails/shop-settings", nil, &out); err != nil {
		return model.ShopSettings{}, err
	}
	return out, nil
}

// PutShopSettings updates the shop identity.
func (c *Client) PutShopSettings(ctx context.Context, s model.ShopSettings) error {
	return c.doJSON(ctx, http.MethodPut, "/shopDetails/shop-settings", s, nil)
}
