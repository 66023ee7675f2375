package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Product is one catalog entry as served by the products API.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	SKU           string  `json:"sku"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url"`
	Description   string  `json:"description"`
}

// CartItem is a cart entry joined against the catalog. Derived on every
// read, never stored.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is this item's contribution to the cart value.
func (c CartItem) LineTotal() float64 {
	return c.Price * float64(c.Quantity)
}

// BillProduct is the product snapshot embedded in a bill line.
type BillProduct struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	SKU      string `json:"sku"`
}

// BillItem is one line of a bill. The numeric fields are deliberately
// loose (any): bills come off the wire and a malformed value must coerce
// to zero instead of failing the whole decode.
type BillItem struct {
	Product    BillProduct `json:"product"`
	Quantity   any         `json:"quantity"`
	UnitPrice  any         `json:"unit_price"`
	TotalPrice any         `json:"total_price"`
}

// Bill is a server-persisted transaction record, read-only on this side.
type Bill struct {
	ID                 string     `json:"id"`
	CustomerName       string     `json:"customer_name"`
	CustomerPhone      string     `json:"customer_phone,omitempty"`
	CustomerEmail      string     `json:"customer_email,omitempty"`
	BilledBy           string     `json:"billed_by"`
	PaymentMethod      string     `json:"payment_method"`
	DiscountPercentage any        `json:"discount_percentage"`
	TotalAmount        any        `json:"total_amount"`
	CreatedAt          string     `json:"created_at"`
	BillItems          []BillItem `json:"bill_items"`
}

// BillRequest is the payload posted at checkout. Unlike Bill it is built
// locally, so the numbers are strongly typed.
type BillRequest struct {
	IdempotencyKey     string            `json:"idempotency_key"`
	CustomerName       string            `json:"customer_name"`
	CustomerPhone      string            `json:"customer_phone,omitempty"`
	CustomerEmail      string            `json:"customer_email,omitempty"`
	BilledBy           string            `json:"billed_by"`
	PaymentMethod      string            `json:"payment_method"`
	DiscountPercentage float64           `json:"discount_percentage"`
	Items              []BillRequestItem `json:"bill_items"`
}

// BillRequestItem is one line of a BillRequest.
type BillRequestItem struct {
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// ShopSettings is the shop identity printed on invoices.
type ShopSettings struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	TaxID   string `json:"tax_id"`
}

// ParseQuantity coerces a decoded JSON value to an integer quantity.
// Anything unparsable is 0; cart reads never fail on bad input.
func ParseQuantity(v any) int {
	switch q := v.(type) {
	case nil:
		return 0
	case int:
		return q
	case int32:
		return int(q)
	case int64:
		return int(q)
	case float64:
		return int(q)
	case float32:
		return int(q)
	case json.Number:
		if n, err := q.Int64(); err == nil {
			return int(n)
		}
		if f, err := q.Float64(); err == nil {
			return int(f)
		}
		return 0
	case string:
		s := strings.TrimSpace(q)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}

// ParsePrice coerces a decoded JSON value to a float64 amount, 0 on
// failure.
func ParsePrice(v any) float64 {
	f, _ := ParsePriceOK(v)
	return f
}

// ParsePriceOK is ParsePrice plus whether the value actually parsed.
// Callers that need to tell "server sent 0" from "server sent garbage"
// (the display-total precedence rule) use this form.
func ParsePriceOK(v any) (float64, bool) {
	switch p := v.(type) {
	case nil:
		return 0, false
	case float64:
		return p, true
	case float32:
		return float64(p), true
	case int:
		return float64(p), true
	case int32:
		return float64(p), true
	case int64:
		return float64(p), true
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ParsePercent coerces a discount percentage, 0 on failure. Values above
// 100 pass through untouched.
func ParsePercent(v any) float64 {
	return ParsePrice(v)
}
