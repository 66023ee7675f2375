package inventory

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tillfront/internal/api"
	"tillfront/internal/model"
)

// Form is the operator-entered product form. Validate rejects it with
// field-level errors before any network call happens.
type Form struct {
	Name          string
	SKU           string
	Brand         string
	Category      string
	Description   string
	Price         float64
	StockQuantity int
}

// FieldError names the offending field so the UI can attach the message
// to it.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// Validate returns every field error at once, nil when the form is fine.
func (f *Form) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, FieldError{"name", "required"})
	}
	if strings.TrimSpace(f.SKU) == "" {
		errs = append(errs, FieldError{"sku", "required"})
	}
	if f.Price <= 0 {
		errs = append(errs, FieldError{"price", "must be positive"})
	}
	if f.StockQuantity < 0 {
		errs = append(errs, FieldError{"stock_quantity", "must not be negative"})
	}
	return errs
}

func (f *Form) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.SKU = strings.ToUpper(strings.TrimSpace(f.SKU))
	f.Brand = strings.TrimSpace(f.Brand)
	f.Category = strings.TrimSpace(f.Category)
}

// Mutator is the product-mutation side of the API client.
type Mutator interface {
	CreateInventory(ctx context.Context, up api.ProductUpload) (model.Product, error)
	UpdateInventory(ctx context.Context, id string, up api.ProductUpload) (model.Product, error)
	DeleteInventory(ctx context.Context, id string) error
}

// Admin is the thin CRUD surface over the API client.
type Admin struct {
	api Mutator
}

func NewAdmin(m Mutator) *Admin {
	return &Admin{api: m}
}

func (a *Admin) upload(f Form, img *ImageFile) api.ProductUpload {
	up := api.ProductUpload{
		Name:          f.Name,
		SKU:           f.SKU,
		Brand:         f.Brand,
		Category:      f.Category,
		Description:   f.Description,
		Price:         f.Price,
		StockQuantity: f.StockQuantity,
	}
	if img != nil {
		up.Image = img.Reader
		up.ImageName = img.Name
	}
	return up
}

// ImageFile is an optional product image attached to create/update.
type ImageFile struct {
	Name   string
	Reader io.Reader
}

// Create validates and posts a new product.
func (a *Admin) Create(ctx context.Context, f Form, img *ImageFile) (model.Product, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return model.Product{}, fmt.Errorf("invalid product form: %v", errs)
	}
	f.normalize()
	p, err := a.api.CreateInventory(ctx, a.upload(f, img))
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update validates and replaces an existing product.
func (a *Admin) Update(ctx context.Context, id string, f Form, img *ImageFile) (model.Product, error) {
	if id == "" {
		return model.Product{}, fmt.Errorf("product id required")
	}
	if errs := f.Validate(); len(errs) > 0 {
		return model.Product{}, fmt.Errorf("invalid product form: %v", errs)
	}
	f.normalize()
	p, err := a.api.UpdateInventory(ctx, id, a.upload(f, img))
	if err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete removes a product.
func (a *Admin) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("product id required")
	}
	if err := a.api.DeleteInventory(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
