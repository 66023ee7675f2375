package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"tillfront/internal/invoice"
	"tillfront/internal/model"
)

const (
	lineHeightPx = 18
	marginPx     = 24
)

// Layout renders the whole invoice once into a single tall raster. The
// paginator slices this into page bands afterwards; the layout itself
// knows nothing about pages.
func Layout(b model.Bill, shop model.ShopSettings, geo PageGeometry) *image.RGBA {
	lines := layoutLines(b, shop)

	width := int(geo.PageWidth) * geo.Scale
	height := len(lines)*lineHeightPx + 2*marginPx
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	y := marginPx
	for _, line := range lines {
		d.Dot = fixed.P(marginPx, y)
		d.DrawString(line)
		y += lineHeightPx
	}
	return img
}

// layoutLines flattens the invoice into display lines with all text
// normalization applied. The bill itself is never mutated.
func layoutLines(b model.Bill, shop model.ShopSettings) []string {
	t := invoice.Compute(b)

	lines := []string{
		shop.Name,
		shop.Address,
		"Phone: " + shop.Phone,
		"Tax ID: " + shop.TaxID,
		"",
		"INVOICE " + shortID(b.ID),
		"Date: " + b.CreatedAt,
		"Customer: " + TitleCase(b.CustomerName),
		"Billed by: " + TitleCase(b.BilledBy),
		"Payment: " + TitleCase(b.PaymentMethod),
		"",
		fmt.Sprintf("%-28s %-10s %5s %10s %10s", "Item", "SKU", "Qty", "Price", "Total"),
	}
	for _, item := range b.BillItems {
		name := TitleCase(item.Product.Name)
		if item.Product.Brand != "" {
			name = TitleCase(item.Product.Brand) + " " + name
		}
		lines = append(lines, fmt.Sprintf("%-28s %-10s %5d %10.2f %10.2f",
			clip(name, 28),
			UpperSKU(item.Product.SKU),
			model.ParseQuantity(item.Quantity),
			invoice.Round2(model.ParsePrice(item.UnitPrice)),
			invoice.Round2(model.ParsePrice(item.TotalPrice)),
		))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("%46s %10.2f", "Subtotal:", invoice.Round2(t.Subtotal)),
		fmt.Sprintf("%46s %10.2f", fmt.Sprintf("Discount (%v%%):", model.ParsePercent(b.DiscountPercentage)), invoice.Round2(t.DiscountAmount)),
		fmt.Sprintf("%46s %10.2f", "Grand total:", invoice.Round2(t.DisplayTotal)),
		"",
		"Thank you for your purchase!",
	)
	return lines
}

// clip truncates to n runes, never splitting a multi-byte character.
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func shortID(id string) string {
	if id == "" {
		return "unknown"
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
