package render

import (
	"fmt"
	"strings"

	"tillfront/internal/invoice"
	"tillfront/internal/model"
)

// FormatText builds the print-friendly view of a bill: a plain
// monospaced receipt for direct printing, separate from the PDF path.
// Pure function; the bill is not mutated.
func FormatText(b model.Bill, shop model.ShopSettings) string {
	t := invoice.Compute(b)
	var sb strings.Builder

	rule := strings.Repeat("-", 48)
	fmt.Fprintf(&sb, "%s\n%s\n%s\nPhone: %s  Tax ID: %s\n%s\n",
		rule, shop.Name, shop.Address, shop.Phone, shop.TaxID, rule)
	fmt.Fprintf(&sb, "Invoice: %s\nDate: %s\n", shortID(b.ID), b.CreatedAt)
	fmt.Fprintf(&sb, "Customer: %s\n", TitleCase(b.CustomerName))
	if b.CustomerPhone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", b.CustomerPhone)
	}
	fmt.Fprintf(&sb, "Billed by: %s\nPayment: %s\n%s\n",
		TitleCase(b.BilledBy), TitleCase(b.PaymentMethod), rule)

	for _, item := range b.BillItems {
		qty := model.ParseQuantity(item.Quantity)
		fmt.Fprintf(&sb, "%-24s %3d x %8.2f %9.2f\n",
			clip(TitleCase(item.Product.Name), 24),
			qty,
			invoice.Round2(model.ParsePrice(item.UnitPrice)),
			invoice.Round2(model.ParsePrice(item.TotalPrice)),
		)
		if item.Product.SKU != "" {
			fmt.Fprintf(&sb, "  SKU %s\n", UpperSKU(item.Product.SKU))
		}
	}

	fmt.Fprintf(&sb, "%s\n", rule)
	fmt.Fprintf(&sb, "%-36s %10.2f\n", "Subtotal", invoice.Round2(t.Subtotal))
	fmt.Fprintf(&sb, "%-36s %10.2f\n", fmt.Sprintf("Discount (%v%%)", model.ParsePercent(b.DiscountPercentage)), invoice.Round2(t.DiscountAmount))
	fmt.Fprintf(&sb, "%-36s %10.2f\n", "TOTAL", invoice.Round2(t.DisplayTotal))
	fmt.Fprintf(&sb, "%s\n", rule)
	return sb.String()
}
