package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"unicode/utf8"

	"tillfront/internal/model"
)

func TestTitleCase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"john doe", "John Doe"},
		{"JOHN DOE", "John Doe"},
		{"  mixed   CASE words ", "Mixed Case Words"},
		{"single", "Single"},
		{"", ""},
	}
	for _, c := range cases {
		if got := TitleCase(c.in); got != c.want {
			t.Fatalf("TitleCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTitleCase_NonASCII(t *testing.T) {
	cases := []struct{ in, want string }{
		{"élise dubois", "Élise Dubois"},
		{"ÖZGÜR demir", "Özgür Demir"},
		{"ñandú grande", "Ñandú Grande"},
	}
	for _, c := range cases {
		got := TitleCase(c.in)
		if got != c.want {
			t.Fatalf("TitleCase(%q) = %q, want %q", c.in, got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("TitleCase(%q) produced invalid UTF-8", c.in)
		}
	}
}

func TestUpperSKU(t *testing.T) {
	if got := UpperSKU(" abc-123 "); got != "ABC-123" {
		t.Fatalf("UpperSKU = %q", got)
	}
}

func TestClip_RuneBoundaries(t *testing.T) {
	if got := clip("abcdef", 4); got != "abcd" {
		t.Fatalf("clip ascii = %q", got)
	}
	got := clip("ééééé", 3)
	if got != "ééé" {
		t.Fatalf("clip = %q, want %q", got, "ééé")
	}
	if !utf8.ValidString(got) {
		t.Fatalf("clip cut mid-rune: %q", got)
	}
	if got := clip("éé", 5); got != "éé" {
		t.Fatalf("clip under limit = %q", got)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("abcdef1234567890"); got != "invoice-abcdef12.pdf" {
		t.Fatalf("filename = %q", got)
	}
	if got := Filename("short"); got != "invoice-short.pdf" {
		t.Fatalf("filename = %q", got)
	}
	if got := Filename(""); got != "invoice-unknown.pdf" {
		t.Fatalf("filename = %q", got)
	}
}

func TestPaginate_BandCount(t *testing.T) {
	// 900px tall at an effective page height of 590px: ceil(900/590) = 2.
	img := image.NewRGBA(image.Rect(0, 0, 420, 900))
	pages := Paginate(img, 590)
	if len(pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(pages))
	}
	if pages[0].Bounds().Dy() != 590 {
		t.Fatalf("first band height = %d, want 590", pages[0].Bounds().Dy())
	}
	if pages[1].Bounds().Dy() != 310 {
		t.Fatalf("last band height = %d, want 310", pages[1].Bounds().Dy())
	}
}

func TestPaginate_ExactFit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 420, 1180))
	if got := len(Paginate(img, 590)); got != 2 {
		t.Fatalf("exact fit pages = %d, want 2", got)
	}
	if got := len(Paginate(img, 1180)); got != 1 {
		t.Fatalf("single page = %d, want 1", got)
	}
}

func TestPaginate_BandsCoverWholeImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 1234))
	pages := Paginate(img, 500)
	if len(pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(pages))
	}
	sum := 0
	for _, p := range pages {
		sum += p.Bounds().Dy()
	}
	if sum != 1234 {
		t.Fatalf("bands cover %d rows, want 1234", sum)
	}
}

func sampleBill() model.Bill {
	return model.Bill{
		ID:                 "bill-123456789",
		CustomerName:       "jane smith",
		BilledBy:           "bob the clerk",
		PaymentMethod:      "cash",
		DiscountPercentage: 10.0,
		TotalAmount:        135.0,
		CreatedAt:          "2026-01-15",
		BillItems: []model.BillItem{
			{Product: model.BillProduct{Name: "green tea", Brand: "acme", SKU: "gt-01"}, Quantity: 2, UnitPrice: 50.0, TotalPrice: 100.0},
			{Product: model.BillProduct{Name: "coffee", SKU: "cf-02"}, Quantity: 1, UnitPrice: 50.0, TotalPrice: 50.0},
		},
	}
}

func TestFormatText_NormalizesAndTotals(t *testing.T) {
	b := sampleBill()
	out := FormatText(b, DefaultShopSettings)

	for _, want := range []string{
		"Jane Smith",
		"Bob The Clerk",
		"Cash",
		"Green Tea",
		"GT-01",
		"135.00",
		"150.00",
		"15.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("print view missing %q:\n%s", want, out)
		}
	}
	// The print path must not mutate the bill.
	if b.CustomerName != "jane smith" {
		t.Fatalf("bill mutated by print path")
	}
}

func TestLayout_TallerWithMoreItems(t *testing.T) {
	b := sampleBill()
	short := Layout(b, DefaultShopSettings, DefaultGeometry)

	for i := 0; i < 40; i++ {
		b.BillItems = append(b.BillItems, b.BillItems[0])
	}
	long := Layout(b, DefaultShopSettings, DefaultGeometry)

	if long.Bounds().Dy() <= short.Bounds().Dy() {
		t.Fatalf("layout height must grow with items: %d vs %d",
			long.Bounds().Dy(), short.Bounds().Dy())
	}
	if short.Bounds().Dx() != int(DefaultGeometry.PageWidth)*DefaultGeometry.Scale {
		t.Fatalf("layout width = %d", short.Bounds().Dx())
	}
}

func TestPDFRenderer_WritesMultiPagePDF(t *testing.T) {
	b := sampleBill()
	for i := 0; i < 80; i++ {
		b.BillItems = append(b.BillItems, b.BillItems[0])
	}
	var buf bytes.Buffer
	pages, err := NewPDFRenderer(DefaultGeometry).Render(b, DefaultShopSettings, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if pages < 2 {
		t.Fatalf("long bill should paginate, got %d page(s)", pages)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

type failingSettings struct{}

func (failingSettings) GetShopSettings(ctx context.Context) (model.ShopSettings, error) {
	return model.ShopSettings{}, errors.New("unreachable")
}

type okSettings struct{ s model.ShopSettings }

func (o okSettings) GetShopSettings(ctx context.Context) (model.ShopSettings, error) {
	return o.s, nil
}

func TestLoadShopSettings_FallsBackOnError(t *testing.T) {
	got := LoadShopSettings(context.Background(), failingSettings{})
	if got != DefaultShopSettings {
		t.Fatalf("expected default settings, got %+v", got)
	}

	want := model.ShopSettings{Name: "My Shop", Address: "addr", Phone: "1", TaxID: "x"}
	got = LoadShopSettings(context.Background(), okSettings{s: want})
	if got != want {
		t.Fatalf("expected fetched settings, got %+v", got)
	}
}
