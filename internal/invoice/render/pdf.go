package render

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"tillfront/internal/model"
)

// Filename is the download name for a bill's PDF:
// invoice-<first 8 chars of the bill id, or "unknown">.pdf.
func Filename(billID string) string {
	return "invoice-" + shortID(billID) + ".pdf"
}

// PDFRenderer writes a paginated invoice PDF. The invoice is laid out
// once as a tall raster, sliced into page-height bands, and each band is
// scaled to the full page width on its own page.
type PDFRenderer struct {
	geo PageGeometry
}

func NewPDFRenderer(geo PageGeometry) *PDFRenderer {
	return &PDFRenderer{geo: geo}
}

// Render writes the PDF to w and reports how many pages it produced.
func (r *PDFRenderer) Render(b model.Bill, shop model.ShopSettings, w io.Writer) (int, error) {
	img := Layout(b, shop, r.geo)
	bands := Paginate(img, r.geo.BandHeightPx())
	if len(bands) == 0 {
		return 0, fmt.Errorf("render: empty invoice raster")
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: r.geo.PageWidth, Ht: r.geo.PageHeight},
	})
	for i, band := range bands {
		var buf bytes.Buffer
		if err := png.Encode(&buf, band); err != nil {
			return 0, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("band-%d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)

		pdf.AddPage()
		// Full page width, proportional height.
		bandHeightMM := float64(band.Bounds().Dy()) / float64(r.geo.Scale)
		pdf.ImageOptions(name, 0, 0, r.geo.PageWidth, bandHeightMM, false, opts, 0, "")
	}
	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("write pdf: %w", err)
	}
	return len(bands), nil
}
