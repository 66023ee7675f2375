package render

import (
	"image"
)

// PageGeometry is the output page shape. Width and height are in
// millimetres; Scale is the raster pixels-per-unit factor, so one page
// holds PageHeight*Scale pixels of the source image.
type PageGeometry struct {
	PageWidth  float64
	PageHeight float64
	Scale      int
}

// DefaultGeometry is a portrait A4-ish page rendered at 2x.
var DefaultGeometry = PageGeometry{PageWidth: 210, PageHeight: 295, Scale: 2}

// BandHeightPx is how many source-image rows fit on one page.
func (g PageGeometry) BandHeightPx() int {
	return int(g.PageHeight) * g.Scale
}

// Paginate slices a tall rendered invoice image into consecutive
// page-height bands, one band per output page. A running remaining
// counter walks down the image until it is exhausted; the last band may
// be shorter than a page. len(result) == ceil(imageHeight/bandHeight).
func Paginate(img *image.RGBA, bandHeight int) []*image.RGBA {
	if bandHeight <= 0 {
		return nil
	}
	bounds := img.Bounds()
	remaining := bounds.Dy()
	offset := bounds.Min.Y
	var pages []*image.RGBA
	for remaining > 0 {
		h := bandHeight
		if remaining < h {
			h = remaining
		}
		band := img.SubImage(image.Rect(bounds.Min.X, offset, bounds.Max.X, offset+h)).(*image.RGBA)
		pages = append(pages, band)
		offset += bandHeight
		remaining -= bandHeight
	}
	return pages
}
