package waveform

import (
	"image"
	"image/draw"
	"math"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
)

// Render draws profile as a mirrored bar waveform on a transparent
// params.Width x params.Height surface, one bar per pixel column.
func Render(profile domain.AmplitudeProfile, params domain.RenderParameters) (*image.NRGBA, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	fill, err := ParseColor(params.Color)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, params.Width, params.Height))
	src := image.NewUniform(fill)
	mid := float64(params.Height) / 2

	for x := 0; x < params.Width; x++ {
		h := math.Round(profile[columnIndex(x, params.Width)]*float64(params.Height)) / 2
		fillSpan(img, x, mid-h, mid, src)
		fillSpan(img, x, mid, mid+h, src)
	}

	return img, nil
}

// columnIndex maps pixel column x to a profile index, ceil(1000*x/width),
// clamped to the last sample since the ceiling can land one past the end.
func columnIndex(x, width int) int {
	i := (domain.ProfileResolution*x + width - 1) / width
	if i >= domain.ProfileResolution {
		return domain.ProfileResolution - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

// fillSpan paints column x over [top, bottom). A row is inside when its
// centre is.
func fillSpan(img *image.NRGBA, x int, top, bottom float64, src image.Image) {
	if bottom <= top {
		return
	}
	y0 := int(math.Ceil(top - 0.5))
	y1 := int(math.Ceil(bottom - 0.5))
	r := image.Rect(x, y0, x+1, y1).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(img, r, src, image.Point{}, draw.Src)
}
