package domain

import "fmt"

const (
	// MaxRenderDimension bounds each side of a rendered surface.
	MaxRenderDimension = 16384
	// MaxRenderPixels bounds the surface area (64 MiB of NRGBA).
	MaxRenderPixels = 1 << 24
)

// RenderParameters describes the drawing surface for a waveform.
type RenderParameters struct {
	Width  int
	Height int
	Color  string // CSS colour name or hex, empty means the renderer default
}

// Validate rejects non-positive dimensions and surfaces larger than
// MaxRenderDimension on a side or MaxRenderPixels in total.
func (p RenderParameters) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidRenderParameters, p.Width, p.Height)
	}
	if p.Width > MaxRenderDimension || p.Height > MaxRenderDimension {
		return fmt.Errorf("%w: size %dx%d exceeds %d per side", ErrInvalidRenderParameters, p.Width, p.Height, MaxRenderDimension)
	}
	if p.Width*p.Height > MaxRenderPixels {
		return fmt.Errorf("%w: size %dx%d exceeds %d pixels", ErrInvalidRenderParameters, p.Width, p.Height, MaxRenderPixels)
	}
	return nil
}
