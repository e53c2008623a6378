package waveform

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// DefaultColor is used when RenderParameters.Color is empty.
const DefaultColor = "lightgrey"

// ParseColor resolves a CSS colour name ("lightgrey") or a hex value
// ("#d3d3d3", "#ddd") to an opaque colour.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		s = DefaultColor
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: colour %q: %v", domain.ErrInvalidRenderParameters, s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	named, ok := colornames.Map[s]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: unknown colour %q", domain.ErrInvalidRenderParameters, s)
	}
	return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, nil
}
