package waveform

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
)

func flatProfile(v float64) domain.AmplitudeProfile {
	var p domain.AmplitudeProfile
	for i := range p {
		p[i] = v
	}
	return p
}

func painted(img *image.NRGBA, x, y int) bool {
	return img.NRGBAAt(x, y).A != 0
}

func TestRender_FullScaleFillsEveryColumn(t *testing.T) {
	img, err := Render(flatProfile(1.0), domain.RenderParameters{Width: 10, Height: 36, Color: "lightgrey"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := img.Bounds(); got != image.Rect(0, 0, 10, 36) {
		t.Fatalf("bounds: got %v, want 10x36", got)
	}
	want := color.NRGBA{R: 211, G: 211, B: 211, A: 255}
	for x := 0; x < 10; x++ {
		for y := 0; y < 36; y++ {
			if got := img.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRender_BarHeights(t *testing.T) {
	tests := []struct {
		name        string
		level       float64
		height      int
		wantPainted func(y int) bool
	}{
		{
			name:        "half level paints the middle 18 rows",
			level:       0.5,
			height:      36,
			wantPainted: func(y int) bool { return y >= 9 && y < 27 },
		},
		{
			name:        "silence paints nothing",
			level:       0,
			height:      36,
			wantPainted: func(int) bool { return false },
		},
		{
			name:        "odd height at full scale still fills",
			level:       1.0,
			height:      35,
			wantPainted: func(int) bool { return true },
		},
		{
			name:   "fractional half height",
			level:  0.25,
			height: 36,
			// h = 4.5 around a centre at 18: [13.5,18) and [18,22.5) by pixel centre
			wantPainted: func(y int) bool { return y >= 13 && y < 22 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Render(flatProfile(tt.level), domain.RenderParameters{Width: 4, Height: tt.height})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for x := 0; x < 4; x++ {
				for y := 0; y < tt.height; y++ {
					if got, want := painted(img, x, y), tt.wantPainted(y); got != want {
						t.Fatalf("pixel (%d,%d): painted=%v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestRender_ColumnsFollowProfile(t *testing.T) {
	var profile domain.AmplitudeProfile
	profile[0] = 1.0
	profile[500] = 1.0
	profile[999] = 1.0

	img, err := Render(profile, domain.RenderParameters{Width: 2, Height: 10, Color: "#ff0000"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// column 0 -> index 0, column 1 -> index 500
	for x := 0; x < 2; x++ {
		if !painted(img, x, 0) || !painted(img, x, 9) {
			t.Fatalf("column %d should be fully painted", x)
		}
	}
	if got := img.NRGBAAt(0, 5); got != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("colour: got %v, want red", got)
	}
}

func TestRender_WideSurfaceClampsIndex(t *testing.T) {
	profile := flatProfile(0)
	profile[999] = 1.0

	img, err := Render(profile, domain.RenderParameters{Width: 2500, Height: 8})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !painted(img, 2499, 0) {
		t.Fatal("last column should read the last sample")
	}
}

func TestRender_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		params domain.RenderParameters
	}{
		{name: "zero width", params: domain.RenderParameters{Width: 0, Height: 36}},
		{name: "zero height", params: domain.RenderParameters{Width: 10, Height: 0}},
		{name: "huge surface", params: domain.RenderParameters{Width: 1 << 40, Height: 1 << 40}},
		{name: "over pixel limit", params: domain.RenderParameters{Width: 100000, Height: 100000}},
		{name: "unknown colour", params: domain.RenderParameters{Width: 10, Height: 36, Color: "not-a-colour"}},
		{name: "bad hex", params: domain.RenderParameters{Width: 10, Height: 36, Color: "#zzzzzz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Render(flatProfile(1), tt.params)
			if !errors.Is(err, domain.ErrInvalidRenderParameters) {
				t.Fatalf("expected ErrInvalidRenderParameters, got %v", err)
			}
			if img != nil {
				t.Fatal("expected no image")
			}
		})
	}
}

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		x, width, want int
	}{
		{x: 0, width: 10, want: 0},
		{x: 1, width: 10, want: 100},
		{x: 1, width: 3, want: 334},
		{x: 2, width: 3, want: 667},
		{x: 999, width: 1000, want: 999},
		{x: 1999, width: 2000, want: 999},
		{x: 1, width: 2000, want: 1},
	}

	for _, tt := range tests {
		if got := columnIndex(tt.x, tt.width); got != tt.want {
			t.Errorf("columnIndex(%d, %d) = %d, want %d", tt.x, tt.width, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "", want: color.NRGBA{R: 211, G: 211, B: 211, A: 255}},
		{in: "LightGrey", want: color.NRGBA{R: 211, G: 211, B: 211, A: 255}},
		{in: "#1db954", want: color.NRGBA{R: 0x1d, G: 0xb9, B: 0x54, A: 255}},
		{in: "#fff", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "chartreuse-ish", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Fatalf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	img, err := Render(flatProfile(1), domain.RenderParameters{Width: 3, Height: 4})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	b, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v, want %v", decoded.Bounds(), img.Bounds())
	}

	dataURL, err := EncodeDataURL(img)
	if err != nil {
		t.Fatalf("data url: %v", err)
	}
	if !strings.HasPrefix(dataURL, "data:image/png;base64,") {
		t.Fatalf("unexpected data url prefix: %.30s", dataURL)
	}
}
