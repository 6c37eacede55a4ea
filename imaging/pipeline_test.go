package imaging

import (
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

func TestBlendOpaquePixelIgnoresBackground(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	out := NewPipeline().Blend(src, scoreboard.Color{R: 200, G: 200, B: 200})
	got := out.RGBAAt(0, 0)
	if got.R != 10 || got.G != 20 || got.B != 30 {
		t.Fatalf("fully opaque pixel should pass through unchanged, got %+v", got)
	}
}

func TestBlendTransparentPixelTakesBackground(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, color.RGBA{R: 0, G: 0, B: 0, A: 0})

	bg := scoreboard.Color{R: 227, G: 24, B: 55}
	out := NewPipeline().Blend(src, bg)
	got := out.RGBAAt(0, 0)
	if got.R != bg.R || got.G != bg.G || got.B != bg.B {
		t.Fatalf("fully transparent pixel should take the background colour, got %+v want %+v", got, bg)
	}
}

func TestBlendHalfTransparentPixelIsAverage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, color.NRGBA{R: 200, G: 0, B: 0, A: 128})

	bg := scoreboard.Color{R: 0, G: 200, B: 0}
	out := NewPipeline().Blend(src, bg)
	got := out.RGBAAt(0, 0)
	if got.R < 90 || got.R > 110 {
		t.Fatalf("half-alpha red over green background should land near the midpoint, got R=%d", got.R)
	}
}

func TestEncodePPMHeaderAndSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.RGBA{R: 1, G: 2, B: 3, A: 255})
		}
	}

	data := NewPipeline().EncodePPM(src)
	wantHeader := "P6\n2 3\n255\n"
	if string(data[:len(wantHeader)]) != wantHeader {
		t.Fatalf("header = %q, want %q", data[:len(wantHeader)], wantHeader)
	}
	pixelBytes := data[len(wantHeader):]
	if len(pixelBytes) != 2*3*3 {
		t.Fatalf("pixel data length = %d, want %d", len(pixelBytes), 2*3*3)
	}
	if pixelBytes[0] != 1 || pixelBytes[1] != 2 || pixelBytes[2] != 3 {
		t.Fatalf("first pixel = %v, want [1 2 3]", pixelBytes[:3])
	}
}

func TestEncodeRGB565KnownColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	data := NewPipeline().EncodeRGB565(src)
	if len(data) != 2 {
		t.Fatalf("expected 2 bytes for a single pixel, got %d", len(data))
	}
	packed := binary.BigEndian.Uint16(data)
	if packed != 0xFFFF {
		t.Fatalf("white pixel should pack to 0xFFFF, got %#04x", packed)
	}
}

func TestEncodeRGB565Black(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})

	data := NewPipeline().EncodeRGB565(src)
	if binary.BigEndian.Uint16(data) != 0 {
		t.Fatalf("black pixel should pack to 0, got %#04x", binary.BigEndian.Uint16(data))
	}
}
