package imaging

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"github.com/dgrantpete/scoreboard-sim/scoreboard"
)

// Pipeline alpha-blends a decoded logo onto a team's primary colour and
// re-encodes the result for embedded consumers.
type Pipeline struct{}

// NewPipeline constructs a Pipeline. It holds no state; every method is
// pure over its arguments.
func NewPipeline() *Pipeline { return &Pipeline{} }

// Blend composites img onto a solid background of bg, alpha-blending per
// pixel so a logo's transparent regions pick up the team's primary
// colour instead of going black.
func (p *Pipeline) Blend(img image.Image, bg scoreboard.Color) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	background := color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x, y, blendOver(img.At(x, y), background))
		}
	}
	return out
}

func blendOver(fg color.Color, bg color.RGBA) color.RGBA {
	fr, fg_, fb, fa := fg.RGBA()
	if fa == 0xffff {
		return color.RGBA{R: uint8(fr >> 8), G: uint8(fg_ >> 8), B: uint8(fb >> 8), A: 255}
	}
	alpha := float64(fa) / 0xffff
	blend := func(f, b uint32) uint8 {
		// RGBA() returns alpha-premultiplied channels, so f already carries
		// the foreground's alpha weighting.
		return uint8(float64(f>>8) + (1-alpha)*float64(b))
	}
	return color.RGBA{
		R: blend(fr, uint32(bg.R)),
		G: blend(fg_, uint32(bg.G)),
		B: blend(fb, uint32(bg.B)),
		A: 255,
	}
}

// EncodePPM renders img as a binary (P6) PPM. There is no ecosystem PPM
// encoder in this repository's dependency pack (see DESIGN.md), so this
// is a direct, minimal stdlib writer.
func (p *Pipeline) EncodePPM(img image.Image) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P6\n%d %d\n255\n", w, h)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			buf.WriteByte(uint8(r >> 8))
			buf.WriteByte(uint8(g >> 8))
			buf.WriteByte(uint8(b >> 8))
		}
	}
	return buf.Bytes()
}

// EncodeRGB565 packs img into big-endian RGB565, 2 bytes per pixel, the
// format the microcontroller display client expects.
func (p *Pipeline) EncodeRGB565(img image.Image) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out := make([]byte, 0, w*h*2)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			packed := rgb565(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			var buf [2]byte
			binary.BigEndian.PutUint16(buf[:], packed)
			out = append(out, buf[:]...)
		}
	}
	return out
}

func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
