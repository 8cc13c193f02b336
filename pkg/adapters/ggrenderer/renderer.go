// Package ggrenderer draws synthetic numbered frames using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"

	"github.com/user/framereel/pkg/ports"
)

// Renderer implements ports.FrameRenderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// RenderFrame draws frame index of total: a background whose hue cycles with
// the index, a ball sweeping left to right, a progress bar and the frame number.
func (r *Renderer) RenderFrame(width, height, index, total int) image.Image {
	if total <= 0 {
		total = 1
	}
	progress := float64(index) / float64(total)

	dc := gg.NewContext(width, height)
	dc.SetColor(HueColor(index, total))
	dc.Clear()

	w, h := float64(width), float64(height)

	// Progress bar along the bottom edge
	barHeight := math.Max(2, h/12)
	dc.SetColor(color.RGBA{0, 0, 0, 160})
	dc.DrawRectangle(0, h-barHeight, w, barHeight)
	dc.Fill()
	dc.SetColor(color.White)
	dc.DrawRectangle(0, h-barHeight, w*progress, barHeight)
	dc.Fill()

	// Ball sweeping across the middle
	radius := math.Max(2, math.Min(w, h)/10)
	x := radius + (w-2*radius)*progress
	dc.SetColor(color.White)
	dc.DrawCircle(x, h/2, radius)
	dc.Fill()

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(fmt.Sprintf("%04d", index), w/2, h/4, 0.5, 0.5)

	return dc.Image()
}

// HueColor returns the fully saturated background color of frame index of total.
func HueColor(index, total int) color.RGBA {
	if total <= 0 {
		total = 1
	}
	hue := math.Mod(float64(index)/float64(total)*360, 360)
	return hsvToRGB(hue, 1, 1)
}

func hsvToRGB(h, s, v float64) color.RGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// EncodeBMP encodes img as an uncompressed BMP.
func EncodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode BMP: %w", err)
	}
	return buf.Bytes(), nil
}

// Ensure Renderer implements ports.FrameRenderer
var _ ports.FrameRenderer = (*Renderer)(nil)
