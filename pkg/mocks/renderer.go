package mocks

import (
	"image"
	"image/color"

	"github.com/user/framereel/pkg/ports"
)

// RenderCall records the arguments of one RenderFrame call.
type RenderCall struct {
	Width, Height int
	Index, Total  int
}

// FrameRenderer is a mock implementation of ports.FrameRenderer.
// By default it returns a solid gray frame whose level is the frame index.
type FrameRenderer struct {
	RenderFrameFunc func(width, height, index, total int) image.Image

	// Recorded calls for verification
	Calls []RenderCall
}

func (m *FrameRenderer) RenderFrame(width, height, index, total int) image.Image {
	m.Calls = append(m.Calls, RenderCall{Width: width, Height: height, Index: index, Total: total})
	if m.RenderFrameFunc != nil {
		return m.RenderFrameFunc(width, height, index, total)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := color.RGBA{R: uint8(index), G: uint8(index), B: uint8(index), A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var _ ports.FrameRenderer = (*FrameRenderer)(nil)
