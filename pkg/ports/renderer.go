package ports

import (
	"image"
)

// FrameRenderer draws synthetic frames, used to produce sample input sequences.
type FrameRenderer interface {
	// RenderFrame draws frame index of total at the given size.
	RenderFrame(width, height, index, total int) image.Image
}
