package ports

import (
	"image"
)

// Frame is one decoded still frame.
type Frame struct {
	Image    image.Image
	Geometry Geometry
	Format   string // Image format name as registered with the image package
}

// FrameDecoder abstracts still-image decoding.
type FrameDecoder interface {
	// Decode decodes encoded image data into a raster.
	Decode(data []byte) (Frame, error)
}
