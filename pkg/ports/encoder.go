package ports

import (
	"fmt"
	"image"
)

// Geometry is the shape of a decoded raster buffer.
type Geometry struct {
	Width    int
	Height   int
	Channels int
}

// String returns the geometry as WxH/Nch.
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d/%dch", g.Width, g.Height, g.Channels)
}

// StreamConfig describes the output stream an encoder opens in Begin.
type StreamConfig struct {
	OutputPath string
	Codec      string // Four-character codec tag, e.g. "mp4v"
	FPS        int
	Geometry   Geometry
	Options    EncoderOptions
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Quality int // Codec-scale quality (q:v or CRF), 0 selects the codec default
}

// VideoEncoder abstracts a single video encoding session bound to one output file.
//
// A session is opened by Begin and released exactly once, either by End on
// success or by Abort on any failure. Neither End nor Abort leaves a partial
// file at the output path.
type VideoEncoder interface {
	// Begin opens the output stream with the given geometry, frame rate and codec.
	Begin(cfg StreamConfig) error

	// AppendFrame appends img as the next sequential frame.
	AppendFrame(img image.Image) error

	// End flushes and closes the stream and moves the finished file to the output path.
	End() error

	// Abort releases the stream and discards any partial output.
	// It is a no-op when no session is open.
	Abort() error
}
