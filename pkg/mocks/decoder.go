package mocks

import (
	"fmt"
	"image"

	"github.com/user/framereel/pkg/ports"
)

// FrameDecoder is a mock implementation of ports.FrameDecoder.
// By default it decodes nothing and looks up Images by the raw data as key,
// so tests can store a frame's name as its file content.
type FrameDecoder struct {
	DecodeFunc func(data []byte) (ports.Frame, error)

	// Images maps file content to the image returned for it.
	Images map[string]image.Image
	// Channels is reported for every image; 3 when zero.
	Channels int

	DecodeCalls []string
}

// NewFrameDecoder creates a new mock FrameDecoder.
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{Images: make(map[string]image.Image)}
}

func (m *FrameDecoder) Decode(data []byte) (ports.Frame, error) {
	m.DecodeCalls = append(m.DecodeCalls, string(data))
	if m.DecodeFunc != nil {
		return m.DecodeFunc(data)
	}
	img, ok := m.Images[string(data)]
	if !ok {
		return ports.Frame{}, fmt.Errorf("no image registered for %q", data)
	}
	channels := m.Channels
	if channels == 0 {
		channels = 3
	}
	b := img.Bounds()
	return ports.Frame{
		Image:    img,
		Format:   "mock",
		Geometry: ports.Geometry{Width: b.Dx(), Height: b.Dy(), Channels: channels},
	}, nil
}

var _ ports.FrameDecoder = (*FrameDecoder)(nil)
