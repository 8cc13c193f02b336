package mocks

import (
	"image"
	"image/draw"

	"github.com/user/framereel/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
// It keeps a copy of every appended frame for verification.
type VideoEncoder struct {
	BeginFunc       func(cfg ports.StreamConfig) error
	AppendFrameFunc func(img image.Image) error
	EndFunc         func() error
	AbortFunc       func() error

	// Recorded calls for verification
	BeginCalls []ports.StreamConfig
	Frames     []*image.RGBA
	EndCalls   int
	AbortCalls int
}

func (m *VideoEncoder) Begin(cfg ports.StreamConfig) error {
	m.BeginCalls = append(m.BeginCalls, cfg)
	if m.BeginFunc != nil {
		return m.BeginFunc(cfg)
	}
	return nil
}

func (m *VideoEncoder) AppendFrame(img image.Image) error {
	if m.AppendFrameFunc != nil {
		if err := m.AppendFrameFunc(img); err != nil {
			return err
		}
	}
	// Copy so callers cannot mutate what was recorded.
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	m.Frames = append(m.Frames, dst)
	return nil
}

func (m *VideoEncoder) End() error {
	m.EndCalls++
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	return nil
}

func (m *VideoEncoder) Abort() error {
	m.AbortCalls++
	if m.AbortFunc != nil {
		return m.AbortFunc()
	}
	return nil
}

// Released reports how many times the session was released by End or Abort.
func (m *VideoEncoder) Released() int {
	return m.EndCalls + m.AbortCalls
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)
