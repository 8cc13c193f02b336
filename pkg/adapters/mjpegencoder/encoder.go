// Package mjpegencoder writes Motion-JPEG AVI files in pure Go.
package mjpegencoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sync"

	"github.com/icza/mjpeg"

	"github.com/user/framereel/pkg/codec"
	"github.com/user/framereel/pkg/ports"
)

var (
	// ErrNotInitialized is returned when encoder methods are called outside a Begin/End session.
	ErrNotInitialized = errors.New("mjpegencoder: encoder not initialized")

	// ErrAlreadyStarted is returned when Begin is called on an open session.
	ErrAlreadyStarted = errors.New("mjpegencoder: session already started")

	// ErrUnsupportedCodec is returned for any codec tag other than MJPG.
	ErrUnsupportedCodec = errors.New("mjpegencoder: only the mjpg codec is supported")

	// ErrInvalidStream is returned for a non-positive frame rate or empty geometry.
	ErrInvalidStream = errors.New("mjpegencoder: invalid stream parameters")

	// ErrFrameSize is returned when a frame does not match the stream geometry.
	ErrFrameSize = errors.New("mjpegencoder: frame size does not match stream")

	// ErrNoFrames is returned when End is called before any frame was appended.
	ErrNoFrames = errors.New("mjpegencoder: no frames to encode")
)

// Encoder implements ports.VideoEncoder with github.com/icza/mjpeg.
type Encoder struct {
	mu         sync.Mutex
	cfg        ports.StreamConfig
	aw         mjpeg.AviWriter
	tempPath   string
	quality    int
	buf        bytes.Buffer
	frameCount int
}

// New creates a new MJPEG AVI encoder.
func New() *Encoder {
	return &Encoder{}
}

// Begin opens an AVI writer on a temporary file beside the output path.
func (e *Encoder) Begin(cfg ports.StreamConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.aw != nil {
		return ErrAlreadyStarted
	}

	c, err := codec.Lookup(cfg.Codec)
	if err != nil {
		return err
	}
	if c.Tag != "mjpg" {
		return fmt.Errorf("%w: got %s", ErrUnsupportedCodec, c.Tag)
	}
	if codec.Container(cfg.OutputPath) != ".avi" {
		return fmt.Errorf("%w: mjpeg backend writes .avi only, got %q",
			codec.ErrUnsupportedContainer, codec.Container(cfg.OutputPath))
	}
	if cfg.FPS <= 0 || cfg.Geometry.Width <= 0 || cfg.Geometry.Height <= 0 {
		return fmt.Errorf("%w: %s at %d fps", ErrInvalidStream, cfg.Geometry, cfg.FPS)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(cfg.OutputPath), ".framereel-*.avi")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tmpFile.Name()
	tmpFile.Close()

	aw, err := mjpeg.New(tempPath, int32(cfg.Geometry.Width), int32(cfg.Geometry.Height), int32(cfg.FPS))
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to open avi writer: %w", err)
	}

	e.cfg = cfg
	e.aw = aw
	e.tempPath = tempPath
	e.quality = JPEGQuality(c.Quality(cfg.Options.Quality))
	e.frameCount = 0
	return nil
}

// JPEGQuality converts a q:v style scale (1 best, 31 worst) to a JPEG quality (1-100).
func JPEGQuality(q int) int {
	quality := 100 - q*99/31
	if quality < 1 {
		return 1
	}
	if quality > 100 {
		return 100
	}
	return quality
}

// AppendFrame JPEG-encodes img and adds it to the AVI.
func (e *Encoder) AppendFrame(img image.Image) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.aw == nil {
		return ErrNotInitialized
	}

	bounds := img.Bounds()
	if bounds.Dx() != e.cfg.Geometry.Width || bounds.Dy() != e.cfg.Geometry.Height {
		return fmt.Errorf("%w: got %dx%d, stream is %dx%d", ErrFrameSize,
			bounds.Dx(), bounds.Dy(), e.cfg.Geometry.Width, e.cfg.Geometry.Height)
	}

	e.buf.Reset()
	if err := jpeg.Encode(&e.buf, img, &jpeg.Options{Quality: e.quality}); err != nil {
		return fmt.Errorf("failed to encode frame %d: %w", e.frameCount, err)
	}
	if err := e.aw.AddFrame(e.buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", e.frameCount, err)
	}

	e.frameCount++
	return nil
}

// End writes the AVI index and moves the file to the output path.
func (e *Encoder) End() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.aw == nil {
		return ErrNotInitialized
	}
	if e.frameCount == 0 {
		e.abortLocked()
		return ErrNoFrames
	}

	err := e.aw.Close()
	e.aw = nil
	if err != nil {
		e.removeTemp()
		return fmt.Errorf("failed to finalize avi: %w", err)
	}

	if err := os.Rename(e.tempPath, e.cfg.OutputPath); err != nil {
		e.removeTemp()
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	e.tempPath = ""
	return nil
}

// Abort closes the writer and removes the partial output. It is a no-op
// when no session is open.
func (e *Encoder) Abort() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.abortLocked()
	return nil
}

func (e *Encoder) abortLocked() {
	if e.aw != nil {
		e.aw.Close()
		e.aw = nil
	}
	e.removeTemp()
}

// removeTemp deletes the temporary AVI and the index file mjpeg keeps beside it.
func (e *Encoder) removeTemp() {
	if e.tempPath == "" {
		return
	}
	os.Remove(e.tempPath)
	os.Remove(e.tempPath + ".idx_")
	e.tempPath = ""
}

// FrameCount returns the number of frames written in the current session.
func (e *Encoder) FrameCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameCount
}

var _ ports.VideoEncoder = (*Encoder)(nil)
