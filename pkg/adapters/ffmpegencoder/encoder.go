// Package ffmpegencoder encodes frame sequences by piping raw RGBA frames
// into an ffmpeg child process.
//
// The stream is written to a temporary file next to the output path and
// renamed into place only when End succeeds.
package ffmpegencoder

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/draw"

	"github.com/user/framereel/pkg/codec"
	"github.com/user/framereel/pkg/ports"
)

// Options configures the ffmpeg backend.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// Logger receives the ffmpeg command line at debug level. May be nil.
	Logger ports.Logger
}

// Encoder implements ports.VideoEncoder using an ffmpeg external process.
type Encoder struct {
	opts Options

	mu         sync.Mutex
	cfg        ports.StreamConfig
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	tempPath   string
	frame      *image.RGBA
	frameCount int
}

// New creates a new ffmpeg-backed encoder.
func New(opts Options) *Encoder {
	return &Encoder{opts: opts}
}

// Begin validates the stream parameters and starts ffmpeg.
func (e *Encoder) Begin(cfg ports.StreamConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		return ErrAlreadyStarted
	}

	c, err := codec.Lookup(cfg.Codec)
	if err != nil {
		return err
	}
	if err := c.CheckContainer(cfg.OutputPath); err != nil {
		return err
	}
	if cfg.FPS <= 0 || cfg.Geometry.Width <= 0 || cfg.Geometry.Height <= 0 {
		return fmt.Errorf("%w: %s at %d fps", ErrInvalidStream, cfg.Geometry, cfg.FPS)
	}
	if c.EvenDimensions && (cfg.Geometry.Width%2 != 0 || cfg.Geometry.Height%2 != 0) {
		return fmt.Errorf("%w: %s is %dx%d", ErrOddDimensions, c.Tag, cfg.Geometry.Width, cfg.Geometry.Height)
	}

	ffmpegPath, err := FindFFmpeg(e.opts.FFmpegPath)
	if err != nil {
		return err
	}
	ok, err := HasEncoder(ffmpegPath, c.Encoder)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s (needed for %s)", ErrEncoderUnavailable, c.Encoder, c.Tag)
	}

	// The temp file must share a volume with the output for the final rename
	tmpFile, err := os.CreateTemp(filepath.Dir(cfg.OutputPath), ".framereel-*"+codec.Container(cfg.OutputPath))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tmpFile.Name()
	tmpFile.Close()

	args := buildArgs(c, cfg, tempPath)
	if e.opts.Logger != nil {
		e.opts.Logger.Debug("Starting ffmpeg: %s", strings.Join(args, " "))
	}
	cmd := exec.Command(ffmpegPath, args...)
	e.stderr.Reset()
	cmd.Stderr = &e.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	e.cfg = cfg
	e.cmd = cmd
	e.stdin = stdin
	e.tempPath = tempPath
	e.frame = image.NewRGBA(image.Rect(0, 0, cfg.Geometry.Width, cfg.Geometry.Height))
	e.frameCount = 0
	return nil
}

// buildArgs assembles the ffmpeg command line for one session.
func buildArgs(c codec.Codec, cfg ports.StreamConfig, tempPath string) []string {
	fps := strconv.Itoa(cfg.FPS)
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", cfg.Geometry.Width, cfg.Geometry.Height),
		"-r", fps,
		"-i", "pipe:0",
		"-an",
		"-c:v", c.Encoder,
	}
	if tag := c.TagFor(cfg.OutputPath); tag != "" {
		args = append(args, "-tag:v", tag)
	}
	args = append(args,
		"-pix_fmt", c.PixelFormat,
		c.QualityFlag, strconv.Itoa(c.Quality(cfg.Options.Quality)),
		"-r", fps,
	)
	if container := codec.Container(cfg.OutputPath); container == ".mp4" || container == ".mov" {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, "-f", codec.Muxer(cfg.OutputPath), tempPath)
}

// AppendFrame writes img to ffmpeg as the next frame.
func (e *Encoder) AppendFrame(img image.Image) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotInitialized
	}

	bounds := img.Bounds()
	if bounds.Dx() != e.cfg.Geometry.Width || bounds.Dy() != e.cfg.Geometry.Height {
		return fmt.Errorf("%w: got %dx%d, stream is %dx%d", ErrFrameSize,
			bounds.Dx(), bounds.Dy(), e.cfg.Geometry.Width, e.cfg.Geometry.Height)
	}

	pix := tightRGBA(img)
	if pix == nil {
		draw.Draw(e.frame, e.frame.Bounds(), img, bounds.Min, draw.Src)
		pix = e.frame.Pix
	}

	if _, err := e.stdin.Write(pix); err != nil {
		// A broken pipe means ffmpeg has exited; its stderr says why.
		e.stdin.Close()
		e.stdin = nil
		if waitErr := e.cmd.Wait(); waitErr != nil {
			err = waitErr
		}
		e.cmd = nil
		failure := e.failure(err)
		e.abortLocked()
		return fmt.Errorf("failed to write frame %d: %w", e.frameCount, failure)
	}

	e.frameCount++
	return nil
}

// tightRGBA returns the pixel buffer of img when it is already laid out as
// packed RGBA rows, or nil when a conversion is needed.
func tightRGBA(img image.Image) []byte {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		return nil
	}
	b := rgba.Bounds()
	if rgba.Stride != 4*b.Dx() {
		return nil
	}
	start := rgba.PixOffset(b.Min.X, b.Min.Y)
	return rgba.Pix[start : start+rgba.Stride*b.Dy()]
}

// End closes ffmpeg's input, waits for it to finish and moves the file into place.
func (e *Encoder) End() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return ErrNotInitialized
	}
	if e.frameCount == 0 {
		e.abortLocked()
		return ErrNoFrames
	}

	e.stdin.Close()
	e.stdin = nil

	waitErr := e.cmd.Wait()
	e.cmd = nil
	if waitErr != nil {
		os.Remove(e.tempPath)
		e.tempPath = ""
		return e.failure(waitErr)
	}

	if err := os.Rename(e.tempPath, e.cfg.OutputPath); err != nil {
		os.Remove(e.tempPath)
		e.tempPath = ""
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	e.tempPath = ""
	e.frame = nil
	return nil
}

// failure wraps an ffmpeg exit error with the classified stderr.
func (e *Encoder) failure(err error) error {
	stderr := e.stderr.String()
	reason := classifyStderr(stderr)
	if reason == "" {
		reason = err.Error()
	}
	tail := lastLines(stderr, 5)
	if tail == "" {
		return fmt.Errorf("%w: %s", ErrEncodingFailed, reason)
	}
	return fmt.Errorf("%w: %s\nstderr: %s", ErrEncodingFailed, reason, tail)
}

// Abort stops ffmpeg and removes the partial output. It is a no-op when no
// session is open.
func (e *Encoder) Abort() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.abortLocked()
	return nil
}

func (e *Encoder) abortLocked() {
	if e.stdin != nil {
		e.stdin.Close()
		e.stdin = nil
	}

	if e.cmd != nil {
		if e.cmd.Process != nil {
			e.cmd.Process.Kill()
		}
		e.cmd.Wait()
		e.cmd = nil
	}

	if e.tempPath != "" {
		os.Remove(e.tempPath)
		e.tempPath = ""
	}
	e.frame = nil
}

// FrameCount returns the number of frames written in the current session.
func (e *Encoder) FrameCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameCount
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
