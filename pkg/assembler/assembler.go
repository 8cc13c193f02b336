// Package assembler turns a directory of still frames into one video stream.
//
// A run enumerates the frames, orders them by file name, takes the stream
// geometry from the first frame, appends every frame in order and finalizes
// the output. Any failure ends the run and leaves no file at the output path.
package assembler

import (
	"context"
	"fmt"
	"time"

	"github.com/user/framereel/pkg/ports"
)

// Job describes one assembly run.
type Job struct {
	SourceDir  string
	OutputPath string
	FPS        int
	Codec      string // Four-character codec tag
	Suffix     string // File name suffix that selects frames, e.g. ".bmp"
	Options    ports.EncoderOptions
}

// Result describes a finished run.
type Result struct {
	OutputPath string
	Frames     FrameList
	Geometry   ports.Geometry
	FPS        int
	Codec      string
	Duration   time.Duration // Playback length of the video
	Elapsed    time.Duration // Wall-clock time spent assembling
}

// FrameCount returns the number of frames written.
func (r Result) FrameCount() int {
	return len(r.Frames)
}

// Assembler runs jobs against its collaborators. It is not safe for
// concurrent use; the encoder holds one session at a time.
type Assembler struct {
	fs      ports.FileSystem
	decoder ports.FrameDecoder
	encoder ports.VideoEncoder
	logger  ports.Logger
}

// New creates a new Assembler.
func New(fs ports.FileSystem, decoder ports.FrameDecoder, encoder ports.VideoEncoder, logger ports.Logger) *Assembler {
	return &Assembler{
		fs:      fs,
		decoder: decoder,
		encoder: encoder,
		logger:  logger.WithComponent("assembler"),
	}
}

// Run assembles the frames of job.SourceDir into job.OutputPath.
func (a *Assembler) Run(ctx context.Context, job Job) (Result, error) {
	started := time.Now()

	// 1. Enumerate and order
	a.logger.Info("Scanning %s for *%s frames", job.SourceDir, job.Suffix)
	frames, err := Enumerate(a.fs, job.SourceDir, job.Suffix)
	if err != nil {
		return Result{}, err
	}
	a.logger.Info("Found %d frames in %s", len(frames), job.SourceDir)

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("assembly interrupted: %w", err)
	}

	// 2. Geometry from the first frame
	first, err := a.decode(frames[0], 0)
	if err != nil {
		return Result{}, err
	}
	geometry := first.Geometry
	a.logger.Info("Frame geometry: %dx%d, %d channels", geometry.Width, geometry.Height, geometry.Channels)

	// 3. Open the output stream
	cfg := ports.StreamConfig{
		OutputPath: job.OutputPath,
		Codec:      job.Codec,
		FPS:        job.FPS,
		Geometry:   geometry,
		Options:    job.Options,
	}
	if err := a.encoder.Begin(cfg); err != nil {
		a.logger.Debug("Failed to open output stream: %s", err)
		return Result{}, &StreamOpenError{Path: job.OutputPath, Codec: job.Codec, Err: err}
	}

	// The session is released exactly once: by End, or by Abort on any earlier return
	released := false
	defer func() {
		if !released {
			a.encoder.Abort()
		}
	}()

	// 4. Append every frame in order
	a.logger.Info("Encoding %d frames at %d fps with codec %s", len(frames), job.FPS, job.Codec)
	for i, path := range frames {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("assembly interrupted at frame %d: %w", i, err)
		}

		frame := first
		if i > 0 {
			frame, err = a.decode(path, i)
			if err != nil {
				return Result{}, err
			}
			if frame.Geometry != geometry {
				err := &FrameDecodeError{
					Path:  path,
					Index: i,
					Err:   fmt.Errorf("%w: got %s, want %s", ErrGeometryMismatch, frame.Geometry, geometry),
				}
				a.logger.Debug("Failed to decode frame %s: %s", path, err.Err)
				return Result{}, err
			}
		}

		a.logger.Debug("Appending frame %d/%d: %s", i+1, len(frames), path)
		if err := a.encoder.AppendFrame(frame.Image); err != nil {
			a.logger.Debug("Failed to encode frame %s: %s", path, err)
			return Result{}, &FrameEncodeError{Path: path, Index: i, Err: err}
		}
		// Drop the cached first frame once written
		first = ports.Frame{}
	}

	// 5. Finalize
	a.logger.Debug("Finalizing %s", job.OutputPath)
	released = true
	if err := a.encoder.End(); err != nil {
		a.logger.Debug("Failed to finalize %s: %s", job.OutputPath, err)
		return Result{}, &FrameEncodeError{Path: job.OutputPath, Index: FinalizeIndex, Err: err}
	}

	return Result{
		OutputPath: job.OutputPath,
		Frames:     frames,
		Geometry:   geometry,
		FPS:        job.FPS,
		Codec:      job.Codec,
		Duration:   playbackDuration(len(frames), job.FPS),
		Elapsed:    time.Since(started),
	}, nil
}

// decode reads and decodes the frame at path.
func (a *Assembler) decode(path string, index int) (ports.Frame, error) {
	data, err := a.fs.ReadFile(path)
	if err != nil {
		a.logger.Debug("Failed to decode frame %s: %s", path, err)
		return ports.Frame{}, &FrameDecodeError{Path: path, Index: index, Err: err}
	}

	frame, err := a.decoder.Decode(data)
	if err != nil {
		a.logger.Debug("Failed to decode frame %s: %s", path, err)
		return ports.Frame{}, &FrameDecodeError{Path: path, Index: index, Err: err}
	}
	return frame, nil
}

func playbackDuration(frames, fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(fps)
}
