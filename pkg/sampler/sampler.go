// Package sampler writes numbered sequences of synthetic frames, used as
// demo and test input for the assembler.
package sampler

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framereel/pkg/ports"
)

// EncodeFunc serializes one rendered frame, e.g. as BMP.
type EncodeFunc func(img image.Image) ([]byte, error)

// Options configures a sample sequence.
type Options struct {
	Dir    string
	Count  int
	Width  int
	Height int
	Suffix string // File name suffix, defaults to ".bmp"
}

// Write renders opts.Count frames and writes them as frame_0000<suffix>,
// frame_0001<suffix> and so on. It returns the written paths in order.
func Write(fs ports.FileSystem, renderer ports.FrameRenderer, encode EncodeFunc, opts Options) ([]string, error) {
	if opts.Count <= 0 || opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("sample size must be positive: count=%d width=%d height=%d",
			opts.Count, opts.Width, opts.Height)
	}
	suffix := opts.Suffix
	if suffix == "" {
		suffix = ".bmp"
	}

	if err := fs.MkdirAll(opts.Dir); err != nil {
		return nil, fmt.Errorf("create sample directory: %w", err)
	}

	paths := make([]string, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		data, err := encode(renderer.RenderFrame(opts.Width, opts.Height, i, opts.Count))
		if err != nil {
			return paths, fmt.Errorf("encode sample frame %d: %w", i, err)
		}
		path := filepath.Join(opts.Dir, fmt.Sprintf("frame_%04d%s", i, suffix))
		if err := fs.WriteFile(path, data); err != nil {
			return paths, fmt.Errorf("write sample frame %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
