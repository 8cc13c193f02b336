// Package smartencoder selects an encoding backend for a codec tag and
// output container, falling back to the pure-Go writer where it can.
package smartencoder

import (
	"strings"

	"github.com/user/framereel/pkg/adapters/ffmpegencoder"
	"github.com/user/framereel/pkg/adapters/mjpegencoder"
	"github.com/user/framereel/pkg/codec"
	"github.com/user/framereel/pkg/ports"
)

// Backend represents the encoding backend used.
type Backend string

const (
	// BackendFFmpeg represents encoding through an ffmpeg child process.
	BackendFFmpeg Backend = "ffmpeg"
	// BackendMJPEG represents the built-in Motion-JPEG AVI writer.
	BackendMJPEG Backend = "mjpeg"
)

// Info contains information about the selected encoder.
type Info struct {
	// Codec is the requested codec tag, canonicalized when it is known.
	Codec string
	// Backend is the encoding backend being used.
	Backend Backend
	// FallbackUsed indicates that the preferred backend was unavailable.
	FallbackUsed bool
}

// Options configures the smart encoder behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// PreferFFmpeg routes MJPG through ffmpeg when it is available.
	PreferFFmpeg bool
	// Logger is used to log fallback warnings.
	Logger ports.Logger
}

// New creates a video encoder for the codec tag and output path.
//
// The selection flow:
//  1. MJPG into .avi uses the built-in MJPEG writer, unless PreferFFmpeg is
//     set and ffmpeg is available.
//  2. Everything else uses ffmpeg.
//
// Unknown tags are not rejected here; the returned encoder rejects them in Begin.
func New(tag, outputPath string, opts Options) (ports.VideoEncoder, Info) {
	info := Info{Codec: strings.ToLower(tag)}
	c, err := codec.Lookup(tag)
	if err == nil {
		info.Codec = c.Tag
	}

	if err == nil && c.Tag == "mjpg" && codec.Container(outputPath) == ".avi" {
		if !opts.PreferFFmpeg {
			info.Backend = BackendMJPEG
			return mjpegencoder.New(), info
		}
		if ffmpegencoder.IsAvailable(opts.FFmpegPath) {
			info.Backend = BackendFFmpeg
			return ffmpegencoder.New(ffmpegencoder.Options{FFmpegPath: opts.FFmpegPath, Logger: opts.Logger}), info
		}
		if opts.Logger != nil {
			opts.Logger.Warn("ffmpeg not available, falling back to the built-in MJPEG writer")
		}
		info.Backend = BackendMJPEG
		info.FallbackUsed = true
		return mjpegencoder.New(), info
	}

	info.Backend = BackendFFmpeg
	return ffmpegencoder.New(ffmpegencoder.Options{FFmpegPath: opts.FFmpegPath, Logger: opts.Logger}), info
}

// IsFFmpegAvailable checks if the ffmpeg backend can be used.
func IsFFmpegAvailable(customPath string) bool {
	return ffmpegencoder.IsAvailable(customPath)
}
