// Package codec maps four-character codec tags to encoder settings and the
// containers each codec can be muxed into.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrUnknownCodec is returned for a codec tag with no registry entry.
	ErrUnknownCodec = errors.New("codec: unknown codec tag")

	// ErrUnsupportedContainer is returned when a codec cannot be muxed into the output container.
	ErrUnsupportedContainer = errors.New("codec: container not supported for codec")
)

// Codec describes how one codec tag is encoded.
type Codec struct {
	Tag            string   // Canonical lower-case tag
	Encoder        string   // ffmpeg encoder name
	PixelFormat    string   // Output pixel format
	StreamTag      string   // Value for -tag:v, applied only to TagContainers
	TagContainers  []string // Containers that accept StreamTag
	Containers     []string // Supported output extensions, with leading dot
	QualityFlag    string   // "-q:v" (1-31) or "-crf" (0-51)
	DefaultQuality int
	MaxQuality     int
	EvenDimensions bool // Chroma subsampling requires even width and height
}

var registry = map[string]Codec{
	"mp4v": {
		Tag:            "mp4v",
		Encoder:        "mpeg4",
		PixelFormat:    "yuv420p",
		Containers:     []string{".mp4", ".mov", ".mkv", ".avi"},
		QualityFlag:    "-q:v",
		DefaultQuality: 5,
		MaxQuality:     31,
	},
	"xvid": {
		Tag:            "xvid",
		Encoder:        "mpeg4",
		PixelFormat:    "yuv420p",
		StreamTag:      "xvid",
		TagContainers:  []string{".avi"},
		Containers:     []string{".avi", ".mkv"},
		QualityFlag:    "-q:v",
		DefaultQuality: 5,
		MaxQuality:     31,
	},
	"avc1": {
		Tag:            "avc1",
		Encoder:        "libx264",
		PixelFormat:    "yuv420p",
		Containers:     []string{".mp4", ".mov", ".mkv", ".avi"},
		QualityFlag:    "-crf",
		DefaultQuality: 23,
		MaxQuality:     51,
		EvenDimensions: true,
	},
	"hvc1": {
		Tag:            "hvc1",
		Encoder:        "libx265",
		PixelFormat:    "yuv420p",
		StreamTag:      "hvc1",
		TagContainers:  []string{".mp4", ".mov"},
		Containers:     []string{".mp4", ".mov", ".mkv"},
		QualityFlag:    "-crf",
		DefaultQuality: 28,
		MaxQuality:     51,
		EvenDimensions: true,
	},
	"hev1": {
		Tag:            "hev1",
		Encoder:        "libx265",
		PixelFormat:    "yuv420p",
		StreamTag:      "hev1",
		TagContainers:  []string{".mp4", ".mov"},
		Containers:     []string{".mp4", ".mov", ".mkv"},
		QualityFlag:    "-crf",
		DefaultQuality: 28,
		MaxQuality:     51,
		EvenDimensions: true,
	},
	"mjpg": {
		Tag:            "mjpg",
		Encoder:        "mjpeg",
		PixelFormat:    "yuvj420p",
		Containers:     []string{".avi", ".mov", ".mkv"},
		QualityFlag:    "-q:v",
		DefaultQuality: 3,
		MaxQuality:     31,
	},
}

// aliases accepted on the command line in addition to the registry keys.
var aliases = map[string]string{
	"h264": "avc1",
	"x264": "avc1",
	"fmp4": "mp4v",
	"divx": "xvid",
}

// Lookup returns the codec for a tag. Tags are case-insensitive.
func Lookup(tag string) (Codec, error) {
	key := strings.ToLower(strings.TrimSpace(tag))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	c, ok := registry[key]
	if !ok {
		return Codec{}, fmt.Errorf("%w: %q", ErrUnknownCodec, tag)
	}
	return c, nil
}

// Tags returns the registered canonical tags in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Supports reports whether the codec can be written to a file with the given path.
func (c Codec) Supports(path string) bool {
	return contains(c.Containers, Container(path))
}

// CheckContainer returns ErrUnsupportedContainer when the codec cannot be written to path.
func (c Codec) CheckContainer(path string) error {
	if !c.Supports(path) {
		return fmt.Errorf("%w: %s cannot be written to %q (supported: %s)",
			ErrUnsupportedContainer, c.Tag, Container(path), strings.Join(c.Containers, ", "))
	}
	return nil
}

// TagFor returns the stream tag to force for the container of path, or "".
func (c Codec) TagFor(path string) string {
	if c.StreamTag == "" || !contains(c.TagContainers, Container(path)) {
		return ""
	}
	return c.StreamTag
}

// Quality clamps q to the codec scale, substituting the default for q <= 0.
func (c Codec) Quality(q int) int {
	if q <= 0 {
		return c.DefaultQuality
	}
	if q > c.MaxQuality {
		return c.MaxQuality
	}
	return q
}

// Container returns the lower-case extension of path, with leading dot.
func Container(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Muxer returns the ffmpeg muxer name for the container of path.
func Muxer(path string) string {
	switch Container(path) {
	case ".mp4":
		return "mp4"
	case ".mov":
		return "mov"
	case ".mkv":
		return "matroska"
	case ".avi":
		return "avi"
	default:
		return ""
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
