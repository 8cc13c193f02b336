// Package summarizer provides summary generation for assembly runs.
package summarizer

import "time"

// Summary contains all data collected during an assembly run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	Elapsed     time.Duration

	// Source frames
	Input InputInfo

	// Encoding settings
	Settings Settings

	// Video output details
	Video VideoInfo
}

// InputInfo describes the frame sequence that was assembled.
type InputInfo struct {
	Dir        string
	Suffix     string
	FrameCount int
	FirstFrame string
	LastFrame  string
}

// Settings contains the encoding configuration.
type Settings struct {
	Codec   string
	Backend string
	FPS     int
	Quality int // 0 = codec default
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	Path       string
	Width      int
	Height     int
	Channels   int
	FrameCount int
	Duration   time.Duration
	FileSize   int64

	// Values read back from the written file; zero when not probed
	ProbedCodec     string
	ProbedFrameRate float64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets the source directory and ordered frame list.
func (b *Builder) WithInput(dir, suffix string, frames []string) *Builder {
	info := InputInfo{
		Dir:        dir,
		Suffix:     suffix,
		FrameCount: len(frames),
	}
	if len(frames) > 0 {
		info.FirstFrame = frames[0]
		info.LastFrame = frames[len(frames)-1]
	}
	b.summary.Input = info
	return b
}

// WithSettings sets encoding settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// WithElapsed sets the wall-clock duration of the run.
func (b *Builder) WithElapsed(elapsed time.Duration) *Builder {
	b.summary.Elapsed = elapsed
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
