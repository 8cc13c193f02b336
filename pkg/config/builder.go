package config

// Builder provides a fluent interface for overriding a Config.
type Builder struct {
	config Config
}

// NewBuilder creates a Builder starting from base.
func NewBuilder(base Config) *Builder {
	return &Builder{config: base}
}

// Build validates and returns the final Config.
func (b *Builder) Build() (Config, error) {
	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WithInput sets the source frame directory.
func (b *Builder) WithInput(dir string) *Builder {
	b.config.Input = dir
	return b
}

// WithOutput sets the output video path.
func (b *Builder) WithOutput(path string) *Builder {
	b.config.Output = path
	return b
}

// WithSuffix sets the file name suffix that selects frames.
func (b *Builder) WithSuffix(suffix string) *Builder {
	b.config.Suffix = suffix
	return b
}

// WithFPS sets the output frame rate.
func (b *Builder) WithFPS(fps int) *Builder {
	b.config.FPS = fps
	return b
}

// WithCodec sets the four-character codec tag.
func (b *Builder) WithCodec(tag string) *Builder {
	b.config.Codec = tag
	return b
}

// WithQuality sets the codec-scale quality (0 selects the codec default).
func (b *Builder) WithQuality(quality int) *Builder {
	b.config.Quality = quality
	return b
}

// WithFFmpegPath sets a custom ffmpeg binary.
func (b *Builder) WithFFmpegPath(path string) *Builder {
	b.config.FFmpegPath = path
	return b
}

// WithPreferFFmpeg routes MJPG output through ffmpeg when available.
func (b *Builder) WithPreferFFmpeg(prefer bool) *Builder {
	b.config.PreferFFmpeg = prefer
	return b
}

// WithSummaryPath sets where the Markdown run summary is written.
func (b *Builder) WithSummaryPath(path string) *Builder {
	b.config.SummaryPath = path
	return b
}

// WithLogLevel sets the log level name.
func (b *Builder) WithLogLevel(level string) *Builder {
	b.config.LogLevel = level
	return b
}

// WithQuiet suppresses all log output.
func (b *Builder) WithQuiet(quiet bool) *Builder {
	b.config.Quiet = quiet
	return b
}
