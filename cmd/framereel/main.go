// Package main provides the CLI entry point for framereel.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framereel/pkg/adapters/ggrenderer"
	"github.com/user/framereel/pkg/adapters/imagedecoder"
	"github.com/user/framereel/pkg/adapters/logger"
	"github.com/user/framereel/pkg/adapters/mp4probe"
	"github.com/user/framereel/pkg/adapters/osfilesystem"
	"github.com/user/framereel/pkg/adapters/smartencoder"
	"github.com/user/framereel/pkg/assembler"
	"github.com/user/framereel/pkg/codec"
	"github.com/user/framereel/pkg/config"
	"github.com/user/framereel/pkg/ports"
	"github.com/user/framereel/pkg/sampler"
	"github.com/user/framereel/pkg/summarizer"
)

var version = "dev"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

// newApp builds the command tree. Output goes to stdout and stderr so tests
// can capture it.
func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "framereel",
		Usage:     l10n.T("Assemble a directory of still frames into a video"),
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     assembleFlags(),
		Action:    runAssemble,
		Commands: []*cli.Command{
			{
				Name:        "assemble",
				Usage:       l10n.T("Encode the frames of a directory as a video (default)"),
				Description: l10n.T("Frames are ordered by file name. The first frame sets the video size."),
				Flags:       assembleFlags(),
				Action:      runAssemble,
			},
			{
				Name:      "inspect",
				Usage:     l10n.T("Show the video track of an MP4 or MOV file"),
				ArgsUsage: "<file.mp4>",
				Action:    runInspect,
			},
			{
				Name:   "sample",
				Usage:  l10n.T("Write a numbered sequence of synthetic BMP frames"),
				Flags:  sampleFlags(),
				Action: runSample,
			},
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("framereel version %s", version))
					return nil
				},
			},
		},
	}
}

func assembleFlags() []cli.Flag {
	defaults := config.Defaults()
	return []cli.Flag{
		// Input/Output
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Value:    defaults.Input,
			Usage:    l10n.T("Directory containing the frames"),
			Category: l10n.T("Input/Output"),
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Value:    defaults.Output,
			Usage:    l10n.T("Output video file path"),
			Category: l10n.T("Input/Output"),
		},
		&cli.StringFlag{
			Name:     "ext",
			Aliases:  []string{"e"},
			Value:    defaults.Suffix,
			Usage:    l10n.T("File name suffix that selects frames (case-sensitive)"),
			Category: l10n.T("Input/Output"),
		},

		// Encoding
		&cli.IntFlag{
			Name:     "fps",
			Aliases:  []string{"r"},
			Value:    defaults.FPS,
			Usage:    l10n.T("Frames per second"),
			Category: l10n.T("Video and Quality"),
		},
		&cli.StringFlag{
			Name:     "codec",
			Aliases:  []string{"c"},
			Value:    defaults.Codec,
			Usage:    l10n.F("Four-character codec tag (%s)", strings.Join(codec.Tags(), ", ")),
			Category: l10n.T("Video and Quality"),
		},
		&cli.IntFlag{
			Name:     "quality",
			Aliases:  []string{"q"},
			Usage:    l10n.T("Encoder quality (0 = codec default, lower is better)"),
			Category: l10n.T("Video and Quality"),
		},
		&cli.StringFlag{
			Name:     "ffmpeg-path",
			Usage:    l10n.T("Path to the ffmpeg executable (falls back to FFMPEG_PATH, then PATH)"),
			Category: l10n.T("Video and Quality"),
		},
		&cli.BoolFlag{
			Name:     "prefer-ffmpeg",
			Usage:    l10n.T("Encode MJPG through ffmpeg when it is available"),
			Category: l10n.T("Video and Quality"),
		},

		// Configuration
		&cli.StringFlag{
			Name:     "config",
			Usage:    l10n.T("YAML configuration file"),
			EnvVars:  []string{config.EnvPrefix + "CONFIG"},
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Output execution summary to file (Markdown format)"),
			Category: l10n.T("Configuration"),
		},

		// Logging
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Value:    defaults.LogLevel,
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
	}
}

func sampleFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "dir", Value: "images", Usage: l10n.T("Directory to write the frames to")},
		&cli.IntFlag{Name: "count", Value: 60, Usage: l10n.T("Number of frames")},
		&cli.IntFlag{Name: "width", Value: 320, Usage: l10n.T("Frame width in pixels")},
		&cli.IntFlag{Name: "height", Value: 240, Usage: l10n.T("Frame height in pixels")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
	}
}

// resolveConfig layers defaults, the YAML file, the environment and the
// flags that were given explicitly.
func resolveConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	builder := config.NewBuilder(cfg)
	if c.IsSet("input") {
		builder.WithInput(c.String("input"))
	}
	if c.IsSet("output") {
		builder.WithOutput(c.String("output"))
	}
	if c.IsSet("ext") {
		builder.WithSuffix(c.String("ext"))
	}
	if c.IsSet("fps") {
		builder.WithFPS(c.Int("fps"))
	}
	if c.IsSet("codec") {
		builder.WithCodec(c.String("codec"))
	}
	if c.IsSet("quality") {
		builder.WithQuality(c.Int("quality"))
	}
	if c.IsSet("ffmpeg-path") {
		builder.WithFFmpegPath(c.String("ffmpeg-path"))
	}
	if c.IsSet("prefer-ffmpeg") {
		builder.WithPreferFFmpeg(c.Bool("prefer-ffmpeg"))
	}
	if c.IsSet("summary") {
		builder.WithSummaryPath(c.String("summary"))
	}
	if c.IsSet("log-level") {
		builder.WithLogLevel(c.String("log-level"))
	}
	if c.IsSet("quiet") {
		builder.WithQuiet(c.Bool("quiet"))
	}
	return builder.Build()
}

// newLogger creates the logger for a command. The colored console logger is
// used only when writing to the process streams.
func newLogger(c *cli.Context, level ports.LogLevel) ports.Logger {
	if level == ports.LevelQuiet {
		return logger.NewNoop()
	}
	if c.App.Writer == os.Stdout && c.App.ErrWriter == os.Stderr {
		return logger.NewConsole(level)
	}
	return logger.NewWriter(level, c.App.Writer, c.App.ErrWriter)
}

// runAssemble executes the assemble command.
func runAssemble(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", c.Args().First())
	}

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg.Level())

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	encoder, info := smartencoder.New(cfg.Codec, cfg.Output, smartencoder.Options{
		FFmpegPath:   cfg.FFmpegPath,
		PreferFFmpeg: cfg.PreferFFmpeg,
		Logger:       log,
	})
	log.Info("Using %s encoder backend", info.Backend)

	asm := assembler.New(fs, imagedecoder.New(), encoder, log)
	result, err := asm.Run(ctx, cfg.ToJob())
	if err != nil {
		return err
	}
	// Reported at every log level; only quiet silences it.
	if cfg.Level() != ports.LevelQuiet {
		fmt.Fprintln(c.App.Writer, l10n.F("Video created successfully: %s", result.OutputPath))
	}

	if cfg.SummaryPath != "" {
		summary := buildSummary(cfg, info, result)
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs)
		if err := writer.Write(cfg.SummaryPath, summary); err != nil {
			log.Warn("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", cfg.SummaryPath)
		}
	}
	return nil
}

// buildSummary collects the run data for the Markdown summary. Stream
// properties are read back from MP4 and MOV outputs.
func buildSummary(cfg config.Config, info smartencoder.Info, result assembler.Result) *summarizer.Summary {
	video := summarizer.VideoInfo{
		Path:       result.OutputPath,
		Width:      result.Geometry.Width,
		Height:     result.Geometry.Height,
		Channels:   result.Geometry.Channels,
		FrameCount: result.FrameCount(),
		Duration:   result.Duration,
	}
	if st, err := os.Stat(result.OutputPath); err == nil {
		video.FileSize = st.Size()
	}
	switch codec.Container(result.OutputPath) {
	case ".mp4", ".mov":
		if probed, err := mp4probe.ProbeFile(result.OutputPath); err == nil {
			video.ProbedCodec = probed.Codec
			video.ProbedFrameRate = probed.FrameRate
		}
	}

	return summarizer.NewBuilder().
		WithInput(cfg.Input, cfg.Suffix, result.Frames).
		WithSettings(summarizer.Settings{
			Codec:   info.Codec,
			Backend: string(info.Backend),
			FPS:     result.FPS,
			Quality: cfg.Quality,
		}).
		WithVideo(video).
		WithElapsed(result.Elapsed).
		Build()
}

// runInspect executes the inspect command.
func runInspect(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(l10n.T("exactly one video file argument is required"))
	}
	path := c.Args().First()

	info, err := mp4probe.ProbeFile(path)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", path, err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  %-12s %s\n", l10n.T("Codec"), info.Codec)
	fmt.Fprintf(w, "  %-12s %dx%d\n", l10n.T("Size"), info.Width, info.Height)
	fmt.Fprintf(w, "  %-12s %d\n", l10n.T("Frames"), info.SampleCount)
	fmt.Fprintf(w, "  %-12s %.2f fps\n", l10n.T("Frame rate"), info.FrameRate)
	fmt.Fprintf(w, "  %-12s %s\n", l10n.T("Duration"), info.Duration)
	if info.Fragmented {
		fmt.Fprintf(w, "  %-12s %s\n", l10n.T("Layout"), l10n.T("fragmented"))
	}
	return nil
}

// runSample executes the sample command.
func runSample(c *cli.Context) error {
	level := ports.LevelInfo
	if c.Bool("quiet") {
		level = ports.LevelQuiet
	}
	log := newLogger(c, level)

	opts := sampler.Options{
		Dir:    c.String("dir"),
		Count:  c.Int("count"),
		Width:  c.Int("width"),
		Height: c.Int("height"),
	}
	paths, err := sampler.Write(osfilesystem.New(), ggrenderer.New(), ggrenderer.EncodeBMP, opts)
	if err != nil {
		return err
	}

	log.Info("Wrote %d sample frames to %s", len(paths), opts.Dir)
	return nil
}
