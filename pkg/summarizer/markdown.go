package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Assembly Summary\n\n")
	fmt.Fprintf(&b, "Generated at %s\n\n", s.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## Input\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	row(&b, "Directory", code(s.Input.Dir))
	row(&b, "Pattern", code("*"+s.Input.Suffix))
	row(&b, "Frames", fmt.Sprintf("%d", s.Input.FrameCount))
	if s.Input.FirstFrame != "" {
		row(&b, "First frame", code(s.Input.FirstFrame))
		row(&b, "Last frame", code(s.Input.LastFrame))
	}
	b.WriteString("\n")

	b.WriteString("## Settings\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	row(&b, "Codec", code(s.Settings.Codec))
	if s.Settings.Backend != "" {
		row(&b, "Backend", s.Settings.Backend)
	}
	row(&b, "Frame rate", fmt.Sprintf("%d fps", s.Settings.FPS))
	if s.Settings.Quality > 0 {
		row(&b, "Quality", fmt.Sprintf("%d", s.Settings.Quality))
	} else {
		row(&b, "Quality", "codec default")
	}
	b.WriteString("\n")

	b.WriteString("## Video\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	row(&b, "Output", code(s.Video.Path))
	row(&b, "Resolution", fmt.Sprintf("%dx%d", s.Video.Width, s.Video.Height))
	if s.Video.Channels > 0 {
		row(&b, "Source channels", fmt.Sprintf("%d", s.Video.Channels))
	}
	row(&b, "Frames", fmt.Sprintf("%d", s.Video.FrameCount))
	row(&b, "Duration", formatDuration(s.Video.Duration))
	if s.Video.FileSize > 0 {
		row(&b, "File size", formatBytes(s.Video.FileSize))
	}
	if s.Video.ProbedCodec != "" {
		row(&b, "Stream codec", code(s.Video.ProbedCodec))
	}
	if s.Video.ProbedFrameRate > 0 {
		row(&b, "Stream frame rate", fmt.Sprintf("%.2f fps", s.Video.ProbedFrameRate))
	}

	if s.Elapsed > 0 {
		fmt.Fprintf(&b, "\nAssembled in %s.\n", formatDuration(s.Elapsed))
	}

	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}

func code(s string) string {
	return "`" + s + "`"
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2f s", d.Seconds())
}

func formatBytes(n int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case n >= mb:
		return fmt.Sprintf("%.2f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.2f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)
