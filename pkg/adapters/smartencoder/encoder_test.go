package smartencoder

import (
	"path/filepath"
	"testing"

	"github.com/user/framereel/pkg/adapters/ffmpegencoder"
	"github.com/user/framereel/pkg/adapters/mjpegencoder"
	"github.com/user/framereel/pkg/ports"
)

// recordingLogger captures warnings.
type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(msg string, args ...interface{}) {}
func (l *recordingLogger) Info(msg string, args ...interface{})  {}
func (l *recordingLogger) Warn(msg string, args ...interface{}) {
	l.warnings = append(l.warnings, msg)
}
func (l *recordingLogger) Error(msg string, args ...interface{})       {}
func (l *recordingLogger) WithComponent(component string) ports.Logger { return l }

func TestNewMJPEGForAVI(t *testing.T) {
	encoder, info := New("MJPG", "demo.avi", Options{})
	if _, ok := encoder.(*mjpegencoder.Encoder); !ok {
		t.Fatalf("expected mjpeg encoder, got %T", encoder)
	}
	if info.Backend != BackendMJPEG {
		t.Errorf("expected backend mjpeg, got %s", info.Backend)
	}
	if info.Codec != "mjpg" {
		t.Errorf("expected codec mjpg, got %s", info.Codec)
	}
	if info.FallbackUsed {
		t.Error("fallback should not be used")
	}
}

func TestNewFFmpegForOtherCodecs(t *testing.T) {
	tests := []struct {
		tag  string
		path string
		want string
	}{
		{"mp4v", "demo.mp4", "mp4v"},
		{"h264", "demo.mkv", "avc1"},
		{"mjpg", "demo.mov", "mjpg"},
		{"zzzz", "demo.mp4", "zzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			encoder, info := New(tt.tag, tt.path, Options{})
			if _, ok := encoder.(*ffmpegencoder.Encoder); !ok {
				t.Fatalf("expected ffmpeg encoder, got %T", encoder)
			}
			if info.Backend != BackendFFmpeg {
				t.Errorf("expected backend ffmpeg, got %s", info.Backend)
			}
			if info.Codec != tt.want {
				t.Errorf("expected codec %s, got %s", tt.want, info.Codec)
			}
		})
	}
}

func TestPreferFFmpegFallsBack(t *testing.T) {
	log := &recordingLogger{}
	missing := filepath.Join(t.TempDir(), "no-ffmpeg")

	encoder, info := New("mjpg", "demo.avi", Options{
		FFmpegPath:   missing,
		PreferFFmpeg: true,
		Logger:       log,
	})

	if _, ok := encoder.(*mjpegencoder.Encoder); !ok {
		t.Fatalf("expected mjpeg fallback, got %T", encoder)
	}
	if !info.FallbackUsed {
		t.Error("expected FallbackUsed")
	}
	if len(log.warnings) != 1 {
		t.Errorf("expected one fallback warning, got %v", log.warnings)
	}
}

func TestAvailabilityChecks(t *testing.T) {
	t.Logf("ffmpeg available: %v", IsFFmpegAvailable(""))
}
