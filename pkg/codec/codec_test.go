package codec

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		tag     string
		want    string
		encoder string
	}{
		{"mp4v", "mp4v", "mpeg4"},
		{"MP4V", "mp4v", "mpeg4"},
		{"avc1", "avc1", "libx264"},
		{"H264", "avc1", "libx264"},
		{"XVID", "xvid", "mpeg4"},
		{"MJPG", "mjpg", "mjpeg"},
		{"hvc1", "hvc1", "libx265"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			c, err := Lookup(tt.tag)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", tt.tag, err)
			}
			if c.Tag != tt.want {
				t.Errorf("expected tag %q, got %q", tt.want, c.Tag)
			}
			if c.Encoder != tt.encoder {
				t.Errorf("expected encoder %q, got %q", tt.encoder, c.Encoder)
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("zzzz")
	if !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("expected ErrUnknownCodec, got %v", err)
	}
}

func TestCodec_CheckContainer(t *testing.T) {
	mp4v, _ := Lookup("mp4v")
	if err := mp4v.CheckContainer("out/demo.MP4"); err != nil {
		t.Errorf("expected mp4v to support .mp4, got %v", err)
	}
	if err := mp4v.CheckContainer("demo.webm"); !errors.Is(err, ErrUnsupportedContainer) {
		t.Errorf("expected ErrUnsupportedContainer for .webm, got %v", err)
	}

	xvid, _ := Lookup("xvid")
	if xvid.Supports("demo.mp4") {
		t.Error("expected xvid to reject .mp4")
	}
}

func TestCodec_TagFor(t *testing.T) {
	xvid, _ := Lookup("xvid")
	if got := xvid.TagFor("demo.avi"); got != "xvid" {
		t.Errorf("expected xvid tag for .avi, got %q", got)
	}
	if got := xvid.TagFor("demo.mkv"); got != "" {
		t.Errorf("expected no tag for .mkv, got %q", got)
	}

	mp4v, _ := Lookup("mp4v")
	if got := mp4v.TagFor("demo.mp4"); got != "" {
		t.Errorf("expected no forced tag for mp4v, got %q", got)
	}
}

func TestCodec_Quality(t *testing.T) {
	mp4v, _ := Lookup("mp4v")
	if got := mp4v.Quality(0); got != 5 {
		t.Errorf("expected default 5, got %d", got)
	}
	if got := mp4v.Quality(40); got != 31 {
		t.Errorf("expected clamp to 31, got %d", got)
	}
	if got := mp4v.Quality(12); got != 12 {
		t.Errorf("expected 12, got %d", got)
	}
}

func TestMuxer(t *testing.T) {
	tests := map[string]string{
		"a.mp4": "mp4",
		"a.MOV": "mov",
		"a.mkv": "matroska",
		"a.avi": "avi",
		"a.gif": "",
	}
	for path, want := range tests {
		if got := Muxer(path); got != want {
			t.Errorf("Muxer(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestTags(t *testing.T) {
	tags := Tags()
	for i := 1; i < len(tags); i++ {
		if tags[i-1] > tags[i] {
			t.Fatalf("expected sorted tags, got %v", tags)
		}
	}
	if len(tags) != len(registry) {
		t.Errorf("expected %d tags, got %d", len(registry), len(tags))
	}
}
