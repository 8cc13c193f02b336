package assembler_test

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/framereel/pkg/adapters/ffmpegencoder"
	"github.com/user/framereel/pkg/adapters/ggrenderer"
	"github.com/user/framereel/pkg/adapters/imagedecoder"
	"github.com/user/framereel/pkg/adapters/logger"
	"github.com/user/framereel/pkg/adapters/mjpegencoder"
	"github.com/user/framereel/pkg/adapters/mp4probe"
	"github.com/user/framereel/pkg/adapters/osfilesystem"
	"github.com/user/framereel/pkg/assembler"
	"github.com/user/framereel/pkg/ports"
	"github.com/user/framereel/pkg/sampler"
)

// writeFrames renders count numbered BMP frames into dir.
func writeFrames(t *testing.T, dir string, count, width, height int) {
	t.Helper()
	opts := sampler.Options{Dir: dir, Count: count, Width: width, Height: height}
	if _, err := sampler.Write(osfilesystem.New(), ggrenderer.New(), ggrenderer.EncodeBMP, opts); err != nil {
		t.Fatal(err)
	}
}

func TestAssembleMJPEG(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	if err := os.Mkdir(images, 0755); err != nil {
		t.Fatal(err)
	}
	writeFrames(t, images, 6, 48, 32)
	output := filepath.Join(dir, "demo.avi")

	a := assembler.New(osfilesystem.New(), imagedecoder.New(), mjpegencoder.New(), logger.NewNoop())
	result, err := a.Run(context.Background(), assembler.Job{
		SourceDir:  images,
		OutputPath: output,
		FPS:        12,
		Codec:      "MJPG",
		Suffix:     ".bmp",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.FrameCount() != 6 {
		t.Errorf("expected 6 frames, got %d", result.FrameCount())
	}
	if result.Geometry != (ports.Geometry{Width: 48, Height: 32, Channels: 3}) {
		t.Errorf("unexpected geometry %s", result.Geometry)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Fatal("expected RIFF AVI output")
	}
	// avih: dwMicroSecPerFrame at +8, dwTotalFrames at +24
	avih := 12 + 12
	if string(data[avih:avih+4]) != "avih" {
		t.Fatalf("expected avih at offset %d", avih)
	}
	if us := binary.LittleEndian.Uint32(data[avih+8:]); us != 1000000/12 {
		t.Errorf("expected %d us per frame, got %d", 1000000/12, us)
	}
	if n := binary.LittleEndian.Uint32(data[avih+24:]); n != 6 {
		t.Errorf("expected 6 frames in header, got %d", n)
	}
}

func TestAssembleFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	if err := os.Mkdir(images, 0755); err != nil {
		t.Fatal(err)
	}
	writeFrames(t, images, 3, 32, 32)
	// A trailing frame with different geometry fails the run after frames were written
	data, err := ggrenderer.EncodeBMP(image.NewRGBA(image.Rect(0, 0, 16, 16)))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(images, "frame_9999.bmp"), data, 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "demo.avi")

	a := assembler.New(osfilesystem.New(), imagedecoder.New(), mjpegencoder.New(), logger.NewNoop())
	_, err = a.Run(context.Background(), assembler.Job{
		SourceDir:  images,
		OutputPath: output,
		FPS:        30,
		Codec:      "mjpg",
		Suffix:     ".bmp",
	})

	if !errors.Is(err, assembler.ErrGeometryMismatch) {
		t.Fatalf("expected ErrGeometryMismatch, got %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "images" {
			t.Errorf("unexpected file left behind: %s", e.Name())
		}
	}
}

func TestAssembleEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "demo.mp4")

	a := assembler.New(osfilesystem.New(), imagedecoder.New(), ffmpegencoder.New(ffmpegencoder.Options{}), logger.NewNoop())
	_, err := a.Run(context.Background(), assembler.Job{
		SourceDir:  dir,
		OutputPath: output,
		FPS:        30,
		Codec:      "mp4v",
		Suffix:     ".bmp",
	})

	var empty *assembler.EmptyInputError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyInputError, got %v", err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("no output may be created for an empty input")
	}
}

func TestAssembleMP4(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping ffmpeg test in short mode")
	}
	if !ffmpegencoder.IsAvailable("") {
		t.Skip("ffmpeg not available")
	}

	dir := t.TempDir()
	images := filepath.Join(dir, "images")
	if err := os.Mkdir(images, 0755); err != nil {
		t.Fatal(err)
	}

	// Two solid frames, red then blue
	for i, c := range []color.RGBA{{255, 0, 0, 255}, {0, 0, 255, 255}} {
		img := image.NewRGBA(image.Rect(0, 0, 64, 48))
		for p := 0; p < len(img.Pix); p += 4 {
			img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3] = c.R, c.G, c.B, c.A
		}
		data, err := ggrenderer.EncodeBMP(img)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(images, fmt.Sprintf("frame_%03d.bmp", i)), data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	output := filepath.Join(dir, "demo.mp4")

	a := assembler.New(osfilesystem.New(), imagedecoder.New(), ffmpegencoder.New(ffmpegencoder.Options{}), logger.NewNoop())
	if _, err := a.Run(context.Background(), assembler.Job{
		SourceDir:  images,
		OutputPath: output,
		FPS:        30,
		Codec:      "mp4v",
		Suffix:     ".bmp",
	}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	info, err := mp4probe.ProbeFile(output)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if info.SampleCount != 2 {
		t.Errorf("expected 2 frames, got %d", info.SampleCount)
	}
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("expected 64x48, got %dx%d", info.Width, info.Height)
	}
	if math.Abs(info.FrameRate-30) > 0.01 {
		t.Errorf("expected 30 fps, got %.3f", info.FrameRate)
	}
	if info.Codec != "mp4v" {
		t.Errorf("expected mp4v, got %s", info.Codec)
	}
}
