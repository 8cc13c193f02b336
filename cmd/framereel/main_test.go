package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/user/framereel/pkg/assembler"
)

// run executes the CLI in-process and returns its output.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	err := app.Run(append([]string{"framereel"}, args...))
	return stdout.String(), stderr.String(), err
}

// writeSamples renders count frames into a new directory.
func writeSamples(t *testing.T, count int) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "frames")
	if _, _, err := run(t, "sample", "--dir", dir, "--count", strconv.Itoa(count), "--width", "32", "--height", "24", "-Q"); err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	return dir
}

func TestSampleCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")

	stdout, _, err := run(t, "sample", "--dir", dir, "--count", "5", "--width", "40", "--height", "30")
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read sample dir: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(entries))
	}
	if entries[0].Name() != "frame_0000.bmp" || entries[4].Name() != "frame_0004.bmp" {
		t.Errorf("unexpected frame names: %s .. %s", entries[0].Name(), entries[4].Name())
	}
	if !strings.Contains(stdout, dir) {
		t.Errorf("expected stdout to mention %s, got %q", dir, stdout)
	}
}

func TestSampleRejectsZeroCount(t *testing.T) {
	_, _, err := run(t, "sample", "--dir", t.TempDir(), "--count", "0")
	if err == nil {
		t.Fatal("expected error for zero count")
	}
}

func TestAssembleMJPEG(t *testing.T) {
	frames := writeSamples(t, 4)
	out := filepath.Join(t.TempDir(), "out.avi")
	summary := filepath.Join(t.TempDir(), "report", "summary.md")

	stdout, stderr, err := run(t, "assemble", "-i", frames, "-o", out, "-c", "MJPG", "-r", "8", "--summary", summary)
	if err != nil {
		t.Fatalf("assemble failed: %v\nstderr: %s", err, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Error("output is not an AVI file")
	}
	if !strings.Contains(stdout, out) {
		t.Errorf("expected completion message naming %s, got %q", out, stdout)
	}

	report, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	for _, want := range []string{"`mjpg`", "mjpeg", "8 fps", "32x24", "| Frames | 4 |"} {
		if !strings.Contains(string(report), want) {
			t.Errorf("expected summary to contain %q", want)
		}
	}
}

func TestAssembleDefaultAction(t *testing.T) {
	frames := writeSamples(t, 2)
	out := filepath.Join(t.TempDir(), "out.avi")

	if _, stderr, err := run(t, "-i", frames, "-o", out, "-c", "MJPG"); err != nil {
		t.Fatalf("assemble failed: %v\nstderr: %s", err, stderr)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestAssembleQuiet(t *testing.T) {
	frames := writeSamples(t, 2)
	out := filepath.Join(t.TempDir(), "out.avi")

	stdout, stderr, err := run(t, "assemble", "-i", frames, "-o", out, "-c", "MJPG", "-Q")
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output, got stdout %q stderr %q", stdout, stderr)
	}
}

func TestAssembleReportsAtErrorLogLevel(t *testing.T) {
	frames := writeSamples(t, 2)
	out := filepath.Join(t.TempDir(), "out.avi")

	stdout, stderr, err := run(t, "assemble", "-i", frames, "-o", out, "-c", "MJPG", "-l", "error")
	if err != nil {
		t.Fatalf("assemble failed: %v\nstderr: %s", err, stderr)
	}
	if strings.Count(stdout, "\n") != 1 || !strings.Contains(stdout, out) {
		t.Errorf("expected only the completion message naming %s, got %q", out, stdout)
	}
}

func TestAssembleFailureReturnsErrorOnly(t *testing.T) {
	frames := writeSamples(t, 2)
	if err := os.WriteFile(filepath.Join(frames, "frame_0002.bmp"), []byte("not a bitmap"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out.avi")

	stdout, stderr, err := run(t, "assemble", "-i", frames, "-o", out, "-c", "MJPG")

	var decodeErr *assembler.FrameDecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected FrameDecodeError, got %v", err)
	}
	if stderr != "" {
		t.Errorf("expected the error to be printed once by main, got stderr %q", stderr)
	}
	if strings.Contains(stdout, "successfully") {
		t.Errorf("unexpected completion message: %q", stdout)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("expected no output file")
	}
}

func TestAssembleEnvironment(t *testing.T) {
	frames := writeSamples(t, 3)
	out := filepath.Join(t.TempDir(), "env.avi")
	summary := filepath.Join(t.TempDir(), "summary.md")

	t.Setenv("FRAMEREEL_INPUT", frames)
	t.Setenv("FRAMEREEL_OUTPUT", out)
	t.Setenv("FRAMEREEL_CODEC", "MJPG")
	t.Setenv("FRAMEREEL_FPS", "12")

	if _, stderr, err := run(t, "assemble", "--summary", summary, "-Q"); err != nil {
		t.Fatalf("assemble failed: %v\nstderr: %s", err, stderr)
	}
	report, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if !strings.Contains(string(report), "12 fps") {
		t.Errorf("expected fps from environment, got:\n%s", report)
	}
}

func TestAssembleFlagOverridesEnvironment(t *testing.T) {
	frames := writeSamples(t, 3)
	out := filepath.Join(t.TempDir(), "flag.avi")
	summary := filepath.Join(t.TempDir(), "summary.md")

	t.Setenv("FRAMEREEL_FPS", "12")

	if _, stderr, err := run(t, "assemble", "-i", frames, "-o", out, "-c", "MJPG", "--fps", "5", "--summary", summary, "-Q"); err != nil {
		t.Fatalf("assemble failed: %v\nstderr: %s", err, stderr)
	}
	report, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if !strings.Contains(string(report), "| Frame rate | 5 fps |") {
		t.Errorf("expected fps from flag, got:\n%s", report)
	}
}

func TestAssembleConfigFile(t *testing.T) {
	frames := writeSamples(t, 2)
	tmp := t.TempDir()
	out := filepath.Join(tmp, "config.avi")
	cfgPath := filepath.Join(tmp, "framereel.yaml")
	yaml := "input: " + frames + "\noutput: " + out + "\ncodec: MJPG\nfps: 4\nquiet: true\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := run(t, "assemble", "--config", cfgPath)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected quiet from config file, got %q", stdout)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestAssembleMissingConfigFile(t *testing.T) {
	_, _, err := run(t, "assemble", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestAssembleInvalidFPS(t *testing.T) {
	_, _, err := run(t, "assemble", "-i", t.TempDir(), "--fps", "0", "-Q")
	if err == nil {
		t.Fatal("expected error for zero fps")
	}
}

func TestAssembleEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.avi")

	_, _, err := run(t, "assemble", "-i", dir, "-o", out, "-c", "MJPG", "-Q")

	var emptyErr *assembler.EmptyInputError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyInputError, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("expected no output file")
	}
}

func TestAssembleUnexpectedArgument(t *testing.T) {
	_, _, err := run(t, "assemble", "frames")
	if err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestInspectRequiresArgument(t *testing.T) {
	_, _, err := run(t, "inspect")
	if err == nil {
		t.Fatal("expected error without a file argument")
	}
}

func TestInspectInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.mp4")
	if err := os.WriteFile(path, []byte("not a video"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := run(t, "inspect", path)
	if err == nil {
		t.Fatal("expected error for invalid file")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to name %s, got %v", path, err)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(stdout, version) {
		t.Errorf("expected version %s in output, got %q", version, stdout)
	}
}
