package ffmpegencoder

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

// IsAvailable checks if ffmpeg can be located, honoring customPath when set.
func IsAvailable(customPath string) bool {
	_, err := FindFFmpeg(customPath)
	return err == nil
}

// FindFFmpeg searches for ffmpeg in PATH and common locations.
// Priority: 1) customPath, 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, customPath)
	}

	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	} else if runtime.GOOS == "darwin" {
		commonPaths = []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// HasEncoder reports whether the ffmpeg binary at ffmpegPath was built with
// the named encoder, by scanning the output of "ffmpeg -encoders".
func HasEncoder(ffmpegPath, name string) (bool, error) {
	out, err := exec.Command(ffmpegPath, "-hide_banner", "-encoders").Output()
	if err != nil {
		return false, fmt.Errorf("list ffmpeg encoders: %w", err)
	}
	return parseEncoders(out)[name], nil
}

// parseEncoders extracts encoder names from "ffmpeg -encoders" output.
// Listing lines look like " V....D libx264   libx264 H.264 / AVC ...".
func parseEncoders(out []byte) map[string]bool {
	names := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	listing := false
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if !listing {
			listing = strings.HasPrefix(fields[0], "---")
			continue
		}
		if len(fields) >= 2 {
			names[fields[1]] = true
		}
	}
	return names
}

// Pre-compiled patterns for classifying ffmpeg stderr output.
var (
	reUnknownEncoder = regexp.MustCompile(
		`Unknown encoder|Encoder .* not found|Requested output format .* is not a suitable output format`)

	reUnsupported = regexp.MustCompile(
		`(?i)Could not find tag for codec|codec not currently supported in container|` +
			`is not supported|Tag .* incompatible with output codec`)

	reBadDimensions = regexp.MustCompile(
		`(?i)width not divisible by 2|height not divisible by 2|` +
			`Invalid dimensions|dimensions not set`)
)

// classifyStderr maps ffmpeg stderr to a short reason, or "" when nothing matches.
func classifyStderr(stderr string) string {
	switch {
	case reUnknownEncoder.MatchString(stderr):
		return "encoder not available"
	case reUnsupported.MatchString(stderr):
		return "codec not supported by container"
	case reBadDimensions.MatchString(stderr):
		return "frame dimensions rejected"
	default:
		return ""
	}
}

// lastLines returns at most n trailing non-empty lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
