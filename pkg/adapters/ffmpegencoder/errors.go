package ffmpegencoder

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called outside a Begin/End session.
	ErrNotInitialized = errors.New("ffmpegencoder: encoder not initialized")

	// ErrAlreadyStarted is returned when Begin is called on an open session.
	ErrAlreadyStarted = errors.New("ffmpegencoder: session already started")

	// ErrNoFrames is returned when End is called before any frame was appended.
	ErrNoFrames = errors.New("ffmpegencoder: no frames to encode")

	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegencoder: ffmpeg not found in PATH")

	// ErrEncoderUnavailable is returned when the ffmpeg build lacks the codec's encoder.
	ErrEncoderUnavailable = errors.New("ffmpegencoder: encoder not available in ffmpeg build")

	// ErrInvalidStream is returned for a non-positive frame rate or empty geometry.
	ErrInvalidStream = errors.New("ffmpegencoder: invalid stream parameters")

	// ErrOddDimensions is returned when a codec needs even width and height.
	ErrOddDimensions = errors.New("ffmpegencoder: codec requires even frame dimensions")

	// ErrFrameSize is returned when a frame does not match the stream geometry.
	ErrFrameSize = errors.New("ffmpegencoder: frame size does not match stream")

	// ErrEncodingFailed is returned when the ffmpeg process exits with an error.
	ErrEncodingFailed = errors.New("ffmpegencoder: encoding failed")
)
