package assembler

import (
	"errors"
	"fmt"
)

// ErrGeometryMismatch is wrapped by FrameDecodeError when a frame's width,
// height or channel count differs from the first frame.
var ErrGeometryMismatch = errors.New("frame geometry differs from the first frame")

// EmptyInputError is returned when the source directory holds no frames.
type EmptyInputError struct {
	Dir    string
	Suffix string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("no *%s frames found in %s", e.Suffix, e.Dir)
}

// FrameDecodeError is returned when a frame cannot be read or decoded, or
// does not match the stream geometry.
type FrameDecodeError struct {
	Path  string
	Index int
	Err   error
}

func (e *FrameDecodeError) Error() string {
	return fmt.Sprintf("decode frame %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *FrameDecodeError) Unwrap() error {
	return e.Err
}

// StreamOpenError is returned when the output stream cannot be opened.
type StreamOpenError struct {
	Path  string
	Codec string
	Err   error
}

func (e *StreamOpenError) Error() string {
	return fmt.Sprintf("open output stream %s (codec %s): %v", e.Path, e.Codec, e.Err)
}

func (e *StreamOpenError) Unwrap() error {
	return e.Err
}

// FinalizeIndex is the FrameEncodeError index reported for a failed End.
const FinalizeIndex = -1

// FrameEncodeError is returned when the encoder rejects a frame, or with
// Index FinalizeIndex when finalizing the stream fails.
type FrameEncodeError struct {
	Path  string
	Index int
	Err   error
}

func (e *FrameEncodeError) Error() string {
	if e.Index == FinalizeIndex {
		return fmt.Sprintf("finalize %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("encode frame %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *FrameEncodeError) Unwrap() error {
	return e.Err
}
