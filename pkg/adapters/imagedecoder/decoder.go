// Package imagedecoder decodes still frames into rasters.
//
// BMP is decoded with golang.org/x/image/bmp. PNG and JPEG are registered
// too, so a sequence with a different suffix can be assembled the same way.
package imagedecoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/bmp"

	"github.com/user/framereel/pkg/ports"
)

var (
	// ErrEmptyData is returned when there are no bytes to decode.
	ErrEmptyData = errors.New("imagedecoder: empty image data")

	// ErrEmptyImage is returned when an image decodes to zero width or height.
	ErrEmptyImage = errors.New("imagedecoder: image has no pixels")
)

// bmpMagic is the BITMAPFILEHEADER signature.
var bmpMagic = []byte("BM")

// Decoder implements ports.FrameDecoder.
type Decoder struct{}

// New creates a new Decoder.
func New() *Decoder {
	return &Decoder{}
}

// Decode decodes BMP, PNG or JPEG data and reports the raster geometry.
func (d *Decoder) Decode(data []byte) (ports.Frame, error) {
	if len(data) == 0 {
		return ports.Frame{}, ErrEmptyData
	}

	var (
		img    image.Image
		format string
		err    error
	)
	if bytes.HasPrefix(data, bmpMagic) {
		img, err = bmp.Decode(bytes.NewReader(data))
		format = "bmp"
		if n, ok := img.(*image.NRGBA); ok {
			img = opaque(n)
		}
	} else {
		img, format, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return ports.Frame{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return ports.Frame{}, ErrEmptyImage
	}

	channels := channelsOf(img)
	if format == "bmp" {
		channels = bmpChannels(data)
	}

	return ports.Frame{
		Image:  img,
		Format: format,
		Geometry: ports.Geometry{
			Width:    bounds.Dx(),
			Height:   bounds.Dy(),
			Channels: channels,
		},
	}, nil
}

// bmpChannels reads biBitCount from the BITMAPINFOHEADER. The decoded image
// type cannot tell 24-bit from 32-bit sources apart.
func bmpChannels(data []byte) int {
	const bitCountOffset = 28
	if len(data) < bitCountOffset+2 {
		return 3
	}
	switch binary.LittleEndian.Uint16(data[bitCountOffset:]) {
	case 32:
		return 4
	default:
		// 24-bit and paletted sources both expand to three color channels.
		return 3
	}
}

// opaque drops the alpha of a 32-bit BMP. V4 and V5 headers make the bmp
// package keep it, and encoders would otherwise blend the color toward black.
// With alpha forced to 0xff the straight and premultiplied layouts coincide,
// so the pixel buffer is reused as RGBA.
func opaque(n *image.NRGBA) *image.RGBA {
	for y := 0; y < n.Rect.Dy(); y++ {
		row := n.Pix[y*n.Stride : y*n.Stride+n.Rect.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
	return &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}
}

func channelsOf(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.RGBA, *image.RGBA64, *image.NRGBA, *image.NRGBA64:
		return 4
	default:
		return 3
	}
}

var _ ports.FrameDecoder = (*Decoder)(nil)
