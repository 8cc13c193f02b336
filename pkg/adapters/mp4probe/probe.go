// Package mp4probe reads stream properties of an encoded MP4/MOV file.
package mp4probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
)

// ErrNoVideoTrack is returned when the file has no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Info describes the first video track of a file.
type Info struct {
	Codec       string // Sample entry type, e.g. "mp4v" or "avc1"
	Width       int
	Height      int
	SampleCount int
	Timescale   uint32
	FrameRate   float64 // Derived from the first sample duration
	Duration    time.Duration
	Fragmented  bool
}

// ProbeFile reads the video track properties of the file at path.
func ProbeFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeBytes reads the video track properties of in-memory MP4 data.
func ProbeBytes(data []byte) (Info, error) {
	return ProbeReader(bytes.NewReader(data))
}

// ProbeReader reads the video track properties from an io.ReadSeeker.
func ProbeReader(reader io.ReadSeeker) (Info, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	if mp4File.IsFragmented() {
		return probeFragmented(mp4File)
	}
	return probeProgressive(mp4File)
}

func probeProgressive(mp4File *mp4.File) (Info, error) {
	if mp4File.Moov == nil {
		return Info{}, ErrNoVideoTrack
	}
	trak := findVideoTrack(mp4File.Moov.Traks)
	if trak == nil {
		return Info{}, ErrNoVideoTrack
	}

	info := trackInfo(trak)

	if stbl := trak.Mdia.Minf.Stbl; stbl.Stts != nil {
		var total uint64
		for i, count := range stbl.Stts.SampleCount {
			delta := stbl.Stts.SampleTimeDelta[i]
			info.SampleCount += int(count)
			total += uint64(count) * uint64(delta)
			if info.FrameRate == 0 && delta > 0 && info.Timescale > 0 {
				info.FrameRate = float64(info.Timescale) / float64(delta)
			}
		}
		info.Duration = mediaDuration(total, info.Timescale)
	}

	return info, nil
}

func probeFragmented(mp4File *mp4.File) (Info, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return Info{}, ErrNoVideoTrack
	}
	trak := findVideoTrack(mp4File.Init.Moov.Traks)
	if trak == nil {
		return Info{}, ErrNoVideoTrack
	}

	info := trackInfo(trak)
	info.Fragmented = true
	trackID := trak.Tkhd.TrackID

	var trex *mp4.TrexBox
	if mp4File.Init.Moov.Mvex != nil {
		for _, t := range mp4File.Init.Moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var total uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil || !hasTraf(frag.Moof, trackID) {
				continue
			}
			samples, err := frag.GetFullSamples(trex)
			if err != nil {
				return Info{}, fmt.Errorf("get samples: %w", err)
			}
			for _, sample := range samples {
				if info.FrameRate == 0 && sample.Dur > 0 && info.Timescale > 0 {
					info.FrameRate = float64(info.Timescale) / float64(sample.Dur)
				}
				total += uint64(sample.Dur)
			}
			info.SampleCount += len(samples)
		}
	}
	info.Duration = mediaDuration(total, info.Timescale)

	return info, nil
}

func hasTraf(moof *mp4.MoofBox, trackID uint32) bool {
	for _, traf := range moof.Trafs {
		if traf.Tfhd != nil && traf.Tfhd.TrackID == trackID {
			return true
		}
	}
	return false
}

func findVideoTrack(traks []*mp4.TrakBox) *mp4.TrakBox {
	for _, trak := range traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
			continue
		}
		return trak
	}
	return nil
}

// trackInfo reads codec, geometry and timescale from a video track.
func trackInfo(trak *mp4.TrakBox) Info {
	var info Info
	if trak.Mdia.Mdhd != nil {
		info.Timescale = trak.Mdia.Mdhd.Timescale
	}
	if trak.Tkhd != nil {
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}

	stsd := trak.Mdia.Minf.Stbl.Stsd
	if stsd == nil {
		return info
	}
	for _, child := range stsd.Children {
		info.Codec = child.Type()
		// Sample entry dimensions are exact; tkhd may carry a display aspect scaling
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok && vse.Width > 0 && vse.Height > 0 {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
		break
	}
	return info
}

func mediaDuration(units uint64, timescale uint32) time.Duration {
	if timescale == 0 {
		return 0
	}
	return time.Duration(units * uint64(time.Second) / uint64(timescale))
}

// String formats the info for display.
func (i Info) String() string {
	return fmt.Sprintf("%s %dx%d, %d frames at %.2f fps (%s)",
		i.Codec, i.Width, i.Height, i.SampleCount, i.FrameRate, i.Duration.Round(time.Millisecond))
}
