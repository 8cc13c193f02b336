package assembler

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/framereel/pkg/ports"
)

// FrameList is the ordered list of frame file paths.
type FrameList []string

// Enumerate lists the regular files in dir whose names end with suffix and
// returns them in frame order. The suffix match is case-sensitive.
func Enumerate(fs ports.FileSystem, dir, suffix string) (FrameList, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frame directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir || !strings.HasSuffix(entry.Name, suffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name))
	}

	if len(paths) == 0 {
		return nil, &EmptyInputError{Dir: dir, Suffix: suffix}
	}

	return Order(paths), nil
}

// Order returns a copy of paths sorted by byte-wise string comparison.
// Names are not compared numerically: frame_10 sorts before frame_2.
func Order(paths []string) FrameList {
	ordered := make(FrameList, len(paths))
	copy(ordered, paths)
	sort.Strings(ordered)
	return ordered
}
