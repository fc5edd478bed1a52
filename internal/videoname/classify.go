package videoname

import (
	"strconv"
)

// Extension is a recognised file extension of the video family.
type Extension string

const (
	ExtVideo     Extension = "MOV"
	ExtThumbnail Extension = "THM"
	ExtTimes     Extension = "MOV.times"
)

// SidecarExtensions lists the extensions sharing one base name, primary video first.
var SidecarExtensions = []Extension{ExtVideo, ExtThumbnail, ExtTimes}

// Video is a classified file name.
type Video struct {
	// Name is the file name as found on disk.
	Name string
	// Number is the 4-digit recording number.
	Number int
	// Continuation is the continuation index from a FIcc prefix, nil for FILE names.
	Continuation *int
	// Suffix is an already normalized "-N" suffix, nil when absent.
	Suffix *int
	// Extension is the matched extension.
	Extension Extension
}

// IsContinuation reports whether v was named with a numeric continuation prefix.
func (v Video) IsContinuation() bool {
	return v.Continuation != nil
}

// Classify parses name, which must be a bare file name without directories.
// It returns false when the name is not a recognised video-family file.
func (n *Namer) Classify(name string) (Video, bool) {
	m := n.videoRE.FindStringSubmatch(name)
	if m == nil {
		return Video{}, false
	}

	number, err := strconv.Atoi(m[2])
	if err != nil {
		return Video{}, false
	}

	v := Video{
		Name:      name,
		Number:    number,
		Extension: Extension(m[4]),
	}

	if m[1] != PrimaryMarker {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return Video{}, false
		}
		v.Continuation = &idx
	}

	if m[3] != "" {
		suffix, err := strconv.Atoi(m[3][1:])
		if err != nil {
			return Video{}, false
		}
		v.Suffix = &suffix
	}

	return v, true
}

// Classify parses name using the default naming rules.
func Classify(name string) (Video, bool) {
	return defaultNamer.Classify(name)
}

var defaultNamer = Default()
