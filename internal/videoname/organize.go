package videoname

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Bucket is an inclusive range of recording numbers stored in one directory.
type Bucket struct {
	Lower int
	Upper int
}

// String renders the bucket as its directory name, e.g. "1200-1299".
func (b Bucket) String() string {
	return fmt.Sprintf("%04d-%04d", b.Lower, b.Upper)
}

// Contains reports whether number falls inside b.
func (b Bucket) Contains(number int) bool {
	return number >= b.Lower && number <= b.Upper
}

// BucketFor returns the bucket holding recording number.
func (n *Namer) BucketFor(number int) Bucket {
	width := n.cfg.BucketWidth
	lower := number - number%width
	return Bucket{Lower: lower, Upper: lower + width - 1}
}

// OrganizedName returns the normalized file name for v. Continuation files
// get the FILE prefix and a "-c" suffix inserted before the first dot.
func (n *Namer) OrganizedName(v Video) string {
	if !v.IsContinuation() {
		return v.Name
	}

	var name string
	if prefix, rest, found := strings.Cut(v.Name, "."); found {
		name = fmt.Sprintf("%s-%d.%s", prefix, *v.Continuation, rest)
	} else {
		// Loose names without any dot: insert before the separator character.
		sep := len(v.Name) - len(v.Extension) - 1
		name = fmt.Sprintf("%s-%d%s", v.Name[:sep], *v.Continuation, v.Name[sep:])
	}
	// FIcc -> FILE; the classifier guarantees the first four bytes are "FI" + two digits.
	return "FI" + PrimaryMarker + name[4:]
}

// OrganizedPath returns the destination of name relative to an organized root,
// or false when name is not a recognised video-family file.
func (n *Namer) OrganizedPath(name string) (string, bool) {
	v, ok := n.Classify(name)
	if !ok {
		return "", false
	}
	return filepath.Join(n.BucketFor(v.Number).String(), n.OrganizedName(v)), true
}

// OrganizedPath returns the destination of name using the default naming rules.
func OrganizedPath(name string) (string, bool) {
	return defaultNamer.OrganizedPath(name)
}
