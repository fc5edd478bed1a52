// enumerate.go - discovery of organized video files

package diskmanager

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/tphakala/roamvid/internal/errors"
	"github.com/tphakala/roamvid/internal/videoname"
)

// osReadDir is swapped in tests.
var osReadDir = os.ReadDir

// Videos returns the video-family files under root as root-relative paths.
//
// Files loose in root come first, then the files of each bucket directory
// ("1200-1299") in name order. Any other directory, and anything nested in a
// bucket directory, is skipped. The sequence re-reads the tree every time it
// is ranged over. A read error is yielded once with an empty path and ends
// the sequence.
func Videos(root string, namer *videoname.Namer) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		root := filepath.Clean(root)

		entries, err := osReadDir(root)
		if err != nil {
			yield("", readDirError(err, root))
			return
		}

		var buckets []string
		for _, e := range entries {
			if e.IsDir() {
				if videoname.IsBucketDir(e.Name()) {
					buckets = append(buckets, e.Name())
				}
				continue
			}
			if _, ok := namer.Classify(e.Name()); ok {
				if !yield(e.Name(), nil) {
					return
				}
			}
		}

		// os.ReadDir sorts by name, so buckets are already in order.
		for _, bucket := range buckets {
			dir := filepath.Join(root, bucket)
			entries, err := osReadDir(dir)
			if err != nil {
				yield("", readDirError(err, dir))
				return
			}
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if _, ok := namer.Classify(e.Name()); ok {
					if !yield(filepath.Join(bucket, e.Name()), nil) {
						return
					}
				}
			}
		}
	}
}

// ListVideos collects Videos into a slice.
func ListVideos(root string, namer *videoname.Namer) ([]string, error) {
	var paths []string
	for rel, err := range Videos(root, namer) {
		if err != nil {
			return nil, err
		}
		paths = append(paths, rel)
	}
	return paths, nil
}

// readDirError tags a missing directory as not-found and anything else as file-io.
func readDirError(err error, dir string) error {
	category := errors.CategoryFileIO
	if errors.Is(err, fs.ErrNotExist) {
		category = errors.CategoryNotFound
	}
	return errors.New(err).
		Category(category).
		Context("operation", "read-dir").
		Context("path", dir).
		Build()
}
