package diskmanager

import "fmt"

// ActionKind tells what a reclaim action removed.
type ActionKind string

const (
	FileRemoved      ActionKind = "file_removed"
	DirectoryRemoved ActionKind = "directory_removed"
)

// Action is one removal performed (or, in pretend mode, planned) by a reclaim run.
type Action struct {
	Kind ActionKind `yaml:"kind" json:"kind"`
	// Path is relative to the reclaim root.
	Path string `yaml:"path" json:"path"`
	// Bytes is the size of a removed file; zero for directories.
	Bytes int64 `yaml:"bytes,omitempty" json:"bytes,omitempty"`
}

// NewFileRemoved returns the action for a removed file of size bytes.
func NewFileRemoved(path string, bytes int64) Action {
	return Action{Kind: FileRemoved, Path: path, Bytes: bytes}
}

// NewDirectoryRemoved returns the action for a removed empty directory.
func NewDirectoryRemoved(path string) Action {
	return Action{Kind: DirectoryRemoved, Path: path}
}

// SizeOrSentinel returns the freed bytes for files and -1 for directories,
// the (name, size) convention used by older tooling.
func (a Action) SizeOrSentinel() int64 {
	if a.Kind == DirectoryRemoved {
		return -1
	}
	return a.Bytes
}

// String renders the progress line for a.
func (a Action) String() string {
	if a.Kind == DirectoryRemoved {
		return fmt.Sprintf("Removing empty directory %s", a.Path)
	}
	return fmt.Sprintf("Removing %s", a.Path)
}

// Report summarizes a reclaim run.
type Report struct {
	RunID          string   `yaml:"run_id" json:"run_id"`
	Root           string   `yaml:"root" json:"root"`
	Pretend        bool     `yaml:"pretend" json:"pretend"`
	ThresholdBytes uint64   `yaml:"threshold_bytes" json:"threshold_bytes"`
	FreeBefore     uint64   `yaml:"free_before" json:"free_before"`
	FreeAfter      uint64   `yaml:"free_after" json:"free_after"`
	// UsedPercent is the filesystem utilization when the run started.
	UsedPercent    float64  `yaml:"used_percent" json:"used_percent"`
	Actions        []Action `yaml:"actions" json:"actions"`
}

// BytesFreed returns the total size of removed files.
func (r *Report) BytesFreed() int64 {
	var total int64
	for _, a := range r.Actions {
		if a.Kind == FileRemoved {
			total += a.Bytes
		}
	}
	return total
}

// Count returns how many actions of kind r holds.
func (r *Report) Count(kind ActionKind) int {
	n := 0
	for _, a := range r.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Satisfied reports whether the estimated free space reached the threshold.
func (r *Report) Satisfied() bool {
	return r.FreeAfter >= r.ThresholdBytes
}
