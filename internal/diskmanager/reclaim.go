// reclaim.go - oldest-first removal of recordings until a free space target is met

package diskmanager

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tphakala/roamvid/internal/errors"
	"github.com/tphakala/roamvid/internal/logger"
	"github.com/tphakala/roamvid/internal/observability/metrics"
	"github.com/tphakala/roamvid/internal/videoname"
)

// bytesPerGiB converts the threshold unit to bytes.
const bytesPerGiB = 1 << 30

// maxThresholdGiB is the largest target that fits in a uint64 byte count.
const maxThresholdGiB = math.MaxUint64 / bytesPerGiB

// Filesystem operations, swapped in tests.
var (
	osRemove = os.Remove
	osStat   = os.Stat
)

// Reclaimer deletes the oldest recordings under a root until enough space is free.
type Reclaimer struct {
	namer    *videoname.Namer
	usage    UsageProvider
	log      logger.Logger
	metrics  *metrics.DiskManagerMetrics
	progress func(Action)
}

// ReclaimerOption configures a Reclaimer.
type ReclaimerOption func(*Reclaimer)

// WithUsageProvider replaces the operating system free space query.
func WithUsageProvider(p UsageProvider) ReclaimerOption {
	return func(r *Reclaimer) { r.usage = p }
}

// WithLogger sets the structured logger.
func WithLogger(l logger.Logger) ReclaimerOption {
	return func(r *Reclaimer) { r.log = l }
}

// WithMetrics records run statistics on m.
func WithMetrics(m *metrics.DiskManagerMetrics) ReclaimerOption {
	return func(r *Reclaimer) { r.metrics = m }
}

// WithProgress calls fn after every removal, including pretended ones.
func WithProgress(fn func(Action)) ReclaimerOption {
	return func(r *Reclaimer) { r.progress = fn }
}

// NewReclaimer returns a Reclaimer using namer to recognise recordings.
func NewReclaimer(namer *videoname.Namer, opts ...ReclaimerOption) *Reclaimer {
	r := &Reclaimer{
		namer: namer,
		usage: SystemUsage{},
		log:   logger.NewSlogLogger(io.Discard, logger.LogLevelError, time.Local),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reclaim removes recordings under root, oldest first, until the filesystem has
// at least freeSpaceGiB gibibytes available or no candidates remain.
//
// Each primary .MOV file is removed together with its .THM and .MOV.times
// sidecars; the containing bucket directory is removed once empty. The root
// itself is never removed, even when the last recording in it goes. This
// departs from the earlier video_utils cleanup, which removed an emptied root
// too. With pretend set nothing is touched but the report lists exactly what a
// real run would remove.
//
// Targets too large to express in bytes saturate, so every candidate is
// removed.
//
// On error the returned report holds the actions completed before it.
func (r *Reclaimer) Reclaim(ctx context.Context, root string, freeSpaceGiB int64, pretend bool) (*Report, error) {
	start := time.Now()
	mode := metrics.ModeDelete
	if pretend {
		mode = metrics.ModePretend
	}

	report, err := r.reclaim(ctx, root, freeSpaceGiB, pretend)

	if r.metrics != nil {
		status := metrics.StatusSuccess
		switch {
		case errors.IsCategory(err, errors.CategoryCancellation):
			status = metrics.StatusCancelled
		case err != nil:
			status = metrics.StatusError
		}
		r.metrics.RecordReclaimRun(mode, status)
		r.metrics.RecordReclaimDuration(mode, time.Since(start).Seconds())
	}

	return report, err
}

func (r *Reclaimer) reclaim(ctx context.Context, root string, freeSpaceGiB int64, pretend bool) (*Report, error) {
	if freeSpaceGiB < 0 {
		return nil, errors.ValidationError(
			fmt.Sprintf("invalid free space target %d GiB: must not be negative", freeSpaceGiB))
	}

	started := time.Now()
	root = filepath.Clean(root)
	runID := uuid.NewString()
	ctx = logger.WithTraceID(ctx, runID)
	log := r.log.WithContext(ctx).With(logger.Bool("pretend", pretend))

	threshold := thresholdBytes(freeSpaceGiB)

	checkStart := time.Now()
	info, err := r.usage.DiskUsage(root)
	if err != nil {
		return nil, err
	}
	if r.metrics != nil {
		r.metrics.RecordDiskCheckDuration(time.Since(checkStart).Seconds())
		r.metrics.UpdateDiskUsage(info.FreeBytes, info.UsedBytes, info.TotalBytes)
		r.metrics.SetThreshold(threshold)
	}

	report := &Report{
		RunID:          runID,
		Root:           root,
		Pretend:        pretend,
		ThresholdBytes: threshold,
		FreeBefore:     info.FreeBytes,
		FreeAfter:      info.FreeBytes,
		UsedPercent:    info.UsedPercent(),
	}

	log.Info("Starting reclaim",
		logger.String("root", root),
		logger.Uint64("free_bytes", info.FreeBytes),
		logger.Float64("used_percent", report.UsedPercent),
		logger.Uint64("threshold_bytes", threshold))

	run := &reclaimRun{
		Reclaimer: r,
		root:      root,
		pretend:   pretend,
		report:    report,
		removed:   make(map[string]struct{}),
		log:       log,
	}

	for rel, err := range Videos(root, r.namer) {
		if err != nil {
			return report, err
		}
		if !strings.EqualFold(filepath.Ext(rel), ".mov") {
			continue
		}
		if report.FreeAfter >= threshold {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Warn("Reclaim interrupted", logger.Int("actions", len(report.Actions)))
			return report, errors.New(ctxErr).
				Category(errors.CategoryCancellation).
				Context("operation", "reclaim").
				Build()
		}
		if err := run.removeGroup(rel); err != nil {
			return report, err
		}
	}

	log.Info("Reclaim finished",
		logger.Int("files_removed", report.Count(FileRemoved)),
		logger.Int("dirs_removed", report.Count(DirectoryRemoved)),
		logger.Int64("bytes_freed", report.BytesFreed()),
		logger.Bool("satisfied", report.Satisfied()),
		logger.Duration("elapsed", time.Since(started)))

	return report, nil
}

// thresholdBytes converts a non-negative GiB target to bytes, saturating at
// math.MaxUint64.
func thresholdBytes(gib int64) uint64 {
	if uint64(gib) > maxThresholdGiB {
		return math.MaxUint64
	}
	return uint64(gib) * bytesPerGiB
}

// reclaimRun holds the state of a single Reclaim call.
type reclaimRun struct {
	*Reclaimer
	root    string
	pretend bool
	report  *Report
	// removed holds root-relative paths removed so far, so pretend runs can
	// tell when a directory would have become empty.
	removed map[string]struct{}
	log     logger.Logger
}

// removeGroup removes the video rel and its sidecars, then its directory if empty.
func (run *reclaimRun) removeGroup(rel string) error {
	base := strings.TrimSuffix(rel, filepath.Ext(rel))

	for _, ext := range videoname.SidecarExtensions {
		if err := run.removeFile(base + "." + string(ext)); err != nil {
			return err
		}
	}

	dir := filepath.Dir(rel)
	if dir == "." {
		return nil
	}
	return run.removeDirIfEmpty(dir)
}

func (run *reclaimRun) removeFile(rel string) error {
	full := filepath.Join(run.root, rel)

	info, err := osStat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.FileError(err, full, 0)
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	if !run.pretend {
		if err := osRemove(full); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				run.log.Debug("File already removed", logger.String("path", rel))
				return nil
			}
			return errors.New(err).
				Category(errors.CategoryDiskCleanup).
				FileContext(full, info.Size()).
				Context("operation", "remove-file").
				Build()
		}
	}

	run.removed[rel] = struct{}{}
	run.report.FreeAfter += uint64(info.Size())
	run.record(NewFileRemoved(rel, info.Size()))
	return nil
}

func (run *reclaimRun) removeDirIfEmpty(dir string) error {
	full := filepath.Join(run.root, dir)

	entries, err := osReadDir(full)
	if err != nil {
		err = readDirError(err, full)
		if errors.IsNotFound(err) {
			run.log.Debug("Directory already removed", logger.String("path", dir))
			return nil
		}
		return err
	}
	for _, e := range entries {
		if _, gone := run.removed[filepath.Join(dir, e.Name())]; !gone {
			return nil
		}
	}

	if !run.pretend {
		if err := osRemove(full); err != nil {
			return errors.New(err).
				Category(errors.CategoryDiskCleanup).
				Context("operation", "remove-dir").
				Context("path", full).
				Build()
		}
	}

	run.removed[dir] = struct{}{}
	run.record(NewDirectoryRemoved(dir))
	return nil
}

func (run *reclaimRun) record(a Action) {
	run.report.Actions = append(run.report.Actions, a)

	fields := []logger.Field{logger.String("path", a.Path)}
	if a.Kind == FileRemoved {
		fields = append(fields, logger.Int64("bytes", a.Bytes))
	}
	run.log.Info(a.String(), fields...)

	if run.metrics != nil {
		mode := metrics.ModeDelete
		if run.pretend {
			mode = metrics.ModePretend
		}
		kind := metrics.KindFile
		if a.Kind == DirectoryRemoved {
			kind = metrics.KindDirectory
		}
		run.metrics.RecordEntryRemoved(mode, kind)
		if a.Bytes > 0 {
			run.metrics.RecordBytesFreed(mode, float64(a.Bytes))
		}
	}

	if run.progress != nil {
		run.progress(a)
	}
}
