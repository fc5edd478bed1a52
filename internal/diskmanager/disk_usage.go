// disk_usage.go - free space queries for the filesystem holding the video tree

package diskmanager

import (
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/tphakala/roamvid/internal/errors"
)

// DiskSpaceInfo holds detailed disk space information.
type DiskSpaceInfo struct {
	TotalBytes uint64
	UsedBytes  uint64
	// FreeBytes is the space available to unprivileged users.
	FreeBytes uint64
}

// UsageProvider reports disk space for the filesystem containing a path.
type UsageProvider interface {
	DiskUsage(path string) (DiskSpaceInfo, error)
}

// SystemUsage queries the operating system.
type SystemUsage struct{}

// DiskUsage implements UsageProvider.
func (SystemUsage) DiskUsage(path string) (DiskSpaceInfo, error) {
	return GetDetailedDiskUsage(path)
}

// diskUsageFunc is swapped in tests.
var diskUsageFunc = disk.Usage

// GetDetailedDiskUsage returns the total, used and available bytes of the filesystem containing path.
func GetDetailedDiskUsage(path string) (DiskSpaceInfo, error) {
	usage, err := diskUsageFunc(path)
	if err != nil {
		return DiskSpaceInfo{}, errors.New(err).
			Category(errors.CategoryDiskUsage).
			Context("operation", "disk-usage").
			Context("path", path).
			Build()
	}

	return DiskSpaceInfo{
		TotalBytes: usage.Total,
		UsedBytes:  usage.Used,
		FreeBytes:  usage.Free,
	}, nil
}

// UsedPercent returns the share of the filesystem in use, 0 when the total is unknown.
func (d DiskSpaceInfo) UsedPercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.UsedBytes) / float64(d.TotalBytes) * 100.0
}
