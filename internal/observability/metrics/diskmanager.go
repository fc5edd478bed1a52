package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DiskManagerMetrics contains Prometheus metrics for space reclamation
type DiskManagerMetrics struct {
	registry *prometheus.Registry

	// Disk usage metrics
	diskFreeBytes             prometheus.Gauge
	diskTotalBytes            prometheus.Gauge
	diskUtilizationPercentage prometheus.Gauge
	diskCheckDurationSeconds  prometheus.Histogram
	thresholdBytes            prometheus.Gauge

	// Reclaim operation metrics
	reclaimRunsTotal       *prometheus.CounterVec
	entriesRemovedTotal    *prometheus.CounterVec
	bytesFreedTotal        *prometheus.CounterVec
	reclaimDurationSeconds *prometheus.HistogramVec
}

// NewDiskManagerMetrics creates and registers new disk manager metrics
func NewDiskManagerMetrics(registry *prometheus.Registry) (*DiskManagerMetrics, error) {
	m := &DiskManagerMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// initMetrics initializes all Prometheus metrics
func (m *DiskManagerMetrics) initMetrics() {
	m.diskFreeBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roamvid_disk_free_bytes",
		Help: "Free disk space available to unprivileged users, in bytes",
	})

	m.diskTotalBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roamvid_disk_total_bytes",
		Help: "Total disk space in bytes",
	})

	m.diskUtilizationPercentage = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roamvid_disk_utilization_percentage",
		Help: "Disk utilization as a percentage",
	})

	m.diskCheckDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roamvid_disk_check_duration_seconds",
		Help:    "Time taken to check disk usage",
		Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount10),
	})

	m.thresholdBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roamvid_reclaim_threshold_bytes",
		Help: "Free space target of the last reclaim run, in bytes",
	})

	m.reclaimRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roamvid_reclaim_runs_total",
			Help: "Total number of reclaim runs",
		},
		[]string{"mode", "status"},
	)

	m.entriesRemovedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roamvid_reclaim_entries_removed_total",
			Help: "Total number of files and directories removed by reclaim runs",
		},
		[]string{"mode", "kind"},
	)

	m.bytesFreedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roamvid_reclaim_bytes_freed_total",
			Help: "Total bytes freed by reclaim runs",
		},
		[]string{"mode"},
	)

	m.reclaimDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roamvid_reclaim_duration_seconds",
			Help:    "Time taken for reclaim runs",
			Buckets: prometheus.ExponentialBuckets(BucketStart100ms, BucketFactor2, BucketCount10),
		},
		[]string{"mode"},
	)
}

// Describe implements the Collector interface
func (m *DiskManagerMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.diskFreeBytes.Describe(ch)
	m.diskTotalBytes.Describe(ch)
	m.diskUtilizationPercentage.Describe(ch)
	m.diskCheckDurationSeconds.Describe(ch)
	m.thresholdBytes.Describe(ch)
	m.reclaimRunsTotal.Describe(ch)
	m.entriesRemovedTotal.Describe(ch)
	m.bytesFreedTotal.Describe(ch)
	m.reclaimDurationSeconds.Describe(ch)
}

// Collect implements the Collector interface
func (m *DiskManagerMetrics) Collect(ch chan<- prometheus.Metric) {
	m.diskFreeBytes.Collect(ch)
	m.diskTotalBytes.Collect(ch)
	m.diskUtilizationPercentage.Collect(ch)
	m.diskCheckDurationSeconds.Collect(ch)
	m.thresholdBytes.Collect(ch)
	m.reclaimRunsTotal.Collect(ch)
	m.entriesRemovedTotal.Collect(ch)
	m.bytesFreedTotal.Collect(ch)
	m.reclaimDurationSeconds.Collect(ch)
}

// UpdateDiskUsage updates disk usage metrics
func (m *DiskManagerMetrics) UpdateDiskUsage(freeBytes, usedBytes, totalBytes uint64) {
	m.diskFreeBytes.Set(float64(freeBytes))
	m.diskTotalBytes.Set(float64(totalBytes))

	var utilizationPercentage float64
	if totalBytes > 0 {
		utilizationPercentage = float64(usedBytes) / float64(totalBytes) * PercentageFactor
	}
	m.diskUtilizationPercentage.Set(utilizationPercentage)
}

// RecordDiskCheckDuration records the time taken to check disk usage
func (m *DiskManagerMetrics) RecordDiskCheckDuration(duration float64) {
	m.diskCheckDurationSeconds.Observe(duration)
}

// SetThreshold records the free space target of a run
func (m *DiskManagerMetrics) SetThreshold(bytes uint64) {
	m.thresholdBytes.Set(float64(bytes))
}

// RecordReclaimRun records a finished reclaim run
func (m *DiskManagerMetrics) RecordReclaimRun(mode, status string) {
	m.reclaimRunsTotal.WithLabelValues(mode, status).Inc()
}

// RecordEntryRemoved records one removed file or directory
func (m *DiskManagerMetrics) RecordEntryRemoved(mode, kind string) {
	m.entriesRemovedTotal.WithLabelValues(mode, kind).Inc()
}

// RecordBytesFreed records the number of bytes freed
func (m *DiskManagerMetrics) RecordBytesFreed(mode string, bytes float64) {
	m.bytesFreedTotal.WithLabelValues(mode).Add(bytes)
}

// RecordReclaimDuration records the duration of a reclaim run
func (m *DiskManagerMetrics) RecordReclaimDuration(mode string, duration float64) {
	m.reclaimDurationSeconds.WithLabelValues(mode).Observe(duration)
}
