package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/roamvid/internal/buildinfo"
	"github.com/tphakala/roamvid/internal/diskmanager"
	mock_diskmanager "github.com/tphakala/roamvid/internal/diskmanager/mocks"
	"github.com/tphakala/roamvid/internal/errors"
	"github.com/tphakala/roamvid/internal/runtime"
)

const gib = 1 << 30

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the command line args with HOME pointed at an empty directory.
func execute(t *testing.T, usage diskmanager.UsageProvider, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	app := runtime.New(buildinfo.NewContext("1.4.0", "2026-10-19"))
	app.Usage = usage
	t.Cleanup(func() { _ = app.Close() })

	var stdout, stderr bytes.Buffer
	root := RootCommand(app)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(t.Context())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func makeTree(t *testing.T, files map[string]int) string {
	t.Helper()
	root := t.TempDir()
	for rel, size := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, bytes.Repeat([]byte{'x'}, size), 0o644))
	}
	return root
}

func sampleTree(t *testing.T) string {
	t.Helper()
	return makeTree(t, map[string]int{
		"FILE1300.MOV":                 100,
		"0000-0099/FILE0001.MOV":       100,
		"0000-0099/FILE0001.THM":       10,
		"0000-0099/FILE0001.MOV.times": 5,
		"0000-0099/FILE0002.MOV":       100,
		"notes.txt":                    3,
	})
}

// usageShort reports a 1 GiB target missed by short bytes.
func usageShort(short uint64) *mock_diskmanager.MockUsageProvider {
	usage := new(mock_diskmanager.MockUsageProvider)
	usage.On("DiskUsage", mock.Anything).Return(diskmanager.DiskSpaceInfo{
		TotalBytes: 4 * gib,
		FreeBytes:  gib - short,
		UsedBytes:  3*gib + short,
	}, nil)
	return usage
}

func TestVersionCommand(t *testing.T) {
	res := execute(t, nil, "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "roamvid 1.4.0 (built 2026-10-19, "))
}

func TestListCommandText(t *testing.T) {
	root := sampleTree(t)

	res := execute(t, nil, "list", root)
	require.NoError(t, res.err)
	assert.Equal(t, strings.Join([]string{
		"FILE1300.MOV",
		"0000-0099/FILE0001.MOV",
		"0000-0099/FILE0001.MOV.times",
		"0000-0099/FILE0001.THM",
		"0000-0099/FILE0002.MOV",
	}, "\n")+"\n", res.stdout)
}

func TestListCommandJSON(t *testing.T) {
	root := makeTree(t, map[string]int{"FILE0001.MOV": 1, "FILE0002xMOV": 1})

	res := execute(t, nil, "list", "--output", "json", root)
	require.NoError(t, res.err)

	var paths []string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &paths))
	assert.Equal(t, []string{"FILE0001.MOV", "FILE0002xMOV"}, paths)
}

func TestListCommandStrictDot(t *testing.T) {
	root := makeTree(t, map[string]int{"FILE0001.MOV": 1, "FILE0002xMOV": 1})

	res := execute(t, nil, "list", "--strict-dot", root)
	require.NoError(t, res.err)
	assert.Equal(t, "FILE0001.MOV\n", res.stdout)
}

func TestListCommandEmptyJSON(t *testing.T) {
	res := execute(t, nil, "list", "-o", "json", t.TempDir())
	require.NoError(t, res.err)
	assert.JSONEq(t, "[]", res.stdout)
}

func TestListCommandMissingRoot(t *testing.T) {
	res := execute(t, nil, "list", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, os.ErrNotExist)
}

func TestListCommandRootFromEnvironment(t *testing.T) {
	root := makeTree(t, map[string]int{"FILE0042.THM": 1})
	t.Setenv("ROAMVID_ROOT", root)

	res := execute(t, nil, "list")
	require.NoError(t, res.err)
	assert.Equal(t, "FILE0042.THM\n", res.stdout)
}

func TestOrganizeCommandText(t *testing.T) {
	root := makeTree(t, map[string]int{
		"FI011250.MOV":           1,
		"FILE1250.THM":           1,
		"1200-1299/FILE1250.MOV": 1,
		"FILE1251.MOV":           1,
		"1200-1299/FILE1251.MOV": 1,
	})

	res := execute(t, nil, "organize", root)
	require.NoError(t, res.err)
	assert.Equal(t, strings.Join([]string{
		"FI011250.MOV -> 1200-1299/FILE1250-1.MOV",
		"FILE1250.THM -> 1200-1299/FILE1250.THM",
		"FILE1251.MOV -> 1200-1299/FILE1251.MOV (destination exists)",
		"1200-1299/FILE1250.MOV (in place)",
		"1200-1299/FILE1251.MOV (in place)",
	}, "\n")+"\n", res.stdout)

	// Nothing is moved.
	_, err := os.Stat(filepath.Join(root, "FI011250.MOV"))
	require.NoError(t, err)
}

func TestOrganizeCommandYAMLWithBucketWidth(t *testing.T) {
	root := makeTree(t, map[string]int{"FI021257.MOV": 1})

	res := execute(t, nil, "organize", "--bucket-width", "10", "--output", "yaml", root)
	require.NoError(t, res.err)

	var moves []struct {
		Source      string `yaml:"source"`
		Destination string `yaml:"destination"`
		InPlace     bool   `yaml:"in_place"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &moves))
	require.Len(t, moves, 1)
	assert.Equal(t, "FI021257.MOV", moves[0].Source)
	assert.Equal(t, "1250-1259/FILE1257-2.MOV", moves[0].Destination)
	assert.False(t, moves[0].InPlace)
}

func TestInvalidBucketWidth(t *testing.T) {
	res := execute(t, nil, "organize", "--bucket-width", "30", t.TempDir())
	require.Error(t, res.err)
	assert.True(t, errors.IsCategory(res.err, errors.CategoryValidation))
}

func TestCleanupPretendText(t *testing.T) {
	root := sampleTree(t)
	before := listFiles(t, root)

	res := execute(t, usageShort(150), "cleanup", "--free-space", "1", "--pretend", root)
	require.NoError(t, res.err)

	assert.Equal(t, strings.Join([]string{
		"Removing FILE1300.MOV",
		"Removing 0000-0099/FILE0001.MOV",
		"Removing 0000-0099/FILE0001.THM",
		"Removing 0000-0099/FILE0001.MOV.times",
		"Would free 215 B (215 bytes) from 4 files and 0 directories; 1.0 GiB free of 1.0 GiB requested",
	}, "\n")+"\n", res.stdout)
	assert.Equal(t, before, listFiles(t, root))
}

func TestCleanupYAMLReportAndMetrics(t *testing.T) {
	root := sampleTree(t)
	metricsFile := filepath.Join(t.TempDir(), "roamvid.prom")

	res := execute(t, usageShort(1<<20),
		"cleanup", "-f", "1", "-o", "yaml", "--metrics-file", metricsFile, root)
	require.NoError(t, res.err)

	var report diskmanager.Report
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &report))
	assert.False(t, report.Pretend)
	assert.Equal(t, uint64(gib), report.ThresholdBytes)
	assert.Equal(t, []diskmanager.Action{
		diskmanager.NewFileRemoved("FILE1300.MOV", 100),
		diskmanager.NewFileRemoved("0000-0099/FILE0001.MOV", 100),
		diskmanager.NewFileRemoved("0000-0099/FILE0001.THM", 10),
		diskmanager.NewFileRemoved("0000-0099/FILE0001.MOV.times", 5),
		diskmanager.NewFileRemoved("0000-0099/FILE0002.MOV", 100),
		diskmanager.NewDirectoryRemoved("0000-0099"),
	}, report.Actions)
	assert.NotContains(t, res.stdout, "Removing")

	assert.Equal(t, []string{"notes.txt"}, listFiles(t, root))

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `roamvid_reclaim_runs_total{mode="delete",status="success"} 1`)
}

func TestCleanupSettingsFromConfigFile(t *testing.T) {
	root := sampleTree(t)
	cfgPath := filepath.Join(t.TempDir(), "roamvid.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"root: "+root+"\ncleanup:\n  freespace: 1\n  pretend: true\noutput:\n  format: json\n"), 0o644))

	res := execute(t, usageShort(150), "cleanup", "--config", cfgPath)
	require.NoError(t, res.err)

	var report diskmanager.Report
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
	assert.True(t, report.Pretend)
	assert.Equal(t, filepath.Clean(root), report.Root)
	assert.Len(t, report.Actions, 4)
}

func TestCleanupNegativeFreeSpace(t *testing.T) {
	res := execute(t, usageShort(0), "cleanup", "--free-space", "-1", t.TempDir())
	require.Error(t, res.err)
	assert.True(t, errors.IsCategory(res.err, errors.CategoryValidation))
}

func TestCleanupFailureIsLogged(t *testing.T) {
	res := execute(t, usageShort(150), "cleanup", "-f", "1", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Cleanup failed")
	assert.Contains(t, res.stdout, "Freed 0 B")
}

func TestMissingConfigFile(t *testing.T) {
	res := execute(t, nil, "list", "--config", filepath.Join(t.TempDir(), "absent.yaml"), t.TempDir())
	require.Error(t, res.err)
	assert.True(t, errors.IsCategory(res.err, errors.CategoryConfiguration))
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		files = append(files, filepath.ToSlash(rel))
		return err
	})
	require.NoError(t, err)
	return files
}
