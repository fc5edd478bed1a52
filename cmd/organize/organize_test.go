package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/roamvid/internal/videoname"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
}

func TestPlanFlagsSharedDestination(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "FI011250.MOV", "FILE1250-1.MOV")

	moves, err := Plan(root, videoname.Default())
	require.NoError(t, err)

	assert.Equal(t, []Move{
		{Source: "FI011250.MOV", Destination: "1200-1299/FILE1250-1.MOV"},
		{Source: "FILE1250-1.MOV", Destination: "1200-1299/FILE1250-1.MOV", Conflict: true},
	}, moves)
}

func TestPlanExistingDestinationAndInPlace(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, "FILE1251.MOV", "1200-1299/FILE1251.MOV", "FILE0007.THM")

	moves, err := Plan(root, videoname.Default())
	require.NoError(t, err)

	assert.Equal(t, []Move{
		{Source: "FILE0007.THM", Destination: "0000-0099/FILE0007.THM"},
		{Source: "FILE1251.MOV", Destination: "1200-1299/FILE1251.MOV", Conflict: true},
		{Source: "1200-1299/FILE1251.MOV", Destination: "1200-1299/FILE1251.MOV", InPlace: true},
	}, moves)
}

func TestMoveString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a -> b", Move{Source: "a", Destination: "b"}.String())
	assert.Equal(t, "a (in place)", Move{Source: "a", Destination: "a", InPlace: true}.String())
	assert.Equal(t, "a -> b (destination exists)", Move{Source: "a", Destination: "b", Conflict: true}.String())
}
