package runtime

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/roamvid/internal/buildinfo"
)

func TestSetupAppliesBoundFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("bucket-width", 100, "")
	flags.Bool("strict-dot", false, "")
	flags.Bool("debug", false, "")
	flags.String("unrelated", "", "")
	require.NoError(t, flags.Parse([]string{"--bucket-width=20", "--strict-dot", "--debug"}))

	var stderr bytes.Buffer
	c := New(buildinfo.NewContext("1.0.0", ""))
	c.Stderr = &stderr
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.BindFlags(flags))
	require.NoError(t, c.Setup(""))

	assert.Equal(t, 20, c.Settings.Naming.BucketWidth)
	assert.True(t, c.Settings.Naming.StrictDot)
	assert.Equal(t, 20, c.Namer.Config().BucketWidth)
	assert.Contains(t, stderr.String(), "Configuration loaded")
}

func TestResolveRoot(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROAMVID_ROOT", "/media/roam")

	c := New(nil)
	c.Stderr = &bytes.Buffer{}
	require.NoError(t, c.Setup(""))

	assert.Equal(t, "/media/roam", c.ResolveRoot(nil))
	assert.Equal(t, "/other", c.ResolveRoot([]string{"/other"}))
}

func TestCloseWithoutSetup(t *testing.T) {
	t.Parallel()

	assert.NoError(t, New(nil).Close())
}
