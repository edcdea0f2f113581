package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foldersync.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
left_root: /srv/left
right_root: /srv/right
`)

	config, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/srv/left", config.LeftRoot)
	require.Equal(t, "/srv/right", config.RightRoot)
	require.True(t, config.SoftDelete.Enabled)
	require.Equal(t, ResolutionClash, config.ConflictPolicy.ModifyModify)
	require.True(t, config.DryRun)
	require.Equal(t, "sync_state.db", config.SnapshotPath)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
left_root: /srv/left
right_root: /srv/right
dry_run: false
conflict_policy:
  modify_modify: overwrite_newer
  new_new: notify_only
  metadata_conflict: clash
soft_delete:
  enabled: false
`)

	config, err := Load(path)
	require.NoError(t, err)

	require.False(t, config.DryRun)
	require.False(t, config.SoftDelete.Enabled)
	require.Equal(t, ResolutionOverwriteNewer, config.ConflictPolicy.ModifyModify)
	require.Equal(t, ResolutionNotifyOnly, config.ConflictPolicy.NewNew)
}

func TestLoadRejectsMissingRoots(t *testing.T) {
	path := writeConfig(t, `left_root: /srv/left`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidResolution(t *testing.T) {
	path := writeConfig(t, `
left_root: /srv/left
right_root: /srv/right
conflict_policy:
  modify_modify: obliterate
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestSoftDeleteMaxSizeBytes(t *testing.T) {
	unbounded := SoftDelete{}
	_, ok := unbounded.MaxSizeBytes()
	require.False(t, ok)

	limit := int64(10)
	bounded := SoftDelete{MaxSizeMB: &limit}
	bytes, ok := bounded.MaxSizeBytes()
	require.True(t, ok)
	require.Equal(t, int64(10*1024*1024), bytes)
}
