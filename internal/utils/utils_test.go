package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"Work", "Bug Bounty", "CTF"}, SplitAndTrim(" Work, Bug Bounty ,,CTF ", ","))
	assert.Empty(t, SplitAndTrim(" , ", ","))
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/daily_ratings/2024-06-01/abc", "daily_ratings.2024-06-01.abc"},
		{"#/workspaces/2", "workspaces[2]"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JSONPointerToPath(tt.ptr), tt.ptr)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DAYRATE_TEST_DIR", "/tmp/dayrate")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, ".dayrate", "task_data.json"), ExpandPath("~/.dayrate/task_data.json"))
	assert.Equal(t, "/tmp/dayrate/data.json", ExpandPath("$DAYRATE_TEST_DIR/data.json"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestWriteFileAtomicFailsWhenParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteFileAtomic(filepath.Join(blocker, "out.json"), []byte("data"), 0o644)
	assert.Error(t, err)
}
