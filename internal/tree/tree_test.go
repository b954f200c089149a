package tree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.txt")
	writeFile(t, root, "a/one.dat")
	writeFile(t, root, "a/deep/two.TXT")
	writeFile(t, root, ".hidden")
	writeFile(t, root, ".git/config")
	writeFile(t, root, "a/.secret/three.txt")

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "skip hidden",
			filter: Filter{},
			want:   []string{"a/deep/two.TXT", "a/one.dat", "b.txt"},
		},
		{
			name:   "include hidden",
			filter: Filter{IncludeHidden: true},
			want:   []string{".git/config", ".hidden", "a/.secret/three.txt", "a/deep/two.TXT", "a/one.dat", "b.txt"},
		},
		{
			name:   "extension filter",
			filter: NewFilter(false, []string{"txt"}),
			want:   []string{"a/deep/two.TXT", "b.txt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Walk(root, tt.filter)
			require.NoError(t, err)
			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.FromSlash(w)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestWalkHiddenRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".data")
	writeFile(t, root, "f.txt")

	got, err := Walk(root, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"f.txt"}, got)
}

func TestWalkErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Walk(filepath.Join(dir, "missing"), Filter{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	writeFile(t, dir, "file")
	_, err = Walk(filepath.Join(dir, "file"), Filter{})
	assert.ErrorIs(t, err, ErrNotDir)
}

func TestFilterMatch(t *testing.T) {
	f := NewFilter(false, []string{".TXT", "csv", " "})
	assert.True(t, f.Match("a.txt"))
	assert.True(t, f.Match(filepath.Join("x", "b.CSV")))
	assert.False(t, f.Match("c.dat"))
	assert.False(t, f.Match("txt"))
	assert.True(t, Filter{}.Match("anything"))
}

func TestMirror(t *testing.T) {
	src, dst, err := Mirror("/in", "/out", filepath.Join("a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/in", "a", "b.txt"), src)
	assert.Equal(t, filepath.Join("/out", "a", "b.txt"), dst)

	_, _, err = Mirror("/in", "/out", filepath.Join("..", "etc", "passwd"))
	assert.ErrorIs(t, err, ErrOutsideRoot)
}
