package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/emblem/pkg/runner"
)

// writeTree creates files under dir, each holding content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func abs(dir string, names ...string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, filepath.FromSlash(name)))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"main.em": "hello"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"main.em"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "main.em"), files)
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.em":            "",
		"chapters/one.em":    "",
		"chapters/two.EM":    "",
		"chapters/notes.md":  "",
		"out/main.html":      "",
		".cache/tmp.em":      "",
		"chapters/.draft.em": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "chapters/one.em", "chapters/two.EM", "main.em"), files)
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.em":            "",
		"drafts/wip.em":      "",
		"book/drafts/old.em": "",
		"book/ch1.em":        "",
		"book/ch1.test.em":   "",
	})

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name: "all",
			want: []string{"book/ch1.em", "book/ch1.test.em", "book/drafts/old.em", "drafts/wip.em", "main.em"},
		},
		{
			name:    "exclude anchored dir",
			exclude: []string{"/drafts"},
			want:    []string{"book/ch1.em", "book/ch1.test.em", "book/drafts/old.em", "main.em"},
		},
		{
			name:    "exclude dir at any depth",
			exclude: []string{"**/drafts"},
			want:    []string{"book/ch1.em", "book/ch1.test.em", "main.em"},
		},
		{
			name:    "exclude bare name at any depth",
			exclude: []string{"drafts"},
			want:    []string{"book/ch1.em", "book/ch1.test.em", "main.em"},
		},
		{
			name:    "exclude basename pattern",
			exclude: []string{"*.test.em"},
			want:    []string{"book/ch1.em", "book/drafts/old.em", "drafts/wip.em", "main.em"},
		},
		{
			name:    "include subtree",
			include: []string{"book/**"},
			want:    []string{"book/ch1.em", "book/ch1.test.em", "book/drafts/old.em"},
		},
		{
			name:    "include and exclude",
			include: []string{"book/**"},
			exclude: []string{"book/drafts/**"},
			want:    []string{"book/ch1.em", "book/ch1.test.em"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				IncludeGlobs: tt.include,
				ExcludeGlobs: tt.exclude,
			})
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tt.want...), files)
		})
	}
}

func TestDiscover_Extensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.em": "", "b.emblem": "", "c.txt": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".emblem", ".txt"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "b.emblem", "c.txt"), files)
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.em": "", "sub/b.em": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{".", "a.em", "sub", "./sub/b.em"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "a.em", "sub/b.em"), files)
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing.em"},
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"a.em": ""})
	writeTree(t, outside, map[string]string{"linked.em": ""})
	if err := os.Symlink(outside, filepath.Join(dir, "shared")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "a.em"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "linked.em", filepath.Base(files[1]))
}
