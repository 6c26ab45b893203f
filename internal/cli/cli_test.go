package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/emblem/internal/cli"
	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/dump"
	"github.com/yaklabco/emblem/pkg/reporter"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

type output struct {
	stdout string
	stderr string
	err    error
}

// execute runs em with args and stdin.
func execute(t *testing.T, stdin string, args ...string) output {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return output{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// writeDoc writes content to name in a fresh directory and returns its path.
func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	assert.Equal(t, "em", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"lint", "build", "ast", "lints", "init", "lsp", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestLint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		args     []string
		wantCode int
		contains []string
	}{
		{
			name:     "clean",
			content:  "**hello** _world_\n",
			wantCode: cli.ExitSuccess,
			contains: []string{"No issues found"},
		},
		{
			name:     "warnings pass",
			content:  ".p[]\n",
			wantCode: cli.ExitSuccess,
			contains: []string{"empty attributes", "empty-attrs"},
		},
		{
			name:     "warnings fail in strict mode",
			content:  ".p[]\n",
			args:     []string{"--strict"},
			wantCode: cli.ExitIssues,
			contains: []string{"empty attributes"},
		},
		{
			name:     "disabled lint",
			content:  ".p[]\n",
			args:     []string{"--strict", "--disable", "empty-attrs"},
			wantCode: cli.ExitSuccess,
			contains: []string{"No issues found"},
		},
		{
			name:     "parse error",
			content:  "a */",
			wantCode: cli.ExitIssues,
			contains: []string{"unbalanced comment", "1 file failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeDoc(t, "doc.em", tt.content)

			args := append([]string{"lint", "--color", "never"}, tt.args...)
			out := execute(t, "", append(args, path)...)

			assert.Equal(t, tt.wantCode, cli.ExitCode(out.err), "err: %v", out.err)
			for _, want := range tt.contains {
				assert.Contains(t, out.stdout, want)
			}
		})
	}
}

func TestLint_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.em"), []byte(".p[x,x]{y}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.em"), []byte("fine\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(".p[]\n"), 0o644))

	out := execute(t, "", "lint", "--format", "json", dir)
	require.NoError(t, out.err)

	var doc reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out.stdout), &doc))

	require.Len(t, doc.Files, 2)
	assert.Equal(t, 2, doc.Summary.FilesChecked)
	assert.Equal(t, 1, doc.Summary.FilesWithIssues)
	assert.Equal(t, 1, doc.Summary.TotalIssues)

	require.Len(t, doc.Files[0].Diagnostics, 1)
	d := doc.Files[0].Diagnostics[0]
	assert.Equal(t, "duplicate-attrs", d.Lint)
	assert.Equal(t, "warning", d.Severity)
	assert.Len(t, d.Notes, 2)
}

func TestLint_InvalidFormat(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "lint", "--format", "xml", writeDoc(t, "doc.em", "x\n"))
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(out.err))
}

func TestLint_UnknownFlag(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "lint", "--fix")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(out.err))
}

func TestLint_ConfigFile(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "doc.em", ".p[]\n")
	cfgPath := filepath.Join(t.TempDir(), "em.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("lints:\n  empty-attrs:\n    enabled: false\n"), 0o644))

	out := execute(t, "", "lint", "--strict", "--config", cfgPath, path)
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "No issues found")
}

func TestLint_BadConfig(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "em.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("flavor: gfm\n"), 0o644))

	out := execute(t, "", "lint", "--config", cfgPath, writeDoc(t, "doc.em", "x\n"))
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(out.err))
}

func TestLint_MissingPath(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "lint", filepath.Join(t.TempDir(), "missing.em"))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(out.err))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	src := writeDoc(t, "doc.em", "**hi**\n")
	outDir := filepath.Join(t.TempDir(), "public")

	out := execute(t, "", "build", "--out-dir", outDir, src)
	require.NoError(t, out.err)

	got, err := os.ReadFile(filepath.Join(outDir, "doc.html"))
	require.NoError(t, err)
	assert.Equal(t, "<b>hi</b>\n", string(got))
	assert.Empty(t, out.stdout)
	assert.Contains(t, out.stderr, "1 written")
}

func TestBuild_Stdout(t *testing.T) {
	t.Parallel()

	src := writeDoc(t, "doc.em", ".h1{about}\n")

	out := execute(t, "", "build", "--stdout", src)
	require.NoError(t, out.err)
	assert.Equal(t, "<h1>about</h1>", out.stdout)

	_, err := os.Stat(filepath.Join(filepath.Dir(src), "doc.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuild_ParseError(t *testing.T) {
	t.Parallel()

	src := writeDoc(t, "doc.em", "a */\n")
	outDir := t.TempDir()

	out := execute(t, "", "build", "--out-dir", outDir, src)
	assert.Equal(t, cli.ExitIssues, cli.ExitCode(out.err))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAST(t *testing.T) {
	t.Parallel()

	src := writeDoc(t, "doc.em", "**hi**\n")

	out := execute(t, "", "ast", src)
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "kind: sugar")
	assert.Contains(t, out.stdout, "variant: bold")
}

func TestAST_Stdin(t *testing.T) {
	t.Parallel()

	out := execute(t, "~~x", "ast", "--format", "json", "-")
	require.NoError(t, out.err)

	tree, err := dump.Decode(strings.NewReader(out.stdout), dump.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", tree.Name)
	require.Len(t, tree.Paragraphs, 1)
	nodes := tree.Paragraphs[0].Parts[0].Content
	require.Len(t, nodes, 2)
	assert.Equal(t, "glue", nodes[0].Kind)
	assert.Equal(t, "nbsp", nodes[0].Variant)
}

func TestAST_MsgpackToFile(t *testing.T) {
	t.Parallel()

	src := writeDoc(t, "doc.em", ".p[a=1]{x}\n")
	target := filepath.Join(t.TempDir(), "doc.mp")

	out := execute(t, "", "ast", "--format", "msgpack", "-o", target, src)
	require.NoError(t, out.err)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()

	tree, err := dump.Decode(f, dump.FormatMsgpack)
	require.NoError(t, err)
	cmd := tree.Paragraphs[0].Parts[0].Content[0]
	assert.Equal(t, "command", cmd.Kind)
	assert.Equal(t, "p", cmd.Name)
}

func TestAST_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"no file", []string{"ast"}, cli.ExitInvalidUsage},
		{"two files", []string{"ast", "a.em", "b.em"}, cli.ExitInvalidUsage},
		{"bad format", []string{"ast", "--format", "xml", "a.em"}, cli.ExitInvalidUsage},
		{"missing file", []string{"ast", "does-not-exist.em"}, cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := execute(t, "", tt.args...)
			assert.Equal(t, tt.wantCode, cli.ExitCode(out.err), "err: %v", out.err)
		})
	}
}

func TestAST_ParseError(t *testing.T) {
	t.Parallel()

	out := execute(t, "a */", "ast", "-")
	assert.ErrorIs(t, out.err, cli.ErrLintIssuesFound)
	assert.Contains(t, out.stderr, "<stdin>:1:3")
	assert.Contains(t, out.stderr, "unbalanced comment")
	assert.Empty(t, out.stdout)
}

func TestLints(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "lints", "--color", "never")
	require.NoError(t, out.err)
	for _, id := range []string{"duplicate-attrs", "empty-attrs", "redundant-sugar"} {
		assert.Contains(t, out.stdout, id)
	}
	assert.True(t, strings.HasPrefix(out.stdout, "ID"))
}

func TestLints_JSON(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "lints", "--format", "json")
	require.NoError(t, out.err)

	var lints []struct {
		ID           string `json:"id"`
		Enabled      bool   `json:"enabled"`
		Configurable bool   `json:"configurable"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.stdout), &lints))
	require.Len(t, lints, 3)
	assert.Equal(t, "duplicate-attrs", lints[0].ID)
	assert.True(t, lints[0].Enabled)
	assert.True(t, lints[0].Configurable)
}

func TestInit(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()
			target := filepath.Join(t.TempDir(), "em."+format)

			out := execute(t, "", "init", "--format", format, "--output", target)
			require.NoError(t, out.err)

			data, err := os.ReadFile(target)
			require.NoError(t, err)
			cfg, err := config.Parse(target, data)
			require.NoError(t, err)
			assert.Contains(t, cfg.Lints, "empty-attrs")

			out = execute(t, "", "init", "--format", format, "--output", target)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(out.err))

			out = execute(t, "", "init", "--format", format, "--output", target, "--force")
			require.NoError(t, out.err)
		})
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "version")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "test-version")
	assert.Contains(t, out.stdout, "test-commit")
}

func TestHelp(t *testing.T) {
	t.Parallel()

	out := execute(t, "", "--help")
	require.NoError(t, out.err)
	assert.Contains(t, out.stdout, "Usage:")
	assert.Contains(t, out.stdout, "Commands:")
	assert.Contains(t, out.stdout, "--config")
}
