package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/zim2obsidian/internal/cli"
)

// testNotebook is a minimal two-page export: a page with Zim checkboxes and
// a wikilink, and the page it points at.
var testNotebook = map[string]string{
	"notes/todo.md":  "# Shopping\n\n- [ ] milk\n- [x] bread\n[[other]]\n",
	"notes/other.md": "# Errands\n\nerrands body\n",
}

// writeNotebook materializes a page tree under a fresh temp dir.
func writeNotebook(t *testing.T, pages map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for rel, content := range pages {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	}
	return dir
}

// isolatedConfig writes a minimal config file so project and user configs
// on the host cannot leak into the run.
func isolatedConfig(t *testing.T, content string) string {
	t.Helper()

	if content == "" {
		content = "extensions:\n  - .md\n"
	}
	cfgFile := filepath.Join(t.TempDir(), ".zim2obsidian.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0644))
	return cfgFile
}

// execute runs the root command with args and returns stdout+stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(content)
}

func fileExists(dir, rel string) bool {
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	return err == nil
}

// TestIntegration_Convert runs a full conversion and checks the tree.
func TestIntegration_Convert(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, testNotebook)
	cfgFile := isolatedConfig(t, "")

	_, err := execute(t,
		"convert",
		"--config", cfgFile,
		"--color", "never",
		dir,
	)
	require.NoError(t, err)

	// Pages take their titles as filenames, headings stripped, link fixed.
	assert.Equal(t, "\n- [ ] milk\n- [x] bread\n[[errands|Errands]]\n",
		readFile(t, dir, "notes/shopping.md"))
	assert.Equal(t, "\nerrands body\n", readFile(t, dir, "notes/errands.md"))
	assert.False(t, fileExists(dir, "notes/todo.md"), "original page should be renamed away")
	assert.False(t, fileExists(dir, "notes/other.md"), "original page should be renamed away")
}

// TestIntegration_ConvertSummary checks the interactive summary block.
func TestIntegration_ConvertSummary(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, testNotebook)
	cfgFile := isolatedConfig(t, "")

	// "always" forces the summary through the non-TTY test buffer.
	output, err := execute(t,
		"convert",
		"--config", cfgFile,
		"--color", "always",
		dir,
	)
	require.NoError(t, err)

	assert.Contains(t, output, "Summary")
	assert.Contains(t, output, "Pages scanned:")
	assert.Contains(t, output, "Pages renamed:")
	assert.Contains(t, output, "Conversion complete")
}

// TestIntegration_ConvertQuietWhenPiped checks that a piped run prints
// nothing on stdout.
func TestIntegration_ConvertQuietWhenPiped(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, testNotebook)
	cfgFile := isolatedConfig(t, "")

	output, err := execute(t,
		"convert",
		"--config", cfgFile,
		"--color", "never",
		dir,
	)
	require.NoError(t, err)

	assert.Empty(t, output, "non-interactive run should not print a summary")
}

// TestIntegration_ConvertDryRun checks the diff preview and that the tree
// is untouched.
func TestIntegration_ConvertDryRun(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, testNotebook)
	cfgFile := isolatedConfig(t, "")

	output, err := execute(t,
		"convert",
		"--dry-run",
		"--config", cfgFile,
		"--color", "never",
		dir,
	)
	require.NoError(t, err)

	// Unified diffs with the rename visible in the git header.
	assert.Contains(t, output, "diff --git a/notes/todo.md b/notes/shopping.md")
	assert.Contains(t, output, "-# Shopping")
	assert.Contains(t, output, "-[[other]]")
	assert.Contains(t, output, "+[[errands|Errands]]")
	assert.Contains(t, output, "2 pages changed")

	// Rename overview table.
	assert.Contains(t, output, "PAGE")
	assert.Contains(t, output, "NEW NAME")
	assert.Contains(t, output, "2 pages renamed")

	// Nothing written.
	assert.Equal(t, testNotebook["notes/todo.md"], readFile(t, dir, "notes/todo.md"))
	assert.Equal(t, testNotebook["notes/other.md"], readFile(t, dir, "notes/other.md"))
	assert.False(t, fileExists(dir, "notes/shopping.md"))
}

// TestIntegration_ConvertMDLinks keeps Markdown link syntax.
func TestIntegration_ConvertMDLinks(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, map[string]string{
		"a.md": "# Alpha\n\n[beta](./b.md)\n",
		"b.md": "# Big Plans\n\nbody\n",
	})
	cfgFile := isolatedConfig(t, "")

	_, err := execute(t,
		"convert",
		"--md-links",
		"--config", cfgFile,
		"--color", "never",
		dir,
	)
	require.NoError(t, err)

	assert.Equal(t, "\n[beta](./big-plans.md)\n", readFile(t, dir, "alpha.md"))
}

// TestIntegration_ConfigDisablesRename checks that a config file option
// takes effect without any flag.
func TestIntegration_ConfigDisablesRename(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, map[string]string{
		"a.md": "# Alpha\n[b](b.md)\n",
		"b.md": "# Beta\nx\n",
	})
	cfgFile := isolatedConfig(t, "rename: false\n")

	_, err := execute(t,
		"convert",
		"--config", cfgFile,
		"--color", "never",
		dir,
	)
	require.NoError(t, err)

	// Dialect conversion only: files stay put, link syntax still converts.
	assert.Equal(t, "[[b.md|b]]\n", readFile(t, dir, "a.md"))
	assert.True(t, fileExists(dir, "b.md"))
}

// TestIntegration_FlagOverridesConfig checks that an explicit flag beats
// the config file even when its value equals the built-in default.
func TestIntegration_FlagOverridesConfig(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, map[string]string{
		"a.md": "# Alpha\nbody\n",
	})
	cfgFile := isolatedConfig(t, "rename: false\n")

	_, err := execute(t,
		"convert",
		"--no-rename=false",
		"--config", cfgFile,
		"--color", "never",
		dir,
	)
	require.NoError(t, err)

	assert.True(t, fileExists(dir, "alpha.md"), "explicit flag should re-enable renaming")
	assert.False(t, fileExists(dir, "a.md"))
}

// TestIntegration_ConvertMissingRoot checks error propagation for a bad path.
func TestIntegration_ConvertMissingRoot(t *testing.T) {
	t.Parallel()

	cfgFile := isolatedConfig(t, "")

	_, err := execute(t,
		"convert",
		"--config", cfgFile,
		"--color", "never",
		filepath.Join(t.TempDir(), "does-not-exist"),
	)
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

// TestIntegration_FixExt renames long-extension pages and fixes links.
func TestIntegration_FixExt(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, map[string]string{
		"notes.markdown": "# Notes\n\nsee [other](other.markdown)\n",
		"other.markdown": "# Other\n\nbody\n",
	})
	cfgFile := isolatedConfig(t, "")

	_, err := execute(t,
		"fix-ext",
		"--config", cfgFile,
		"--color", "never",
		dir,
	)
	require.NoError(t, err)

	assert.Contains(t, readFile(t, dir, "notes.md"), "[other](other.md)")
	assert.True(t, fileExists(dir, "other.md"))
	assert.False(t, fileExists(dir, "notes.markdown"))
	assert.False(t, fileExists(dir, "other.markdown"))
}

// TestIntegration_IndentZim protects leading whitespace in notebook sources.
func TestIntegration_IndentZim(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, map[string]string{
		"page.txt":  "Content-Type: text/x-zim-wiki\n\n\tfirst\n  second\n",
		"plain.txt": "no header\n\there\n",
	})
	cfgFile := isolatedConfig(t, "")

	_, err := execute(t,
		"indent", "zim",
		"--config", cfgFile,
		"--color", "never",
		dir,
	)
	require.NoError(t, err)

	assert.Equal(t, "Content-Type: text/x-zim-wiki\n\n&emsp;first\n&nbsp;&nbsp;second\n",
		readFile(t, dir, "page.txt"))
	assert.Equal(t, "no header\n\there\n", readFile(t, dir, "plain.txt"),
		"files without the Zim header stay untouched")
}

// TestIntegration_IndentMD restores the entities in an export.
func TestIntegration_IndentMD(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, map[string]string{
		"code.md": "&emsp;if x:\n&emsp;&nbsp;&nbsp;y\n",
	})
	cfgFile := isolatedConfig(t, "")

	_, err := execute(t,
		"indent", "md",
		"--config", cfgFile,
		"--color", "never",
		dir,
	)
	require.NoError(t, err)

	assert.Equal(t, "\tif x:\n\t  y\n", readFile(t, dir, "code.md"))
}

// TestIntegration_Init writes a config template and respects --force.
func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), ".zim2obsidian.yaml")

	_, err := execute(t, "init", "--output", outPath)
	require.NoError(t, err)

	content := readFile(t, filepath.Dir(outPath), filepath.Base(outPath))
	assert.Contains(t, content, "# zim2obsidian configuration")

	// Second run without --force refuses to overwrite.
	_, err = execute(t, "init", "--output", outPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// --force overwrites with the full template.
	_, err = execute(t, "init", "--force", "--full", "--output", outPath)
	require.NoError(t, err)
}

// TestIntegration_BackupSidecar keeps a copy of each touched page.
func TestIntegration_BackupSidecar(t *testing.T) {
	t.Parallel()

	dir := writeNotebook(t, map[string]string{
		"a.md": "# Alpha\n\nbody\n",
	})
	cfgFile := isolatedConfig(t, "")

	_, err := execute(t,
		"convert",
		"--backup",
		"--config", cfgFile,
		"--color", "never",
		dir,
	)
	require.NoError(t, err)

	assert.True(t, fileExists(dir, "alpha.md"))
	assert.Equal(t, "# Alpha\n\nbody\n", readFile(t, dir, "a.md.z2o.bak"),
		"sidecar should hold the original content")
}
