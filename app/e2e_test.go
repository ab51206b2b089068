package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/omegaatt36/batchren/internal/adapter/planfile"
	"github.com/omegaatt36/batchren/internal/domain"
	"github.com/omegaatt36/batchren/internal/testutil"
)

// run executes the CLI with stdin attached to a pipe, which is never a
// terminal.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(r, &stdout, &stderr)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	if stderr.Len() > 0 {
		t.Log(stderr.String())
	}
	return stdout.String(), err
}

func setupTree(t *testing.T, paths ...string) string {
	t.Helper()
	plainOutput(t)

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(home, "etc"))
	for _, key := range []string{"ROOT", "GLOBS", "ENGINE", "SHORTCUTS", "ASSUME_YES", "STRICT", "OUTPUT"} {
		t.Setenv("BATCHREN_"+key, "")
		os.Unsetenv("BATCHREN_" + key)
	}
	xdg.Reload()

	dir := t.TempDir()
	testutil.WriteFiles(t, dir, paths...)
	return dir
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var names []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return names
}

func TestE2E_Preview(t *testing.T) {
	t.Run("yaml output does not touch files", func(t *testing.T) {
		dir := setupTree(t, "Tree_01.png", "Tree_02.png", "README")

		out, err := run(t, "preview", "-r", dir, "-p", "_0", "-n", "_v", "-o", "yaml")
		require.NoError(t, err)

		var doc planfile.Document
		require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "pattern", doc.Mode)
		require.Len(t, doc.Entries, 2)
		assert.Equal(t, "Tree_v1", doc.Entries[0].NewName)
		assert.Equal(t, "Tree_v2", doc.Entries[1].NewName)

		assert.ElementsMatch(t, []string{"README", "Tree_01.png", "Tree_02.png"}, listFiles(t, dir))
	})

	t.Run("table output", func(t *testing.T) {
		dir := setupTree(t, "Rock.png")

		out, err := run(t, "preview", "-r", dir, "-n", "pre_", "--prefix")
		require.NoError(t, err)
		assert.Contains(t, out, "pre_Rock")
		assert.Contains(t, out, "Selected items: 1")
	})

	t.Run("nothing selected", func(t *testing.T) {
		dir := setupTree(t, "README")

		out, err := run(t, "preview", "-r", dir, "-n", "x")
		require.NoError(t, err)
		assert.Contains(t, out, "Nothing selected")
	})

	t.Run("missing root", func(t *testing.T) {
		dir := setupTree(t, "a.txt")

		out, err := run(t, "preview", "-r", filepath.Join(dir, "typo"), "-n", "x")
		assert.ErrorIs(t, err, domain.ErrInvalidPath)
		assert.NotContains(t, out, "Nothing selected")
	})

	t.Run("invalid pattern", func(t *testing.T) {
		dir := setupTree(t, "a.txt")

		_, err := run(t, "preview", "-r", dir, "-p", "(", "-n", "x")
		assert.ErrorIs(t, err, domain.ErrInvalidPattern)
	})

	t.Run("unknown engine", func(t *testing.T) {
		dir := setupTree(t, "a.txt")

		_, err := run(t, "preview", "-r", dir, "-n", "x", "--engine", "pcre")
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})
}

func TestNameFlagDocumentsGroupBraces(t *testing.T) {
	cmd := NewRootCommand(os.Stdin, &bytes.Buffer{}, &bytes.Buffer{})
	for _, name := range []string{"preview", "apply"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		flag := sub.Flags().Lookup("name")
		require.NotNil(t, flag)
		assert.Contains(t, flag.Usage, "${1}x", name)
	}
}

func TestE2E_Apply(t *testing.T) {
	t.Run("prefix", func(t *testing.T) {
		dir := setupTree(t, "a.txt", "sub/b.txt")

		_, err := run(t, "apply", "-y", "-r", dir, "-n", "pre_", "--prefix")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"pre_a.txt", "sub/pre_b.txt"}, listFiles(t, dir))
	})

	t.Run("postfix", func(t *testing.T) {
		dir := setupTree(t, "a.txt")

		_, err := run(t, "apply", "-y", "-r", dir, "-n", "_post", "--postfix")
		require.NoError(t, err)
		assert.Equal(t, []string{"a_post.txt"}, listFiles(t, dir))
	})

	t.Run("pattern", func(t *testing.T) {
		dir := setupTree(t, "Tree_01.png", "Rock_01.png")

		out, err := run(t, "apply", "-y", "-r", dir, "-g", "Tree*", "-p", "_01", "-n", "_variantA")
		require.NoError(t, err)
		assert.Contains(t, out, "Successfully renamed 1 items")
		assert.ElementsMatch(t, []string{"Tree_variantA.png", "Rock_01.png"}, listFiles(t, dir))
	})

	t.Run("re2 group followed by text", func(t *testing.T) {
		dir := setupTree(t, "Tree_01.png")

		_, err := run(t, "apply", "-y", "-r", dir, "-p", `_(\d+)`, "-n", "${1}_v")
		require.NoError(t, err)
		assert.Equal(t, []string{"Tree01_v.png"}, listFiles(t, dir))
	})

	t.Run("dotnet engine", func(t *testing.T) {
		dir := setupTree(t, "img001.png")

		_, err := run(t, "apply", "-y", "-r", dir, "--engine", "dotnet", "-p", `(?<=img)\d+`, "-n", "X")
		require.NoError(t, err)
		assert.Equal(t, []string{"imgX.png"}, listFiles(t, dir))
	})

	t.Run("full replacement fails when applied twice", func(t *testing.T) {
		dir := setupTree(t, "old.txt")

		_, err := run(t, "apply", "-y", "-r", dir, "-n", "new")
		require.NoError(t, err)
		assert.Equal(t, []string{"new.txt"}, listFiles(t, dir))

		_, err = run(t, "apply", "-y", "-r", dir, "-n", "new")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		assert.Equal(t, []string{"new.txt"}, listFiles(t, dir))
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		dir := setupTree(t, "a.txt", "b.txt", "c.txt")

		out, err := run(t, "apply", "-y", "-r", dir, "-n", "same")
		require.Error(t, err)
		assert.Contains(t, out, "Renamed 1 of 3 items, 1 left untouched")
		assert.ElementsMatch(t, []string{"same.txt", "b.txt", "c.txt"}, listFiles(t, dir))
	})

	t.Run("strict refuses collisions", func(t *testing.T) {
		dir := setupTree(t, "a.txt", "b.txt")

		_, err := run(t, "apply", "-y", "--strict", "-r", dir, "-n", "same")
		assert.ErrorIs(t, err, domain.ErrCollision)
		assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, listFiles(t, dir))
	})

	t.Run("missing root fails", func(t *testing.T) {
		dir := setupTree(t, "a.txt")

		_, err := run(t, "apply", "-y", "-r", filepath.Join(dir, "typo"), "-n", "b")
		assert.ErrorIs(t, err, domain.ErrInvalidPath)
		assert.Equal(t, []string{"a.txt"}, listFiles(t, dir))
	})

	t.Run("prompt requires a terminal", func(t *testing.T) {
		dir := setupTree(t, "a.txt")

		_, err := run(t, "apply", "-r", dir, "-n", "b")
		assert.ErrorIs(t, err, domain.ErrNoTerminal)
		assert.Equal(t, []string{"a.txt"}, listFiles(t, dir))
	})

	t.Run("name defaults to first selected item", func(t *testing.T) {
		dir := setupTree(t, "a.txt", "b.txt")

		_, err := run(t, "apply", "-y", "-r", dir, "--postfix")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"aa.txt", "ba.txt"}, listFiles(t, dir))
	})

	t.Run("config file supplies defaults", func(t *testing.T) {
		dir := setupTree(t, "a.txt")
		cfg := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("assume_yes: true\nroot: "+dir+"\n"), 0o644))

		_, err := run(t, "--config", cfg, "apply", "-n", "z_", "--prefix")
		require.NoError(t, err)
		assert.Equal(t, []string{"z_a.txt"}, listFiles(t, dir))
	})
}
