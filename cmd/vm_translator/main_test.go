package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdir switches the test process into dir for the duration of the test, restoring the
// original working directory on cleanup. Handler derives its output path relative to the
// working directory (per spec.md §6), so every test needs a scratch cwd of its own.
func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(original)) })
}

func TestVmTranslatorSingleFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	src := filepath.Join(wd, "testdata", "Sys.vm")

	dir := t.TempDir()
	chdir(t, dir)

	status := Handler([]string{src}, map[string]string{})
	require.Equal(t, 0, status)

	compiled, err := os.ReadFile(filepath.Join(dir, "Sys.asm"))
	require.NoError(t, err)

	asmText := string(compiled)
	require.Contains(t, asmText, "(Sys.init)")
	require.Contains(t, asmText, "@Sys.init")
	require.True(t, strings.Count(asmText, "@SP") > 0, "expected stack pointer manipulation in generated code")
}

func TestVmTranslatorDirectoryNamespaceIsolation(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "Foo.vm"),
		[]byte("function Sys.init 0\npush constant 1\npop static 0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Bar.vm"),
		[]byte("push constant 2\npop static 0\n"), 0o644))

	dir := t.TempDir()
	chdir(t, dir)

	status := Handler([]string{src}, map[string]string{})
	require.Equal(t, 0, status)

	compiled, err := os.ReadFile(filepath.Join(dir, filepath.Base(src)+".asm"))
	require.NoError(t, err)

	// Each file's 'static 0' must resolve under its own namespace, not collide.
	require.Contains(t, string(compiled), "@BAR.0")
	require.Contains(t, string(compiled), "@FOO.0")
}

func TestVmTranslatorRequiresPathArgument(t *testing.T) {
	status := Handler(nil, map[string]string{})
	require.Equal(t, -1, status)
}

func TestVmTranslatorRejectsUnresolvablePath(t *testing.T) {
	status := Handler([]string{filepath.Join(t.TempDir(), "missing.vm")}, map[string]string{})
	require.Equal(t, -1, status)
}
