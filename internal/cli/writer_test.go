package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkwire/sdkwire/internal/utils"
)

func testWriter() *Writer {
	return NewWriter(utils.NewWriterDiagnostics(utils.DiagnosticSilent, os.Stderr))
}

func generatedFiles() map[string]string {
	return map[string]string{
		"index.ts":                "/* eslint-disable */\n// Generated by sdkwire. Do not edit.\n\nexport {};\n",
		"central.ts":              "// Generated by sdkwire. Do not edit.\n",
		"userModule/user.ts":      "// Generated by sdkwire. Do not edit.\n",
		"_types/users/dto.ts":     "// Generated by sdkwire. Do not edit.\n",
		"userModule/index.ts":     "// Generated by sdkwire. Do not edit.\n",
		"_types/shared/roles.ts":  "// Generated by sdkwire. Do not edit.\n",
	}
}

func TestWriteTreeCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sdk", "plain")

	err := testWriter().WriteTree(dir, generatedFiles())
	require.NoError(t, err)

	for name := range generatedFiles() {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
		assert.NoErrorf(t, err, "expected %s to exist", name)
	}
}

func TestWriteTreeAcceptsEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	err := testWriter().WriteTree(dir, generatedFiles())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "index.ts"))
}

func TestWriteTreeRefusesForeignDirectory(t *testing.T) {
	dir := t.TempDir()
	foreign := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(foreign, []byte("hand-written"), 0o644))

	err := testWriter().WriteTree(dir, generatedFiles())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")

	// nothing was written and the foreign file survived
	data, readErr := os.ReadFile(foreign)
	require.NoError(t, readErr)
	assert.Equal(t, "hand-written", string(data))
	assert.NoFileExists(t, filepath.Join(dir, "central.ts"))
}

func TestWriteTreeRefusesDirectoryWithForeignIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.ts"), []byte("export const x = 1;\n"), 0o644))

	err := testWriter().WriteTree(dir, generatedFiles())
	require.Error(t, err)
}

func TestWriteTreeReplacesPreviousGeneration(t *testing.T) {
	dir := t.TempDir()
	w := testWriter()
	require.NoError(t, w.WriteTree(dir, generatedFiles()))

	// simulate a stale file from a controller that no longer exists
	stale := filepath.Join(dir, "userModule", "legacy.ts")
	require.NoError(t, os.WriteFile(stale, []byte("// Generated by sdkwire. Do not edit.\n"), 0o644))

	require.NoError(t, w.WriteTree(dir, generatedFiles()))

	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(dir, "userModule", "user.ts"))
}

func TestIsGeneratedTree(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, isGeneratedTree(dir))

	require.NoError(t, testWriter().WriteTree(dir, generatedFiles()))
	assert.True(t, isGeneratedTree(dir))
}
