package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "sdkwire "+Version)
}

func TestCommandTree(t *testing.T) {
	root := NewRootCommand()

	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"generate", "clean", "init", "version"} {
		assert.Truef(t, names[want], "missing %s command", want)
	}
}

func TestGenerateCommandFlags(t *testing.T) {
	root := NewRootCommand()
	generate, _, err := root.Find([]string{"generate"})
	require.NoError(t, err)

	for _, want := range []string{"snapshot", "output", "flavor", "skip-format", "watch"} {
		assert.NotNilf(t, generate.Flags().Lookup(want), "missing --%s flag", want)
	}
}
