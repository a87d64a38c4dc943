package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "PulseGrow API")
	assert.Contains(t, output, "Version:      v"+Version)
	assert.Contains(t, output, "Git Commit:   "+GitCommit)

	output, err = execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "v"+Version+"\n", output)

	t.Cleanup(func() { _ = versionCmd.Flags().Set("short", "false") })
}

func TestVersionCommandFlags(t *testing.T) {
	cmd := NewRootCmd()
	found, _, err := cmd.Find([]string{"version"})
	require.NoError(t, err)
	assert.NotNil(t, found.Flags().Lookup("short"))
}

func TestBuildInfo(t *testing.T) {
	info := buildInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.Equal(t, BuildTime, info.BuildTime)
}
