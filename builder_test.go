package simconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const builderFixture = `
[Fast]
node.0.power = 10

[General]
seed = 42
`

// TestBuilder tests fluent load-and-resolve
func TestBuilder(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "sim.ini")
	os.WriteFile(configFile, []byte(builderFixture), 0644)

	t.Run("FileAndSections", func(t *testing.T) {
		params, err := NewBuilder().
			WithFile(configFile).
			WithSections("Fast").
			Build()
		require.NoError(t, err)

		power, err := params.Int64("node.0.power")
		require.NoError(t, err)
		assert.Equal(t, int64(10), power)

		seed, err := params.Int64("seed")
		require.NoError(t, err)
		assert.Equal(t, int64(42), seed)
	})

	t.Run("WithArgs", func(t *testing.T) {
		params, err := NewBuilder().
			WithFile(configFile).
			WithSections("Fast").
			WithArgs([]string{"--seed=7"}).
			Build()
		require.NoError(t, err)

		seed, err := params.Int64("seed")
		require.NoError(t, err)
		assert.Equal(t, int64(7), seed)
	})

	t.Run("WithOverride", func(t *testing.T) {
		conflictFile := filepath.Join(tmpDir, "conflict.ini")
		os.WriteFile(conflictFile, []byte("[A]\nk = 1\n[B]\nk = 2\n[General]\n"), 0644)

		_, err := NewBuilder().WithFile(conflictFile).WithSections("A", "B").Build()
		var conflict *MergeConflictError
		require.ErrorAs(t, err, &conflict)

		params, err := NewBuilder().
			WithFile(conflictFile).
			WithSections("A", "B").
			WithOverride().
			Build()
		require.NoError(t, err)
		v, _, err := params.Match("k")
		require.NoError(t, err)
		assert.Equal(t, "1", v.Text)
	})

	t.Run("NoFileConfigured", func(t *testing.T) {
		_, err := NewBuilder().WithSections("Fast").Build()
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().WithFile(filepath.Join(tmpDir, "missing.ini")).MustBuild()
		})
	})
}

// TestFileDiscovery tests root-file discovery
func TestFileDiscovery(t *testing.T) {
	t.Run("EnvVarWins", func(t *testing.T) {
		tmpDir := t.TempDir()
		envFile := filepath.Join(tmpDir, "fromenv.ini")
		os.WriteFile(envFile, []byte(builderFixture), 0644)
		t.Setenv("SIMAPP_CONFIG", envFile)

		opts := DefaultDiscoveryOptions("simapp")
		params, err := NewBuilder().WithFileDiscovery(opts).Build()
		require.NoError(t, err)
		_, found, err := params.Match("seed")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("SearchPaths", func(t *testing.T) {
		tmpDir := t.TempDir()
		os.WriteFile(filepath.Join(tmpDir, "simapp.conf"), []byte(builderFixture), 0644)

		opts := DefaultDiscoveryOptions("simapp")
		opts.EnvVar = ""
		opts.Paths = []string{filepath.Join(tmpDir, "missing"), tmpDir}

		params, err := NewBuilder().WithFileDiscovery(opts).Build()
		require.NoError(t, err)
		_, found, err := params.Match("seed")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("NothingFound", func(t *testing.T) {
		opts := DefaultDiscoveryOptions("simapp")
		opts.EnvVar = ""
		opts.Paths = []string{t.TempDir()}

		_, err := NewBuilder().WithFileDiscovery(opts).Build()
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("ExplicitFileTakesPrecedence", func(t *testing.T) {
		tmpDir := t.TempDir()
		explicit := filepath.Join(tmpDir, "explicit.ini")
		os.WriteFile(explicit, []byte(builderFixture), 0644)
		t.Setenv("SIMAPP_CONFIG", "/should/not/be/used.ini")

		params, err := NewBuilder().
			WithFile(explicit).
			WithFileDiscovery(DefaultDiscoveryOptions("simapp")).
			Build()
		require.NoError(t, err)
		_, found, err := params.Match("seed")
		require.NoError(t, err)
		assert.True(t, found)
	})
}
