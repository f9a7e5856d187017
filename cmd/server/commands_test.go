package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MSROUTE_TEST_A=from-file\nMSROUTE_TEST_B=from-file\n"), 0o600))

	t.Setenv("MSROUTE_TEST_B", "from-env")
	require.NoError(t, os.Unsetenv("MSROUTE_TEST_A"))
	t.Cleanup(func() { _ = os.Unsetenv("MSROUTE_TEST_A") })

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("MSROUTE_TEST_A"))
	assert.Equal(t, "from-env", os.Getenv("MSROUTE_TEST_B"))

	assert.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))
}

func TestMigrateRejectsMemoryStore(t *testing.T) {
	t.Setenv("STORE", "memory")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate", "--env-file", ""})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE=mysql")
}
