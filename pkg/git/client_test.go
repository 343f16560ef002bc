package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Lock(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, filepath.Join(".projtree", "git.lock"), nil)
	ctx := context.Background()

	unlock, err := client.Lock(ctx)
	require.NoError(t, err)

	lockPath := filepath.Join(tmpDir, ".projtree", "git.lock")
	assert.FileExists(t, lockPath)
	assert.Equal(t, lockPath, client.LockPath())

	// A second acquisition waits until the context ends.
	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = client.Lock(waitCtx)
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()
	assert.NoFileExists(t, lockPath)

	unlock, err = client.Lock(ctx)
	require.NoError(t, err)
	unlock()
}

func TestClient_DefaultLockName(t *testing.T) {
	client := NewClient("/work", "", nil)
	assert.Equal(t, filepath.Join("/work", DefaultLockName), client.LockPath())
}

func TestClient_Commit(t *testing.T) {
	if !IsInstalled() {
		t.Skip("git not installed")
	}
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)
	ctx := context.Background()

	require.NoError(t, client.Init(ctx))
	assert.True(t, IsRepo(tmpDir))

	_, err := client.Run(ctx, "config", "user.email", "test@example.com")
	require.NoError(t, err)
	_, err = client.Run(ctx, "config", "user.name", "Test")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "project.yaml"), []byte("name: demo\n"), 0644))
	status, err := client.Status(ctx, "project.yaml")
	require.NoError(t, err)
	assert.Contains(t, status, "project.yaml")

	require.NoError(t, client.Add(ctx, "project.yaml"))
	require.NoError(t, client.Commit(ctx, "chore: init"))

	status, err = client.Status(ctx, "project.yaml")
	require.NoError(t, err)
	assert.Empty(t, status)

	log, err := client.Log(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"chore: init"}, log)
}

func TestIsRepo_Missing(t *testing.T) {
	assert.False(t, IsRepo(t.TempDir()))
}
