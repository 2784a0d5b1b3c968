package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "/uploads/")

	url, err := s.Put(context.Background(), "user-1/a.jpg", []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/user-1/a.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "user-1", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestLocalStoreStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(filepath.Join(dir, "uploads"), "/uploads")

	url, err := s.Put(context.Background(), "../../escape.jpg", []byte("x"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.jpg", url)

	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.jpg"))
	assert.True(t, os.IsNotExist(err))
}
