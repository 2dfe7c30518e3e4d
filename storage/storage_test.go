package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	keyPattern := regexp.MustCompile(`^image/[0-9a-f-]{36}\.jpg$`)
	assert.Regexp(t, keyPattern, objectKey("image", "image/jpeg"))

	// Parameters on the MIME type are ignored.
	assert.True(t, strings.HasSuffix(objectKey("audio", "audio/ogg; codecs=opus"), ".ogg"))

	// Unknown types still get a usable key.
	assert.True(t, strings.HasSuffix(objectKey("image", "application/x-mystery"), ".bin"))

	// Keys do not collide.
	assert.NotEqual(t, objectKey("image", "image/png"), objectKey("image", "image/png"))
}

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)

	path, err := s.Save(context.Background(), "image", []byte("jpegdata"), "image/jpeg")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, "/uploads/image/"), "path %q", path)

	key := strings.TrimPrefix(path, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegdata"), data)
}
