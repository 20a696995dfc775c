package uploads

import (
	"encoding/base64"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "uploads")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := New(dir, log)
	require.NoError(t, err)

	return s, dir
}

func pngDataURI(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestSaveDataURIs(t *testing.T) {
	s, dir := newTestStore(t)

	paths := s.SaveDataURIs([]string{
		pngDataURI("first"),
		"not a data uri",              // silently skipped
		"data:image/png;base64,@@@@",  // undecodable, skipped
		pngDataURI("second"),
	})

	require.Len(t, paths, 2)

	for _, p := range paths {
		assert.True(t, strings.HasPrefix(p, URLPrefix))
		assert.True(t, strings.HasSuffix(p, ".png"))

		data, err := os.ReadFile(filepath.Join(dir, filepath.Base(p)))
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}

	// order of accepted entries is preserved
	first, err := os.ReadFile(filepath.Join(dir, filepath.Base(paths[0])))
	require.NoError(t, err)
	assert.Equal(t, "first", string(first))
}

func TestSaveDataURIsExtensionFromSubtype(t *testing.T) {
	s, _ := newTestStore(t)

	paths := s.SaveDataURIs([]string{
		"data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("x")),
	})

	require.Len(t, paths, 1)
	assert.True(t, strings.HasSuffix(paths[0], ".jpeg"))
}

func TestRemoveBestEffort(t *testing.T) {
	s, dir := newTestStore(t)

	paths := s.SaveDataURIs([]string{pngDataURI("img")})
	require.Len(t, paths, 1)

	// removing a mix of existing and missing files never fails
	s.Remove(append(paths, "/uploads/never-existed.png"))

	_, err := os.Stat(filepath.Join(dir, filepath.Base(paths[0])))
	assert.True(t, os.IsNotExist(err))
}
