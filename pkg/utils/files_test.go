package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var program = []byte{0x00, 0xE0, 0x12, 0x00}

func TestLoadFile_Raw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.ch8")
	require.NoError(t, os.WriteFile(path, program, 0o644))

	b, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, program, b)
}

func TestLoadFile_Gzip(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(program)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "loop.ch8.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	b, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, program, b)
}

func TestLoadFile_Zip(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	_, err := w.Create("roms/")
	require.NoError(t, err)
	f, err := w.Create("roms/loop.ch8")
	require.NoError(t, err)
	_, err = f.Write(program)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "loop.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	b, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, program, b)
}

func TestLoadFile_EmptyZip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, zip.NewWriter(&buf).Close())

	path := filepath.Join(t.TempDir(), "empty.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
