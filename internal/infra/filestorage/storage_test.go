package filestorage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSave_ResizesAndStoresJPEG(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, "/uploads", 100)
	require.NoError(t, err)

	images, err := s.Save(context.Background(), []Upload{
		{Filename: "hair.png", Data: bytes.NewReader(pngBytes(t, 400, 200))},
	})
	require.NoError(t, err)
	require.Len(t, images, 1)

	assert.True(t, strings.HasPrefix(images[0].URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(images[0].Key, ".jpg"))

	stored, err := imaging.Open(filepath.Join(dir, images[0].Key))
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Bounds().Dx())
	assert.Equal(t, 50, stored.Bounds().Dy())
}

func TestSave_RollsBackOnInvalidFile(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, "/uploads", 0)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), []Upload{
		{Filename: "ok.png", Data: bytes.NewReader(pngBytes(t, 10, 10))},
		{Filename: "broken.png", Data: strings.NewReader("not an image")},
	})
	assert.ErrorIs(t, err, ErrInvalidImage)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_NoFiles(t *testing.T) {
	s, err := New(t.TempDir(), "/uploads", 0)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}
