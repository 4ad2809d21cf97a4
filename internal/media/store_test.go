package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFileName(t *testing.T) {
	name := FileName(AirplaneDir, "Boeing 737 MAX", "Photo.JPG")
	assert.Regexp(t, regexp.MustCompile(`^uploads/planes/boeing-737-max-[0-9a-f-]{36}\.jpg$`), name)
}

func TestStore_SaveImage(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, "/media", 0)

	rel, err := s.SaveImage(CrewDir, "John Doe", "me.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "uploads/crew_photos/john-doe-"))

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "/media/"+rel, s.URL(rel))

	require.NoError(t, s.Remove(rel))
	require.NoError(t, s.Remove(rel))
}

func TestStore_SaveImage_AddsExtensionFromFormat(t *testing.T) {
	s := NewStore(t.TempDir(), "/media/", 0)

	rel, err := s.SaveImage(AirplaneDir, "A320", "blob", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(rel))
}

func TestStore_SaveImage_ExtensionFollowsFormat(t *testing.T) {
	s := NewStore(t.TempDir(), "/media/", 0)

	// PNG под чужим расширением сохраняется как .png
	rel, err := s.SaveImage(AirplaneDir, "A320", "x.html", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(rel))

	rel, err = s.SaveImage(AirplaneDir, "A320", "x.JPEG", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(rel))

	rel, err = s.SaveImage(AirplaneDir, "A320", "x.PNG", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(rel))
}

func TestWithFormatExt(t *testing.T) {
	assert.Equal(t, "photo.jpeg", withFormatExt("photo.jpeg", "jpeg"))
	assert.Equal(t, "photo.jpg", withFormatExt("photo.gif", "jpeg"))
	assert.Equal(t, "anim.gif", withFormatExt("anim", "gif"))
}

func TestStore_SaveImage_Rejects(t *testing.T) {
	s := NewStore(t.TempDir(), "/media/", 16)

	_, err := s.SaveImage(AirplaneDir, "A320", "notes.txt", strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, err = s.SaveImage(AirplaneDir, "A320", "big.png", bytes.NewReader(pngBytes(t)))
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestStore_URLEmpty(t *testing.T) {
	assert.Equal(t, "", NewStore("x", "/media/", 0).URL(""))
}
