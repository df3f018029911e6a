package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestStorage_SaveGetDelete(t *testing.T) {
	s, err := NewPosterStorage(t.TempDir())
	require.NoError(t, err)

	data := pngBytes(t)
	require.NoError(t, s.Save("poster_abc123.png", data))

	assert.True(t, s.Exists("poster_abc123.png"))

	got, err := s.Get("poster_abc123.png")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	hash, err := s.Hash("poster_abc123.png")
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	require.NoError(t, s.Delete("poster_abc123.png"))
	assert.False(t, s.Exists("poster_abc123.png"))

	// Deleting a missing file is not an error.
	assert.NoError(t, s.Delete("poster_abc123.png"))
}

func TestStorage_RejectsPathTraversal(t *testing.T) {
	s, err := NewAvatarStorage(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Save("../escape.png", pngBytes(t)))
	_, err = s.Get("../../etc/passwd")
	assert.Error(t, err)
	assert.False(t, s.Exists("a/b.png"))
}

func TestSniffExtension(t *testing.T) {
	ext, err := SniffExtension(pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	jpegHeader := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	ext, err = SniffExtension(jpegHeader)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	_, err = SniffExtension([]byte("plain text, not an image"))
	assert.Error(t, err)
}

func TestUniqueFilename(t *testing.T) {
	name := UniqueFilename("The Dark Knight", ".jpg")
	assert.True(t, strings.HasPrefix(name, "the_dark_knight_"), "got %s", name)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	// Two uploads of the same label never collide.
	assert.NotEqual(t, name, UniqueFilename("The Dark Knight", ".jpg"))

	// A label with no usable characters still produces a name.
	name = UniqueFilename("???", ".png")
	assert.True(t, strings.HasPrefix(name, "image_"), "got %s", name)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "chhello_divas", Slugify("Chhello Divas"))
	assert.Equal(t, "3_idiots", Slugify("3 Idiots!"))
	assert.Equal(t, "", Slugify("???"))
}

func TestComputeBlurHash(t *testing.T) {
	hash, err := ComputeBlurHash(pngBytes(t))
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	_, err = ComputeBlurHash([]byte("not an image"))
	assert.Error(t, err)
}
