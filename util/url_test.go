package util

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestFilenameFromURLString(t *testing.T) {
	assert := assert_.New(t)

	filename, err := FilenameFromURLString("https://i.redd.it/x.jpg")
	assert.NoError(err)
	assert.Equal("x.jpg", filename)

	filename, err = FilenameFromURLString("https://v.example.com/a/b/clip.mp4?source=feed")
	assert.NoError(err)
	assert.Equal("clip.mp4", filename)

	_, err = FilenameFromURLString("https://example.com/")
	assert.ErrorIs(err, ErrNoFilename)

	_, err = FilenameFromURLString("https://example.com/..")
	assert.ErrorIs(err, ErrNoFilename)
}

func TestSanitizeFilename(t *testing.T) {
	assert := assert_.New(t)

	assert.Equal("cat", SanitizeFilename("cat"))
	assert.Equal("a_cat___picture", SanitizeFilename("a cat & picture"))
	assert.Equal("one_two", SanitizeFilename("  one\n two  "))
	assert.Equal("untitled", SanitizeFilename(""))
	assert.Equal("untitled", SanitizeFilename("..."))
	assert.LessOrEqual(len(SanitizeFilename(string(make([]byte, 4096)))), 150)
}
