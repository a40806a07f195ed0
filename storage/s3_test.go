package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildKeyWithFolder(t *testing.T) {
	key := buildKey("inspections/original", "photo.jpg")

	assert.True(t, strings.HasPrefix(key, "inspections/original/"))
	assert.True(t, strings.HasSuffix(key, "-photo.jpg"))
}

func TestBuildKeyWithoutFolder(t *testing.T) {
	key := buildKey("", "photo.jpg")

	assert.False(t, strings.Contains(key, "/"))
	assert.True(t, strings.HasSuffix(key, "-photo.jpg"))
}

func TestBuildKeyIsCollisionFree(t *testing.T) {
	a := buildKey("uploads", "same.png")
	b := buildKey("uploads", "same.png")

	assert.NotEqual(t, a, b)
}
