package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionForMIME(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
		wantErr  bool
	}{
		{"image/jpeg", "jpg", false},
		{"image/jpg", "jpg", false},
		{"image/png", "png", false},
		{"image/webp", "webp", false},
		{"image/heic", "heic", false},
		{"image/heif", "heif", false},
		{"image/gif", "gif", false},
		{"image/x-canon-cr2", "bin", false},
		{"application/pdf", "", true},
		{"video/mp4", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := extensionForMIME(tc.mimeType)
		if tc.wantErr {
			assert.Error(t, err, tc.mimeType)
			continue
		}
		assert.NoError(t, err, tc.mimeType)
		assert.Equal(t, tc.want, got, tc.mimeType)
	}
}

func TestPageAndLimit(t *testing.T) {
	req := httptest.NewRequest("GET", "/vehicles?page=3&limit=25", nil)
	page, limit := pageAndLimit(req)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	req = httptest.NewRequest("GET", "/vehicles?page=abc", nil)
	page, limit = pageAndLimit(req)
	assert.Equal(t, 0, page)
	assert.Equal(t, 0, limit)
}
