package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/driveline/vehicle-inspection-api/api/handlers"
	stmocks "github.com/driveline/vehicle-inspection-api/storage/mocks"
)

func multipartBody(t *testing.T, fileName, contentType, folder string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	assert.NoError(t, err)
	_, err = part.Write(payload)
	assert.NoError(t, err)

	if folder != "" {
		assert.NoError(t, mw.WriteField("folder", folder))
	}
	assert.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestStorage_UploadHandlerStoresFile(t *testing.T) {
	store := &stmocks.ObjectStorage{}
	store.On("Upload", mock.Anything, mock.Anything, "report.pdf", "reports", "application/pdf").
		Return("reports/uuid-report.pdf", nil)
	store.On("SignedURL", mock.Anything, "reports/uuid-report.pdf").
		Return("https://signed.example/report.pdf", nil)
	h := handlers.Storage{Storage: store}

	body, contentType := multipartBody(t, "report.pdf", "application/pdf", "reports", []byte("%PDF-1.7"))
	req := httptest.NewRequest("POST", "/api/v1/storage/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.UploadHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var got map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "reports/uuid-report.pdf", got["key"])
	assert.Equal(t, "https://signed.example/report.pdf", got["url"])
}

func TestStorage_UploadHandlerDefaultsFolder(t *testing.T) {
	store := &stmocks.ObjectStorage{}
	store.On("Upload", mock.Anything, mock.Anything, "photo.jpg", "uploads", "image/jpeg").
		Return("uploads/uuid-photo.jpg", nil)
	store.On("SignedURL", mock.Anything, mock.Anything).Return("", errors.New("signer down"))
	h := handlers.Storage{Storage: store}

	body, contentType := multipartBody(t, "photo.jpg", "image/jpeg", "", []byte{0xFF, 0xD8})
	req := httptest.NewRequest("POST", "/api/v1/storage/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.UploadHandler(rr, req)

	// Signing failure only drops the convenience URL from the response.
	assert.Equal(t, http.StatusCreated, rr.Code)
	var got map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "uploads/uuid-photo.jpg", got["key"])
	assert.NotContains(t, got, "url")
}

func TestStorage_UploadHandlerMissingFile(t *testing.T) {
	store := &stmocks.ObjectStorage{}
	h := handlers.Storage{Storage: store}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	assert.NoError(t, mw.WriteField("folder", "reports"))
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/storage/upload", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.UploadHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
