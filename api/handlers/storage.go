package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/driveline/vehicle-inspection-api/config"
	"github.com/driveline/vehicle-inspection-api/storage"
)

// maxUploadBytes bounds the in-memory portion of a multipart upload
const maxUploadBytes = 32 << 20

// Storage exported for testing purposes
type Storage struct {
	Storage storage.ObjectStorage
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}

// UploadHandler streams one multipart file into the object store and returns
// its key plus a signed download URL
func (s Storage) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("failed to read file field", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}
	mimeType := header.Header.Get("Content-Type")

	key, err := s.Storage.Upload(r.Context(), file, header.Filename, folder, mimeType)
	if err != nil {
		config.ErrorStatus("failed to upload file", http.StatusInternalServerError, w, err)
		return
	}

	resp := uploadResponse{Key: key}
	if url, err := s.Storage.SignedURL(r.Context(), key); err == nil {
		resp.URL = url
	} else {
		zap.S().Debugw("failed to sign uploaded object url", "key", key, "error", err)
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}
