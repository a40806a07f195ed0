package handlers_test

import (
	"github.com/driveline/vehicle-inspection-api/storage"
)

func storagePresign(url, key string) storage.PresignedUpload {
	return storage.PresignedUpload{URL: url, Key: key}
}
