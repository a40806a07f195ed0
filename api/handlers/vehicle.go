package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/driveline/vehicle-inspection-api/api"
	"github.com/driveline/vehicle-inspection-api/config"
	"github.com/driveline/vehicle-inspection-api/databases"
	"github.com/driveline/vehicle-inspection-api/models"
	"github.com/driveline/vehicle-inspection-api/storage"
)

// Vehicle exported for testing purposes
type Vehicle struct {
	DB      databases.VehicleDatabase
	Storage storage.ObjectStorage
}

// CreateVehicleHandler creates a vehicle record
func (v Vehicle) CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if vehicle.Make == "" || vehicle.Model == "" || vehicle.RegistrationNumber == "" || vehicle.ChassisNumber == "" {
		config.ErrorStatus("failed to validate vehicle", http.StatusBadRequest, w,
			fmt.Errorf("make, model, registrationNumber and chassisNumber are required"))
		return
	}
	if vehicle.Transmission != models.TransmissionManual && vehicle.Transmission != models.TransmissionAutomatic {
		config.ErrorStatus("failed to validate vehicle", http.StatusBadRequest, w,
			fmt.Errorf("transmission must be MANUAL or AUTOMATIC"))
		return
	}

	vehicle.ID = primitive.NewObjectID()
	vehicle.InspectionIDs = []primitive.ObjectID{}
	vehicle.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	vehicle.UpdatedAt = vehicle.CreatedAt

	_, err := v.DB.InsertOne(r.Context(), vehicle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			config.ErrorStatus("chassisNumber already exists", http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus("failed to create vehicle", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(vehicle)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// VehicleByIDHandler returns a vehicle by ID with its signed cover image URL
func (v Vehicle) VehicleByIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := v.DB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	v.attachCoverURL(r, dbResp)

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// vehiclePatch carries only the fields present in an update request body.
// Pointer fields distinguish "absent" from "set to zero value".
type vehiclePatch struct {
	Make               *string                  `json:"make"`
	Model              *string                  `json:"model"`
	Variant            *string                  `json:"variant"`
	YearOfManufacture  *int                     `json:"yearOfManufacture"`
	RegistrationNumber *string                  `json:"registrationNumber"`
	ChassisNumber      *string                  `json:"chassisNumber"`
	Transmission       *models.TransmissionType `json:"transmission"`
	CarImageKey        *string                  `json:"carImageKey"`
}

// UpdateVehicleHandler applies a partial update to a vehicle. A replaced cover
// image key has its old object deleted before the document write.
func (v Vehicle) UpdateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var patch vehiclePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if patch.Transmission != nil && *patch.Transmission != models.TransmissionManual && *patch.Transmission != models.TransmissionAutomatic {
		config.ErrorStatus("failed to validate vehicle", http.StatusBadRequest, w,
			fmt.Errorf("transmission must be MANUAL or AUTOMATIC"))
		return
	}

	current, err := v.DB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	set := bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())}
	if patch.Make != nil {
		set["make"] = *patch.Make
	}
	if patch.Model != nil {
		set["model"] = *patch.Model
	}
	if patch.Variant != nil {
		set["variant"] = *patch.Variant
	}
	if patch.YearOfManufacture != nil {
		set["yearOfManufacture"] = *patch.YearOfManufacture
	}
	if patch.RegistrationNumber != nil {
		set["registrationNumber"] = *patch.RegistrationNumber
	}
	if patch.ChassisNumber != nil {
		set["chassisNumber"] = *patch.ChassisNumber
	}
	if patch.Transmission != nil {
		set["transmission"] = *patch.Transmission
	}
	if patch.CarImageKey != nil {
		// The old cover object goes first; a failed document write after this
		// point loses the old image, which is the accepted tradeoff.
		if current.CarImageKey != "" && current.CarImageKey != *patch.CarImageKey {
			if err := v.Storage.Delete(r.Context(), current.CarImageKey); err != nil {
				zap.S().Warnw("failed to delete replaced car image", "key", current.CarImageKey, "error", err)
			}
		}
		set["carImageKey"] = *patch.CarImageKey
	}

	res, err := v.DB.UpdateOne(r.Context(), bson.M{"_id": vID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			config.ErrorStatus("chassisNumber already exists", http.StatusConflict, w, err)
			return
		}
		config.ErrorStatus("failed to update vehicle", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	updated, err := v.DB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}
	v.attachCoverURL(r, updated)

	b, err := json.Marshal(updated)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteVehicleHandler deletes a vehicle and its cover image object.
// Owned inspections are not cascaded.
func (v Vehicle) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	vID, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	vehicle, err := v.DB.FindOne(r.Context(), bson.M{"_id": vID})
	if err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	if vehicle.CarImageKey != "" {
		if err := v.Storage.Delete(r.Context(), vehicle.CarImageKey); err != nil {
			zap.S().Warnw("failed to delete car image", "key", vehicle.CarImageKey, "error", err)
		}
	}

	if err := v.DB.DeleteOne(r.Context(), bson.M{"_id": vID}); err != nil {
		config.ErrorStatus("failed to delete vehicle", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vehicle deleted successfully",
	})
}

// VehicleListHandler returns a filtered, paginated vehicle list sorted newest first
func (v Vehicle) VehicleListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := bson.M{}

	// Anchored prefix match on descriptive fields, substring match on the
	// identifying numbers.
	for field, anchored := range map[string]bool{
		"make":               true,
		"model":              true,
		"variant":            true,
		"registrationNumber": false,
		"chassisNumber":      false,
	} {
		if value := q.Get(field); value != "" {
			pattern := regexp.QuoteMeta(value)
			if anchored {
				pattern = "^" + pattern
			}
			filter[field] = bson.M{"$regex": pattern, "$options": "i"}
		}
	}
	if transmission := q.Get("transmission"); transmission != "" {
		filter["transmission"] = transmission
	}
	if year := q.Get("yearOfManufacture"); year != "" {
		if n, err := strconv.Atoi(year); err == nil {
			filter["yearOfManufacture"] = n
		}
	}
	if search := q.Get("search"); search != "" {
		pattern := regexp.QuoteMeta(search)
		filter["$or"] = []bson.M{
			{"make": bson.M{"$regex": pattern, "$options": "i"}},
			{"model": bson.M{"$regex": pattern, "$options": "i"}},
			{"variant": bson.M{"$regex": pattern, "$options": "i"}},
			{"registrationNumber": bson.M{"$regex": pattern, "$options": "i"}},
			{"chassisNumber": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	page, limit := pageAndLimit(r)
	limit, page = databases.Clamp(limit, page)

	// Use request context with timeout for proper trace tracking and timeout handling
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	total, err := v.DB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count vehicles", http.StatusInternalServerError, w, err)
		return
	}

	opts := databases.Paginate(limit, page)
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	// The inspection links are list noise; they stay on the detail endpoint.
	opts.SetProjection(bson.M{"inspectionIds": 0})
	dbResp, err := v.DB.Find(ctx, filter, opts)
	if err != nil {
		config.ErrorStatus("failed to get vehicles", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Vehicle{}
	}
	for i := range dbResp {
		v.attachCoverURL(r, &dbResp[i])
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	b, err := json.Marshal(models.VehicleListResponse{
		Items: dbResp,
		Meta: models.ListMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PresignCarImageHandler issues a presigned PUT slot for a vehicle cover image
func (v Vehicle) PresignCarImageHandler(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ext, err := extensionForMIME(req.MimeType)
	if err != nil {
		config.ErrorStatus("failed to validate mime type", http.StatusBadRequest, w, err)
		return
	}

	slot, err := v.Storage.PresignUpload(r.Context(), fmt.Sprintf("car-image.%s", ext), req.MimeType, "vehicles/car-images")
	if err != nil {
		config.ErrorStatus("failed to presign upload", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(slot)
}

// presignRequest is the body accepted by every presigned-slot endpoint
type presignRequest struct {
	MimeType string `json:"mimeType"`
}

func (v Vehicle) attachCoverURL(r *http.Request, vehicle *models.Vehicle) {
	if vehicle == nil || vehicle.CarImageKey == "" {
		return
	}
	url, err := v.Storage.SignedURL(r.Context(), vehicle.CarImageKey)
	if err != nil {
		zap.S().Debugw("failed to sign car image url", "key", vehicle.CarImageKey, "error", err)
		return
	}
	vehicle.CarImageURL = url
}
