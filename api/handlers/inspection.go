package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/driveline/vehicle-inspection-api/api"
	"github.com/driveline/vehicle-inspection-api/config"
	"github.com/driveline/vehicle-inspection-api/databases"
	"github.com/driveline/vehicle-inspection-api/models"
	"github.com/driveline/vehicle-inspection-api/storage"
)

// Inspection exported for testing purposes
type Inspection struct {
	DB      databases.InspectionDatabase
	VDB     databases.VehicleDatabase
	UDB     databases.UserDatabase
	Storage storage.ObjectStorage
}

type damageInput struct {
	Type        string                     `json:"type"`
	Severity    string                     `json:"severity"`
	Confidence  float64                    `json:"confidence"`
	BBox        []float64                  `json:"bbox"`
	Description string                     `json:"description"`
	RepairCost  *models.RepairCostEstimate `json:"repair_cost_estimate"`
}

type imageInput struct {
	OriginalImageKey string        `json:"originalImageKey"`
	AnalysedImageKey string        `json:"analysedImageKey"`
	AIRaw            interface{}   `json:"aiRaw"`
	Damages          []damageInput `json:"damages"`
}

type createInspectionRequest struct {
	VehicleID string       `json:"vehicleId"`
	Images    []imageInput `json:"images"`
}

// validateDamageInputs enforces the damage value ranges: confidence in [0,1]
// and repair cost bounds never negative.
func validateDamageInputs(inputs []damageInput) error {
	for _, d := range inputs {
		if d.Confidence < 0 || d.Confidence > 1 {
			return fmt.Errorf("confidence must be between 0 and 1")
		}
		if d.RepairCost != nil && (d.RepairCost.Min < 0 || d.RepairCost.Max < 0) {
			return fmt.Errorf("repair cost values must not be negative")
		}
	}
	return nil
}

func buildDamages(inputs []damageInput) []models.Damage {
	damages := make([]models.Damage, 0, len(inputs))
	for _, d := range inputs {
		damages = append(damages, models.Damage{
			ID:          primitive.NewObjectID(),
			Type:        d.Type,
			Severity:    d.Severity,
			Confidence:  d.Confidence,
			BBox:        d.BBox,
			Description: d.Description,
			RepairCost:  d.RepairCost,
		})
	}
	return damages
}

// CreateInspectionHandler creates an inspection and links it to its vehicle.
// A failed link rolls the inspection back with a compensating delete.
func (i Inspection) CreateInspectionHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := api.IdentityFromContext(r.Context())
	if !ok {
		config.ErrorStatus("failed to resolve caller identity", http.StatusUnauthorized, w,
			fmt.Errorf("no identity on request context"))
		return
	}
	inspectorID, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req createInspectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	vID, err := primitive.ObjectIDFromHex(req.VehicleID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := i.VDB.FindOne(r.Context(), bson.M{"_id": vID}); err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	images := make([]models.InspectionImage, 0, len(req.Images))
	for _, img := range req.Images {
		if img.OriginalImageKey == "" {
			config.ErrorStatus("failed to validate inspection", http.StatusBadRequest, w,
				fmt.Errorf("originalImageKey is required on every image"))
			return
		}
		if err := validateDamageInputs(img.Damages); err != nil {
			config.ErrorStatus("failed to validate damage", http.StatusBadRequest, w, err)
			return
		}
		images = append(images, models.InspectionImage{
			ID:               primitive.NewObjectID(),
			OriginalImageKey: img.OriginalImageKey,
			AnalysedImageKey: img.AnalysedImageKey,
			AIRaw:            img.AIRaw,
			Damages:          buildDamages(img.Damages),
		})
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	inspection := models.Inspection{
		ID:            primitive.NewObjectID(),
		VehicleID:     vID,
		InspectedBy:   inspectorID,
		InspectorRole: identity.Role,
		Status:        models.StatusDraft,
		Images:        images,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := i.DB.InsertOne(r.Context(), inspection); err != nil {
		config.ErrorStatus("failed to create inspection", http.StatusInternalServerError, w, err)
		return
	}

	res, err := i.VDB.UpdateOne(r.Context(), bson.M{"_id": vID},
		bson.M{"$push": bson.M{"inspectionIds": inspection.ID}})
	if err != nil || res.MatchedCount == 0 {
		// Compensating delete keeps the two documents consistent without a
		// multi-document transaction.
		if delErr := i.DB.DeleteOne(r.Context(), bson.M{"_id": inspection.ID}); delErr != nil {
			zap.S().Errorw("failed to roll back inspection after link failure",
				"inspectionId", inspection.ID.Hex(), "error", delErr)
		}
		if err == nil {
			err = mongo.ErrNoDocuments
		}
		config.ErrorStatus("failed to link inspection to vehicle", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(inspection)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

type addImageRequest struct {
	OriginalImageKey string `json:"originalImageKey"`
}

// AddImageHandler appends one image sub-document to an inspection
func (i Inspection) AddImageHandler(w http.ResponseWriter, r *http.Request) {
	iID, err := primitive.ObjectIDFromHex(mux.Vars(r)["inspection_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req addImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.OriginalImageKey == "" {
		config.ErrorStatus("failed to validate image", http.StatusBadRequest, w,
			fmt.Errorf("originalImageKey is required"))
		return
	}

	image := models.InspectionImage{
		ID:               primitive.NewObjectID(),
		OriginalImageKey: req.OriginalImageKey,
		Damages:          []models.Damage{},
	}

	res, err := i.DB.UpdateOne(r.Context(), bson.M{"_id": iID}, bson.M{
		"$push": bson.M{"images": image},
		"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	})
	if err != nil {
		config.ErrorStatus("failed to add image", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("failed to get inspection by ID", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	i.respondWithInspection(w, r, iID)
}

// imagePatch carries only the image fields present in the request body.
// AIRaw uses RawMessage so an absent field can be told apart from null.
type imagePatch struct {
	OriginalImageKey *string         `json:"originalImageKey"`
	AnalysedImageKey *string         `json:"analysedImageKey"`
	AIRaw            json.RawMessage `json:"aiRaw"`
	Damages          *[]damageInput  `json:"damages"`
}

// UpdateImageHandler patches one image sub-document by id. Replaced storage
// keys have their old objects deleted best-effort before the write.
func (i Inspection) UpdateImageHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	iID, err := primitive.ObjectIDFromHex(vars["inspection_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	imgID, err := primitive.ObjectIDFromHex(vars["image_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var patch imagePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	// Validate before the old-key deletes below; a rejected patch must not
	// remove any object.
	if patch.Damages != nil {
		if err := validateDamageInputs(*patch.Damages); err != nil {
			config.ErrorStatus("failed to validate damage", http.StatusBadRequest, w, err)
			return
		}
	}

	inspection, err := i.DB.FindOne(r.Context(), bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inspection by ID", http.StatusNotFound, w, err)
		return
	}
	var current *models.InspectionImage
	for idx := range inspection.Images {
		if inspection.Images[idx].ID == imgID {
			current = &inspection.Images[idx]
			break
		}
	}
	if current == nil {
		config.ErrorStatus("failed to get image by ID", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	set := bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())}
	if patch.OriginalImageKey != nil {
		if current.OriginalImageKey != "" && current.OriginalImageKey != *patch.OriginalImageKey {
			i.deleteObject(r, current.OriginalImageKey)
		}
		set["images.$.originalImageKey"] = *patch.OriginalImageKey
	}
	if patch.AnalysedImageKey != nil {
		if current.AnalysedImageKey != "" && current.AnalysedImageKey != *patch.AnalysedImageKey {
			i.deleteObject(r, current.AnalysedImageKey)
		}
		set["images.$.analysedImageKey"] = *patch.AnalysedImageKey
	}
	if len(patch.AIRaw) > 0 {
		var aiRaw interface{}
		if err := json.Unmarshal(patch.AIRaw, &aiRaw); err != nil {
			config.ErrorStatus("failed to decode aiRaw payload", http.StatusBadRequest, w, err)
			return
		}
		set["images.$.aiRaw"] = aiRaw
	}
	if patch.Damages != nil {
		set["images.$.damages"] = buildDamages(*patch.Damages)
	}

	res, err := i.DB.UpdateOne(r.Context(),
		bson.M{"_id": iID, "images._id": imgID},
		bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update image", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("failed to get image by ID", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	i.respondWithInspection(w, r, iID)
}

// damagePatch carries only the damage fields present in the request body.
// Repair cost sub-fields are individually addressable.
type damagePatch struct {
	Type        *string    `json:"type"`
	Severity    *string    `json:"severity"`
	Confidence  *float64   `json:"confidence"`
	BBox        *[]float64 `json:"bbox"`
	Description *string    `json:"description"`
	RepairCost  *struct {
		Currency *string  `json:"currency"`
		Min      *float64 `json:"min"`
		Max      *float64 `json:"max"`
	} `json:"repair_cost_estimate"`
}

// UpdateDamageHandler patches one damage two levels deep using dual array
// filters so sibling damages and sibling images stay untouched
func (i Inspection) UpdateDamageHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	iID, err := primitive.ObjectIDFromHex(vars["inspection_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	imgID, err := primitive.ObjectIDFromHex(vars["image_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	dmgID, err := primitive.ObjectIDFromHex(vars["damage_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var patch damagePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if patch.Confidence != nil && (*patch.Confidence < 0 || *patch.Confidence > 1) {
		config.ErrorStatus("failed to validate damage", http.StatusBadRequest, w,
			fmt.Errorf("confidence must be between 0 and 1"))
		return
	}
	if patch.RepairCost != nil {
		if (patch.RepairCost.Min != nil && *patch.RepairCost.Min < 0) ||
			(patch.RepairCost.Max != nil && *patch.RepairCost.Max < 0) {
			config.ErrorStatus("failed to validate damage", http.StatusBadRequest, w,
				fmt.Errorf("repair cost values must not be negative"))
			return
		}
	}

	prefix := "images.$[img].damages.$[dmg]."
	set := bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())}
	if patch.Type != nil {
		set[prefix+"type"] = *patch.Type
	}
	if patch.Severity != nil {
		set[prefix+"severity"] = *patch.Severity
	}
	if patch.Confidence != nil {
		set[prefix+"confidence"] = *patch.Confidence
	}
	if patch.BBox != nil {
		set[prefix+"bbox"] = *patch.BBox
	}
	if patch.Description != nil {
		set[prefix+"description"] = *patch.Description
	}
	if patch.RepairCost != nil {
		if patch.RepairCost.Currency != nil {
			set[prefix+"repair_cost_estimate.currency"] = *patch.RepairCost.Currency
		}
		if patch.RepairCost.Min != nil {
			set[prefix+"repair_cost_estimate.min"] = *patch.RepairCost.Min
		}
		if patch.RepairCost.Max != nil {
			set[prefix+"repair_cost_estimate.max"] = *patch.RepairCost.Max
		}
	}

	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"img._id": imgID},
			bson.M{"dmg._id": dmgID},
		},
	})
	filter := bson.M{
		"_id": iID,
		"images": bson.M{"$elemMatch": bson.M{
			"_id":         imgID,
			"damages._id": dmgID,
		}},
	}
	res, err := i.DB.UpdateOne(r.Context(), filter, bson.M{"$set": set}, opts)
	if err != nil {
		config.ErrorStatus("failed to update damage", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("failed to get damage by ID", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	i.respondWithInspection(w, r, iID)
}

type changeStatusRequest struct {
	Status models.InspectionStatus `json:"status"`
}

// ChangeStatusHandler sets the inspection status. Transitions are unrestricted.
func (i Inspection) ChangeStatusHandler(w http.ResponseWriter, r *http.Request) {
	iID, err := primitive.ObjectIDFromHex(mux.Vars(r)["inspection_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !models.ValidStatus(req.Status) {
		config.ErrorStatus("failed to validate status", http.StatusBadRequest, w,
			fmt.Errorf("status must be one of DRAFT, COMPLETED, SENT"))
		return
	}

	res, err := i.DB.UpdateOne(r.Context(), bson.M{"_id": iID}, bson.M{
		"$set": bson.M{
			"status":    req.Status,
			"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
		},
	})
	if err != nil {
		config.ErrorStatus("failed to update status", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("failed to get inspection by ID", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	i.respondWithInspection(w, r, iID)
}

// DeleteInspectionHandler removes an inspection. Storage cleanup runs first so
// a mid-operation crash leaves at worst an orphaned vehicle reference.
func (i Inspection) DeleteInspectionHandler(w http.ResponseWriter, r *http.Request) {
	iID, err := primitive.ObjectIDFromHex(mux.Vars(r)["inspection_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	inspection, err := i.DB.FindOne(r.Context(), bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inspection by ID", http.StatusNotFound, w, err)
		return
	}

	for _, img := range inspection.Images {
		i.deleteObject(r, img.OriginalImageKey)
		i.deleteObject(r, img.AnalysedImageKey)
	}

	if err := i.DB.DeleteOne(r.Context(), bson.M{"_id": iID}); err != nil {
		config.ErrorStatus("failed to delete inspection", http.StatusInternalServerError, w, err)
		return
	}

	if _, err := i.VDB.UpdateOne(r.Context(), bson.M{"_id": inspection.VehicleID},
		bson.M{"$pull": bson.M{"inspectionIds": iID}}); err != nil {
		zap.S().Warnw("failed to unlink inspection from vehicle",
			"inspectionId", iID.Hex(), "vehicleId", inspection.VehicleID.Hex(), "error", err)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Inspection deleted successfully",
	})
}

// InspectionsByVehicleIDHandler returns the filtered, paginated inspections of a vehicle
func (i Inspection) InspectionsByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vID, err := primitive.ObjectIDFromHex(mux.Vars(r)["vehicle_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, err := i.VDB.FindOne(r.Context(), bson.M{"_id": vID}); err != nil {
		config.ErrorStatus("failed to get vehicle by ID", http.StatusNotFound, w, err)
		return
	}

	q := r.URL.Query()
	filter := bson.M{"vehicleId": vID}
	narrowed := false
	if inspectionID := q.Get("inspectionId"); inspectionID != "" {
		id, err := primitive.ObjectIDFromHex(inspectionID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["_id"] = id
		narrowed = true
	}
	if status := q.Get("status"); status != "" {
		filter["status"] = status
	}
	if inspectedBy := q.Get("inspectedBy"); inspectedBy != "" {
		id, err := primitive.ObjectIDFromHex(inspectedBy)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["inspectedBy"] = id
	}
	if role := q.Get("inspectorRole"); role != "" {
		filter["inspectorRole"] = role
	}

	page, limit := pageAndLimit(r)
	limit, page = databases.Clamp(limit, page)

	// Use request context with timeout for proper trace tracking and timeout handling
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	total, err := i.DB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count inspections", http.StatusInternalServerError, w, err)
		return
	}

	opts := databases.Paginate(limit, page)
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	dbResp, err := i.DB.Find(ctx, filter, opts)
	if err != nil {
		config.ErrorStatus("failed to get inspections", http.StatusInternalServerError, w, err)
		return
	}
	if narrowed && len(dbResp) == 0 {
		config.ErrorStatus("failed to get inspection by ID", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Inspection{}
	}
	for idx := range dbResp {
		i.enrich(r, &dbResp[idx])
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	b, err := json.Marshal(models.InspectionListResponse{
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

// InspectionByIDHandler returns one inspection with resolved references and signed URLs
func (i Inspection) InspectionByIDHandler(w http.ResponseWriter, r *http.Request) {
	iID, err := primitive.ObjectIDFromHex(mux.Vars(r)["inspection_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	i.respondWithInspection(w, r, iID)
}

// PresignOriginalHandler issues a presigned PUT slot for an original inspection image
func (i Inspection) PresignOriginalHandler(w http.ResponseWriter, r *http.Request) {
	i.presign(w, r, "inspections/original")
}

// PresignAnalysedHandler issues a presigned PUT slot for an analysed image.
// Reachable only through the server-to-server shared-secret path.
func (i Inspection) PresignAnalysedHandler(w http.ResponseWriter, r *http.Request) {
	i.presign(w, r, "inspections/analysed")
}

func (i Inspection) presign(w http.ResponseWriter, r *http.Request, folder string) {
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

	slot, err := i.Storage.PresignUpload(r.Context(), fmt.Sprintf("image.%s", ext), req.MimeType, folder)
	if err != nil {
		config.ErrorStatus("failed to presign upload", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(slot)
}

// respondWithInspection re-reads, enriches and writes the inspection
func (i Inspection) respondWithInspection(w http.ResponseWriter, r *http.Request, iID primitive.ObjectID) {
	inspection, err := i.DB.FindOne(r.Context(), bson.M{"_id": iID})
	if err != nil {
		config.ErrorStatus("failed to get inspection by ID", http.StatusNotFound, w, err)
		return
	}
	i.enrich(r, inspection)

	b, err := json.Marshal(inspection)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// enrich resolves the vehicle and inspector references and signs every image
// URL concurrently. Each enrichment is best-effort; one failure never blocks
// the others.
func (i Inspection) enrich(r *http.Request, inspection *models.Inspection) {
	ctx := r.Context()

	if vehicle, err := i.VDB.FindOne(ctx, bson.M{"_id": inspection.VehicleID}); err == nil {
		inspection.Vehicle = vehicle
	}
	if inspector, err := i.UDB.FindOne(ctx, bson.M{"_id": inspection.InspectedBy}); err == nil {
		inspection.Inspector = inspector
	}

	g := new(errgroup.Group)
	for idx := range inspection.Images {
		img := &inspection.Images[idx]
		g.Go(func() error {
			if img.OriginalImageKey != "" {
				if url, err := i.Storage.SignedURL(ctx, img.OriginalImageKey); err == nil {
					img.OriginalImageURL = url
				} else {
					zap.S().Debugw("failed to sign original image url", "key", img.OriginalImageKey, "error", err)
				}
			}
			if img.AnalysedImageKey != "" {
				if url, err := i.Storage.SignedURL(ctx, img.AnalysedImageKey); err == nil {
					img.AnalysedImageURL = url
				} else {
					zap.S().Debugw("failed to sign analysed image url", "key", img.AnalysedImageKey, "error", err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

// deleteObject removes a storage object best-effort
func (i Inspection) deleteObject(r *http.Request, key string) {
	if key == "" {
		return
	}
	if err := i.Storage.Delete(r.Context(), key); err != nil {
		zap.S().Warnw("failed to delete storage object", "key", key, "error", err)
	}
}
