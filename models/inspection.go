package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// InspectionStatus is the three-value lifecycle label on an inspection.
// Ordering DRAFT -> COMPLETED -> SENT is a convention only; any value may be
// set directly by an authorized caller.
type InspectionStatus string

// Inspection status values
const (
	StatusDraft     InspectionStatus = "DRAFT"
	StatusCompleted InspectionStatus = "COMPLETED"
	StatusSent      InspectionStatus = "SENT"
)

// ValidStatus reports whether s is one of the three inspection status values
func ValidStatus(s InspectionStatus) bool {
	switch s {
	case StatusDraft, StatusCompleted, StatusSent:
		return true
	}
	return false
}

// Inspection holds the structure for the inspection collection in mongo
type Inspection struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	VehicleID   primitive.ObjectID `json:"vehicleId" bson:"vehicleId"`
	InspectedBy primitive.ObjectID `json:"inspectedBy" bson:"inspectedBy"`
	// InspectorRole is a snapshot of the inspector's role at creation time.
	// It is never re-derived from the user record.
	InspectorRole UserRole          `json:"inspectorRole" bson:"inspectorRole"`
	Status        InspectionStatus  `json:"status" bson:"status"`
	Images        []InspectionImage `json:"images" bson:"images"`
	CreatedAt     interface{}       `json:"createdAt" bson:"createdAt"`
	UpdatedAt     interface{}       `json:"updatedAt" bson:"updatedAt"`

	// Vehicle and Inspector are resolved references attached on read paths
	Vehicle   *Vehicle `json:"vehicle,omitempty" bson:"-"`
	Inspector *User    `json:"inspector,omitempty" bson:"-"`
}

// InspectionImage is a sub-document owned by an inspection, addressed by its own id
type InspectionImage struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id"`
	OriginalImageKey string             `json:"originalImageKey" bson:"originalImageKey"`
	AnalysedImageKey string             `json:"analysedImageKey,omitempty" bson:"analysedImageKey,omitempty"`
	// AIRaw is the unvalidated response payload from the external analysis
	// pipeline, kept for audit and debugging
	AIRaw   interface{} `json:"aiRaw,omitempty" bson:"aiRaw,omitempty"`
	Damages []Damage    `json:"damages" bson:"damages"`

	// Derived signed URLs, never stored
	OriginalImageURL string `json:"originalImageUrl,omitempty" bson:"-"`
	AnalysedImageURL string `json:"analysedImageUrl,omitempty" bson:"-"`
}

// Damage is a sub-document owned by an inspection image, addressed by its own id
type Damage struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id"`
	Type        string              `json:"type" bson:"type"`
	Severity    string              `json:"severity" bson:"severity"`
	Confidence  float64             `json:"confidence" bson:"confidence"`
	BBox        []float64           `json:"bbox" bson:"bbox"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	RepairCost  *RepairCostEstimate `json:"repair_cost_estimate,omitempty" bson:"repair_cost_estimate,omitempty"`
}

// RepairCostEstimate is an optional cost range attached to a damage.
// min <= max is not enforced; values come from an external classifier.
type RepairCostEstimate struct {
	Currency string  `json:"currency" bson:"currency"`
	Min      float64 `json:"min" bson:"min"`
	Max      float64 `json:"max" bson:"max"`
}

// InspectionListResponse is the paginated envelope returned by the
// inspections-by-vehicle endpoint
type InspectionListResponse struct {
	Items []Inspection `json:"items"`
	Meta  ListMeta     `json:"meta"`
}
