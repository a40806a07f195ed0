package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TransmissionType is the closed set of vehicle transmission values
type TransmissionType string

// Transmission values accepted on vehicle create/update
const (
	TransmissionManual    TransmissionType = "MANUAL"
	TransmissionAutomatic TransmissionType = "AUTOMATIC"
)

// Vehicle holds the structure for the vehicle collection in mongo
type Vehicle struct {
	ID                 primitive.ObjectID   `json:"_id" bson:"_id"`
	Make               string               `json:"make" bson:"make"`
	Model              string               `json:"model" bson:"model"`
	Variant            string               `json:"variant,omitempty" bson:"variant,omitempty"`
	YearOfManufacture  int                  `json:"yearOfManufacture" bson:"yearOfManufacture"`
	RegistrationNumber string               `json:"registrationNumber" bson:"registrationNumber"`
	ChassisNumber      string               `json:"chassisNumber" bson:"chassisNumber"`
	Transmission       TransmissionType     `json:"transmission" bson:"transmission"`
	CarImageKey        string               `json:"carImageKey,omitempty" bson:"carImageKey,omitempty"`
	InspectionIDs      []primitive.ObjectID `json:"inspectionIds,omitempty" bson:"inspectionIds"`
	CreatedAt          interface{}          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          interface{}          `json:"updatedAt" bson:"updatedAt"`

	// CarImageURL is derived per response from CarImageKey, never stored
	CarImageURL string `json:"carImageUrl,omitempty" bson:"-"`
}

// VehicleListResponse is the paginated envelope returned by the vehicle list endpoint
type VehicleListResponse struct {
	Items []Vehicle `json:"items"`
	Meta  ListMeta  `json:"meta"`
}

// ListMeta carries pagination details for list responses
type ListMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}
