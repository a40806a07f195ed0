package databases

// go generate: mockery --name InspectionDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/driveline/vehicle-inspection-api/models"
)

const inspectionName = "inspections"

// InspectionDatabase contains the methods to use with the inspection database.
// UpdateOne takes options so callers can address nested image and damage
// sub-documents with array filters.
type InspectionDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Inspection, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Inspection, error)
	InsertOne(ctx context.Context, inspection models.Inspection) (interface{}, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type inspectionDatabase struct {
	db DatabaseHelper
}

// NewInspectionDatabase initializes a new instance of inspection database with the provided db connection
func NewInspectionDatabase(db DatabaseHelper) InspectionDatabase {
	return &inspectionDatabase{
		db: db,
	}
}

func (c *inspectionDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Inspection, error) {
	inspection := &models.Inspection{}
	err := c.db.Collection(inspectionName).FindOne(ctx, filter).Decode(&inspection)
	if err != nil {
		return nil, err
	}
	return inspection, nil
}

func (c *inspectionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Inspection, error) {
	cursor, err := c.db.Collection(inspectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var inspections []models.Inspection
	if err := cursor.All(ctx, &inspections); err != nil {
		return nil, err
	}
	return inspections, nil
}

func (c *inspectionDatabase) InsertOne(ctx context.Context, inspection models.Inspection) (interface{}, error) {
	return c.db.Collection(inspectionName).InsertOne(ctx, inspection)
}

func (c *inspectionDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(inspectionName).UpdateOne(ctx, filter, update, opts...)
}

func (c *inspectionDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	_, err := c.db.Collection(inspectionName).DeleteOne(ctx, filter)
	return err
}

func (c *inspectionDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(inspectionName).CountDocuments(ctx, filter, opts...)
}
