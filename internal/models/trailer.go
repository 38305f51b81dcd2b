package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trailer is a semi-trailer. Same weak DriverID reference rules as Vehicle.
type Trailer struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrailerID         string             `bson:"trailerId" json:"trailerId"`
	Plate             string             `bson:"plate" json:"plate"`
	Type              string             `bson:"type" json:"type"` // Sider, Baú
	Axles             string             `bson:"axles" json:"axles"`
	MaintenanceStatus string             `bson:"maintenanceStatus" json:"maintenanceStatus"`
	DriverID          string             `bson:"driverId,omitempty" json:"driverId"`
	DriverName        string             `bson:"driverName,omitempty" json:"driverName"`
	Note              string             `bson:"note,omitempty" json:"note"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
