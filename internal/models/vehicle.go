package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle is a truck of the fleet. DriverID is a weak back-reference: when
// more than one vehicle points at the same driver, the first one in list
// order is treated as the current vehicle.
type Vehicle struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID         string             `bson:"vehicleId" json:"vehicleId"`
	Plate             string             `bson:"plate" json:"plate"` // 7 uppercase alphanumerics
	Type              string             `bson:"type" json:"type"`
	MaintenanceStatus string             `bson:"maintenanceStatus" json:"maintenanceStatus"` // Ok, Programada, Em manutenção
	DriverID          string             `bson:"driverId,omitempty" json:"driverId"`
	DriverName        string             `bson:"driverName,omitempty" json:"driverName"`
	Note              string             `bson:"note,omitempty" json:"note"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
