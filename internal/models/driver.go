package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver is one registered driver of the fleet.
// Records in other collections reference it through DriverID, a readable
// app-assigned id; references are weak and never cascade on delete.
type Driver struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DriverID         string             `bson:"driverId" json:"driverId"`
	Name             string             `bson:"name" json:"name"`
	ResidenceCity    string             `bson:"residenceCity" json:"residenceCity"`
	LinkType         string             `bson:"linkType" json:"linkType"`       // Frota, Agregado, PX, Terceiro
	DriverClass      string             `bson:"driverClass" json:"driverClass"` // Carreta, Truck
	HasMopp          string             `bson:"hasMopp" json:"hasMopp"`         // "Sim" / "Não"
	SchedulingStatus string             `bson:"schedulingStatus" json:"schedulingStatus"`
	RestStatus       string             `bson:"restStatus" json:"restStatus"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
