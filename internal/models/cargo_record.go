package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CargoRecord is one day's cargo assignment for one driver. Same
// one-record-per-(driverId, dayRef) rule as DriverStatusRecord.
//
// PickupDateTime and DeliveryDateTime are free-text "dd/mm/yyyy hh:mm"
// strings, not native timestamps; parsing and validation live in the
// schedule package. When Status is VAZIO or MANUTENÇÃO the record means
// "vehicle idle/under repair at OriginCity" and the pickup/destination/
// delivery fields are kept empty.
type CargoRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DriverID         string             `bson:"driverId" json:"driverId"`
	DriverName       string             `bson:"driverName" json:"driverName"`
	DayRef           time.Time          `bson:"dayRef" json:"dayRef"`
	OriginCity       string             `bson:"originCity" json:"originCity"`
	PickupClient     string             `bson:"pickupClient" json:"pickupClient"`
	DestinationCity  string             `bson:"destinationCity" json:"destinationCity"`
	DeliveryClient   string             `bson:"deliveryClient" json:"deliveryClient"`
	Status           string             `bson:"status" json:"status"`
	PickupDateTime   string             `bson:"pickupDateTime" json:"pickupDateTime"`
	DeliveryDateTime string             `bson:"deliveryDateTime" json:"deliveryDateTime"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
