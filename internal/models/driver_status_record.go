package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverStatusRecord holds the schedule code of one driver on one calendar
// day. DayRef is normalized to local noon so the calendar day survives
// timezone conversion. The application keeps at most one live record per
// (driverId, dayRef) pair; the write path collapses duplicates left behind
// by races. Description and the colors are copied from the status metadata
// table at write time, so later table edits never rewrite history.
type DriverStatusRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DriverID    string             `bson:"driverId" json:"driverId"`
	DriverName  string             `bson:"driverName" json:"driverName"`
	DayRef      time.Time          `bson:"dayRef" json:"dayRef"`
	Code        string             `bson:"code" json:"code"` // P, P/DS, DS, F, D, A, S, FE
	Description string             `bson:"description" json:"description"`
	ColorBg     string             `bson:"colorBg" json:"colorBg"`
	ColorFg     string             `bson:"colorFg" json:"colorFg"`
	Note        string             `bson:"note" json:"note"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
