// Package store is the document-store adapter: MongoDB access for the
// registries and day records, the upsert/collapse engine of the scheduling
// grid, and the change-stream watcher feeding live snapshots to websocket
// clients. All driverId field aliases found in historical data are
// normalized here, at the adapter boundary, so the rest of the code only
// ever sees the canonical field.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleet-agenda-api-server/config"
)

// Collection names.
const (
	ColDrivers       = "drivers"
	ColVehicles      = "vehicles"
	ColTrailers      = "trailers"
	ColCargoRecords  = "cargoRecords"
	ColStatusRecords = "driverStatusRecords"
)

// Connect opens and pings a MongoDB client.
func Connect(cfg config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Store bundles the database handle with the two day-record engines.
type Store struct {
	DB     *mongo.Database
	Status *DayRecords
	Cargo  *DayRecords
}

// New wires a Store onto a database.
func New(db *mongo.Database) *Store {
	return &Store{
		DB:     db,
		Status: NewDayRecords(ColStatusRecords, newMongoDayCollection(db.Collection(ColStatusRecords))),
		Cargo:  NewDayRecords(ColCargoRecords, newMongoDayCollection(db.Collection(ColCargoRecords))),
	}
}
