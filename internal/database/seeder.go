package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fleet-agenda-api-server/internal/models"
	"fleet-agenda-api-server/internal/store"
)

func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
}

// SeedDemoFleet inserts a small demo registry on an empty database so the
// calendar is usable out of the box. Skipped whenever drivers exist.
func SeedDemoFleet(db *mongo.Database) error {
	ctx := context.Background()
	drivers := db.Collection(store.ColDrivers)

	count, err := drivers.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("drivers already present, demo seed skipped")
		return nil
	}
	logrus.Info("empty database, seeding demo fleet")

	now := time.Now()
	demoDrivers := []models.Driver{
		{DriverID: newID("DRV"), Name: "Carlos Souza", ResidenceCity: "Uberlândia", LinkType: "Frota", DriverClass: "Carreta", HasMopp: "Sim"},
		{DriverID: newID("DRV"), Name: "João Pereira", ResidenceCity: "Goiânia", LinkType: "Agregado", DriverClass: "Carreta", HasMopp: "Não"},
		{DriverID: newID("DRV"), Name: "Ana Lima", ResidenceCity: "Rio Verde", LinkType: "Frota", DriverClass: "Truck", HasMopp: "Sim"},
	}
	for i := range demoDrivers {
		demoDrivers[i].CreatedAt = now
		demoDrivers[i].UpdatedAt = now
		if _, err := drivers.InsertOne(ctx, demoDrivers[i]); err != nil {
			return err
		}
	}

	vehicles := []models.Vehicle{
		{VehicleID: newID("VEH"), Plate: "ABC1D23", Type: "Cavalo 6x2", MaintenanceStatus: "Ok", DriverID: demoDrivers[0].DriverID, DriverName: demoDrivers[0].Name},
		{VehicleID: newID("VEH"), Plate: "DEF4G56", Type: "Truck", MaintenanceStatus: "Ok", DriverID: demoDrivers[2].DriverID, DriverName: demoDrivers[2].Name},
	}
	for i := range vehicles {
		vehicles[i].CreatedAt = now
		vehicles[i].UpdatedAt = now
		if _, err := db.Collection(store.ColVehicles).InsertOne(ctx, vehicles[i]); err != nil {
			return err
		}
	}

	trailer := models.Trailer{
		TrailerID: newID("TRL"), Plate: "GHI7J89", Type: "Sider", Axles: "3",
		MaintenanceStatus: "Ok", DriverID: demoDrivers[0].DriverID, DriverName: demoDrivers[0].Name,
		CreatedAt: now, UpdatedAt: now,
	}
	if _, err := db.Collection(store.ColTrailers).InsertOne(ctx, trailer); err != nil {
		return err
	}

	logrus.WithField("drivers", len(demoDrivers)).Info("demo fleet seeded")
	return nil
}
