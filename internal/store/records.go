package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleet-agenda-api-server/internal/models"
)

// driverIDFromRaw extracts the driver reference from a raw document,
// trying the canonical field first and then the legacy aliases.
func driverIDFromRaw(raw bson.Raw) string {
	for _, field := range driverIDAliases {
		value, err := raw.LookupErr(field)
		if err != nil {
			continue
		}
		if s, ok := value.StringValueOK(); ok && s != "" {
			return s
		}
	}
	return ""
}

// normalizeMopp folds the mixed historical encodings of the MOPP flag
// (bool, number, "sim") into the canonical "Sim" / "Não" pair.
func normalizeMopp(raw bson.Raw) string {
	value, err := raw.LookupErr("hasMopp")
	if err != nil {
		return "Não"
	}
	if b, ok := value.BooleanOK(); ok {
		if b {
			return "Sim"
		}
		return "Não"
	}
	if s, ok := value.StringValueOK(); ok {
		switch s {
		case "Sim", "sim", "SIM", "1", "true":
			return "Sim"
		}
		return "Não"
	}
	if i, ok := value.Int32OK(); ok && i != 0 {
		return "Sim"
	}
	if i, ok := value.Int64OK(); ok && i != 0 {
		return "Sim"
	}
	return "Não"
}

func decodeDrivers(ctx context.Context, cursor *mongo.Cursor) ([]models.Driver, error) {
	defer cursor.Close(ctx)
	var drivers []models.Driver
	for cursor.Next(ctx) {
		var raw bson.Raw
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		var d models.Driver
		if err := bson.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		if d.DriverID == "" {
			d.DriverID = driverIDFromRaw(raw)
		}
		d.HasMopp = normalizeMopp(raw)
		drivers = append(drivers, d)
	}
	return drivers, cursor.Err()
}

// Drivers returns every driver, name ascending.
func (s *Store) Drivers(ctx context.Context) ([]models.Driver, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.DB.Collection(ColDrivers).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeDrivers(ctx, cursor)
}

// DriverByDriverID looks a driver up by its readable id.
func (s *Store) DriverByDriverID(ctx context.Context, driverID string) (*models.Driver, error) {
	or := make([]bson.M, 0, len(driverIDAliases))
	for _, field := range driverIDAliases {
		or = append(or, bson.M{field: driverID})
	}
	var raw bson.Raw
	err := s.DB.Collection(ColDrivers).FindOne(ctx, bson.M{"$or": or}).Decode(&raw)
	if err != nil {
		return nil, err
	}
	var d models.Driver
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	if d.DriverID == "" {
		d.DriverID = driverIDFromRaw(raw)
	}
	d.HasMopp = normalizeMopp(raw)
	return &d, nil
}

// Vehicles returns every vehicle.
func (s *Store) Vehicles(ctx context.Context) ([]models.Vehicle, error) {
	cursor, err := s.DB.Collection(ColVehicles).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Trailers returns every trailer.
func (s *Store) Trailers(ctx context.Context) ([]models.Trailer, error) {
	cursor, err := s.DB.Collection(ColTrailers).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var trailers []models.Trailer
	if err := cursor.All(ctx, &trailers); err != nil {
		return nil, err
	}
	return trailers, nil
}

func decodeStatusRecords(ctx context.Context, cursor *mongo.Cursor) ([]models.DriverStatusRecord, error) {
	defer cursor.Close(ctx)
	var records []models.DriverStatusRecord
	for cursor.Next(ctx) {
		var raw bson.Raw
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		var r models.DriverStatusRecord
		if err := bson.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		if r.DriverID == "" {
			r.DriverID = driverIDFromRaw(raw)
		}
		records = append(records, r)
	}
	return records, cursor.Err()
}

// AllStatusRecords returns every driver status record.
func (s *Store) AllStatusRecords(ctx context.Context) ([]models.DriverStatusRecord, error) {
	cursor, err := s.DB.Collection(ColStatusRecords).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return decodeStatusRecords(ctx, cursor)
}

// StatusRecordsInRange returns status records whose dayRef falls inside
// [from, to].
func (s *Store) StatusRecordsInRange(ctx context.Context, from, to time.Time) ([]models.DriverStatusRecord, error) {
	filter := bson.M{"dayRef": bson.M{"$gte": from, "$lte": to}}
	cursor, err := s.DB.Collection(ColStatusRecords).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeStatusRecords(ctx, cursor)
}

// AllCargoRecords returns every cargo record.
func (s *Store) AllCargoRecords(ctx context.Context) ([]models.CargoRecord, error) {
	return s.cargoRecords(ctx, bson.M{})
}

// CargoRecordsInRange returns cargo records whose dayRef falls inside
// [from, to].
func (s *Store) CargoRecordsInRange(ctx context.Context, from, to time.Time) ([]models.CargoRecord, error) {
	return s.cargoRecords(ctx, bson.M{"dayRef": bson.M{"$gte": from, "$lte": to}})
}

func (s *Store) cargoRecords(ctx context.Context, filter bson.M) ([]models.CargoRecord, error) {
	cursor, err := s.DB.Collection(ColCargoRecords).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var records []models.CargoRecord
	for cursor.Next(ctx) {
		var raw bson.Raw
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		var r models.CargoRecord
		if err := bson.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		if r.DriverID == "" {
			r.DriverID = driverIDFromRaw(raw)
		}
		records = append(records, r)
	}
	return records, cursor.Err()
}
