package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// driverIDAliases lists every field name historical data uses for the
// driver reference, canonical first.
var driverIDAliases = []string{"driverId", "driver_id", "driverID", "motoristaId", "motorista_id"}

// driverDayFilter matches (driver, dayRef) across all driverId aliases, so
// the collapse also heals records written under a legacy field name.
func driverDayFilter(driverID string, dayRef time.Time) bson.M {
	or := make([]bson.M, 0, len(driverIDAliases))
	for _, field := range driverIDAliases {
		or = append(or, bson.M{field: driverID})
	}
	return bson.M{"dayRef": dayRef, "$or": or}
}

type mongoDayCollection struct {
	col *mongo.Collection
}

func newMongoDayCollection(col *mongo.Collection) *mongoDayCollection {
	return &mongoDayCollection{col: col}
}

func (m *mongoDayCollection) FindForDay(ctx context.Context, driverID string, dayRef time.Time) ([]DayDoc, error) {
	cursor, err := m.col.Find(ctx, driverDayFilter(driverID, dayRef))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []DayDoc
	for cursor.Next(ctx) {
		var fields bson.M
		if err := cursor.Decode(&fields); err != nil {
			return nil, err
		}
		doc := DayDoc{Fields: fields}
		if oid, ok := fields["_id"].(primitive.ObjectID); ok {
			doc.ID = oid.Hex()
		}
		docs = append(docs, doc)
	}
	return docs, cursor.Err()
}

func (m *mongoDayCollection) Insert(ctx context.Context, fields bson.M) (string, error) {
	result, err := m.col.InsertOne(ctx, fields)
	if err != nil {
		return "", err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

func (m *mongoDayCollection) Update(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = m.col.UpdateByID(ctx, oid, bson.M{"$set": fields})
	return err
}

func (m *mongoDayCollection) DeleteForDay(ctx context.Context, driverID string, dayRef time.Time) (int64, error) {
	result, err := m.col.DeleteMany(ctx, driverDayFilter(driverID, dayRef))
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (m *mongoDayCollection) DeleteOthers(ctx context.Context, driverID string, dayRef time.Time, keepID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(keepID)
	if err != nil {
		return 0, err
	}
	filter := driverDayFilter(driverID, dayRef)
	filter["_id"] = bson.M{"$ne": oid}
	result, err := m.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
