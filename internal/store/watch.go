package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"fleet-agenda-api-server/internal/socket"
)

// Watcher tails MongoDB change streams and pushes fresh collection
// snapshots to connected WebSocket clients, so every open calendar stays
// live without polling.
type Watcher struct {
	store *Store
	hub   *socket.Hub
}

func NewWatcher(store *Store, hub *socket.Hub) *Watcher {
	return &Watcher{store: store, hub: hub}
}

// snapshotMessage is the wire envelope pushed to clients: the collection
// that changed plus its full re-read contents.
type snapshotMessage struct {
	Collection string      `json:"collection"`
	Docs       interface{} `json:"docs"`
}

var watchedCollections = []string{ColDrivers, ColVehicles, ColTrailers, ColStatusRecords, ColCargoRecords}

// Run starts one tail goroutine per watched collection and blocks until
// ctx is canceled. Change streams require a replica set; when they are
// unavailable the watcher logs once per retry and the API keeps working
// without live updates.
func (w *Watcher) Run(ctx context.Context) {
	for _, name := range watchedCollections {
		go w.tail(ctx, name)
	}
	<-ctx.Done()
}

// SendInitial pushes a current snapshot of every watched collection to one
// client, so a fresh connection paints without waiting for a change.
func (w *Watcher) SendInitial(ctx context.Context, clientID string) {
	for _, name := range watchedCollections {
		payload, err := w.snapshotPayload(ctx, name)
		if err != nil {
			logrus.WithField("collection", name).WithError(err).Warn("initial snapshot failed")
			continue
		}
		if err := w.hub.Send(clientID, payload); err != nil {
			logrus.WithField("client", clientID).WithError(err).Warn("initial snapshot send failed")
			return
		}
	}
}

func (w *Watcher) tail(ctx context.Context, collection string) {
	for {
		if ctx.Err() != nil {
			return
		}
		stream, err := w.store.DB.Collection(collection).Watch(ctx, mongo.Pipeline{})
		if err != nil {
			logrus.WithField("collection", collection).WithError(err).Warn("change stream unavailable, retrying")
			select {
			case <-ctx.Done():
				return
			case <-time.After(10 * time.Second):
			}
			continue
		}
		w.consume(ctx, collection, stream)
	}
}

func (w *Watcher) consume(ctx context.Context, collection string, stream *mongo.ChangeStream) {
	defer stream.Close(ctx)
	for stream.Next(ctx) {
		if err := w.broadcastSnapshot(ctx, collection); err != nil {
			logrus.WithField("collection", collection).WithError(err).Warn("snapshot broadcast failed")
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		logrus.WithField("collection", collection).WithError(err).Warn("change stream closed")
	}
}

func (w *Watcher) broadcastSnapshot(ctx context.Context, collection string) error {
	payload, err := w.snapshotPayload(ctx, collection)
	if err != nil {
		return err
	}
	w.hub.Broadcast(payload)
	return nil
}

// snapshotPayload re-reads the whole collection through the typed,
// alias-normalizing readers. Full snapshots keep the client logic
// trivial; the collections are small.
func (w *Watcher) snapshotPayload(ctx context.Context, collection string) ([]byte, error) {
	var docs interface{}
	var err error
	switch collection {
	case ColDrivers:
		docs, err = w.store.Drivers(ctx)
	case ColVehicles:
		docs, err = w.store.Vehicles(ctx)
	case ColTrailers:
		docs, err = w.store.Trailers(ctx)
	case ColStatusRecords:
		docs, err = w.store.AllStatusRecords(ctx)
	case ColCargoRecords:
		docs, err = w.store.AllCargoRecords(ctx)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(snapshotMessage{Collection: collection, Docs: docs})
}
