package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"fleet-agenda-api-server/internal/schedule"
)

// Validation errors surfaced before any write happens.
var (
	ErrNoDay               = errors.New("no valid day selected")
	ErrRangeTooLarge       = fmt.Errorf("range exceeds %d days", schedule.MaxRangeDays)
	ErrMissingCargoStatus  = errors.New("cargo status is required")
	ErrBadPickupDateTime   = errors.New(`invalid pickup date/time, expected "dd/mm/yyyy hh:mm"`)
	ErrBadDeliveryDateTime = errors.New(`invalid delivery date/time, expected "dd/mm/yyyy hh:mm"`)
)

// DayDoc is one stored day record, id plus raw fields.
type DayDoc struct {
	ID     string
	Fields bson.M
}

// DayCollection is the slice of collection operations the upsert engine
// needs. The Mongo implementation lives in collection.go; tests run the
// engine against the in-memory one.
type DayCollection interface {
	// FindForDay returns every document matching (driverId, dayRef) by
	// exact equality, in the store's natural order.
	FindForDay(ctx context.Context, driverID string, dayRef time.Time) ([]DayDoc, error)
	Insert(ctx context.Context, fields bson.M) (string, error)
	// Update overwrites the listed fields of one document, leaving
	// unlisted fields untouched.
	Update(ctx context.Context, id string, fields bson.M) error
	DeleteForDay(ctx context.Context, driverID string, dayRef time.Time) (int64, error)
	// DeleteOthers removes every (driverId, dayRef) match except keepID in
	// one conditional call, so the collapse never needs a delete per
	// duplicate.
	DeleteOthers(ctx context.Context, driverID string, dayRef time.Time, keepID string) (int64, error)
}

// DayRecords runs the single-record-per-(driver, day) write discipline over
// one collection.
type DayRecords struct {
	name string
	col  DayCollection
}

func NewDayRecords(name string, col DayCollection) *DayRecords {
	return &DayRecords{name: name, col: col}
}

// Upsert writes payload as the single record of (driverID, day): the first
// existing match is updated in place and any remaining duplicates are
// deleted, healing records left behind by races; with no match a new
// document is inserted. Timestamps are stamped here.
func (r *DayRecords) Upsert(ctx context.Context, driverID string, day time.Time, payload bson.M) error {
	dayRef := schedule.Noon(day)

	docs, err := r.col.FindForDay(ctx, driverID, dayRef)
	if err != nil {
		return fmt.Errorf("find %s for day: %w", r.name, err)
	}

	payload["updatedAt"] = time.Now().UTC()

	if len(docs) > 0 {
		first := docs[0]
		if err := r.col.Update(ctx, first.ID, payload); err != nil {
			return fmt.Errorf("update %s %s: %w", r.name, first.ID, err)
		}
		if len(docs) > 1 {
			if _, err := r.col.DeleteOthers(ctx, driverID, dayRef, first.ID); err != nil {
				return fmt.Errorf("collapse %s duplicates: %w", r.name, err)
			}
		}
		return nil
	}

	payload["createdAt"] = time.Now().UTC()
	if _, err := r.col.Insert(ctx, payload); err != nil {
		return fmt.Errorf("insert %s: %w", r.name, err)
	}
	return nil
}

// Remove deletes every record of (driverID, day).
func (r *DayRecords) Remove(ctx context.Context, driverID string, day time.Time) (int64, error) {
	n, err := r.col.DeleteForDay(ctx, driverID, schedule.Noon(day))
	if err != nil {
		return 0, fmt.Errorf("delete %s for day: %w", r.name, err)
	}
	return n, nil
}

// DriverRef identifies the driver a save targets; the name is denormalized
// onto every written record.
type DriverRef struct {
	ID   string
	Name string
}

// StatusSaveRequest saves one schedule code over a day or a date range.
// An empty Code removes the records instead.
type StatusSaveRequest struct {
	Driver DriverRef
	Day    time.Time
	From   string // optional ISO bounds; both must parse or the range
	To     string // degrades to Day
	Code   string
	Note   string
}

// SaveDriverStatus applies the status upsert across the resolved range,
// sequentially and without a wrapping transaction: a mid-range failure
// leaves earlier days committed. Returns the number of days written.
func (s *Store) SaveDriverStatus(ctx context.Context, req StatusSaveRequest) (int, error) {
	days := schedule.ResolveRange(req.From, req.To, req.Day)
	if len(days) == 0 {
		return 0, ErrNoDay
	}
	if len(days) > schedule.MaxRangeDays {
		return 0, ErrRangeTooLarge
	}

	for i, d := range days {
		if req.Code == "" {
			if _, err := s.Status.Remove(ctx, req.Driver.ID, d); err != nil {
				return i, err
			}
			continue
		}
		if err := s.Status.Upsert(ctx, req.Driver.ID, d, statusPayload(req.Driver, d, req.Code, req.Note)); err != nil {
			return i, err
		}
	}
	return len(days), nil
}

func statusPayload(drv DriverRef, day time.Time, code, note string) bson.M {
	// Display metadata is resolved from the immutable code table and copied
	// onto the record, so later table edits never rewrite history.
	desc, bg, fg := code, "#e5e7eb", "#111827"
	if meta, ok := schedule.MetaFor(code); ok {
		desc, bg, fg = meta.Label, meta.Bg, meta.Fg
	}
	return bson.M{
		"driverId":    drv.ID,
		"driverName":  drv.Name,
		"dayRef":      schedule.Noon(day),
		"code":        code,
		"description": desc,
		"colorBg":     bg,
		"colorFg":     fg,
		"note":        strings.TrimSpace(note),
	}
}

// CargoForm carries the editable fields of a cargo save.
type CargoForm struct {
	OriginCity       string `json:"originCity"`
	PickupClient     string `json:"pickupClient"`
	DestinationCity  string `json:"destinationCity"`
	DeliveryClient   string `json:"deliveryClient"`
	Status           string `json:"status"`
	PickupDateTime   string `json:"pickupDateTime"`
	DeliveryDateTime string `json:"deliveryDateTime"`
}

func (f CargoForm) trimmed() CargoForm {
	return CargoForm{
		OriginCity:       strings.TrimSpace(f.OriginCity),
		PickupClient:     strings.TrimSpace(f.PickupClient),
		DestinationCity:  strings.TrimSpace(f.DestinationCity),
		DeliveryClient:   strings.TrimSpace(f.DeliveryClient),
		Status:           strings.TrimSpace(f.Status),
		PickupDateTime:   strings.TrimSpace(f.PickupDateTime),
		DeliveryDateTime: strings.TrimSpace(f.DeliveryDateTime),
	}
}

// CargoSaveRequest saves one cargo form over a day or a date range.
type CargoSaveRequest struct {
	Driver DriverRef
	Day    time.Time
	From   string
	To     string
	Form   CargoForm
}

// CargoSaveResult reports what a cargo save wrote.
type CargoSaveResult struct {
	Days       int `json:"days"`
	Satellites int `json:"satellites"`
}

// SaveCargo validates the form, applies the cargo upsert across the
// resolved range, then projects the satellite writes: one at the pickup
// date keeping the form status and one at the delivery date with status
// forced to AGUARDANDO DESCARGA. Satellites go through the same per-day
// upsert, so one landing inside the primary range coalesces with the
// record already written there. None of it is transactional; a failure
// leaves the earlier writes committed.
func (s *Store) SaveCargo(ctx context.Context, req CargoSaveRequest) (CargoSaveResult, error) {
	var res CargoSaveResult

	form := req.Form.trimmed()
	if form.Status == "" {
		return res, ErrMissingCargoStatus
	}

	var pickup, delivery time.Time
	var hasPickup, hasDelivery bool
	if form.PickupDateTime != "" {
		if pickup, hasPickup = schedule.ParseBRDateTime(form.PickupDateTime); !hasPickup {
			return res, ErrBadPickupDateTime
		}
	}
	if form.DeliveryDateTime != "" {
		if delivery, hasDelivery = schedule.ParseBRDateTime(form.DeliveryDateTime); !hasDelivery {
			return res, ErrBadDeliveryDateTime
		}
	}

	days := schedule.ResolveRange(req.From, req.To, req.Day)
	if len(days) == 0 {
		return res, ErrNoDay
	}
	if len(days) > schedule.MaxRangeDays {
		return res, ErrRangeTooLarge
	}

	for _, d := range days {
		if err := s.Cargo.Upsert(ctx, req.Driver.ID, d, cargoPayload(req.Driver, d, form, "")); err != nil {
			return res, err
		}
		res.Days++
	}

	if hasPickup {
		if err := s.Cargo.Upsert(ctx, req.Driver.ID, pickup, cargoPayload(req.Driver, pickup, form, "")); err != nil {
			return res, err
		}
		res.Satellites++
	}
	if hasDelivery {
		if err := s.Cargo.Upsert(ctx, req.Driver.ID, delivery, cargoPayload(req.Driver, delivery, form, schedule.CargoAwaitingUnload)); err != nil {
			return res, err
		}
		res.Satellites++
	}
	return res, nil
}

func cargoPayload(drv DriverRef, day time.Time, form CargoForm, overrideStatus string) bson.M {
	status := form.Status
	if overrideStatus != "" {
		status = overrideStatus
	}

	p := bson.M{
		"driverId":         drv.ID,
		"driverName":       drv.Name,
		"dayRef":           schedule.Noon(day),
		"originCity":       form.OriginCity,
		"pickupClient":     form.PickupClient,
		"destinationCity":  form.DestinationCity,
		"deliveryClient":   form.DeliveryClient,
		"status":           status,
		"pickupDateTime":   form.PickupDateTime,
		"deliveryDateTime": form.DeliveryDateTime,
	}

	// Idle records mean "vehicle at originCity"; the trip fields stay empty.
	if schedule.IsIdleStatus(status) {
		p["pickupClient"] = ""
		p["destinationCity"] = ""
		p["deliveryClient"] = ""
	}
	return p
}

// DeleteCargoDay removes every cargo record of one (driver, day) and
// reports how many there were.
func (s *Store) DeleteCargoDay(ctx context.Context, driverID string, day time.Time) (int64, error) {
	return s.Cargo.Remove(ctx, driverID, day)
}
