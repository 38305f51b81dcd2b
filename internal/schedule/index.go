package schedule

import (
	"sort"
	"time"

	"fleet-agenda-api-server/internal/models"
)

// Key builds the "driverId|YYYY-MM-DD" cell key the indices are keyed by.
func Key(driverID string, day time.Time) string {
	return driverID + "|" + DayKey(day)
}

// Indices are the reconciled month view: sparse per-day records mapped onto
// cell keys, scoped to one (year, month).
type Indices struct {
	// Status has at most one entry per cell. Source data may still contain
	// duplicate records left by races; the last one in snapshot order wins,
	// deliberately matching the write path that repairs them.
	Status map[string]models.DriverStatusRecord
	// Cargo keeps every record of a cell, creation order ascending. The
	// write path enforces a single record per day, so extra entries only
	// appear for pre-existing duplicate data.
	Cargo map[string][]models.CargoRecord
}

// BuildIndices recomputes both indices from a full snapshot. Records with a
// missing driver reference or a zero dayRef are skipped; records outside
// the target month are excluded.
func BuildIndices(status []models.DriverStatusRecord, cargo []models.CargoRecord, year int, month time.Month) Indices {
	idx := Indices{
		Status: make(map[string]models.DriverStatusRecord),
		Cargo:  make(map[string][]models.CargoRecord),
	}
	ym := MonthKey(time.Date(year, month, 1, 12, 0, 0, 0, time.Local))

	for _, s := range status {
		if s.DriverID == "" || s.DayRef.IsZero() {
			continue
		}
		if MonthKey(s.DayRef) != ym {
			continue
		}
		idx.Status[Key(s.DriverID, s.DayRef)] = s
	}

	for _, c := range cargo {
		if c.DriverID == "" || c.DayRef.IsZero() {
			continue
		}
		if MonthKey(c.DayRef) != ym {
			continue
		}
		k := Key(c.DriverID, c.DayRef)
		idx.Cargo[k] = append(idx.Cargo[k], c)
	}
	for k, list := range idx.Cargo {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
		idx.Cargo[k] = list
	}

	return idx
}

// FirstVehicleByDriver maps each driver to the first vehicle in list order
// that references it. Later vehicles pointing at the same driver lose.
func FirstVehicleByDriver(vehicles []models.Vehicle) map[string]models.Vehicle {
	byDriver := make(map[string]models.Vehicle)
	for _, v := range vehicles {
		if v.DriverID == "" {
			continue
		}
		if _, ok := byDriver[v.DriverID]; !ok {
			byDriver[v.DriverID] = v
		}
	}
	return byDriver
}

// FirstTrailerByDriver is the trailer counterpart of FirstVehicleByDriver.
func FirstTrailerByDriver(trailers []models.Trailer) map[string]models.Trailer {
	byDriver := make(map[string]models.Trailer)
	for _, t := range trailers {
		if t.DriverID == "" {
			continue
		}
		if _, ok := byDriver[t.DriverID]; !ok {
			byDriver[t.DriverID] = t
		}
	}
	return byDriver
}
