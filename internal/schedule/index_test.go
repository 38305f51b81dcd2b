package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-agenda-api-server/internal/models"
)

func day(iso string) time.Time {
	d, ok := ParseISODate(iso)
	if !ok {
		panic("bad test date: " + iso)
	}
	return d
}

func statusRec(driverID, iso, code string) models.DriverStatusRecord {
	return models.DriverStatusRecord{DriverID: driverID, DayRef: day(iso), Code: code}
}

func cargoRec(driverID, iso, status string, createdAt time.Time) models.CargoRecord {
	return models.CargoRecord{DriverID: driverID, DayRef: day(iso), Status: status, CreatedAt: createdAt}
}

func TestBuildIndicesMonthScoping(t *testing.T) {
	status := []models.DriverStatusRecord{
		statusRec("drv-1", "2026-02-10", "P"),
		statusRec("drv-1", "2026-03-10", "DS"), // outside viewed month
	}
	cargo := []models.CargoRecord{
		cargoRec("drv-1", "2026-02-10", CargoEmpty, time.Now()),
		cargoRec("drv-1", "2026-03-01", CargoAwaitingLoad, time.Now()),
	}

	idx := BuildIndices(status, cargo, 2026, time.February)

	require.Len(t, idx.Status, 1)
	require.Len(t, idx.Cargo, 1)
	assert.Equal(t, "P", idx.Status["drv-1|2026-02-10"].Code)
	assert.Empty(t, idx.Status["drv-1|2026-03-10"].Code)
	assert.Empty(t, idx.Cargo["drv-1|2026-03-01"])
}

func TestBuildIndicesSkipsBrokenRecords(t *testing.T) {
	status := []models.DriverStatusRecord{
		{DriverID: "", DayRef: day("2026-02-10"), Code: "P"}, // orphan reference
		{DriverID: "drv-1", Code: "P"},                       // zero dayRef
	}
	cargo := []models.CargoRecord{
		{DriverID: "drv-1", Status: CargoEmpty}, // zero dayRef
	}

	idx := BuildIndices(status, cargo, 2026, time.February)
	assert.Empty(t, idx.Status)
	assert.Empty(t, idx.Cargo)
}

func TestBuildIndicesStatusLastInSnapshotWins(t *testing.T) {
	// Duplicate records for one cell can exist after a race; the index
	// resolves them deterministically in favor of the later snapshot entry.
	status := []models.DriverStatusRecord{
		statusRec("drv-1", "2026-02-10", "P"),
		statusRec("drv-1", "2026-02-10", "DS"),
	}

	idx := BuildIndices(status, nil, 2026, time.February)
	require.Len(t, idx.Status, 1)
	assert.Equal(t, "DS", idx.Status["drv-1|2026-02-10"].Code)
}

func TestBuildIndicesCargoOrderedByCreation(t *testing.T) {
	base := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.Local)
	cargo := []models.CargoRecord{
		cargoRec("drv-1", "2026-02-10", CargoAwaitingUnload, base.Add(2*time.Hour)),
		cargoRec("drv-1", "2026-02-10", CargoAwaitingLoad, base),
		cargoRec("drv-1", "2026-02-10", CargoEmpty, base.Add(time.Hour)),
	}

	idx := BuildIndices(nil, cargo, 2026, time.February)
	list := idx.Cargo["drv-1|2026-02-10"]
	require.Len(t, list, 3)
	assert.Equal(t, CargoAwaitingLoad, list[0].Status)
	assert.Equal(t, CargoEmpty, list[1].Status)
	assert.Equal(t, CargoAwaitingUnload, list[2].Status)
}

func TestFirstVehicleByDriverFirstMatchWins(t *testing.T) {
	vehicles := []models.Vehicle{
		{VehicleID: "veh-1", Plate: "ABC1D23", DriverID: "drv-1"},
		{VehicleID: "veh-2", Plate: "XYZ9A88", DriverID: "drv-1"}, // loses, same driver
		{VehicleID: "veh-3", Plate: "QWE1234"},                    // unassigned
	}

	byDriver := FirstVehicleByDriver(vehicles)
	require.Len(t, byDriver, 1)
	assert.Equal(t, "veh-1", byDriver["drv-1"].VehicleID)
}

func TestFirstTrailerByDriver(t *testing.T) {
	trailers := []models.Trailer{
		{TrailerID: "trl-1", DriverID: "drv-2"},
		{TrailerID: "trl-2", DriverID: "drv-1"},
		{TrailerID: "trl-3", DriverID: "drv-2"},
	}

	byDriver := FirstTrailerByDriver(trailers)
	require.Len(t, byDriver, 2)
	assert.Equal(t, "trl-1", byDriver["drv-2"].TrailerID)
	assert.Equal(t, "trl-2", byDriver["drv-1"].TrailerID)
}
