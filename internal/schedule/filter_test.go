package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-agenda-api-server/internal/models"
)

func gridFixture() ([]models.Driver, Indices) {
	drivers := []models.Driver{
		{DriverID: "drv-1", Name: "Ana Souza"},
		{DriverID: "drv-2", Name: "Bruno Lima"},
		{DriverID: "drv-3", Name: "Carla Dias"},
	}
	status := []models.DriverStatusRecord{
		statusRec("drv-1", "2026-02-10", "P"),
		statusRec("drv-3", "2026-02-10", ""), // empty code does not count as filled
	}
	cargo := []models.CargoRecord{
		cargoRec("drv-2", "2026-02-10", "vazio", time.Now()), // stored lowercase
	}
	return drivers, BuildIndices(status, cargo, 2026, time.February)
}

func TestCellFilled(t *testing.T) {
	_, idx := gridFixture()
	d := day("2026-02-10")

	assert.True(t, idx.CellFilled("drv-1", d))  // status code
	assert.True(t, idx.CellFilled("drv-2", d))  // cargo record
	assert.False(t, idx.CellFilled("drv-3", d)) // record with empty code
	assert.False(t, idx.CellFilled("drv-1", day("2026-02-11")))
}

func TestCellHasCargoStatusCaseInsensitive(t *testing.T) {
	_, idx := gridFixture()
	d := day("2026-02-10")

	assert.True(t, idx.CellHasCargoStatus("drv-2", d, "VAZIO"))
	assert.True(t, idx.CellHasCargoStatus("drv-2", d, "vazio"))
	assert.False(t, idx.CellHasCargoStatus("drv-2", d, CargoAwaitingLoad))
	assert.False(t, idx.CellHasCargoStatus("drv-1", d, "VAZIO"))
}

func TestVisibleDriversSearch(t *testing.T) {
	drivers, idx := gridFixture()

	assert.Len(t, VisibleDrivers(drivers, idx, "", nil), 3)

	got := VisibleDrivers(drivers, idx, "  bRuNo ", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "drv-2", got[0].DriverID)

	assert.Empty(t, VisibleDrivers(drivers, idx, "zeca", nil))
}

func TestVisibleDriversDayRules(t *testing.T) {
	drivers, idx := gridFixture()

	filled := VisibleDrivers(drivers, idx, "", map[string]DayRule{
		"2026-02-10": {Fill: FillFilled},
	})
	require.Len(t, filled, 2)
	assert.Equal(t, "drv-1", filled[0].DriverID)
	assert.Equal(t, "drv-2", filled[1].DriverID)

	empty := VisibleDrivers(drivers, idx, "", map[string]DayRule{
		"2026-02-10": {Fill: FillEmpty},
	})
	require.Len(t, empty, 1)
	assert.Equal(t, "drv-3", empty[0].DriverID)

	byCargo := VisibleDrivers(drivers, idx, "", map[string]DayRule{
		"2026-02-10": {CargoStatus: "VAZIO"},
	})
	require.Len(t, byCargo, 1)
	assert.Equal(t, "drv-2", byCargo[0].DriverID)

	// Rules compose with search; default rules are ignored.
	composed := VisibleDrivers(drivers, idx, "ana", map[string]DayRule{
		"2026-02-10": {Fill: FillFilled},
		"2026-02-11": {Fill: FillAll, CargoStatus: "any"},
	})
	require.Len(t, composed, 1)
	assert.Equal(t, "drv-1", composed[0].DriverID)
}

func TestMatchSet(t *testing.T) {
	status := []models.DriverStatusRecord{
		statusRec("drv-1", "2026-02-10", "P"),
		statusRec("drv-2", "2026-02-10", "DS"),
		statusRec("drv-3", "2026-02-11", "P"), // other day
	}
	cargo := []models.CargoRecord{
		cargoRec("drv-2", "2026-02-10", CargoEmpty, time.Now()),
		cargoRec("drv-4", "2026-02-10", CargoAwaitingLoad, time.Now()),
		cargoRec("drv-5", "2026-02-11", CargoEmpty, time.Now()),
	}
	d := day("2026-02-10")

	byCode := MatchSet(status, cargo, d, "driverStatus:P")
	assert.Equal(t, map[string]bool{"drv-1": true}, byCode)

	byCargo := MatchSet(status, cargo, d, "cargoStatus:VAZIO")
	assert.Equal(t, map[string]bool{"drv-2": true}, byCargo)

	total := MatchSet(status, cargo, d, "cargoStatus:TOTAL")
	assert.Equal(t, map[string]bool{"drv-2": true, "drv-4": true}, total)

	assert.Empty(t, MatchSet(status, cargo, d, "bogus"))
	assert.Empty(t, MatchSet(status, cargo, d, "driverStatus:FE"))
}

func TestComputeDayKPIs(t *testing.T) {
	status := []models.DriverStatusRecord{
		statusRec("drv-1", "2026-02-10", "P"),
		statusRec("drv-2", "2026-02-10", "P"),
		statusRec("drv-3", "2026-02-10", "DS"),
		statusRec("drv-4", "2026-02-11", "P"),
	}
	cargo := []models.CargoRecord{
		cargoRec("drv-1", "2026-02-10", CargoAwaitingUnload, time.Now()),
		cargoRec("drv-2", "2026-02-10", "manutencao", time.Now()), // legacy spelling folds in
		cargoRec("drv-5", "2026-02-11", CargoEmpty, time.Now()),
	}

	kpis := ComputeDayKPIs(status, cargo, day("2026-02-10"))
	assert.Equal(t, "10/02/2026", kpis.DayLabel)
	assert.Equal(t, 2, kpis.CargoTotal)
	assert.Equal(t, 1, kpis.CargoByStatus[CargoAwaitingUnload])
	assert.Equal(t, 1, kpis.CargoByStatus[CargoMaintenance])
	assert.Equal(t, 0, kpis.CargoByStatus[CargoEmpty])
	assert.Equal(t, 2, kpis.DriverByCode["P"])
	assert.Equal(t, 1, kpis.DriverByCode["DS"])
	assert.Equal(t, 0, kpis.DriverByCode["FE"])
}

func TestVocabulary(t *testing.T) {
	assert.True(t, IsIdleStatus("VAZIO"))
	assert.True(t, IsIdleStatus("Manutenção"))
	assert.True(t, IsIdleStatus("MANUTENCAO"))
	assert.False(t, IsIdleStatus(CargoAwaitingUnload))

	assert.True(t, IsCargoStatus("vazio"))
	assert.False(t, IsCargoStatus("EM ROTA"))

	meta, ok := MetaFor("FE")
	require.True(t, ok)
	assert.Equal(t, "#0066cc", meta.Bg)

	_, ok = MetaFor("XX")
	assert.False(t, ok)
}
