package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-agenda-api-server/internal/models"
)

func monthOfStatus(driverID string, codes map[string]int) []models.DriverStatusRecord {
	var out []models.DriverStatusRecord
	d := 1
	for code, n := range codes {
		for i := 0; i < n; i++ {
			out = append(out, statusRec(driverID, fmt.Sprintf("2026-02-%02d", d), code))
			d++
		}
	}
	return out
}

func TestSummariesBalanceArithmetic(t *testing.T) {
	drivers := []models.Driver{{DriverID: "drv-1", Name: "Ana", ResidenceCity: "Uberlândia"}}
	records := monthOfStatus("drv-1", map[string]int{"P": 12, "P/DS": 1, "DS": 1, "FE": 1, "F": 2})

	withFE := Summaries(drivers, records, true)
	require.Len(t, withFE, 1)
	s := withFE[0]
	assert.Equal(t, 13, s.Worked)
	assert.Equal(t, 1, s.Rest)
	assert.Equal(t, 1, s.Vacation)
	assert.Equal(t, 2, s.Other)
	assert.Equal(t, 2, s.Entitlement) // floor(13/6)
	assert.Equal(t, 2, s.TakenOff)
	assert.Equal(t, 0, s.Balance)

	withoutFE := Summaries(drivers, records, false)[0]
	assert.Equal(t, 1, withoutFE.TakenOff)
	assert.Equal(t, 1, withoutFE.Balance)
	assert.Equal(t, 1, withoutFE.Vacation) // raw counts unaffected by the toggle
}

func TestSummariesIgnoreUnknownDrivers(t *testing.T) {
	drivers := []models.Driver{{DriverID: "drv-1", Name: "Ana"}}
	records := []models.DriverStatusRecord{
		statusRec("drv-1", "2026-02-01", "P"),
		statusRec("drv-ghost", "2026-02-01", "P"), // dangling reference
	}

	out := Summaries(drivers, records, true)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Worked)
}

func TestSummariesIncludeDriversWithoutRecords(t *testing.T) {
	drivers := []models.Driver{
		{DriverID: "drv-1", Name: "Bruno"},
		{DriverID: "drv-2", Name: "Ana"},
	}

	out := Summaries(drivers, nil, true)
	require.Len(t, out, 2)
	// pt-BR name order.
	assert.Equal(t, "Ana", out[0].Name)
	assert.Equal(t, "Bruno", out[1].Name)
	assert.Zero(t, out[0].Worked)
	assert.Zero(t, out[0].Balance)
}

func TestRankByWorked(t *testing.T) {
	sums := []DriverSummary{
		{DriverID: "a", Name: "Carla", Worked: 10},
		{DriverID: "b", Name: "Bruno", Worked: 22},
		{DriverID: "c", Name: "Ana", Worked: 10},
		{DriverID: "d", Name: "Davi", Worked: 15},
	}

	top := RankByWorked(sums, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "Bruno", top[0].Name)
	assert.Equal(t, "Davi", top[1].Name)
	assert.Equal(t, "Ana", top[2].Name) // ties break on collated name

	assert.Len(t, RankByWorked(sums, 0), 4)  // default size, clamped to input
	assert.Len(t, RankByWorked(sums, 99), 4) // never beyond input
}

func TestRankByWorkedDefaultSize(t *testing.T) {
	var sums []DriverSummary
	for i := 0; i < 15; i++ {
		sums = append(sums, DriverSummary{Name: fmt.Sprintf("Driver %02d", i), Worked: i})
	}

	top := RankByWorked(sums, 0)
	require.Len(t, top, DefaultRankingSize)
	assert.Equal(t, 14, top[0].Worked)
}
