package schedule

import (
	"strings"
	"time"

	"fleet-agenda-api-server/internal/models"
)

// Fill states of a per-day column filter.
const (
	FillAll    = "all"
	FillFilled = "filled"
	FillEmpty  = "empty"
)

// DayRule is one column's filter: a fill-state requirement plus an optional
// cargo-status requirement. Zero values ("" / "all" / "any") mean no
// constraint.
type DayRule struct {
	Fill        string `json:"fill"`
	CargoStatus string `json:"cargoStatus"`
}

func (r DayRule) active() bool {
	return (r.Fill != "" && r.Fill != FillAll) ||
		(r.CargoStatus != "" && !strings.EqualFold(r.CargoStatus, "any"))
}

// CellFilled reports whether a cell has a status record with a non-empty
// code or at least one cargo record.
func (idx Indices) CellFilled(driverID string, day time.Time) bool {
	k := Key(driverID, day)
	if st, ok := idx.Status[k]; ok && st.Code != "" {
		return true
	}
	return len(idx.Cargo[k]) > 0
}

// CellHasCargoStatus reports whether some cargo record of the cell has the
// given status, case-insensitively.
func (idx Indices) CellHasCargoStatus(driverID string, day time.Time, status string) bool {
	for _, c := range idx.Cargo[Key(driverID, day)] {
		if strings.EqualFold(strings.TrimSpace(c.Status), strings.TrimSpace(status)) {
			return true
		}
	}
	return false
}

// VisibleDrivers applies the free-text name search and the per-day rules
// (keyed by YYYY-MM-DD) to the reconciled indices. A driver stays visible
// only if every active rule is satisfied.
func VisibleDrivers(drivers []models.Driver, idx Indices, search string, rules map[string]DayRule) []models.Driver {
	term := strings.ToLower(strings.TrimSpace(search))

	out := make([]models.Driver, 0, len(drivers))
	for _, d := range drivers {
		if term != "" && !strings.Contains(strings.ToLower(d.Name), term) {
			continue
		}
		if driverMatchesRules(d.DriverID, idx, rules) {
			out = append(out, d)
		}
	}
	return out
}

func driverMatchesRules(driverID string, idx Indices, rules map[string]DayRule) bool {
	for dk, rule := range rules {
		if !rule.active() {
			continue
		}
		day, ok := ParseISODate(dk)
		if !ok {
			continue
		}

		filled := idx.CellFilled(driverID, day)
		if rule.Fill == FillFilled && !filled {
			return false
		}
		if rule.Fill == FillEmpty && filled {
			return false
		}
		if rule.CargoStatus != "" && !strings.EqualFold(rule.CargoStatus, "any") {
			if !idx.CellHasCargoStatus(driverID, day, rule.CargoStatus) {
				return false
			}
		}
	}
	return true
}

// Highlight criteria are "<kind>:<value>" strings: driverStatus:<code>
// singles out drivers holding that schedule code on the day, cargoStatus:
// <STATUS> those with a matching cargo record, and cargoStatus:TOTAL any
// driver with cargo on the day.
const (
	CriterionDriverStatus = "driverStatus"
	CriterionCargoStatus  = "cargoStatus"
	CriterionCargoTotal   = "TOTAL"
)

// MatchSet scans the full record snapshots (not month-scoped) and returns
// the driver ids matching one criterion on one day.
func MatchSet(status []models.DriverStatusRecord, cargo []models.CargoRecord, day time.Time, criterion string) map[string]bool {
	set := make(map[string]bool)
	kind, value, ok := strings.Cut(criterion, ":")
	if !ok {
		return set
	}
	dk := DayKey(day)

	switch kind {
	case CriterionDriverStatus:
		for _, s := range status {
			if s.DayRef.IsZero() || DayKey(s.DayRef) != dk {
				continue
			}
			if s.Code == value {
				set[s.DriverID] = true
			}
		}
	case CriterionCargoStatus:
		for _, c := range cargo {
			if c.DayRef.IsZero() || DayKey(c.DayRef) != dk || c.DriverID == "" {
				continue
			}
			if value == CriterionCargoTotal || strings.EqualFold(strings.TrimSpace(c.Status), value) {
				set[c.DriverID] = true
			}
		}
	}
	return set
}

// DayKPIs are the headline numbers of one selected day: cargo counts per
// status and driver counts per schedule code.
type DayKPIs struct {
	DayLabel      string         `json:"dayLabel"`
	CargoTotal    int            `json:"cargoTotal"`
	CargoByStatus map[string]int `json:"cargoByStatus"`
	DriverByCode  map[string]int `json:"driverByCode"`
}

// ComputeDayKPIs tallies the full snapshots for one day. Every known cargo
// status and schedule code appears in the maps, zero included, so the KPI
// strip renders a stable set of tiles.
func ComputeDayKPIs(status []models.DriverStatusRecord, cargo []models.CargoRecord, day time.Time) DayKPIs {
	kpis := DayKPIs{
		DayLabel:      FormatBRDate(day),
		CargoByStatus: make(map[string]int, len(CargoStatusOptions)),
		DriverByCode:  make(map[string]int, len(DriverStatusOptions)),
	}
	for _, s := range CargoStatusOptions {
		kpis.CargoByStatus[s] = 0
	}
	for _, m := range DriverStatusOptions {
		kpis.DriverByCode[m.Code] = 0
	}

	dk := DayKey(day)
	for _, c := range cargo {
		if c.DayRef.IsZero() || DayKey(c.DayRef) != dk {
			continue
		}
		kpis.CargoTotal++
		st := strings.ToUpper(strings.TrimSpace(c.Status))
		if st == cargoMaintenanceAliased {
			st = CargoMaintenance
		}
		if _, ok := kpis.CargoByStatus[st]; ok {
			kpis.CargoByStatus[st]++
		}
	}
	for _, s := range status {
		if s.DayRef.IsZero() || DayKey(s.DayRef) != dk {
			continue
		}
		if _, ok := kpis.DriverByCode[s.Code]; ok {
			kpis.DriverByCode[s.Code]++
		}
	}
	return kpis
}
