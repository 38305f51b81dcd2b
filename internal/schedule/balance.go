package schedule

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"fleet-agenda-api-server/internal/models"
)

// DefaultRankingSize is the number of drivers the ranking returns when the
// caller does not ask for a specific cut.
const DefaultRankingSize = 10

// DriverSummary is one driver's day-off accounting for a month.
//
// Entitlement follows the 1-folga-per-6-worked-days policy with integer
// division; Balance = Entitlement - TakenOff. Whether vacation days (FE)
// count as taken folgas is a report toggle and only affects TakenOff and
// Balance, never the raw counts.
type DriverSummary struct {
	DriverID    string `json:"driverId"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Worked      int    `json:"worked"`   // P, P/DS
	Rest        int    `json:"rest"`     // DS
	Vacation    int    `json:"vacation"` // FE
	Other       int    `json:"other"`
	Entitlement int    `json:"entitlement"`
	TakenOff    int    `json:"takenOff"`
	Balance     int    `json:"balance"`
}

// Summaries aggregates one month of status records per known driver.
// Records referencing unknown drivers are ignored. The result is sorted by
// name with pt-BR collation.
func Summaries(drivers []models.Driver, records []models.DriverStatusRecord, countVacationAsRest bool) []DriverSummary {
	byID := make(map[string]*DriverSummary, len(drivers))
	out := make([]DriverSummary, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, DriverSummary{DriverID: d.DriverID, Name: d.Name, City: d.ResidenceCity})
	}
	for i := range out {
		byID[out[i].DriverID] = &out[i]
	}

	for _, rec := range records {
		s, ok := byID[rec.DriverID]
		if !ok {
			continue
		}
		switch code := rec.Code; {
		case workCodes[code]:
			s.Worked++
		case restCodes[code]:
			s.Rest++
		case vacationCodes[code]:
			s.Vacation++
		default:
			s.Other++
		}
	}

	for i := range out {
		s := &out[i]
		s.Entitlement = s.Worked / 6
		s.TakenOff = s.Rest
		if countVacationAsRest {
			s.TakenOff += s.Vacation
		}
		s.Balance = s.Entitlement - s.TakenOff
	}

	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// RankByWorked returns the topN drivers by worked days descending, names
// collated ascending on ties. topN is clamped to at least 1; zero or
// negative means DefaultRankingSize.
func RankByWorked(summaries []DriverSummary, topN int) []DriverSummary {
	if topN <= 0 {
		topN = DefaultRankingSize
	}
	ranked := make([]DriverSummary, len(summaries))
	copy(ranked, summaries)

	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Worked != ranked[j].Worked {
			return ranked[i].Worked > ranked[j].Worked
		}
		return c.CompareString(ranked[i].Name, ranked[j].Name) < 0
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	return ranked[:topN]
}
