package schedule

import "strings"

// Cargo operational statuses.
const (
	CargoAwaitingLoad       = "AGUARDANDO CARREGAMENTO"
	CargoEnRouteToPickup    = "EM ROTA PARA A COLETA"
	CargoEnRouteToDelivery  = "EM ROTA PARA A ENTREGA"
	CargoAwaitingUnload     = "AGUARDANDO DESCARGA"
	CargoEmpty              = "VAZIO"
	CargoMaintenance        = "MANUTENÇÃO"
	cargoMaintenanceAliased = "MANUTENCAO" // legacy unaccented spelling found in stored data
)

// CargoStatusOptions lists the selectable cargo statuses in display order.
var CargoStatusOptions = []string{
	CargoAwaitingLoad,
	CargoEnRouteToPickup,
	CargoEnRouteToDelivery,
	CargoAwaitingUnload,
	CargoEmpty,
	CargoMaintenance,
}

// IsCargoStatus reports whether s is a known cargo status (case-insensitive).
func IsCargoStatus(s string) bool {
	u := strings.ToUpper(strings.TrimSpace(s))
	for _, opt := range CargoStatusOptions {
		if u == opt {
			return true
		}
	}
	return u == cargoMaintenanceAliased
}

// IsIdleStatus reports whether a cargo status represents an empty or
// under-maintenance vehicle. Idle records carry only the current city in
// originCity; pickup/destination/delivery fields must stay empty.
func IsIdleStatus(s string) bool {
	u := strings.ToUpper(strings.TrimSpace(s))
	return u == CargoEmpty || u == CargoMaintenance || u == cargoMaintenanceAliased
}

// Driver schedule codes.
const (
	CodeWorked     = "P"
	CodeHalfDay    = "P/DS"
	CodeWeeklyRest = "DS"
	CodeAbsence    = "F"
	CodeDismissed  = "D"
	CodeMedical    = "A"
	CodeSuspended  = "S"
	CodeVacation   = "FE"
)

// StatusMeta carries the display metadata of a driver schedule code. The
// label and colors are copied onto each record at write time, so this table
// can change without rewriting stored history.
type StatusMeta struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Bg    string `json:"bg"`
	Fg    string `json:"fg"`
}

// DriverStatusOptions is the fixed code table, in display order.
var DriverStatusOptions = []StatusMeta{
	{Code: CodeWorked, Label: "P — Trabalhado", Bg: "#10b981", Fg: "#ffffff"},
	{Code: CodeHalfDay, Label: "P/DS — Meio período", Bg: "#f59e0b", Fg: "#111827"},
	{Code: CodeWeeklyRest, Label: "DS — Descanso semanal", Bg: "#ec4899", Fg: "#ffffff"},
	{Code: CodeAbsence, Label: "F — Falta", Bg: "#f97316", Fg: "#111827"},
	{Code: CodeDismissed, Label: "D — Demitido", Bg: "#dc2626", Fg: "#ffffff"},
	{Code: CodeMedical, Label: "A — Atestado", Bg: "#eab308", Fg: "#111827"},
	{Code: CodeSuspended, Label: "S — Suspenso", Bg: "#000000", Fg: "#ffffff"},
	{Code: CodeVacation, Label: "FE — Férias", Bg: "#0066cc", Fg: "#ffffff"},
}

// MetaFor resolves a schedule code to its display metadata.
func MetaFor(code string) (StatusMeta, bool) {
	for _, m := range DriverStatusOptions {
		if m.Code == code {
			return m, true
		}
	}
	return StatusMeta{}, false
}

// Code sets used by the day-off balance calculator.
var (
	workCodes     = map[string]bool{CodeWorked: true, CodeHalfDay: true}
	restCodes     = map[string]bool{CodeWeeklyRest: true}
	vacationCodes = map[string]bool{CodeVacation: true}
)
