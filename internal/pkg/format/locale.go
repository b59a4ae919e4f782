package format

import (
	"fmt"
	"strings"
	"time"
)

// Locale holds every user-facing label the dashboard and its exports render.
type Locale struct {
	Code string

	// Export column headers, in column order
	ColumnEmployee   string
	ColumnEmail      string
	ColumnKind       string
	ColumnTimestamp  string
	ColumnAuthorized string
	ColumnDuration   string

	Yes string
	No  string

	KindIn  string
	KindOut string

	TimestampLayout string

	DocumentTitle     string
	DocumentCompany   string
	DocumentCompanyID string
	DocumentGenerated string
	DocumentPage      string

	LoadFailed       string
	ScopeTruncated   string // takes the employee cap
	NothingToDisplay string
}

var Spanish = Locale{
	Code:              "es",
	ColumnEmployee:    "Empleado",
	ColumnEmail:       "Email",
	ColumnKind:        "Tipo",
	ColumnTimestamp:   "Fecha",
	ColumnAuthorized:  "Autorizada",
	ColumnDuration:    "Duración",
	Yes:               "Sí",
	No:                "No",
	KindIn:            "Entrada",
	KindOut:           "Salida",
	TimestampLayout:   "02/01/2006 15:04:05",
	DocumentTitle:     "Registro de fichajes",
	DocumentCompany:   "Empresa",
	DocumentCompanyID: "ID empresa",
	DocumentGenerated: "Exportado",
	DocumentPage:      "Página",
	LoadFailed:        "No se pudieron cargar los fichajes.",
	ScopeTruncated:    "La empresa tiene más de %d empleados; solo se muestran los fichajes de los primeros %d.",
	NothingToDisplay:  "No hay fichajes para mostrar.",
}

var English = Locale{
	Code:              "en",
	ColumnEmployee:    "Employee name",
	ColumnEmail:       "Email",
	ColumnKind:        "Kind",
	ColumnTimestamp:   "Timestamp",
	ColumnAuthorized:  "Location authorized",
	ColumnDuration:    "Duration",
	Yes:               "Yes",
	No:                "No",
	KindIn:            "Clock-in",
	KindOut:           "Clock-out",
	TimestampLayout:   "2006-01-02 15:04:05",
	DocumentTitle:     "Attendance log",
	DocumentCompany:   "Company",
	DocumentCompanyID: "Company ID",
	DocumentGenerated: "Exported",
	DocumentPage:      "Page",
	LoadFailed:        "Attendance events could not be loaded.",
	ScopeTruncated:    "The company has more than %d employees; only events of the first %d are shown.",
	NothingToDisplay:  "There are no events to display.",
}

// LookupLocale returns the locale for code, falling back to Spanish.
func LookupLocale(code string) Locale {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	switch code {
	case "en":
		return English
	default:
		return Spanish
	}
}

// Columns returns the export header row.
func (l Locale) Columns() []string {
	return []string{
		l.ColumnEmployee,
		l.ColumnEmail,
		l.ColumnKind,
		l.ColumnTimestamp,
		l.ColumnAuthorized,
		l.ColumnDuration,
	}
}

func (l Locale) YesNo(b bool) string {
	if b {
		return l.Yes
	}
	return l.No
}

// KindLabel translates IN and OUT; any other raw kind is returned as is.
func (l Locale) KindLabel(kind string) string {
	switch kind {
	case "IN":
		return l.KindIn
	case "OUT":
		return l.KindOut
	}
	return kind
}

// HumanTimestamp renders t in loc using the locale layout.
func (l Locale) HumanTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(l.TimestampLayout)
}

func (l Locale) TruncationWarning(limit int) string {
	return fmt.Sprintf(l.ScopeTruncated, limit, limit)
}
