package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/export"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testLoc = time.FixedZone("CST", -6*3600)

var testOpts = Options{Locale: format.Spanish, Location: testLoc}

func presenceRow(id, name, email string, kind attendance.Kind, ts *time.Time, authorized bool, minutes int) attendance.PresenceRow {
	return attendance.PresenceRow{
		Event: attendance.Event{
			ID:         id,
			UserID:     "user-" + id,
			Kind:       kind,
			OccurredAt: ts,
			Location:   &attendance.Location{Authorized: authorized},
			Employee:   attendance.Employee{DisplayName: name, Email: email},
		},
		MinutesWorked: minutes,
	}
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func sampleRows() []attendance.PresenceRow {
	return []attendance.PresenceRow{
		presenceRow("1", "Ana, Pérez", "ana@example.com", attendance.KindOut, ts("2024-03-05T23:00:00.123Z"), true, 480),
		presenceRow("2", `Luis "Lucho" Gómez`, "luis@example.com", attendance.KindIn, ts("2024-03-05T14:05:00Z"), false, 65),
		presenceRow("3", "Sin fecha", "", attendance.KindIn, nil, false, 0),
	}
}

func manyRows(n int) []attendance.PresenceRow {
	rows := make([]attendance.PresenceRow, 0, n)
	base := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		t := base.Add(time.Duration(i) * time.Hour)
		rows = append(rows, presenceRow(fmt.Sprint(i), fmt.Sprintf("Empleado %03d", i), fmt.Sprintf("e%03d@example.com", i), attendance.KindOut, &t, i%3 == 0, i*7))
	}
	return rows
}

func TestExportCSV(t *testing.T) {
	data, err := ExportCSV(sampleRows(), testOpts)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 4)
	assert.Equal(t, []string{"Empleado", "Email", "Tipo", "Fecha", "Autorizada", "Duración"}, records[0])
	assert.Equal(t, []string{"Ana, Pérez", "ana@example.com", "OUT", "2024-03-05T23:00:00.123Z", "Sí", "8:00h"}, records[1])
	assert.Equal(t, []string{`Luis "Lucho" Gómez`, "luis@example.com", "IN", "2024-03-05T14:05:00.000Z", "No", "1:05h"}, records[2])
	assert.Equal(t, []string{"Sin fecha", "", "IN", "", "No", "0:00h"}, records[3])
}

func TestExportCSV_CommaRoundTrip(t *testing.T) {
	data, err := ExportCSV(sampleRows()[:1], testOpts)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"Ana, Pérez"`)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Ana, Pérez", records[1][0])
}

func TestExportCSV_EmptyWritesHeaderOnly(t *testing.T) {
	data, err := ExportCSV(nil, Options{Locale: format.English})
	require.NoError(t, err)
	assert.Equal(t, "Employee name,Email,Kind,Timestamp,Location authorized,Duration\n", string(data))
}

func TestExportSpreadsheet(t *testing.T) {
	data, err := ExportSpreadsheet(sampleRows(), testOpts)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Empleado", "Email", "Tipo", "Fecha", "Autorizada", "Duración"}, rows[0])
	assert.Equal(t, []string{"Ana, Pérez", "ana@example.com", "OUT", "05/03/2024 17:00:00", "Sí", "8:00h"}, rows[1])
	assert.Equal(t, "05/03/2024 08:05:00", rows[2][3])

	panes, err := f.GetPanes(SheetName)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)

	styleID, err := f.GetCellStyle(SheetName, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestExportDocument(t *testing.T) {
	header := export.DocumentHeader{
		CompanyName: "Acme S.A. de C.V.",
		CompanyID:   "acme",
		GeneratedAt: time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC),
	}

	data, err := ExportDocument(sampleRows(), header, testOpts)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, 1, bytes.Count(data, []byte("<</Type /Page\n")))
}

func TestExportDocument_Paginates(t *testing.T) {
	header := export.DocumentHeader{CompanyName: "Acme", CompanyID: "acme", GeneratedAt: time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)}

	data, err := ExportDocument(manyRows(120), header, testOpts)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, bytes.Count(data, []byte("<</Type /Page\n")), 4)
}

func TestExportDocument_WithLogo(t *testing.T) {
	header := export.DocumentHeader{
		Logo:        testPNG(t),
		CompanyName: "Acme",
		CompanyID:   "acme",
		GeneratedAt: time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC),
	}

	data, err := ExportDocument(sampleRows(), header, testOpts)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/Subtype /Image")
}

func TestExportDocument_RejectsUnknownLogo(t *testing.T) {
	header := export.DocumentHeader{Logo: []byte("GIF89a not really"), GeneratedAt: time.Now()}

	_, err := ExportDocument(sampleRows(), header, testOpts)
	assert.ErrorIs(t, err, export.ErrUnsupportedLogo)
}

func TestExportDocument_Empty(t *testing.T) {
	data, err := ExportDocument(nil, export.DocumentHeader{}, testOpts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExports_NonLatinNames(t *testing.T) {
	rows := []attendance.PresenceRow{
		presenceRow("e1", "Иван Петров", "ivan@example.com", attendance.KindIn, ts("2024-03-05T14:05:00Z"), true, 60),
	}

	// The PDF core fonts are cp1252 only; the document still renders.
	data, err := ExportDocument(rows, export.DocumentHeader{GeneratedAt: time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)}, testOpts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	data, err = ExportSpreadsheet(rows, testOpts)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue(SheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Иван Петров", name)

	data, err = ExportCSV(rows, testOpts)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Иван Петров")
}

func TestExports_AreDeterministic(t *testing.T) {
	rows := manyRows(40)
	header := export.DocumentHeader{
		Logo:        testPNG(t),
		CompanyName: "Acme",
		CompanyID:   "acme",
		GeneratedAt: time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC),
	}

	renderers := map[string]func() ([]byte, error){
		"csv":         func() ([]byte, error) { return ExportCSV(rows, testOpts) },
		"spreadsheet": func() ([]byte, error) { return ExportSpreadsheet(rows, testOpts) },
		"document":    func() ([]byte, error) { return ExportDocument(rows, header, testOpts) },
	}

	for name, render := range renderers {
		t.Run(name, func(t *testing.T) {
			first, err := render()
			require.NoError(t, err)
			second, err := render()
			require.NoError(t, err)
			assert.True(t, bytes.Equal(first, second), "%s output differs between runs", name)
		})
	}
}

func TestFit_ShortensLongCells(t *testing.T) {
	rows := []attendance.PresenceRow{
		presenceRow("1", "Nombre extremadamente largo que no cabe en la columna del documento", "correo.muy.largo.que.tampoco.cabe@empresa-de-ejemplo.com", attendance.KindIn, ts("2024-03-05T14:05:00Z"), true, 30),
	}

	_, err := ExportDocument(rows, export.DocumentHeader{GeneratedAt: time.Now()}, testOpts)
	assert.NoError(t, err)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
