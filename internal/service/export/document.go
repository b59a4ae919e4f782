package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/export"
	"github.com/jung-kurt/gofpdf"
)

const (
	docMargin       = 10.0
	docFooterHeight = 10.0
	docLogoHeight   = 18.0
	docRowHeight    = 7.0
	docHeaderHeight = 8.0
	docFont         = "Helvetica"
	docLogoName     = "company-logo"
)

// A4 landscape leaves 277mm between the margins.
var docColumnWidths = []float64{60, 70, 22, 50, 35, 40}

var docColumnAlign = []string{"L", "L", "C", "L", "C", "R"}

// LogoImageType returns the gofpdf image type of a PNG or JPEG logo.
func LogoImageType(logo []byte) (string, error) {
	switch http.DetectContentType(logo) {
	case "image/png":
		return "PNG", nil
	case "image/jpeg":
		return "JPG", nil
	}
	return "", export.ErrUnsupportedLogo
}

type documentRenderer struct {
	pdf       *gofpdf.Fpdf
	tr        func(string) string
	opts      Options
	tableOpen bool
}

// ExportDocument renders an A4 landscape PDF: a header block with the optional
// logo, company name, company id and export time, then a striped table whose
// header row is repeated on every page.
func ExportDocument(rows []attendance.PresenceRow, header export.DocumentHeader, opts Options) ([]byte, error) {
	generatedAt := header.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Unix(0, 0).UTC()
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(docMargin, docMargin, docMargin)
	pdf.SetAutoPageBreak(true, docMargin+docFooterHeight)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetTitle(opts.Locale.DocumentTitle, true)
	pdf.SetCreator("fichajes-dashboard", false)
	pdf.AliasNbPages("")

	r := &documentRenderer{
		pdf:  pdf,
		// Core fonts are cp1252; characters outside it do not survive.
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		opts: opts,
	}
	pdf.SetHeaderFuncMode(r.repeatTableHeader, false)
	pdf.SetFooterFunc(r.footer)

	pdf.AddPage()
	if err := r.documentHeader(header, generatedAt); err != nil {
		return nil, err
	}

	r.tableHeader()
	r.tableOpen = true
	for i, row := range rows {
		r.row(i, newRecord(row, opts, true))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", export.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func (r *documentRenderer) documentHeader(header export.DocumentHeader, generatedAt time.Time) error {
	pdf := r.pdf
	locale := r.opts.Locale
	top := pdf.GetY()
	textX := docMargin

	if len(header.Logo) > 0 {
		imageType, err := LogoImageType(header.Logo)
		if err != nil {
			return err
		}
		info := pdf.RegisterImageOptionsReader(docLogoName, gofpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(header.Logo))
		if pdf.Err() {
			return fmt.Errorf("%w: %w", export.ErrUnsupportedLogo, pdf.Error())
		}
		w := info.Width() * docLogoHeight / info.Height()
		pdf.ImageOptions(docLogoName, docMargin, top, w, docLogoHeight, false, gofpdf.ImageOptions{ImageType: imageType}, 0, "")
		textX += w + 5
	}

	pdf.SetXY(textX, top)
	pdf.SetFont(docFont, "B", 16)
	pdf.CellFormat(0, 8, r.tr(locale.DocumentTitle), "", 1, "L", false, 0, "")

	pdf.SetFont(docFont, "", 10)
	lines := []string{
		locale.DocumentCompany + ": " + header.CompanyName,
		locale.DocumentCompanyID + ": " + header.CompanyID,
		locale.DocumentGenerated + ": " + locale.HumanTimestamp(generatedAt, r.opts.location()),
	}
	for _, line := range lines {
		pdf.SetX(textX)
		pdf.CellFormat(0, 5, r.tr(line), "", 1, "L", false, 0, "")
	}

	bottom := pdf.GetY()
	if logoBottom := top + docLogoHeight; len(header.Logo) > 0 && logoBottom > bottom {
		bottom = logoBottom
	}
	pdf.SetY(bottom + 4)
	return nil
}

// repeatTableHeader runs on every AddPage, including automatic page breaks.
func (r *documentRenderer) repeatTableHeader() {
	if r.tableOpen {
		r.tableHeader()
	}
}

func (r *documentRenderer) tableHeader() {
	pdf := r.pdf
	pdf.SetFont(docFont, "B", 10)
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(52, 73, 94)

	for i, label := range r.opts.Locale.Columns() {
		pdf.CellFormat(docColumnWidths[i], docHeaderHeight, r.fit(label, docColumnWidths[i]), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(docFont, "", 9)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetDrawColor(222, 226, 230)
}

func (r *documentRenderer) row(index int, rec record) {
	pdf := r.pdf
	striped := index%2 == 1
	if striped {
		pdf.SetFillColor(242, 244, 247)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}

	for i, value := range rec.strings() {
		pdf.CellFormat(docColumnWidths[i], docRowHeight, r.fit(value, docColumnWidths[i]), "1", 0, docColumnAlign[i], true, 0, "")
	}
	pdf.Ln(-1)
}

func (r *documentRenderer) footer() {
	pdf := r.pdf
	pdf.SetY(-(docMargin + 5))
	pdf.SetFont(docFont, "I", 8)
	pdf.SetTextColor(108, 117, 125)
	label := fmt.Sprintf("%s %d/{nb}", r.opts.Locale.DocumentPage, pdf.PageNo())
	pdf.CellFormat(0, 5, r.tr(label), "", 0, "R", false, 0, "")
}

// fit translates s to the font encoding and shortens it to the cell width.
func (r *documentRenderer) fit(s string, width float64) string {
	const ellipsis = "..."
	text := r.tr(s)
	limit := width - 2*r.pdf.GetCellMargin()
	if r.pdf.GetStringWidth(text) <= limit {
		return text
	}
	// The translated text is single-byte encoded, so bytes are glyphs.
	b := []byte(text)
	for len(b) > 0 && r.pdf.GetStringWidth(string(b)+ellipsis) > limit {
		b = b[:len(b)-1]
	}
	return string(b) + ellipsis
}
