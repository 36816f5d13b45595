// internal/services/document_service.go
package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/lotkeeper/carstock-backend/internal/config"
	"github.com/lotkeeper/carstock-backend/internal/models"
)

// DocumentService renders printable documents from a record's field mapping:
// make, model, year, vin, stock_number, options, key_features.
type DocumentService struct {
	cfg config.DocumentsConfig
}

func NewDocumentService(cfg config.DocumentsConfig) *DocumentService {
	return &DocumentService{cfg: cfg}
}

// WindowSticker renders the single-vehicle marketing sheet.
func (s *DocumentService) WindowSticker(v *models.Vehicle) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(fmt.Sprintf("%s %s %s", v.ModelYear, v.Make, v.Model), false)
	pdf.AddPage()

	s.header(pdf)

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, fmt.Sprintf("%s %s %s %s", v.ModelYear, v.Make, v.Model, v.Series), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	s.labeled(pdf, "VIN", v.VIN)
	s.labeled(pdf, "Stock #", v.StockNumber)
	pdf.Ln(4)

	if v.KeyFeatures != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, "Key Features", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, feature := range splitItems(v.KeyFeatures) {
			pdf.CellFormat(0, 6, "- "+feature, "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	if v.Options != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, "Options", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, v.Options, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering window sticker: %w", err)
	}
	return buf.Bytes(), nil
}

// InventorySheet renders the whole-lot compliance listing, one line per
// record.
func (s *DocumentService) InventorySheet(vehicles []models.Vehicle) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetTitle("Inventory Sheet", false)
	pdf.AddPage()

	s.header(pdf)

	pdf.SetFont("Helvetica", "B", 10)
	widths := []float64{40, 25, 30, 15, 20, 25, 100}
	headers := []string{"VIN", "Make", "Model", "Year", "Series", "Stock #", "Key Features"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, v := range vehicles {
		cols := []string{v.VIN, v.Make, v.Model, v.ModelYear, v.Series, v.StockNumber, v.KeyFeatures}
		for i, col := range cols {
			pdf.CellFormat(widths[i], 6, col, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering inventory sheet: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *DocumentService) header(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, s.cfg.DealerName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if s.cfg.DealerAddress != "" {
		pdf.CellFormat(0, 5, s.cfg.DealerAddress, "", 1, "C", false, 0, "")
	}
	if s.cfg.DealerPhone != "" {
		pdf.CellFormat(0, 5, s.cfg.DealerPhone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)
}

func (s *DocumentService) labeled(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(30, 6, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

// splitItems breaks comma-joined feature text into display lines. Items
// that legitimately contain commas come out split here; for a bullet list
// that is acceptable, the stored text stays untouched.
func splitItems(text string) []string {
	var items []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
