package infra

// pdf.go — Receipt generation using go-pdf/fpdf.
// Renders a thermal-receipt-style PDF for a finalized sale:
//   - Property name header
//   - Sale kind (room number or walk-in) and timestamp
//   - Line table (item, quantity, line total)
//   - Bold grand total and payment mode
//
// The output file is saved to storagePath/receipt_{saleID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anish435/Hotel-Inventory-management-system/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReceiptPDF renders the receipt for a finalized sale and returns the
// path of the written file. storagePath is created if missing.
func GenerateReceiptPDF(sale *model.SaleRecord, propertyName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", sale.ID)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, propertyName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Sale Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Sale info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	if sale.Kind == model.SaleKindRoom && sale.RoomNumber != nil {
		pdf.CellFormat(contentW, 5, "Room "+*sale.RoomNumber, "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(contentW, 5, "Walk-in", "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Line table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // item name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // line total

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, line := range sale.Lines {
		name := line.DisplayName
		if len(name) > 22 {
			name = name[:21] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, line.LineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, sale.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 5, "Paid by "+sale.PaymentMode, "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write receipt: %w", err)
	}
	return filePath, nil
}
