package infra

// pdf.go: invoice generation using go-pdf/fpdf.
// Generates an A5 invoice with a header, sale metadata, the customer block,
// a single line-item table and a bold total. The output file is saved to
// storagePath/invoice_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"screenstock/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

func decimalFromQty(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// GenerateInvoicePDF writes the invoice for a completed sale. The sale must
// come with Item (and its Brand) and Customer loaded. Returns the absolute
// path of the generated file.
func GenerateInvoicePDF(sale *model.Sale, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s.pdf", sale.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "ScreenStock", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Sales invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Sale info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Invoice %s", sale.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, sale.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Customer block ───────────────────────────────────────────────────────
	if sale.Customer != nil {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(contentW, 4, "Billed to", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(contentW, 4, sale.Customer.FirstName+" "+sale.Customer.LastName, "", 1, "L", false, 0, "")
		if sale.Customer.Phone != nil {
			pdf.CellFormat(contentW, 4, *sale.Customer.Phone, "", 1, "L", false, 0, "")
		}
		if sale.Customer.Address != nil {
			pdf.CellFormat(contentW, 4, *sale.Customer.Address, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Line item ────────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // item
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.20 // total

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "Total", "B", 1, "R", false, 0, "")

	name := ""
	if sale.Item != nil {
		name = sale.Item.Name
		if sale.Item.Brand != nil {
			name = sale.Item.Brand.Name + " " + name
		}
	}
	if len(name) > 34 {
		name = name[:33] + "…"
	}
	total := sale.UnitPrice.Mul(decimalFromQty(sale.Quantity))

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", sale.Quantity), "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "$"+sale.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "$"+total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "$"+total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for your purchase", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
