package infra

// pdf.go — generación de recibos en PDF con go-pdf/fpdf.
// Formato A7 apaisado de ticket: encabezado del taller, número de recibo,
// detalle del pedido (descripción, cantidad, precio unitario), costos
// adicionales y total en negrita.
//
// El archivo se guarda en storagePath/recibo_{id8}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"australprints/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReciboPDF renders the receipt for a delivered Pedido.
// storagePath is created if missing. Returns the absolute path of the file.
func GenerateReciboPDF(recibo *model.Recibo, pedido *model.Pedido, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", recibo.ID.String()[:8])
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm, tamaño ticket (fpdf no lo trae en la lista nombrada).
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Encabezado ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Austral Prints 3D", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Recibo de Entrega", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Datos del recibo ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Recibo %s", recibo.ID.String()[:8]), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, recibo.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")

	if nombre := nombreClienteDe(pedido); nombre != "" {
		pdf.CellFormat(contentW, 4, "Cliente: "+nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	// ── Separador ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Detalle ──────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Detalle", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	descripcion := pedido.Descripcion
	if len(descripcion) > 22 {
		descripcion = descripcion[:21] + "…"
	}
	cantidad := pedido.CantidadEfectiva()
	importe := pedido.Precio.Mul(decimal.NewFromInt(int64(cantidad)))
	pdf.CellFormat(col1, 5, descripcion, "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", cantidad), "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "$"+importe.StringFixed(2), "", 1, "R", false, 0, "")

	for _, ca := range pedido.CostosAdicionales {
		detalle := ca.Descripcion
		if len(detalle) > 22 {
			detalle = detalle[:21] + "…"
		}
		pdf.CellFormat(col1, 5, detalle, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "", "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+ca.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+recibo.MontoTotal.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Pie ──────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por elegirnos!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

func nombreClienteDe(p *model.Pedido) string {
	if p.Cliente != nil {
		return p.Cliente.NombreCompleto
	}
	if p.NombreClienteLibre != nil {
		return *p.NombreClienteLibre
	}
	return ""
}
