package infra

// pdf.go renders a proposal with go-pdf/fpdf:
//   - cover block (company, quote number, client, project)
//   - one comparison matrix per budget section, prototypes as columns
//   - per-prototype and global totals (discount and IVA when shown)
//   - payment plan and commercial terms
//
// GenerarPropuestaPDF writes to storagePath/propuesta_{numero}.pdf.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"crkitchen/internal/cotizacion"
	"crkitchen/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	margen      = 12.0
	anchoPagina = 210.0
	anchoUtil   = anchoPagina - 2*margen
	colConcepto = 64.0
)

// GenerarPropuestaPDF renders the proposal to disk and returns the file path.
func GenerarPropuestaPDF(c *cotizacion.Cotizacion, marca model.Branding, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	numero := c.Proyecto.NumeroCotizacion
	if numero == "" {
		numero = c.ID
	}
	filePath := filepath.Join(storagePath, "propuesta_"+nombreArchivo(numero)+".pdf")

	pdf := renderPropuesta(c, marca)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// EscribirPropuestaPDF renders the proposal into w.
func EscribirPropuestaPDF(w io.Writer, c *cotizacion.Cotizacion, marca model.Branding) error {
	pdf := renderPropuesta(c, marca)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write: %w", err)
	}
	return nil
}

func nombreArchivo(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}

func renderPropuesta(c *cotizacion.Cotizacion, marca model.Branding) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margen, margen, margen)
	pdf.SetAutoPageBreak(true, margen)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	vista := c.Vista()
	totales := cotizacion.CalcularTotales(c)

	empresa := marca.NombreEmpresa
	if empresa == "" {
		empresa = "CR Kitchen & Design"
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "I", 7)
		pie := empresa
		if vista.TextoPie != "" {
			pie = vista.TextoPie
		}
		pdf.CellFormat(anchoUtil/2, 4, tr(pie), "", 0, "L", false, 0, "")
		pdf.CellFormat(anchoUtil/2, 4, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// ── Cover ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(anchoUtil, 9, tr(empresa), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(anchoUtil, 5, tr("Propuesta de Diseño"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if vista.MostrarPortada {
		pdf.SetFont("Helvetica", "B", 14)
		titulo := c.Proyecto.Nombre
		if titulo == "" {
			titulo = c.Categoria
		}
		pdf.MultiCell(anchoUtil, 7, tr(strings.ToUpper(titulo)), "", "L", false)
		pdf.SetFont("Helvetica", "", 9)
		filas := [][2]string{
			{"Folio", c.Proyecto.NumeroCotizacion},
			{"Fecha", c.Proyecto.Fecha},
			{"Cliente", c.Cliente.Nombre},
			{"Dirección de obra", c.Proyecto.Direccion},
			{"Categoría", c.Categoria},
		}
		for _, f := range filas {
			if f[1] == "" {
				continue
			}
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(40, 5, tr(f[0]+":"), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(anchoUtil-40, 5, tr(f[1]), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	// ── Section matrices ─────────────────────────────────────────────────────
	if vista.MostrarMatriz {
		for _, m := range cotizacion.ConstruirDocumento(c) {
			renderMatriz(pdf, tr, m, c.Moneda)
		}
		renderTotalesPrototipo(pdf, tr, totales, c.Moneda)
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	renderTotales(pdf, tr, c, totales)

	// ── Terms ────────────────────────────────────────────────────────────────
	if vista.MostrarTerminos {
		renderTerminos(pdf, tr, c, totales.Total)
	}
	return pdf
}

func anchoColumna(n int) float64 {
	if n == 0 {
		return anchoUtil - colConcepto
	}
	return (anchoUtil - colConcepto) / float64(n)
}

func renderMatriz(pdf *fpdf.Fpdf, tr func(string) string, m cotizacion.Matriz, moneda cotizacion.Moneda) {
	col := anchoColumna(len(m.Prototipos))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(anchoUtil, 7, tr(m.Titulo), "", 1, "L", false, 0, "")

	pdf.SetFillColor(235, 235, 235)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(colConcepto, 6, "Concepto", "B", 0, "L", true, 0, "")
	for _, p := range m.Prototipos {
		pdf.CellFormat(col, 6, tr(recortar(p.Nombre, 22)), "B", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	for _, f := range m.Filas {
		pdf.CellFormat(colConcepto, 5, tr(recortar(f.Concepto, 48)), "", 0, "L", false, 0, "")
		for _, celda := range f.Celdas {
			pdf.CellFormat(col, 5, tr(textoCelda(celda, moneda)), "", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}

func textoCelda(c cotizacion.Celda, moneda cotizacion.Moneda) string {
	switch c.Tipo {
	case cotizacion.CeldaIncluida:
		return "Incluido"
	case cotizacion.CeldaUnidades:
		return c.Cantidad.String() + " pzas"
	case cotizacion.CeldaImporte:
		return cotizacion.FormatearMoneda(c.Importe, moneda)
	default:
		return "-"
	}
}

func renderTotalesPrototipo(pdf *fpdf.Fpdf, tr func(string) string, t cotizacion.Totales, moneda cotizacion.Moneda) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(anchoUtil, 6, "Resumen por modelo", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	for _, p := range t.PorPrototipo {
		etiqueta := fmt.Sprintf("%s  x%d", p.Nombre, p.Cantidad)
		pdf.CellFormat(anchoUtil*0.6, 5, tr(etiqueta), "", 0, "L", false, 0, "")
		pdf.CellFormat(anchoUtil*0.4, 5, cotizacion.FormatearMoneda(p.Importe, moneda), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
}

func renderTotales(pdf *fpdf.Fpdf, tr func(string) string, c *cotizacion.Cotizacion, t cotizacion.Totales) {
	linea := func(etiqueta string, v decimal.Decimal, negrita bool) {
		estilo := ""
		if negrita {
			estilo = "B"
		}
		pdf.SetFont("Helvetica", estilo, 9)
		pdf.CellFormat(anchoUtil*0.7, 6, tr(etiqueta), "", 0, "R", false, 0, "")
		pdf.CellFormat(anchoUtil*0.3, 6, cotizacion.FormatearMoneda(v, c.Moneda), "", 1, "R", false, 0, "")
	}

	pdf.Line(margen, pdf.GetY(), anchoPagina-margen, pdf.GetY())
	pdf.Ln(1)
	linea("Subtotal", t.Subtotal, false)
	if c.MostrarDescuento {
		linea(fmt.Sprintf("Descuento (%s%%)", c.Descuento.Decimal().String()), t.Descuento.Neg(), false)
		linea("Subtotal neto", t.SubtotalNeto, false)
	}
	if c.MostrarIVA {
		linea(fmt.Sprintf("IVA (%s%%)", c.TasaIVA.Decimal().Mul(decimal.NewFromInt(100)).String()), t.IVA, false)
	}
	linea("TOTAL", t.Total, true)
	pdf.Ln(4)
}

func renderTerminos(pdf *fpdf.Fpdf, tr func(string) string, c *cotizacion.Cotizacion, total decimal.Decimal) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(anchoUtil, 7, tr("Condiciones comerciales"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, p := range cotizacion.PlanPagos(total, c.Terminos) {
		etiqueta := fmt.Sprintf("%s (%s%%)", p.Concepto, p.Porcentaje.String())
		pdf.CellFormat(anchoUtil*0.6, 5, tr(etiqueta), "", 0, "L", false, 0, "")
		pdf.CellFormat(anchoUtil*0.4, 5, cotizacion.FormatearMoneda(p.Monto, c.Moneda), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
	if c.Terminos.TiempoEntrega != "" {
		pdf.MultiCell(anchoUtil, 5, tr("Tiempo de entrega: "+c.Terminos.TiempoEntrega), "", "L", false)
	}
	if c.Terminos.Garantia != "" {
		pdf.MultiCell(anchoUtil, 5, tr("Garantía: "+c.Terminos.Garantia), "", "L", false)
	}
	if c.Terminos.Texto != "" {
		pdf.Ln(2)
		pdf.MultiCell(anchoUtil, 4.5, tr(c.Terminos.Texto), "", "J", false)
	}
}

func recortar(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
