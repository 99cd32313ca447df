package cotizacion

import (
	"strings"

	"github.com/shopspring/decimal"
)

type TipoCelda int

const (
	CeldaVacia    TipoCelda = iota // prototype lacks the concept
	CeldaIncluida                  // no own price, one unit
	CeldaUnidades                  // no own price, several units
	CeldaImporte                   // priced
)

type Celda struct {
	Tipo     TipoCelda       `json:"tipo"`
	Cantidad decimal.Decimal `json:"cantidad"`
	Importe  decimal.Decimal `json:"importe"`
}

type ColumnaMatriz struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

type FilaMatriz struct {
	Concepto string  `json:"concepto"`
	Celdas   []Celda `json:"celdas"`
}

// Matriz compares one section across all prototypes: one row per distinct
// concept and one column per prototype.
type Matriz struct {
	Seccion    Seccion         `json:"seccion"`
	Titulo     string          `json:"titulo"`
	Prototipos []ColumnaMatriz `json:"prototipos"`
	Filas      []FilaMatriz    `json:"filas"`
}

func claveConcepto(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ConstruirMatriz builds the matrix of one section. Concepts are grouped
// ignoring case and surrounding spaces; the first spelling wins and rows keep
// order of appearance.
func ConstruirMatriz(c *Cotizacion, seccion Seccion) Matriz {
	m := Matriz{
		Seccion:    seccion,
		Titulo:     seccion.Titulo(),
		Prototipos: make([]ColumnaMatriz, len(c.Prototipos)),
	}
	for i, p := range c.Prototipos {
		m.Prototipos[i] = ColumnaMatriz{ID: p.ID, Nombre: p.Nombre}
	}

	vistas := map[string]bool{}
	var claves []string
	for _, p := range c.Prototipos {
		for _, it := range p.Partidas {
			if !it.Seccion.Igual(seccion) {
				continue
			}
			k := claveConcepto(it.Concepto)
			if vistas[k] {
				continue
			}
			vistas[k] = true
			claves = append(claves, k)
			m.Filas = append(m.Filas, FilaMatriz{Concepto: it.Concepto})
		}
	}

	for f, k := range claves {
		celdas := make([]Celda, len(c.Prototipos))
		for j, p := range c.Prototipos {
			celdas[j] = celdaPara(p, seccion, k)
		}
		m.Filas[f].Celdas = celdas
	}
	return m
}

func celdaPara(p Prototipo, seccion Seccion, clave string) Celda {
	for _, it := range p.Partidas {
		if !it.Seccion.Igual(seccion) || claveConcepto(it.Concepto) != clave {
			continue
		}
		if it.PrecioUnitario.IsZero() {
			if it.Cantidad.GreaterThan(decimal.NewFromInt(1)) {
				return Celda{Tipo: CeldaUnidades, Cantidad: it.Cantidad}
			}
			return Celda{Tipo: CeldaIncluida, Cantidad: it.Cantidad}
		}
		return Celda{Tipo: CeldaImporte, Cantidad: it.Cantidad, Importe: it.Subtotal()}
	}
	return Celda{Tipo: CeldaVacia}
}

// ConstruirDocumento returns one matrix per non-empty section: known sections
// first in their fixed order, then custom ones by appearance.
func ConstruirDocumento(c *Cotizacion) []Matriz {
	var secciones []Seccion
	for _, s := range SeccionesConocidas {
		if tieneSeccion(c, s) {
			secciones = append(secciones, s)
		}
	}
	for _, p := range c.Prototipos {
		for _, it := range p.Partidas {
			if it.Seccion.Tipo() != SeccionOtra {
				continue
			}
			repetida := false
			for _, s := range secciones {
				if s.Igual(it.Seccion) {
					repetida = true
					break
				}
			}
			if !repetida {
				secciones = append(secciones, it.Seccion)
			}
		}
	}

	out := make([]Matriz, 0, len(secciones))
	for _, s := range secciones {
		out = append(out, ConstruirMatriz(c, s))
	}
	return out
}

func tieneSeccion(c *Cotizacion, s Seccion) bool {
	for _, p := range c.Prototipos {
		for _, it := range p.Partidas {
			if it.Seccion.Igual(s) {
				return true
			}
		}
	}
	return false
}
