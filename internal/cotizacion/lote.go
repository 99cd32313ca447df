package cotizacion

import (
	"github.com/shopspring/decimal"
)

// AsignarPrecioLote puts the whole mobiliario price of the prototype on its
// first mobiliario item (quantity 1) and zeroes the rest, whose quantities are
// left as they were. It is a no-op when there is no mobiliario.
func (e *Editor) AsignarPrecioLote(prototipoID string, monto decimal.Decimal) error {
	p, ok := e.c.Prototipo(prototipoID)
	if !ok {
		return ErrPrototipoNoEncontrado
	}
	primera := true
	cambio := false
	for i := range p.Partidas {
		it := &p.Partidas[i]
		if !it.Seccion.EsMobiliario() {
			continue
		}
		cambio = true
		if primera {
			it.PrecioUnitario = monto
			it.Cantidad = decimal.NewFromInt(1)
			primera = false
			continue
		}
		it.PrecioUnitario = decimal.Zero
	}
	if cambio {
		e.tocar()
	}
	return nil
}

// TotalSeccion sums quantity times price over one section. It does not assume
// the lot rule has been applied.
func TotalSeccion(p Prototipo, seccion Seccion) decimal.Decimal {
	total := decimal.Zero
	for _, it := range p.Partidas {
		if it.Seccion.Igual(seccion) {
			total = total.Add(it.Subtotal())
		}
	}
	return total
}

// PrecioLote is what the UI shows as the mobiliario lot price.
func PrecioLote(p Prototipo) decimal.Decimal {
	return TotalSeccion(p, Mobiliario)
}
