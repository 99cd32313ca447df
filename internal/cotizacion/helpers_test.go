package cotizacion

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func secuencia() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var fechaFija = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func opcionesTest() Opciones {
	return Opciones{NuevoID: secuencia(), Ahora: func() time.Time { return fechaFija }}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got.String())
}

func partida(id string, s Seccion, concepto, cant, precio string) Partida {
	return Partida{
		ID:             id,
		Seleccionada:   true,
		Seccion:        s,
		Concepto:       concepto,
		Unidad:         UnidadPieza,
		Cantidad:       d(cant),
		PrecioUnitario: d(precio),
	}
}

func cotizacionCon(protos ...Prototipo) *Cotizacion {
	return &Cotizacion{
		ID:         "cot-1",
		Estado:     EstadoBorrador,
		Prototipos: protos,
		Terminos:   TerminosPorDefecto(),
		Moneda:     MonedaMXN,
		TasaIVA:    NuevaTasa(d("0.16")),
		Descuento:  NuevoPorcentaje(decimal.Zero),
	}
}
