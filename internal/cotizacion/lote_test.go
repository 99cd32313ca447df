package cotizacion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsignarPrecioLote(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{
		partida("e1", Encimeras, "Cuarzo", "2", "900"),
		partida("m1", Mobiliario, "Base", "3", "50"),
		partida("m2", Mobiliario, "Alacena", "2", "75"),
		partida("m3", Mobiliario, "Torre", "1", "20"),
	}})
	e := NuevoEditor(c, opcionesTest())

	require.NoError(t, e.AsignarPrecioLote("p1", d("500")))

	its := c.Prototipos[0].Partidas
	assertDec(t, "500", its[1].PrecioUnitario)
	assertDec(t, "1", its[1].Cantidad)
	assertDec(t, "0", its[2].PrecioUnitario)
	assertDec(t, "2", its[2].Cantidad)
	assertDec(t, "0", its[3].PrecioUnitario)
	// other sections untouched
	assertDec(t, "900", its[0].PrecioUnitario)

	assertDec(t, "500", TotalSeccion(c.Prototipos[0], Mobiliario))
	assertDec(t, "500", PrecioLote(c.Prototipos[0]))
}

func TestAsignarPrecioLote_SinMobiliario(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{
		partida("e1", Encimeras, "Cuarzo", "2", "900"),
	}})
	e := NuevoEditor(c, opcionesTest())

	require.NoError(t, e.AsignarPrecioLote("p1", d("500")))
	assertDec(t, "900", c.Prototipos[0].Partidas[0].PrecioUnitario)
	assert.True(t, c.UltimaModificacion.IsZero())

	assert.ErrorIs(t, e.AsignarPrecioLote("p2", d("1")), ErrPrototipoNoEncontrado)
}

func TestTotalSeccion_SinReglaDeLote(t *testing.T) {
	p := Prototipo{Partidas: []Partida{
		partida("m1", Mobiliario, "Base", "2", "100"),
		partida("m2", Mobiliario, "Alacena", "1", "50"),
	}}
	assertDec(t, "250", TotalSeccion(p, Mobiliario))
	assertDec(t, "0", TotalSeccion(p, Accesorios))
}
