package cotizacion

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgregarPartida_UnidadSegunSeccion(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1})
	e := NuevoEditor(c, opcionesTest())

	mob, err := e.AgregarPartida("p1", Mobiliario)
	require.NoError(t, err)
	assert.Equal(t, UnidadLote, mob.Unidad)
	assert.Equal(t, CodigoManual, mob.Codigo)
	assert.True(t, mob.Seleccionada)
	assert.True(t, mob.PrecioUnitario.IsZero())
	assertDec(t, "1", mob.Cantidad)
	assert.Empty(t, mob.Concepto)

	acc, err := e.AgregarPartida("p1", Accesorios)
	require.NoError(t, err)
	assert.Equal(t, UnidadPieza, acc.Unidad)

	otra, err := e.AgregarPartida("p1", ParseSeccion("Iluminación"))
	require.NoError(t, err)
	assert.Equal(t, "Iluminación", otra.Seccion.Etiqueta())

	assert.Len(t, c.Prototipos[0].Partidas, 3)
	assert.Equal(t, fechaFija, c.UltimaModificacion)
}

func TestAgregarPartida_PrototipoInexistente(t *testing.T) {
	e := NuevoEditor(cotizacionCon(Prototipo{ID: "p1", Cantidad: 1}), opcionesTest())
	_, err := e.AgregarPartida("nope", Encimeras)
	assert.ErrorIs(t, err, ErrPrototipoNoEncontrado)
}

func TestAgregarDesdeCatalogo(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1})
	e := NuevoEditor(c, opcionesTest())

	it, err := e.AgregarDesdeCatalogo("p1", Accesorios, CatalogoItem{
		Codigo: "TAR-01", Descripcion: "TARJA DOBLE", Precio: d("4500"),
	})
	require.NoError(t, err)
	assert.Equal(t, "TAR-01", it.Codigo)
	assert.Equal(t, "TARJA DOBLE", it.Concepto)
	assert.Equal(t, UnidadPieza, it.Unidad)
	assertDec(t, "4500", it.PrecioUnitario)
}

func TestActualizarPartida_ReemplazoPuro(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{
		partida("i1", Mobiliario, "Base", "1", "500"),
		partida("i2", Mobiliario, "Alacena", "1", "0"),
	}})
	e := NuevoEditor(c, opcionesTest())

	precio := d("300")
	concepto := "Alacena alta"
	it, err := e.ActualizarPartida("i2", CambioPartida{PrecioUnitario: &precio, Concepto: &concepto})
	require.NoError(t, err)
	assertDec(t, "300", it.PrecioUnitario)
	assert.Equal(t, "Alacena alta", it.Concepto)
	// lot rule does not fire
	assertDec(t, "500", c.Prototipos[0].Partidas[0].PrecioUnitario)
}

func TestActualizarPartida_Errores(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{
		partida("i1", Encimeras, "Cuarzo", "1", "10"),
	}})
	e := NuevoEditor(c, opcionesTest())

	_, err := e.ActualizarPartida("x", CambioPartida{})
	assert.ErrorIs(t, err, ErrPartidaNoEncontrada)

	neg := decimal.NewFromInt(-1)
	_, err = e.ActualizarPartida("i1", CambioPartida{Cantidad: &neg})
	assert.ErrorIs(t, err, ErrCantidadInvalida)
	assertDec(t, "1", c.Prototipos[0].Partidas[0].Cantidad)
}

func TestEliminarPartida(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{
		partida("i1", Encimeras, "A", "1", "1"),
		partida("i2", Encimeras, "B", "1", "1"),
	}})
	e := NuevoEditor(c, opcionesTest())

	assert.True(t, e.EliminarPartida("i1"))
	assert.False(t, e.EliminarPartida("i1"))
	require.Len(t, c.Prototipos[0].Partidas, 1)
	assert.Equal(t, "i2", c.Prototipos[0].Partidas[0].ID)
}

func TestReordenar_ConservaPosicionesDeOtrasSecciones(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{
		partida("m1", Mobiliario, "M1", "1", "1"),
		partida("e1", Encimeras, "E1", "1", "1"),
		partida("m2", Mobiliario, "M2", "1", "1"),
		partida("a1", Accesorios, "A1", "1", "1"),
		partida("m3", Mobiliario, "M3", "1", "1"),
	}})
	e := NuevoEditor(c, opcionesTest())

	require.NoError(t, e.Reordenar("p1", Mobiliario, 2, 0))

	var ids []string
	for _, it := range c.Prototipos[0].Partidas {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"m3", "e1", "m1", "a1", "m2"}, ids)
}

func TestReordenar_FueraDeRango(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{
		partida("m1", Mobiliario, "M1", "1", "1"),
	}})
	e := NuevoEditor(c, opcionesTest())

	assert.ErrorIs(t, e.Reordenar("p1", Mobiliario, 0, 1), ErrIndiceFueraDeRango)
	assert.ErrorIs(t, e.Reordenar("p1", Encimeras, 0, 0), ErrIndiceFueraDeRango)
	assert.ErrorIs(t, e.Reordenar("p9", Mobiliario, 0, 0), ErrPrototipoNoEncontrado)
}

func TestCambiarEstado_Auditoria(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1})
	opts := opcionesTest()
	opts.Autor = &Autor{ID: "u1", Nombre: "Ana"}
	e := NuevoEditor(c, opts)

	require.NoError(t, e.CambiarEstado(EstadoEnviada))
	assert.Equal(t, EstadoEnviada, c.Estado)
	require.Len(t, c.Auditoria, 1)
	assert.Equal(t, "u1", c.Auditoria[0].UsuarioID)
	assert.Contains(t, c.Auditoria[0].Accion, "ENVIADA")
	assert.Equal(t, "u1", c.EditadoPor)

	assert.ErrorIs(t, e.CambiarEstado("ARCHIVADA"), ErrEstadoInvalido)
}

func TestAgregarNota(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1})
	opts := opcionesTest()
	opts.Autor = &Autor{ID: "u2", Nombre: "Luis"}
	e := NuevoEditor(c, opts)

	n := e.AgregarNota("Cliente pide cambiar jaladeras")
	assert.Equal(t, "Luis", n.AutorNombre)
	assert.Len(t, c.Notas, 1)
}
