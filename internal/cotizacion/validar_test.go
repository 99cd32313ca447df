package cotizacion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func camposInvalidos(t *testing.T, c *Cotizacion) map[string]string {
	t.Helper()
	var verr *ErrValidacion
	require.ErrorAs(t, c.Validar(), &verr)
	return verr.Campos
}

func TestValidar(t *testing.T) {
	t.Run("documento valido", func(t *testing.T) {
		c := cotizacionCon(
			Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{partida("i1", Mobiliario, "Base", "1", "100")}},
			Prototipo{ID: "p2", Cantidad: 3, Partidas: []Partida{partida("i2", Mobiliario, "Base", "0", "100")}},
		)
		assert.NoError(t, c.Validar())
	})

	t.Run("rangos y prototipos vacios", func(t *testing.T) {
		c := cotizacionCon()
		c.Descuento = NuevoPorcentaje(d("150"))
		c.TasaIVA = NuevaTasa(d("16"))

		campos := camposInvalidos(t, c)
		assert.Contains(t, campos, "prototypes")
		assert.Equal(t, "no puede ser mayor que 100", campos["discountValue"])
		assert.Equal(t, "no puede ser mayor que 1", campos["ivaRate"])
	})

	t.Run("id y estado", func(t *testing.T) {
		c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1})
		c.ID = ""
		c.Estado = "ARCHIVADA"

		campos := camposInvalidos(t, c)
		assert.Equal(t, "requerido", campos["id"])
		assert.Equal(t, "valor no permitido", campos["status"])
	})

	t.Run("cantidades", func(t *testing.T) {
		c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 0, Partidas: []Partida{
			partida("i1", Mobiliario, "Base", "-2", "100"),
		}})
		c.Descuento = NuevoPorcentaje(d("-1"))

		campos := camposInvalidos(t, c)
		assert.Equal(t, "debe ser al menos 1", campos["prototypes[0].quantity"])
		assert.Contains(t, campos, "prototypes[0].budget[0].quantity")
		assert.Contains(t, campos, "discountValue")
	})

	t.Run("partida sin id", func(t *testing.T) {
		c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{
			partida("i1", Mobiliario, "Base", "1", "100"),
			partida("", Mobiliario, "Puerta", "1", "50"),
		}})

		campos := camposInvalidos(t, c)
		assert.Equal(t, map[string]string{"prototypes[0].budget[1].id": "requerido"}, campos)
	})

	t.Run("prototipo sin id", func(t *testing.T) {
		c := cotizacionCon(Prototipo{Cantidad: 1})

		campos := camposInvalidos(t, c)
		assert.Equal(t, "requerido", campos["prototypes[0].id"])
	})

	t.Run("ids repetidos", func(t *testing.T) {
		c := cotizacionCon(
			Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{
				partida("i1", Mobiliario, "Base", "1", "100"),
				partida("i2", Mobiliario, "Alacena", "1", "100"),
			}},
			Prototipo{ID: "p1", Cantidad: 1, Partidas: []Partida{
				partida("i2", Mobiliario, "Alacena", "1", "100"),
			}},
		)

		campos := camposInvalidos(t, c)
		assert.Equal(t, map[string]string{
			"prototypes[1].id":           "id repetido",
			"prototypes[1].budget[0].id": "id repetido",
		}, campos)
	})

	t.Run("el historial no se valida", func(t *testing.T) {
		c := cotizacionCon(Prototipo{ID: "p1", Cantidad: 1})
		c.Versiones = []Version{{ID: "v1"}}
		assert.NoError(t, c.Validar())
	})
}
