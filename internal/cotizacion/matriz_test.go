package cotizacion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstruirMatriz_AgrupaConceptos(t *testing.T) {
	c := cotizacionCon(
		Prototipo{ID: "a", Nombre: "MODELO A", Cantidad: 1, Partidas: []Partida{
			partida("1", Mobiliario, "Island Panel ", "1", "0"),
			partida("2", Mobiliario, "Alacena", "1", "800"),
		}},
		Prototipo{ID: "b", Nombre: "MODELO B", Cantidad: 1, Partidas: []Partida{
			partida("3", Mobiliario, "ISLAND PANEL", "3", "0"),
			partida("4", Encimeras, "Alacena", "1", "999"),
		}},
	)

	m := ConstruirMatriz(c, Mobiliario)

	assert.Equal(t, "Mobiliario y Carpintería", m.Titulo)
	require.Len(t, m.Prototipos, 2)
	require.Len(t, m.Filas, 2)
	assert.Equal(t, "Island Panel ", m.Filas[0].Concepto)
	assert.Equal(t, "Alacena", m.Filas[1].Concepto)

	panel := m.Filas[0].Celdas
	assert.Equal(t, CeldaIncluida, panel[0].Tipo)
	assert.Equal(t, CeldaUnidades, panel[1].Tipo)
	assertDec(t, "3", panel[1].Cantidad)

	alacena := m.Filas[1].Celdas
	assert.Equal(t, CeldaImporte, alacena[0].Tipo)
	assertDec(t, "800", alacena[0].Importe)
	// B's alacena lives in another section
	assert.Equal(t, CeldaVacia, alacena[1].Tipo)
}

func TestConstruirMatriz_SeccionVacia(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "a", Cantidad: 1})
	m := ConstruirMatriz(c, Accesorios)
	assert.Empty(t, m.Filas)
	assert.Len(t, m.Prototipos, 1)
}

func TestConstruirDocumento_OrdenDeSecciones(t *testing.T) {
	c := cotizacionCon(Prototipo{ID: "a", Cantidad: 1, Partidas: []Partida{
		partida("1", ParseSeccion("Iluminación"), "LED", "1", "10"),
		partida("2", Accesorios, "Tarja", "1", "10"),
		partida("3", Mobiliario, "Base", "1", "10"),
		partida("4", ParseSeccion("iluminación"), "Riel", "1", "10"),
	}})

	doc := ConstruirDocumento(c)

	var titulos []string
	for _, m := range doc {
		titulos = append(titulos, m.Titulo)
	}
	assert.Equal(t, []string{"Mobiliario y Carpintería", "Equipamiento y Accesorios", "Iluminación", "iluminación"}, titulos)
}

func TestConstruirDocumento_NoModificaLaPropuesta(t *testing.T) {
	c := cotizacionCon(
		Prototipo{ID: "a", Nombre: "MODELO A", Cantidad: 2, Partidas: []Partida{
			partida("1", ParseSeccion("iluminación"), "Riel", "2", "10"),
			partida("2", Mobiliario, " base ", "1", "0"),
			partida("3", Accesorios, "Tarja", "1", "450.5"),
		}},
		Prototipo{ID: "b", Nombre: "MODELO B", Cantidad: 1, Partidas: []Partida{
			partida("4", Mobiliario, "BASE", "3", "0"),
			partida("5", ParseSeccion("Iluminación"), "LED", "1", "10"),
		}},
	)
	c.Prototipos[1].Partidas[1].Seleccionada = false

	antes := c.Clonar()
	antesJSON, err := json.Marshal(c)
	require.NoError(t, err)

	ConstruirMatriz(c, Mobiliario)
	ConstruirMatriz(c, ParseSeccion("iluminación"))
	ConstruirDocumento(c)

	assert.Equal(t, antes, c)
	despuesJSON, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, string(antesJSON), string(despuesJSON))
}
