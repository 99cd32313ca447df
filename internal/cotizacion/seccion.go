package cotizacion

import (
	"encoding/json"
	"strings"
)

// TipoSeccion identifies the budget sections the system knows about.
type TipoSeccion int

const (
	SeccionOtra TipoSeccion = iota
	SeccionMobiliario
	SeccionEncimeras
	SeccionAccesorios
)

const (
	EtiquetaMobiliario = "MOBILIARIO Y HERRAJES"
	EtiquetaEncimeras  = "ENCIMERAS"
	EtiquetaAccesorios = "ACCESORIOS"
)

// Seccion is the category of an item. The three known sections carry their
// own rules (lot price, default unit, print order). Any other label is kept
// verbatim as SeccionOtra.
type Seccion struct {
	tipo     TipoSeccion
	etiqueta string
}

var (
	Mobiliario = Seccion{tipo: SeccionMobiliario, etiqueta: EtiquetaMobiliario}
	Encimeras  = Seccion{tipo: SeccionEncimeras, etiqueta: EtiquetaEncimeras}
	Accesorios = Seccion{tipo: SeccionAccesorios, etiqueta: EtiquetaAccesorios}
)

// SeccionesConocidas in printed proposal order.
var SeccionesConocidas = []Seccion{Mobiliario, Encimeras, Accesorios}

// ParseSeccion normalizes a free label. Known sections match ignoring case and
// surrounding spaces.
func ParseSeccion(s string) Seccion {
	norm := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range SeccionesConocidas {
		if c.etiqueta == norm {
			return c
		}
	}
	return Seccion{tipo: SeccionOtra, etiqueta: s}
}

func (s Seccion) Tipo() TipoSeccion { return s.tipo }
func (s Seccion) Etiqueta() string  { return s.etiqueta }
func (s Seccion) String() string    { return s.etiqueta }

func (s Seccion) EsMobiliario() bool { return s.tipo == SeccionMobiliario }

// Igual compares two sections; custom ones compare by exact label.
func (s Seccion) Igual(o Seccion) bool {
	if s.tipo != o.tipo {
		return false
	}
	return s.tipo != SeccionOtra || s.etiqueta == o.etiqueta
}

// Titulo is the heading the section is printed with in the matrix.
func (s Seccion) Titulo() string {
	switch s.tipo {
	case SeccionMobiliario:
		return "Mobiliario y Carpintería"
	case SeccionEncimeras:
		return "Cubiertas y Superficies"
	case SeccionAccesorios:
		return "Equipamiento y Accesorios"
	default:
		return s.etiqueta
	}
}

func (s Seccion) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.etiqueta)
}

func (s *Seccion) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSeccion(raw)
	return nil
}
