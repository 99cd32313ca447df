package cotizacion

import (
	"strings"
)

const (
	NombreModeloBase      = "MODELO BASE"
	NombreModeloPlantilla = "MODELO PLANTILLA"
	SufijoCopia           = " (COPIA)"
)

// nombreModelo yields "MODELO A", "MODELO B", … "MODELO Z", "MODELO AA".
func nombreModelo(n int) string {
	letras := ""
	for n >= 0 {
		letras = string(rune('A'+n%26)) + letras
		n = n/26 - 1
	}
	return "MODELO " + letras
}

// AgregarPrototipo appends an empty prototype with quantity 1.
func (e *Editor) AgregarPrototipo() *Prototipo {
	e.c.Prototipos = append(e.c.Prototipos, Prototipo{
		ID:       e.nuevoID(),
		Nombre:   nombreModelo(len(e.c.Prototipos)),
		Cantidad: 1,
		Partidas: []Partida{},
	})
	e.tocar()
	return &e.c.Prototipos[len(e.c.Prototipos)-1]
}

// clonarConIDs copies a prototype giving it and each of its items a new id.
// Copies get their ids nowhere else.
func (e *Editor) clonarConIDs(p Prototipo) Prototipo {
	out := p.clonar()
	out.ID = e.nuevoID()
	for i := range out.Partidas {
		out.Partidas[i].ID = e.nuevoID()
	}
	return out
}

// DuplicarPrototipo appends a deep copy of the prototype.
func (e *Editor) DuplicarPrototipo(id string) (*Prototipo, error) {
	p, ok := e.c.Prototipo(id)
	if !ok {
		return nil, ErrPrototipoNoEncontrado
	}
	copia := e.clonarConIDs(*p)
	copia.Nombre = p.Nombre + SufijoCopia
	if copia.Partidas == nil {
		copia.Partidas = []Partida{}
	}
	e.c.Prototipos = append(e.c.Prototipos, copia)
	e.tocar()
	return &e.c.Prototipos[len(e.c.Prototipos)-1], nil
}

// EliminarPrototipo refuses to remove the last prototype.
func (e *Editor) EliminarPrototipo(id string) error {
	idx := -1
	for i := range e.c.Prototipos {
		if e.c.Prototipos[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPrototipoNoEncontrado
	}
	if len(e.c.Prototipos) <= 1 {
		return ErrUltimoPrototipo
	}
	e.c.Prototipos = append(e.c.Prototipos[:idx], e.c.Prototipos[idx+1:]...)
	e.tocar()
	return nil
}

func (e *Editor) RenombrarPrototipo(id, nombre string) error {
	p, ok := e.c.Prototipo(id)
	if !ok {
		return ErrPrototipoNoEncontrado
	}
	p.Nombre = strings.ToUpper(nombre)
	e.tocar()
	return nil
}

// CambiarCantidadPrototipo sets how many times the prototype repeats.
func (e *Editor) CambiarCantidadPrototipo(id string, cantidad int) error {
	if cantidad < 1 {
		return ErrCantidadInvalida
	}
	p, ok := e.c.Prototipo(id)
	if !ok {
		return ErrPrototipoNoEncontrado
	}
	p.Cantidad = cantidad
	e.tocar()
	return nil
}
