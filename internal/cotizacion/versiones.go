package cotizacion

import (
	"bytes"
	"encoding/json"
)

const NotaGuardadoManual = "Guardado manual"

// CrearVersion captures the current state as a new version at the end of the
// history. The total is computed once and frozen.
func (e *Editor) CrearVersion(nota string) Version {
	if nota == "" {
		nota = NotaGuardadoManual
	}
	e.tocar()
	e.auditar("Guardó versión: " + nota)

	datos := e.c.sinVersiones()
	v := Version{
		ID:    e.nuevoID(),
		Fecha: e.ahora(),
		Datos: datos,
		Nota:  nota,
		Total: CalcularTotales(&datos).Total,
	}
	e.c.Versiones = append(e.c.Versiones, v)
	return v
}

// UltimaVersion returns the most recent version, if any.
func (c *Cotizacion) UltimaVersion() (*Version, bool) {
	if len(c.Versiones) == 0 {
		return nil, false
	}
	return &c.Versiones[len(c.Versiones)-1], true
}

// TieneCambiosSinGuardar compares the live state with the latest version.
func (c *Cotizacion) TieneCambiosSinGuardar() bool {
	ultima, ok := c.UltimaVersion()
	if !ok {
		return true
	}
	vivo := c.sinVersiones()
	return !mismoContenido(&vivo, &ultima.Datos)
}

func mismoContenido(a, b *Cotizacion) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

// Reversion is a restore awaiting confirmation. When DescartaCambios is true
// the caller must ask for confirmation before Aplicar.
type Reversion struct {
	DescartaCambios bool
	Version         Version

	e *Editor
}

// PrepararReversion finds the version; false when it does not exist.
func (e *Editor) PrepararReversion(versionID string) (*Reversion, bool) {
	for _, v := range e.c.Versiones {
		if v.ID == versionID {
			return &Reversion{
				DescartaCambios: e.c.TieneCambiosSinGuardar(),
				Version:         v,
				e:               e,
			}, true
		}
	}
	return nil, false
}

// Aplicar replaces the whole live state with the version's, except for the
// version history which is kept intact. No new version is created.
func (r *Reversion) Aplicar() {
	c := r.e.c
	versiones := c.Versiones
	restaurada := r.Version.Datos.Clonar()
	restaurada.Versiones = versiones
	*c = *restaurada
	r.e.auditar("Restauró versión: " + r.Version.Nota)
}

// EliminarVersion removes a version from the history.
func (e *Editor) EliminarVersion(versionID string) bool {
	for i, v := range e.c.Versiones {
		if v.ID == versionID {
			e.c.Versiones = append(e.c.Versiones[:i], e.c.Versiones[i+1:]...)
			e.auditar("Eliminó versión: " + v.Nota)
			return true
		}
	}
	return false
}
