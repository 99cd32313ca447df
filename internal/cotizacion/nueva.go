package cotizacion

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const SufijoDuplicado = "-COPY"

// Nueva creates a draft proposal with a single "MODELO BASE" prototype and
// the default commercial terms.
func Nueva(opts Opciones) *Cotizacion {
	e := NuevoEditor(&Cotizacion{}, opts)
	ahora := e.ahora()
	c := &Cotizacion{
		ID:           e.nuevoID(),
		Estado:       EstadoBorrador,
		Categoria:    "COCINAS",
		TipoProyecto: TipoParticular,
		Prototipos: []Prototipo{{
			ID:       e.nuevoID(),
			Nombre:   NombreModeloBase,
			Cantidad: 1,
			Partidas: []Partida{},
		}},
		Proyecto: Proyecto{
			Fecha:            ahora.Format("2006-01-02"),
			NumeroCotizacion: NumeroCotizacion(ahora),
		},
		Galeria:            []Imagen{},
		Terminos:           TerminosPorDefecto(),
		Moneda:             MonedaMXN,
		TasaIVA:            NuevaTasa(decimal.NewFromFloat(0.16)),
		Descuento:          NuevoPorcentaje(decimal.Zero),
		UltimaModificacion: ahora,
	}
	if opts.Autor != nil {
		c.CreadoPor = opts.Autor.ID
		c.EditadoPor = opts.Autor.ID
	}
	return c
}

// NumeroCotizacion builds the QT-<unix millis> folio.
func NumeroCotizacion(t time.Time) string {
	return fmt.Sprintf("QT-%d", t.UnixMilli())
}

// Duplicar copies the proposal with fresh ids, a -COPY folio suffix, draft
// status and no version history.
func (e *Editor) Duplicar() *Cotizacion {
	copia := e.c.Clonar()
	copia.ID = e.nuevoID()
	copia.Estado = EstadoBorrador
	copia.Versiones = nil
	copia.Auditoria = nil
	copia.Proyecto.NumeroCotizacion = e.c.Proyecto.NumeroCotizacion + SufijoDuplicado
	for i := range copia.Prototipos {
		copia.Prototipos[i] = e.clonarConIDs(copia.Prototipos[i])
	}
	copia.UltimaModificacion = e.ahora()
	if e.autor != nil {
		copia.CreadoPor = e.autor.ID
		copia.EditadoPor = e.autor.ID
	}
	return copia
}

// Plantilla is a reusable set of items and terms.
type Plantilla struct {
	ID       string    `json:"id"`
	Nombre   string    `json:"name"`
	Fecha    time.Time `json:"createdAt"`
	Partidas []Partida `json:"budget"`
	Terminos Terminos  `json:"terms"`
}

// CrearPlantilla takes the items of the given prototype (the first one when
// prototipoID is empty) and the current terms.
func (e *Editor) CrearPlantilla(nombre, prototipoID string) (Plantilla, error) {
	if len(e.c.Prototipos) == 0 {
		return Plantilla{}, ErrPrototipoNoEncontrado
	}
	p := &e.c.Prototipos[0]
	if prototipoID != "" {
		var ok bool
		if p, ok = e.c.Prototipo(prototipoID); !ok {
			return Plantilla{}, ErrPrototipoNoEncontrado
		}
	}
	return Plantilla{
		ID:       e.nuevoID(),
		Nombre:   strings.ToUpper(nombre),
		Fecha:    e.ahora(),
		Partidas: copiar(p.Partidas),
		Terminos: e.c.Terminos,
	}, nil
}

// AplicarPlantilla appends copies of the template items, with new ids, to
// the first prototype and replaces the terms. A proposal with no prototypes
// gets one named NombreModeloPlantilla.
func (e *Editor) AplicarPlantilla(pl Plantilla) {
	if len(e.c.Prototipos) == 0 {
		e.c.Prototipos = append(e.c.Prototipos, Prototipo{
			ID:       e.nuevoID(),
			Nombre:   NombreModeloPlantilla,
			Cantidad: 1,
			Partidas: []Partida{},
		})
	}
	p := &e.c.Prototipos[0]
	for _, it := range pl.Partidas {
		it.ID = e.nuevoID()
		p.Partidas = append(p.Partidas, it)
	}
	e.c.Terminos = pl.Terminos
	e.tocar()
	e.auditar("Aplicó plantilla " + pl.Nombre)
}
