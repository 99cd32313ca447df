package cotizacion

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPrototipoNoEncontrado = errors.New("prototipo no encontrado")
	ErrPartidaNoEncontrada   = errors.New("partida no encontrada")
	ErrUltimoPrototipo       = errors.New("debe existir al menos un modelo o área en la propuesta")
	ErrIndiceFueraDeRango    = errors.New("índice fuera de rango")
	ErrCantidadInvalida      = errors.New("la cantidad debe ser mayor o igual a cero")
	ErrEstadoInvalido        = errors.New("estado de cotización inválido")
)

// Autor identifies the editing user in notes and audit entries.
type Autor struct {
	ID     string
	Nombre string
}

// Opciones configures an edit session. Nil fields default to uuid.NewString
// and time.Now.
type Opciones struct {
	NuevoID func() string
	Ahora   func() time.Time
	Autor   *Autor
}

// Editor applies edit operations to a proposal. It is not safe for concurrent
// use; each request builds its own.
type Editor struct {
	c       *Cotizacion
	nuevoID func() string
	ahora   func() time.Time
	autor   *Autor
}

func NuevoEditor(c *Cotizacion, opts Opciones) *Editor {
	e := &Editor{c: c, nuevoID: opts.NuevoID, ahora: opts.Ahora, autor: opts.Autor}
	if e.nuevoID == nil {
		e.nuevoID = uuid.NewString
	}
	if e.ahora == nil {
		e.ahora = time.Now
	}
	return e
}

func (e *Editor) Cotizacion() *Cotizacion { return e.c }

func (e *Editor) tocar() {
	e.c.UltimaModificacion = e.ahora()
	if e.autor != nil {
		e.c.EditadoPor = e.autor.ID
	}
}

func (e *Editor) auditar(accion string) {
	if e.autor == nil {
		return
	}
	e.c.Auditoria = append(e.c.Auditoria, EntradaAuditoria{
		ID:            e.nuevoID(),
		Fecha:         e.ahora(),
		UsuarioID:     e.autor.ID,
		UsuarioNombre: e.autor.Nombre,
		Accion:        accion,
	})
}

// ── Items ────────────────────────────────────────────────────────────────────

// AgregarPartida appends an empty zero-priced item to the section. Mobiliario
// items default to the LOTE unit.
func (e *Editor) AgregarPartida(prototipoID string, seccion Seccion) (*Partida, error) {
	unidad := UnidadPieza
	if seccion.EsMobiliario() {
		unidad = UnidadLote
	}
	return e.agregar(prototipoID, Partida{
		ID:             e.nuevoID(),
		Codigo:         CodigoManual,
		Seleccionada:   true,
		Seccion:        seccion,
		Unidad:         unidad,
		Cantidad:       decimal.NewFromInt(1),
		PrecioUnitario: decimal.Zero,
	})
}

// AgregarDesdeCatalogo appends an item prefilled from the catalog article.
func (e *Editor) AgregarDesdeCatalogo(prototipoID string, seccion Seccion, item CatalogoItem) (*Partida, error) {
	return e.agregar(prototipoID, item.Partida(e.nuevoID(), seccion))
}

func (e *Editor) agregar(prototipoID string, it Partida) (*Partida, error) {
	p, ok := e.c.Prototipo(prototipoID)
	if !ok {
		return nil, ErrPrototipoNoEncontrado
	}
	p.Partidas = append(p.Partidas, it)
	e.tocar()
	return &p.Partidas[len(p.Partidas)-1], nil
}

// CambioPartida lists the fields to replace; nil fields are left alone.
type CambioPartida struct {
	Codigo         *string
	Seleccionada   *bool
	Seccion        *Seccion
	Concepto       *string
	Descripcion    *string
	Unidad         *string
	Cantidad       *decimal.Decimal
	PrecioUnitario *decimal.Decimal
	Imagen         *string
}

// ActualizarPartida replaces fields without applying lot pricing rules.
func (e *Editor) ActualizarPartida(id string, cambio CambioPartida) (*Partida, error) {
	it, ok := e.c.Partida(id)
	if !ok {
		return nil, ErrPartidaNoEncontrada
	}
	if cambio.Cantidad != nil && cambio.Cantidad.IsNegative() {
		return nil, ErrCantidadInvalida
	}
	if cambio.Codigo != nil {
		it.Codigo = *cambio.Codigo
	}
	if cambio.Seleccionada != nil {
		it.Seleccionada = *cambio.Seleccionada
	}
	if cambio.Seccion != nil {
		it.Seccion = *cambio.Seccion
	}
	if cambio.Concepto != nil {
		it.Concepto = *cambio.Concepto
	}
	if cambio.Descripcion != nil {
		it.Descripcion = *cambio.Descripcion
	}
	if cambio.Unidad != nil {
		it.Unidad = *cambio.Unidad
	}
	if cambio.Cantidad != nil {
		it.Cantidad = *cambio.Cantidad
	}
	if cambio.PrecioUnitario != nil {
		it.PrecioUnitario = *cambio.PrecioUnitario
	}
	if cambio.Imagen != nil {
		it.Imagen = *cambio.Imagen
	}
	e.tocar()
	return it, nil
}

// EliminarPartida removes the item from whichever prototype holds it.
func (e *Editor) EliminarPartida(id string) bool {
	for i := range e.c.Prototipos {
		p := &e.c.Prototipos[i]
		for j := range p.Partidas {
			if p.Partidas[j].ID == id {
				p.Partidas = append(p.Partidas[:j], p.Partidas[j+1:]...)
				e.tocar()
				return true
			}
		}
	}
	return false
}

// Reordenar moves the item at position desde to position hasta, both relative
// to the section. Items of other sections keep their slots in the prototype.
func (e *Editor) Reordenar(prototipoID string, seccion Seccion, desde, hasta int) error {
	p, ok := e.c.Prototipo(prototipoID)
	if !ok {
		return ErrPrototipoNoEncontrado
	}

	var slots []int
	for i, it := range p.Partidas {
		if it.Seccion.Igual(seccion) {
			slots = append(slots, i)
		}
	}
	if desde < 0 || desde >= len(slots) || hasta < 0 || hasta >= len(slots) {
		return ErrIndiceFueraDeRango
	}
	if desde == hasta {
		return nil
	}

	orden := make([]Partida, len(slots))
	for i, s := range slots {
		orden[i] = p.Partidas[s]
	}
	movida := orden[desde]
	orden = append(orden[:desde], orden[desde+1:]...)
	orden = append(orden[:hasta], append([]Partida{movida}, orden[hasta:]...)...)

	for i, s := range slots {
		p.Partidas[s] = orden[i]
	}
	e.tocar()
	return nil
}

// ── Proposal ─────────────────────────────────────────────────────────────────

func (e *Editor) CambiarEstado(estado Estado) error {
	if !estado.Valido() {
		return ErrEstadoInvalido
	}
	if e.c.Estado == estado {
		return nil
	}
	e.c.Estado = estado
	e.tocar()
	e.auditar("Cambió estado a " + string(estado))
	return nil
}

func (e *Editor) AgregarNota(texto string) Nota {
	n := Nota{ID: e.nuevoID(), Texto: texto, Fecha: e.ahora()}
	if e.autor != nil {
		n.AutorID = e.autor.ID
		n.AutorNombre = e.autor.Nombre
	}
	e.c.Notas = append(e.c.Notas, n)
	e.tocar()
	return n
}

func (e *Editor) CambiarNumeroPagos(n int) error {
	if err := e.c.Terminos.CambiarNumeroPagos(n); err != nil {
		return err
	}
	e.tocar()
	return nil
}
