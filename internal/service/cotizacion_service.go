package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"crkitchen/internal/cotizacion"
	"crkitchen/internal/dto"
	"crkitchen/internal/infra"
	"crkitchen/internal/model"
	"crkitchen/internal/repository"
	"crkitchen/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type CotizacionService interface {
	Listar(ctx context.Context, filtro dto.CotizacionFilter) ([]dto.CotizacionResumen, error)
	Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error)
	Obtener(ctx context.Context, id string) (*cotizacion.Cotizacion, error)
	Crear(ctx context.Context, autor cotizacion.Autor, req dto.CrearCotizacionRequest) (*cotizacion.Cotizacion, error)
	Reemplazar(ctx context.Context, autor cotizacion.Autor, id string, c *cotizacion.Cotizacion) (*cotizacion.Cotizacion, error)
	Eliminar(ctx context.Context, id string) error
	Duplicar(ctx context.Context, autor cotizacion.Autor, id string) (*cotizacion.Cotizacion, error)
	CambiarEstado(ctx context.Context, autor cotizacion.Autor, id string, estado cotizacion.Estado) (*cotizacion.Cotizacion, error)

	Totales(ctx context.Context, id string) (*dto.TotalesResponse, error)
	Matriz(ctx context.Context, id, seccion string) ([]cotizacion.Matriz, error)

	AgregarPrototipo(ctx context.Context, autor cotizacion.Autor, id string) (*cotizacion.Prototipo, error)
	DuplicarPrototipo(ctx context.Context, autor cotizacion.Autor, id, prototipoID string) (*cotizacion.Prototipo, error)
	ActualizarPrototipo(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, req dto.ActualizarPrototipoRequest) (*cotizacion.Prototipo, error)
	EliminarPrototipo(ctx context.Context, autor cotizacion.Autor, id, prototipoID string) error

	AgregarPartida(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, req dto.AgregarPartidaRequest) (*cotizacion.Partida, error)
	AgregarDesdeCatalogo(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, req dto.AgregarCatalogoRequest) (*cotizacion.Partida, error)
	ActualizarPartida(ctx context.Context, autor cotizacion.Autor, id, partidaID string, req dto.ActualizarPartidaRequest) (*cotizacion.Partida, error)
	EliminarPartida(ctx context.Context, autor cotizacion.Autor, id, partidaID string) error
	Reordenar(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, req dto.ReordenarRequest) (*cotizacion.Prototipo, error)
	AsignarPrecioLote(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, monto decimal.Decimal) (*cotizacion.Prototipo, error)

	Guardar(ctx context.Context, autor cotizacion.Autor, id, nota string) (*dto.GuardarResponse, error)
	Revertir(ctx context.Context, autor cotizacion.Autor, id, versionID string, confirmar bool) (*cotizacion.Cotizacion, error)
	EliminarVersion(ctx context.Context, autor cotizacion.Autor, id, versionID string) error

	AgregarNota(ctx context.Context, autor cotizacion.Autor, id, texto string) (*cotizacion.Nota, error)
	CambiarNumeroPagos(ctx context.Context, autor cotizacion.Autor, id string, pagos int) (*cotizacion.Terminos, error)
	CrearPlantilla(ctx context.Context, autor cotizacion.Autor, id string, req dto.CrearPlantillaRequest) (*cotizacion.Plantilla, error)
	AplicarPlantilla(ctx context.Context, autor cotizacion.Autor, id, plantillaID string) (*cotizacion.Cotizacion, error)

	SolicitarPDF(ctx context.Context, id string, req dto.PDFRequest) (*dto.PDFResponse, error)
	RenderizarPDF(ctx context.Context, id string, w io.Writer) error
}

type cotizacionService struct {
	docs       almacen
	dispatcher EncoladorPDF
	opts       cotizacion.Opciones
}

// NewCotizacionService takes base options (id generator, clock) that are
// copied into every edit together with the request author.
func NewCotizacionService(
	repo repository.DocumentoRepository,
	notif Notificador,
	dispatcher EncoladorPDF,
	contador Contador,
	opts cotizacion.Opciones,
) CotizacionService {
	return &cotizacionService{
		docs:       nuevoAlmacen(repo, notif, contador),
		dispatcher: dispatcher,
		opts:       opts,
	}
}

func (s *cotizacionService) opciones(autor cotizacion.Autor) cotizacion.Opciones {
	o := s.opts
	if autor.ID != "" {
		o.Autor = &autor
	}
	return o
}

func (s *cotizacionService) cargar(ctx context.Context, id string) (*cotizacion.Cotizacion, error) {
	var c cotizacion.Cotizacion
	if err := s.docs.cargar(ctx, model.RecursoCotizaciones, id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *cotizacionService) persistir(ctx context.Context, c *cotizacion.Cotizacion) error {
	if err := c.Validar(); err != nil {
		return err
	}
	_, err := s.docs.guardar(ctx, model.RecursoCotizaciones, c)
	return err
}

// editar loads the proposal, applies fn through a fresh Editor, validates and
// saves. Nothing is persisted when fn fails.
func (s *cotizacionService) editar(ctx context.Context, autor cotizacion.Autor, id string, fn func(e *cotizacion.Editor) error) (*cotizacion.Cotizacion, error) {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	e := cotizacion.NuevoEditor(c, s.opciones(autor))
	if err := fn(e); err != nil {
		return nil, err
	}
	if err := s.persistir(ctx, e.Cotizacion()); err != nil {
		return nil, err
	}
	return e.Cotizacion(), nil
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *cotizacionService) todas(ctx context.Context) ([]cotizacion.Cotizacion, error) {
	docs, err := s.docs.repo.Listar(ctx, model.RecursoCotizaciones)
	if err != nil {
		return nil, err
	}
	out := make([]cotizacion.Cotizacion, 0, len(docs))
	for _, d := range docs {
		var c cotizacion.Cotizacion
		if err := json.Unmarshal(d.Data, &c); err != nil {
			log.Warn().Err(err).Str("id", d.ID).Msg("cotización con documento dañado, omitida")
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *cotizacionService) Listar(ctx context.Context, filtro dto.CotizacionFilter) ([]dto.CotizacionResumen, error) {
	list, err := s.todas(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CotizacionResumen, 0, len(list))
	for i := range list {
		c := &list[i]
		if !coincideFiltro(c, filtro) {
			continue
		}
		resp = append(resp, resumen(c))
	}
	sort.SliceStable(resp, func(i, j int) bool {
		return resp[i].UltimaModificacion.After(resp[j].UltimaModificacion)
	})
	return resp, nil
}

func coincideFiltro(c *cotizacion.Cotizacion, f dto.CotizacionFilter) bool {
	if len(f.Estados) > 0 && !contiene(f.Estados, string(c.Estado)) {
		return false
	}
	if len(f.Categorias) > 0 && !contiene(f.Categorias, c.Categoria) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Q))
	if q == "" {
		return true
	}
	for _, campo := range []string{c.Cliente.Nombre, c.Proyecto.Nombre, c.Proyecto.NumeroCotizacion} {
		if strings.Contains(strings.ToLower(campo), q) {
			return true
		}
	}
	return false
}

func contiene(lista []string, v string) bool {
	for _, x := range lista {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}

func resumen(c *cotizacion.Cotizacion) dto.CotizacionResumen {
	return dto.CotizacionResumen{
		ID:                 c.ID,
		Estado:             c.Estado,
		Categoria:          c.Categoria,
		NumeroCotizacion:   c.Proyecto.NumeroCotizacion,
		Cliente:            c.Cliente.Nombre,
		Proyecto:           c.Proyecto.Nombre,
		Moneda:             c.Moneda,
		Total:              cotizacion.CalcularTotales(c).Total,
		Prototipos:         len(c.Prototipos),
		Versiones:          len(c.Versiones),
		UltimaModificacion: c.UltimaModificacion,
	}
}

// Estadisticas uses the grand total of every accepted proposal, with discount
// and IVA applied.
func (s *cotizacionService) Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error) {
	list, err := s.todas(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.EstadisticasResponse{
		TotalCotizaciones: len(list),
		PorEstado:         map[cotizacion.Estado]int{},
		ValorAceptado:     decimal.Zero,
		TasaConversion:    decimal.Zero,
	}
	aceptadas := 0
	for i := range list {
		c := &list[i]
		resp.PorEstado[c.Estado]++
		if c.Estado == cotizacion.EstadoAceptada {
			aceptadas++
			resp.ValorAceptado = resp.ValorAceptado.Add(cotizacion.CalcularTotales(c).Total)
		}
	}
	if len(list) > 0 {
		resp.TasaConversion = decimal.NewFromInt(int64(aceptadas)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(len(list)))).
			Round(1)
	}
	return resp, nil
}

func (s *cotizacionService) Obtener(ctx context.Context, id string) (*cotizacion.Cotizacion, error) {
	return s.cargar(ctx, id)
}

func (s *cotizacionService) Totales(ctx context.Context, id string) (*dto.TotalesResponse, error) {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	t := cotizacion.CalcularTotales(c)
	return &dto.TotalesResponse{
		Totales:   t,
		Moneda:    c.Moneda,
		PlanPagos: cotizacion.PlanPagos(t.Total, c.Terminos),
	}, nil
}

// Matriz returns the matrix of one section, or every matrix of the document
// when seccion is empty.
func (s *cotizacionService) Matriz(ctx context.Context, id, seccion string) ([]cotizacion.Matriz, error) {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(seccion) == "" {
		return cotizacion.ConstruirDocumento(c), nil
	}
	return []cotizacion.Matriz{cotizacion.ConstruirMatriz(c, cotizacion.ParseSeccion(seccion))}, nil
}

// ── Proposal ─────────────────────────────────────────────────────────────────

func (s *cotizacionService) Crear(ctx context.Context, autor cotizacion.Autor, req dto.CrearCotizacionRequest) (*cotizacion.Cotizacion, error) {
	c := cotizacion.Nueva(s.opciones(autor))
	if req.Categoria != "" {
		c.Categoria = strings.ToUpper(req.Categoria)
	}
	if req.TipoProyecto != "" {
		c.TipoProyecto = cotizacion.TipoProyecto(req.TipoProyecto)
	}
	c.Proyecto.Nombre = req.NombreProyecto
	if req.Cliente != nil {
		c.Cliente = *req.Cliente
	}
	if err := s.persistir(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Reemplazar stores the full document sent by the client. The route id wins
// over the body's, and the version history is never taken from the body: the
// persisted one is kept.
func (s *cotizacionService) Reemplazar(ctx context.Context, autor cotizacion.Autor, id string, c *cotizacion.Cotizacion) (*cotizacion.Cotizacion, error) {
	guardada, err := s.cargar(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNoEncontrado):
		c.Versiones = nil
	case err != nil:
		return nil, err
	default:
		c.Versiones = guardada.Versiones
	}

	c.ID = id
	ahora := time.Now
	if s.opts.Ahora != nil {
		ahora = s.opts.Ahora
	}
	c.UltimaModificacion = ahora()
	if autor.ID != "" {
		c.EditadoPor = autor.ID
	}
	if err := s.persistir(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *cotizacionService) Eliminar(ctx context.Context, id string) error {
	return s.docs.eliminar(ctx, model.RecursoCotizaciones, id)
}

func (s *cotizacionService) Duplicar(ctx context.Context, autor cotizacion.Autor, id string) (*cotizacion.Cotizacion, error) {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	copia := cotizacion.NuevoEditor(c, s.opciones(autor)).Duplicar()
	if err := s.persistir(ctx, copia); err != nil {
		return nil, err
	}
	return copia, nil
}

func (s *cotizacionService) CambiarEstado(ctx context.Context, autor cotizacion.Autor, id string, estado cotizacion.Estado) (*cotizacion.Cotizacion, error) {
	return s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		return e.CambiarEstado(estado)
	})
}

// ── Prototypes ───────────────────────────────────────────────────────────────

func (s *cotizacionService) AgregarPrototipo(ctx context.Context, autor cotizacion.Autor, id string) (*cotizacion.Prototipo, error) {
	var nuevo cotizacion.Prototipo
	_, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		nuevo = *e.AgregarPrototipo()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &nuevo, nil
}

func (s *cotizacionService) DuplicarPrototipo(ctx context.Context, autor cotizacion.Autor, id, prototipoID string) (*cotizacion.Prototipo, error) {
	var copia cotizacion.Prototipo
	_, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		p, err := e.DuplicarPrototipo(prototipoID)
		if err != nil {
			return err
		}
		copia = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &copia, nil
}

func (s *cotizacionService) ActualizarPrototipo(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, req dto.ActualizarPrototipoRequest) (*cotizacion.Prototipo, error) {
	var out cotizacion.Prototipo
	_, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		if req.Nombre != nil {
			if err := e.RenombrarPrototipo(prototipoID, *req.Nombre); err != nil {
				return err
			}
		}
		if req.Cantidad != nil {
			if err := e.CambiarCantidadPrototipo(prototipoID, *req.Cantidad); err != nil {
				return err
			}
		}
		p, ok := e.Cotizacion().Prototipo(prototipoID)
		if !ok {
			return cotizacion.ErrPrototipoNoEncontrado
		}
		out = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *cotizacionService) EliminarPrototipo(ctx context.Context, autor cotizacion.Autor, id, prototipoID string) error {
	_, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		return e.EliminarPrototipo(prototipoID)
	})
	return err
}

// ── Items ────────────────────────────────────────────────────────────────────

func (s *cotizacionService) AgregarPartida(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, req dto.AgregarPartidaRequest) (*cotizacion.Partida, error) {
	var out cotizacion.Partida
	_, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		it, err := e.AgregarPartida(prototipoID, cotizacion.ParseSeccion(req.Seccion))
		if err != nil {
			return err
		}
		out = *it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *cotizacionService) AgregarDesdeCatalogo(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, req dto.AgregarCatalogoRequest) (*cotizacion.Partida, error) {
	var item cotizacion.CatalogoItem
	err := s.docs.cargar(ctx, model.RecursoInventario, req.Codigo, &item)
	if errors.Is(err, repository.ErrNoEncontrado) {
		return nil, ErrArticuloNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	seccion := item.Categoria
	if strings.TrimSpace(req.Seccion) != "" {
		seccion = cotizacion.ParseSeccion(req.Seccion)
	}

	var out cotizacion.Partida
	_, err = s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		it, err := e.AgregarDesdeCatalogo(prototipoID, seccion, item)
		if err != nil {
			return err
		}
		out = *it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *cotizacionService) ActualizarPartida(ctx context.Context, autor cotizacion.Autor, id, partidaID string, req dto.ActualizarPartidaRequest) (*cotizacion.Partida, error) {
	cambio := cotizacion.CambioPartida{
		Codigo:         req.Codigo,
		Seleccionada:   req.Seleccionada,
		Concepto:       req.Concepto,
		Descripcion:    req.Descripcion,
		Unidad:         req.Unidad,
		Cantidad:       req.Cantidad,
		PrecioUnitario: req.PrecioUnitario,
		Imagen:         req.Imagen,
	}
	if req.Seccion != nil {
		sec := cotizacion.ParseSeccion(*req.Seccion)
		cambio.Seccion = &sec
	}

	var out cotizacion.Partida
	_, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		it, err := e.ActualizarPartida(partidaID, cambio)
		if err != nil {
			return err
		}
		out = *it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *cotizacionService) EliminarPartida(ctx context.Context, autor cotizacion.Autor, id, partidaID string) error {
	_, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		if !e.EliminarPartida(partidaID) {
			return cotizacion.ErrPartidaNoEncontrada
		}
		return nil
	})
	return err
}

func (s *cotizacionService) Reordenar(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, req dto.ReordenarRequest) (*cotizacion.Prototipo, error) {
	return s.editarPrototipo(ctx, autor, id, prototipoID, func(e *cotizacion.Editor) error {
		return e.Reordenar(prototipoID, cotizacion.ParseSeccion(req.Seccion), *req.Desde, *req.Hasta)
	})
}

func (s *cotizacionService) AsignarPrecioLote(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, monto decimal.Decimal) (*cotizacion.Prototipo, error) {
	return s.editarPrototipo(ctx, autor, id, prototipoID, func(e *cotizacion.Editor) error {
		return e.AsignarPrecioLote(prototipoID, monto)
	})
}

func (s *cotizacionService) editarPrototipo(ctx context.Context, autor cotizacion.Autor, id, prototipoID string, fn func(e *cotizacion.Editor) error) (*cotizacion.Prototipo, error) {
	c, err := s.editar(ctx, autor, id, fn)
	if err != nil {
		return nil, err
	}
	p, ok := c.Prototipo(prototipoID)
	if !ok {
		return nil, cotizacion.ErrPrototipoNoEncontrado
	}
	return p, nil
}

// ── Versions ─────────────────────────────────────────────────────────────────

func (s *cotizacionService) Guardar(ctx context.Context, autor cotizacion.Autor, id, nota string) (*dto.GuardarResponse, error) {
	var v cotizacion.Version
	c, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		v = e.CrearVersion(nota)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("cotizacion_id", id).Str("version_id", v.ID).Msg("versión guardada")
	return &dto.GuardarResponse{Version: v, Cotizacion: c}, nil
}

// Revertir requires confirmation when the live state differs from the last
// saved version; without it nothing changes.
func (s *cotizacionService) Revertir(ctx context.Context, autor cotizacion.Autor, id, versionID string, confirmar bool) (*cotizacion.Cotizacion, error) {
	return s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		r, ok := e.PrepararReversion(versionID)
		if !ok {
			return ErrVersionNoEncontrada
		}
		if r.DescartaCambios && !confirmar {
			return ErrConfirmacionRequerida
		}
		r.Aplicar()
		return nil
	})
}

func (s *cotizacionService) EliminarVersion(ctx context.Context, autor cotizacion.Autor, id, versionID string) error {
	_, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		if !e.EliminarVersion(versionID) {
			return ErrVersionNoEncontrada
		}
		return nil
	})
	return err
}

// ── Notes, terms and templates ───────────────────────────────────────────────

func (s *cotizacionService) AgregarNota(ctx context.Context, autor cotizacion.Autor, id, texto string) (*cotizacion.Nota, error) {
	var n cotizacion.Nota
	_, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		n = e.AgregarNota(texto)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *cotizacionService) CambiarNumeroPagos(ctx context.Context, autor cotizacion.Autor, id string, pagos int) (*cotizacion.Terminos, error) {
	c, err := s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		return e.CambiarNumeroPagos(pagos)
	})
	if err != nil {
		return nil, err
	}
	return &c.Terminos, nil
}

func (s *cotizacionService) CrearPlantilla(ctx context.Context, autor cotizacion.Autor, id string, req dto.CrearPlantillaRequest) (*cotizacion.Plantilla, error) {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	pl, err := cotizacion.NuevoEditor(c, s.opciones(autor)).CrearPlantilla(req.Nombre, req.PrototipoID)
	if err != nil {
		return nil, err
	}
	if _, err := s.docs.guardar(ctx, model.RecursoPlantillas, pl); err != nil {
		return nil, err
	}
	return &pl, nil
}

func (s *cotizacionService) AplicarPlantilla(ctx context.Context, autor cotizacion.Autor, id, plantillaID string) (*cotizacion.Cotizacion, error) {
	var pl cotizacion.Plantilla
	err := s.docs.cargar(ctx, model.RecursoPlantillas, plantillaID, &pl)
	if errors.Is(err, repository.ErrNoEncontrado) {
		return nil, ErrPlantillaNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return s.editar(ctx, autor, id, func(e *cotizacion.Editor) error {
		e.AplicarPlantilla(pl)
		return nil
	})
}

// ── PDF ──────────────────────────────────────────────────────────────────────

func (s *cotizacionService) SolicitarPDF(ctx context.Context, id string, req dto.PDFRequest) (*dto.PDFResponse, error) {
	if s.dispatcher == nil {
		return nil, ErrColaNoDisponible
	}
	if _, err := s.docs.repo.ObtenerPorID(ctx, model.RecursoCotizaciones, id); err != nil {
		return nil, err
	}
	payload := worker.PDFJobPayload{CotizacionID: id, EmailCliente: req.Email, Mensaje: req.Mensaje}
	if err := s.dispatcher.EnqueuePDF(ctx, payload); err != nil {
		log.Error().Err(err).Str("cotizacion_id", id).Msg("no se pudo encolar el PDF")
		return nil, ErrColaNoDisponible
	}
	msg := "La propuesta se está generando."
	if req.Email != "" {
		msg = "La propuesta se enviará a " + req.Email + "."
	}
	return &dto.PDFResponse{Encolado: true, Mensaje: msg}, nil
}

func (s *cotizacionService) RenderizarPDF(ctx context.Context, id string, w io.Writer) error {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return err
	}
	return infra.EscribirPropuestaPDF(w, c, repository.ObtenerBranding(ctx, s.docs.repo))
}
