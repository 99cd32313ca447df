package handler

import (
	"bytes"
	"net/http"

	"crkitchen/internal/apierror"
	"crkitchen/internal/cotizacion"
	"crkitchen/internal/dto"
	"crkitchen/internal/service"

	"github.com/gin-gonic/gin"
)

type CotizacionesHandler struct {
	svc       service.CotizacionService
	redaccion service.RedaccionService
}

func NewCotizacionesHandler(svc service.CotizacionService, redaccion service.RedaccionService) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc, redaccion: redaccion}
}

// ── Proposal ─────────────────────────────────────────────────────────────────

// Listar godoc
// @Summary Lista de cotizaciones
// @Tags cotizaciones
// @Produce json
// @Param estado query string false "Estados separados por coma"
// @Param categoria query string false "Categorías separadas por coma"
// @Param q query string false "Busca en cliente, obra y folio"
// @Success 200 {array} dto.CotizacionResumen
// @Router /v1/cotizaciones [get]
func (h *CotizacionesHandler) Listar(c *gin.Context) {
	var filtro dto.CotizacionFilter
	if !bindQuery(c, &filtro) {
		return
	}
	filtro.Estados = separarLista(filtro.Estados)
	filtro.Categorias = separarLista(filtro.Categorias)

	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estadisticas GET /v1/cotizaciones/estadisticas
func (h *CotizacionesHandler) Estadisticas(c *gin.Context) {
	resp, err := h.svc.Estadisticas(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Opciones godoc
// @Summary Categorías, unidades y secciones disponibles
// @Tags cotizaciones
// @Produce json
// @Success 200 {object} dto.OpcionesResponse
// @Router /v1/cotizaciones/opciones [get]
func (h *CotizacionesHandler) Opciones(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OpcionesResponse{
		Categorias: cotizacion.CategoriasProyecto,
		Unidades:   cotizacion.Unidades,
		Secciones:  cotizacion.SeccionesConocidas,
	})
}

// Crear godoc
// @Summary Nueva propuesta en borrador
// @Tags cotizaciones
// @Accept json
// @Produce json
// @Param body body dto.CrearCotizacionRequest false "Datos iniciales"
// @Success 201 {object} cotizacion.Cotizacion
// @Router /v1/cotizaciones [post]
func (h *CotizacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearCotizacionRequest
	if !bindOpcional(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), autor(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CotizacionesHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reemplazar PUT /v1/cotizaciones/:id stores the full document; business
// rules are validated by the service.
func (h *CotizacionesHandler) Reemplazar(c *gin.Context) {
	var doc cotizacion.Cotizacion
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}
	resp, err := h.svc.Reemplazar(c.Request.Context(), autor(c), c.Param("id"), &doc)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("id")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CotizacionesHandler) Duplicar(c *gin.Context) {
	resp, err := h.svc.Duplicar(c.Request.Context(), autor(c), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CotizacionesHandler) CambiarEstado(c *gin.Context) {
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), autor(c), c.Param("id"), cotizacion.Estado(req.Estado))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Derived views ────────────────────────────────────────────────────────────

// Totales godoc
// @Summary Totales, desglose por prototipo y plan de pagos
// @Tags cotizaciones
// @Produce json
// @Param id path string true "ID de la cotización"
// @Success 200 {object} dto.TotalesResponse
// @Router /v1/cotizaciones/{id}/totales [get]
func (h *CotizacionesHandler) Totales(c *gin.Context) {
	resp, err := h.svc.Totales(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Matriz GET /v1/cotizaciones/:id/matriz?seccion=
func (h *CotizacionesHandler) Matriz(c *gin.Context) {
	resp, err := h.svc.Matriz(c.Request.Context(), c.Param("id"), c.Query("seccion"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Prototypes ───────────────────────────────────────────────────────────────

func (h *CotizacionesHandler) AgregarPrototipo(c *gin.Context) {
	resp, err := h.svc.AgregarPrototipo(c.Request.Context(), autor(c), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CotizacionesHandler) DuplicarPrototipo(c *gin.Context) {
	resp, err := h.svc.DuplicarPrototipo(c.Request.Context(), autor(c), c.Param("id"), c.Param("pid"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CotizacionesHandler) ActualizarPrototipo(c *gin.Context) {
	var req dto.ActualizarPrototipoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPrototipo(c.Request.Context(), autor(c), c.Param("id"), c.Param("pid"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) EliminarPrototipo(c *gin.Context) {
	if err := h.svc.EliminarPrototipo(c.Request.Context(), autor(c), c.Param("id"), c.Param("pid")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CotizacionesHandler) Reordenar(c *gin.Context) {
	var req dto.ReordenarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reordenar(c.Request.Context(), autor(c), c.Param("id"), c.Param("pid"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PrecioLote PUT /v1/cotizaciones/:id/prototipos/:pid/precio-lote
func (h *CotizacionesHandler) PrecioLote(c *gin.Context) {
	var req dto.PrecioLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AsignarPrecioLote(c.Request.Context(), autor(c), c.Param("id"), c.Param("pid"), req.Monto)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Items ────────────────────────────────────────────────────────────────────

func (h *CotizacionesHandler) AgregarPartida(c *gin.Context) {
	var req dto.AgregarPartidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarPartida(c.Request.Context(), autor(c), c.Param("id"), c.Param("pid"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CotizacionesHandler) AgregarDesdeCatalogo(c *gin.Context) {
	var req dto.AgregarCatalogoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarDesdeCatalogo(c.Request.Context(), autor(c), c.Param("id"), c.Param("pid"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CotizacionesHandler) ActualizarPartida(c *gin.Context) {
	var req dto.ActualizarPartidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPartida(c.Request.Context(), autor(c), c.Param("id"), c.Param("itemId"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) EliminarPartida(c *gin.Context) {
	if err := h.svc.EliminarPartida(c.Request.Context(), autor(c), c.Param("id"), c.Param("itemId")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Versions ─────────────────────────────────────────────────────────────────

// Guardar godoc
// @Summary Guarda una versión de la propuesta
// @Tags cotizaciones
// @Accept json
// @Produce json
// @Param id path string true "ID de la cotización"
// @Param body body dto.GuardarRequest false "Nota de la versión"
// @Success 201 {object} dto.GuardarResponse
// @Router /v1/cotizaciones/{id}/guardar [post]
func (h *CotizacionesHandler) Guardar(c *gin.Context) {
	var req dto.GuardarRequest
	if !bindOpcional(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), autor(c), c.Param("id"), req.Nota)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Revertir godoc
// @Summary Restaura una versión
// @Description Con cambios sin guardar responde 409 salvo que confirmar sea true.
// @Tags cotizaciones
// @Accept json
// @Produce json
// @Param id path string true "ID de la cotización"
// @Param vid path string true "ID de la versión"
// @Param body body dto.RevertirRequest false "Confirmación"
// @Success 200 {object} cotizacion.Cotizacion
// @Failure 409 {object} apierror.APIError
// @Router /v1/cotizaciones/{id}/versiones/{vid}/revertir [post]
func (h *CotizacionesHandler) Revertir(c *gin.Context) {
	var req dto.RevertirRequest
	if !bindOpcional(c, &req) {
		return
	}
	resp, err := h.svc.Revertir(c.Request.Context(), autor(c), c.Param("id"), c.Param("vid"), req.Confirmar)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) EliminarVersion(c *gin.Context) {
	if err := h.svc.EliminarVersion(c.Request.Context(), autor(c), c.Param("id"), c.Param("vid")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Notes, terms and templates ───────────────────────────────────────────────

func (h *CotizacionesHandler) AgregarNota(c *gin.Context) {
	var req dto.NotaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarNota(c.Request.Context(), autor(c), c.Param("id"), req.Texto)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CotizacionesHandler) NumeroPagos(c *gin.Context) {
	var req dto.NumeroPagosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarNumeroPagos(c.Request.Context(), autor(c), c.Param("id"), req.Pagos)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) CrearPlantilla(c *gin.Context) {
	var req dto.CrearPlantillaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPlantilla(c.Request.Context(), autor(c), c.Param("id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CotizacionesHandler) AplicarPlantilla(c *gin.Context) {
	resp, err := h.svc.AplicarPlantilla(c.Request.Context(), autor(c), c.Param("id"), c.Param("tid"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── PDF and drafting ─────────────────────────────────────────────────────────

// SolicitarPDF POST /v1/cotizaciones/:id/pdf queues rendering and delivery.
func (h *CotizacionesHandler) SolicitarPDF(c *gin.Context) {
	var req dto.PDFRequest
	if !bindOpcional(c, &req) {
		return
	}
	resp, err := h.svc.SolicitarPDF(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// DescargarPDF GET /v1/cotizaciones/:id/pdf
func (h *CotizacionesHandler) DescargarPDF(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.RenderizarPDF(c.Request.Context(), c.Param("id"), &buf); err != nil {
		responderError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="propuesta_`+c.Param("id")+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *CotizacionesHandler) Redactar(c *gin.Context) {
	var req dto.RedaccionRequest
	if !bindOpcional(c, &req) {
		return
	}
	resp, err := h.redaccion.Generar(c.Request.Context(), autor(c), c.Param("id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
