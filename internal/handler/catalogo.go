package handler

import (
	"net/http"

	"crkitchen/internal/cotizacion"
	"crkitchen/internal/dto"
	"crkitchen/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// Buscar godoc
// @Summary Búsqueda difusa en el catálogo
// @Tags catalogo
// @Produce json
// @Param q query string false "Código, descripción o marca"
// @Param limite query int false "Máximo de resultados (50 por defecto)"
// @Success 200 {array} dto.CatalogoResultado
// @Router /v1/catalogo [get]
func (h *CatalogoHandler) Buscar(c *gin.Context) {
	var filtro dto.CatalogoFilter
	if !bindQuery(c, &filtro) {
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), filtro)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Guardar POST /v1/catalogo
func (h *CatalogoHandler) Guardar(c *gin.Context) {
	var item cotizacion.CatalogoItem
	if !bindAndValidate(c, &item) {
		return
	}
	codigo, err := h.svc.Guardar(c.Request.Context(), item)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GuardadoResponse{ID: codigo})
}

// Eliminar DELETE /v1/catalogo/:codigo
func (h *CatalogoHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("codigo")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
