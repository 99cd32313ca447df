package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"crkitchen/internal/apierror"
	"crkitchen/internal/dto"
	"crkitchen/internal/middleware"
	"crkitchen/internal/model"
	"crkitchen/internal/service"

	"github.com/gin-gonic/gin"
)

// RecursosHandler serves the auxiliary collections as opaque JSON. Only
// administrators see the AI key of the branding document.
type RecursosHandler struct{ svc service.RecursoService }

func NewRecursosHandler(svc service.RecursoService) *RecursosHandler {
	return &RecursosHandler{svc: svc}
}

func (h *RecursosHandler) recurso(c *gin.Context) (model.Recurso, bool) {
	r, ok := model.ParseRecurso(c.Param("recurso"))
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Recurso desconocido"))
		return "", false
	}
	return r, true
}

func conSecretos(c *gin.Context) bool {
	claims := middleware.GetClaims(c)
	return claims != nil && claims.Rol == model.RolAdministrador
}

// Listar GET /v1/recursos/:recurso. The "branding" alias returns the single
// branding document.
func (h *RecursosHandler) Listar(c *gin.Context) {
	r, ok := h.recurso(c)
	if !ok {
		return
	}
	if c.Param("recurso") == model.ClaveAjustes {
		h.responderUno(c, r, model.ClaveAjustes)
		return
	}
	docs, err := h.svc.Listar(c.Request.Context(), r, conSecretos(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Obtener GET /v1/recursos/:recurso/:id
func (h *RecursosHandler) Obtener(c *gin.Context) {
	r, ok := h.recurso(c)
	if !ok {
		return
	}
	h.responderUno(c, r, c.Param("id"))
}

func (h *RecursosHandler) responderUno(c *gin.Context, r model.Recurso, id string) {
	doc, err := h.svc.Obtener(c.Request.Context(), r, id, conSecretos(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}

// Guardar POST /v1/recursos/:recurso
func (h *RecursosHandler) Guardar(c *gin.Context) {
	r, ok := h.recurso(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido"))
		return
	}
	id, err := h.svc.Guardar(c.Request.Context(), r, body)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GuardadoResponse{ID: id})
}

// GuardarLote POST /v1/recursos/:recurso/lote
func (h *RecursosHandler) GuardarLote(c *gin.Context) {
	r, ok := h.recurso(c)
	if !ok {
		return
	}
	var req dto.LoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.svc.GuardarLote(c.Request.Context(), r, req.Documentos)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoteResponse{Guardados: n})
}

// Eliminar DELETE /v1/recursos/:recurso/:id
func (h *RecursosHandler) Eliminar(c *gin.Context) {
	r, ok := h.recurso(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), r, c.Param("id")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
