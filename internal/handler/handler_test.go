package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crkitchen/internal/cotizacion"
	"crkitchen/internal/infra"
	"crkitchen/internal/middleware"
	"crkitchen/internal/model"
	"crkitchen/internal/repository"
	"crkitchen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() { gin.SetMode(gin.TestMode) }

// ── Environment ──────────────────────────────────────────────────────────────

type redactorFijo struct {
	texto string
	err   error
}

func (r redactorFijo) Generar(context.Context, string, string) (string, error) {
	return r.texto, r.err
}

type entorno struct {
	engine *gin.Engine
	repo   repository.DocumentoRepository
}

// nuevoEntorno mounts the proposal, catalog and resource routes over an
// in-memory sqlite. rol sets the request claims.
func nuevoEntorno(t *testing.T, rol string) *entorno {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	repo := repository.NewDocumentoRepository(db)
	require.NoError(t, repo.Migrar(context.Background()))

	cotSvc := service.NewCotizacionService(repo, nil, nil, nil, cotizacion.Opciones{})
	redaccion := service.NewRedaccionService(cotSvc, repo, redactorFijo{texto: "  Cocina integral de autor.  "},
		infra.NewCircuitBreaker(infra.DefaultCBConfig()), "clave-test")
	cotH := NewCotizacionesHandler(cotSvc, redaccion)
	catH := NewCatalogoHandler(service.NewCatalogoService(repo, nil, nil))
	recH := NewRecursosHandler(service.NewRecursoService(repo, nil, nil))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{UserID: "u-1", Username: "ana", Nombre: "Ana", Rol: rol})
		c.Next()
	})
	cot := r.Group("/v1/cotizaciones")
	cot.GET("", cotH.Listar)
	cot.POST("", cotH.Crear)
	cot.GET("/opciones", cotH.Opciones)
	cot.GET("/:id", cotH.Obtener)
	cot.PUT("/:id", cotH.Reemplazar)
	cot.DELETE("/:id", cotH.Eliminar)
	cot.PATCH("/:id/estado", cotH.CambiarEstado)
	cot.GET("/:id/totales", cotH.Totales)
	cot.GET("/:id/matriz", cotH.Matriz)
	cot.POST("/:id/prototipos", cotH.AgregarPrototipo)
	cot.DELETE("/:id/prototipos/:pid", cotH.EliminarPrototipo)
	cot.POST("/:id/prototipos/:pid/partidas", cotH.AgregarPartida)
	cot.PUT("/:id/prototipos/:pid/precio-lote", cotH.PrecioLote)
	cot.PATCH("/:id/partidas/:itemId", cotH.ActualizarPartida)
	cot.POST("/:id/guardar", cotH.Guardar)
	cot.POST("/:id/versiones/:vid/revertir", cotH.Revertir)
	cot.PUT("/:id/terminos/pagos", cotH.NumeroPagos)
	cot.GET("/:id/pdf", cotH.DescargarPDF)
	cot.POST("/:id/pdf", cotH.SolicitarPDF)
	cot.POST("/:id/redaccion", cotH.Redactar)
	r.GET("/v1/catalogo", catH.Buscar)
	r.POST("/v1/catalogo", catH.Guardar)
	r.GET("/v1/recursos/:recurso", recH.Listar)
	r.GET("/v1/recursos/:recurso/:id", recH.Obtener)
	r.POST("/v1/recursos/:recurso", recH.Guardar)
	r.POST("/v1/recursos/:recurso/lote", recH.GuardarLote)
	return &entorno{engine: r, repo: repo}
}

func (e *entorno) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (e *entorno) crear(t *testing.T) cotizacion.Cotizacion {
	t.Helper()
	w := e.do(t, http.MethodPost, "/v1/cotizaciones", map[string]interface{}{
		"projectName": "Casa Lomas",
		"client":      map[string]string{"name": "María López"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c cotizacion.Cotizacion
	decode(t, w, &c)
	return c
}

// ── Proposals ────────────────────────────────────────────────────────────────

func TestCotizaciones_CrearSinCuerpo(t *testing.T) {
	e := nuevoEntorno(t, model.RolDisenador)
	w := e.do(t, http.MethodPost, "/v1/cotizaciones", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var c cotizacion.Cotizacion
	decode(t, w, &c)
	assert.Equal(t, cotizacion.EstadoBorrador, c.Estado)
	require.Len(t, c.Prototipos, 1)
	assert.Equal(t, "u-1", c.CreadoPor)
}

func TestCotizaciones_Opciones(t *testing.T) {
	e := nuevoEntorno(t, model.RolVendedor)
	w := e.do(t, http.MethodGet, "/v1/cotizaciones/opciones", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Categorias []string `json:"categories"`
		Unidades   []string `json:"units"`
		Secciones  []string `json:"sections"`
	}
	decode(t, w, &out)
	assert.Equal(t, []string{"COCINAS", "BAÑOS", "CLOSETS", "CLOSETS Y BAÑOS"}, out.Categorias)
	assert.Contains(t, out.Unidades, cotizacion.UnidadPieza)
	assert.Contains(t, out.Unidades, "LOTE")
	assert.Equal(t, []string{"MOBILIARIO Y HERRAJES", "ENCIMERAS", "ACCESORIOS"}, out.Secciones)
}

func TestCotizaciones_FlujoPartidasYTotales(t *testing.T) {
	e := nuevoEntorno(t, model.RolDisenador)
	c := e.crear(t)
	pid := c.Prototipos[0].ID

	w := e.do(t, http.MethodPost, "/v1/cotizaciones/"+c.ID+"/prototipos/"+pid+"/partidas",
		map[string]string{"category": "COCINA"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var it cotizacion.Partida
	decode(t, w, &it)

	w = e.do(t, http.MethodPatch, "/v1/cotizaciones/"+c.ID+"/partidas/"+it.ID,
		`{"concept":"Gabinete","quantity":"2","unitPrice":"2500"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodGet, "/v1/cotizaciones/"+c.ID+"/totales", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tot map[string]interface{}
	decode(t, w, &tot)
	assert.Equal(t, "5000", tot["subtotal"])
	assert.NotEmpty(t, tot["plan_pagos"])

	w = e.do(t, http.MethodGet, "/v1/cotizaciones/"+c.ID+"/matriz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var matrices []cotizacion.Matriz
	decode(t, w, &matrices)
	require.Len(t, matrices, 1)
	assert.Equal(t, "Gabinete", matrices[0].Filas[0].Concepto)
}

func TestCotizaciones_NoEncontrada(t *testing.T) {
	e := nuevoEntorno(t, model.RolVendedor)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/cotizaciones/nope"},
		{http.MethodGet, "/v1/cotizaciones/nope/totales"},
		{http.MethodDelete, "/v1/cotizaciones/nope"},
		{http.MethodGet, "/v1/cotizaciones/nope/pdf"},
	} {
		w := e.do(t, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), "detail")
	}
}

func TestCotizaciones_ErroresDeNegocio(t *testing.T) {
	e := nuevoEntorno(t, model.RolDisenador)
	c := e.crear(t)
	pid := c.Prototipos[0].ID

	t.Run("ultimo prototipo", func(t *testing.T) {
		w := e.do(t, http.MethodDelete, "/v1/cotizaciones/"+c.ID+"/prototipos/"+pid, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
	t.Run("prototipo inexistente", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/v1/cotizaciones/"+c.ID+"/prototipos/zzz/partidas",
			map[string]string{"category": "COCINA"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
	t.Run("estado invalido", func(t *testing.T) {
		w := e.do(t, http.MethodPatch, "/v1/cotizaciones/"+c.ID+"/estado", map[string]string{"status": "CERRADA"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var body map[string]interface{}
		decode(t, w, &body)
		assert.Contains(t, body["fields"], "Estado")
	})
	t.Run("numero de pagos", func(t *testing.T) {
		w := e.do(t, http.MethodPut, "/v1/cotizaciones/"+c.ID+"/terminos/pagos", map[string]int{"paymentCount": 5})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
	t.Run("json invalido", func(t *testing.T) {
		w := e.do(t, http.MethodPut, "/v1/cotizaciones/"+c.ID, "{no")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCotizaciones_CambiarEstadoYFiltrar(t *testing.T) {
	e := nuevoEntorno(t, model.RolVendedor)
	a := e.crear(t)
	e.crear(t)

	w := e.do(t, http.MethodPatch, "/v1/cotizaciones/"+a.ID+"/estado", map[string]string{"status": "ENVIADA"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodGet, "/v1/cotizaciones?estado=ENVIADA,ACEPTADA", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0]["id"])
}

func TestCotizaciones_PrecioLote(t *testing.T) {
	e := nuevoEntorno(t, model.RolDisenador)
	c := e.crear(t)
	pid := c.Prototipos[0].ID
	for i := 0; i < 2; i++ {
		w := e.do(t, http.MethodPost, "/v1/cotizaciones/"+c.ID+"/prototipos/"+pid+"/partidas",
			map[string]string{"category": "MOBILIARIO Y HERRAJES"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := e.do(t, http.MethodPut, "/v1/cotizaciones/"+c.ID+"/prototipos/"+pid+"/precio-lote", `{"amount":"12000"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p cotizacion.Prototipo
	decode(t, w, &p)
	assert.Equal(t, "12000", cotizacion.TotalPrototipo(p).String())
}

func TestCotizaciones_VersionesConfirmacion(t *testing.T) {
	e := nuevoEntorno(t, model.RolDisenador)
	c := e.crear(t)

	w := e.do(t, http.MethodPost, "/v1/cotizaciones/"+c.ID+"/guardar", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var g struct {
		Version cotizacion.Version `json:"version"`
	}
	decode(t, w, &g)

	// unsaved change
	w = e.do(t, http.MethodPost, "/v1/cotizaciones/"+c.ID+"/prototipos", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	ruta := "/v1/cotizaciones/" + c.ID + "/versiones/" + g.Version.ID + "/revertir"
	w = e.do(t, http.MethodPost, ruta, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(t, http.MethodPost, ruta, map[string]bool{"confirmar": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var restaurada cotizacion.Cotizacion
	decode(t, w, &restaurada)
	assert.Len(t, restaurada.Prototipos, 1)

	w = e.do(t, http.MethodPost, "/v1/cotizaciones/"+c.ID+"/versiones/nope/revertir", map[string]bool{"confirmar": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCotizaciones_PDF(t *testing.T) {
	e := nuevoEntorno(t, model.RolVendedor)
	c := e.crear(t)

	w := e.do(t, http.MethodGet, "/v1/cotizaciones/"+c.ID+"/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))

	// no dispatcher, no queue
	w = e.do(t, http.MethodPost, "/v1/cotizaciones/"+c.ID+"/pdf", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCotizaciones_Redactar(t *testing.T) {
	e := nuevoEntorno(t, model.RolDisenador)
	c := e.crear(t)

	w := e.do(t, http.MethodPost, "/v1/cotizaciones/"+c.ID+"/redaccion", map[string]interface{}{"style": "resumido", "apply": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"text":"Cocina integral de autor."}`, w.Body.String())

	w = e.do(t, http.MethodGet, "/v1/cotizaciones/"+c.ID, nil)
	var guardada cotizacion.Cotizacion
	decode(t, w, &guardada)
	assert.Equal(t, "Cocina integral de autor.", guardada.Terminos.Texto)
}

// ── Catalog and resources ────────────────────────────────────────────────────

func TestCatalogo_GuardarYBuscar(t *testing.T) {
	e := nuevoEntorno(t, model.RolDisenador)
	w := e.do(t, http.MethodPost, "/v1/catalogo",
		map[string]interface{}{"codigo": "TAR-01", "descripcion": "Tarja de acero", "unidad": "PZA", "precio": "3200", "categoria": "ACCESORIOS"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":"TAR-01"}`, w.Body.String())

	w = e.do(t, http.MethodGet, "/v1/catalogo?q=tarja", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TAR-01")
}

func TestRecursos_Genericos(t *testing.T) {
	e := nuevoEntorno(t, model.RolAdministrador)

	w := e.do(t, http.MethodPost, "/v1/recursos/clients", `{"id":"cl-1","name":"María"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":"cl-1"}`, w.Body.String())

	w = e.do(t, http.MethodGet, "/v1/recursos/clients/cl-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"cl-1","name":"María"}`, w.Body.String())

	w = e.do(t, http.MethodPost, "/v1/recursos/categories/lote", `{"items":[{"id":"COCINAS"},{"id":"CLOSETS"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "2")

	w = e.do(t, http.MethodGet, "/v1/recursos/desconocido", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodGet, "/v1/recursos/quotes", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodPost, "/v1/recursos/clients", "no-json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecursos_BrandingOcultaClave(t *testing.T) {
	admin := nuevoEntorno(t, model.RolAdministrador)
	w := admin.do(t, http.MethodPost, "/v1/recursos/branding", `{"companyName":"CR","geminiApiKey":"sk-1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = admin.do(t, http.MethodGet, "/v1/recursos/branding", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sk-1")

	// same store, another role
	vendedor := &entorno{repo: admin.repo}
	vendedor.engine = gin.New()
	vendedor.engine.Use(func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{UserID: "u-2", Rol: model.RolVendedor})
	})
	vendedor.engine.GET("/v1/recursos/:recurso", NewRecursosHandler(service.NewRecursoService(admin.repo, nil, nil)).Listar)

	w = vendedor.do(t, http.MethodGet, "/v1/recursos/branding", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "sk-1")
	assert.Contains(t, w.Body.String(), "CR")
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func TestSepararLista(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, separarLista([]string{"A, B", "", " C "}))
	assert.Empty(t, separarLista(nil))
}

func TestResponderError_Desconocido(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	responderError(c, errors.New("db caída"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db caída")
}

// ── Events ───────────────────────────────────────────────────────────────────

type suscriptorFijo struct {
	eventos []infra.Evento
	err     error
}

func (s suscriptorFijo) Suscribir(context.Context) (<-chan infra.Evento, error) {
	if s.err != nil {
		return nil, s.err
	}
	ch := make(chan infra.Evento, len(s.eventos))
	for _, ev := range s.eventos {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func TestEventos_Stream(t *testing.T) {
	h := NewEventosHandler(suscriptorFijo{eventos: []infra.Evento{
		{Tipo: "quotes", ID: "q1", Fecha: 1700000000000},
		{Tipo: "clients", Fecha: 1700000000001},
	}}, time.Hour)
	r := gin.New()
	r.GET("/eventos", h.Stream)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/eventos", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	frames := strings.Split(strings.TrimSpace(w.Body.String()), "\n\n")
	require.Len(t, frames, 3)
	assert.Contains(t, frames[0], `"type":"connected"`)
	assert.Equal(t, `data: {"type":"quotes","id":"q1","timestamp":1700000000000}`, frames[1])
	assert.Equal(t, `data: {"type":"clients","timestamp":1700000000001}`, frames[2])
}

func TestEventos_SinRedis(t *testing.T) {
	h := NewEventosHandler(suscriptorFijo{err: errors.New("redis down")}, 0)
	r := gin.New()
	r.GET("/eventos", h.Stream)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/eventos", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
