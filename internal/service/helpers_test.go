package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"crkitchen/internal/config"
	"crkitchen/internal/cotizacion"
	"crkitchen/internal/infra"
	"crkitchen/internal/model"
	"crkitchen/internal/repository"
	"crkitchen/internal/worker"

	"github.com/stretchr/testify/require"
)

// ── Stub: DocumentoRepository ────────────────────────────────────────────────

type stubRepo struct {
	mu    sync.Mutex
	docs  map[model.Recurso]map[string]json.RawMessage
	orden map[model.Recurso][]string
}

var _ repository.DocumentoRepository = (*stubRepo)(nil)

func newStubRepo() *stubRepo {
	return &stubRepo{
		docs:  map[model.Recurso]map[string]json.RawMessage{},
		orden: map[model.Recurso][]string{},
	}
}

func (r *stubRepo) Migrar(context.Context) error { return nil }

func (r *stubRepo) Listar(_ context.Context, rec model.Recurso) ([]model.Documento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Documento
	for _, id := range r.orden[rec] {
		if data, ok := r.docs[rec][id]; ok {
			out = append(out, model.Documento{ID: id, Data: []byte(data)})
		}
	}
	return out, nil
}

func (r *stubRepo) ObtenerPorID(_ context.Context, rec model.Recurso, id string) (*model.Documento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.docs[rec][id]
	if !ok {
		return nil, repository.ErrNoEncontrado
	}
	return &model.Documento{ID: id, Data: []byte(data)}, nil
}

func (r *stubRepo) Guardar(_ context.Context, rec model.Recurso, data json.RawMessage) (string, error) {
	id, err := repository.ExtraerClave(rec, data)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poner(rec, id, data)
	return id, nil
}

func (r *stubRepo) ReemplazarLote(_ context.Context, rec model.Recurso, docs []json.RawMessage) (int, error) {
	ids := make([]string, len(docs))
	for i, d := range docs {
		id, err := repository.ExtraerClave(rec, d)
		if err != nil {
			return 0, err
		}
		ids[i] = id
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range docs {
		r.poner(rec, ids[i], d)
	}
	return len(docs), nil
}

func (r *stubRepo) Eliminar(_ context.Context, rec model.Recurso, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[rec][id]; !ok {
		return repository.ErrNoEncontrado
	}
	delete(r.docs[rec], id)
	return nil
}

func (r *stubRepo) poner(rec model.Recurso, id string, data json.RawMessage) {
	if r.docs[rec] == nil {
		r.docs[rec] = map[string]json.RawMessage{}
	}
	if _, ok := r.docs[rec][id]; !ok {
		r.orden[rec] = append(r.orden[rec], id)
	}
	r.docs[rec][id] = append(json.RawMessage(nil), data...)
}

func (r *stubRepo) raw(rec model.Recurso, id string) json.RawMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[rec][id]
}

// ── Stub: Notificador ────────────────────────────────────────────────────────

type evento struct{ tipo, id string }

type stubNotif struct {
	mu      sync.Mutex
	eventos []evento
}

func (n *stubNotif) Publicar(_ context.Context, tipo, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.eventos = append(n.eventos, evento{tipo, id})
	return nil
}

// ── Stub: PDF queue ──────────────────────────────────────────────────────────

type stubCola struct {
	jobs []worker.PDFJobPayload
	err  error
}

func (c *stubCola) EnqueuePDF(_ context.Context, p worker.PDFJobPayload) error {
	if c.err != nil {
		return c.err
	}
	c.jobs = append(c.jobs, p)
	return nil
}

// ── Stub: Contador ───────────────────────────────────────────────────────────

type stubContador map[string]int

func (c stubContador) Inc(col string) { c[col]++ }

var _ Redactor = (*infra.RedactorClient)(nil)
var _ Notificador = (*infra.Notificador)(nil)
var _ Contador = (*infra.ContadorDocumentos)(nil)
var _ EncoladorPDF = (*worker.Dispatcher)(nil)

// ── Fixtures ─────────────────────────────────────────────────────────────────

var fechaFija = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func secuencia() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func opcionesTest() cotizacion.Opciones {
	return cotizacion.Opciones{NuevoID: secuencia(), Ahora: func() time.Time { return fechaFija }}
}

var autorTest = cotizacion.Autor{ID: "u-1", Nombre: "Ana Diseño"}

type entorno struct {
	repo     *stubRepo
	notif    *stubNotif
	cola     *stubCola
	contador stubContador
	svc      CotizacionService
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	e := &entorno{repo: newStubRepo(), notif: &stubNotif{}, cola: &stubCola{}, contador: stubContador{}}
	e.svc = NewCotizacionService(e.repo, e.notif, e.cola, e.contador, opcionesTest())
	return e
}

// cargar reads the proposal as persisted.
func (e *entorno) cargar(t *testing.T, id string) *cotizacion.Cotizacion {
	t.Helper()
	raw := e.repo.raw(model.RecursoCotizaciones, id)
	require.NotNil(t, raw, "cotización %s no persistida", id)
	var c cotizacion.Cotizacion
	require.NoError(t, json.Unmarshal(raw, &c))
	return &c
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 8, JWTRefreshHours: 24}
}
