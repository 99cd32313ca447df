package service

import (
	"context"
	"encoding/json"

	"crkitchen/internal/model"
	"crkitchen/internal/repository"
)

// campoClaveIA is the branding field only administrators see.
const campoClaveIA = "geminiApiKey"

// RecursoService exposes the auxiliary collections (clients, categories,
// branding, templates, bulk catalog) as opaque JSON documents. Proposals and
// users have their own services.
type RecursoService interface {
	Listar(ctx context.Context, recurso model.Recurso, conSecretos bool) ([]json.RawMessage, error)
	Obtener(ctx context.Context, recurso model.Recurso, id string, conSecretos bool) (json.RawMessage, error)
	Guardar(ctx context.Context, recurso model.Recurso, data json.RawMessage) (string, error)
	GuardarLote(ctx context.Context, recurso model.Recurso, docs []json.RawMessage) (int, error)
	Eliminar(ctx context.Context, recurso model.Recurso, id string) error
}

type recursoService struct {
	docs almacen
}

func NewRecursoService(repo repository.DocumentoRepository, notif Notificador, contador Contador) RecursoService {
	return &recursoService{docs: nuevoAlmacen(repo, notif, contador)}
}

// RecursoGenerico reports whether the collection is served by the generic bridge.
func RecursoGenerico(r model.Recurso) bool {
	switch r {
	case model.RecursoCotizaciones, model.RecursoUsuarios:
		return false
	}
	return true
}

func (s *recursoService) Listar(ctx context.Context, recurso model.Recurso, conSecretos bool) ([]json.RawMessage, error) {
	if !RecursoGenerico(recurso) {
		return nil, ErrRecursoNoPermitido
	}
	docs, err := s.docs.repo.Listar(ctx, recurso)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		out[i] = filtrarSecretos(recurso, json.RawMessage(d.Data), conSecretos)
	}
	return out, nil
}

func (s *recursoService) Obtener(ctx context.Context, recurso model.Recurso, id string, conSecretos bool) (json.RawMessage, error) {
	if !RecursoGenerico(recurso) {
		return nil, ErrRecursoNoPermitido
	}
	doc, err := s.docs.repo.ObtenerPorID(ctx, recurso, id)
	if err != nil {
		return nil, err
	}
	return filtrarSecretos(recurso, json.RawMessage(doc.Data), conSecretos), nil
}

func (s *recursoService) Guardar(ctx context.Context, recurso model.Recurso, data json.RawMessage) (string, error) {
	if !RecursoGenerico(recurso) {
		return "", ErrRecursoNoPermitido
	}
	return s.docs.guardarRaw(ctx, recurso, data)
}

func (s *recursoService) GuardarLote(ctx context.Context, recurso model.Recurso, docs []json.RawMessage) (int, error) {
	if !RecursoGenerico(recurso) {
		return 0, ErrRecursoNoPermitido
	}
	return s.docs.guardarLote(ctx, recurso, docs)
}

func (s *recursoService) Eliminar(ctx context.Context, recurso model.Recurso, id string) error {
	if !RecursoGenerico(recurso) {
		return ErrRecursoNoPermitido
	}
	return s.docs.eliminar(ctx, recurso, id)
}

func filtrarSecretos(recurso model.Recurso, data json.RawMessage, conSecretos bool) json.RawMessage {
	if conSecretos || recurso != model.RecursoAjustes {
		return data
	}
	var campos map[string]json.RawMessage
	if err := json.Unmarshal(data, &campos); err != nil {
		return data
	}
	if _, ok := campos[campoClaveIA]; !ok {
		return data
	}
	delete(campos, campoClaveIA)
	out, err := json.Marshal(campos)
	if err != nil {
		return data
	}
	return out
}
