package service

import (
	"context"
	"encoding/json"
	"fmt"

	"crkitchen/internal/model"
	"crkitchen/internal/repository"

	"github.com/rs/zerolog/log"
)

// almacen wraps the document repository: every successful write is counted
// and notified. Notification failures are only logged.
type almacen struct {
	repo     repository.DocumentoRepository
	notif    Notificador
	contador Contador
}

func nuevoAlmacen(repo repository.DocumentoRepository, notif Notificador, contador Contador) almacen {
	if notif == nil {
		notif = sinNotificar{}
	}
	return almacen{repo: repo, notif: notif, contador: contador}
}

func (a almacen) cargar(ctx context.Context, recurso model.Recurso, id string, v interface{}) error {
	doc, err := a.repo.ObtenerPorID(ctx, recurso, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(doc.Data, v); err != nil {
		return fmt.Errorf("%s/%s: documento dañado: %w", recurso, id, err)
	}
	return nil
}

func (a almacen) guardar(ctx context.Context, recurso model.Recurso, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return a.guardarRaw(ctx, recurso, data)
}

func (a almacen) guardarRaw(ctx context.Context, recurso model.Recurso, data json.RawMessage) (string, error) {
	id, err := a.repo.Guardar(ctx, recurso, data)
	if err != nil {
		return "", err
	}
	a.escrito(ctx, recurso, id)
	return id, nil
}

func (a almacen) guardarLote(ctx context.Context, recurso model.Recurso, docs []json.RawMessage) (int, error) {
	n, err := a.repo.ReemplazarLote(ctx, recurso, docs)
	if err != nil {
		return 0, err
	}
	a.escrito(ctx, recurso, "")
	return n, nil
}

func (a almacen) eliminar(ctx context.Context, recurso model.Recurso, id string) error {
	if err := a.repo.Eliminar(ctx, recurso, id); err != nil {
		return err
	}
	a.escrito(ctx, recurso, id)
	return nil
}

func (a almacen) escrito(ctx context.Context, recurso model.Recurso, id string) {
	if a.contador != nil {
		a.contador.Inc(string(recurso))
	}
	if err := a.notif.Publicar(ctx, string(recurso), id); err != nil {
		log.Warn().Err(err).Str("recurso", string(recurso)).Str("id", id).Msg("notificación no enviada")
	}
}
