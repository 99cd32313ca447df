package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"

	"crkitchen/internal/cotizacion"
	"crkitchen/internal/dto"
	"crkitchen/internal/model"
	"crkitchen/internal/repository"

	"github.com/rs/zerolog/log"
)

const limiteCatalogo = 50

// CatalogoService searches and maintains catalog articles (inventory
// collection, key = codigo).
type CatalogoService interface {
	Buscar(ctx context.Context, filtro dto.CatalogoFilter) ([]dto.CatalogoResultado, error)
	Guardar(ctx context.Context, item cotizacion.CatalogoItem) (string, error)
	Eliminar(ctx context.Context, codigo string) error
}

type catalogoService struct {
	docs almacen
}

func NewCatalogoService(repo repository.DocumentoRepository, notif Notificador, contador Contador) CatalogoService {
	return &catalogoService{docs: nuevoAlmacen(repo, notif, contador)}
}

func (s *catalogoService) Buscar(ctx context.Context, filtro dto.CatalogoFilter) ([]dto.CatalogoResultado, error) {
	docs, err := s.docs.repo.Listar(ctx, model.RecursoInventario)
	if err != nil {
		return nil, err
	}
	limite := filtro.Limite
	if limite <= 0 {
		limite = limiteCatalogo
	}
	q := strings.TrimSpace(filtro.Q)

	out := make([]dto.CatalogoResultado, 0, len(docs))
	for _, d := range docs {
		var item cotizacion.CatalogoItem
		if err := json.Unmarshal(d.Data, &item); err != nil {
			log.Warn().Err(err).Str("codigo", d.ID).Msg("artículo de catálogo dañado, omitido")
			continue
		}
		puntaje := 0.0
		if q != "" {
			for _, campo := range []string{item.Codigo, item.Descripcion, item.Marca} {
				if p := PuntajeDifuso(campo, q); p > puntaje {
					puntaje = p
				}
			}
			if puntaje == 0 {
				continue
			}
		}
		out = append(out, dto.CatalogoResultado{CatalogoItem: item, Puntaje: puntaje})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Puntaje != out[j].Puntaje {
			return out[i].Puntaje > out[j].Puntaje
		}
		return out[i].Codigo < out[j].Codigo
	})
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

func (s *catalogoService) Guardar(ctx context.Context, item cotizacion.CatalogoItem) (string, error) {
	item.Codigo = strings.TrimSpace(item.Codigo)
	if item.Codigo == "" {
		return "", repository.ErrClaveFaltante
	}
	return s.docs.guardar(ctx, model.RecursoInventario, item)
}

func (s *catalogoService) Eliminar(ctx context.Context, codigo string) error {
	return s.docs.eliminar(ctx, model.RecursoInventario, codigo)
}

// PuntajeDifuso scores how well consulta matches texto, ignoring case: 100
// equal, 80 prefix, 60 substring. Otherwise it counts the query characters
// found in order inside the text; under half scores 0, above that it scales
// up to 40.
func PuntajeDifuso(texto, consulta string) float64 {
	t := strings.ToLower(texto)
	q := strings.ToLower(consulta)
	if q == "" {
		return 0
	}

	switch {
	case t == q:
		return 100
	case strings.HasPrefix(t, q):
		return 80
	case strings.Contains(t, q):
		return 60
	}

	aciertos := 0
	resto := t
	for _, r := range q {
		i := strings.IndexRune(resto, r)
		if i < 0 {
			continue
		}
		aciertos++
		resto = resto[i+utf8.RuneLen(r):]
	}
	total := utf8.RuneCountInString(q)
	if float64(aciertos) < float64(total)/2 {
		return 0
	}
	return float64(aciertos) / float64(total) * 40
}
