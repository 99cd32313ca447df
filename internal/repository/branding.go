package repository

import (
	"context"
	"encoding/json"

	"crkitchen/internal/model"

	"github.com/rs/zerolog/log"
)

// ObtenerBranding reads the branding document. A missing or damaged document
// yields the zero value.
func ObtenerBranding(ctx context.Context, repo DocumentoRepository) model.Branding {
	var b model.Branding
	doc, err := repo.ObtenerPorID(ctx, model.RecursoAjustes, model.ClaveAjustes)
	if err != nil {
		return b
	}
	if err := json.Unmarshal(doc.Data, &b); err != nil {
		log.Warn().Err(err).Msg("branding: documento inválido")
	}
	return b
}
