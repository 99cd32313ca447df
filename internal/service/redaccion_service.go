package service

import (
	"context"
	"fmt"
	"strings"

	"crkitchen/internal/cotizacion"
	"crkitchen/internal/dto"
	"crkitchen/internal/infra"
	"crkitchen/internal/repository"

	"github.com/rs/zerolog/log"
)

const EstiloResumido = "resumido"

// Redactor generates text from a prompt. infra.RedactorClient implements it
// against the Gemini API.
type Redactor interface {
	Generar(ctx context.Context, apiKey, prompt string) (string, error)
}

// RedaccionService drafts the descriptive memo of a proposal. The API key
// comes from the branding document, falling back to config.
type RedaccionService interface {
	Generar(ctx context.Context, autor cotizacion.Autor, id string, req dto.RedaccionRequest) (*dto.RedaccionResponse, error)
}

type redaccionService struct {
	cotizaciones CotizacionService
	repo         repository.DocumentoRepository
	redactor     Redactor
	cb           *infra.CircuitBreaker
	claveDefecto string
}

func NewRedaccionService(
	cotizaciones CotizacionService,
	repo repository.DocumentoRepository,
	redactor Redactor,
	cb *infra.CircuitBreaker,
	claveDefecto string,
) RedaccionService {
	return &redaccionService{
		cotizaciones: cotizaciones,
		repo:         repo,
		redactor:     redactor,
		cb:           cb,
		claveDefecto: claveDefecto,
	}
}

func (s *redaccionService) Generar(ctx context.Context, autor cotizacion.Autor, id string, req dto.RedaccionRequest) (*dto.RedaccionResponse, error) {
	c, err := s.cotizaciones.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}

	clave := repository.ObtenerBranding(ctx, s.repo).ClaveIA
	if clave == "" {
		clave = s.claveDefecto
	}
	if clave == "" {
		return nil, ErrClaveIAFaltante
	}

	prompt := PromptMemoria(c, req.Estilo)
	var texto string
	err = s.cb.Execute(func() error {
		out, err := s.redactor.Generar(ctx, clave, prompt)
		if err != nil {
			return err
		}
		texto = strings.TrimSpace(out)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("cotizacion_id", id).Str("cb_state", s.cb.State().String()).Msg("redacción fallida")
		return nil, err
	}

	if req.Aplicar {
		c.Terminos.Texto = texto
		if _, err := s.cotizaciones.Reemplazar(ctx, autor, id, c); err != nil {
			return nil, err
		}
	}
	return &dto.RedaccionResponse{Texto: texto}, nil
}

// PromptMemoria builds the prompt from client, site and the distinct concepts
// of every prototype.
func PromptMemoria(c *cotizacion.Cotizacion, estilo string) string {
	estiloTexto := "extenso, sofisticado, técnico y poético. Enfócate en la calidad de vida y el lujo."
	if estilo == EstiloResumido {
		estiloTexto = "conciso, directo y comercial (máximo 3 frases)."
	}

	var elementos strings.Builder
	vistos := map[string]bool{}
	for _, p := range c.Prototipos {
		for _, it := range p.Partidas {
			clave := strings.ToUpper(strings.TrimSpace(it.Concepto))
			if clave == "" || vistos[clave] {
				continue
			}
			vistos[clave] = true
			fmt.Fprintf(&elementos, "- %s: %s\n", it.Concepto, it.Descripcion)
		}
	}

	var b strings.Builder
	b.WriteString("Actúa como un arquitecto de interiores senior de la firma CR Kitchen & Design.\n")
	fmt.Fprintf(&b, "Genera una memoria descriptiva profesional para una propuesta de: %s.\n\n", c.Categoria)
	b.WriteString("DETALLES DEL PROYECTO:\n")
	fmt.Fprintf(&b, "- Cliente: %s\n", c.Cliente.Nombre)
	fmt.Fprintf(&b, "- Nombre de obra: %s\n", c.Proyecto.Nombre)
	b.WriteString("- Elementos clave:\n")
	b.WriteString(elementos.String())
	fmt.Fprintf(&b, "\nREQUERIMIENTO DE ESTILO: El tono debe ser %s No incluyas saludos ni despedidas, solo el texto de la memoria descriptiva.", estiloTexto)
	return b.String()
}
