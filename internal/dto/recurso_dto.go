package dto

import "encoding/json"

// LoteRequest replaces or adds several documents of one collection.
type LoteRequest struct {
	Documentos []json.RawMessage `json:"items" validate:"required,min=1,max=1000"`
}

type LoteResponse struct {
	Guardados int `json:"saved"`
}

type GuardadoResponse struct {
	ID string `json:"id"`
}
