package dto

import "crkitchen/internal/cotizacion"

type CatalogoFilter struct {
	Q      string `form:"q"`
	Limite int    `form:"limite" validate:"omitempty,min=1,max=200"`
}

type CatalogoResultado struct {
	cotizacion.CatalogoItem
	Puntaje float64 `json:"score"`
}
