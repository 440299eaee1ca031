package dto

import "github.com/shopspring/decimal"

func init() {
	// Precios y totales viajan como números JSON (10.5), no como strings ("10.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"mensaje"`
}

// MessageResponse respuesta simple con un mensaje.
type MessageResponse struct {
	Message string `json:"mensaje"`
}

// UserConflictResponse se devuelve al intentar borrar un usuario con ventas.
type UserConflictResponse struct {
	Code          string  `json:"code"`
	Message       string  `json:"mensaje"`
	AssociatedIDs []int64 `json:"ventasAsociadas"`
}
