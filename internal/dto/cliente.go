package dto

import (
	dom "Clientes/internal/domain"
)

// ClienteRequest documents the create/update body. Handlers bind the body as a
// free-form object: fields outside this set are stored as-is.
type ClienteRequest struct {
	DNI      string `json:"dni" example:"30111222"`
	Name     string `json:"name" example:"Ana"`
	Lastname string `json:"lastname" example:"García"`
	CUIT     string `json:"cuit" example:"27-30111222-4"`
}

// ClienteResponse is a stored record: the typed fields plus any extra ones.
type ClienteResponse map[string]any

type MessageResponse struct {
	Message string `json:"message"`
	// Detail carries the validation cause on 400 responses.
	Detail string `json:"detail,omitempty"`
}

type CreateClienteResponse struct {
	Message string          `json:"message"`
	Cliente ClienteResponse `json:"cliente"`
}

func ClienteToResponse(c dom.Cliente) ClienteResponse {
	return ClienteResponse(c.Fields())
}

func ClientesToResponses(list []dom.Cliente) []ClienteResponse {
	out := make([]ClienteResponse, len(list))
	for i := range list {
		out[i] = ClienteToResponse(list[i])
	}
	return out
}
