package handlers

import (
	"errors"
	"net/http"
	"strings"

	"Clientes/internal/dto"
	"Clientes/internal/query"
	"Clientes/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	msgCreated       = "Cliente creado con éxito"
	msgUpdated       = "Cliente actualizado con éxito"
	msgDeleted       = "Cliente eliminado con éxito"
	msgReactivated   = "Cliente reactivado con éxito"
	msgNotFound      = "Cliente no encontrado"
	msgDNINotFound   = "No se encontraron clientes con el DNI proporcionado"
	msgDNIRequired   = "El DNI es obligatorio para buscar clientes"
	msgDuplicate     = "Ya existe un cliente con el DNI proporcionado"
	msgAlreadyActive = "El cliente ya está activo"
	msgReactivate    = "No se pudo reactivar el cliente"
	msgServerError   = "Error del servidor"
	msgInvalid       = "Datos del cliente inválidos"
	msgInvalidJSON   = "JSON inválido"
)

type ClienteHandler struct {
	svc *service.ClienteService
}

func NewClienteHandler(svc *service.ClienteService) *ClienteHandler {
	return &ClienteHandler{svc: svc}
}

// List godoc
// @Summary      List or search clientes
// @Description  Active clientes only. search matches name/lastname (substring, case-insensitive) or dni/cuit (exact).
// @Tags         clientes
// @Produce      json
// @Param        search  query     string  false  "Free-text search"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Success      200     {array}   dto.ClienteResponse
// @Failure      500     {object}  dto.MessageResponse
// @Router       /clientes [get]
func (h *ClienteHandler) List(c *gin.Context) {
	p := query.ParseListParams(c.Query("search"), c.Query("page"), c.Query("limit"))
	list, err := h.svc.List(c.Request.Context(), p)
	if err != nil {
		writeError(c, err, "list clientes")
		return
	}
	c.JSON(http.StatusOK, dto.ClientesToResponses(list))
}

// SearchByDNI godoc
// @Summary      Search clientes by partial DNI
// @Tags         clientes
// @Produce      json
// @Param        dni  path      string  true  "DNI fragment"
// @Success      200  {array}   dto.ClienteResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /clientes/search/dni/{dni} [get]
func (h *ClienteHandler) SearchByDNI(c *gin.Context) {
	dni := c.Param("dni")
	if strings.TrimSpace(dni) == "" {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: msgDNIRequired})
		return
	}
	list, err := h.svc.SearchByDNI(c.Request.Context(), dni)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: msgDNINotFound})
			return
		}
		writeError(c, err, "search clientes by dni")
		return
	}
	c.JSON(http.StatusOK, dto.ClientesToResponses(list))
}

// GetByDNI godoc
// @Summary      Get an active cliente by DNI
// @Tags         clientes
// @Produce      json
// @Param        dni  path      string  true  "DNI"
// @Success      200  {object}  dto.ClienteResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /clientes/dni/{dni} [get]
func (h *ClienteHandler) GetByDNI(c *gin.Context) {
	cl, err := h.svc.Get(c.Request.Context(), c.Param("dni"))
	if err != nil {
		writeError(c, err, "get cliente")
		return
	}
	c.JSON(http.StatusOK, dto.ClienteToResponse(cl))
}

// Create godoc
// @Summary      Create a cliente
// @Description  dni is required and must not belong to any cliente, deleted ones included.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ClienteRequest  true  "Cliente fields; extra fields are stored as-is"
// @Success      201   {object}  dto.CreateClienteResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      500   {object}  dto.MessageResponse
// @Router       /clientes [post]
func (h *ClienteHandler) Create(c *gin.Context) {
	body, ok := bindFields(c)
	if !ok {
		return
	}
	cl, err := h.svc.Create(c.Request.Context(), body)
	if err != nil {
		writeError(c, err, "create cliente")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateClienteResponse{
		Message: msgCreated,
		Cliente: dto.ClienteToResponse(cl),
	})
}

// Update godoc
// @Summary      Update a cliente by DNI
// @Description  Partial update. createdAt, deletedAt and _id cannot be set.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        dni   path      string              true  "DNI"
// @Param        body  body      dto.ClienteRequest  true  "Fields to update"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Failure      500   {object}  dto.MessageResponse
// @Router       /clientes/dni/{dni} [put]
func (h *ClienteHandler) Update(c *gin.Context) {
	body, ok := bindFields(c)
	if !ok {
		return
	}
	if err := h.svc.Update(c.Request.Context(), c.Param("dni"), body); err != nil {
		writeError(c, err, "update cliente")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgUpdated})
}

// Delete godoc
// @Summary      Soft-delete a cliente by DNI
// @Tags         clientes
// @Produce      json
// @Param        dni  path      string  true  "DNI"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /clientes/dni/{dni} [delete]
func (h *ClienteHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("dni")); err != nil {
		writeError(c, err, "delete cliente")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgDeleted})
}

// Reactivate godoc
// @Summary      Reactivate a soft-deleted cliente
// @Tags         clientes
// @Produce      json
// @Param        dni  path      string  true  "DNI"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /clientes/reactivate/dni/{dni} [put]
func (h *ClienteHandler) Reactivate(c *gin.Context) {
	if err := h.svc.Reactivate(c.Request.Context(), c.Param("dni")); err != nil {
		writeError(c, err, "reactivate cliente")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgReactivated})
}

func bindFields(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: msgInvalidJSON, Detail: err.Error()})
		return nil, false
	}
	return body, true
}

// writeError maps service errors to a status and message. Anything unknown,
// store failures included, is a 500 and gets logged.
func writeError(c *gin.Context, err error, op string) {
	status, msg, detail := http.StatusInternalServerError, msgServerError, ""
	switch {
	case errors.Is(err, service.ErrValidation):
		status, msg, detail = http.StatusBadRequest, msgInvalid, err.Error()
	case errors.Is(err, service.ErrDuplicateKey):
		status, msg = http.StatusBadRequest, msgDuplicate
	case errors.Is(err, service.ErrAlreadyActive):
		status, msg = http.StatusBadRequest, msgAlreadyActive
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, msgNotFound
	case errors.Is(err, service.ErrReactivationFailed):
		msg = msgReactivate
	}
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("op", op).Msg("request failed")
	}
	c.JSON(status, dto.MessageResponse{Message: msg, Detail: detail})
}
